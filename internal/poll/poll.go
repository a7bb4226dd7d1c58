// Package poll implements the Poll Engine: resolving clock, fd_read, and
// fd_write subscriptions into events with a single coarse, best-effort
// timeout. There is exactly one suspension point in the whole module and
// it lives here.
package poll

import (
	"time"

	"github.com/wasihost/core/internal/hostio"
	"github.com/wasihost/core/internal/memview"
	"github.com/wasihost/core/internal/wasip1"
)

// FDResolver answers, for a given fd, whether it exists, is readable
// (reporting bytesAvailable), and is writable. The dispatcher supplies
// this as a closure over the fd table and device registry so this
// package does not need to know about either.
type FDResolver interface {
	// BytesAvailable returns the number of bytes fd_read would return
	// right now, or an error if the fd doesn't exist or isn't readable.
	BytesAvailable(fd uint32) (uint64, error)
	// Writable reports whether fd exists and holds the write right.
	Writable(fd uint32) error
}

// Run resolves subs into an equally-sized slice of events, sleeping once
// via clk/timer if nothing was immediately ready and a clock subscription
// carries a non-zero effective timeout.
func Run(subs []memview.Subscription, resolver FDResolver, clk hostio.Clock, timer hostio.Timer) []memview.Event {
	events := make([]memview.Event, len(subs))

	var sleepTimeout uint64
	haveClock := false
	anyFDReady := false

	for i, s := range subs {
		switch s.Type {
		case wasip1.EventTypeClock:
			timeout := effectiveTimeout(s.Clock, clk)
			events[i] = memview.Event{Userdata: s.Userdata, Type: wasip1.EventTypeClock}
			if !haveClock || timeout < sleepTimeout {
				sleepTimeout = timeout
			}
			haveClock = true
			// stash the computed timeout for re-use after the sleep
			subs[i].Clock.Timeout = timeout
		case wasip1.EventTypeFdRead:
			ev, ready := evalFdRead(s, resolver)
			events[i] = ev
			if ready {
				anyFDReady = true
			}
		case wasip1.EventTypeFdWrite:
			ev, ready := evalFdWrite(s, resolver)
			events[i] = ev
			if ready {
				anyFDReady = true
			}
		}
	}

	if !anyFDReady && haveClock && sleepTimeout > 0 {
		timer.Sleep(time.Duration(sleepTimeout))
		for i, s := range subs {
			if s.Type == wasip1.EventTypeFdRead {
				ev, _ := evalFdRead(s, resolver)
				events[i] = ev
			} else if s.Type == wasip1.EventTypeFdWrite {
				ev, _ := evalFdWrite(s, resolver)
				events[i] = ev
			}
		}
	}

	return events
}

// effectiveTimeout returns the clock subscription's timeout in
// nanoseconds: the relative value as given, or the absolute value minus
// the current realtime clock, clamped at zero, when abstime is set.
func effectiveTimeout(c memview.SubscriptionClock, clk hostio.Clock) uint64 {
	if !c.Flags.Has(wasip1.SubscriptionClockAbstime) {
		return c.Timeout
	}
	now := uint64(clk.Realtime().UnixNano())
	if c.Timeout <= now {
		return 0
	}
	return c.Timeout - now
}

func evalFdRead(s memview.Subscription, resolver FDResolver) (memview.Event, bool) {
	ev := memview.Event{Userdata: s.Userdata, Type: wasip1.EventTypeFdRead}
	n, err := resolver.BytesAvailable(s.FD)
	if err != nil {
		ev.Error = wasip1.ToErrno(err)
		return ev, false
	}
	ev.Nbytes = n
	return ev, n > 0
}

func evalFdWrite(s memview.Subscription, resolver FDResolver) (memview.Event, bool) {
	ev := memview.Event{Userdata: s.Userdata, Type: wasip1.EventTypeFdWrite}
	if err := resolver.Writable(s.FD); err != nil {
		ev.Error = wasip1.ToErrno(err)
		return ev, false
	}
	return ev, true
}
