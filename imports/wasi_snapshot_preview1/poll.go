package wasi_snapshot_preview1

import (
	"github.com/wasihost/core/api"
	"github.com/wasihost/core/internal/fdtable"
	"github.com/wasihost/core/internal/logging"
	"github.com/wasihost/core/internal/memview"
	"github.com/wasihost/core/internal/poll"
	"github.com/wasihost/core/internal/wasip1"
)

// dispatcherResolver adapts the fd table and device registry to
// poll.FDResolver, so the poll engine never needs to know how
// descriptors or drivers are stored.
type dispatcherResolver struct {
	c *Context
}

func (r dispatcherResolver) BytesAvailable(fd uint32) (uint64, error) {
	e, drv, errno := r.c.lookup(fd)
	if errno != wasip1.ErrnoSuccess {
		return 0, errno
	}
	if !e.RightsBase.Has(wasip1.RightFdRead) {
		return 0, wasip1.ErrnoPerm
	}
	if e.Kind == fdtable.KindRegularFile {
		st, errno := drv.FdFilestatGet(e.InoID)
		if errno != wasip1.ErrnoSuccess {
			return 0, errno
		}
		if e.Cursor >= st.Size {
			return 0, nil
		}
		return st.Size - e.Cursor, nil
	}
	n, errno := drv.FdBytesAvailable(e.InoID)
	if errno != wasip1.ErrnoSuccess {
		return 0, errno
	}
	return n, nil
}

func (r dispatcherResolver) Writable(fd uint32) error {
	e, _, errno := r.c.lookup(fd)
	if errno != wasip1.ErrnoSuccess {
		return errno
	}
	if !e.RightsBase.Has(wasip1.RightFdWrite) {
		return wasip1.ErrnoPerm
	}
	return nil
}

// PollOneoff decodes n subscriptions, resolves them through the poll
// engine's single suspension point, and writes back however many events
// that produced (always n: every subscription resolves to exactly one
// event, possibly carrying an error).
func (c *Context) PollOneoff(mem api.Memory, inPtr, outPtr uint32, n uint32, resultSizePtr uint32) wasip1.Errno {
	subs := make([]memview.Subscription, n)
	for i := uint32(0); i < n; i++ {
		s, err := memview.ReadSubscription(mem, inPtr+i*wasip1.SubscriptionSize)
		if err != nil {
			return wasip1.ErrnoFault
		}
		subs[i] = s
	}

	events := poll.Run(subs, dispatcherResolver{c}, c.clock, c.timer)

	for i, ev := range events {
		if err := ev.WriteTo(mem, outPtr+uint32(i)*wasip1.EventSize); err != nil {
			return wasip1.ErrnoFault
		}
	}
	if !mem.WriteUint32Le(resultSizePtr, uint32(len(events))) {
		return wasip1.ErrnoFault
	}
	c.trace(logging.ScopePoll, wasip1.PollOneoffName, nil)
	return wasip1.ErrnoSuccess
}
