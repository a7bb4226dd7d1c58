// Package logging provides opt-in, scope-filtered tracing of syscall
// entry points. It is deliberately decoupled from the dispatcher so that
// tracing can be silenced entirely (the common case) without either side
// depending on the other beyond this package's Scopes type.
package logging

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Scopes is a bitmask selecting which syscall families get traced.
type Scopes uint32

const (
	ScopeNone       = Scopes(0)
	ScopeClock      Scopes = 1 << iota
	ScopeProc
	ScopeFilesystem
	ScopeMemory
	ScopePoll
	ScopeRandom
	ScopeSock
	ScopeAll = Scopes(0xffffffff)
)

func scopeName(s Scopes) string {
	switch s {
	case ScopeClock:
		return "clock"
	case ScopeProc:
		return "proc"
	case ScopeFilesystem:
		return "filesystem"
	case ScopeMemory:
		return "memory"
	case ScopePoll:
		return "poll"
	case ScopeRandom:
		return "random"
	case ScopeSock:
		return "sock"
	default:
		return fmt.Sprintf("<unknown=%d>", s)
	}
}

// IsEnabled returns true if scope (or any scope in a group) is enabled.
func (f Scopes) IsEnabled(scope Scopes) bool { return f&scope != 0 }

func (f Scopes) String() string {
	if f == ScopeAll {
		return "all"
	}
	var b strings.Builder
	for i := 0; i <= 31; i++ {
		target := Scopes(1 << i)
		if f.IsEnabled(target) {
			if b.Len() > 0 {
				b.WriteByte('|')
			}
			b.WriteString(scopeName(target))
		}
	}
	return b.String()
}

// Logger traces syscall entry/exit. It is backed by logrus so that
// embedders get structured fields and leveled output for free; nil is a
// valid *Logger and traces nothing, matching ScopeNone.
type Logger struct {
	scopes Scopes
	entry  *logrus.Entry
}

// New builds a Logger that only emits entries for the given scopes,
// writing through out (stderr if nil).
func New(scopes Scopes, out *logrus.Logger) *Logger {
	if out == nil {
		out = logrus.New()
	}
	return &Logger{scopes: scopes, entry: logrus.NewEntry(out)}
}

// Trace logs one syscall invocation if scope is enabled. fields are
// key/value pairs describing the decoded arguments and result.
func (l *Logger) Trace(scope Scopes, name string, fields logrus.Fields) {
	if l == nil || !l.scopes.IsEnabled(scope) {
		return
	}
	l.entry.WithFields(fields).Info(name)
}
