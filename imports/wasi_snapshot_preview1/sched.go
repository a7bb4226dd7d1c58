package wasi_snapshot_preview1

import "github.com/wasihost/core/internal/wasip1"

// SchedYield is a cooperative no-op: scheduling is single-threaded, so
// there is nothing to yield to.
func (c *Context) SchedYield() wasip1.Errno {
	return wasip1.ErrnoSuccess
}
