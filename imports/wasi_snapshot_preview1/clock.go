package wasi_snapshot_preview1

import (
	"github.com/wasihost/core/api"
	"github.com/wasihost/core/internal/wasip1"
)

// ClockResGet writes the resolution, in nanoseconds, of the given clock.
// Both clocks supported here (realtime, monotonic) report 1ns resolution;
// the process-cputime and thread-cputime ids are not backed by a host
// collaborator and return inval.
func (c *Context) ClockResGet(mem api.Memory, id uint32, resultPtr uint32) wasip1.Errno {
	switch wasip1.Clockid(id) {
	case wasip1.ClockidRealtime, wasip1.ClockidMonotonic:
		if !mem.WriteUint64Le(resultPtr, 1) {
			return wasip1.ErrnoFault
		}
		return wasip1.ErrnoSuccess
	default:
		return wasip1.ErrnoInval
	}
}

// ClockTimeGet writes the current reading of the given clock, in
// nanoseconds, ignoring the requested precision (the host collaborators
// do not expose coarser sampling).
func (c *Context) ClockTimeGet(mem api.Memory, id uint32, _ uint64, resultPtr uint32) wasip1.Errno {
	var ns uint64
	switch wasip1.Clockid(id) {
	case wasip1.ClockidRealtime:
		ns = uint64(c.clock.Realtime().UnixNano())
	case wasip1.ClockidMonotonic:
		ns = uint64(c.clock.Monotonic().Nanoseconds())
	default:
		return wasip1.ErrnoInval
	}
	if !mem.WriteUint64Le(resultPtr, ns) {
		return wasip1.ErrnoFault
	}
	return wasip1.ErrnoSuccess
}
