package wasi_snapshot_preview1

import "github.com/wasihost/core/internal/wasip1"

// Sockets are out of scope: every sock_* entry point returns not-supported
// without touching the fd table, matching sockets being excluded entirely
// from the device driver trait.

func (c *Context) SockAccept(uint32, uint32) wasip1.Errno { return wasip1.ErrnoNosys }

func (c *Context) SockRecv(uint32, uint32, uint32, uint32) wasip1.Errno {
	return wasip1.ErrnoNosys
}

func (c *Context) SockSend(uint32, uint32, uint32, uint32) wasip1.Errno {
	return wasip1.ErrnoNosys
}

func (c *Context) SockShutdown(uint32, uint32) wasip1.Errno { return wasip1.ErrnoNosys }
