package wasi_snapshot_preview1

import (
	"github.com/wasihost/core/api"
	"github.com/wasihost/core/internal/logging"
	"github.com/wasihost/core/internal/wasip1"
)

// RandomGet fills buf with length bytes pulled from the crypto
// collaborator. The host's entropy source is never exposed beyond this
// single call; no seed or state is retained here.
func (c *Context) RandomGet(mem api.Memory, buf, length uint32) wasip1.Errno {
	b, err := c.crypto.RandomGet(int(length))
	if err != nil {
		return wasip1.ToErrno(err)
	}
	if !mem.Write(buf, b) {
		return wasip1.ErrnoFault
	}
	c.trace(logging.ScopeRandom, wasip1.RandomGetName, nil)
	return wasip1.ErrnoSuccess
}
