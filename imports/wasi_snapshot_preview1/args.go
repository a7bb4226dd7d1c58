package wasi_snapshot_preview1

import (
	"github.com/wasihost/core/api"
	"github.com/wasihost/core/internal/logging"
	"github.com/wasihost/core/internal/wasip1"
)

// ArgsSizesGet writes the argument count to resultArgc and the combined
// null-terminated byte length of every argument to resultArgvLen.
//
// For args "a", "bc" this writes argc=2, argv_len=5
// (len("a\x00")+len("bc\x00")).
func (c *Context) ArgsSizesGet(mem api.Memory, resultArgc, resultArgvLen uint32) wasip1.Errno {
	if !mem.WriteUint32Le(resultArgc, uint32(len(c.args))) || !mem.WriteUint32Le(resultArgvLen, c.argsSize) {
		return wasip1.ErrnoFault
	}
	c.trace(logging.ScopeProc, wasip1.ArgsSizesGetName, nil)
	return wasip1.ErrnoSuccess
}

// ArgsGet writes argc uint32 little-endian offsets into argv, each
// pointing into argvBuf, where the null-terminated argument bytes
// themselves live.
func (c *Context) ArgsGet(mem api.Memory, argv, argvBuf uint32) wasip1.Errno {
	return writeOffsetsAndStrings(mem, c.args, argv, argvBuf)
}

// EnvironSizesGet is ArgsSizesGet's counterpart for "K=V" environment
// pairs.
func (c *Context) EnvironSizesGet(mem api.Memory, resultCount, resultBufLen uint32) wasip1.Errno {
	if !mem.WriteUint32Le(resultCount, uint32(len(c.env))) || !mem.WriteUint32Le(resultBufLen, c.envSize) {
		return wasip1.ErrnoFault
	}
	return wasip1.ErrnoSuccess
}

// EnvironGet is ArgsGet's counterpart for "K=V" pairs.
func (c *Context) EnvironGet(mem api.Memory, environ, environBuf uint32) wasip1.Errno {
	return writeOffsetsAndStrings(mem, c.env, environ, environBuf)
}

func writeOffsetsAndStrings(mem api.Memory, values []string, offsets, buf uint32) wasip1.Errno {
	cursor := buf
	for i, v := range values {
		if !mem.WriteUint32Le(offsets+uint32(i)*4, cursor) {
			return wasip1.ErrnoFault
		}
		if !mem.Write(cursor, []byte(v)) {
			return wasip1.ErrnoFault
		}
		cursor += uint32(len(v))
		if !mem.WriteByte(cursor, 0) {
			return wasip1.ErrnoFault
		}
		cursor++
	}
	return wasip1.ErrnoSuccess
}
