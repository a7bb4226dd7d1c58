// Package memview implements the Memory View component: typed accessors
// over a guest's linear memory for the fixed-layout structs of the WASI
// preview-1 ABI. Every offset and size here matches the external struct
// layout table; callers should not hand-roll their own byte math.
package memview

import (
	"github.com/wasihost/core/api"
	"github.com/wasihost/core/internal/wasip1"
)

// OOM is returned by the read/write helpers when a requested span falls
// outside the guest's linear memory.
type OOM struct {
	Offset, ByteCount uint32
}

func (e *OOM) Error() string {
	return "out of memory range"
}

// IOVec is a decoded (buf, buf_len) pair: a byte span backed directly by
// guest memory. Writes to a Read span are visible to the guest (used for
// fd_read); CIOVecs are read-only views used for fd_write.
type IOVec = []byte

// ReadIOVecs decodes n adjacent 8-byte (buf:u32, buf_len:u32) records
// starting at ptr into spans of guest memory, usable as scatter targets
// for fd_read/fd_pread.
func ReadIOVecs(mem api.Memory, ptr uint32, n uint32) ([]IOVec, error) {
	return readVecs(mem, ptr, n)
}

// ReadCIOVecs is identical in layout to ReadIOVecs; the distinction is
// only that callers treat the spans as read-only sources for
// fd_write/fd_pwrite.
func ReadCIOVecs(mem api.Memory, ptr uint32, n uint32) ([]IOVec, error) {
	return readVecs(mem, ptr, n)
}

func readVecs(mem api.Memory, ptr uint32, n uint32) ([]IOVec, error) {
	vecs := make([]IOVec, n)
	for i := uint32(0); i < n; i++ {
		recOffset := ptr + i*wasip1.IovecSize
		buf, ok := mem.ReadUint32Le(recOffset)
		if !ok {
			return nil, &OOM{recOffset, 4}
		}
		bufLen, ok := mem.ReadUint32Le(recOffset + 4)
		if !ok {
			return nil, &OOM{recOffset + 4, 4}
		}
		span, ok := mem.Read(buf, bufLen)
		if !ok {
			return nil, &OOM{buf, bufLen}
		}
		vecs[i] = span
	}
	return vecs, nil
}

// ReadString decodes a UTF-8 byte slice at (ptr, length) as a Go string.
// The dispatcher calls this exactly once per syscall per path argument.
func ReadString(mem api.Memory, ptr, length uint32) (string, error) {
	b, ok := mem.Read(ptr, length)
	if !ok {
		return "", &OOM{ptr, length}
	}
	return string(b), nil
}

// Filestat is the 64-byte struct returned by fd_filestat_get and
// path_filestat_get.
//
//	dev:u64 @0  ino:u64 @8  filetype:u8 @16  nlink:u64 @24
//	size:u64 @32  atim:u64 @40  mtim:u64 @48  ctim:u64 @56
type Filestat struct {
	Dev      uint64
	Ino      uint64
	Filetype wasip1.Filetype
	Nlink    uint64
	Size     uint64
	Atim     uint64
	Mtim     uint64
	Ctim     uint64
}

// WriteTo writes the struct at ptr, or returns an *OOM if any of the 64
// bytes fall outside guest memory. Nothing is written if any write fails
// partway: callers invoke this only after the driver call has already
// succeeded, so a partial write here would itself be a bug, not a
// recoverable guest error.
func (f Filestat) WriteTo(mem api.Memory, ptr uint32) error {
	if uint64(ptr)+wasip1.FilestatSize > uint64(mem.Size()) {
		return &OOM{ptr, wasip1.FilestatSize}
	}
	ok := mem.WriteUint64Le(ptr+0, f.Dev) &&
		mem.WriteUint64Le(ptr+8, f.Ino) &&
		mem.WriteByte(ptr+16, byte(f.Filetype)) &&
		mem.WriteUint64Le(ptr+24, f.Nlink) &&
		mem.WriteUint64Le(ptr+32, f.Size) &&
		mem.WriteUint64Le(ptr+40, f.Atim) &&
		mem.WriteUint64Le(ptr+48, f.Mtim) &&
		mem.WriteUint64Le(ptr+56, f.Ctim)
	if !ok {
		return &OOM{ptr, wasip1.FilestatSize}
	}
	return nil
}

// Fdstat is the 24-byte struct returned by fd_fdstat_get.
//
//	filetype:u8 @0  flags:u16 @2  rights_base:u64 @8  rights_inheriting:u64 @16
type Fdstat struct {
	Filetype          wasip1.Filetype
	Flags             wasip1.Fdflags
	RightsBase        wasip1.Rights
	RightsInheriting  wasip1.Rights
}

func (f Fdstat) WriteTo(mem api.Memory, ptr uint32) error {
	ok := mem.WriteByte(ptr+0, byte(f.Filetype)) &&
		writeUint16Le(mem, ptr+2, uint16(f.Flags)) &&
		mem.WriteUint64Le(ptr+8, uint64(f.RightsBase)) &&
		mem.WriteUint64Le(ptr+16, uint64(f.RightsInheriting))
	if !ok {
		return &OOM{ptr, wasip1.FdstatSize}
	}
	return nil
}

// writeUint16Le supplies the u16 write that api.Memory lacks (it has
// WriteUint32Le and WriteUint64Le only); Fdstat.WriteTo and Event.WriteTo
// use it rather than widen api.Memory for these two callers.
func writeUint16Le(mem api.Memory, ptr uint32, v uint16) bool {
	return mem.WriteByte(ptr, byte(v)) && mem.WriteByte(ptr+1, byte(v>>8))
}

// Prestat is the 8-byte struct returned by fd_prestat_get. The tag is
// always 0 ("dir") in this implementation: only directories and devices
// are pre-opened.
type Prestat struct {
	Len uint32
}

func (p Prestat) WriteTo(mem api.Memory, ptr uint32) error {
	ok := mem.WriteByte(ptr+0, 0) && mem.WriteUint32Le(ptr+4, p.Len)
	if !ok {
		return &OOM{ptr, wasip1.PrestatSize}
	}
	return nil
}

// Dirent is the 24-byte fixed header preceding each directory entry's
// name bytes in the fd_readdir output buffer.
//
//	d_next:u64 @0  d_ino:u64 @8  d_namlen:u32 @16  d_type:u8 @20
type Dirent struct {
	Next     uint64
	Ino      uint64
	Namelen  uint32
	Filetype wasip1.Filetype
}

func (d Dirent) WriteTo(mem api.Memory, ptr uint32) error {
	ok := mem.WriteUint64Le(ptr+0, d.Next) &&
		mem.WriteUint64Le(ptr+8, d.Ino) &&
		mem.WriteUint32Le(ptr+16, d.Namelen) &&
		mem.WriteByte(ptr+20, byte(d.Filetype))
	if !ok {
		return &OOM{ptr, wasip1.DirentSize}
	}
	return nil
}

// Event is the 32-byte struct written by poll_oneoff for each resolved
// subscription, in subscription order.
//
//	userdata:u64 @0  error:u16 @8  type:u8 @10  nbytes:u64 @16  rwflags:u16 @24
type Event struct {
	Userdata uint64
	Error    wasip1.Errno
	Type     wasip1.EventType
	Nbytes   uint64
	Rwflags  wasip1.Eventrwflags
}

func (e Event) WriteTo(mem api.Memory, ptr uint32) error {
	ok := mem.WriteUint64Le(ptr+0, e.Userdata) &&
		writeUint16Le(mem, ptr+8, uint16(e.Error)) &&
		mem.WriteByte(ptr+10, byte(e.Type)) &&
		mem.WriteUint64Le(ptr+16, e.Nbytes) &&
		writeUint16Le(mem, ptr+24, uint16(e.Rwflags))
	if !ok {
		return &OOM{ptr, wasip1.EventSize}
	}
	return nil
}

// SubscriptionClock is the clock-tagged payload of a subscription.
//
//	id:u32 @0  timeout:u64 @8  precision:u64 @16  flags:u16 @24
type SubscriptionClock struct {
	ID        wasip1.Clockid
	Timeout   uint64
	Precision uint64
	Flags     wasip1.Subclockflags
}

// Subscription is the 48-byte tagged union read from poll_oneoff's input
// array.
//
//	userdata:u64 @0  tag:u8 @8  payload @16
//
// The fd variant's payload is a single u32 at offset 16; the clock
// variant's payload is the 32-byte SubscriptionClock starting at the same
// offset (the 7 bytes between the tag and the payload are padding).
type Subscription struct {
	Userdata uint64
	Type     wasip1.EventType
	Clock    SubscriptionClock
	FD       uint32
}

func ReadSubscription(mem api.Memory, ptr uint32) (Subscription, error) {
	var s Subscription
	userdata, ok := mem.ReadUint64Le(ptr)
	if !ok {
		return s, &OOM{ptr, wasip1.SubscriptionSize}
	}
	tag, ok := mem.ReadByte(ptr + 8)
	if !ok {
		return s, &OOM{ptr + 8, 1}
	}
	s.Userdata = userdata
	s.Type = wasip1.EventType(tag)
	switch s.Type {
	case wasip1.EventTypeClock:
		id, ok1 := mem.ReadUint32Le(ptr + 16)
		timeout, ok2 := mem.ReadUint64Le(ptr + 24)
		precision, ok3 := mem.ReadUint64Le(ptr + 32)
		flags, ok4 := mem.ReadUint16Le(ptr + 40)
		if !(ok1 && ok2 && ok3 && ok4) {
			return s, &OOM{ptr + 16, wasip1.SubscriptionClockSize}
		}
		s.Clock = SubscriptionClock{
			ID:        wasip1.Clockid(id),
			Timeout:   timeout,
			Precision: precision,
			Flags:     wasip1.Subclockflags(flags),
		}
	case wasip1.EventTypeFdRead, wasip1.EventTypeFdWrite:
		fd, ok := mem.ReadUint32Le(ptr + 16)
		if !ok {
			return s, &OOM{ptr + 16, wasip1.SubscriptionFdSize}
		}
		s.FD = fd
	}
	return s, nil
}
