package memview

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wasihost/core/internal/wasip1"
)

// fakeMemory is a minimal api.Memory backed by a plain byte slice, enough
// to exercise bounds checks without pulling in a real wasm engine.
type fakeMemory struct {
	buf []byte
}

func newFakeMemory(size uint32) *fakeMemory { return &fakeMemory{buf: make([]byte, size)} }

func (m *fakeMemory) Size() uint32 { return uint32(len(m.buf)) }

func (m *fakeMemory) ReadByte(offset uint32) (byte, bool) {
	if offset >= uint32(len(m.buf)) {
		return 0, false
	}
	return m.buf[offset], true
}

func (m *fakeMemory) ReadUint16Le(offset uint32) (uint16, bool) {
	if offset+2 > uint32(len(m.buf)) {
		return 0, false
	}
	return uint16(m.buf[offset]) | uint16(m.buf[offset+1])<<8, true
}

func (m *fakeMemory) ReadUint32Le(offset uint32) (uint32, bool) {
	if offset+4 > uint32(len(m.buf)) {
		return 0, false
	}
	v := uint32(0)
	for i := 0; i < 4; i++ {
		v |= uint32(m.buf[offset+uint32(i)]) << (8 * i)
	}
	return v, true
}

func (m *fakeMemory) ReadUint64Le(offset uint32) (uint64, bool) {
	if offset+8 > uint32(len(m.buf)) {
		return 0, false
	}
	v := uint64(0)
	for i := 0; i < 8; i++ {
		v |= uint64(m.buf[offset+uint32(i)]) << (8 * i)
	}
	return v, true
}

func (m *fakeMemory) Read(offset, byteCount uint32) ([]byte, bool) {
	if offset+byteCount > uint32(len(m.buf)) {
		return nil, false
	}
	return m.buf[offset : offset+byteCount], true
}

func (m *fakeMemory) WriteByte(offset uint32, v byte) bool {
	if offset >= uint32(len(m.buf)) {
		return false
	}
	m.buf[offset] = v
	return true
}

func (m *fakeMemory) WriteUint32Le(offset, v uint32) bool {
	if offset+4 > uint32(len(m.buf)) {
		return false
	}
	for i := 0; i < 4; i++ {
		m.buf[offset+uint32(i)] = byte(v >> (8 * i))
	}
	return true
}

func (m *fakeMemory) WriteUint64Le(offset uint32, v uint64) bool {
	if offset+8 > uint32(len(m.buf)) {
		return false
	}
	for i := 0; i < 8; i++ {
		m.buf[offset+uint32(i)] = byte(v >> (8 * i))
	}
	return true
}

func (m *fakeMemory) Write(offset uint32, v []byte) bool {
	if offset+uint32(len(v)) > uint32(len(m.buf)) {
		return false
	}
	copy(m.buf[offset:], v)
	return true
}

func TestFilestat_WriteTo(t *testing.T) {
	mem := newFakeMemory(64)
	fs := Filestat{
		Dev: 1, Ino: 42, Filetype: wasip1.FiletypeRegularFile,
		Nlink: 1, Size: 100, Atim: 10, Mtim: 20, Ctim: 30,
	}
	require.NoError(t, fs.WriteTo(mem, 0))

	dev, _ := mem.ReadUint64Le(0)
	require.Equal(t, uint64(1), dev)
	ino, _ := mem.ReadUint64Le(8)
	require.Equal(t, uint64(42), ino)
	filetype, _ := mem.ReadByte(16)
	require.Equal(t, byte(wasip1.FiletypeRegularFile), filetype)
	size, _ := mem.ReadUint64Le(32)
	require.Equal(t, uint64(100), size)
}

func TestFilestat_WriteTo_outOfMemory(t *testing.T) {
	mem := newFakeMemory(32)
	var fs Filestat
	err := fs.WriteTo(mem, 0)
	require.Error(t, err)
	require.IsType(t, &OOM{}, err)
}

func TestFdstat_WriteTo(t *testing.T) {
	mem := newFakeMemory(24)
	fd := Fdstat{
		Filetype:         wasip1.FiletypeCharacterDevice,
		Flags:            wasip1.FdflagsAppend,
		RightsBase:       wasip1.RightFdRead,
		RightsInheriting: wasip1.RightFdWrite,
	}
	require.NoError(t, fd.WriteTo(mem, 0))

	filetype, _ := mem.ReadByte(0)
	require.Equal(t, byte(wasip1.FiletypeCharacterDevice), filetype)
	flags, _ := mem.ReadUint16Le(2)
	require.Equal(t, uint16(wasip1.FdflagsAppend), flags)
	base, _ := mem.ReadUint64Le(8)
	require.Equal(t, uint64(wasip1.RightFdRead), base)
}

func TestPrestat_WriteTo(t *testing.T) {
	mem := newFakeMemory(8)
	p := Prestat{Len: 7}
	require.NoError(t, p.WriteTo(mem, 0))

	tag, _ := mem.ReadByte(0)
	require.Equal(t, byte(0), tag)
	length, _ := mem.ReadUint32Le(4)
	require.Equal(t, uint32(7), length)
}

func TestReadIOVecs(t *testing.T) {
	mem := newFakeMemory(64)
	// one iovec: buf=16, buf_len=8
	mem.WriteUint32Le(0, 16)
	mem.WriteUint32Le(4, 8)

	vecs, err := ReadIOVecs(mem, 0, 1)
	require.NoError(t, err)
	require.Len(t, vecs, 1)
	require.Len(t, vecs[0], 8)
}

func TestReadIOVecs_outOfMemory(t *testing.T) {
	mem := newFakeMemory(8)
	mem.WriteUint32Le(0, 100)
	mem.WriteUint32Le(4, 8)

	_, err := ReadIOVecs(mem, 0, 1)
	require.Error(t, err)
}

func TestReadString(t *testing.T) {
	mem := newFakeMemory(16)
	mem.Write(0, []byte("hello"))

	s, err := ReadString(mem, 0, 5)
	require.NoError(t, err)
	require.Equal(t, "hello", s)
}

func TestReadSubscription_clock(t *testing.T) {
	mem := newFakeMemory(48)
	mem.WriteUint64Le(0, 99)                                   // userdata
	mem.WriteByte(8, byte(wasip1.EventTypeClock))               // tag
	mem.WriteUint32Le(16, uint32(wasip1.ClockidMonotonic))      // clock id
	mem.WriteUint64Le(24, 1_000_000)                            // timeout
	mem.WriteUint64Le(32, 0) // precision
	writeU16 := func(off uint32, v uint16) {
		mem.WriteByte(off, byte(v))
		mem.WriteByte(off+1, byte(v>>8))
	}
	writeU16(40, uint16(wasip1.SubscriptionClockAbstime))

	s, err := ReadSubscription(mem, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(99), s.Userdata)
	require.Equal(t, wasip1.EventTypeClock, s.Type)
	require.Equal(t, wasip1.ClockidMonotonic, s.Clock.ID)
	require.Equal(t, uint64(1_000_000), s.Clock.Timeout)
	require.True(t, s.Clock.Flags.Has(wasip1.SubscriptionClockAbstime))
}

func TestReadSubscription_fdRead(t *testing.T) {
	mem := newFakeMemory(48)
	mem.WriteUint64Le(0, 5)
	mem.WriteByte(8, byte(wasip1.EventTypeFdRead))
	mem.WriteUint32Le(16, 3)

	s, err := ReadSubscription(mem, 0)
	require.NoError(t, err)
	require.Equal(t, wasip1.EventTypeFdRead, s.Type)
	require.Equal(t, uint32(3), s.FD)
}

func TestEvent_WriteTo(t *testing.T) {
	mem := newFakeMemory(32)
	e := Event{Userdata: 1, Error: wasip1.ErrnoAgain, Type: wasip1.EventTypeFdRead, Nbytes: 10}
	require.NoError(t, e.WriteTo(mem, 0))

	userdata, _ := mem.ReadUint64Le(0)
	require.Equal(t, uint64(1), userdata)
	errno, _ := mem.ReadUint16Le(8)
	require.Equal(t, uint16(wasip1.ErrnoAgain), errno)
	typ, _ := mem.ReadByte(10)
	require.Equal(t, byte(wasip1.EventTypeFdRead), typ)
}
