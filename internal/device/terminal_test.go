package device

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wasihost/core/internal/wasip1"
)

type fakeTerminal struct {
	reads  [][]byte
	readAt int
	writes [][]byte
}

func (t *fakeTerminal) Read(string) ([]byte, error) {
	if t.readAt >= len(t.reads) {
		return nil, nil
	}
	b := t.reads[t.readAt]
	t.readAt++
	return b, nil
}

func (t *fakeTerminal) Write(_ string, content []byte) error {
	t.writes = append(t.writes, content)
	return nil
}

func TestTerminal_FdRead_buffersLeftoverAcrossCalls(t *testing.T) {
	ft := &fakeTerminal{reads: [][]byte{[]byte("hello world")}}
	d := NewTerminal("tty:0", ft, "")

	first := make([]byte, 5)
	n, errno := d.FdRead(0, 0, [][]byte{first})
	require.Equal(t, wasip1.ErrnoSuccess, errno)
	require.Equal(t, uint64(5), n)
	require.Equal(t, "hello", string(first))

	second := make([]byte, 6)
	n, errno = d.FdRead(0, 0, [][]byte{second})
	require.Equal(t, wasip1.ErrnoSuccess, errno)
	require.Equal(t, uint64(6), n)
	require.Equal(t, " world", string(second))

	// the host is not asked again until the leftover is drained
	require.Equal(t, 1, ft.readAt)
}

func TestTerminal_FdWrite_joinsIOVecs(t *testing.T) {
	ft := &fakeTerminal{}
	d := NewTerminal("tty:0", ft, "")

	n, errno := d.FdWrite(1, 0, [][]byte{[]byte("foo"), []byte("bar")})
	require.Equal(t, wasip1.ErrnoSuccess, errno)
	require.Equal(t, uint64(6), n)
	require.Equal(t, "foobar", string(ft.writes[0]))
}

func TestTerminal_FdPrestatGet_returnsOnceThenExhausted(t *testing.T) {
	d := NewTerminal("tty:0", &fakeTerminal{}, "/dev/tty")

	name, ok := d.FdPrestatGet()
	require.True(t, ok)
	require.Equal(t, "/dev/tty", name)

	_, ok = d.FdPrestatGet()
	require.False(t, ok)
}

func TestTerminal_FdBytesAvailable_reportsLeftoverOnly(t *testing.T) {
	ft := &fakeTerminal{reads: [][]byte{[]byte("abc")}}
	d := NewTerminal("tty:0", ft, "")

	n, errno := d.FdBytesAvailable(0)
	require.Equal(t, wasip1.ErrnoSuccess, errno)
	require.Equal(t, uint64(0), n, "no read has pulled from the host yet")

	buf := make([]byte, 1)
	d.FdRead(0, 0, [][]byte{buf})

	n, errno = d.FdBytesAvailable(0)
	require.Equal(t, wasip1.ErrnoSuccess, errno)
	require.Equal(t, uint64(2), n)
}
