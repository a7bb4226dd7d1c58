package device

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wasihost/core/internal/wasip1"
)

type fakeConsole struct {
	logged  []string
	errored []string
	writes  map[string][]byte
}

func newFakeConsole() *fakeConsole {
	return &fakeConsole{writes: map[string][]byte{}}
}

func (c *fakeConsole) Log(text string)   { c.logged = append(c.logged, text) }
func (c *fakeConsole) Error(text string) { c.errored = append(c.errored, text) }
func (c *fakeConsole) Write(uri string, content []byte) error {
	c.writes[uri] = content
	return nil
}

func TestConsole_FdWrite_routesByFD(t *testing.T) {
	fc := newFakeConsole()
	d := NewConsole(fc)

	_, errno := d.FdWrite(1, 0, [][]byte{[]byte("stdout line")})
	require.Equal(t, wasip1.ErrnoSuccess, errno)
	require.Equal(t, []string{"stdout line"}, fc.logged)

	_, errno = d.FdWrite(2, 0, [][]byte{[]byte("stderr line")})
	require.Equal(t, wasip1.ErrnoSuccess, errno)
	require.Equal(t, []string{"stderr line"}, fc.errored)
}

func TestConsole_FdWrite_otherFDsGoThroughByteSink(t *testing.T) {
	fc := newFakeConsole()
	d := NewConsole(fc)

	_, errno := d.FdWrite(5, 0, [][]byte{[]byte("data")})
	require.Equal(t, wasip1.ErrnoSuccess, errno)
	require.Equal(t, []byte("data"), fc.writes["console:"])
}

func TestConsole_FdPrestatGet_neverPreopens(t *testing.T) {
	d := NewConsole(newFakeConsole())
	_, ok := d.FdPrestatGet()
	require.False(t, ok)
}
