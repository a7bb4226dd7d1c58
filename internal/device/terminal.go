package device

import (
	"github.com/wasihost/core/internal/fsapi"
	"github.com/wasihost/core/internal/hostio"
	"github.com/wasihost/core/internal/wasip1"
)

// Terminal is the character-device Driver variant backed by a host
// terminal. fd_read pulls a lazy byte stream from the host and buffers
// any leftover bytes that didn't fit the caller's buffer, draining them
// on the next read before asking the host for more.
type Terminal struct {
	fsapi.Unimplemented

	URI string
	T   hostio.Terminal

	leftover []byte
	preopen  string
	preopenDone bool
}

func NewTerminal(uri string, t hostio.Terminal, preopenName string) *Terminal {
	return &Terminal{URI: uri, T: t, preopen: preopenName}
}

func (d *Terminal) FdPrestatGet() (string, bool) {
	if d.preopenDone || d.preopen == "" {
		return "", false
	}
	d.preopenDone = true
	return d.preopen, true
}

func (d *Terminal) FdRead(_ uint32, _ uint64, bufs [][]byte) (uint64, wasip1.Errno) {
	if len(d.leftover) == 0 {
		chunk, err := d.T.Read(d.URI)
		if err != nil {
			return 0, wasip1.ToErrno(err)
		}
		d.leftover = chunk
	}
	var n uint64
	src := d.leftover
	for _, buf := range bufs {
		if len(src) == 0 {
			break
		}
		c := copy(buf, src)
		src = src[c:]
		n += uint64(c)
	}
	d.leftover = src
	return n, wasip1.ErrnoSuccess
}

func (d *Terminal) FdWrite(_ uint32, _ uint64, bufs [][]byte) (uint64, wasip1.Errno) {
	var total int
	for _, b := range bufs {
		total += len(b)
	}
	joined := make([]byte, 0, total)
	for _, b := range bufs {
		joined = append(joined, b...)
	}
	if err := d.T.Write(d.URI, joined); err != nil {
		return 0, wasip1.ToErrno(err)
	}
	return uint64(len(joined)), wasip1.ErrnoSuccess
}

func (d *Terminal) FdBytesAvailable(uint64) (uint64, wasip1.Errno) {
	return uint64(len(d.leftover)), wasip1.ErrnoSuccess
}

func (d *Terminal) FdFilestatGet(uint64) (fsapi.Filestat, wasip1.Errno) {
	return fsapi.Filestat{Filetype: wasip1.FiletypeCharacterDevice, Nlink: 1}, wasip1.ErrnoSuccess
}

func (d *Terminal) FdClose(uint64) wasip1.Errno { return wasip1.ErrnoSuccess }

func (d *Terminal) FdFdstatSetFlags(uint64, wasip1.Fdflags) wasip1.Errno { return wasip1.ErrnoSuccess }
