package device

import (
	"github.com/wasihost/core/internal/fsapi"
	"github.com/wasihost/core/internal/hostio"
	"github.com/wasihost/core/internal/wasip1"
)

// Console is the character-device Driver variant that routes fd_write by
// fd alone: fd 2 goes to the host's Error sink, fd 1 to its Log sink, and
// every other fd to the byte-sink URI "console:". There is no selection by
// URI authority. fd_read is unsupported: the console has no input stream.
type Console struct {
	fsapi.Unimplemented

	C hostio.Console
}

func NewConsole(c hostio.Console) *Console {
	return &Console{C: c}
}

func (d *Console) FdWrite(fd uint32, _ uint64, bufs [][]byte) (uint64, wasip1.Errno) {
	var total int
	for _, b := range bufs {
		total += len(b)
	}
	joined := make([]byte, 0, total)
	for _, b := range bufs {
		joined = append(joined, b...)
	}
	switch fd {
	case 2:
		d.C.Error(string(joined))
	case 1:
		d.C.Log(string(joined))
	default:
		if err := d.C.Write("console:", joined); err != nil {
			return 0, wasip1.ToErrno(err)
		}
	}
	return uint64(len(joined)), wasip1.ErrnoSuccess
}

func (d *Console) FdFilestatGet(uint64) (fsapi.Filestat, wasip1.Errno) {
	return fsapi.Filestat{Filetype: wasip1.FiletypeCharacterDevice, Nlink: 1}, wasip1.ErrnoSuccess
}

func (d *Console) FdClose(uint64) wasip1.Errno { return wasip1.ErrnoSuccess }

func (d *Console) FdPrestatGet() (string, bool) { return "", false }

func (d *Console) FdFdstatSetFlags(uint64, wasip1.Fdflags) wasip1.Errno { return wasip1.ErrnoSuccess }
