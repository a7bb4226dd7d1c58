// Package fsapi defines the Device Driver trait: the uniform capability
// surface every backing store implements regardless of whether a
// descriptor is a regular file, a directory, a terminal, or the console.
//
// Every method returns wasip1.ErrnoSuccess on success and a specific
// Errno otherwise; operations a variant does not support return
// wasip1.ErrnoNosys. Concrete drivers embed Unimplemented and override
// only the methods they support, the same nosys-by-default shape used
// throughout this codebase for capability objects.
package fsapi

import (
	"io/fs"
	"time"

	"github.com/wasihost/core/internal/wasip1"
)

// DirEntry is one lazily-produced directory entry: a name and its
// filetype, with an id assigned by the inode cache. Drivers do not
// assign cookies; the dispatcher does that by position in the stream.
type DirEntry struct {
	InoID    uint64
	Name     string
	Filetype wasip1.Filetype
}

// Readdir is a resumable iterator over a directory's entries, seekable by
// the dispatcher's cookie so that fd_readdir can resume a prior partial
// read.
type Readdir interface {
	// Offset returns how many entries have been consumed so far.
	Offset() uint64
	// Rewind seeks back to the given offset, or returns ErrnoNosys if the
	// underlying stream cannot seek backwards (only forward resumption
	// from the last position is guaranteed).
	Rewind(offset uint64) wasip1.Errno
	// Next returns the next entry, or ok=false once exhausted.
	Next() (entry DirEntry, ok bool, errno wasip1.Errno)
	Close() wasip1.Errno
}

// Filestat mirrors memview.Filestat without the wire-layout concern;
// drivers return this value type and the dispatcher encodes it.
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

// OpenResult is what path_open hands back to the dispatcher on success:
// the opened target's Filetype and inode id, plus whether it is a
// directory, which the caller wires into a new descriptor.
type OpenResult struct {
	Filetype wasip1.Filetype
	InoID    uint64
	IsDir    bool
}

// Driver is the capability set every device backing a descriptor
// implements. A Driver is process-lifetime and may back many open
// descriptors (e.g. one filesystem Driver backs every RegularFile and
// Directory descriptor rooted under it); per-descriptor state such as the
// cursor lives in the descriptor record, not here.
type Driver interface {
	// fd-scoped operations. fd identifies the calling descriptor only for
	// drivers (like the console) that special-case specific fds; most
	// drivers ignore it.

	FdAdvise(inoID uint64, offset, length uint64, advice uint8) wasip1.Errno
	FdAllocate(inoID uint64, offset, length uint64) wasip1.Errno
	FdClose(inoID uint64) wasip1.Errno
	FdDatasync(inoID uint64) wasip1.Errno
	FdSync(inoID uint64) wasip1.Errno

	FdFdstatSetFlags(inoID uint64, flags wasip1.Fdflags) wasip1.Errno

	FdFilestatGet(inoID uint64) (Filestat, wasip1.Errno)
	FdFilestatSetSize(inoID uint64, size uint64) wasip1.Errno
	FdFilestatSetTimes(inoID uint64, atim, mtim uint64, flags wasip1.Fstflags) wasip1.Errno

	FdPread(inoID uint64, bufs [][]byte, offset uint64) (n uint64, errno wasip1.Errno)
	FdPwrite(inoID uint64, bufs [][]byte, offset uint64) (n uint64, errno wasip1.Errno)
	FdRead(fd uint32, inoID uint64, bufs [][]byte) (n uint64, errno wasip1.Errno)
	FdWrite(fd uint32, inoID uint64, bufs [][]byte) (n uint64, errno wasip1.Errno)

	// FdBytesAvailable reports how many bytes a non-blocking FdRead would
	// return right now; used exclusively by the poll engine.
	FdBytesAvailable(inoID uint64) (n uint64, errno wasip1.Errno)

	FdReaddir(inoID uint64) (Readdir, wasip1.Errno)

	// path-scoped operations, relative to the directory identified by
	// dirInoID.

	PathCreateDirectory(dirInoID uint64, path string) wasip1.Errno
	PathFilestatGet(dirInoID uint64, path string, followSymlink bool) (Filestat, wasip1.Errno)
	PathFilestatSetTimes(dirInoID uint64, path string, atim, mtim uint64, flags wasip1.Fstflags) wasip1.Errno
	PathLink(dirInoID uint64, oldPath string, newDirInoID uint64, newPath string) wasip1.Errno
	PathOpen(dirInoID uint64, path string, oflags wasip1.Oflags, fdflags wasip1.Fdflags, directoryOnly bool) (OpenResult, wasip1.Errno)
	PathReadlink(dirInoID uint64, path string, buf []byte) (n int, errno wasip1.Errno)
	PathRemoveDirectory(dirInoID uint64, path string) wasip1.Errno
	PathRename(dirInoID uint64, oldPath string, newDirInoID uint64, newPath string) wasip1.Errno
	PathSymlink(oldPath string, dirInoID uint64, newPath string) wasip1.Errno
	PathUnlinkFile(dirInoID uint64, path string) wasip1.Errno

	// FdPrestatGet returns the next pre-open mount point name, or
	// ok=false once the worklist this driver owns is drained. Only the
	// filesystem and terminal drivers implement pre-opens meaningfully.
	FdPrestatGet() (name string, ok bool)
}

// Unimplemented is embedded by every concrete driver so that a variant
// need only override the operations it actually supports; everything
// else answers ErrnoNosys, matching the uniform nosys default described
// for the Device Driver trait.
type Unimplemented struct{}

func (Unimplemented) FdAdvise(uint64, uint64, uint64, uint8) wasip1.Errno { return wasip1.ErrnoNosys }
func (Unimplemented) FdAllocate(uint64, uint64, uint64) wasip1.Errno      { return wasip1.ErrnoNosys }
func (Unimplemented) FdClose(uint64) wasip1.Errno                        { return wasip1.ErrnoNosys }
func (Unimplemented) FdDatasync(uint64) wasip1.Errno                     { return wasip1.ErrnoNosys }
func (Unimplemented) FdSync(uint64) wasip1.Errno                         { return wasip1.ErrnoNosys }

func (Unimplemented) FdFdstatSetFlags(uint64, wasip1.Fdflags) wasip1.Errno { return wasip1.ErrnoNosys }

func (Unimplemented) FdFilestatGet(uint64) (Filestat, wasip1.Errno) {
	return Filestat{}, wasip1.ErrnoNosys
}
func (Unimplemented) FdFilestatSetSize(uint64, uint64) wasip1.Errno { return wasip1.ErrnoNosys }
func (Unimplemented) FdFilestatSetTimes(uint64, uint64, uint64, wasip1.Fstflags) wasip1.Errno {
	return wasip1.ErrnoNosys
}

func (Unimplemented) FdPread(uint64, [][]byte, uint64) (uint64, wasip1.Errno) {
	return 0, wasip1.ErrnoNosys
}
func (Unimplemented) FdPwrite(uint64, [][]byte, uint64) (uint64, wasip1.Errno) {
	return 0, wasip1.ErrnoNosys
}
func (Unimplemented) FdRead(uint32, uint64, [][]byte) (uint64, wasip1.Errno) {
	return 0, wasip1.ErrnoNosys
}
func (Unimplemented) FdWrite(uint32, uint64, [][]byte) (uint64, wasip1.Errno) {
	return 0, wasip1.ErrnoNosys
}
func (Unimplemented) FdBytesAvailable(uint64) (uint64, wasip1.Errno) { return 0, wasip1.ErrnoNosys }

func (Unimplemented) FdReaddir(uint64) (Readdir, wasip1.Errno) { return nil, wasip1.ErrnoNosys }

func (Unimplemented) PathCreateDirectory(uint64, string) wasip1.Errno { return wasip1.ErrnoNosys }
func (Unimplemented) PathFilestatGet(uint64, string, bool) (Filestat, wasip1.Errno) {
	return Filestat{}, wasip1.ErrnoNosys
}
func (Unimplemented) PathFilestatSetTimes(uint64, string, uint64, uint64, wasip1.Fstflags) wasip1.Errno {
	return wasip1.ErrnoNosys
}
func (Unimplemented) PathLink(uint64, string, uint64, string) wasip1.Errno { return wasip1.ErrnoNosys }
func (Unimplemented) PathOpen(uint64, string, wasip1.Oflags, wasip1.Fdflags, bool) (OpenResult, wasip1.Errno) {
	return OpenResult{}, wasip1.ErrnoNosys
}
func (Unimplemented) PathReadlink(uint64, string, []byte) (int, wasip1.Errno) {
	return 0, wasip1.ErrnoNosys
}
func (Unimplemented) PathRemoveDirectory(uint64, string) wasip1.Errno { return wasip1.ErrnoNosys }
func (Unimplemented) PathRename(uint64, string, uint64, string) wasip1.Errno {
	return wasip1.ErrnoNosys
}
func (Unimplemented) PathSymlink(string, uint64, string) wasip1.Errno { return wasip1.ErrnoNosys }
func (Unimplemented) PathUnlinkFile(uint64, string) wasip1.Errno     { return wasip1.ErrnoNosys }

func (Unimplemented) FdPrestatGet() (string, bool) { return "", false }

// FileModeToFiletype maps a Go fs.FileMode to the nearest wasip1.Filetype.
// Drivers backed by io/fs-shaped host replies share this helper.
func FileModeToFiletype(mode fs.FileMode) wasip1.Filetype {
	switch {
	case mode.IsDir():
		return wasip1.FiletypeDirectory
	case mode&fs.ModeSymlink != 0:
		return wasip1.FiletypeSymbolicLink
	case mode&fs.ModeCharDevice != 0:
		return wasip1.FiletypeCharacterDevice
	case mode.IsRegular():
		return wasip1.FiletypeRegularFile
	default:
		return wasip1.FiletypeUnknown
	}
}

// TimeToNanos converts a host time.Time to the WASI u64-nanosecond
// timestamp form, saturating at zero for times before the epoch.
func TimeToNanos(t time.Time) uint64 {
	ns := t.UnixNano()
	if ns < 0 {
		return 0
	}
	return uint64(ns)
}
