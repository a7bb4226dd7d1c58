// Package device holds the concrete Device Driver variants: filesystem,
// terminal, console, and the nosys default every other variant embeds.
package device

import (
	"path"

	"github.com/wasihost/core/internal/fsapi"
	"github.com/wasihost/core/internal/hostio"
	"github.com/wasihost/core/internal/inode"
	"github.com/wasihost/core/internal/wasip1"
)

// Filesystem is the Device Driver variant backed by a host URI scheme.
// path_open produces either a RegularFile or Directory descriptor with
// rights narrowed by the parent's inheriting rights; the dispatcher does
// the narrowing, this driver only reports filetype and inode id.
type Filesystem struct {
	fsapi.Unimplemented

	FS    hostio.FS
	Cache *inode.Cache

	preopens []string
	nextPre  int
}

// NewFilesystem builds a driver with an empty inode cache, so the first
// URI passed to Root resolves to inode id 1. mounts
// lists the pre-open directory names this driver will hand out via
// FdPrestatGet, in registration order.
func NewFilesystem(fs hostio.FS, mounts []string) *Filesystem {
	d := &Filesystem{FS: fs, preopens: mounts}
	d.Cache = inode.New(
		func(p string) ([]byte, error) { return fs.ReadFile(p) },
		func(p string, content []byte) error { return fs.WriteFile(p, content) },
	)
	return d
}

// Root returns the inode id for the given mount URI, creating it if this
// is the first time it's seen (true for every pre-open at bootstrap).
func (d *Filesystem) Root(uri string) uint64 {
	return d.Cache.Ref(uri, true).ID
}

func joinPath(dir, rel string) string {
	if rel == "" {
		return dir
	}
	return path.Join(dir, rel)
}

func (d *Filesystem) FdPrestatGet() (string, bool) {
	if d.nextPre >= len(d.preopens) {
		return "", false
	}
	name := d.preopens[d.nextPre]
	d.nextPre++
	return name, true
}

func (d *Filesystem) statToFilestat(uri string, st hostio.Stat) fsapi.Filestat {
	filetype := wasip1.FiletypeRegularFile
	if st.IsDir {
		filetype = wasip1.FiletypeDirectory
	}
	ino, _ := d.Cache.Lookup(uri)
	var id uint64
	if ino != nil {
		id = ino.ID
	}
	return fsapi.Filestat{
		Dev:      1,
		Ino:      id,
		Filetype: filetype,
		Nlink:    1,
		Size:     st.Size,
		Atim:     fsapi.TimeToNanos(st.Mtime),
		Mtim:     fsapi.TimeToNanos(st.Mtime),
		Ctim:     fsapi.TimeToNanos(st.Ctime),
	}
}

func (d *Filesystem) PathOpen(dirInoID uint64, rel string, oflags wasip1.Oflags, fdflags wasip1.Fdflags, directoryOnly bool) (fsapi.OpenResult, wasip1.Errno) {
	dirIno, ok := d.Cache.Resolve(dirInoID)
	if !ok {
		return fsapi.OpenResult{}, wasip1.ErrnoBadf
	}
	full := joinPath(dirIno.Path, rel)

	st, err := d.FS.Stat(full)
	exists := err == nil

	if exists && oflags.Has(wasip1.OflagsExcl) && oflags.Has(wasip1.OflagsCreat) {
		return fsapi.OpenResult{}, wasip1.ErrnoExist
	}
	if !exists && !oflags.Has(wasip1.OflagsCreat) {
		return fsapi.OpenResult{}, wasip1.ErrnoNoent
	}
	if exists && directoryOnly && !st.IsDir {
		return fsapi.OpenResult{}, wasip1.ErrnoNotdir
	}
	if exists && oflags.Has(wasip1.OflagsDirectory) && !st.IsDir {
		return fsapi.OpenResult{}, wasip1.ErrnoNotdir
	}

	ino := d.Cache.Ref(full, true)

	switch {
	case !exists:
		// Defer the host write: the file is only realized on the host
		// once real content is set (by fd_write or an explicit
		// truncate), so create-then-write produces a single flush.
		d.Cache.SeedContent(ino, nil)
		st = hostio.Stat{}
	case oflags.Has(wasip1.OflagsTrunc) && !st.IsDir:
		if err := d.Cache.SetContent(ino, nil); err != nil {
			return fsapi.OpenResult{}, wasip1.ToErrno(err)
		}
		st.Size = 0
	}

	filetype := wasip1.FiletypeRegularFile
	if st.IsDir {
		filetype = wasip1.FiletypeDirectory
	}
	return fsapi.OpenResult{Filetype: filetype, InoID: ino.ID, IsDir: st.IsDir}, wasip1.ErrnoSuccess
}

func (d *Filesystem) FdClose(inoID uint64) wasip1.Errno {
	d.Cache.Unref(inoID)
	return wasip1.ErrnoSuccess
}

func (d *Filesystem) FdFilestatGet(inoID uint64) (fsapi.Filestat, wasip1.Errno) {
	ino, ok := d.Cache.Resolve(inoID)
	if !ok {
		return fsapi.Filestat{}, wasip1.ErrnoBadf
	}
	st, err := d.FS.Stat(ino.Path)
	if err != nil {
		return fsapi.Filestat{}, wasip1.ToErrno(err)
	}
	return d.statToFilestat(ino.Path, st), wasip1.ErrnoSuccess
}

func (d *Filesystem) PathFilestatGet(dirInoID uint64, rel string, _ bool) (fsapi.Filestat, wasip1.Errno) {
	dirIno, ok := d.Cache.Resolve(dirInoID)
	if !ok {
		return fsapi.Filestat{}, wasip1.ErrnoBadf
	}
	full := joinPath(dirIno.Path, rel)
	st, err := d.FS.Stat(full)
	if err != nil {
		return fsapi.Filestat{}, wasip1.ToErrno(err)
	}
	return d.statToFilestat(full, st), wasip1.ErrnoSuccess
}

// PathFilestatSetTimes has no host equivalent for VS-Code-backed paths
// and is therefore unsupported at the core level, per the filesystem
// driver's documented scope.
func (d *Filesystem) PathFilestatSetTimes(uint64, string, uint64, uint64, wasip1.Fstflags) wasip1.Errno {
	return wasip1.ErrnoNosys
}

func (d *Filesystem) FdFilestatSetSize(inoID uint64, size uint64) wasip1.Errno {
	ino, ok := d.Cache.Resolve(inoID)
	if !ok {
		return wasip1.ErrnoBadf
	}
	content := ino.Content()
	switch {
	case uint64(len(content)) == size:
	case uint64(len(content)) > size:
		content = content[:size]
	default:
		grown := make([]byte, size)
		copy(grown, content)
		content = grown
	}
	if err := d.Cache.SetContent(ino, content); err != nil {
		return wasip1.ToErrno(err)
	}
	return wasip1.ErrnoSuccess
}

func (d *Filesystem) FdPread(inoID uint64, bufs [][]byte, offset uint64) (uint64, wasip1.Errno) {
	ino, ok := d.Cache.Resolve(inoID)
	if !ok {
		return 0, wasip1.ErrnoBadf
	}
	content := ino.Content()
	if offset >= uint64(len(content)) {
		return 0, wasip1.ErrnoSuccess
	}
	var n uint64
	src := content[offset:]
	for _, buf := range bufs {
		if len(src) == 0 {
			break
		}
		c := copy(buf, src)
		src = src[c:]
		n += uint64(c)
	}
	return n, wasip1.ErrnoSuccess
}

func (d *Filesystem) FdPwrite(inoID uint64, bufs [][]byte, offset uint64) (uint64, wasip1.Errno) {
	ino, ok := d.Cache.Resolve(inoID)
	if !ok {
		return 0, wasip1.ErrnoBadf
	}
	content := ino.Content()
	var total int
	for _, b := range bufs {
		total += len(b)
	}
	end := offset + uint64(total)
	if end > uint64(len(content)) {
		grown := make([]byte, end)
		copy(grown, content)
		content = grown
	}
	var n uint64
	pos := offset
	for _, buf := range bufs {
		copy(content[pos:], buf)
		pos += uint64(len(buf))
		n += uint64(len(buf))
	}
	if err := d.Cache.SetContent(ino, content); err != nil {
		return 0, wasip1.ToErrno(err)
	}
	return n, wasip1.ErrnoSuccess
}

func (d *Filesystem) FdBytesAvailable(inoID uint64) (uint64, wasip1.Errno) {
	ino, ok := d.Cache.Resolve(inoID)
	if !ok {
		return 0, wasip1.ErrnoBadf
	}
	return uint64(len(ino.Content())), wasip1.ErrnoSuccess
}

func (d *Filesystem) FdSync(uint64) wasip1.Errno     { return wasip1.ErrnoSuccess }
func (d *Filesystem) FdDatasync(uint64) wasip1.Errno { return wasip1.ErrnoSuccess }

// FdAdvise is a hint the in-memory content buffer has no use for.
func (d *Filesystem) FdAdvise(uint64, uint64, uint64, uint8) wasip1.Errno { return wasip1.ErrnoSuccess }

func (d *Filesystem) FdAllocate(inoID uint64, offset, length uint64) wasip1.Errno {
	ino, ok := d.Cache.Resolve(inoID)
	if !ok {
		return wasip1.ErrnoBadf
	}
	if offset+length <= uint64(len(ino.Content())) {
		return wasip1.ErrnoSuccess
	}
	return d.FdFilestatSetSize(inoID, offset+length)
}

func (d *Filesystem) FdFdstatSetFlags(uint64, wasip1.Fdflags) wasip1.Errno { return wasip1.ErrnoSuccess }

type dirReaddir struct {
	entries []fsapi.DirEntry
	offset  uint64
}

func (r *dirReaddir) Offset() uint64 { return r.offset }
func (r *dirReaddir) Rewind(offset uint64) wasip1.Errno {
	if offset > uint64(len(r.entries)) {
		return wasip1.ErrnoInval
	}
	r.offset = offset
	return wasip1.ErrnoSuccess
}
func (r *dirReaddir) Next() (fsapi.DirEntry, bool, wasip1.Errno) {
	if r.offset >= uint64(len(r.entries)) {
		return fsapi.DirEntry{}, false, wasip1.ErrnoSuccess
	}
	e := r.entries[r.offset]
	r.offset++
	return e, true, wasip1.ErrnoSuccess
}
func (r *dirReaddir) Close() wasip1.Errno { return wasip1.ErrnoSuccess }

func (d *Filesystem) FdReaddir(inoID uint64) (fsapi.Readdir, wasip1.Errno) {
	ino, ok := d.Cache.Resolve(inoID)
	if !ok {
		return nil, wasip1.ErrnoBadf
	}
	hostEntries, err := d.FS.ReadDirectory(ino.Path)
	if err != nil {
		return nil, wasip1.ToErrno(err)
	}
	entries := make([]fsapi.DirEntry, len(hostEntries))
	for i, he := range hostEntries {
		childURI := joinPath(ino.Path, he.Name)
		childIno := d.Cache.Ref(childURI, false)
		filetype := wasip1.FiletypeRegularFile
		if he.IsDir {
			filetype = wasip1.FiletypeDirectory
		}
		entries[i] = fsapi.DirEntry{InoID: childIno.ID, Name: he.Name, Filetype: filetype}
	}
	return &dirReaddir{entries: entries}, wasip1.ErrnoSuccess
}

func (d *Filesystem) PathCreateDirectory(dirInoID uint64, rel string) wasip1.Errno {
	dirIno, ok := d.Cache.Resolve(dirInoID)
	if !ok {
		return wasip1.ErrnoBadf
	}
	full := joinPath(dirIno.Path, rel)
	if err := d.FS.CreateDirectory(full); err != nil {
		return wasip1.ToErrno(err)
	}
	return wasip1.ErrnoSuccess
}

func (d *Filesystem) PathRemoveDirectory(dirInoID uint64, rel string) wasip1.Errno {
	dirIno, ok := d.Cache.Resolve(dirInoID)
	if !ok {
		return wasip1.ErrnoBadf
	}
	full := joinPath(dirIno.Path, rel)
	if err := d.FS.Delete(full, false, false); err != nil {
		return wasip1.ToErrno(err)
	}
	d.Cache.MarkDeleted(full)
	return wasip1.ErrnoSuccess
}

func (d *Filesystem) PathUnlinkFile(dirInoID uint64, rel string) wasip1.Errno {
	dirIno, ok := d.Cache.Resolve(dirInoID)
	if !ok {
		return wasip1.ErrnoBadf
	}
	full := joinPath(dirIno.Path, rel)
	if err := d.FS.Delete(full, false, false); err != nil {
		return wasip1.ToErrno(err)
	}
	d.Cache.MarkDeleted(full)
	return wasip1.ErrnoSuccess
}

func (d *Filesystem) PathRename(dirInoID uint64, oldRel string, newDirInoID uint64, newRel string) wasip1.Errno {
	oldDir, ok := d.Cache.Resolve(dirInoID)
	if !ok {
		return wasip1.ErrnoBadf
	}
	newDir, ok := d.Cache.Resolve(newDirInoID)
	if !ok {
		return wasip1.ErrnoBadf
	}
	oldFull := joinPath(oldDir.Path, oldRel)
	newFull := joinPath(newDir.Path, newRel)
	if err := d.FS.Rename(oldFull, newFull, true); err != nil {
		return wasip1.ToErrno(err)
	}
	if ino, ok := d.Cache.Lookup(oldFull); ok {
		d.Cache.MarkDeleted(oldFull)
		ino.Path = newFull
		d.Cache.Ref(newFull, false)
	}
	return wasip1.ErrnoSuccess
}

// PathLink, PathSymlink, PathReadlink have no equivalent in the host's
// workspace filesystem RPC (no hard links, no symlinks), so they report
// not-supported, matching the filesystem driver's documented scope.
func (d *Filesystem) PathLink(uint64, string, uint64, string) wasip1.Errno { return wasip1.ErrnoNosys }
func (d *Filesystem) PathSymlink(string, uint64, string) wasip1.Errno     { return wasip1.ErrnoNosys }
func (d *Filesystem) PathReadlink(uint64, string, []byte) (int, wasip1.Errno) {
	return 0, wasip1.ErrnoNosys
}

