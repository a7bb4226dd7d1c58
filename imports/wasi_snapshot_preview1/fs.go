package wasi_snapshot_preview1

import (
	"encoding/binary"

	"github.com/wasihost/core/api"
	"github.com/wasihost/core/internal/fdtable"
	"github.com/wasihost/core/internal/fsapi"
	"github.com/wasihost/core/internal/logging"
	"github.com/wasihost/core/internal/memview"
	"github.com/wasihost/core/internal/wasip1"
)

// FdAdvise provides file advisory information on a file descriptor; most
// drivers treat this as a hint they have no use for.
func (c *Context) FdAdvise(fd uint32, offset, length uint64, advice uint32) wasip1.Errno {
	e, drv, errno := c.lookup(fd)
	if errno != wasip1.ErrnoSuccess {
		return errno
	}
	if errno := requireRights(e, wasip1.RightFdAdvise); errno != wasip1.ErrnoSuccess {
		return errno
	}
	return drv.FdAdvise(e.InoID, offset, length, uint8(advice))
}

// FdAllocate forces allocation of space for a file, growing its
// reported size without touching existing content beyond that range.
func (c *Context) FdAllocate(fd uint32, offset, length uint64) wasip1.Errno {
	e, drv, errno := c.lookup(fd)
	if errno != wasip1.ErrnoSuccess {
		return errno
	}
	if errno := requireRights(e, wasip1.RightFdAllocate); errno != wasip1.ErrnoSuccess {
		return errno
	}
	return drv.FdAllocate(e.InoID, offset, length)
}

// FdClose releases fd: the driver drops its reference to the backing
// inode and the table forgets the descriptor entirely.
func (c *Context) FdClose(fd uint32) wasip1.Errno {
	e, drv, errno := c.lookup(fd)
	if errno != wasip1.ErrnoSuccess {
		return errno
	}
	errno = drv.FdClose(e.InoID)
	c.fds.Delete(fd)
	delete(c.fdDevice, fd)
	delete(c.pendingReaddir, fd)
	c.trace(logging.ScopeFilesystem, wasip1.FdCloseName, nil)
	return errno
}

func (c *Context) FdDatasync(fd uint32) wasip1.Errno {
	e, drv, errno := c.lookup(fd)
	if errno != wasip1.ErrnoSuccess {
		return errno
	}
	if errno := requireRights(e, wasip1.RightFdDatasync); errno != wasip1.ErrnoSuccess {
		return errno
	}
	return drv.FdDatasync(e.InoID)
}

func (c *Context) FdSync(fd uint32) wasip1.Errno {
	e, drv, errno := c.lookup(fd)
	if errno != wasip1.ErrnoSuccess {
		return errno
	}
	if errno := requireRights(e, wasip1.RightFdSync); errno != wasip1.ErrnoSuccess {
		return errno
	}
	return drv.FdSync(e.InoID)
}

// FdFdstatGet writes the descriptor's filetype, flags, and both right
// sets: everything the dispatcher itself knows, no driver call needed.
func (c *Context) FdFdstatGet(mem api.Memory, fd uint32, resultPtr uint32) wasip1.Errno {
	e, _, errno := c.lookup(fd)
	if errno != wasip1.ErrnoSuccess {
		return errno
	}
	fdstat := memview.Fdstat{
		Filetype:         e.Filetype,
		Flags:            e.Fdflags,
		RightsBase:       e.RightsBase,
		RightsInheriting: e.RightsInheriting,
	}
	if err := fdstat.WriteTo(mem, resultPtr); err != nil {
		return wasip1.ErrnoFault
	}
	return wasip1.ErrnoSuccess
}

// FdFdstatSetFlags updates fdflags on the descriptor record itself; the
// driver is only notified so that variants tying flags to host state
// (e.g. O_APPEND on a real file) can act on the change.
func (c *Context) FdFdstatSetFlags(fd uint32, flags uint32) wasip1.Errno {
	e, drv, errno := c.lookup(fd)
	if errno != wasip1.ErrnoSuccess {
		return errno
	}
	if errno := requireRights(e, wasip1.RightFdFdstatSetFlags); errno != wasip1.ErrnoSuccess {
		return errno
	}
	if errno := drv.FdFdstatSetFlags(e.InoID, wasip1.Fdflags(flags)); errno != wasip1.ErrnoSuccess {
		return errno
	}
	e.Fdflags = wasip1.Fdflags(flags)
	return wasip1.ErrnoSuccess
}

func (c *Context) FdFilestatGet(mem api.Memory, fd uint32, resultPtr uint32) wasip1.Errno {
	e, drv, errno := c.lookup(fd)
	if errno != wasip1.ErrnoSuccess {
		return errno
	}
	if errno := requireRights(e, wasip1.RightFdFilestatGet); errno != wasip1.ErrnoSuccess {
		return errno
	}
	st, errno := drv.FdFilestatGet(e.InoID)
	if errno != wasip1.ErrnoSuccess {
		return errno
	}
	out := memview.Filestat(st)
	if err := out.WriteTo(mem, resultPtr); err != nil {
		return wasip1.ErrnoFault
	}
	return wasip1.ErrnoSuccess
}

func (c *Context) FdFilestatSetSize(fd uint32, size uint64) wasip1.Errno {
	e, drv, errno := c.lookup(fd)
	if errno != wasip1.ErrnoSuccess {
		return errno
	}
	if errno := requireRights(e, wasip1.RightFdFilestatSetSize); errno != wasip1.ErrnoSuccess {
		return errno
	}
	return drv.FdFilestatSetSize(e.InoID, size)
}

func (c *Context) FdFilestatSetTimes(fd uint32, atim, mtim uint64, flags uint32) wasip1.Errno {
	e, drv, errno := c.lookup(fd)
	if errno != wasip1.ErrnoSuccess {
		return errno
	}
	if errno := requireRights(e, wasip1.RightFdFilestatSetTimes); errno != wasip1.ErrnoSuccess {
		return errno
	}
	return drv.FdFilestatSetTimes(e.InoID, atim, mtim, wasip1.Fstflags(flags))
}

// FdPread reads into iovs starting at the explicit offset, leaving the
// descriptor's own cursor untouched.
func (c *Context) FdPread(mem api.Memory, fd uint32, iovsPtr, iovsLen uint32, offset uint64, resultSizePtr uint32) wasip1.Errno {
	e, drv, errno := c.lookup(fd)
	if errno != wasip1.ErrnoSuccess {
		return errno
	}
	if errno := requireRights(e, wasip1.RightFdRead); errno != wasip1.ErrnoSuccess {
		return errno
	}
	bufs, err := memview.ReadIOVecs(mem, iovsPtr, iovsLen)
	if err != nil {
		return wasip1.ErrnoFault
	}
	n, errno := drv.FdPread(e.InoID, bufs, offset)
	if errno != wasip1.ErrnoSuccess {
		return errno
	}
	if !mem.WriteUint32Le(resultSizePtr, uint32(n)) {
		return wasip1.ErrnoFault
	}
	return wasip1.ErrnoSuccess
}

// FdPwrite writes civos starting at the explicit offset, leaving the
// descriptor's own cursor untouched.
func (c *Context) FdPwrite(mem api.Memory, fd uint32, iovsPtr, iovsLen uint32, offset uint64, resultSizePtr uint32) wasip1.Errno {
	e, drv, errno := c.lookup(fd)
	if errno != wasip1.ErrnoSuccess {
		return errno
	}
	if errno := requireRights(e, wasip1.RightFdWrite); errno != wasip1.ErrnoSuccess {
		return errno
	}
	bufs, err := memview.ReadCIOVecs(mem, iovsPtr, iovsLen)
	if err != nil {
		return wasip1.ErrnoFault
	}
	n, errno := drv.FdPwrite(e.InoID, bufs, offset)
	if errno != wasip1.ErrnoSuccess {
		return errno
	}
	if !mem.WriteUint32Le(resultSizePtr, uint32(n)) {
		return wasip1.ErrnoFault
	}
	return wasip1.ErrnoSuccess
}

// FdRead reads into iovs at the descriptor's own cursor (regular files)
// or as a streaming pull (character devices), advancing the cursor by
// whatever was read.
func (c *Context) FdRead(mem api.Memory, fd uint32, iovsPtr, iovsLen uint32, resultSizePtr uint32) wasip1.Errno {
	e, drv, errno := c.lookup(fd)
	if errno != wasip1.ErrnoSuccess {
		return errno
	}
	if errno := requireRights(e, wasip1.RightFdRead); errno != wasip1.ErrnoSuccess {
		return errno
	}
	bufs, err := memview.ReadIOVecs(mem, iovsPtr, iovsLen)
	if err != nil {
		return wasip1.ErrnoFault
	}
	var n uint64
	if e.Kind == fdtable.KindRegularFile {
		n, errno = drv.FdPread(e.InoID, bufs, e.Cursor)
		e.Cursor += n
	} else {
		n, errno = drv.FdRead(fd, e.InoID, bufs)
	}
	if errno != wasip1.ErrnoSuccess {
		return errno
	}
	if !mem.WriteUint32Le(resultSizePtr, uint32(n)) {
		return wasip1.ErrnoFault
	}
	return wasip1.ErrnoSuccess
}

// FdWrite writes civos at the descriptor's own cursor, honoring the
// append flag by pinning the write offset to the file's current size.
func (c *Context) FdWrite(mem api.Memory, fd uint32, iovsPtr, iovsLen uint32, resultSizePtr uint32) wasip1.Errno {
	e, drv, errno := c.lookup(fd)
	if errno != wasip1.ErrnoSuccess {
		return errno
	}
	if errno := requireRights(e, wasip1.RightFdWrite); errno != wasip1.ErrnoSuccess {
		return errno
	}
	bufs, err := memview.ReadCIOVecs(mem, iovsPtr, iovsLen)
	if err != nil {
		return wasip1.ErrnoFault
	}
	var n uint64
	if e.Kind == fdtable.KindRegularFile {
		offset := e.Cursor
		if e.Fdflags.Has(wasip1.FdflagsAppend) {
			if st, errno := drv.FdFilestatGet(e.InoID); errno == wasip1.ErrnoSuccess {
				offset = st.Size
			}
		}
		n, errno = drv.FdPwrite(e.InoID, bufs, offset)
		e.Cursor = offset + n
	} else {
		n, errno = drv.FdWrite(fd, e.InoID, bufs)
	}
	if errno != wasip1.ErrnoSuccess {
		return errno
	}
	if !mem.WriteUint32Le(resultSizePtr, uint32(n)) {
		return wasip1.ErrnoFault
	}
	return wasip1.ErrnoSuccess
}

// FdSeek moves the descriptor's cursor and reports the new absolute
// position. Only regular files carry a seekable cursor.
func (c *Context) FdSeek(mem api.Memory, fd uint32, offset int64, whence uint32, resultPtr uint32) wasip1.Errno {
	e, drv, errno := c.lookup(fd)
	if errno != wasip1.ErrnoSuccess {
		return errno
	}
	if wasip1.Whence(whence) == wasip1.WhenceCur && offset == 0 {
		if !e.RightsBase.Has(wasip1.RightFdSeek) && !e.RightsBase.Has(wasip1.RightFdTell) {
			return wasip1.ErrnoPerm
		}
	} else if errno := requireRights(e, wasip1.RightFdSeek); errno != wasip1.ErrnoSuccess {
		return errno
	}
	var base int64
	switch wasip1.Whence(whence) {
	case wasip1.WhenceSet:
		base = 0
	case wasip1.WhenceCur:
		base = int64(e.Cursor)
	case wasip1.WhenceEnd:
		st, errno := drv.FdFilestatGet(e.InoID)
		if errno != wasip1.ErrnoSuccess {
			return errno
		}
		base = int64(st.Size)
	default:
		return wasip1.ErrnoInval
	}
	newCursor := base + offset
	if newCursor < 0 {
		return wasip1.ErrnoInval
	}
	e.Cursor = uint64(newCursor)
	if !mem.WriteUint64Le(resultPtr, e.Cursor) {
		return wasip1.ErrnoFault
	}
	return wasip1.ErrnoSuccess
}

func (c *Context) FdTell(mem api.Memory, fd uint32, resultPtr uint32) wasip1.Errno {
	e, _, errno := c.lookup(fd)
	if errno != wasip1.ErrnoSuccess {
		return errno
	}
	if errno := requireRights(e, wasip1.RightFdTell); errno != wasip1.ErrnoSuccess {
		return errno
	}
	if !mem.WriteUint64Le(resultPtr, e.Cursor) {
		return wasip1.ErrnoFault
	}
	return wasip1.ErrnoSuccess
}

// FdPrestatGet reports the byte length of fd's pre-open mount name, so
// the guest can size the buffer it passes to FdPrestatDirName.
func (c *Context) FdPrestatGet(mem api.Memory, fd uint32, resultPtr uint32) wasip1.Errno {
	name, ok := c.fds.Mount(fd)
	if !ok {
		return wasip1.ErrnoBadf
	}
	out := memview.Prestat{Len: uint32(len(name))}
	if err := out.WriteTo(mem, resultPtr); err != nil {
		return wasip1.ErrnoFault
	}
	return wasip1.ErrnoSuccess
}

// FdPrestatDirName writes fd's mount name into the guest-supplied
// buffer; the guest must have sized it exactly per the prior
// FdPrestatGet call.
func (c *Context) FdPrestatDirName(mem api.Memory, fd uint32, pathPtr, pathLen uint32) wasip1.Errno {
	name, ok := c.fds.Mount(fd)
	if !ok {
		return wasip1.ErrnoBadf
	}
	if uint32(len(name)) > pathLen {
		return wasip1.ErrnoNametoolong
	}
	if !mem.Write(pathPtr, []byte(name)) {
		return wasip1.ErrnoFault
	}
	return wasip1.ErrnoSuccess
}

// encodeDirent packs one fd_readdir entry (24-byte header plus name) the
// way it will be copied into the guest's output buffer, so the
// truncation loop in FdReaddir can slice it without touching guest
// memory beyond the caller's byte budget.
func encodeDirent(d memview.Dirent, name []byte) []byte {
	b := make([]byte, wasip1.DirentSize+len(name))
	binary.LittleEndian.PutUint64(b[0:8], d.Next)
	binary.LittleEndian.PutUint64(b[8:16], d.Ino)
	binary.LittleEndian.PutUint32(b[16:20], d.Namelen)
	b[20] = byte(d.Filetype)
	copy(b[wasip1.DirentSize:], name)
	return b
}

// FdReaddir packs directory entries into buf until either the stream is
// exhausted or buf_len is reached, truncating the final entry's name (or
// its whole header) if it does not fully fit. A truncated call leaves
// its iterator in c.pendingReaddir so the next call, passed the cookie
// this call reported, resumes exactly where this one stopped; a call
// with cookie 0 always starts a fresh iterator.
func (c *Context) FdReaddir(mem api.Memory, fd uint32, buf, bufLen uint32, cookie uint64, resultSizePtr uint32) wasip1.Errno {
	e, drv, errno := c.lookup(fd)
	if errno != wasip1.ErrnoSuccess {
		return errno
	}
	if errno := requireRights(e, wasip1.RightFdReaddir); errno != wasip1.ErrnoSuccess {
		return errno
	}
	if errno := requireDir(e); errno != wasip1.ErrnoSuccess {
		return errno
	}

	it, ok := c.pendingReaddir[fd]
	if !ok || cookie == 0 {
		var errno wasip1.Errno
		it, errno = drv.FdReaddir(e.InoID)
		if errno != wasip1.ErrnoSuccess {
			return errno
		}
		c.pendingReaddir[fd] = it
	}
	if it.Offset() != cookie {
		if errno := it.Rewind(cookie); errno != wasip1.ErrnoSuccess {
			return errno
		}
	}

	var written uint32
	for written < bufLen {
		entry, has, errno := it.Next()
		if errno != wasip1.ErrnoSuccess {
			return errno
		}
		if !has {
			break
		}
		nameBytes := []byte(entry.Name)
		d := memview.Dirent{
			Next:     it.Offset(),
			Ino:      entry.InoID,
			Namelen:  uint32(len(nameBytes)),
			Filetype: entry.Filetype,
		}
		record := encodeDirent(d, nameBytes)
		remaining := bufLen - written
		n := uint32(len(record))
		truncated := n > remaining
		if truncated {
			n = remaining
		}
		if n > 0 && !mem.Write(buf+written, record[:n]) {
			return wasip1.ErrnoFault
		}
		written += n
		if truncated {
			break
		}
	}
	if !mem.WriteUint32Le(resultSizePtr, written) {
		return wasip1.ErrnoFault
	}
	c.trace(logging.ScopeFilesystem, wasip1.FdReaddirName, nil)
	return wasip1.ErrnoSuccess
}

func (c *Context) PathCreateDirectory(mem api.Memory, fd uint32, pathPtr, pathLen uint32) wasip1.Errno {
	e, drv, errno := c.lookup(fd)
	if errno != wasip1.ErrnoSuccess {
		return errno
	}
	if errno := requireRights(e, wasip1.RightPathCreateDirectory); errno != wasip1.ErrnoSuccess {
		return errno
	}
	p, err := memview.ReadString(mem, pathPtr, pathLen)
	if err != nil {
		return wasip1.ErrnoFault
	}
	return drv.PathCreateDirectory(e.InoID, p)
}

func (c *Context) PathFilestatGet(mem api.Memory, fd uint32, flags, pathPtr, pathLen, resultPtr uint32) wasip1.Errno {
	e, drv, errno := c.lookup(fd)
	if errno != wasip1.ErrnoSuccess {
		return errno
	}
	if errno := requireRights(e, wasip1.RightPathFilestatGet); errno != wasip1.ErrnoSuccess {
		return errno
	}
	p, err := memview.ReadString(mem, pathPtr, pathLen)
	if err != nil {
		return wasip1.ErrnoFault
	}
	followSymlink := wasip1.Lookupflags(flags).Has(wasip1.LookupflagsSymlinkFollow)
	st, errno := drv.PathFilestatGet(e.InoID, p, followSymlink)
	if errno != wasip1.ErrnoSuccess {
		return errno
	}
	out := memview.Filestat(st)
	if err := out.WriteTo(mem, resultPtr); err != nil {
		return wasip1.ErrnoFault
	}
	return wasip1.ErrnoSuccess
}

func (c *Context) PathFilestatSetTimes(mem api.Memory, fd uint32, flags, pathPtr, pathLen uint32, atim, mtim uint64, fstFlags uint32) wasip1.Errno {
	e, drv, errno := c.lookup(fd)
	if errno != wasip1.ErrnoSuccess {
		return errno
	}
	if errno := requireRights(e, wasip1.RightPathFilestatSetTimes); errno != wasip1.ErrnoSuccess {
		return errno
	}
	p, err := memview.ReadString(mem, pathPtr, pathLen)
	if err != nil {
		return wasip1.ErrnoFault
	}
	_ = flags // lookupflags: symlink-follow has no effect, this core never resolves symlinks
	return drv.PathFilestatSetTimes(e.InoID, p, atim, mtim, wasip1.Fstflags(fstFlags))
}

// PathLink hard-links oldPath under oldFd to newPath under newFd. Both
// descriptors must belong to the same device: a cross-device link is not
// supported and returns nosys.
func (c *Context) PathLink(mem api.Memory, oldFd, oldFlags, oldPathPtr, oldPathLen, newFd, newPathPtr, newPathLen uint32) wasip1.Errno {
	oldE, drv, errno := c.lookup(oldFd)
	if errno != wasip1.ErrnoSuccess {
		return errno
	}
	if errno := requireRights(oldE, wasip1.RightPathLinkSource); errno != wasip1.ErrnoSuccess {
		return errno
	}
	newE, _, errno := c.lookup(newFd)
	if errno != wasip1.ErrnoSuccess {
		return errno
	}
	if errno := requireRights(newE, wasip1.RightPathLinkTarget); errno != wasip1.ErrnoSuccess {
		return errno
	}
	if oldE.DeviceID != newE.DeviceID {
		return wasip1.ErrnoNosys
	}
	oldPath, err := memview.ReadString(mem, oldPathPtr, oldPathLen)
	if err != nil {
		return wasip1.ErrnoFault
	}
	newPath, err := memview.ReadString(mem, newPathPtr, newPathLen)
	if err != nil {
		return wasip1.ErrnoFault
	}
	return drv.PathLink(oldE.InoID, oldPath, newE.InoID, newPath)
}

// PathOpen resolves path relative to fd, opening (and optionally
// creating) the target and installing a new descriptor whose rights are
// the caller's requested sets narrowed by fd's own rights_inheriting and
// by the opened target's kind.
func (c *Context) PathOpen(mem api.Memory, fd, dirflags, pathPtr, pathLen, oflags uint32, fsRightsBase, fsRightsInheriting uint64, fdflags uint32, resultFdPtr uint32) wasip1.Errno {
	e, drv, errno := c.lookup(fd)
	if errno != wasip1.ErrnoSuccess {
		return errno
	}
	if errno := requireRights(e, wasip1.RightPathOpen); errno != wasip1.ErrnoSuccess {
		return errno
	}
	if errno := requireDir(e); errno != wasip1.ErrnoSuccess {
		return errno
	}
	if wasip1.Oflags(oflags).Has(wasip1.OflagsCreat) {
		if errno := requireRights(e, wasip1.RightPathCreateFile); errno != wasip1.ErrnoSuccess {
			return errno
		}
	}
	p, err := memview.ReadString(mem, pathPtr, pathLen)
	if err != nil {
		return wasip1.ErrnoFault
	}
	_ = dirflags // lookupflags: no symlinks to resolve

	directoryOnly := wasip1.Oflags(oflags).Has(wasip1.OflagsDirectory)
	res, errno := drv.PathOpen(e.InoID, p, wasip1.Oflags(oflags), wasip1.Fdflags(fdflags), directoryOnly)
	if errno != wasip1.ErrnoSuccess {
		return errno
	}

	wantBase := wasip1.Rights(fsRightsBase) & e.RightsInheriting
	wantInheriting := wasip1.Rights(fsRightsInheriting) & e.RightsInheriting
	kind := fdtable.KindRegularFile
	if res.IsDir {
		kind = fdtable.KindDirectory
		wantBase &^= wasip1.FileOnly
		wantInheriting &^= wasip1.FileOnly
	} else {
		wantBase &^= wasip1.DirectoryOnly
		wantInheriting &^= wasip1.DirectoryOnly
	}

	newFD := c.fds.Insert(&fdtable.Entry{
		Kind:             kind,
		DeviceID:         e.DeviceID,
		InoID:            res.InoID,
		Filetype:         res.Filetype,
		RightsBase:       wantBase,
		RightsInheriting: wantInheriting,
		Fdflags:          wasip1.Fdflags(fdflags),
	})
	c.fdDevice[newFD] = e.DeviceID
	if !mem.WriteUint32Le(resultFdPtr, newFD) {
		return wasip1.ErrnoFault
	}
	c.trace(logging.ScopeFilesystem, wasip1.PathOpenName, nil)
	return wasip1.ErrnoSuccess
}

func (c *Context) PathReadlink(mem api.Memory, fd uint32, pathPtr, pathLen, bufPtr, bufLen, resultSizePtr uint32) wasip1.Errno {
	e, drv, errno := c.lookup(fd)
	if errno != wasip1.ErrnoSuccess {
		return errno
	}
	if errno := requireRights(e, wasip1.RightPathReadlink); errno != wasip1.ErrnoSuccess {
		return errno
	}
	p, err := memview.ReadString(mem, pathPtr, pathLen)
	if err != nil {
		return wasip1.ErrnoFault
	}
	target, ok := mem.Read(bufPtr, bufLen)
	if !ok {
		return wasip1.ErrnoFault
	}
	n, errno := drv.PathReadlink(e.InoID, p, target)
	if errno != wasip1.ErrnoSuccess {
		return errno
	}
	if !mem.WriteUint32Le(resultSizePtr, uint32(n)) {
		return wasip1.ErrnoFault
	}
	return wasip1.ErrnoSuccess
}

func (c *Context) PathRemoveDirectory(mem api.Memory, fd uint32, pathPtr, pathLen uint32) wasip1.Errno {
	e, drv, errno := c.lookup(fd)
	if errno != wasip1.ErrnoSuccess {
		return errno
	}
	if errno := requireRights(e, wasip1.RightPathRemoveDirectory); errno != wasip1.ErrnoSuccess {
		return errno
	}
	p, err := memview.ReadString(mem, pathPtr, pathLen)
	if err != nil {
		return wasip1.ErrnoFault
	}
	return drv.PathRemoveDirectory(e.InoID, p)
}

// PathRename moves oldPath under oldFd to newPath under newFd. Both
// descriptors must belong to the same device, matching POSIX's
// cross-device rename restriction.
func (c *Context) PathRename(mem api.Memory, oldFd, oldPathPtr, oldPathLen, newFd, newPathPtr, newPathLen uint32) wasip1.Errno {
	oldE, drv, errno := c.lookup(oldFd)
	if errno != wasip1.ErrnoSuccess {
		return errno
	}
	if errno := requireRights(oldE, wasip1.RightPathRenameSource); errno != wasip1.ErrnoSuccess {
		return errno
	}
	newE, _, errno := c.lookup(newFd)
	if errno != wasip1.ErrnoSuccess {
		return errno
	}
	if errno := requireRights(newE, wasip1.RightPathRenameTarget); errno != wasip1.ErrnoSuccess {
		return errno
	}
	if oldE.DeviceID != newE.DeviceID {
		return wasip1.ErrnoXdev
	}
	oldPath, err := memview.ReadString(mem, oldPathPtr, oldPathLen)
	if err != nil {
		return wasip1.ErrnoFault
	}
	newPath, err := memview.ReadString(mem, newPathPtr, newPathLen)
	if err != nil {
		return wasip1.ErrnoFault
	}
	return drv.PathRename(oldE.InoID, oldPath, newE.InoID, newPath)
}

func (c *Context) PathSymlink(mem api.Memory, oldPathPtr, oldPathLen, fd, newPathPtr, newPathLen uint32) wasip1.Errno {
	e, drv, errno := c.lookup(fd)
	if errno != wasip1.ErrnoSuccess {
		return errno
	}
	if errno := requireRights(e, wasip1.RightPathSymlink); errno != wasip1.ErrnoSuccess {
		return errno
	}
	oldPath, err := memview.ReadString(mem, oldPathPtr, oldPathLen)
	if err != nil {
		return wasip1.ErrnoFault
	}
	newPath, err := memview.ReadString(mem, newPathPtr, newPathLen)
	if err != nil {
		return wasip1.ErrnoFault
	}
	return drv.PathSymlink(oldPath, e.InoID, newPath)
}

func (c *Context) PathUnlinkFile(mem api.Memory, fd uint32, pathPtr, pathLen uint32) wasip1.Errno {
	e, drv, errno := c.lookup(fd)
	if errno != wasip1.ErrnoSuccess {
		return errno
	}
	if errno := requireRights(e, wasip1.RightPathUnlinkFile); errno != wasip1.ErrnoSuccess {
		return errno
	}
	p, err := memview.ReadString(mem, pathPtr, pathLen)
	if err != nil {
		return wasip1.ErrnoFault
	}
	return drv.PathUnlinkFile(e.InoID, p)
}
