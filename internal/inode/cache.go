// Package inode implements the Inode Cache: the filesystem driver's map
// from host paths to stable ids, with lazily-loaded content and
// delete-while-referenced tombstones.
package inode

import "sync/atomic"

// Loader fetches the bytes backing an inode the first time they are
// needed. The filesystem driver supplies this, typically as a thin
// wrapper over the host's readFile RPC.
type Loader func(path string) ([]byte, error)

// Flusher writes an inode's content back to the host. Called after every
// mutation, before the syscall that triggered it returns success.
type Flusher func(path string, content []byte) error

// Inode anchors a host resource and assigns it a stable id. Content is
// nil until the first read or write touches it.
type Inode struct {
	ID       uint64
	Path     string // empty once tombstoned
	refcount uint32
	content  []byte
	loaded   bool
}

// Cache is the filesystem driver's exclusive inode table: two live
// indices (by path, by id) plus a tombstone index by id for entries whose
// path has been unlinked but which still have open descriptors.
type Cache struct {
	nextID    uint64
	byPath    map[string]*Inode
	byID      map[uint64]*Inode
	tombstone map[uint64]*Inode
	load      Loader
	flush     Flusher
}

func New(load Loader, flush Flusher) *Cache {
	return &Cache{
		byPath:    make(map[string]*Inode),
		byID:      make(map[uint64]*Inode),
		tombstone: make(map[uint64]*Inode),
		load:      load,
		flush:     flush,
	}
}

// Ref returns the inode for path, creating it if absent. When increment
// is true the caller's reference is counted; readdir mints ids for
// listing purposes without taking a reference by passing false.
func (c *Cache) Ref(path string, increment bool) *Inode {
	if ino, ok := c.byPath[path]; ok {
		if increment {
			ino.refcount++
		}
		return ino
	}
	ino := &Inode{ID: atomic.AddUint64(&c.nextID, 1), Path: path}
	if increment {
		ino.refcount = 1
	}
	c.byPath[path] = ino
	c.byID[ino.ID] = ino
	return ino
}

// Unref decrements the inode's refcount; at zero its content is dropped
// and, if tombstoned, the entry is removed entirely.
func (c *Cache) Unref(id uint64) {
	ino, ok := c.byID[id]
	if !ok {
		return
	}
	if ino.refcount > 0 {
		ino.refcount--
	}
	if ino.refcount == 0 {
		ino.content = nil
		ino.loaded = false
		if _, tombstoned := c.tombstone[id]; tombstoned {
			delete(c.tombstone, id)
			delete(c.byID, id)
		}
	}
}

// Resolve returns the inode for id, lazily loading its content from the
// host on first access. Both live and tombstoned ids resolve.
func (c *Cache) Resolve(id uint64) (*Inode, bool) {
	ino, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	if !ino.loaded && c.load != nil {
		content, err := c.load(ino.Path)
		if err == nil {
			ino.content = content
		}
		ino.loaded = true
	}
	return ino, true
}

// Lookup returns the live inode for path without creating or loading it.
func (c *Cache) Lookup(path string) (*Inode, bool) {
	ino, ok := c.byPath[path]
	return ino, ok
}

// Content returns the inode's cached bytes.
func (ino *Inode) Content() []byte { return ino.content }

// SetContent replaces the inode's cached bytes and flushes them to the
// host; mutations are visible to the host before the triggering syscall
// returns success.
func (c *Cache) SetContent(ino *Inode, content []byte) error {
	ino.content = content
	ino.loaded = true
	if c.flush != nil {
		return c.flush(ino.Path, content)
	}
	return nil
}

// SeedContent marks the inode's content as already known without
// flushing to the host. Used when a file is created but not yet
// written: the host only sees it once real content is set, so
// path_open(O_CREAT) followed by fd_write produces one flush, not two.
func (c *Cache) SeedContent(ino *Inode, content []byte) {
	ino.content = content
	ino.loaded = true
}

// MarkDeleted moves path's entry to the tombstone map: subsequent
// lookups by path return nothing, but descriptors already holding the id
// keep resolving it, matching POSIX unlink semantics for regular files.
// Directory deletion with open descriptors is left to the caller; this
// cache does not special-case directories.
func (c *Cache) MarkDeleted(path string) {
	ino, ok := c.byPath[path]
	if !ok {
		return
	}
	delete(c.byPath, path)
	ino.Path = ""
	c.tombstone[ino.ID] = ino
}

// Len reports the number of live (non-tombstoned) inodes, for tests.
func (c *Cache) Len() int { return len(c.byPath) }
