// Package fdtable implements the File-Descriptor Table: allocation,
// storage, and lookup of descriptors, keyed by the same fd numbering the
// guest sees. 0, 1, 2 are reserved for stdio; everything else comes from
// a shared monotonic counter.
package fdtable

import "github.com/wasihost/core/internal/wasip1"

// Kind discriminates the descriptor variants. Regular files carry a
// cursor; character devices carry none. Entry.Path is not filled in by
// the dispatcher for any Kind: relative paths resolve through the
// directory's inode, not through a path stored on the descriptor.
type Kind uint8

const (
	KindRegularFile Kind = iota
	KindDirectory
	KindCharacterDevice
)

// Entry is one file-descriptor record. The common header mirrors every
// variant; Cursor and Path are only meaningful for the Kind that uses
// them, matching the "tagged variant with shared header" re-architecture
// of the original subclass-per-variant design.
type Entry struct {
	FD               uint32
	Kind             Kind
	DeviceID         uint64
	InoID            uint64
	Filetype         wasip1.Filetype
	RightsBase       wasip1.Rights
	RightsInheriting wasip1.Rights
	Fdflags          wasip1.Fdflags

	Cursor uint64 // KindRegularFile
	Path   string // KindDirectory
}

const (
	stdinFD  uint32 = 0
	stdoutFD uint32 = 1
	stderrFD uint32 = 2
	firstFreeFD uint32 = 3
)

// Table owns every open descriptor. Only the dispatcher mutates it: on
// open/path_open/pre-open it inserts, and on fd_close it removes.
type Table struct {
	next    uint32
	entries map[uint32]*Entry
	// mounts records, for descriptors reported via fd_prestat_get, the
	// mount-point string fd_prestat_dir_name later returns.
	mounts map[uint32]string
}

func New() *Table {
	return &Table{
		next:    firstFreeFD,
		entries: make(map[uint32]*Entry),
		mounts:  make(map[uint32]string),
	}
}

// Insert assigns the next free fd to e and stores it, returning the
// assigned fd. Callers that need a specific fd (stdio, pre-opens) use
// InsertAt instead.
func (t *Table) Insert(e *Entry) uint32 {
	fd := t.next
	t.next++
	e.FD = fd
	t.entries[fd] = e
	return fd
}

// InsertAt stores e under the given fd without consuming the shared
// counter; used for the fixed stdio ids 0, 1, 2.
func (t *Table) InsertAt(fd uint32, e *Entry) {
	e.FD = fd
	t.entries[fd] = e
}

// ResetCounterAfterPreopens sets the shared counter to one past the
// highest pre-open id, so that subsequent path_open calls do not collide
// with the pre-open prefix. Called once, at the end of bootstrap.
func (t *Table) ResetCounterAfterPreopens(highestPreopenFD uint32) {
	if next := highestPreopenFD + 1; next > t.next {
		t.next = next
	}
}

func (t *Table) Lookup(fd uint32) (*Entry, bool) {
	e, ok := t.entries[fd]
	return e, ok
}

func (t *Table) Delete(fd uint32) {
	delete(t.entries, fd)
	delete(t.mounts, fd)
}

func (t *Table) Len() int { return len(t.entries) }

// Range calls fn for every entry; iteration order is unspecified. fn
// returning false stops the range early.
func (t *Table) Range(fn func(fd uint32, e *Entry) bool) {
	for fd, e := range t.entries {
		if !fn(fd, e) {
			return
		}
	}
}

// SetMount records the pre-open mount-point name for fd.
func (t *Table) SetMount(fd uint32, name string) { t.mounts[fd] = name }

// Mount returns the pre-open mount-point name for fd, if any.
func (t *Table) Mount(fd uint32) (string, bool) {
	name, ok := t.mounts[fd]
	return name, ok
}

const (
	StdinFD  = stdinFD
	StdoutFD = stdoutFD
	StderrFD = stderrFD
)
