package device

import (
	"io/fs"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/wasihost/core/internal/fstest"
	"github.com/wasihost/core/internal/hostio"
)

// memFS is an in-memory hostio.FS, seeded from fstest.FS so the
// filesystem driver's tests exercise the same directory shapes (nested
// subdirectories, an empty directory, name-length boundaries for readdir
// truncation) the rest of the corpus's filesystem tests use.
type memFS struct {
	mu    sync.Mutex
	dirs  map[string]bool
	files map[string][]byte
}

func newMemFS() *memFS {
	m := &memFS{dirs: map[string]bool{".": true}, files: map[string][]byte{}}
	fs.WalkDir(fstest.FS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || path == "." {
			return nil
		}
		if d.IsDir() {
			m.dirs[path] = true
			return nil
		}
		b, _ := fs.ReadFile(fstest.FS, path)
		m.files[path] = b
		return nil
	})
	return m
}

func (m *memFS) Stat(uri string) (hostio.Stat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dirs[uri] {
		return hostio.Stat{IsDir: true}, nil
	}
	b, ok := m.files[uri]
	if !ok {
		return hostio.Stat{}, fs.ErrNotExist
	}
	return hostio.Stat{Size: uint64(len(b)), Mtime: time.Unix(0, 0), Ctime: time.Unix(0, 0)}, nil
}

func (m *memFS) ReadFile(uri string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.files[uri]
	if !ok {
		return nil, fs.ErrNotExist
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	return cp, nil
}

func (m *memFS) WriteFile(uri string, content []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(content))
	copy(cp, content)
	m.files[uri] = cp
	return nil
}

func (m *memFS) ReadDirectory(uri string) ([]hostio.DirEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.dirs[uri] {
		return nil, fs.ErrNotExist
	}
	prefix := uri + "/"
	if uri == "." {
		prefix = ""
	}
	seen := map[string]bool{}
	var entries []hostio.DirEntry
	for p := range m.files {
		addChild(prefix, p, m.dirs, seen, &entries, false)
	}
	for p := range m.dirs {
		if p == uri {
			continue
		}
		addChild(prefix, p, m.dirs, seen, &entries, true)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func addChild(prefix, p string, dirs map[string]bool, seen map[string]bool, entries *[]hostio.DirEntry, isDir bool) {
	if !strings.HasPrefix(p, prefix) {
		return
	}
	rest := strings.TrimPrefix(p, prefix)
	if rest == "" || strings.Contains(rest, "/") {
		return
	}
	if seen[rest] {
		return
	}
	seen[rest] = true
	*entries = append(*entries, hostio.DirEntry{Name: rest, IsDir: isDir})
}

func (m *memFS) CreateDirectory(uri string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[uri] = true
	return nil
}

func (m *memFS) Rename(fromURI, toURI string, overwrite bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.files[fromURI]; ok {
		delete(m.files, fromURI)
		m.files[toURI] = b
		return nil
	}
	if m.dirs[fromURI] {
		delete(m.dirs, fromURI)
		m.dirs[toURI] = true
		return nil
	}
	return fs.ErrNotExist
}

func (m *memFS) Delete(uri string, recursive, useTrash bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[uri]; ok {
		delete(m.files, uri)
		return nil
	}
	if m.dirs[uri] {
		delete(m.dirs, uri)
		return nil
	}
	return fs.ErrNotExist
}
