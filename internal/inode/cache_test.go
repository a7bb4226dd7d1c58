package inode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestCache() (*Cache, map[string][]byte) {
	store := map[string][]byte{}
	c := New(
		func(p string) ([]byte, error) { return store[p], nil },
		func(p string, content []byte) error { store[p] = content; return nil },
	)
	return c, store
}

func TestRef_assignsStableID(t *testing.T) {
	c, _ := newTestCache()

	a := c.Ref("/a", true)
	b := c.Ref("/a", true)
	require.Equal(t, a.ID, b.ID)

	other := c.Ref("/b", true)
	require.NotEqual(t, a.ID, other.ID)
}

func TestRef_withoutIncrement_doesNotCountReference(t *testing.T) {
	c, _ := newTestCache()

	ino := c.Ref("/a", false)
	c.Unref(ino.ID)

	_, ok := c.Resolve(ino.ID)
	require.True(t, ok, "id should still resolve: Unref on a zero refcount is a no-op, not a removal")
}

func TestResolve_lazilyLoadsContent(t *testing.T) {
	c, store := newTestCache()
	store["/a"] = []byte("hello")

	ino := c.Ref("/a", true)
	require.Nil(t, ino.Content(), "content is not loaded until Resolve")

	resolved, ok := c.Resolve(ino.ID)
	require.True(t, ok)
	require.Equal(t, []byte("hello"), resolved.Content())
}

func TestSetContent_flushesToHost(t *testing.T) {
	c, store := newTestCache()
	ino := c.Ref("/a", true)

	require.NoError(t, c.SetContent(ino, []byte("world")))
	require.Equal(t, []byte("world"), store["/a"])
}

func TestMarkDeleted_tombstonesButKeepsResolvingOpenDescriptors(t *testing.T) {
	c, store := newTestCache()
	store["/a"] = []byte("hello")
	ino := c.Ref("/a", true)
	c.Resolve(ino.ID)

	c.MarkDeleted("/a")

	_, ok := c.Lookup("/a")
	require.False(t, ok, "path lookup must not find a tombstoned entry")

	resolved, ok := c.Resolve(ino.ID)
	require.True(t, ok, "existing descriptors must keep resolving the id")
	require.Equal(t, []byte("hello"), resolved.Content())
}

func TestUnref_dropsTombstoneAtZeroRefcount(t *testing.T) {
	c, _ := newTestCache()
	ino := c.Ref("/a", true)
	c.MarkDeleted("/a")

	c.Unref(ino.ID)

	_, ok := c.Resolve(ino.ID)
	require.False(t, ok, "last reference dropping a tombstoned inode removes it entirely")
}

func TestLen_countsOnlyLiveEntries(t *testing.T) {
	c, _ := newTestCache()
	c.Ref("/a", true)
	c.Ref("/b", true)
	require.Equal(t, 2, c.Len())

	c.MarkDeleted("/a")
	require.Equal(t, 1, c.Len())
}
