package device

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wasihost/core/internal/fsapi"
	"github.com/wasihost/core/internal/wasip1"
)

func TestFilesystem_Root_isStableAcrossCalls(t *testing.T) {
	d := NewFilesystem(newMemFS(), []string{"/"})
	a := d.Root(".")
	b := d.Root(".")
	require.Equal(t, a, b)
}

func TestFilesystem_PathOpen_regularFileRoundTrip(t *testing.T) {
	d := NewFilesystem(newMemFS(), []string{"/"})
	root := d.Root(".")

	res, errno := d.PathOpen(root, "animals.txt", 0, 0, false)
	require.Equal(t, wasip1.ErrnoSuccess, errno)
	require.Equal(t, wasip1.FiletypeRegularFile, res.Filetype)

	n, errno := d.FdPwrite(res.InoID, [][]byte{[]byte("new content")}, 0)
	require.Equal(t, wasip1.ErrnoSuccess, errno)
	require.Equal(t, uint64(11), n)

	buf := make([]byte, 11)
	n, errno = d.FdPread(res.InoID, [][]byte{buf}, 0)
	require.Equal(t, wasip1.ErrnoSuccess, errno)
	require.Equal(t, uint64(11), n)
	require.Equal(t, "new content", string(buf))
}

func TestFilesystem_PathOpen_existExclFails(t *testing.T) {
	d := NewFilesystem(newMemFS(), []string{"/"})
	root := d.Root(".")

	_, errno := d.PathOpen(root, "animals.txt", wasip1.OflagsCreat|wasip1.OflagsExcl, 0, false)
	require.Equal(t, wasip1.ErrnoExist, errno)
}

func TestFilesystem_PathOpen_missingWithoutCreatFails(t *testing.T) {
	d := NewFilesystem(newMemFS(), []string{"/"})
	root := d.Root(".")

	_, errno := d.PathOpen(root, "nope.txt", 0, 0, false)
	require.Equal(t, wasip1.ErrnoNoent, errno)
}

func TestFilesystem_PathOpen_createsMissingFile(t *testing.T) {
	d := NewFilesystem(newMemFS(), []string{"/"})
	root := d.Root(".")

	res, errno := d.PathOpen(root, "new.txt", wasip1.OflagsCreat, 0, false)
	require.Equal(t, wasip1.ErrnoSuccess, errno)
	require.False(t, res.IsDir)
}

func TestFilesystem_FdReaddir_listsAllEntries(t *testing.T) {
	d := NewFilesystem(newMemFS(), []string{"/"})
	root := d.Root(".")

	it, errno := d.FdReaddir(root)
	require.Equal(t, wasip1.ErrnoSuccess, errno)

	var names []string
	for {
		e, ok, errno := it.Next()
		require.Equal(t, wasip1.ErrnoSuccess, errno)
		if !ok {
			break
		}
		names = append(names, e.Name)
	}
	require.Contains(t, names, "animals.txt")
	require.Contains(t, names, "sub")
}

func TestFilesystem_PathUnlinkFile_tombstonesInode(t *testing.T) {
	d := NewFilesystem(newMemFS(), []string{"/"})
	root := d.Root(".")

	res, errno := d.PathOpen(root, "animals.txt", 0, 0, false)
	require.Equal(t, wasip1.ErrnoSuccess, errno)

	errno = d.PathUnlinkFile(root, "animals.txt")
	require.Equal(t, wasip1.ErrnoSuccess, errno)

	// the already-open descriptor still resolves
	_, errno = d.FdFilestatGet(res.InoID)
	require.NotEqual(t, wasip1.ErrnoBadf, errno)

	_, errno = d.PathOpen(root, "animals.txt", 0, 0, false)
	require.Equal(t, wasip1.ErrnoNoent, errno)
}

func TestFilesystem_FdFilestatSetSize_truncatesAndGrows(t *testing.T) {
	d := NewFilesystem(newMemFS(), []string{"/"})
	root := d.Root(".")
	res, _ := d.PathOpen(root, "animals.txt", 0, 0, false)

	errno := d.FdFilestatSetSize(res.InoID, 3)
	require.Equal(t, wasip1.ErrnoSuccess, errno)

	st, errno := d.FdFilestatGet(res.InoID)
	require.Equal(t, wasip1.ErrnoSuccess, errno)
	require.Equal(t, uint64(3), st.Size)
}

var _ fsapi.Driver = (*Filesystem)(nil)
