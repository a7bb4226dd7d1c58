package fdtable

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wasihost/core/internal/wasip1"
)

func TestInsert_startsAtFirstFreeFD(t *testing.T) {
	tab := New()
	fd := tab.Insert(&Entry{Kind: KindRegularFile})
	require.Equal(t, StderrFD+1, fd)
}

func TestInsertAt_doesNotConsumeCounter(t *testing.T) {
	tab := New()
	tab.InsertAt(StdinFD, &Entry{Kind: KindCharacterDevice})

	fd := tab.Insert(&Entry{Kind: KindRegularFile})
	require.Equal(t, StderrFD+1, fd, "InsertAt must not advance the shared counter")
}

func TestResetCounterAfterPreopens(t *testing.T) {
	tab := New()
	tab.InsertAt(0, &Entry{})
	tab.InsertAt(1, &Entry{})
	tab.InsertAt(2, &Entry{})
	tab.InsertAt(3, &Entry{Kind: KindDirectory})
	tab.InsertAt(4, &Entry{Kind: KindDirectory})

	tab.ResetCounterAfterPreopens(4)

	fd := tab.Insert(&Entry{Kind: KindRegularFile})
	require.Equal(t, uint32(5), fd)
}

func TestLookup_missingFD(t *testing.T) {
	tab := New()
	_, ok := tab.Lookup(42)
	require.False(t, ok)
}

func TestDelete_removesEntryAndMount(t *testing.T) {
	tab := New()
	fd := tab.Insert(&Entry{Kind: KindDirectory, RightsBase: wasip1.DirectoryBase})
	tab.SetMount(fd, "/workspace")

	tab.Delete(fd)

	_, ok := tab.Lookup(fd)
	require.False(t, ok)
	_, ok = tab.Mount(fd)
	require.False(t, ok)
}

func TestRange_visitsEveryEntry(t *testing.T) {
	tab := New()
	tab.Insert(&Entry{})
	tab.Insert(&Entry{})

	count := 0
	tab.Range(func(uint32, *Entry) bool {
		count++
		return true
	})
	require.Equal(t, 2, count)
}

func TestRange_stopsEarly(t *testing.T) {
	tab := New()
	tab.Insert(&Entry{})
	tab.Insert(&Entry{})

	count := 0
	tab.Range(func(uint32, *Entry) bool {
		count++
		return false
	})
	require.Equal(t, 1, count)
}
