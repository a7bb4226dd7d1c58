package logging

import (
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestScopes_IsEnabled(t *testing.T) {
	f := ScopeClock | ScopeFilesystem

	require.True(t, f.IsEnabled(ScopeClock))
	require.True(t, f.IsEnabled(ScopeFilesystem))
	require.False(t, f.IsEnabled(ScopePoll))
	require.False(t, ScopeNone.IsEnabled(ScopeClock))
	require.True(t, ScopeAll.IsEnabled(ScopeSock))
}

func TestScopes_String(t *testing.T) {
	tests := []struct {
		name     string
		scopes   Scopes
		expected string
	}{
		{name: "none", scopes: ScopeNone, expected: ""},
		{name: "filesystem", scopes: ScopeFilesystem, expected: "filesystem"},
		{name: "random", scopes: ScopeRandom, expected: "random"},
		{name: "clock|filesystem", scopes: ScopeClock | ScopeFilesystem, expected: "clock|filesystem"},
		{name: "all", scopes: ScopeAll, expected: "all"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, tc.scopes.String())
		})
	}
}

func TestLogger_Trace(t *testing.T) {
	out, hook := test.NewNullLogger()
	l := New(ScopeFilesystem, out)

	l.Trace(ScopePoll, "poll_oneoff", nil)
	require.Empty(t, hook.Entries)

	l.Trace(ScopeFilesystem, "fd_read", nil)
	require.Len(t, hook.Entries, 1)
	require.Equal(t, "fd_read", hook.Entries[0].Message)
}

func TestLogger_Trace_nilLogger(t *testing.T) {
	var l *Logger
	require.NotPanics(t, func() { l.Trace(ScopeAll, "fd_read", nil) })
}
