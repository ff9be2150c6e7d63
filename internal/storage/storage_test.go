package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	s, err := New(ctx, filepath.Join(t.TempDir(), "datastore.json"))
	require.NoError(t, err)
	t.Cleanup(func() {
		cancel()
		s.Close()
	})
	return s
}

func historyEntry(command string) CommandHistoryRecord {
	return CommandHistoryRecord{
		ChannelID: "chan-1",
		UserID:    "user-1",
		Username:  "tester",
		Command:   command,
		Datetime:  time.Now().UTC(),
	}
}

func TestCommandHistoryRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	require.NoError(t, s.AddCommandHistory("guild-1", historyEntry("play")))
	require.NoError(t, s.AddCommandHistory("guild-1", historyEntry("stop")))

	history, err := s.GetCommandHistory("guild-1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "play", history[0].Command)
	assert.Equal(t, "stop", history[1].Command)

	// Other guilds are untouched.
	other, err := s.GetCommandHistory("guild-2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestCommandHistoryIsBounded(t *testing.T) {
	s := newTestStorage(t)

	for i := 0; i < commandHistoryLimit+5; i++ {
		require.NoError(t, s.AddCommandHistory("guild-1", historyEntry("play")))
	}

	history, err := s.GetCommandHistory("guild-1")
	require.NoError(t, err)
	assert.Len(t, history, commandHistoryLimit)
}

func TestGroupToggling(t *testing.T) {
	s := newTestStorage(t)

	disabled, err := s.IsGroupDisabled("guild-1", "sound")
	require.NoError(t, err)
	assert.False(t, disabled)

	require.NoError(t, s.DisableGroup("guild-1", "sound"))
	// Disabling twice keeps a single entry.
	require.NoError(t, s.DisableGroup("guild-1", "sound"))

	disabled, err = s.IsGroupDisabled("guild-1", "sound")
	require.NoError(t, err)
	assert.True(t, disabled)

	require.NoError(t, s.EnableGroup("guild-1", "sound"))
	disabled, err = s.IsGroupDisabled("guild-1", "sound")
	require.NoError(t, err)
	assert.False(t, disabled)
}
