package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSound(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("audio"), 0o644))
	return path
}

func TestListReturnsSupportedFiles(t *testing.T) {
	dir := t.TempDir()
	writeSound(t, dir, "horn.mp3")
	writeSound(t, dir, "bell.wav")
	writeSound(t, dir, "notes.txt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	sounds, err := New(dir).List()
	require.NoError(t, err)
	require.Len(t, sounds, 2)

	names := map[string]Format{}
	for _, s := range sounds {
		names[s.Name] = s.Format
	}
	assert.Equal(t, FormatWAV, names["bell"])
	assert.Equal(t, FormatMP3, names["horn"])
}

func TestListInvalidDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing")).List()
	assert.ErrorIs(t, err, ErrInvalidDirectory)

	file := writeSound(t, t.TempDir(), "horn.mp3")
	_, err = New(file).List()
	assert.ErrorIs(t, err, ErrInvalidDirectory)
}

func TestListDuplicateStemLastWins(t *testing.T) {
	dir := t.TempDir()
	writeSound(t, dir, "horn.mp3")
	writeSound(t, dir, "horn.wav")

	sounds, err := New(dir).List()
	require.NoError(t, err)
	require.Len(t, sounds, 1)
	// os.ReadDir lists lexicographically, so the .wav file lands last.
	assert.Equal(t, FormatWAV, sounds[0].Format)
}

func TestResolveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := writeSound(t, dir, "foo.mp3")
	c := New(dir)

	sound, err := c.Resolve("foo")
	require.NoError(t, err)
	assert.Equal(t, path, sound.Path)

	require.NoError(t, c.Remove("foo"))

	_, err = c.Resolve("foo")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoFileExists(t, path)
}

func TestRemoveMissing(t *testing.T) {
	assert.ErrorIs(t, New(t.TempDir()).Remove("nope"), ErrNotFound)
}

func TestParseFormat(t *testing.T) {
	for _, ext := range []string{".mp3", "mp3", ".WAV", "ogg", ".opus"} {
		_, ok := ParseFormat(ext)
		assert.True(t, ok, ext)
	}
	_, ok := ParseFormat(".flac")
	assert.False(t, ok)
}
