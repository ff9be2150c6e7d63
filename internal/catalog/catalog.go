// Package catalog maintains the sound library as a flat directory of audio
// files. The directory listing is the index: every access re-reads the
// filesystem, so the catalog never goes stale but is not linearizable against
// writers outside this process.
package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrInvalidDirectory  = errors.New("sounds directory does not exist or is not a directory")
	ErrNotFound          = errors.New("sound not found")
	ErrCatalogFull       = errors.New("sound catalog is full")
	ErrFileTooLarge      = errors.New("file exceeds the maximum allowed size")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)

// Format is the container format of a catalog entry, derived from the file
// extension.
type Format string

const (
	FormatMP3  Format = "mp3"
	FormatWAV  Format = "wav"
	FormatOGG  Format = "ogg"
	FormatOpus Format = "opus"
)

// ParseFormat maps a filename extension (with or without the leading dot) to
// a supported Format.
func ParseFormat(ext string) (Format, bool) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "mp3":
		return FormatMP3, true
	case "wav":
		return FormatWAV, true
	case "ogg":
		return FormatOGG, true
	case "opus":
		return FormatOpus, true
	}
	return "", false
}

// Sound is a single catalog entry. Name is the filename without extension and
// is the lookup key across the whole bot.
type Sound struct {
	Name   string
	Path   string
	Format Format
}

// Catalog reads and mutates the sounds directory. It holds no state besides
// the directory path; two Catalogs over the same directory are equivalent.
type Catalog struct {
	dir string
}

func New(dir string) *Catalog {
	return &Catalog{dir: dir}
}

// Dir returns the backing directory path.
func (c *Catalog) Dir() string {
	return c.dir
}

// List scans the directory and returns all entries in listing order.
// Subdirectories and files with unknown extensions are skipped. Two files
// with the same stem collapse to the later one; os.ReadDir sorts by filename,
// so the lexicographically last extension wins.
func (c *Catalog) List() ([]Sound, error) {
	info, err := os.Stat(c.dir)
	if err != nil || !info.IsDir() {
		return nil, ErrInvalidDirectory
	}

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, ErrInvalidDirectory
	}

	var sounds []Sound
	seen := map[string]int{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		format, ok := ParseFormat(filepath.Ext(entry.Name()))
		if !ok {
			continue
		}
		sound := Sound{
			Name:   stem(entry.Name()),
			Path:   filepath.Join(c.dir, entry.Name()),
			Format: format,
		}
		if i, dup := seen[sound.Name]; dup {
			sounds[i] = sound
			continue
		}
		seen[sound.Name] = len(sounds)
		sounds = append(sounds, sound)
	}
	return sounds, nil
}

// Resolve finds the file whose stem matches name.
func (c *Catalog) Resolve(name string) (Sound, error) {
	sounds, err := c.List()
	if err != nil {
		return Sound{}, err
	}
	for _, s := range sounds {
		if s.Name == name {
			return s, nil
		}
	}
	return Sound{}, ErrNotFound
}

// Remove deletes the backing file of the named sound. Subsequent List calls
// no longer include it.
func (c *Catalog) Remove(name string) error {
	sound, err := c.Resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(sound.Path); err != nil {
		return err
	}
	return nil
}

// Count returns the number of catalog entries.
func (c *Catalog) Count() (int, error) {
	sounds, err := c.List()
	if err != nil {
		return 0, err
	}
	return len(sounds), nil
}

func stem(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}
