package catalog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// TrimFunc cuts the file at path down to the [start, end) second range.
// Injected so the pipeline can be exercised without a codec installed.
type TrimFunc func(path string, start, end *float64) error

// Upload describes an inbound attachment.
type Upload struct {
	Filename string
	Size     int64
	Name     string // optional explicit name; keeps the original extension
	Start    *float64
	End      *float64
	Body     io.Reader
}

// Uploader validates and admits attachments into the catalog.
type Uploader struct {
	catalog      *Catalog
	maxSounds    int
	maxFileBytes int64
	trim         TrimFunc
}

func NewUploader(c *Catalog, maxSounds, maxFileSizeMB int, trim TrimFunc) *Uploader {
	return &Uploader{
		catalog:      c,
		maxSounds:    maxSounds,
		maxFileBytes: int64(maxFileSizeMB) << 20,
		trim:         trim,
	}
}

// Save runs the admission pipeline: capacity, size and format checks, name
// resolution, persist, then the optional trim. Checks short-circuit before
// anything touches the disk, so a rejected upload leaves the catalog
// untouched. A failed trim does NOT roll the upload back: the untrimmed file
// stays in place and the error is reported alongside the saved entry.
//
// No collision check: an upload whose resolved stem matches an existing
// sound silently overwrites it, same as the directory listing semantics.
func (u *Uploader) Save(up Upload) (Sound, error) {
	count, err := u.catalog.Count()
	if err != nil {
		return Sound{}, err
	}
	if count >= u.maxSounds {
		return Sound{}, ErrCatalogFull
	}

	if up.Size > u.maxFileBytes {
		return Sound{}, ErrFileTooLarge
	}

	ext := filepath.Ext(up.Filename)
	format, ok := ParseFormat(ext)
	if !ok {
		return Sound{}, ErrUnsupportedFormat
	}

	filename := up.Filename
	if up.Name != "" {
		filename = up.Name + ext
	}
	path := filepath.Join(u.catalog.Dir(), filename)

	if err := writeFile(path, up.Body); err != nil {
		return Sound{}, fmt.Errorf("failed to save attachment: %w", err)
	}

	sound := Sound{Name: stem(filename), Path: path, Format: format}

	if up.Start != nil || up.End != nil {
		if err := u.trim(path, up.Start, up.End); err != nil {
			return sound, err
		}
	}

	return sound, nil
}

func writeFile(path string, body io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}
