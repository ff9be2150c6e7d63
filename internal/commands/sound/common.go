// Package sound holds the soundboard command surface: voice control, playback,
// the paginated selectors, uploads and the catalog listing.
package sound

import (
	"errors"
	"fmt"

	"sounddeck/internal/audio"
	"sounddeck/internal/catalog"
	"sounddeck/internal/voice"
)

const groupSound = "sound"

// userMessage maps the error taxonomy to the short texts users see. Anything
// unmapped is reported verbatim; every failure is recoverable and none
// crashes the process.
func userMessage(err error) string {
	switch {
	case errors.Is(err, voice.ErrNoChannel):
		return "You are not in a voice channel."
	case errors.Is(err, voice.ErrAlreadyPlaying):
		return "Playing a sound, wait for it to finish."
	case errors.Is(err, voice.ErrNotPlaying):
		return "Nothing playing."
	case errors.Is(err, voice.ErrNotConnected):
		return "Bot not in a voice channel."
	case errors.Is(err, catalog.ErrNotFound):
		return "Sound not found."
	case errors.Is(err, catalog.ErrInvalidDirectory):
		return "The sound library is unavailable."
	case errors.Is(err, catalog.ErrCatalogFull):
		return "The sound library is full."
	case errors.Is(err, catalog.ErrFileTooLarge):
		return "File is too large."
	case errors.Is(err, catalog.ErrUnsupportedFormat):
		return "Unsupported format (.mp3, .wav, .ogg, .opus)."
	case errors.Is(err, audio.ErrTrimFailed):
		return "Saved, but trimming failed. Kept the full clip."
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
