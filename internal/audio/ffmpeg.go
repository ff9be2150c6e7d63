// Package audio is the boundary to the external codec. Decoding, probing and
// trimming all shell out to ffmpeg/ffprobe; nothing here touches audio bytes
// beyond piping raw PCM.
package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	Channels   = 2
	SampleRate = 48000
	FrameSize  = 960 // 20ms at 48kHz
)

var ErrTrimFailed = errors.New("failed to trim audio file")

// PCMStream decodes the file at path into interleaved signed 16-bit little
// endian PCM on a pipe. The returned cleanup kills the decoder; call it once
// the stream is no longer needed.
func PCMStream(path string) (io.ReadCloser, func(), error) {
	cmd := exec.Command("ffmpeg",
		"-i", path,
		"-f", "s16le",
		"-ar", strconv.Itoa(SampleRate),
		"-ac", strconv.Itoa(Channels),
		"-loglevel", "warning",
		"pipe:1",
	)

	reader, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("stdout pipe error: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, nil, fmt.Errorf("command start error: %w", err)
	}

	cleanup := func() {
		cmd.Process.Kill()
	}

	return reader, cleanup, nil
}

// Duration reads the clip length in seconds via ffprobe.
func Duration(path string) (float64, error) {
	out, err := exec.Command("ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	).Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe error: %w", err)
	}
	return strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
}

// Trim re-encodes path down to the [start, end) range, in seconds, keeping
// the original container. A nil bound means "from the beginning" or "to the
// end" respectively. The result replaces the file atomically via a temp file
// in the same directory; on codec failure the original file is left exactly
// as it was.
func Trim(path string, start, end *float64) error {
	if start == nil && end == nil {
		return nil
	}

	if start != nil && end != nil && *end <= *start {
		return fmt.Errorf("%w: end %s is not after start %s",
			ErrTrimFailed, formatSeconds(*end), formatSeconds(*start))
	}
	// A start past the clip end would make ffmpeg emit an empty file; probe
	// first. A failed probe is not fatal, the encode will surface it.
	if length, err := Duration(path); err == nil && start != nil && *start >= length {
		return fmt.Errorf("%w: start %s is beyond the clip length %s",
			ErrTrimFailed, formatSeconds(*start), formatSeconds(length))
	}

	tmp := trimTempPath(path)
	cmd := exec.Command("ffmpeg", trimArgs(path, tmp, start, end)...)
	if err := cmd.Run(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrTrimFailed, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrTrimFailed, err)
	}
	return nil
}

// trimArgs builds the ffmpeg argument list for Trim. Split out so the
// seek/duration handling is testable without a codec on the machine.
func trimArgs(in, out string, start, end *float64) []string {
	args := []string{"-y", "-i", in}
	if start != nil {
		args = append(args, "-ss", formatSeconds(*start))
	}
	if end != nil {
		args = append(args, "-to", formatSeconds(*end))
	}
	args = append(args, "-loglevel", "error", out)
	return args
}

func trimTempPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".trim" + ext
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}
