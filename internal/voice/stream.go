package voice

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"layeh.com/gopus"

	"sounddeck/internal/audio"
)

// streamOpus reads raw s16le PCM, encodes 20ms Opus frames and pushes them
// to the connection until the stream ends or stop closes.
func streamOpus(pcm io.ReadCloser, conn Connection, stop <-chan struct{}) error {
	encoder, err := gopus.NewEncoder(audio.SampleRate, audio.Channels, gopus.Audio)
	if err != nil {
		return fmt.Errorf("encoder error: %w", err)
	}

	defer pcm.Close()

	if err := conn.Speaking(true); err != nil {
		return fmt.Errorf("speaking error: %w", err)
	}
	defer conn.Speaking(false)

	pcmBuf := make([]byte, audio.FrameSize*audio.Channels*2)
	intBuf := make([]int16, audio.FrameSize*audio.Channels)

	for {
		select {
		case <-stop:
			return nil
		default:
		}

		_, err := io.ReadFull(pcm, pcmBuf)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read error: %w", err)
		}

		for i := range intBuf {
			intBuf[i] = int16(binary.LittleEndian.Uint16(pcmBuf[i*2 : i*2+2]))
		}

		opus, err := encoder.Encode(intBuf, audio.FrameSize, len(pcmBuf))
		if err != nil {
			return fmt.Errorf("encode error: %w", err)
		}

		select {
		case conn.OpusSend() <- opus:
		case <-stop:
			return nil
		}
	}
}
