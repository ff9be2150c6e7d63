package voice

import (
	"io"
	"log"

	"sounddeck/internal/audio"
)

// StreamOpener opens a PCM stream for the sound file at path. The default is
// audio.PCMStream; tests substitute in-memory readers.
type StreamOpener func(path string) (io.ReadCloser, func(), error)

// Dispatcher serializes playback requests against the registry. Both entry
// points (the /play slash command and the soundboard button) go through
// Play, so the busy policy below applies to either one.
type Dispatcher struct {
	registry *Registry
	open     StreamOpener
}

func NewDispatcher(registry *Registry, open StreamOpener) *Dispatcher {
	if open == nil {
		open = audio.PCMStream
	}
	return &Dispatcher{registry: registry, open: open}
}

// Play connects to channelID if the guild has no session yet, then streams
// the file at path into the channel. While a sound is playing, further
// requests are rejected with ErrAlreadyPlaying; the caller is told to wait.
// Playback itself is fire-and-forget: Play returns as soon as the streamer
// goroutine is launched, and completion is not reported back.
func (d *Dispatcher) Play(guildID, channelID, path string) error {
	wasConnected := d.registry.IsConnected(guildID)

	session, err := d.registry.Connect(guildID, channelID)
	if err != nil {
		return err
	}

	session.mu.Lock()
	if session.playing {
		session.mu.Unlock()
		return ErrAlreadyPlaying
	}

	stream, cleanup, err := d.open(path)
	if err != nil {
		session.mu.Unlock()
		if !wasConnected {
			// A half-set-up session is worse than none.
			if derr := d.registry.Disconnect(guildID, true); derr != nil {
				log.Println("[ERR] Failed to disconnect after play error:", derr)
			}
		}
		return err
	}

	session.playing = true
	session.stop = make(chan struct{})
	session.done = make(chan struct{})
	stop, done, conn := session.stop, session.done, session.conn
	session.mu.Unlock()

	go func() {
		defer cleanup()
		if err := streamOpus(stream, conn, stop); err != nil {
			log.Printf("[ERR] Playback error in guild %s: %v", guildID, err)
		}
		session.mu.Lock()
		session.playing = false
		session.mu.Unlock()
		close(done)
	}()

	return nil
}

// Stop halts the current stream. ErrNotConnected without a session,
// ErrNotPlaying when the session is idle.
func (d *Dispatcher) Stop(guildID string) error {
	session, ok := d.registry.Session(guildID)
	if !ok {
		return ErrNotConnected
	}
	return session.stopPlayback()
}
