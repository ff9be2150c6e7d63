package voice

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sounddeck/internal/audio"
)

const frameBytes = audio.FrameSize * audio.Channels * 2

// finiteStream serves the given number of silent PCM frames and then EOF.
func finiteStream(frames int) StreamOpener {
	return func(string) (io.ReadCloser, func(), error) {
		return io.NopCloser(bytes.NewReader(make([]byte, frames*frameBytes))), func() {}, nil
	}
}

// endlessPCM serves silence until closed, to keep a session busy on demand.
type endlessPCM struct {
	once   sync.Once
	closed chan struct{}
}

func newEndlessPCM() *endlessPCM {
	return &endlessPCM{closed: make(chan struct{})}
}

func (p *endlessPCM) Read(b []byte) (int, error) {
	select {
	case <-p.closed:
		return 0, io.EOF
	default:
	}
	clear(b)
	return len(b), nil
}

func (p *endlessPCM) Close() error {
	p.once.Do(func() { close(p.closed) })
	return nil
}

func endlessStream(pcm *endlessPCM) StreamOpener {
	return func(string) (io.ReadCloser, func(), error) {
		return pcm, func() {}, nil
	}
}

func TestPlayStreamsToCompletion(t *testing.T) {
	dialer := newFakeDialer()
	registry := NewRegistry(dialer)
	d := NewDispatcher(registry, finiteStream(3))

	require.NoError(t, d.Play("guild-1", "chan-a", "horn.mp3"))
	assert.True(t, registry.IsConnected("guild-1"))

	require.Eventually(t, func() bool {
		return !registry.IsPlaying("guild-1")
	}, time.Second, 5*time.Millisecond, "stream should drain and go idle")

	assert.GreaterOrEqual(t, dialer.conns["guild-1"].framesSent.Load(), int64(1))
	// The session survives playback; only leave or the reaper drop it.
	assert.True(t, registry.IsConnected("guild-1"))
}

func TestPlayRejectsSecondRequestWhileBusy(t *testing.T) {
	// Both the slash command and the soundboard button funnel into Play, so
	// this rejection is the busy behavior for either entry point.
	pcm := newEndlessPCM()
	defer pcm.Close()

	registry := NewRegistry(newFakeDialer())
	d := NewDispatcher(registry, endlessStream(pcm))

	require.NoError(t, d.Play("guild-1", "chan-a", "horn.mp3"))
	require.Eventually(t, func() bool {
		return registry.IsPlaying("guild-1")
	}, time.Second, 5*time.Millisecond)

	err := d.Play("guild-1", "chan-a", "bell.wav")
	assert.ErrorIs(t, err, ErrAlreadyPlaying)

	// Stopping frees the session for the next request.
	require.NoError(t, d.Stop("guild-1"))
	assert.False(t, registry.IsPlaying("guild-1"))
	assert.NoError(t, d.Play("guild-1", "chan-a", "bell.wav"))
}

func TestPlayRequiresChannelOnlyWhenDisconnected(t *testing.T) {
	registry := NewRegistry(newFakeDialer())
	d := NewDispatcher(registry, finiteStream(1))

	assert.ErrorIs(t, d.Play("guild-1", "", "horn.mp3"), ErrNoChannel)

	// Once the bot sits in a channel, a requester outside voice can still
	// trigger playback there.
	_, err := registry.Connect("guild-1", "chan-a")
	require.NoError(t, err)
	assert.NoError(t, d.Play("guild-1", "", "horn.mp3"))
	require.Eventually(t, func() bool {
		return !registry.IsPlaying("guild-1")
	}, time.Second, 5*time.Millisecond)
	assert.True(t, registry.IsConnected("guild-1"))
}

func TestStopWithoutSession(t *testing.T) {
	d := NewDispatcher(NewRegistry(newFakeDialer()), finiteStream(1))
	assert.ErrorIs(t, d.Stop("guild-1"), ErrNotConnected)
}

func TestStopWhenIdle(t *testing.T) {
	registry := NewRegistry(newFakeDialer())
	d := NewDispatcher(registry, finiteStream(1))

	require.NoError(t, d.Play("guild-1", "chan-a", "horn.mp3"))
	require.Eventually(t, func() bool {
		return !registry.IsPlaying("guild-1")
	}, time.Second, 5*time.Millisecond)

	assert.ErrorIs(t, d.Stop("guild-1"), ErrNotPlaying)
}

func TestPlayOpenFailureTearsDownFreshSession(t *testing.T) {
	dialer := newFakeDialer()
	registry := NewRegistry(dialer)
	openErr := errors.New("ffmpeg missing")
	d := NewDispatcher(registry, func(string) (io.ReadCloser, func(), error) {
		return nil, nil, openErr
	})

	assert.ErrorIs(t, d.Play("guild-1", "chan-a", "horn.mp3"), openErr)
	assert.False(t, registry.IsConnected("guild-1"))
	assert.True(t, dialer.conns["guild-1"].isDisconnected())
}

func TestPlayOpenFailureKeepsExistingSession(t *testing.T) {
	registry := NewRegistry(newFakeDialer())
	_, err := registry.Connect("guild-1", "chan-a")
	require.NoError(t, err)

	openErr := errors.New("ffmpeg missing")
	d := NewDispatcher(registry, func(string) (io.ReadCloser, func(), error) {
		return nil, nil, openErr
	})

	assert.ErrorIs(t, d.Play("guild-1", "chan-a", "horn.mp3"), openErr)
	// A session that predates the failed request stays up.
	assert.True(t, registry.IsConnected("guild-1"))
}

func TestPlayRunsCleanup(t *testing.T) {
	registry := NewRegistry(newFakeDialer())
	var mu sync.Mutex
	cleaned := false
	d := NewDispatcher(registry, func(string) (io.ReadCloser, func(), error) {
		return io.NopCloser(bytes.NewReader(make([]byte, frameBytes))), func() {
			mu.Lock()
			cleaned = true
			mu.Unlock()
		}, nil
	})

	require.NoError(t, d.Play("guild-1", "chan-a", "horn.mp3"))
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return cleaned
	}, time.Second, 5*time.Millisecond)
}
