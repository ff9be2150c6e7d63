package voice

import (
	"sync"
)

// Session is the bot's connection to one guild's voice channel. There is at
// most one per guild; all mutation goes through the session mutex.
type Session struct {
	mu        sync.Mutex
	guildID   string
	channelID string
	conn      Connection
	playing   bool
	stop      chan struct{}
	done      chan struct{}
}

func (s *Session) GuildID() string {
	return s.guildID
}

func (s *Session) ChannelID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.channelID
}

func (s *Session) IsPlaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

// stopPlayback halts the current stream and waits for the streamer goroutine
// to finish, so a subsequent Play never overlaps the old stream.
func (s *Session) stopPlayback() error {
	s.mu.Lock()
	if !s.playing {
		s.mu.Unlock()
		return ErrNotPlaying
	}
	s.playing = false
	close(s.stop)
	done := s.done
	s.mu.Unlock()

	<-done
	return nil
}

// close tears down the transport connection. force skips waiting for a
// running stream to drain; the reaper and explicit leave both use it.
func (s *Session) close(force bool) error {
	s.mu.Lock()
	if s.playing {
		s.playing = false
		close(s.stop)
	}
	done := s.done
	conn := s.conn
	s.mu.Unlock()

	if !force && done != nil {
		<-done
	}
	if conn == nil {
		return nil
	}
	return conn.Disconnect()
}

// Registry tracks one Session per guild. It replaces the ambient globals of
// the bot's earlier life: its lifetime is the process, owned by main.
type Registry struct {
	mu       sync.Mutex
	dialer   Dialer
	sessions map[string]*Session
}

func NewRegistry(dialer Dialer) *Registry {
	return &Registry{
		dialer:   dialer,
		sessions: make(map[string]*Session),
	}
}

// Connect joins the given channel and records the session. Idempotent in
// effect: if the guild already has a session it is returned as is, without
// reconnecting, even when channelID is empty. ErrNoChannel only when a new
// connection would be needed and the requesting user is not in voice.
func (r *Registry) Connect(guildID, channelID string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session, ok := r.sessions[guildID]; ok {
		return session, nil
	}

	if channelID == "" {
		return nil, ErrNoChannel
	}

	conn, err := r.dialer.Join(guildID, channelID)
	if err != nil {
		return nil, err
	}

	session := &Session{
		guildID:   guildID,
		channelID: channelID,
		conn:      conn,
	}
	r.sessions[guildID] = session
	return session, nil
}

// Disconnect drops the guild's session. A guild with no session is a no-op
// success, so callers never have to check first.
func (r *Registry) Disconnect(guildID string, force bool) error {
	r.mu.Lock()
	session, ok := r.sessions[guildID]
	if ok {
		delete(r.sessions, guildID)
	}
	r.mu.Unlock()

	if !ok {
		return nil
	}
	return session.close(force)
}

func (r *Registry) Session(guildID string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[guildID]
	return session, ok
}

func (r *Registry) IsConnected(guildID string) bool {
	_, ok := r.Session(guildID)
	return ok
}

func (r *Registry) IsPlaying(guildID string) bool {
	session, ok := r.Session(guildID)
	return ok && session.IsPlaying()
}

// Sessions snapshots all live sessions, for the reaper sweep.
func (r *Registry) Sessions() []*Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	return out
}
