// Package voice owns the bot's per-guild voice state: which channel we sit
// in, whether a sound is playing, and the periodic reaping of connections
// nobody is listening to. The Discord transport is reached through the
// narrow Dialer/Connection interfaces so everything here runs against fakes
// in tests.
package voice

import "errors"

var (
	ErrNoChannel      = errors.New("you are not in a voice channel")
	ErrAlreadyPlaying = errors.New("a sound is already playing")
	ErrNotPlaying     = errors.New("no sound is currently playing")
	ErrNotConnected   = errors.New("not connected to a voice channel")
)

// Connection is a live transport link to one voice channel.
type Connection interface {
	Speaking(bool) error
	OpusSend() chan<- []byte
	Disconnect() error
}

// Dialer joins voice channels on behalf of the registry.
type Dialer interface {
	Join(guildID, channelID string) (Connection, error)
}
