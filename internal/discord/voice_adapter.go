package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"sounddeck/internal/core"
	"sounddeck/internal/voice"
)

// sessionDialer adapts the discordgo session to the voice.Dialer interface.
type sessionDialer struct {
	dg *discordgo.Session
}

func (d *sessionDialer) Join(guildID, channelID string) (voice.Connection, error) {
	vc, err := d.dg.ChannelVoiceJoin(guildID, channelID, false, true)
	if err != nil {
		return nil, fmt.Errorf("failed to join voice channel: %w", err)
	}
	return &voiceConnection{vc: vc}, nil
}

type voiceConnection struct {
	vc *discordgo.VoiceConnection
}

func (c *voiceConnection) Speaking(speaking bool) error {
	return c.vc.Speaking(speaking)
}

func (c *voiceConnection) OpusSend() chan<- []byte {
	return c.vc.OpusSend
}

func (c *voiceConnection) Disconnect() error {
	return c.vc.Disconnect()
}

// FindUserVoiceState finds the voice state of a user.
func (b *Bot) FindUserVoiceState(guildID, userID string) (*core.VoiceState, error) {
	guild, err := b.dg.State.Guild(guildID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving guild: %w", err)
	}

	for _, vs := range guild.VoiceStates {
		if vs.UserID == userID {
			return &core.VoiceState{
				ChannelID: vs.ChannelID,
				UserID:    vs.UserID,
			}, nil
		}
	}
	return nil, fmt.Errorf("user not in any voice channel")
}

// ChannelOccupancy counts the non-bot users in a voice channel. A guild or
// channel that no longer exists counts as empty, which is exactly what the
// reaper wants.
func (b *Bot) ChannelOccupancy(guildID, channelID string) int {
	guild, err := b.dg.State.Guild(guildID)
	if err != nil {
		return 0
	}

	count := 0
	for _, vs := range guild.VoiceStates {
		if vs.ChannelID != channelID {
			continue
		}
		if member, err := b.dg.State.Member(guildID, vs.UserID); err == nil && member.User != nil && member.User.Bot {
			continue
		}
		count++
	}
	return count
}
