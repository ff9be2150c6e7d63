package sound

import (
	"sounddeck/internal/core"
	"sounddeck/internal/voice"

	"github.com/bwmarrin/discordgo"
)

type LeaveCommand struct {
	Voice *voice.Registry
}

func (c *LeaveCommand) Name() string        { return "leave" }
func (c *LeaveCommand) Description() string { return "Leave the voice channel" }
func (c *LeaveCommand) Group() string       { return groupSound }
func (c *LeaveCommand) Category() string    { return "🔊 Soundboard" }

func (c *LeaveCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *LeaveCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := context.Session
	event := context.Event

	if !c.Voice.IsConnected(event.GuildID) {
		return core.RespondEphemeral(session, event, userMessage(voice.ErrNotConnected))
	}

	if err := c.Voice.Disconnect(event.GuildID, true); err != nil {
		return core.RespondEphemeral(session, event, userMessage(err))
	}

	return core.RespondEphemeral(session, event, "Disconnected!")
}
