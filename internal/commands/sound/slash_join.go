package sound

import (
	"sounddeck/internal/core"
	"sounddeck/internal/voice"

	"github.com/bwmarrin/discordgo"
)

type JoinCommand struct {
	Voice    *voice.Registry
	Resolver core.VoiceStateResolver
}

func (c *JoinCommand) Name() string        { return "join" }
func (c *JoinCommand) Description() string { return "Join your current voice channel" }
func (c *JoinCommand) Group() string       { return groupSound }
func (c *JoinCommand) Category() string    { return "🔊 Soundboard" }

func (c *JoinCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *JoinCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := context.Session
	event := context.Event

	vs, err := c.Resolver.FindUserVoiceState(event.GuildID, event.Member.User.ID)
	if err != nil {
		return core.RespondEphemeral(session, event, userMessage(voice.ErrNoChannel))
	}

	if _, err := c.Voice.Connect(event.GuildID, vs.ChannelID); err != nil {
		return core.RespondEphemeral(session, event, userMessage(err))
	}

	return core.RespondEphemeral(session, event, "Connected!")
}
