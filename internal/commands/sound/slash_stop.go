package sound

import (
	"sounddeck/internal/core"
	"sounddeck/internal/voice"

	"github.com/bwmarrin/discordgo"
)

type StopCommand struct {
	Dispatcher *voice.Dispatcher
}

func (c *StopCommand) Name() string        { return "stop" }
func (c *StopCommand) Description() string { return "Stop the sound currently playing" }
func (c *StopCommand) Group() string       { return groupSound }
func (c *StopCommand) Category() string    { return "🔊 Soundboard" }

func (c *StopCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *StopCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := context.Session
	event := context.Event

	if err := c.Dispatcher.Stop(event.GuildID); err != nil {
		return core.RespondEphemeral(session, event, userMessage(err))
	}

	return core.RespondEphemeral(session, event, "Stopped.")
}
