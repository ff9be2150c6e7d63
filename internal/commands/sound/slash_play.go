package sound

import (
	"fmt"

	"sounddeck/internal/catalog"
	"sounddeck/internal/core"
	"sounddeck/internal/voice"

	"github.com/bwmarrin/discordgo"
)

type PlayCommand struct {
	Catalog    *catalog.Catalog
	Dispatcher *voice.Dispatcher
	Resolver   core.VoiceStateResolver
}

func (c *PlayCommand) Name() string        { return "play" }
func (c *PlayCommand) Description() string { return "Play a saved sound" }
func (c *PlayCommand) Group() string       { return groupSound }
func (c *PlayCommand) Category() string    { return "🔊 Soundboard" }

func (c *PlayCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "sound",
				Description: "Name of the sound to play",
				Required:    true,
			},
		},
	}
}

// Run shares its busy policy with the soundboard button: while a sound is
// playing, both reject the request and ask the caller to wait.
func (c *PlayCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := context.Session
	event := context.Event

	var name string
	for _, opt := range event.ApplicationCommandData().Options {
		if opt.Name == "sound" {
			name = opt.StringValue()
		}
	}

	sound, err := c.Catalog.Resolve(name)
	if err != nil {
		return core.RespondEphemeral(session, event, userMessage(err))
	}

	channelID := ""
	if vs, err := c.Resolver.FindUserVoiceState(event.GuildID, event.Member.User.ID); err == nil {
		channelID = vs.ChannelID
	}

	if err := c.Dispatcher.Play(event.GuildID, channelID, sound.Path); err != nil {
		return core.RespondEphemeral(session, event, userMessage(err))
	}

	return core.RespondEphemeral(session, event, fmt.Sprintf("Playing: %s", sound.Name))
}
