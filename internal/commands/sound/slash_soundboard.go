package sound

import (
	"log"
	"strconv"

	"sounddeck/internal/catalog"
	"sounddeck/internal/core"
	"sounddeck/internal/selector"
	"sounddeck/internal/voice"

	"github.com/bwmarrin/discordgo"
)

type SoundboardCommand struct {
	Catalog    *catalog.Catalog
	Dispatcher *voice.Dispatcher
	Resolver   core.VoiceStateResolver
}

func (c *SoundboardCommand) Name() string        { return "soundboard" }
func (c *SoundboardCommand) Description() string { return "Open the soundboard" }
func (c *SoundboardCommand) Group() string       { return groupSound }
func (c *SoundboardCommand) Category() string    { return "🔊 Soundboard" }

func (c *SoundboardCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *SoundboardCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := context.Session
	event := context.Event

	content, components, err := renderSelector(c.Catalog, selector.ModePlay, c.Name(), 0)
	if err != nil {
		return core.RespondEphemeral(session, event, userMessage(err))
	}
	return core.RespondComponents(session, event, content, components)
}

// Component handles every button on a soundboard surface. A pressed sound
// goes through the same Dispatcher.Play as /play, so the two entry points
// share one busy policy.
func (c *SoundboardCommand) Component(ctx *core.ComponentInteractionContext) error {
	session := ctx.Session
	event := ctx.Event

	_, action, arg, err := selector.ParseCustomID(event.MessageComponentData().CustomID)
	if err != nil {
		log.Println("[WARN] Unparseable component ID:", err)
		return core.Acknowledge(session, event)
	}

	switch action {
	case "select":
		_, name, err := selector.ParseSelectArg(arg)
		if err != nil {
			return core.Acknowledge(session, event)
		}
		if err := core.Acknowledge(session, event); err != nil {
			return err
		}

		sound, err := c.Catalog.Resolve(name)
		if err != nil {
			return core.FollowupEphemeral(session, event, userMessage(err))
		}

		channelID := ""
		if vs, err := c.Resolver.FindUserVoiceState(event.GuildID, event.Member.User.ID); err == nil {
			channelID = vs.ChannelID
		}

		if err := c.Dispatcher.Play(event.GuildID, channelID, sound.Path); err != nil {
			return core.FollowupEphemeral(session, event, userMessage(err))
		}
		return nil

	case "prev", "next":
		page, _ := strconv.Atoi(arg)
		return turnPage(session, event, c.Catalog, selector.ModePlay, c.Name(), action, page)

	default:
		return core.Acknowledge(session, event)
	}
}

// renderSelector builds the page content and component grid for a selector
// surface from a fresh catalog scan.
func renderSelector(cat *catalog.Catalog, mode selector.Mode, command string, page int) (string, []discordgo.MessageComponent, error) {
	sounds, err := cat.List()
	if err != nil {
		return "", nil, err
	}
	if len(sounds) == 0 {
		return "The sound library is empty. Use /upload to add sounds.", nil, nil
	}

	state := selector.New(mode, sounds, page)
	content := "Soundboard:"
	if mode == selector.ModeDelete {
		content = "Pick a sound to delete:"
	}
	return content, state.Components(command), nil
}

// turnPage re-renders the pressed surface one page over. The catalog is
// re-scanned, so a shrunken library clamps the page instead of running off
// the end.
func turnPage(session *discordgo.Session, event *discordgo.InteractionCreate, cat *catalog.Catalog, mode selector.Mode, command, action string, page int) error {
	sounds, err := cat.List()
	if err != nil {
		if ackErr := core.Acknowledge(session, event); ackErr != nil {
			return ackErr
		}
		return core.FollowupEphemeral(session, event, userMessage(err))
	}

	state := selector.New(mode, sounds, page)
	if action == "next" {
		state.NextPage()
	} else {
		state.PrevPage()
	}

	content := "Soundboard:"
	if mode == selector.ModeDelete {
		content = "Pick a sound to delete:"
	}
	return core.UpdateComponents(session, event, content, state.Components(command))
}
