package sound

import (
	"fmt"
	"log"
	"strconv"

	"sounddeck/internal/catalog"
	"sounddeck/internal/core"
	"sounddeck/internal/selector"

	"github.com/bwmarrin/discordgo"
)

type DeleteCommand struct {
	Catalog *catalog.Catalog
}

func (c *DeleteCommand) Name() string        { return "delete" }
func (c *DeleteCommand) Description() string { return "Delete a sound from the library" }
func (c *DeleteCommand) Group() string       { return groupSound }
func (c *DeleteCommand) Category() string    { return "🔊 Soundboard" }

func (c *DeleteCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *DeleteCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := context.Session
	event := context.Event

	content, components, err := renderSelector(c.Catalog, selector.ModeDelete, c.Name(), 0)
	if err != nil {
		return core.RespondEphemeral(session, event, userMessage(err))
	}
	return core.RespondComponents(session, event, content, components)
}

// Component deletes the picked sound and re-renders the surface in place.
// The surface stays interactive; the page clamps when the last entry of the
// final page disappears.
func (c *DeleteCommand) Component(ctx *core.ComponentInteractionContext) error {
	session := ctx.Session
	event := ctx.Event

	_, action, arg, err := selector.ParseCustomID(event.MessageComponentData().CustomID)
	if err != nil {
		log.Println("[WARN] Unparseable component ID:", err)
		return core.Acknowledge(session, event)
	}

	switch action {
	case "select":
		page, name, err := selector.ParseSelectArg(arg)
		if err != nil {
			return core.Acknowledge(session, event)
		}

		removeErr := c.Catalog.Remove(name)

		sounds, listErr := c.Catalog.List()
		if listErr != nil {
			if ackErr := core.Acknowledge(session, event); ackErr != nil {
				return ackErr
			}
			return core.FollowupEphemeral(session, event, userMessage(listErr))
		}

		content := "Pick a sound to delete:"
		var components []discordgo.MessageComponent
		if len(sounds) == 0 {
			content = "The sound library is empty."
		} else {
			components = selector.New(selector.ModeDelete, sounds, page).Components(c.Name())
		}
		if err := core.UpdateComponents(session, event, content, components); err != nil {
			return err
		}

		if removeErr != nil {
			return core.FollowupEphemeral(session, event, userMessage(removeErr))
		}
		return core.FollowupEphemeral(session, event, fmt.Sprintf("Deleted: %s", name))

	case "prev", "next":
		page, _ := strconv.Atoi(arg)
		return turnPage(session, event, c.Catalog, selector.ModeDelete, c.Name(), action, page)

	default:
		return core.Acknowledge(session, event)
	}
}
