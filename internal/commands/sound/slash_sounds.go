package sound

import (
	"fmt"
	"os"
	"strings"

	"sounddeck/internal/catalog"
	"sounddeck/internal/core"

	"github.com/bwmarrin/discordgo"
	humanize "github.com/dustin/go-humanize"
)

type SoundsCommand struct {
	Catalog *catalog.Catalog
}

func (c *SoundsCommand) Name() string        { return "sounds" }
func (c *SoundsCommand) Description() string { return "List all sounds in the library" }
func (c *SoundsCommand) Group() string       { return groupSound }
func (c *SoundsCommand) Category() string    { return "🔊 Soundboard" }

func (c *SoundsCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *SoundsCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := context.Session
	event := context.Event

	sounds, err := c.Catalog.List()
	if err != nil {
		return core.RespondEphemeral(session, event, userMessage(err))
	}
	if len(sounds) == 0 {
		return core.RespondEphemeral(session, event, "The sound library is empty. Use /upload to add sounds.")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%d sound(s):**\n", len(sounds))
	for _, s := range sounds {
		size := ""
		if info, err := os.Stat(s.Path); err == nil {
			size = " - " + humanize.Bytes(uint64(info.Size()))
		}
		fmt.Fprintf(&b, "%s (.%s)%s\n", s.Name, s.Format, size)
	}

	return core.RespondEphemeral(session, event, b.String())
}
