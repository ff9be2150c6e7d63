package core

import (
	"sounddeck/internal/storage"

	"github.com/bwmarrin/discordgo"
)

// Command is the unit the bot registers and routes to.
type Command interface {
	Name() string
	Description() string
	Group() string
	Category() string
	Run(ctx interface{}) error
}

// SlashProvider marks commands that register a slash definition with Discord.
type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

// ComponentInteractionHandler marks commands that own message components.
// The bot routes a component interaction here when its CustomID starts with
// the command's name.
type ComponentInteractionHandler interface {
	Component(*ComponentInteractionContext) error
}

// SlashInteractionContext is handed to Run for a slash command invocation.
type SlashInteractionContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Storage *storage.Storage
}

// ComponentInteractionContext is handed to Component for a button press.
type ComponentInteractionContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Storage *storage.Storage
}

// VoiceState holds the minimal voice channel state of one user.
type VoiceState struct {
	ChannelID string
	UserID    string
}

// VoiceStateResolver looks up which voice channel a user currently occupies.
// Implemented by the Discord bot shell; commands depend on the interface.
type VoiceStateResolver interface {
	FindUserVoiceState(guildID, userID string) (*VoiceState, error)
}
