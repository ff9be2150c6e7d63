// Package discord is the gateway shell: session lifecycle, intents, slash
// command registration and interaction routing. Everything domain-shaped
// lives behind it in catalog, voice and selector.
package discord

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"

	"sounddeck/internal/config"
	"sounddeck/internal/core"
	"sounddeck/internal/storage"
	"sounddeck/internal/voice"
)

// Bot is the Discord-facing half of the soundboard.
type Bot struct {
	dg       *discordgo.Session
	cfg      *config.Config
	storage  *storage.Storage
	registry *voice.Registry
}

func NewBot(cfg *config.Config, store *storage.Storage) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	b := &Bot{
		dg:      dg,
		cfg:     cfg,
		storage: store,
	}
	b.registry = voice.NewRegistry(&sessionDialer{dg: dg})
	return b, nil
}

// VoiceRegistry exposes the per-guild session registry so main can wire the
// dispatcher and commands against it.
func (b *Bot) VoiceRegistry() *voice.Registry {
	return b.registry
}

// Run opens the gateway and blocks until ctx is cancelled. The idle reaper
// runs for the same lifetime.
func (b *Bot) Run(ctx context.Context) error {
	b.dg.Identify.Intents = discordgo.IntentsAllWithoutPrivileged | discordgo.IntentsGuildMembers

	b.dg.AddHandler(b.onReady)
	b.dg.AddHandler(b.onGuildCreate)
	b.dg.AddHandler(b.onInteractionCreate)

	if err := b.dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer b.dg.Close()

	go voice.RunIdleReaper(ctx, b.registry, b.ChannelOccupancy)

	<-ctx.Done()
	log.Println("[INFO] Shutdown signal received. Cleaning up...")
	for _, session := range b.registry.Sessions() {
		if err := b.registry.Disconnect(session.GuildID(), true); err != nil {
			log.Printf("[ERR] Failed to disconnect guild %s on shutdown: %v", session.GuildID(), err)
		}
	}
	return nil
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	if !b.cfg.InitSlashCommands {
		log.Println("[INFO] Registering slash commands skipped")
		log.Printf("[INFO] ✅ Discord bot %v is running.", s.State.User.Username)
		return
	}

	for _, g := range r.Guilds {
		if err := b.registerCommands(g.ID); err != nil {
			log.Println("[ERR] Error registering slash commands for guild", g.ID, ":", err)
		}
	}
	log.Printf("[INFO] ✅ Discord bot %v is running.", s.State.User.Username)
}

func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	log.Printf("[INFO] Bot added to guild: %s (%s)", g.Guild.ID, g.Guild.Name)
	if err := b.registerCommands(g.Guild.ID); err != nil {
		log.Printf("[ERR] Failed to register commands for guild %s: %v", g.Guild.ID, err)
	}
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		cmdName := i.ApplicationCommandData().Name
		cmd, ok := core.GetCommand(cmdName)
		if !ok {
			log.Printf("[WARN] Unknown command: %s", cmdName)
			return
		}

		ctx := &core.SlashInteractionContext{
			Session: s,
			Event:   i,
			Storage: b.storage,
		}
		if err := cmd.Run(ctx); err != nil {
			log.Printf("[ERR] Error running command %s: %v", cmdName, err)
		}

	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		cmdName, _, _ := strings.Cut(customID, ":")

		cmd, ok := core.GetCommand(cmdName)
		if !ok {
			log.Printf("[WARN] No matching command for component ID: %s", customID)
			return
		}
		handler, ok := cmd.(core.ComponentInteractionHandler)
		if !ok {
			log.Printf("[WARN] Command %s does not handle components", cmdName)
			return
		}

		ctx := &core.ComponentInteractionContext{
			Session: s,
			Event:   i,
			Storage: b.storage,
		}
		if err := handler.Component(ctx); err != nil {
			log.Printf("[ERR] Error running component handler %s: %v", cmdName, err)
		}
	}
}

// registerCommands syncs the guild's slash commands, rate limited to stay
// under the gateway's command-update budget.
func (b *Bot) registerCommands(guildID string) error {
	appID := b.dg.State.User.ID
	if appID == "" {
		user, err := b.dg.User("@me")
		if err != nil {
			return err
		}
		appID = user.ID
	}

	limiter := rate.NewLimiter(rate.Every(time.Second/40), 1)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	for _, cmd := range core.AllCommands() {
		sp, ok := cmd.(core.SlashProvider)
		if !ok {
			continue
		}
		def := sp.SlashDefinition()
		if def == nil {
			continue
		}
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
		if _, err := b.dg.ApplicationCommandCreate(appID, guildID, def); err != nil {
			log.Printf("[ERR] Can't create command %s: %v", def.Name, err)
		}
	}
	return nil
}
