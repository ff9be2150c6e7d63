package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"sounddeck/internal/audio"
	"sounddeck/internal/catalog"
	"sounddeck/internal/commands/sound"
	"sounddeck/internal/config"
	"sounddeck/internal/core"
	"sounddeck/internal/discord"
	"sounddeck/internal/storage"
	"sounddeck/internal/voice"
	v "sounddeck/internal/version"
)

func main() {
	log.Printf("[INFO] Starting %v bot...", v.AppName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New()
	if err != nil {
		log.Fatal(err)
	}

	if err := os.MkdirAll(cfg.SoundsDir, 0o755); err != nil {
		log.Fatal("Failed to create sounds directory:", err)
	}

	store, err := storage.New(ctx, cfg.StoragePath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	bot, err := discord.NewBot(cfg, store)
	if err != nil {
		log.Fatal(err)
	}

	sounds := catalog.New(cfg.SoundsDir)
	uploader := catalog.NewUploader(sounds, cfg.MaxSounds, cfg.MaxFileSizeMB, audio.Trim)
	dispatcher := voice.NewDispatcher(bot.VoiceRegistry(), nil)

	registerCommands(bot, sounds, uploader, dispatcher)

	errCh := make(chan error, 1)
	go func() {
		if err := bot.Run(ctx); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Printf("[INFO] Received signal %s, shutting down...", s)
		cancel()
	case err := <-errCh:
		if err != nil {
			log.Println("[ERR] Discord bot error:", err)
		}
		cancel()
	case <-ctx.Done():
	}

	log.Println("[INFO] Discord bot exited cleanly")
}

func registerCommands(bot *discord.Bot, sounds *catalog.Catalog, uploader *catalog.Uploader, dispatcher *voice.Dispatcher) {
	cmds := []core.Command{
		&sound.JoinCommand{Voice: bot.VoiceRegistry(), Resolver: bot},
		&sound.LeaveCommand{Voice: bot.VoiceRegistry()},
		&sound.PlayCommand{Catalog: sounds, Dispatcher: dispatcher, Resolver: bot},
		&sound.StopCommand{Dispatcher: dispatcher},
		&sound.SoundboardCommand{Catalog: sounds, Dispatcher: dispatcher, Resolver: bot},
		&sound.DeleteCommand{Catalog: sounds},
		&sound.UploadCommand{Uploader: uploader},
		&sound.SoundsCommand{Catalog: sounds},
	}

	for _, cmd := range cmds {
		core.RegisterCommand(
			core.ApplyMiddlewares(
				cmd,
				core.WithGuildOnly(),
				core.WithGroupAccessCheck(),
				core.WithCommandLogger(),
			),
		)
	}
}
