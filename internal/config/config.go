package config

import (
	"fmt"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, falling back to system environment variables")
	}
}

type Config struct {
	DiscordToken      string `env:"DISCORD_TOKEN,required,notEmpty"`
	SoundsDir         string `env:"SOUNDS_DIR" envDefault:"sounds"`
	MaxSounds         int    `env:"MAX_SOUNDS" envDefault:"100"`
	MaxFileSizeMB     int    `env:"MAX_FILE_SIZE_MB" envDefault:"10"`
	StoragePath       string `env:"STORAGE_PATH" envDefault:"datastore.json"`
	InitSlashCommands bool   `env:"INIT_SLASH_COMMANDS" envDefault:"true"`
	DeveloperID       string `env:"DEVELOPER_ID"`
}

func New() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}
