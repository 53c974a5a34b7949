package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the environment-driven configuration. A missing
// TICKET_CATEGORY_ID disables ticket creation; everything else optional
// degrades the matching feature, never the process.
type Config struct {
	DiscordToken      string `env:"DISCORD_TOKEN,required"`
	StoragePath       string `env:"STORAGE_PATH" envDefault:"data"`
	InitSlashCommands bool   `env:"INIT_SLASH_COMMANDS" envDefault:"true"`

	TicketCategoryID    string   `env:"TICKET_CATEGORY_ID"`
	StaffRoleIDs        []string `env:"STAFF_ROLE_IDS"`
	TranscriptChannelID string   `env:"TRANSCRIPT_CHANNEL_ID"`
	OrderChannelID      string   `env:"ORDER_CHANNEL_ID"`

	DeliveryTTL time.Duration `env:"DELIVERY_TTL" envDefault:"24h"`

	CashAppURL  string `env:"CASHAPP_URL"`
	PayPalURL   string `env:"PAYPAL_URL"`
	LitecoinTag string `env:"LITECOIN_ADDRESS"`

	LogFile  string `env:"LOG_FILE"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// New loads .env when present, then parses the environment.
func New() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
