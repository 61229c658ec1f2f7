package config

import (
	"fmt"
	"strings"
	"time"

	"translatebot/internal/domain"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	PlatformDiscord  = "discord"
	PlatformTelegram = "telegram"
)

// Config holds all application configuration
type Config struct {
	Platform         string `env:"CHAT_PLATFORM" envDefault:"discord"`
	DiscordToken     string `env:"DISCORD_BOT_TOKEN"`
	TelegramToken    string `env:"TELEGRAM_BOT_TOKEN"`
	CommandPrefix    string `env:"COMMAND_PREFIX" envDefault:"!"`
	DefaultLanguage  string `env:"DEFAULT_LANGUAGE" envDefault:"en"`
	MinMessageLength int    `env:"MIN_MESSAGE_LENGTH" envDefault:"2"`
	MaxGroups        int    `env:"MAX_GROUPS" envDefault:"5"`
	// RoleLanguages maps a role name or id to a language code
	RoleLanguages map[string]string `env:"ROLE_LANGUAGES" envSeparator:"," envKeyValSeparator:":"`

	Cooldown CooldownConfig
	Database DatabaseConfig
	Provider ProviderConfig
	Log      LogConfig
}

// CooldownConfig holds rate limiting windows
type CooldownConfig struct {
	User    time.Duration `env:"USER_COOLDOWN" envDefault:"5s"`
	Message time.Duration `env:"MESSAGE_COOLDOWN" envDefault:"10s"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL             string        `env:"DATABASE_URL"`
	Host            string        `env:"DB_HOST"`
	Port            string        `env:"DB_PORT" envDefault:"5432"`
	Name            string        `env:"DB_NAME" envDefault:"translatebot"`
	User            string        `env:"DB_USER" envDefault:"translatebot"`
	Password        string        `env:"DB_PASSWORD"`
	SQLitePath      string        `env:"SQLITE_PATH" envDefault:"translations.db"`
	ConnectAttempts int           `env:"DB_CONNECT_ATTEMPTS" envDefault:"3"`
	ConnectDelay    time.Duration `env:"DB_CONNECT_DELAY" envDefault:"2s"`
}

// ProviderConfig holds translation provider settings
type ProviderConfig struct {
	BaseURL  string        `env:"PROVIDER_BASE_URL" envDefault:"https://translate.googleapis.com"`
	Timeout  time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"10s"`
	MaxInput int           `env:"PROVIDER_MAX_INPUT" envDefault:"5000"`
	Rate     float64       `env:"PROVIDER_RATE" envDefault:"5"`
	Burst    int           `env:"PROVIDER_BURST" envDefault:"5"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg, err := Parse()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse reads the environment without validating platform credentials.
// Offline CLI commands use it directly.
func Parse() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.Platform = strings.ToLower(strings.TrimSpace(cfg.Platform))
	cfg.DefaultLanguage = domain.NormalizeLanguage(cfg.DefaultLanguage)
	roles := make(map[string]string, len(cfg.RoleLanguages))
	for role, code := range cfg.RoleLanguages {
		role = strings.TrimSpace(role)
		if role == "" {
			continue
		}
		roles[role] = domain.NormalizeLanguage(code)
	}
	cfg.RoleLanguages = roles

	return cfg, nil
}

// Validate checks required fields and ranges
func (c *Config) Validate() error {
	switch c.Platform {
	case PlatformDiscord:
		if c.DiscordToken == "" {
			return fmt.Errorf("DISCORD_BOT_TOKEN is required")
		}
	case PlatformTelegram:
		if c.TelegramToken == "" {
			return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
		}
	default:
		return fmt.Errorf("CHAT_PLATFORM must be %q or %q, got %q", PlatformDiscord, PlatformTelegram, c.Platform)
	}

	if c.MaxGroups < 1 {
		return fmt.Errorf("MAX_GROUPS must be at least 1")
	}
	if c.MinMessageLength < 0 {
		return fmt.Errorf("MIN_MESSAGE_LENGTH must not be negative")
	}
	if !domain.IsSupportedLanguage(c.DefaultLanguage) {
		return fmt.Errorf("DEFAULT_LANGUAGE %q is not a supported language", c.DefaultLanguage)
	}
	for role, code := range c.RoleLanguages {
		if !domain.IsSupportedLanguage(code) {
			return fmt.Errorf("ROLE_LANGUAGES entry %q maps to unsupported language %q", role, code)
		}
	}
	return nil
}

// DSN returns the PostgreSQL connection string, or "" for the embedded backend
func (c *Config) DSN() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	if c.Database.Host == "" {
		return ""
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}
