package config

import (
	"fmt"
	"os"
	"strings"

	"LifeMarket/internal/model"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces environment overrides, e.g. LIFEMARKET_SERVER_ADDR.
const EnvPrefix = "LIFEMARKET"

// DefaultInitialScore applies when market.default_initial_score is not set.
const DefaultInitialScore = 50.0

const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Store struct {
		Driver string `yaml:"driver"`
		Path   string `yaml:"path"`
	} `yaml:"store"`
	Database struct {
		// also read from the bare SQLITE_PATH variable
		SQLitePath string `yaml:"sqlite_path" envconfig:"SQLITE_PATH"`
	} `yaml:"database"`
	Schedule struct {
		DigestCron string `yaml:"digest_cron" split_words:"true"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token" split_words:"true"`
		ChatID   string `yaml:"chat_id" split_words:"true"`
	} `yaml:"telegram"`
	Market struct {
		DefaultTimeframe    string  `yaml:"default_timeframe" split_words:"true"`
		DefaultInitialScore float64 `yaml:"default_initial_score" split_words:"true"`
	} `yaml:"market"`
	Proxy string `yaml:"proxy"`
}

// Load reads a .env file if present, then the YAML config at path, then
// applies LIFEMARKET_* environment overrides and finally defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	// seeded before decoding so an explicit 0 survives
	cfg.Market.DefaultInitialScore = DefaultInitialScore
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}
	if cfg.Proxy == "" {
		cfg.Proxy = os.Getenv("HTTPS_PROXY")
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = StoreSQLite
	}
	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	if cfg.Store.Path == "" {
		if cfg.Store.Driver == StoreFile {
			cfg.Store.Path = "data/sessions.json"
		} else {
			cfg.Store.Path = "data/sessions.db"
		}
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/life_market.db"
	}
	if cfg.Schedule.DigestCron == "" {
		cfg.Schedule.DigestCron = "0 0 21 * * *"
	}
	if cfg.Market.DefaultTimeframe == "" {
		cfg.Market.DefaultTimeframe = string(model.Timeframe1D)
	}
}

// Timeframe returns the parsed default timeframe. Call Validate first.
func (c *Config) Timeframe() model.Timeframe {
	tf, err := model.ParseTimeframe(c.Market.DefaultTimeframe)
	if err != nil {
		return model.Timeframe1D
	}
	return tf
}

// TelegramEnabled reports whether both Telegram credentials are set.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// Validate checks that the loaded values are usable.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	switch c.Store.Driver {
	case StoreFile, StoreSQLite:
	default:
		return fmt.Errorf("store.driver must be %q or %q, got %q", StoreFile, StoreSQLite, c.Store.Driver)
	}
	if _, err := model.ParseTimeframe(c.Market.DefaultTimeframe); err != nil {
		return fmt.Errorf("market.default_timeframe: %w", err)
	}
	if s := c.Market.DefaultInitialScore; s < 0 || s > 100 {
		return fmt.Errorf("market.default_initial_score must be within [0,100], got %.2f", s)
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}
