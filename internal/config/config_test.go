package config

import (
	"os"
	"path/filepath"
	"testing"

	"LifeMarket/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HTTPS_PROXY", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, StoreSQLite, cfg.Store.Driver)
	assert.Equal(t, "data/sessions.db", cfg.Store.Path)
	assert.Equal(t, "0 0 21 * * *", cfg.Schedule.DigestCron)
	assert.Equal(t, 50.0, cfg.Market.DefaultInitialScore)
	assert.Equal(t, model.Timeframe1D, cfg.Timeframe())
	assert.False(t, cfg.TelegramEnabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9000"
store:
  driver: FILE
market:
  default_timeframe: 4h
  default_initial_score: 40
telegram:
  bot_token: yaml-token
  chat_id: "42"
`)
	t.Setenv("LIFEMARKET_SERVER_ADDR", ":9100")
	t.Setenv("LIFEMARKET_TELEGRAM_BOT_TOKEN", "env-token")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9100", cfg.Server.Addr, "env wins over yaml")
	assert.Equal(t, StoreFile, cfg.Store.Driver)
	assert.Equal(t, "data/sessions.json", cfg.Store.Path)
	assert.Equal(t, 40.0, cfg.Market.DefaultInitialScore)
	assert.Equal(t, model.Timeframe4H, cfg.Timeframe())
	assert.Equal(t, "env-token", cfg.Telegram.BotToken)
	assert.Equal(t, "42", cfg.Telegram.ChatID)
	assert.True(t, cfg.TelegramEnabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_ZeroInitialScore(t *testing.T) {
	cfg, err := Load(writeConfig(t, "market:\n  default_initial_score: 0\n"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.Market.DefaultInitialScore)
	assert.NoError(t, cfg.Validate())

	t.Setenv("LIFEMARKET_MARKET_DEFAULT_INITIAL_SCORE", "0")
	cfg, err = Load(writeConfig(t, "market:\n  default_initial_score: 70\n"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.Market.DefaultInitialScore, "env zero overrides yaml")
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "server: [unclosed"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"driver", func(c *Config) { c.Store.Driver = "postgres" }},
		{"timeframe", func(c *Config) { c.Market.DefaultTimeframe = "1W" }},
		{"score", func(c *Config) { c.Market.DefaultInitialScore = 120 }},
		{"telegram half set", func(c *Config) { c.Telegram.BotToken = "t" }},
		{"addr", func(c *Config) { c.Server.Addr = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
