package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	//given
	path := writeConfig(t, "finnhub:\n  token: abc\n")
	t.Setenv("FINNHUB_TOKEN", "")

	//when
	cfg, err := LoadConfig(path)

	//then
	require.NoError(t, err)
	assert.Equal(t, "abc", cfg.Finnhub.Token)
	assert.Equal(t, 2*time.Second, cfg.Stream.TickInterval)
	assert.Equal(t, "AAPL", cfg.Stream.DefaultSymbol)
	assert.Equal(t, []string{"AAPL", "GOOGL", "MSFT", "AMZN", "TSLA", "NVDA", "META"}, cfg.Stream.AllowedSymbols)
	assert.Equal(t, 150.0, cfg.Stream.FallbackMin)
	assert.Equal(t, 160.0, cfg.Stream.FallbackMax)
	assert.Equal(t, "stock_market", cfg.MongoDB.DatabaseName)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigFileValues(t *testing.T) {
	//given
	path := writeConfig(t, `
server:
  port: ":9000"
stream:
  tick_interval: 500ms
  fallback_min: 10
  fallback_max: 20
  allowed_symbols: [AAPL, TSLA]
kafka:
  topic: ticks
subscribed_symbols: [AAPL]
`)

	//when
	cfg, err := LoadConfig(path)

	//then
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Port)
	assert.Equal(t, 500*time.Millisecond, cfg.Stream.TickInterval)
	assert.Equal(t, []string{"AAPL", "TSLA"}, cfg.Stream.AllowedSymbols)
	assert.Equal(t, 10.0, cfg.Stream.FallbackMin)
	assert.Equal(t, "ticks", cfg.Kafka.Topic)
	assert.Equal(t, []string{"AAPL"}, cfg.Symbols)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	//given
	path := writeConfig(t, "finnhub:\n  token: from-file\n")
	t.Setenv("FINNHUB_TOKEN", "from-env")
	t.Setenv("MONGO_URL", "mongodb://localhost:27017")

	//when
	cfg, err := LoadConfig(path)

	//then
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Finnhub.Token)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URL)
}

func TestLoadConfigInvalid(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{
			name: "fallback band inverted",
			body: "stream:\n  fallback_min: 160\n  fallback_max: 150\n",
		},
		{
			name: "unknown log level",
			body: "log:\n  level: loud\n",
		},
		{
			name: "malformed yaml",
			body: "stream: [",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
