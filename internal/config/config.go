package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the top-level struct that holds all configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Finnhub FinnhubConfig `yaml:"finnhub"`
	Stream  StreamConfig  `yaml:"stream"`
	MongoDB MongoDBConfig `yaml:"mongodb"`
	Redis   RedisConfig   `yaml:"redis"`
	Kafka   KafkaConfig   `yaml:"kafka"`
	Log     LogConfig     `yaml:"log"`
	Symbols []string      `yaml:"subscribed_symbols"`
}

type ServerConfig struct {
	Port           string        `yaml:"port" validate:"required"`
	RequestTimeout time.Duration `yaml:"request_timeout" validate:"gt=0"`
}

// FinnhubConfig holds the configuration for the Finnhub quote API.
type FinnhubConfig struct {
	Token             string        `yaml:"token"`
	BaseURL           string        `yaml:"base_url" validate:"required,url"`
	RequestsPerSecond float64       `yaml:"requests_per_second" validate:"gt=0"`
	Burst             int           `yaml:"burst" validate:"gte=1"`
	Timeout           time.Duration `yaml:"timeout" validate:"gt=0"`
}

// StreamConfig drives the live price broadcast.
type StreamConfig struct {
	TickInterval   time.Duration `yaml:"tick_interval" validate:"gt=0"`
	FetchTimeout   time.Duration `yaml:"fetch_timeout" validate:"gt=0"`
	WriteWait      time.Duration `yaml:"write_wait" validate:"gt=0"`
	DefaultSymbol  string        `yaml:"default_symbol" validate:"required"`
	AllowedSymbols []string      `yaml:"allowed_symbols" validate:"min=1,dive,required"`
	FallbackMin    float64       `yaml:"fallback_min" validate:"gt=0"`
	FallbackMax    float64       `yaml:"fallback_max" validate:"gtfield=FallbackMin"`
	MaxConcurrency int           `yaml:"max_concurrency" validate:"gte=1"`
}

type MongoDBConfig struct {
	URL                   string `yaml:"url"`
	DatabaseName          string `yaml:"database_name" validate:"required"`
	UsersCollectionName   string `yaml:"users_collection_name" validate:"required"`
	SymbolsCollectionName string `yaml:"symbols_collection_name" validate:"required"`
}

// RedisConfig is optional; an empty Addr disables the quote cache.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	QuoteTTL time.Duration `yaml:"quote_ttl" validate:"gt=0"`
}

// KafkaConfig holds the configuration for the Kafka connection.
// An empty BrokerURL disables the tick sink.
type KafkaConfig struct {
	BrokerURL string `yaml:"broker_url"`
	Topic     string `yaml:"topic" validate:"required"`
	GroupID   string `yaml:"group_id" validate:"required"`
}

type LogConfig struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development"`
}

// LoadConfig reads the configuration file from the given path, applies
// .env and environment overrides, fills defaults and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// a missing .env is fine, the process env may already be populated
	_ = godotenv.Load()
	cfg.applyEnv()
	cfg.applyDefaults()

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (cfg *Config) applyEnv() {
	overrides := []struct {
		key string
		dst *string
	}{
		{"APP_PORT", &cfg.Server.Port},
		{"FINNHUB_TOKEN", &cfg.Finnhub.Token},
		{"MONGO_URL", &cfg.MongoDB.URL},
		{"REDIS_ADDR", &cfg.Redis.Addr},
		{"REDIS_PASSWORD", &cfg.Redis.Password},
		{"KAFKA_BROKER_URL", &cfg.Kafka.BrokerURL},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.key); ok && v != "" {
			*o.dst = v
		}
	}
}

func (cfg *Config) applyDefaults() {
	setString(&cfg.Server.Port, ":8000")
	setDuration(&cfg.Server.RequestTimeout, 5*time.Second)

	setString(&cfg.Finnhub.BaseURL, "https://finnhub.io/api/v1")
	if cfg.Finnhub.RequestsPerSecond == 0 {
		cfg.Finnhub.RequestsPerSecond = 30
	}
	if cfg.Finnhub.Burst == 0 {
		cfg.Finnhub.Burst = 5
	}
	setDuration(&cfg.Finnhub.Timeout, 3*time.Second)

	setDuration(&cfg.Stream.TickInterval, 2*time.Second)
	setDuration(&cfg.Stream.FetchTimeout, 1500*time.Millisecond)
	setDuration(&cfg.Stream.WriteWait, time.Second)
	setString(&cfg.Stream.DefaultSymbol, "AAPL")
	if len(cfg.Stream.AllowedSymbols) == 0 {
		cfg.Stream.AllowedSymbols = []string{"AAPL", "GOOGL", "MSFT", "AMZN", "TSLA", "NVDA", "META"}
	}
	if cfg.Stream.FallbackMin == 0 && cfg.Stream.FallbackMax == 0 {
		cfg.Stream.FallbackMin, cfg.Stream.FallbackMax = 150, 160
	}
	if cfg.Stream.MaxConcurrency == 0 {
		cfg.Stream.MaxConcurrency = 16
	}

	setString(&cfg.MongoDB.DatabaseName, "stock_market")
	setString(&cfg.MongoDB.UsersCollectionName, "users")
	setString(&cfg.MongoDB.SymbolsCollectionName, "stock_symbols")

	setDuration(&cfg.Redis.QuoteTTL, 2*time.Second)

	setString(&cfg.Kafka.Topic, "stock_ticks")
	setString(&cfg.Kafka.GroupID, "stock-tick-consumer-group")

	setString(&cfg.Log.Level, "info")
}

func setString(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

func setDuration(dst *time.Duration, def time.Duration) {
	if *dst == 0 {
		*dst = def
	}
}
