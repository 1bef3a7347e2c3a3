package quote

import (
	"context"
	"fmt"
	"time"

	"stock-trading-backend/internal/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ConnectRedis returns nil, nil when no address is configured.
func ConnectRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

// NewSource builds the Finnhub source, fronted by the quote cache when rdb
// is set.
func NewSource(cfg *config.Config, rdb redis.UniversalClient, logger *zap.Logger) PriceSource {
	var src PriceSource = NewFinnhubSource(cfg.Finnhub, logger)
	if rdb != nil {
		src = NewCachedSource(src, rdb, cfg.Redis.QuoteTTL, logger)
	}
	return src
}
