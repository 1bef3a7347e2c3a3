package quote

import (
	"context"
	"errors"
	"time"

	"stock-trading-backend/internal/metrics"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "quote:"

// CachedSource keeps recent quotes in Redis so that many subscribers of one
// symbol cost a single upstream request per TTL window. Redis failures fall
// through to the wrapped source.
type CachedSource struct {
	next   PriceSource
	rdb    redis.UniversalClient
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedSource(next PriceSource, rdb redis.UniversalClient, ttl time.Duration, logger *zap.Logger) *CachedSource {
	return &CachedSource{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

func (c *CachedSource) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	key := cacheKeyPrefix + symbol

	cached, err := c.rdb.Get(ctx, key).Result()
	switch {
	case err == nil:
		if p, perr := decimal.NewFromString(cached); perr == nil {
			metrics.QuoteCacheTotal.WithLabelValues("hit").Inc()
			return p, nil
		}
		metrics.QuoteCacheTotal.WithLabelValues("error").Inc()
	case errors.Is(err, redis.Nil):
		metrics.QuoteCacheTotal.WithLabelValues("miss").Inc()
	default:
		metrics.QuoteCacheTotal.WithLabelValues("error").Inc()
		c.logger.Debug("quote cache read failed", zap.String("symbol", symbol), zap.Error(err))
	}

	price, err := c.next.GetPrice(ctx, symbol)
	if err != nil {
		return decimal.Zero, err
	}

	if err := c.rdb.Set(ctx, key, price.String(), c.ttl).Err(); err != nil {
		c.logger.Debug("quote cache write failed", zap.String("symbol", symbol), zap.Error(err))
	}
	return price, nil
}
