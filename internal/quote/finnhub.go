package quote

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stock-trading-backend/internal/config"
	"stock-trading-backend/internal/metrics"
	"stock-trading-backend/internal/models"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	breakerFailureThreshold = 5
	breakerOpenDuration     = 30 * time.Second
)

// FinnhubSource fetches quotes from Finnhub's REST API. Requests are rate
// limited, coalesced per symbol and guarded by a circuit breaker.
type FinnhubSource struct {
	client  *resty.Client
	token   string
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	group   singleflight.Group
	logger  *zap.Logger
}

func NewFinnhubSource(cfg config.FinnhubConfig, logger *zap.Logger) *FinnhubSource {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "finnhub",
		MaxRequests: 1,
		Timeout:     breakerOpenDuration,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.CircuitBreakerState.Set(float64(to))
			logger.Warn("quote circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &FinnhubSource{
		client:  client,
		token:   cfg.Token,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		breaker: breaker,
		logger:  logger,
	}
}

func (s *FinnhubSource) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	// concurrent callers for one symbol share a single upstream request
	ch := s.group.DoChan(symbol, func() (interface{}, error) {
		return s.breaker.Execute(func() (interface{}, error) {
			return s.fetch(ctx, symbol)
		})
	})

	select {
	case <-ctx.Done():
		return decimal.Zero, fmt.Errorf("%w: %s: %v", ErrUnavailable, symbol, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			if res.Err == gobreaker.ErrOpenState || res.Err == gobreaker.ErrTooManyRequests {
				metrics.QuoteRequestsTotal.WithLabelValues("rejected").Inc()
			}
			return decimal.Zero, fmt.Errorf("%w: %s: %v", ErrUnavailable, symbol, res.Err)
		}
		return res.Val.(decimal.Decimal), nil
	}
}

func (s *FinnhubSource) fetch(ctx context.Context, symbol string) (decimal.Decimal, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return decimal.Zero, fmt.Errorf("rate limit wait: %w", err)
	}

	var q models.FinnhubQuote
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"symbol": symbol, "token": s.token}).
		SetResult(&q).
		Get("/quote")
	if err != nil {
		metrics.QuoteRequestsTotal.WithLabelValues("error").Inc()
		return decimal.Zero, err
	}
	if resp.IsError() {
		metrics.QuoteRequestsTotal.WithLabelValues("error").Inc()
		s.logger.Warn("failed to fetch stock price",
			zap.String("symbol", symbol), zap.Int("status", resp.StatusCode()))
		return decimal.Zero, fmt.Errorf("finnhub returned status %d", resp.StatusCode())
	}
	// Finnhub answers unknown symbols with an all-zero quote
	if q.Current <= 0 {
		metrics.QuoteRequestsTotal.WithLabelValues("empty").Inc()
		return decimal.Zero, fmt.Errorf("empty quote")
	}

	metrics.QuoteRequestsTotal.WithLabelValues("ok").Inc()
	return decimal.NewFromFloat(q.Current), nil
}
