package ingest

import (
	"context"
	"time"

	"stock-trading-backend/internal/models"
	"stock-trading-backend/internal/quote"
	"stock-trading-backend/internal/stream"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 4

// Poller quotes a fixed watch list on an interval and forwards the prices it
// obtained to the tick sink. Unavailable symbols are left out of that round.
type Poller struct {
	prices   quote.PriceSource
	sink     stream.TickSink
	symbols  []string
	clock    clockwork.Clock
	interval time.Duration
	timeout  time.Duration
	logger   *zap.Logger
}

func NewPoller(prices quote.PriceSource, sink stream.TickSink, symbols []string, clock clockwork.Clock, interval, timeout time.Duration, logger *zap.Logger) *Poller {
	return &Poller{
		prices:   prices,
		sink:     sink,
		symbols:  symbols,
		clock:    clock,
		interval: interval,
		timeout:  timeout,
		logger:   logger,
	}
}

func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("polling watch list", zap.Strings("symbols", p.symbols), zap.Duration("interval", p.interval))
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		p.Poll(ctx)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-p.clock.After(p.interval):
		}
	}
}

// Poll runs one round and returns the updates that were published.
func (p *Poller) Poll(ctx context.Context) []models.PriceUpdate {
	results := make([]*models.PriceUpdate, len(p.symbols))

	g := new(errgroup.Group)
	g.SetLimit(defaultConcurrency)
	for i, symbol := range p.symbols {
		i, symbol := i, symbol
		g.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(ctx, p.timeout)
			defer cancel()

			price, err := p.prices.GetPrice(fetchCtx, symbol)
			if err != nil {
				p.logger.Warn("skipping symbol this round", zap.String("symbol", symbol), zap.Error(err))
				return nil
			}
			results[i] = &models.PriceUpdate{Symbol: symbol, Price: price, ObservedAt: p.clock.Now()}
			return nil
		})
	}
	_ = g.Wait()

	updates := make([]models.PriceUpdate, 0, len(results))
	for _, u := range results {
		if u != nil {
			updates = append(updates, *u)
		}
	}
	if len(updates) == 0 {
		return updates
	}
	if err := p.sink.PublishTicks(ctx, updates); err != nil {
		p.logger.Error("failed to publish ticks", zap.Error(err))
	}
	return updates
}
