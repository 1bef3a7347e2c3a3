package stream

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"stock-trading-backend/internal/market"
	"stock-trading-backend/internal/metrics"
	"stock-trading-backend/internal/models"
	"stock-trading-backend/internal/quote"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultTickInterval = 2 * time.Second
	defaultFetchTimeout = 1500 * time.Millisecond
	defaultConcurrency  = 16
)

// TickSink receives the real (non-synthetic) prices observed in a tick.
type TickSink interface {
	PublishTicks(ctx context.Context, updates []models.PriceUpdate) error
}

// TickReport summarises one broadcast cycle.
type TickReport struct {
	Skipped     bool
	Connections int
	Delivered   int
	Fallbacks   int
	Failures    []*SendFailure
	MoversSent  int
}

type BroadcasterConfig struct {
	TickInterval   time.Duration
	FetchTimeout   time.Duration
	MaxConcurrency int
	Fallback       quote.FallbackBand
	Candidates     []market.Candidate
}

// Broadcaster pushes each connection's selected price and a shared movers
// board to every registered connection once per tick. A failed push drops
// only the connection it was addressed to.
type Broadcaster struct {
	registry *Registry
	prices   quote.PriceSource
	sink     TickSink
	clock    clockwork.Clock
	rnd      market.Rand
	logger   *zap.Logger
	cfg      BroadcasterConfig
}

// NewBroadcaster wires the loop. sink may be nil.
func NewBroadcaster(registry *Registry, prices quote.PriceSource, sink TickSink, clock clockwork.Clock, rnd market.Rand, logger *zap.Logger, cfg BroadcasterConfig) *Broadcaster {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaultFetchTimeout
	}
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = defaultConcurrency
	}
	if cfg.Fallback == (quote.FallbackBand{}) {
		cfg.Fallback = quote.DefaultFallbackBand
	}
	if cfg.Candidates == nil {
		cfg.Candidates = market.DefaultCandidates
	}
	return &Broadcaster{
		registry: registry,
		prices:   prices,
		sink:     sink,
		clock:    clock,
		rnd:      rnd,
		logger:   logger,
		cfg:      cfg,
	}
}

// Run ticks until ctx is cancelled. Each tick is followed by a full
// TickInterval wait.
func (b *Broadcaster) Run(ctx context.Context) error {
	b.logger.Info("starting stock data broadcaster", zap.Duration("interval", b.cfg.TickInterval))
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		b.Tick(ctx)

		select {
		case <-ctx.Done():
			b.logger.Info("stock data broadcaster stopped")
			return ctx.Err()
		case <-b.clock.After(b.cfg.TickInterval):
		}
	}
}

// Tick runs a single broadcast cycle against a registry snapshot.
func (b *Broadcaster) Tick(ctx context.Context) TickReport {
	subs := b.registry.Snapshot()
	if len(subs) == 0 {
		metrics.SkippedTicksTotal.Inc()
		return TickReport{Skipped: true}
	}

	start := b.clock.Now()
	defer func() {
		metrics.TicksTotal.Inc()
		metrics.TickDuration.Observe(b.clock.Since(start).Seconds())
	}()

	report := TickReport{Connections: len(subs)}
	var (
		mu      sync.Mutex
		failed  = make(map[Conn]struct{})
		updates = make([]models.PriceUpdate, 0, len(subs))
	)

	g := new(errgroup.Group)
	g.SetLimit(b.cfg.MaxConcurrency)
	for _, sub := range subs {
		sub := sub
		g.Go(func() error {
			update := b.priceUpdate(ctx, sub.Symbol)
			failure := b.send(sub.Conn, models.EventStockUpdate, update.Message())

			mu.Lock()
			defer mu.Unlock()
			if update.Synthetic {
				report.Fallbacks++
			} else {
				updates = append(updates, update)
			}
			if failure != nil {
				failed[sub.Conn] = struct{}{}
				report.Failures = append(report.Failures, failure)
				return nil
			}
			report.Delivered++
			return nil
		})
	}
	_ = g.Wait()

	movers := market.GenerateMovers(b.cfg.Candidates, b.rnd)
	payload, err := json.Marshal(models.MoversMessage(movers))
	if err != nil {
		b.logger.Error("failed to marshal market movers", zap.Error(err))
	} else {
		report.MoversSent, report.Failures = b.sendMovers(subs, failed, json.RawMessage(payload), report.Failures)
	}

	if b.sink != nil && len(updates) > 0 {
		if err := b.sink.PublishTicks(ctx, updates); err != nil {
			b.logger.Warn("failed to publish ticks", zap.Error(err))
		}
	}
	return report
}

func (b *Broadcaster) sendMovers(subs []Subscription, failed map[Conn]struct{}, payload json.RawMessage, failures []*SendFailure) (int, []*SendFailure) {
	var (
		mu   sync.Mutex
		sent int
	)
	g := new(errgroup.Group)
	g.SetLimit(b.cfg.MaxConcurrency)
	for _, sub := range subs {
		if _, ok := failed[sub.Conn]; ok {
			continue
		}
		sub := sub
		g.Go(func() error {
			failure := b.send(sub.Conn, models.EventMarketMovers, payload)

			mu.Lock()
			defer mu.Unlock()
			if failure != nil {
				failures = append(failures, failure)
				return nil
			}
			sent++
			return nil
		})
	}
	_ = g.Wait()
	return sent, failures
}

// priceUpdate fetches the price under its own deadline and substitutes a
// fallback price when the source is unavailable.
func (b *Broadcaster) priceUpdate(ctx context.Context, symbol string) models.PriceUpdate {
	fetchCtx, cancel := context.WithTimeout(ctx, b.cfg.FetchTimeout)
	defer cancel()

	price, err := b.prices.GetPrice(fetchCtx, symbol)
	if err == nil {
		return models.PriceUpdate{Symbol: symbol, Price: price, ObservedAt: b.clock.Now()}
	}

	if !errors.Is(err, quote.ErrUnavailable) && !errors.Is(err, context.DeadlineExceeded) {
		b.logger.Error("unexpected price source error", zap.String("symbol", symbol), zap.Error(err))
	} else {
		b.logger.Warn("price unavailable, using fallback", zap.String("symbol", symbol), zap.Error(err))
	}
	metrics.FallbackPricesTotal.WithLabelValues(symbol).Inc()
	return models.PriceUpdate{
		Symbol:     symbol,
		Price:      b.cfg.Fallback.Price(b.rnd),
		ObservedAt: b.clock.Now(),
		Synthetic:  true,
	}
}

// send pushes one frame. A connection that fails is deregistered and
// closed so its handler's receive loop ends as well.
func (b *Broadcaster) send(conn Conn, event string, v any) *SendFailure {
	if err := conn.Send(v); err != nil {
		if b.registry.Remove(conn) {
			metrics.ConnectedClients.Dec()
		}
		_ = conn.Close()
		metrics.SendFailuresTotal.WithLabelValues(event).Inc()
		b.logger.Info("dropping connection after failed send",
			zap.String("conn_id", conn.ID()), zap.String("event", event), zap.Error(err))
		return &SendFailure{ConnID: conn.ID(), Event: event, Err: err}
	}
	metrics.MessagesSentTotal.WithLabelValues(event).Inc()
	return nil
}
