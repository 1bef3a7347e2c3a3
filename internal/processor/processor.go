package processor

import (
	"context"
	"time"

	"stock-trading-backend/internal/metrics"

	"github.com/jonboulle/clockwork"
	kafkaGo "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	initialStoreBackoff = 500 * time.Millisecond
	maxStoreBackoff     = 30 * time.Second
)

type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkaGo.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkaGo.Message) error
}

type SymbolStore interface {
	UpsertSymbols(ctx context.Context, data *ProcessedData) error
}

// Processor folds the tick topic into the symbols collection.
type Processor struct {
	reader MessageReader
	store  SymbolStore
	clock  clockwork.Clock
	logger *zap.Logger
}

func NewProcessor(reader MessageReader, store SymbolStore, clock clockwork.Clock, logger *zap.Logger) *Processor {
	return &Processor{reader: reader, store: store, clock: clock, logger: logger}
}

// Run reads until ctx is cancelled or the reader fails. Messages that cannot
// be decoded are committed and dropped. A failed store is retried with
// backoff on the same message, which is only committed once stored.
func (p *Processor) Run(ctx context.Context) error {
	p.logger.Info("waiting for messages...")
	for {
		m, err := p.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		log := p.logger.With(zap.String("topic", m.Topic),
			zap.Int("partition", m.Partition), zap.Int64("offset", m.Offset))
		log.Debug("message received")

		data, err := TransformMessage(m)
		switch {
		case err != nil:
			metrics.TicksProcessedTotal.WithLabelValues("invalid").Inc()
			log.Warn("dropping undecodable message", zap.Error(err), zap.ByteString("value", m.Value))
		case data == nil:
			metrics.TicksProcessedTotal.WithLabelValues("skipped").Inc()
		default:
			if !p.storeWithRetry(ctx, log, data) {
				return nil
			}
			metrics.TicksProcessedTotal.WithLabelValues("ok").Inc()
		}

		if err := p.reader.CommitMessages(ctx, m); err != nil {
			log.Warn("failed to commit offset", zap.Error(err))
		}
	}
}

// storeWithRetry keeps trying until the store succeeds or ctx is done. It
// reports false only when ctx ended first.
func (p *Processor) storeWithRetry(ctx context.Context, log *zap.Logger, data *ProcessedData) bool {
	backoff := initialStoreBackoff
	for {
		err := p.store.UpsertSymbols(ctx, data)
		if err == nil {
			return true
		}
		if ctx.Err() != nil {
			return false
		}
		metrics.TicksProcessedTotal.WithLabelValues("failed").Inc()
		log.Error("failed to store ticks, retrying", zap.Error(err), zap.Duration("backoff", backoff))

		select {
		case <-ctx.Done():
			return false
		case <-p.clock.After(backoff):
		}
		backoff = min(backoff*2, maxStoreBackoff)
	}
}
