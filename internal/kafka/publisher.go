package kafka

import (
	"context"
	"encoding/json"
	"time"

	"stock-trading-backend/internal/config"
	"stock-trading-backend/internal/models"

	kafkaGo "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkaGo.Message) error
	Close() error
}

// TickPublisher forwards each tick's observed prices to the tick topic.
// The writer is asynchronous so a slow broker never delays a broadcast.
type TickPublisher struct {
	w      messageWriter
	logger *zap.Logger
}

func NewTickPublisher(cfg config.KafkaConfig, logger *zap.Logger) *TickPublisher {
	w := &kafkaGo.Writer{
		Addr:                   kafkaGo.TCP(cfg.BrokerURL),
		Topic:                  cfg.Topic,
		Balancer:               &kafkaGo.LeastBytes{},
		BatchTimeout:           50 * time.Millisecond,
		Async:                  true,
		AllowAutoTopicCreation: false,
		Completion: func(msgs []kafkaGo.Message, err error) {
			if err != nil {
				logger.Warn("failed to deliver ticks to kafka", zap.Int("messages", len(msgs)), zap.Error(err))
			}
		},
	}
	return &TickPublisher{w: w, logger: logger}
}

func (p *TickPublisher) PublishTicks(ctx context.Context, updates []models.PriceUpdate) error {
	msg, err := EncodeTicks(updates)
	if err != nil {
		return err
	}
	return p.w.WriteMessages(ctx, msg)
}

func (p *TickPublisher) Close() error {
	return p.w.Close()
}

// EncodeTicks builds one tick message carrying every update.
func EncodeTicks(updates []models.PriceUpdate) (kafkaGo.Message, error) {
	tm := models.TickMessage{Type: models.TickMessageType, Data: make([]models.TickData, 0, len(updates))}
	for _, u := range updates {
		tm.Data = append(tm.Data, u.Tick())
	}

	value, err := json.Marshal(tm)
	if err != nil {
		return kafkaGo.Message{}, err
	}
	return kafkaGo.Message{Value: value}, nil
}
