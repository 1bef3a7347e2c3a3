package processor

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"stock-trading-backend/internal/models"

	kafkaGo "github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ProcessedData is the per-symbol aggregate of one tick message.
type ProcessedData struct {
	SymbolTickCounts map[string]int64
	LastPrices       map[string]primitive.Decimal128
	LatestTimestamps map[string]time.Time
}

func IsDuplicateKeyError(err error) bool {
	var e mongo.BulkWriteException
	if errors.As(err, &e) {
		for _, we := range e.WriteErrors {
			if we.Code == 11000 {
				return true
			}
		}
	}
	return false
}

// TransformMessage decodes a tick message. It returns nil, nil for messages
// that carry nothing to store.
func TransformMessage(m kafkaGo.Message) (*ProcessedData, error) {
	var tickMsg models.TickMessage
	if err := json.Unmarshal(m.Value, &tickMsg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	if tickMsg.Type != models.TickMessageType || len(tickMsg.Data) == 0 {
		return nil, nil
	}

	data := &ProcessedData{
		SymbolTickCounts: make(map[string]int64),
		LastPrices:       make(map[string]primitive.Decimal128),
		LatestTimestamps: make(map[string]time.Time),
	}
	for _, tick := range tickMsg.Data {
		if tick.Symbol == "" {
			continue
		}
		p, err := primitive.ParseDecimal128(strconv.FormatFloat(tick.Price, 'f', -1, 64))
		if err != nil {
			continue
		}

		t := time.UnixMilli(tick.Timestamp).UTC()
		data.SymbolTickCounts[tick.Symbol]++
		if last, ok := data.LatestTimestamps[tick.Symbol]; !ok || !t.Before(last) {
			data.LatestTimestamps[tick.Symbol] = t
			data.LastPrices[tick.Symbol] = p
		}
	}

	if len(data.SymbolTickCounts) == 0 {
		return nil, fmt.Errorf("message contained tick data, but all ticks were invalid")
	}
	return data, nil
}
