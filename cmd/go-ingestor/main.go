package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"stock-trading-backend/internal/config"
	"stock-trading-backend/internal/ingest"
	"stock-trading-backend/internal/kafka"
	"stock-trading-backend/internal/logger"
	"stock-trading-backend/internal/quote"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig("config/config.yml")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	lg, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Kafka.BrokerURL == "" {
		lg.Fatal("KAFKA_BROKER_URL is required by the ingestor")
	}
	if len(cfg.Symbols) == 0 {
		lg.Fatal("subscribed_symbols is empty, nothing to ingest")
	}

	// 2. Quote source and tick sink
	rdb, err := quote.ConnectRedis(ctx, cfg.Redis)
	if err != nil {
		lg.Warn("quote cache disabled", zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
	}
	prices := quote.NewSource(cfg, rdb, lg)

	if err := kafka.WaitForTopic(ctx, cfg.Kafka, lg); err != nil {
		lg.Fatal("kafka topic unavailable", zap.Error(err))
	}
	publisher := kafka.NewTickPublisher(cfg.Kafka, lg)
	defer func() {
		if err := publisher.Close(); err != nil {
			lg.Error("failed to close Kafka writer", zap.Error(err))
		}
	}()

	// 3. Poll the watch list until interrupted
	poller := ingest.NewPoller(prices, publisher, cfg.Symbols, clockwork.NewRealClock(),
		cfg.Stream.TickInterval, cfg.Stream.FetchTimeout, lg)
	if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("ingestor stopped with error", zap.Error(err))
		return
	}
	lg.Info("ingestor stopped")
}
