package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"stock-trading-backend/internal/config"
	"stock-trading-backend/internal/kafka"
	"stock-trading-backend/internal/logger"
	mongoGo "stock-trading-backend/internal/mongo"
	"stock-trading-backend/internal/processor"

	"github.com/jonboulle/clockwork"
	kafkaGo "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func main() {
	// - Load Configuration
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
		lg.Fatal("KAFKA_BROKER_URL is required by the processor")
	}

	// - Retry loop to wait for Kafka to be truly ready.
	if err := kafka.WaitForTopic(ctx, cfg.Kafka, lg); err != nil {
		lg.Fatal("kafka topic unavailable", zap.Error(err))
	}

	// - Setup Kafka Reader
	r := kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers: []string{cfg.Kafka.BrokerURL},
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer func() {
		if err := r.Close(); err != nil {
			lg.Error("failed to close Kafka Reader", zap.Error(err))
			return
		}
		lg.Info("Kafka Reader closed")
	}()
	lg.Info("Kafka reader configured", zap.String("group_id", cfg.Kafka.GroupID))

	// - Setup MongoDB database
	DB, err := mongoGo.ConnectDB(ctx, cfg.MongoDB.URL)
	if err != nil {
		lg.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := DB.Disconnect(ctx); err != nil {
			lg.Error("error during MongoDB disconnect", zap.Error(err))
			return
		}
		lg.Info("MongoDB client disconnected")
	}()

	symbolCollection := mongoGo.GetCollection(DB, cfg.MongoDB.DatabaseName,
		cfg.MongoDB.SymbolsCollectionName)
	if err := mongoGo.EnsureSymbolIndex(ctx, symbolCollection); err != nil {
		lg.Warn("could not create unique index on symbols (may already exist)", zap.Error(err))
	}

	// - The Read Loop
	p := processor.NewProcessor(r, processor.NewMongoStore(symbolCollection), clockwork.NewRealClock(), lg)
	if err := p.Run(ctx); err != nil {
		lg.Error("processor stopped with error", zap.Error(err))
		return
	}
	lg.Info("processor stopped")
}
