package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"stock-trading-backend/internal/api/handler"
	"stock-trading-backend/internal/api/middleware"
	"stock-trading-backend/internal/api/repo"
	"stock-trading-backend/internal/api/usecase"
	"stock-trading-backend/internal/config"
	"stock-trading-backend/internal/kafka"
	"stock-trading-backend/internal/logger"
	"stock-trading-backend/internal/market"
	mongoGo "stock-trading-backend/internal/mongo"
	"stock-trading-backend/internal/quote"
	"stock-trading-backend/internal/stream"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

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

	if err := run(ctx, cfg, lg); err != nil {
		lg.Fatal("api service stopped with error", zap.Error(err))
	}
	lg.Info("api service stopped")
}

func run(ctx context.Context, cfg *config.Config, lg *zap.Logger) error {
	// - Setup MongoDB database
	DB, err := mongoGo.ConnectDB(ctx, cfg.MongoDB.URL)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := DB.Disconnect(ctx); err != nil {
			lg.Error("error during MongoDB disconnect", zap.Error(err))
			return
		}
		lg.Info("MongoDB client disconnected")
	}()
	lg.Info("connected to MongoDB")

	symbolCollection := mongoGo.GetCollection(DB, cfg.MongoDB.DatabaseName, cfg.MongoDB.SymbolsCollectionName)
	userCollection := mongoGo.GetCollection(DB, cfg.MongoDB.DatabaseName, cfg.MongoDB.UsersCollectionName)

	// - Quote source, optionally cached in Redis
	rdb, err := quote.ConnectRedis(ctx, cfg.Redis)
	if err != nil {
		lg.Warn("quote cache disabled", zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
		lg.Info("quote cache enabled", zap.String("addr", cfg.Redis.Addr))
	}
	prices := quote.NewSource(cfg, rdb, lg)

	// - Optional tick sink
	var sink stream.TickSink
	if cfg.Kafka.BrokerURL != "" {
		if err := kafka.WaitForTopic(ctx, cfg.Kafka, lg); err != nil {
			return err
		}
		publisher := kafka.NewTickPublisher(cfg.Kafka, lg)
		defer func() {
			if err := publisher.Close(); err != nil {
				lg.Error("failed to close Kafka writer", zap.Error(err))
			}
		}()
		sink = publisher
		lg.Info("publishing ticks", zap.String("topic", cfg.Kafka.Topic))
	}

	// - Streaming
	clock := clockwork.NewRealClock()
	rnd := market.NewTimeSeededRand()
	registry := stream.NewRegistry()
	broadcaster := stream.NewBroadcaster(registry, prices, sink, clock, rnd, lg, stream.BroadcasterConfig{
		TickInterval:   cfg.Stream.TickInterval,
		FetchTimeout:   cfg.Stream.FetchTimeout,
		MaxConcurrency: cfg.Stream.MaxConcurrency,
		Fallback:       quote.FallbackBand{Min: cfg.Stream.FallbackMin, Max: cfg.Stream.FallbackMax},
	})
	wsHandler := stream.NewHandler(registry, market.NewAllowList(cfg.Stream.AllowedSymbols),
		cfg.Stream.DefaultSymbol, cfg.Stream.WriteWait, lg)

	// - HTTP
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.ContextWithFallback = true
	r.Use(gin.Recovery(), middleware.Logger(lg))
	r.GET("/ws", wsHandler.ServeWS)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("")
	api.Use(middleware.Error(), middleware.Timeout(cfg.Server.RequestTimeout))
	uc := usecase.NewUsecase(repo.NewRepo(symbolCollection, userCollection), prices, rnd, clock)
	handler.NewHandler(uc).RegisterRoutes(api)

	srv := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lg.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := broadcaster.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		lg.Info("shutting down")
		wsHandler.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
