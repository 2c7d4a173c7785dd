package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	httpadapter "github.com/sykeriin/aerobrief/internal/adapter/http"
	kafkaadapter "github.com/sykeriin/aerobrief/internal/adapter/kafka"
	"github.com/sykeriin/aerobrief/internal/adapter/narrator"
	"github.com/sykeriin/aerobrief/internal/adapter/openflights"
	"github.com/sykeriin/aerobrief/internal/adapter/wx"
	"github.com/sykeriin/aerobrief/internal/briefing"
	"github.com/sykeriin/aerobrief/internal/config"
	"github.com/sykeriin/aerobrief/internal/observability"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Weather provider chain: NOAA first, AWC second, synthetic terminator
	// when enabled (SYNTHETIC_FALLBACK).
	sources := []wx.Source{
		wx.NewNOAASource(cfg.NOAABaseURL, cfg.WeatherTimeout, logger),
		wx.NewAWCSource(cfg.AWCBaseURL, cfg.WeatherTimeout, logger),
	}
	if cfg.SyntheticFallback {
		sources = append(sources, wx.NewSyntheticSource(clockwork.NewRealClock()))
		logger.Info("synthetic weather fallback enabled")
	}
	weather := wx.NewChain(logger, metrics, sources...)

	airports := openflights.NewCachedLookup(
		openflights.NewClient(cfg.AirportDataURL, cfg.AirportTimeout, logger, metrics),
		cfg.AirportCacheSize,
	)

	// Generative narrator (feature-flagged via GENAI_ENABLED / GENAI_API_KEY).
	var narrate briefing.Narrator
	if cfg.GenAIEnabled {
		n, err := narrator.New(ctx, cfg.GenAIAPIKey, cfg.GenAIModel, logger)
		if err != nil {
			logger.Error("failed to initialize narrator", "error", err)
			os.Exit(1)
		}
		narrate = n
		metrics.NarratorEnabled.Set(1)
		logger.Info("generative narrator enabled", "model", cfg.GenAIModel)
	} else {
		logger.Info("generative narrator disabled")
	}

	// Alert publishing (feature-flagged via KAFKA_ENABLED).
	var publisher briefing.AlertPublisher
	var kafkaPublisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		kafkaPublisher = kafkaadapter.NewPublisher(cfg, logger)
		publisher = kafkaPublisher
		logger.Info("alert publishing enabled", "topic", cfg.KafkaAlertsTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("alert publishing disabled")
	}

	service := briefing.New(weather, airports, narrate, publisher, logger, metrics, nil)

	srv := httpadapter.NewServer(cfg.HTTPAddr, service, service, cfg.MaxRouteAirports, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
