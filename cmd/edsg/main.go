package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gmercad/EDSG/internal/application/snapshot"
	"github.com/gmercad/EDSG/internal/config"
	"github.com/gmercad/EDSG/pkg/adapters/llm"
	"github.com/gmercad/EDSG/pkg/adapters/metrics/prometheus"
	"github.com/gmercad/EDSG/pkg/adapters/worldbank"
	"github.com/gmercad/EDSG/pkg/api/http"
)

var (
	// Version is set by build flags
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("starting snapshot service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime))

	// Initialize adapters
	fetcher := worldbank.NewClient(cfg.WorldBank, logger)
	normalizer := worldbank.NewNormalizer()
	llmFactory := llm.NewFactory(cfg.LLM, logger)
	metricsCollector := prometheus.NewCollector()

	// Initialize application components
	assembler := snapshot.NewAssembler(
		fetcher,
		normalizer,
		llmFactory,
		metricsCollector,
		logger,
		cfg.Snapshot.MaxConcurrentFetches,
	)

	// Initialize API server
	httpServer := http.NewServer(&http.Config{
		Port:      cfg.HTTPPort,
		Assembler: assembler,
		Logger:    logger,
	})

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	logger.Info("snapshot service started",
		zap.Int("http_port", cfg.HTTPPort),
		zap.String("worldbank_base_url", cfg.WorldBank.BaseURL))

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("received shutdown signal")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	logger.Info("snapshot service shut down complete")
}

// initLogger initializes the logger based on log level
func initLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	return logger
}
