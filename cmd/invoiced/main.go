package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/async"
	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/common"
	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/engine"
	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/ingest"
	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/notify"
	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/store"
	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/textsource"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file loaded", "error", err)
	}

	cfg := common.LoadConfig()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.Log.Level),
	}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg.Store, logger)
	if err != nil {
		logger.Error("failed to open store", "driver", cfg.Store.Driver, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Warn("store close", "error", err)
		}
	}()

	// Seed the dedup set so restarts do not re-accept stored documents.
	known, err := st.KnownHashes(ctx)
	if err != nil {
		logger.Error("failed to load known hashes", "error", err)
		os.Exit(1)
	}
	hashes := engine.NewHashSet(known...)
	logger.Info("dedup set seeded", "hashes", hashes.Len())

	producer := textsource.NewAdapter(cfg.OCR, logger)
	eng := engine.New(producer, hashes, engine.WithLogger(logger))

	svc := ingest.NewService(eng, st, notify.NewLogNotifier(logger), cfg.Ingest, logger)
	queue := async.NewProcessorQueue(svc, logger,
		async.WithWorkers(cfg.Ingest.Workers),
	)

	if err := svc.Run(ctx, queue); err != nil && ctx.Err() == nil {
		logger.Error("ingest loop failed", "error", err)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	queue.Shutdown(shutdownCtx)
	logger.Info("shutdown complete")
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
