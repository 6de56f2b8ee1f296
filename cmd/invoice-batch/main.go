package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/common"
	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/engine"
	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/export"
	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/ingest"
	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/notify"
	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/store"
	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/textsource"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		inmem = flag.Bool("inmem", false, "use the in-memory store instead of a database")
		dir   = flag.String("dir", "", "directory to process invoices from (required)")
		db    = flag.String("db", "", "sqlite database path (defaults to STORE_PATH)")
		out   = flag.String("out", "", "output XLSX file path (optional, defaults to parent directory)")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *out == "" {
		parentDir := filepath.Dir(*dir)
		*out = filepath.Join(parentDir, "invoices.xlsx")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()
	cfg := common.LoadConfig()
	if *inmem {
		cfg.Store.Driver = "memory"
	} else if *db != "" {
		cfg.Store.Driver = "sqlite"
		cfg.Store.Path = *db
	}
	// Batch mode leaves files where they are.
	cfg.Ingest.ProcessedDir = ""
	cfg.Ingest.FailedDir = ""

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

	known, err := st.KnownHashes(ctx)
	if err != nil {
		logger.Error("failed to load known hashes", "error", err)
		os.Exit(1)
	}
	hashes := engine.NewHashSet(known...)

	producer := textsource.NewAdapter(cfg.OCR, logger)
	eng := engine.New(producer, hashes, engine.WithLogger(logger))
	svc := ingest.NewService(eng, st, notify.NewLogNotifier(logger), cfg.Ingest, logger)

	logger.Info("starting batch run", "dir", *dir)
	stats, err := svc.ProcessDirectory(ctx, *dir)
	if err != nil {
		logger.Error("failed to process directory", "error", err)
		os.Exit(1)
	}
	logger.Info("batch run complete",
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"accepted", stats.Accepted,
		"duplicates", stats.Duplicates,
		"failed", stats.Failed)

	logger.Info("exporting to XLSX", "output", *out)
	exportService := export.NewService(st, logger)
	xlsxBytes, err := exportService.ExportInvoicesXLSX(ctx)
	if err != nil {
		logger.Error("failed to export invoices", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, xlsxBytes, 0644); err != nil {
		logger.Error("failed to write output file", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Batch processing complete!\n")
	fmt.Printf("- Files matched: %d\n", stats.Matched)
	fmt.Printf("- Accepted: %d\n", stats.Accepted)
	fmt.Printf("- Duplicates: %d\n", stats.Duplicates)
	fmt.Printf("- Failures: %d\n", stats.Failed)
	fmt.Printf("- Output: %s\n", *out)
}
