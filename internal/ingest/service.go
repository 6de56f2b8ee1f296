// Package ingest discovers invoice documents on disk and drives them through
// the processing pipeline, routing each file to a processed or failed
// directory by outcome.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/constants"
	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/async"
	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/common"
	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/engine"
	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/entity"
	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/notify"
	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/store"
)

// Service pairs the extraction engine with persistence and file routing.
type Service struct {
	engine   *engine.Engine
	store    store.Store
	notifier notify.Notifier
	cfg      common.IngestConfig
	logger   *slog.Logger
}

func NewService(eng *engine.Engine, st store.Store, notifier notify.Notifier, cfg common.IngestConfig, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{engine: eng, store: st, notifier: notifier, cfg: cfg, logger: logger}
}

// Stats aggregates the results of a directory pass.
type Stats struct {
	Scanned    uint32
	Matched    uint32
	Accepted   uint32
	Duplicates uint32
	Failed     uint32
}

// ProcessPath runs one file through the pipeline. Accepted records are
// persisted and announced; the source file is then moved to the processed
// directory (duplicates too) or the failed directory (unrecoverable ones).
func (s *Service) ProcessPath(ctx context.Context, path string) error {
	_, err := s.processFile(ctx, path)
	return err
}

func (s *Service) processFile(ctx context.Context, path string) (constants.Outcome, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("abs path: %w", err)
	}

	ext := constants.NormalizeExt(filepath.Ext(abs))
	kind, ok := constants.MapExtToKind(ext)
	if !ok {
		return "", fmt.Errorf("%w: unsupported extension %q", common.ErrInvalidInput, ext)
	}

	b, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	doc := entity.NewRawDocument(b, kind)

	res, err := s.engine.Process(ctx, doc)
	if err != nil {
		return "", err
	}

	switch res.Outcome {
	case constants.OutcomeAccepted:
		if s.store != nil {
			if err := s.store.Append(ctx, res.Record); err != nil {
				// Undo the hash registration so a retry is not mistaken
				// for a duplicate.
				s.engine.Hashes().Remove(doc.Hash)
				return "", fmt.Errorf("persist record: %w", err)
			}
		}
		if s.notifier != nil {
			s.notifier.Notify(ctx, notify.Event{Record: res.Record, Source: abs})
		}
		s.route(abs, s.cfg.ProcessedDir)
	case constants.OutcomeRejectedDuplicate:
		s.logger.Info("ingest.duplicate", "path", abs, "hash", doc.Hash)
		s.route(abs, s.cfg.ProcessedDir)
	case constants.OutcomeRejectedUnrecoverable:
		s.logger.Warn("ingest.unrecoverable", "path", abs, "reason", res.Reason)
		s.route(abs, s.cfg.FailedDir)
	}
	return res.Outcome, nil
}

// ProcessDirectory walks root and runs every supported file through
// ProcessPath, returning aggregate stats. Individual file failures are
// recorded, not fatal.
func (s *Service) ProcessDirectory(ctx context.Context, root string) (Stats, error) {
	if strings.TrimSpace(root) == "" {
		return Stats{}, errors.New("root path is required")
	}

	var stats Stats
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		stats.Scanned++
		if walkErr != nil {
			stats.Failed++
			s.logger.Warn("ingest.walk", "path", path, "error", walkErr)
			return nil // continue walking
		}
		if IsHidden(path) && path != root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !AllowedExt(filepath.Ext(path)) {
			return nil
		}
		stats.Matched++

		outcome, err := s.processFile(ctx, path)
		if err != nil {
			stats.Failed++
			s.logger.Warn("ingest.file", "path", path, "error", err)
			return nil
		}
		switch outcome {
		case constants.OutcomeAccepted:
			stats.Accepted++
		case constants.OutcomeRejectedDuplicate:
			stats.Duplicates++
		case constants.OutcomeRejectedUnrecoverable:
			stats.Failed++
		}
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("walk: %w", err)
	}
	return stats, nil
}

// Run watches the incoming directory and feeds discovered files to q until
// ctx is cancelled.
func (s *Service) Run(ctx context.Context, q async.Queue) error {
	evCh, errCh, err := StartWatcher(ctx, WatchConfig{
		Roots:       []string{s.cfg.IncomingDir},
		InitialScan: s.cfg.InitialScan,
		Debounce:    s.cfg.Debounce,
	})
	if err != nil {
		return err
	}
	s.logger.Info("ingest.watching", "dir", s.cfg.IncomingDir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case path, ok := <-evCh:
			if !ok {
				return nil
			}
			_ = q.Enqueue(ctx, async.Job{Path: path})
		case werr, ok := <-errCh:
			if ok && werr != nil {
				s.logger.Error("ingest.watcher", "error", werr)
			}
		}
	}
}

// route moves a handled file out of the incoming directory. Best-effort: a
// failed move is logged and the pipeline result stands.
func (s *Service) route(path, destDir string) {
	if destDir == "" {
		return
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		s.logger.Warn("ingest.route.mkdir", "dir", destDir, "error", err)
		return
	}
	dest := filepath.Join(destDir, filepath.Base(path))
	if err := os.Rename(path, dest); err != nil {
		s.logger.Warn("ingest.route.move", "path", path, "dest", dest, "error", err)
	}
}
