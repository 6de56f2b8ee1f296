// Package store is the persistence collaborator: an append-only sequence of
// accepted invoice records. It enforces nothing about hash uniqueness; that
// decision belongs to the engine's deduplicator.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/common"
	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/entity"
)

type Store interface {
	// Append persists one accepted record. Records are validated against the
	// invoice JSON schema before the write.
	Append(ctx context.Context, rec *entity.InvoiceRecord) error
	// ListRecords returns all records in append order.
	ListRecords(ctx context.Context) ([]*entity.InvoiceRecord, error)
	// KnownHashes returns every stored source hash, for seeding the dedup set.
	KnownHashes(ctx context.Context) ([]string, error)
	Close() error
}

// Open builds the store selected by cfg.Driver.
func Open(ctx context.Context, cfg common.StoreConfig, logger *slog.Logger) (Store, error) {
	switch cfg.Driver {
	case "sqlite":
		return NewSQLiteStore(ctx, cfg.Path, logger)
	case "postgres":
		return NewPostgresStore(ctx, cfg, logger)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: unknown store driver %q", common.ErrInvalidInput, cfg.Driver)
	}
}
