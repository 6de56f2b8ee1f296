package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/constants"
	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/common"
	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/entity"
)

const postgresDDL = `
CREATE TABLE IF NOT EXISTS invoices (
	seq          BIGSERIAL,
	id           TEXT PRIMARY KEY,
	invoice_no   TEXT NOT NULL,
	vendor       TEXT NOT NULL,
	inv_date     TEXT NOT NULL,
	total_cents  BIGINT NOT NULL,
	source_hash  TEXT NOT NULL,
	format       TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS invoice_items (
	id               TEXT PRIMARY KEY,
	invoice_id       TEXT NOT NULL REFERENCES invoices(id),
	position         INTEGER NOT NULL,
	name             TEXT NOT NULL,
	unit_price_cents BIGINT NOT NULL,
	category         TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_items_invoice ON invoice_items(invoice_id);
`

// PostgresStore backs the append-only record sequence with a pgx pool.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPostgresStore(ctx context.Context, cfg common.StoreConfig, logger *slog.Logger) (*PostgresStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	pc.ConnConfig.RuntimeParams["application_name"] = "invoice-automation"

	dialCtx := ctx
	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	pool, err := pgxpool.NewWithConfig(dialCtx, pc)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(dialCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresDDL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	logger.Info("store.postgres.open")
	return &PostgresStore{pool: pool, logger: logger}, nil
}

func (s *PostgresStore) Append(ctx context.Context, rec *entity.InvoiceRecord) error {
	if err := ValidateRecord(rec); err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx,
		`INSERT INTO invoices (id, invoice_no, vendor, inv_date, total_cents, source_hash, format, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID.String(), rec.InvoiceNumber, rec.Vendor, rec.Date,
		int64(rec.Total), rec.SourceHash, string(rec.Format), rec.CreatedAt.UTC(),
	); err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	for i, item := range rec.Items {
		if _, err := tx.Exec(ctx,
			`INSERT INTO invoice_items (id, invoice_id, position, name, unit_price_cents, category)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			item.ID.String(), rec.ID.String(), i, item.Name, int64(item.UnitPrice), string(item.Category),
		); err != nil {
			return fmt.Errorf("insert item: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListRecords(ctx context.Context) ([]*entity.InvoiceRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, invoice_no, vendor, inv_date, total_cents, source_hash, format, created_at
		 FROM invoices ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}
	defer rows.Close()

	var recs []*entity.InvoiceRecord
	for rows.Next() {
		var (
			id     string
			rec    entity.InvoiceRecord
			cents  int64
			format string
			ts     time.Time
		)
		if err := rows.Scan(&id, &rec.InvoiceNumber, &rec.Vendor, &rec.Date, &cents,
			&rec.SourceHash, &format, &ts); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		rec.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse invoice id: %w", err)
		}
		rec.Total = entity.Amount(cents)
		rec.Format = constants.FormatTag(format)
		rec.CreatedAt = ts.UTC()
		recs = append(recs, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, rec := range recs {
		items, err := s.listItems(ctx, rec.ID)
		if err != nil {
			return nil, err
		}
		rec.Items = items
	}
	return recs, nil
}

func (s *PostgresStore) listItems(ctx context.Context, invoiceID uuid.UUID) ([]entity.LineItem, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, unit_price_cents, category
		 FROM invoice_items WHERE invoice_id = $1 ORDER BY position`,
		invoiceID.String())
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	items := make([]entity.LineItem, 0)
	for rows.Next() {
		var (
			id, category string
			item         entity.LineItem
			cents        int64
		)
		if err := rows.Scan(&id, &item.Name, &cents, &category); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		item.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse item id: %w", err)
		}
		item.UnitPrice = entity.Amount(cents)
		item.Category = constants.Category(category)
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *PostgresStore) KnownHashes(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT source_hash FROM invoices ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query hashes: %w", err)
	}
	defer rows.Close()

	var hashes []string
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, err
		}
		hashes = append(hashes, h)
	}
	return hashes, rows.Err()
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
