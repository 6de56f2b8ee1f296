package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/constants"
	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/entity"
)

const sqliteDDL = `
CREATE TABLE IF NOT EXISTS invoices (
	id           TEXT PRIMARY KEY,
	invoice_no   TEXT NOT NULL,
	vendor       TEXT NOT NULL,
	inv_date     TEXT NOT NULL,
	total_cents  INTEGER NOT NULL,
	source_hash  TEXT NOT NULL,
	format       TEXT NOT NULL,
	created_at   TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS invoice_items (
	id               TEXT PRIMARY KEY,
	invoice_id       TEXT NOT NULL REFERENCES invoices(id),
	position         INTEGER NOT NULL,
	name             TEXT NOT NULL,
	unit_price_cents INTEGER NOT NULL,
	category         TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_items_invoice ON invoice_items(invoice_id);
`

// SQLiteStore is the default single-file store.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewSQLiteStore(ctx context.Context, path string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	// modernc sqlite handles one writer; a single connection avoids
	// SQLITE_BUSY under the worker pool.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteDDL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	logger.Info("store.sqlite.open", "path", path)
	return &SQLiteStore{db: db, logger: logger}, nil
}

func (s *SQLiteStore) Append(ctx context.Context, rec *entity.InvoiceRecord) error {
	if err := ValidateRecord(rec); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO invoices (id, invoice_no, vendor, inv_date, total_cents, source_hash, format, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID.String(), rec.InvoiceNumber, rec.Vendor, rec.Date,
		int64(rec.Total), rec.SourceHash, string(rec.Format),
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	for i, item := range rec.Items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO invoice_items (id, invoice_id, position, name, unit_price_cents, category)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			item.ID.String(), rec.ID.String(), i, item.Name, int64(item.UnitPrice), string(item.Category),
		); err != nil {
			return fmt.Errorf("insert item: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	s.logger.Debug("store.sqlite.append", "invoice_id", rec.ID.String(), "items", len(rec.Items))
	return nil
}

func (s *SQLiteStore) ListRecords(ctx context.Context) ([]*entity.InvoiceRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, invoice_no, vendor, inv_date, total_cents, source_hash, format, created_at
		 FROM invoices ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}
	defer rows.Close()

	var recs []*entity.InvoiceRecord
	for rows.Next() {
		var (
			id, createdAt string
			rec           entity.InvoiceRecord
			cents         int64
			format        string
		)
		if err := rows.Scan(&id, &rec.InvoiceNumber, &rec.Vendor, &rec.Date, &cents,
			&rec.SourceHash, &format, &createdAt); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		rec.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse invoice id: %w", err)
		}
		rec.Total = entity.Amount(cents)
		rec.Format = constants.FormatTag(format)
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			rec.CreatedAt = t
		}
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

func (s *SQLiteStore) listItems(ctx context.Context, invoiceID uuid.UUID) ([]entity.LineItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, unit_price_cents, category
		 FROM invoice_items WHERE invoice_id = ? ORDER BY position`,
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

func (s *SQLiteStore) KnownHashes(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT source_hash FROM invoices ORDER BY rowid`)
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

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
