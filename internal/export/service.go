// Package export produces XLSX workbooks from stored invoice records.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/store"
)

// Service is a tiny façade over the record store that produces XLSX bytes.
type Service struct {
	store  store.Store
	logger *slog.Logger
}

func NewService(st store.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: st, logger: logger}
}

// ExportInvoicesXLSX returns an XLSX workbook (as bytes) with every stored
// record, one "Invoices" sheet plus a "Line Items" sheet.
func (s *Service) ExportInvoicesXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	recs, err := s.store.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	f := excelize.NewFile()
	const invSheet = "Invoices"
	const itemSheet = "Line Items"

	// excelize creates "Sheet1" by default; rename it rather than leaving it around.
	defaultSheet := f.GetSheetName(f.GetActiveSheetIndex())
	if defaultSheet != invSheet {
		if err := f.SetSheetName(defaultSheet, invSheet); err != nil {
			return nil, err
		}
	}
	if _, err := f.NewSheet(itemSheet); err != nil {
		return nil, err
	}
	activeIndex, _ := f.GetSheetIndex(invSheet)
	f.SetActiveSheet(activeIndex)

	invHeaders := []string{
		"Invoice ID",
		"Invoice No",
		"Vendor",
		"Date",
		"Total",
		"Items",
		"Format",
		"Source Hash",
		"Created At",
	}
	for i, h := range invHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(invSheet, cell, h)
	}

	itemHeaders := []string{
		"Invoice ID",
		"Invoice No",
		"Item",
		"Unit Price",
		"Category",
	}
	for i, h := range itemHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(itemSheet, cell, h)
	}

	invRow := 2
	itemRow := 2
	for _, r := range recs {
		write := func(sheet string, row, col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(invSheet, invRow, 1, r.ID.String())
		write(invSheet, invRow, 2, r.InvoiceNumber)
		write(invSheet, invRow, 3, r.Vendor)
		write(invSheet, invRow, 4, r.Date)
		write(invSheet, invRow, 5, r.Total.String())
		write(invSheet, invRow, 6, len(r.Items))
		write(invSheet, invRow, 7, string(r.Format))
		write(invSheet, invRow, 8, r.SourceHash)
		write(invSheet, invRow, 9, r.CreatedAt.Format(time.RFC3339))
		invRow++

		for _, item := range r.Items {
			write(itemSheet, itemRow, 1, r.ID.String())
			write(itemSheet, itemRow, 2, r.InvoiceNumber)
			write(itemSheet, itemRow, 3, item.Name)
			write(itemSheet, itemRow, 4, item.UnitPrice.String())
			write(itemSheet, itemRow, 5, string(item.Category))
			itemRow++
		}
	}

	// Widen a few columns
	_ = f.SetColWidth(invSheet, "A", "A", 38) // id
	_ = f.SetColWidth(invSheet, "B", "C", 24) // number, vendor
	_ = f.SetColWidth(invSheet, "D", "E", 14) // date, total
	_ = f.SetColWidth(invSheet, "H", "H", 66) // hash
	_ = f.SetColWidth(invSheet, "I", "I", 22) // created_at
	_ = f.SetColWidth(itemSheet, "A", "A", 38)
	_ = f.SetColWidth(itemSheet, "C", "C", 36)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"invoices", len(recs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
