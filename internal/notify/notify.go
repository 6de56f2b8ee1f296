// Package notify publishes events for records that completed the pipeline.
package notify

import (
	"context"
	"log/slog"

	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/entity"
)

// Event describes an accepted invoice record.
type Event struct {
	Record *entity.InvoiceRecord
	Source string
}

// Notifier receives an event for every accepted record.
type Notifier interface {
	Notify(ctx context.Context, ev Event)
}

// LogNotifier writes accepted records to the structured log.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, ev Event) {
	n.logger.Info("invoice.accepted",
		"invoice_id", ev.Record.ID.String(),
		"invoice_no", ev.Record.InvoiceNumber,
		"vendor", ev.Record.Vendor,
		"date", ev.Record.Date,
		"total", ev.Record.Total.String(),
		"items", len(ev.Record.Items),
		"format", string(ev.Record.Format),
		"source", ev.Source,
	)
}

// Multi fans an event out to several notifiers.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, ev Event) {
	for _, n := range m {
		n.Notify(ctx, ev)
	}
}
