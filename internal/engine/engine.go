package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/constants"
	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/common"
	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/entity"
)

// Source is a produced character stream plus its coarse origin tag.
type Source struct {
	Text   string
	Origin string // "image" | "pdf_text"
}

// TextProducer turns raw document bytes into text. Producers may be
// long-running (OCR); the engine only requires the complete text before
// classification begins. A producer failure is ErrExtractionUnavailable;
// empty text is not an error.
type TextProducer interface {
	ProduceText(ctx context.Context, doc entity.RawDocument) (Source, error)
}

// Result is the terminal outcome for one document. The engine never raises
// across its boundary: every taxonomy error resolves into an outcome here.
type Result struct {
	Outcome constants.Outcome
	State   constants.State // last pipeline state reached
	Record  *entity.InvoiceRecord
	Reason  string
}

// Engine runs the per-document pipeline:
// RECEIVED -> CLASSIFIED -> EXTRACTED -> NORMALIZED -> CATEGORIZED ->
// {ACCEPTED | REJECTED_DUPLICATE | REJECTED_UNRECOVERABLE}.
// It is stateless between invocations except for the shared hash set.
type Engine struct {
	producer TextProducer
	hashes   *HashSet
	rules    []Rule
	logger   *slog.Logger
	now      func() time.Time
	newID    func() uuid.UUID
}

type Option func(*Engine)

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func WithRules(rules []Rule) Option {
	return func(e *Engine) {
		if len(rules) > 0 {
			e.rules = rules
		}
	}
}

// WithClock overrides record timestamping, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func New(producer TextProducer, hashes *HashSet, opts ...Option) *Engine {
	e := &Engine{
		producer: producer,
		hashes:   hashes,
		rules:    DefaultRules,
		logger:   slog.Default(),
		now:      time.Now,
		newID:    uuid.New,
	}
	if e.hashes == nil {
		e.hashes = NewHashSet()
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Hashes exposes the shared dedup set so the caller can seed it or roll back
// a registration after a failed persist.
func (e *Engine) Hashes() *HashSet {
	return e.hashes
}

// Process runs one document through the pipeline and returns its terminal
// outcome. The error is non-nil only for invalid input (empty document);
// every document-level failure is reported as a Result.
func (e *Engine) Process(ctx context.Context, doc entity.RawDocument) (Result, error) {
	if len(doc.Bytes) == 0 && doc.Hash == "" {
		return Result{}, common.ErrInvalidInput
	}
	if doc.Hash == "" {
		doc = entity.NewRawDocument(doc.Bytes, doc.Kind)
	}
	state := constants.StateReceived

	// Duplicates short-circuit before any extraction work.
	if e.hashes.Contains(doc.Hash) {
		e.logger.Info("engine.dedup.hit", "hash", doc.Hash, "kind", doc.Kind)
		return Result{
			Outcome: constants.OutcomeRejectedDuplicate,
			State:   state,
			Reason:  "content hash already processed",
		}, nil
	}

	src, err := e.producer.ProduceText(ctx, doc)
	if err != nil {
		e.logger.Warn("engine.textsource.failed", "hash", doc.Hash, "kind", doc.Kind, "error", err)
		return Result{
			Outcome: constants.OutcomeRejectedUnrecoverable,
			State:   state,
			Reason:  common.ErrExtractionUnavailable.Error() + ": " + err.Error(),
		}, nil
	}

	text := NormalizeText(src.Text)
	tag := Classify(text)
	state = constants.StateClassified
	e.logger.Debug("engine.classified", "hash", doc.Hash, "format", tag, "origin", src.Origin)

	draft := ExtractFields(tag, text)
	draft.Items = ExtractItems(text)
	state = constants.StateExtracted

	rec := e.buildRecord(doc, tag, draft)
	state = constants.StateNormalized

	// Nothing anchoring this document to an invoice at all: reject instead
	// of polluting the store with an all-sentinel record.
	if draft.InvoiceNumber == "" && draft.RawTotal == "" && tag == constants.Unrecognized {
		e.logger.Warn("engine.unrecoverable", "hash", doc.Hash)
		return Result{
			Outcome: constants.OutcomeRejectedUnrecoverable,
			State:   state,
			Reason:  common.ErrUnrecoverableFields.Error(),
		}, nil
	}

	for i := range rec.Items {
		rec.Items[i].Category = CategorizeWith(e.rules, rec.Items[i].Name)
	}
	state = constants.StateCategorized

	e.hashes.Register(doc.Hash)
	e.logger.Info("engine.accepted",
		"hash", doc.Hash,
		"format", tag,
		"invoice_no", rec.InvoiceNumber,
		"vendor", rec.Vendor,
		"total", rec.Total.String(),
		"items", len(rec.Items),
	)
	return Result{Outcome: constants.OutcomeAccepted, State: state, Record: rec}, nil
}

func (e *Engine) buildRecord(doc entity.RawDocument, tag constants.FormatTag, draft entity.DraftRecord) *entity.InvoiceRecord {
	rec := &entity.InvoiceRecord{
		ID:            e.newID(),
		InvoiceNumber: orUnknown(CollapseSpaces(draft.InvoiceNumber)),
		Vendor:        orUnknown(CollapseSpaces(draft.Vendor)),
		Date:          NormalizeDate(draft.RawDate),
		Total:         NormalizeAmount(draft.RawTotal),
		Items:         make([]entity.LineItem, 0, len(draft.Items)),
		SourceHash:    doc.Hash,
		Format:        tag,
		CreatedAt:     e.now().UTC(),
	}
	for _, row := range draft.Items {
		rec.Items = append(rec.Items, entity.LineItem{
			ID:        e.newID(),
			Name:      row.Name,
			UnitPrice: row.UnitPrice,
			Category:  constants.Uncategorized,
		})
	}
	return rec
}

func orUnknown(s string) string {
	if s == "" {
		return entity.Unknown
	}
	return s
}
