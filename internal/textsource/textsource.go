// Package textsource adapts opaque text producers (the PDF text layer and an
// external OCR engine) into the single stream the extraction engine
// consumes. Producer failures surface as ErrExtractionUnavailable; text that
// is merely empty is not an error.
package textsource

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/constants"
	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/common"
	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/engine"
	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/entity"
)

// Adapter dispatches a document to the producer for its kind.
type Adapter struct {
	cfg    common.OCRConfig
	runner Runner
	logger *slog.Logger
}

func NewAdapter(cfg common.OCRConfig, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	return &Adapter{cfg: cfg, runner: execRunner{}, logger: logger}
}

// ProduceText implements engine.TextProducer.
func (a *Adapter) ProduceText(ctx context.Context, doc entity.RawDocument) (engine.Source, error) {
	switch doc.Kind {
	case constants.KindPDF:
		text, pages, err := pdfText(doc.Bytes)
		if err != nil {
			return engine.Source{}, fmt.Errorf("%w: pdf text layer: %v", common.ErrExtractionUnavailable, err)
		}
		a.logger.Debug("textsource.pdf.ok", "hash", doc.Hash, "pages", pages, "bytes", len(text))
		return engine.Source{Text: text, Origin: "pdf_text"}, nil

	case constants.KindImage:
		text, err := a.ocrImage(ctx, doc.Bytes)
		if err != nil {
			return engine.Source{}, fmt.Errorf("%w: %v", common.ErrExtractionUnavailable, err)
		}
		a.logger.Debug("textsource.ocr.ok", "hash", doc.Hash, "bytes", len(text))
		return engine.Source{Text: text, Origin: "image"}, nil

	default:
		return engine.Source{}, fmt.Errorf("%w: unsupported document kind %q", common.ErrInvalidInput, doc.Kind)
	}
}
