package entity

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/constants"
)

// Unknown is the sentinel for string fields that could not be recovered.
const Unknown = "UNKNOWN"

// RawDocument is one incoming file: its bytes, declared kind, and a stable
// content hash over the raw bytes. Immutable once produced.
type RawDocument struct {
	Bytes []byte
	Kind  constants.DocKind
	Hash  string
}

// NewRawDocument builds a RawDocument, computing the SHA-256 content hash.
func NewRawDocument(b []byte, kind constants.DocKind) RawDocument {
	sum := sha256.Sum256(b)
	return RawDocument{
		Bytes: b,
		Kind:  kind,
		Hash:  hex.EncodeToString(sum[:]),
	}
}

// DraftRecord accumulates extractor output during a single processing run.
// Empty string means the field was not found; absence is not an error here.
type DraftRecord struct {
	InvoiceNumber string
	Vendor        string
	RawDate       string
	RawTotal      string
	Items         []ItemRow
}

// ItemRow is a line item before categorization.
type ItemRow struct {
	Name      string
	UnitPrice Amount
}

// LineItem is one categorized invoice line.
type LineItem struct {
	ID        uuid.UUID          `json:"item_id"`
	Name      string             `json:"name"`
	UnitPrice Amount             `json:"price"`
	Category  constants.Category `json:"category"`
}

// InvoiceRecord is the canonical, immutable extraction result.
// Unrecovered fields carry sentinels so consumers never see absent values.
type InvoiceRecord struct {
	ID            uuid.UUID           `json:"invoice_id"`
	InvoiceNumber string              `json:"invoice_no"`
	Vendor        string              `json:"vendor"`
	Date          string              `json:"date"` // YYYY-MM-DD or Unknown
	Total         Amount              `json:"total_amount"`
	Items         []LineItem          `json:"items"`
	SourceHash    string              `json:"source_hash"`
	Format        constants.FormatTag `json:"format"`
	CreatedAt     time.Time           `json:"created_at"`
}
