package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/constants"
	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/entity"
)

// BuildInvoiceJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map describing the canonical invoice record shape. Every record is
// validated against it before persistence.
func BuildInvoiceJSONSchema() map[string]any {
	item := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"item_id":  map[string]any{"type": "string", "minLength": 1},
			"name":     map[string]any{"type": "string", "minLength": 1},
			"price":    decimalProp(),
			"category": map[string]any{"type": "string", "enum": constants.AsStringSlice()},
		},
		"required": []string{"item_id", "name", "price", "category"},
	}

	props := map[string]any{
		"invoice_id":   map[string]any{"type": "string", "minLength": 1},
		"invoice_no":   map[string]any{"type": "string", "minLength": 1},
		"vendor":       map[string]any{"type": "string", "minLength": 1},
		"date":         map[string]any{"type": "string", "pattern": `^(\d{4}-\d{2}-\d{2}|UNKNOWN)$`},
		"total_amount": decimalProp(),
		"items":        map[string]any{"type": "array", "items": item},
		"source_hash":  map[string]any{"type": "string", "pattern": `^[0-9a-f]{64}$`},
		"format": map[string]any{
			"type": "string",
			"enum": []string{
				string(constants.Format1),
				string(constants.Format2),
				string(constants.ImageOCR),
				string(constants.Unrecognized),
			},
		},
		"created_at": map[string]any{"type": "string"},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required": []string{
			"invoice_id", "invoice_no", "vendor", "date",
			"total_amount", "items", "source_hash", "format", "created_at",
		},
	}
}

func decimalProp() map[string]any {
	return map[string]any{
		"type":    "string",
		"pattern": `^\d+\.\d{2}$`, // amounts are non-negative with two fraction digits
	}
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func invoiceSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		b, err := json.Marshal(BuildInvoiceJSONSchema())
		if err != nil {
			schemaErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("invoice.json", bytes.NewReader(b)); err != nil {
			schemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile("invoice.json")
	})
	return compiledSchema, schemaErr
}

// ValidateRecord checks a record against the invoice schema.
func ValidateRecord(rec *entity.InvoiceRecord) error {
	schema, err := invoiceSchema()
	if err != nil {
		return err
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("unmarshal record: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("record does not match schema: %w", err)
	}
	return nil
}
