package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/constants"
)

const format1Text = `INVOICE
# 58201
East Repair Inc.
1912 Harvest Lane
New York, NY 12210

Date: Nov 22 2019
Sub Total: 145.00
Tax: 9.06
Total: 154.06
Balance Due: $154.06`

const format2Text = `Invoice no: 82545
Date of issue: 09/06/2016

Seller:
Patel, Thompson and Montgomery
356 Kyle Vista
New James, MA 46228

ITEMS
1. Gaming Laptop 1 each 2499,00 23% 2499,00

SUMMARY
Total 2499,00 23% 574,77
Gross worth 3073,77`

func TestExtractFieldsFormat1(t *testing.T) {
	d := ExtractFields(constants.Format1, format1Text)
	assert.Equal(t, "58201", d.InvoiceNumber)
	assert.Equal(t, "East Repair Inc.", d.Vendor)
	assert.Equal(t, "Nov 22 2019", d.RawDate)
	assert.Equal(t, "154.06", d.RawTotal)
}

func TestExtractFieldsFormat1SubTotalNeverWins(t *testing.T) {
	text := "INVOICE\n# 7\nAcme Corp\nSub Total: 100.00\nTax: 8.00"
	d := ExtractFields(constants.Format1, text)
	assert.Empty(t, d.RawTotal, "a subtotal line must not be taken as the total")
}

func TestExtractFieldsFormat2(t *testing.T) {
	d := ExtractFields(constants.Format2, format2Text)
	assert.Equal(t, "82545", d.InvoiceNumber)
	assert.Equal(t, "Patel, Thompson and Montgomery", d.Vendor)
	assert.Equal(t, "09/06/2016", d.RawDate)

	// The summary block's last decimal is the gross total, not the net
	// listed next to the "Total" label.
	assert.Equal(t, "3073,77", d.RawTotal)
}

func TestExtractFieldsImageOCRFallbacks(t *testing.T) {
	text := "Seller: Garcia PLC\ninvoice no 123\n# 456\nITEMS\n1. Desk 100,00\nSUMMARY\nTotal 100,00"
	d := ExtractFields(constants.ImageOCR, text)
	assert.Equal(t, "123", d.InvoiceNumber)
	assert.Equal(t, "Garcia PLC", d.Vendor)
}

func TestExtractFieldsFallbackUnion(t *testing.T) {
	text := "some header\n# 99\nTotal: 50.00\n01/02/2020"
	d := ExtractFields(constants.Unrecognized, text)
	assert.Equal(t, "99", d.InvoiceNumber)
	assert.Equal(t, "50.00", d.RawTotal)
	assert.Equal(t, "01/02/2020", d.RawDate)
}

func TestVendorRejectsNumericLines(t *testing.T) {
	// The number line below the banner must be skipped.
	text := "INVOICE\n# 12345\n98-765 4321\nEast Repair Inc."
	d := ExtractFields(constants.Format1, text)
	assert.Equal(t, "East Repair Inc.", d.Vendor)
}

func TestVendorRejectsLabelLines(t *testing.T) {
	text := "INVOICE\nDate: Nov 22 2019\nBill To: someone\nTotal: 1.00"
	d := ExtractFields(constants.Format1, text)
	assert.Empty(t, d.Vendor)
}

func TestVendorAfterSellerInline(t *testing.T) {
	d := ExtractFields(constants.Format2, "Invoice no: 1\nSeller: Chapman-Kim\nClient: X")
	assert.Equal(t, "Chapman-Kim", d.Vendor)
}

func TestMissingFieldsStayEmpty(t *testing.T) {
	d := ExtractFields(constants.Format1, "INVOICE\n\nnothing useful here")
	assert.Empty(t, d.InvoiceNumber)
	assert.Empty(t, d.RawDate)
	assert.Empty(t, d.RawTotal)
}
