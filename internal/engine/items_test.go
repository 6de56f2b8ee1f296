package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/entity"
)

func TestExtractItemsQuantityRows(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []entity.ItemRow
	}{
		{
			"extended price split by quantity",
			"3  USB Cable  15.00",
			[]entity.ItemRow{{Name: "USB Cable", UnitPrice: 500}},
		},
		{
			"no quantity keeps price",
			"USB Cable  15.00",
			[]entity.ItemRow{{Name: "USB Cable", UnitPrice: 1500}},
		},
		{
			"indivisible price kept as unit",
			"3  USB Cable  10.00",
			[]entity.ItemRow{{Name: "USB Cable", UnitPrice: 1000}},
		},
		{
			"dollar sign on price",
			"2  Desk Lamp  $50.00",
			[]entity.ItemRow{{Name: "Desk Lamp", UnitPrice: 2500}},
		},
		{
			"enumerator is not a quantity",
			"1. Wireless Mouse  25.00",
			[]entity.ItemRow{{Name: "Wireless Mouse", UnitPrice: 2500}},
		},
		{"priceless row discarded", "Some item with no price", nil},
		{"summary row discarded", "Total: 99.00", nil},
		{"subtotal row discarded", "Sub Total  50.00", nil},
		{"numeric-only row discarded", "123  456  7.00", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractItems(tt.line))
		})
	}
}

func TestExtractItemsStructuredRow(t *testing.T) {
	text := "Office Chair  2  $120.00  $240.00\nDesk Lamp  1  $35.50  $35.50"
	items := ExtractItems(text)
	require.Len(t, items, 2)
	assert.Equal(t, "Office Chair", items[0].Name)
	assert.Equal(t, entity.Amount(12000), items[0].UnitPrice)
	assert.Equal(t, "Desk Lamp", items[1].Name)
	assert.Equal(t, entity.Amount(3550), items[1].UnitPrice)
}

func TestExtractItemsSectionBlock(t *testing.T) {
	text := "Invoice no: 82545\nITEMS\n" +
		"1. Gaming Laptop 1 each 2499,00 23% 2499,00\n" +
		"2. Leather Shoes 2 each 89,99 23% 179,98\n" +
		"SUMMARY\nTotal: 2678,98"
	items := ExtractItems(text)
	require.Len(t, items, 2)

	// Section entries keep the last decimal as the price, no quantity split.
	assert.Equal(t, "Gaming Laptop", items[0].Name)
	assert.Equal(t, entity.Amount(249900), items[0].UnitPrice)
	assert.Equal(t, "Leather Shoes", items[1].Name)
	assert.Equal(t, entity.Amount(17998), items[1].UnitPrice)
}

func TestExtractItemsSectionFallsBackToLines(t *testing.T) {
	// Markers present but nothing parseable between them: the line scanner
	// still sees the rest of the document.
	text := "ITEMS\n\nSUMMARY\nWireless Mouse  25.00"
	items := ExtractItems(text)
	require.Len(t, items, 1)
	assert.Equal(t, "Wireless Mouse", items[0].Name)
}

func TestExtractItemsEmptyText(t *testing.T) {
	assert.Empty(t, ExtractItems(""))
}
