package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/constants"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		item string
		want constants.Category
	}{
		{"laptop", "Gaming Laptop 15\"", constants.Technology},
		{"desktop pc", "Custom Desktop PC", constants.Technology},
		{"keyboard", "Mechanical Keyboard", constants.HomeEssentials},
		{"chair", "Office Chair", constants.HomeEssentials},
		{"shoes", "Leather Shoes", constants.Fashion},
		{"shirt", "Cotton Shirt XL", constants.Fashion},
		{"unknown", "Mystery Object", constants.Uncategorized},
		{"empty", "", constants.Uncategorized},
		{"case insensitive", "LAPTOP sleeve", constants.Technology},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.item))
		})
	}
}

func TestCategorizeWholeTokensOnly(t *testing.T) {
	// "pc" must not fire inside "pcs".
	assert.Equal(t, constants.Uncategorized, Categorize("Napkins 20 pcs"))
	assert.Equal(t, constants.Technology, Categorize("Refurbished PC tower"))
}

func TestCategorizeRuleOrder(t *testing.T) {
	// Both "wireless" (technology) and "mouse" (home essentials) match;
	// the earlier rule wins.
	assert.Equal(t, constants.Technology, Categorize("Wireless Mouse"))
	assert.Equal(t, constants.HomeEssentials, Categorize("Mouse Pad"))
}

func TestCategorizeWithCustomRules(t *testing.T) {
	rules := []Rule{{Category: constants.Fashion, Keywords: []string{"scarf"}}}
	assert.Equal(t, constants.Fashion, CategorizeWith(rules, "Silk Scarf"))
	assert.Equal(t, constants.Uncategorized, CategorizeWith(rules, "Gaming Laptop"))
}
