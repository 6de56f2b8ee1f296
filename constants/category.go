package constants

import (
	"strings"
)

type Category string

const (
	Technology     Category = "TECHNOLOGY"
	Fashion        Category = "FASHION"
	HomeEssentials Category = "HOME_ESSENTIALS"
	Uncategorized  Category = "UNCATEGORIZED"
)

var allCategories = []Category{
	Technology,
	Fashion,
	HomeEssentials,
	Uncategorized,
}

func AsStringSlice() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// Canonicalize maps loose category labels to the fixed taxonomy.
func Canonicalize(input string) (Category, bool) {
	if input == "" {
		return Uncategorized, false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))

	// synonyms map
	synonyms := map[string]Category{
		"tech":        Technology,
		"electronics": Technology,
		"apparel":     Fashion,
		"clothes":     Fashion,
		"home":        HomeEssentials,
		"household":   HomeEssentials,
	}

	if cat, ok := synonyms[normalized]; ok {
		return cat, true
	}

	// check if it matches any category string
	for _, cat := range allCategories {
		if normalized == strings.ToLower(string(cat)) ||
			normalized == strings.ToLower(strings.ReplaceAll(string(cat), "_", " ")) {
			return cat, true
		}
	}

	return Uncategorized, false
}
