package engine

import (
	"regexp"
	"strings"

	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/constants"
)

// Rule maps a keyword set to a category. Rules are ordered: the first rule
// whose keywords intersect the tokenized item name wins.
type Rule struct {
	Category constants.Category
	Keywords []string
}

// DefaultRules is the static rule table. Extending the taxonomy means adding
// rules here, not touching extraction logic.
var DefaultRules = []Rule{
	{constants.Technology, []string{"computer", "pc", "desktop", "laptop", "intel", "nvidia", "wireless"}},
	{constants.Fashion, []string{"shoes", "shirt", "jeans", "clothing"}},
	{constants.HomeEssentials, []string{"mouse", "keyboard", "chair", "table"}},
}

var reTokenSplit = regexp.MustCompile(`[^a-z0-9]+`)

// Categorize maps an item name to a category using the default rule table.
func Categorize(name string) constants.Category {
	return CategorizeWith(DefaultRules, name)
}

// CategorizeWith runs an explicit rule table. Matching is case-insensitive
// over name tokens; no match yields UNCATEGORIZED.
func CategorizeWith(rules []Rule, name string) constants.Category {
	toks := tokenize(name)
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if _, ok := toks[kw]; ok {
				return rule.Category
			}
		}
	}
	return constants.Uncategorized
}

func tokenize(name string) map[string]struct{} {
	toks := make(map[string]struct{})
	for _, t := range reTokenSplit.Split(strings.ToLower(name), -1) {
		if t != "" {
			toks[t] = struct{}{}
		}
	}
	return toks
}
