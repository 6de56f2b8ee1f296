package engine

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/entity"
)

var (
	// name  qty  $unit  $extended, the structured table row layout.
	reStructuredRow = regexp.MustCompile(`^\s*(.+?)\s+(\d+)\s+\$([\d,]+\.\d{2})\s+\$([\d,]+\.\d{2})\s*$`)
	// [qty]  name ... price, with an optional leading integer quantity.
	reQtyRow = regexp.MustCompile(`^\s*(?:(\d+)\s+)?(.+?)\s+\$?(\d[\d,]*[.,]\d{1,2})\s*$`)

	reEnumPrefix = regexp.MustCompile(`^\s*\d+[.)]\s+`)
	reEnumSplit  = regexp.MustCompile(`\s\d+\.\s`)
	reNumToken   = regexp.MustCompile(`\d+[.,]?\d*`)
	rePercent    = regexp.MustCompile(`\d+\s*%`)
	reHasLetter  = regexp.MustCompile(`[A-Za-z]`)

	reSummaryRow = regexp.MustCompile(`(?i)^(sub\s*-?\s*total|grand\s*total|total|tax|vat|discount|shipping|amount\s+due|balance\s+due|summary|no\.?\s+description)\b`)
)

// ExtractItems recovers the item table from the full text, independent of
// which field extractor ran. Rows with no parseable trailing price are
// discarded rather than emitted as zero-price items.
func ExtractItems(text string) []entity.ItemRow {
	if block, ok := sectionBlock(text); ok {
		if items := sectionItems(block); len(items) > 0 {
			return items
		}
	}
	return lineItems(text)
}

// sectionBlock returns the text between the ITEMS and SUMMARY markers.
func sectionBlock(text string) (string, bool) {
	start := reOCRItems.FindStringIndex(text)
	if start == nil {
		return "", false
	}
	end := reOCRSumm.FindStringIndex(text[start[1]:])
	if end == nil {
		return "", false
	}
	return text[start[1] : start[1]+end[0]], true
}

// sectionItems parses an enumerated item block ("1. ... 2. ..."). The last
// decimal in each entry is its gross price; numbers, VAT percentages and the
// unit word are stripped from the description.
func sectionItems(block string) []entity.ItemRow {
	block = CollapseSpaces(block)
	block = reEnumPrefix.ReplaceAllString(block, "")

	var items []entity.ItemRow
	for _, raw := range reEnumSplit.Split(block, -1) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		nums := reDecimalNum.FindAllString(raw, -1)
		if len(nums) == 0 {
			continue
		}
		price, ok := ParseAmount(nums[len(nums)-1])
		if !ok {
			continue
		}

		name := reNumToken.ReplaceAllString(raw, "")
		name = rePercent.ReplaceAllString(name, "")
		name = strings.ReplaceAll(name, "each", "")
		name = strings.Trim(CollapseSpaces(name), ".,-% ")
		if !plausibleItemName(name) {
			continue
		}

		items = append(items, entity.ItemRow{Name: name, UnitPrice: price})
	}
	return items
}

// lineItems scans the text line by line for table rows.
func lineItems(text string) []entity.ItemRow {
	var items []entity.ItemRow
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if m := reStructuredRow.FindStringSubmatch(line); m != nil {
			name := CollapseSpaces(m[1])
			unit, ok := ParseAmount(m[3])
			if ok && plausibleItemName(name) {
				items = append(items, entity.ItemRow{Name: name, UnitPrice: unit})
			}
			continue
		}

		// An "N." or "N)" prefix is an item number, not a quantity.
		stripped := reEnumPrefix.ReplaceAllString(line, "")

		m := reQtyRow.FindStringSubmatch(stripped)
		if m == nil {
			continue
		}
		name := strings.Trim(CollapseSpaces(m[2]), ":.,- ")
		if !plausibleItemName(name) {
			continue
		}
		price, ok := ParseAmount(m[3])
		if !ok {
			continue
		}
		items = append(items, entity.ItemRow{Name: name, UnitPrice: unitPrice(m[1], price)})
	}
	return items
}

// unitPrice decides whether a trailing price is extended or per-unit. With a
// leading quantity, an amount that divides into whole cents is treated as
// extended and split; anything else is already a unit price.
func unitPrice(qtyField string, price entity.Amount) entity.Amount {
	if qtyField == "" {
		return price
	}
	qty, err := strconv.ParseInt(qtyField, 10, 64)
	if err != nil || qty <= 0 {
		return price
	}
	if int64(price)%qty == 0 {
		return entity.Amount(int64(price) / qty)
	}
	return price
}

func plausibleItemName(name string) bool {
	if name == "" || !reHasLetter.MatchString(name) {
		return false
	}
	return !reSummaryRow.MatchString(name)
}
