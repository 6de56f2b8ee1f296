package engine

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/entity"
)

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reTabs       = regexp.MustCompile(`\t+`)
	reMultiSpace = regexp.MustCompile(` {2,}`)
	reMultiBlank = regexp.MustCompile(`\n{3,}`)
	reWhitespace = regexp.MustCompile(`\s+`)
)

// NormalizeText collapses noisy whitespace ahead of any pattern matching.
// Conservative: keeps line breaks; collapses >2 newlines into a single blank
// line. OCR noise is the primary error source, so this runs on the whole
// text before extraction; CollapseSpaces runs again per extracted field.
func NormalizeText(s string) string {
	if s == "" {
		return s
	}
	s = reCRLF.ReplaceAllString(s, "\n")
	s = reTabs.ReplaceAllString(s, "  ")
	s = reMultiSpace.ReplaceAllString(s, "  ")
	s = reMultiBlank.ReplaceAllString(s, "\n\n")
	// trim trailing spaces on lines
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	s = strings.Join(lines, "\n")
	return strings.TrimSpace(s)
}

// CollapseSpaces reduces every whitespace run to a single space and trims.
func CollapseSpaces(s string) string {
	return strings.TrimSpace(reWhitespace.ReplaceAllString(s, " "))
}

// Known input date layouts, tried in order; the first full match wins.
var dateLayouts = []string{
	"02/01/2006", // DD/MM/YYYY
	"01-02-2006", // MM-DD-YYYY
	"2 Jan 2006",
	"Jan 2 2006",
	"Jan 2, 2006",
	"2006-01-02",
}

// NormalizeDate canonicalizes a raw date string to YYYY-MM-DD.
// Unparseable input yields the Unknown sentinel, never an error.
func NormalizeDate(raw string) string {
	s := CollapseSpaces(raw)
	if s == "" {
		return entity.Unknown
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return entity.Unknown
}

var reDecimalComma = regexp.MustCompile(`^\d+,\d{1,2}$`)

// ParseAmount converts a raw amount string to cents. It strips currency
// symbols and thousands separators and accepts the OCR decimal-comma form
// ("15,00"). Negative or non-numeric input reports ok=false.
func ParseAmount(raw string) (entity.Amount, bool) {
	s := strings.TrimSpace(raw)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',':
			b.WriteRune(r)
		case r == '$' || r == '€' || r == '£' || r == ' ' || r == ' ':
			// currency noise, skip
		default:
			return 0, false
		}
	}
	s = b.String()
	if s == "" {
		return 0, false
	}

	// Separator disambiguation: with both present the comma is a thousands
	// separator; a lone comma followed by 1-2 trailing digits is a decimal
	// separator ("15,00"), otherwise thousands ("1,234").
	switch {
	case strings.Contains(s, ".") && strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ",", "")
	case strings.Contains(s, ","):
		if reDecimalComma.MatchString(s) {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	if intPart == "" {
		intPart = "0"
	}
	if strings.Contains(fracPart, ".") {
		return 0, false
	}
	if len(fracPart) > 2 {
		fracPart = fracPart[:2]
	}
	for len(fracPart) < 2 {
		fracPart += "0"
	}

	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, false
	}
	frac, err := strconv.ParseInt(fracPart, 10, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		return 0, false
	}
	return entity.Amount(whole*100 + frac), true
}

// NormalizeAmount is ParseAmount with sentinel substitution: anything that
// cannot be recovered becomes 0.00.
func NormalizeAmount(raw string) entity.Amount {
	if amt, ok := ParseAmount(raw); ok {
		return amt
	}
	return 0
}
