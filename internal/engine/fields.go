package engine

import (
	"regexp"
	"strings"

	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/constants"
	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/entity"
)

var (
	reHashNumber     = regexp.MustCompile(`#\s*(\d+)`)
	reInvoiceNoLabel = regexp.MustCompile(`(?i)invoice\s*no[.:\-]?\s*(\d+)`)
	reDateOfIssue    = regexp.MustCompile(`(?i)date\s+of\s+issue[.:\-]?\s*(\d{1,2}/\d{1,2}/\d{4})`)

	reMonthDate = regexp.MustCompile(`[A-Za-z]{3}\s+\d{1,2},?\s+\d{4}`)
	reSlashDate = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`)
	reDashDate  = regexp.MustCompile(`\d{1,2}-\d{1,2}-\d{4}`)

	reSellerInline = regexp.MustCompile(`(?i)^\s*seller\s*:\s*(.*)$`)
	reAllNumeric   = regexp.MustCompile(`^[\d\s.,#\-/]+$`)
	reDecimalNum   = regexp.MustCompile(`\d+[.,]\d{2}\b`)
	reSubTotal     = regexp.MustCompile(`(?i)sub\s*-?\s*total`)
)

// Ordered total labels, most specific first. The bare "total" pattern runs
// last and only on lines that carry no subtotal marker.
var totalLabelRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)grand\s*total\s*[:=]?\s*\$?\s*([\d][\d.,]*)`),
	regexp.MustCompile(`(?i)total\s*[:=]\s*\$?\s*([\d][\d.,]*)`),
	regexp.MustCompile(`(?i)amount\s+due\s*[:=]?\s*\$?\s*([\d][\d.,]*)`),
	regexp.MustCompile(`(?i)balance\s+due\s*[:=]?\s*\$?\s*([\d][\d.,]*)`),
}

// Labels that can never be a vendor name. OCR field bleed regularly puts
// these on the line where a vendor is expected.
var nonVendorLabels = []string{
	"invoice", "seller", "client", "buyer", "bill to", "ship to", "date",
	"total", "sub total", "subtotal", "items", "summary", "balance due",
	"amount due", "tax", "vat", "iban", "order",
}

// ExtractFields dispatches to the extraction strategy for the given format
// tag. Each strategy is a pure function from text to a partial draft; all
// scalar outputs are optional at this stage.
func ExtractFields(tag constants.FormatTag, text string) entity.DraftRecord {
	switch tag {
	case constants.Format1:
		return extractFormat1(text)
	case constants.Format2:
		return extractFormat2(text)
	case constants.ImageOCR:
		return extractImageOCR(text)
	default:
		return extractFallback(text)
	}
}

func extractFormat1(text string) entity.DraftRecord {
	var d entity.DraftRecord
	d.InvoiceNumber = firstGroup(reHashNumber, text)
	if d.InvoiceNumber == "" {
		d.InvoiceNumber = firstGroup(reInvoiceNoLabel, text)
	}
	d.Vendor = vendorBelowBanner(text)
	d.RawDate = firstMatchOf(text, reMonthDate, reSlashDate)
	d.RawTotal = totalFromLabels(text)
	return d
}

func extractFormat2(text string) entity.DraftRecord {
	var d entity.DraftRecord
	d.InvoiceNumber = firstGroup(reInvoiceNoLabel, text)
	d.Vendor = vendorAfterSeller(text)
	d.RawDate = firstGroup(reDateOfIssue, text)
	if d.RawDate == "" {
		d.RawDate = firstMatchOf(text, reSlashDate)
	}
	// The summary block's last decimal is the gross total; labelled totals in
	// this layout list net before gross, so the block wins over the labels.
	d.RawTotal = summaryTotal(text)
	if d.RawTotal == "" {
		d.RawTotal = totalFromLabels(text)
	}
	return d
}

func extractImageOCR(text string) entity.DraftRecord {
	d := extractFormat2(text)
	if d.InvoiceNumber == "" {
		d.InvoiceNumber = firstGroup(reHashNumber, text)
	}
	if d.RawDate == "" {
		d.RawDate = firstMatchOf(text, reMonthDate, reDashDate)
	}
	return d
}

// extractFallback is the most permissive strategy: the union of every
// anchored pattern, for text no probe recognized.
func extractFallback(text string) entity.DraftRecord {
	var d entity.DraftRecord
	d.InvoiceNumber = firstGroup(reHashNumber, text)
	if d.InvoiceNumber == "" {
		d.InvoiceNumber = firstGroup(reInvoiceNoLabel, text)
	}
	d.Vendor = vendorBelowBanner(text)
	if d.Vendor == "" {
		d.Vendor = vendorAfterSeller(text)
	}
	d.RawDate = firstMatchOf(text, reSlashDate, reMonthDate, reDashDate)
	d.RawTotal = totalFromLabels(text)
	if d.RawTotal == "" {
		d.RawTotal = summaryTotal(text)
	}
	return d
}

func firstGroup(re *regexp.Regexp, text string) string {
	if m := re.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func firstMatchOf(text string, res ...*regexp.Regexp) string {
	for _, re := range res {
		if m := re.FindString(text); m != "" {
			return m
		}
	}
	return ""
}

// totalFromLabels scans labels most-specific-first, top-to-bottom within
// each label. Subtotal lines are excluded so "Sub Total" can never win.
func totalFromLabels(text string) string {
	lines := strings.Split(text, "\n")
	for _, re := range totalLabelRes {
		for _, line := range lines {
			if reSubTotal.MatchString(line) {
				continue
			}
			if m := re.FindStringSubmatch(line); m != nil {
				return m[1]
			}
		}
	}
	return ""
}

// summaryTotal returns the last decimal number after the SUMMARY marker,
// which in the section layout is the gross total.
func summaryTotal(text string) string {
	loc := reOCRSumm.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	nums := reDecimalNum.FindAllString(text[loc[1]:], -1)
	if len(nums) == 0 {
		return ""
	}
	return nums[len(nums)-1]
}

// plausibleVendor rejects candidates that are purely numeric or start with a
// known non-vendor label.
func plausibleVendor(s string) bool {
	s = CollapseSpaces(s)
	if s == "" || reAllNumeric.MatchString(s) {
		return false
	}
	low := strings.ToLower(s)
	for _, label := range nonVendorLabels {
		if strings.HasPrefix(low, label) {
			return false
		}
	}
	return true
}

// vendorBelowBanner finds the "INVOICE" banner line and takes the first
// plausible line within the next three (the number line usually sits between
// the banner and the vendor).
func vendorBelowBanner(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if !strings.Contains(strings.ToUpper(line), "INVOICE") {
			continue
		}
		for j := i + 1; j < len(lines) && j <= i+3; j++ {
			if cand := CollapseSpaces(lines[j]); plausibleVendor(cand) {
				return cand
			}
		}
		return ""
	}
	return ""
}

// vendorAfterSeller reads the value next to a "Seller:" label: the inline
// remainder when plausible, otherwise the next non-blank plausible line.
func vendorAfterSeller(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		m := reSellerInline.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if rest := CollapseSpaces(m[1]); plausibleVendor(rest) {
			return rest
		}
		for j := i + 1; j < len(lines) && j <= i+2; j++ {
			if cand := CollapseSpaces(lines[j]); plausibleVendor(cand) {
				return cand
			}
		}
		return ""
	}
	return ""
}
