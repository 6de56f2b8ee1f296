package engine

import (
	"regexp"

	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/constants"
)

// A probe is an ordered layout test: a set of anchor patterns whose hit
// count decides whether a document belongs to the probe's format family.
type probe struct {
	tag     constants.FormatTag
	anchors []*regexp.Regexp
}

var (
	// FORMAT_1: "INVOICE" banner, "# 1234" number, colon labels on one line.
	reF1Banner    = regexp.MustCompile(`(?m)^\s*INVOICE\b`)
	reF1Number    = regexp.MustCompile(`#\s*\d+`)
	reF1DateLabel = regexp.MustCompile(`(?mi)^date\s*:`)
	reF1DueLabel  = regexp.MustCompile(`(?mi)^(balance|amount)\s+due\s*:`)

	// FORMAT_2: section-labelled layout with a line-item table.
	reF2Number = regexp.MustCompile(`(?mi)^invoice\s*no[.:\-]?\s*\d+`)
	reF2Issue  = regexp.MustCompile(`(?i)date\s+of\s+issue`)
	reF2Seller = regexp.MustCompile(`(?mi)^seller\s*:`)
	reF2Items  = regexp.MustCompile(`(?m)^ITEMS\b`)
	reF2Summ   = regexp.MustCompile(`(?m)^SUMMARY\b`)

	// IMAGE_OCR: the same anchors, tolerant of inline collapse and noise.
	reOCRNumber = regexp.MustCompile(`(?i)invoice\s*no[.:\-]?\s*\d+`)
	reOCRSeller = regexp.MustCompile(`(?i)seller\s*:`)
	reOCRItems  = regexp.MustCompile(`(?i)\bITEMS\b`)
	reOCRSumm   = regexp.MustCompile(`(?i)\bSUMMARY\b`)
)

var probes = []probe{
	{constants.Format1, []*regexp.Regexp{reF1Banner, reF1Number, reF1DateLabel, reF1DueLabel}},
	{constants.Format2, []*regexp.Regexp{reF2Number, reF2Issue, reF2Seller, reF2Items, reF2Summ}},
	{constants.ImageOCR, []*regexp.Regexp{reOCRNumber, reOCRSeller, reOCRItems, reOCRSumm}},
}

// Classify runs the ordered layout probes over normalized text. A probe
// matching two or more anchors wins outright; otherwise the first probe with
// at least one anchor hit is taken. No anchor anywhere means UNRECOGNIZED,
// which downstream still extracts with the permissive fallback strategy.
func Classify(text string) constants.FormatTag {
	best := constants.Unrecognized
	bestScore := 0
	for _, p := range probes {
		score := 0
		for _, re := range p.anchors {
			if re.MatchString(text) {
				score++
			}
		}
		if score >= 2 {
			return p.tag
		}
		if score > bestScore {
			bestScore = score
			best = p.tag
		}
	}
	return best
}
