package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/constants"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want constants.FormatTag
	}{
		{
			"banner and hash number",
			"INVOICE\n# 58201\nEast Repair Inc.\nDate: Nov 22 2019",
			constants.Format1,
		},
		{
			"section layout",
			"Invoice no: 82545\nDate of issue: 09/06/2016\nSeller:\nGarcia PLC\nITEMS\nSUMMARY",
			constants.Format2,
		},
		{
			"ocr collapsed layout",
			"page 1 invoice no 40378 seller: Garcia PLC items summary total 23,40",
			constants.ImageOCR,
		},
		{
			"no anchors",
			"quarterly report\nrevenue up 4%\nsee appendix",
			constants.Unrecognized,
		},
		{"empty text", "", constants.Unrecognized},
		{
			"single weak anchor picks first probe",
			"ref # 12 attached",
			constants.Format1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

func TestClassifyPrefersStructuredOverOCR(t *testing.T) {
	// Line-anchored FORMAT_2 patterns match clean text; the OCR probe only
	// wins when the section markers survive solely in inline form.
	text := "Invoice no: 1\nSeller:\nSomeone\nITEMS\nthing 1,00\nSUMMARY\nTotal 1,00"
	assert.Equal(t, constants.Format2, Classify(text))
}
