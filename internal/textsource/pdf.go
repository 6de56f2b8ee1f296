package textsource

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"
)

// pdfText pulls the embedded text layer out of a PDF, row by row across all
// pages. A page whose rows cannot be read is skipped; the document only
// fails when the reader itself cannot open it.
func pdfText(b []byte) (string, int, error) {
	reader, err := pdf.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return "", 0, err
	}

	var sb strings.Builder
	pages := reader.NumPage()
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			for _, word := range row.Content {
				sb.WriteString(word.S)
				sb.WriteString(" ")
			}
			sb.WriteString("\n")
		}
	}
	return sb.String(), pages, nil
}
