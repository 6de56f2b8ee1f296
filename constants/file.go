package constants

import "strings"

// DocKind is the coarse source tag delivered with each document.
type DocKind string

const (
	KindImage DocKind = "image"
	KindPDF   DocKind = "pdf"
)

// AllowedExtensions holds the default allowed file extensions for invoice ingestion.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"jpg":  {},
	"jpeg": {},
	"png":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToKind maps a normalized extension to a document kind.
func MapExtToKind(ext string) (DocKind, bool) {
	switch NormalizeExt(ext) {
	case "pdf":
		return KindPDF, true
	case "jpg", "jpeg", "png":
		return KindImage, true
	default:
		return "", false
	}
}
