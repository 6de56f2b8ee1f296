package textsource

import (
	"context"
	"fmt"
	"os"
	"strconv"
)

// ocrImage writes the image bytes to a scratch file and runs tesseract over
// it. Tesseract sniffs the image format from content, so the extension is
// cosmetic.
func (a *Adapter) ocrImage(ctx context.Context, b []byte) (string, error) {
	f, err := os.CreateTemp("", "invoice-ocr-*.png")
	if err != nil {
		return "", fmt.Errorf("scratch file: %w", err)
	}
	path := f.Name()
	defer func() {
		if err := os.Remove(path); err != nil {
			a.logger.Warn("failed to remove scratch file", "path", path, "error", err)
		}
	}()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write scratch file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close scratch file: %w", err)
	}

	args := []string{path, "stdout", "-l", a.cfg.Language}
	if a.cfg.PSM > 0 {
		args = append(args, "--psm", strconv.Itoa(a.cfg.PSM))
	}
	out, errb, err := a.runner.Run(ctx, a.cfg.Tesseract, a.logger, args...)
	if err != nil {
		return "", fmt.Errorf("tesseract: %v: %s", err, truncate(string(errb), 2048))
	}
	return string(out), nil
}
