package textsource

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/constants"
	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/common"
	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/entity"
)

// fakeRunner stands in for the tesseract binary.
type fakeRunner struct {
	stdout []byte
	stderr []byte
	err    error

	gotName string
	gotArgs []string
}

func (r *fakeRunner) Run(_ context.Context, name string, _ *slog.Logger, args ...string) ([]byte, []byte, error) {
	r.gotName = name
	r.gotArgs = args
	return r.stdout, r.stderr, r.err
}

func newAdapterWithRunner(r Runner, cfg common.OCRConfig) *Adapter {
	a := NewAdapter(cfg, slog.Default())
	a.runner = r
	return a
}

func TestProduceTextImage(t *testing.T) {
	r := &fakeRunner{stdout: []byte("INVOICE\n# 1")}
	a := newAdapterWithRunner(r, common.OCRConfig{Language: "eng", PSM: 6})

	src, err := a.ProduceText(context.Background(), entity.NewRawDocument([]byte{0x89, 0x50}, constants.KindImage))
	require.NoError(t, err)
	assert.Equal(t, "INVOICE\n# 1", src.Text)
	assert.Equal(t, "image", src.Origin)

	assert.Equal(t, "tesseract", r.gotName)
	require.GreaterOrEqual(t, len(r.gotArgs), 6)
	assert.Equal(t, "stdout", r.gotArgs[1])
	assert.Equal(t, []string{"-l", "eng", "--psm", "6"}, r.gotArgs[2:])
}

func TestProduceTextImageRunnerFailure(t *testing.T) {
	r := &fakeRunner{err: errors.New("exec: not found"), stderr: []byte("boom")}
	a := newAdapterWithRunner(r, common.OCRConfig{})

	_, err := a.ProduceText(context.Background(), entity.NewRawDocument([]byte{1}, constants.KindImage))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrExtractionUnavailable)
}

func TestProduceTextBadPDF(t *testing.T) {
	a := NewAdapter(common.OCRConfig{}, nil)

	_, err := a.ProduceText(context.Background(), entity.NewRawDocument([]byte("not a pdf"), constants.KindPDF))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrExtractionUnavailable)
}

func TestProduceTextUnknownKind(t *testing.T) {
	a := NewAdapter(common.OCRConfig{}, nil)

	_, err := a.ProduceText(context.Background(), entity.RawDocument{Bytes: []byte{1}, Kind: "spreadsheet"})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestAdapterDefaults(t *testing.T) {
	a := NewAdapter(common.OCRConfig{}, nil)
	assert.Equal(t, "tesseract", a.cfg.Tesseract)
	assert.Equal(t, "eng", a.cfg.Language)
}
