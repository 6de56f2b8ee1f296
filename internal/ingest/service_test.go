package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/common"
	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/engine"
	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/entity"
	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/store"
)

const goodInvoice = `INVOICE
# 58201
East Repair Inc.
Date: Nov 22 2019
Wireless Mouse  25.00
Total: 25.00`

// textByName serves canned text keyed by the document's first bytes.
type textByName struct{}

func (textByName) ProduceText(_ context.Context, doc entity.RawDocument) (engine.Source, error) {
	switch string(doc.Bytes) {
	case "good", "good-copy":
		return engine.Source{Text: goodInvoice, Origin: "stub"}, nil
	case "junk":
		return engine.Source{Text: "nothing here", Origin: "stub"}, nil
	default:
		return engine.Source{}, errors.New("no text")
	}
}

type testDirs struct {
	incoming, processed, failed string
}

func newTestService(t *testing.T, st store.Store) (*Service, testDirs) {
	t.Helper()
	root := t.TempDir()
	dirs := testDirs{
		incoming:  filepath.Join(root, "incoming"),
		processed: filepath.Join(root, "processed"),
		failed:    filepath.Join(root, "failed"),
	}
	require.NoError(t, os.MkdirAll(dirs.incoming, 0o755))

	eng := engine.New(textByName{}, engine.NewHashSet())
	cfg := common.IngestConfig{
		IncomingDir:  dirs.incoming,
		ProcessedDir: dirs.processed,
		FailedDir:    dirs.failed,
	}
	return NewService(eng, st, nil, cfg, nil), dirs
}

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProcessPathAccepted(t *testing.T) {
	st := store.NewMemoryStore()
	svc, dirs := newTestService(t, st)
	path := writeDoc(t, dirs.incoming, "inv.pdf", "good")

	require.NoError(t, svc.ProcessPath(context.Background(), path))

	recs, err := st.ListRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "58201", recs[0].InvoiceNumber)

	assert.NoFileExists(t, path)
	assert.FileExists(t, filepath.Join(dirs.processed, "inv.pdf"))
}

func TestProcessPathDuplicate(t *testing.T) {
	st := store.NewMemoryStore()
	svc, dirs := newTestService(t, st)

	first := writeDoc(t, dirs.incoming, "a.pdf", "good")
	second := writeDoc(t, dirs.incoming, "b.pdf", "good")

	require.NoError(t, svc.ProcessPath(context.Background(), first))
	require.NoError(t, svc.ProcessPath(context.Background(), second))

	recs, err := st.ListRecords(context.Background())
	require.NoError(t, err)
	assert.Len(t, recs, 1, "identical bytes are stored once")

	// Duplicates are routed to processed, same as accepted files.
	assert.FileExists(t, filepath.Join(dirs.processed, "b.pdf"))
}

func TestProcessPathUnrecoverable(t *testing.T) {
	st := store.NewMemoryStore()
	svc, dirs := newTestService(t, st)
	path := writeDoc(t, dirs.incoming, "junk.pdf", "junk")

	require.NoError(t, svc.ProcessPath(context.Background(), path))

	recs, err := st.ListRecords(context.Background())
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.FileExists(t, filepath.Join(dirs.failed, "junk.pdf"))
}

func TestProcessPathUnsupportedExtension(t *testing.T) {
	svc, dirs := newTestService(t, store.NewMemoryStore())
	path := writeDoc(t, dirs.incoming, "notes.txt", "good")

	err := svc.ProcessPath(context.Background(), path)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
	assert.FileExists(t, path, "unsupported files stay put")
}

// failingStore rejects every append.
type failingStore struct{ store.Store }

func (failingStore) Append(context.Context, *entity.InvoiceRecord) error {
	return errors.New("disk full")
}

func TestProcessPathStoreFailureRollsBackHash(t *testing.T) {
	svc, dirs := newTestService(t, failingStore{store.NewMemoryStore()})
	path := writeDoc(t, dirs.incoming, "inv.pdf", "good")

	err := svc.ProcessPath(context.Background(), path)
	require.Error(t, err)
	assert.FileExists(t, path, "file stays in incoming for a retry")

	// The retry must not be treated as a duplicate.
	assert.Equal(t, 0, svcHashes(svc).Len())
}

func svcHashes(s *Service) *engine.HashSet {
	return s.engine.Hashes()
}

func TestProcessDirectory(t *testing.T) {
	st := store.NewMemoryStore()
	svc, dirs := newTestService(t, st)

	writeDoc(t, dirs.incoming, "a.pdf", "good")
	writeDoc(t, dirs.incoming, "b.pdf", "good-copy") // same text, different bytes
	writeDoc(t, dirs.incoming, "junk.png", "junk")
	writeDoc(t, dirs.incoming, "skip.txt", "ignored")
	writeDoc(t, dirs.incoming, ".hidden.pdf", "good")

	stats, err := svc.ProcessDirectory(context.Background(), dirs.incoming)
	require.NoError(t, err)

	assert.Equal(t, uint32(3), stats.Matched)
	assert.Equal(t, uint32(2), stats.Accepted)
	assert.Equal(t, uint32(0), stats.Duplicates)
	assert.Equal(t, uint32(1), stats.Failed)

	recs, err := st.ListRecords(context.Background())
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestProcessDirectoryEmptyRoot(t *testing.T) {
	svc, _ := newTestService(t, store.NewMemoryStore())
	_, err := svc.ProcessDirectory(context.Background(), "   ")
	assert.Error(t, err)
}
