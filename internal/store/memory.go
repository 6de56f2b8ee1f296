package store

import (
	"context"
	"sync"

	"github.com/Anooshakhalid/smart-invoice-expense-automation-system/internal/entity"
)

// MemoryStore keeps records in memory, for tests and the memory driver.
type MemoryStore struct {
	mu   sync.Mutex
	recs []*entity.InvoiceRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, rec *entity.InvoiceRecord) error {
	if err := ValidateRecord(rec); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs = append(s.recs, rec)
	return nil
}

func (s *MemoryStore) ListRecords(_ context.Context) ([]*entity.InvoiceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.InvoiceRecord, len(s.recs))
	copy(out, s.recs)
	return out, nil
}

func (s *MemoryStore) KnownHashes(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hashes := make([]string, 0, len(s.recs))
	for _, r := range s.recs {
		hashes = append(hashes, r.SourceHash)
	}
	return hashes, nil
}

func (s *MemoryStore) Close() error { return nil }
