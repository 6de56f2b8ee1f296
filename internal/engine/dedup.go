package engine

import "sync"

// HashSet is the shared duplicate-suppression state: the set of content
// hashes already accepted. It is the only mutable state shared between
// concurrent engine invocations, so every mutation is serialized here.
// Tests instantiate isolated sets; nothing in this package is process-wide.
type HashSet struct {
	mu   sync.RWMutex
	seen map[string]struct{}
}

// NewHashSet builds a set, optionally seeded with known hashes (typically
// loaded from the store at startup).
func NewHashSet(seed ...string) *HashSet {
	s := &HashSet{seen: make(map[string]struct{}, len(seed))}
	for _, h := range seed {
		s.seen[h] = struct{}{}
	}
	return s
}

func (s *HashSet) Contains(hash string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.seen[hash]
	return ok
}

// Register records a hash. It reports false if the hash was already present.
func (s *HashSet) Register(hash string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[hash]; ok {
		return false
	}
	s.seen[hash] = struct{}{}
	return true
}

// Remove deletes a hash, used to roll back a registration when persisting
// the accepted record fails.
func (s *HashSet) Remove(hash string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.seen, hash)
}

// Snapshot returns a copy of the current hash set.
func (s *HashSet) Snapshot() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.seen))
	for h := range s.seen {
		out = append(out, h)
	}
	return out
}

func (s *HashSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.seen)
}
