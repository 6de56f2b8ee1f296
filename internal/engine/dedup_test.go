package engine

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashSetRegister(t *testing.T) {
	s := NewHashSet()
	assert.True(t, s.Register("a"))
	assert.False(t, s.Register("a"), "second registration must report a duplicate")
	assert.True(t, s.Contains("a"))
	assert.False(t, s.Contains("b"))
	assert.Equal(t, 1, s.Len())
}

func TestHashSetSeed(t *testing.T) {
	s := NewHashSet("x", "y")
	assert.True(t, s.Contains("x"))
	assert.False(t, s.Register("y"))
	assert.Equal(t, 2, s.Len())
}

func TestHashSetRemove(t *testing.T) {
	s := NewHashSet("x")
	s.Remove("x")
	assert.False(t, s.Contains("x"))
	assert.True(t, s.Register("x"), "a removed hash registers fresh")
	s.Remove("never-registered") // no-op
}

func TestHashSetSnapshot(t *testing.T) {
	s := NewHashSet("a", "b")
	snap := s.Snapshot()
	assert.ElementsMatch(t, []string{"a", "b"}, snap)
}

func TestHashSetConcurrentRegister(t *testing.T) {
	s := NewHashSet()
	const workers = 16

	var wg sync.WaitGroup
	wins := make(chan string, workers*10)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				if s.Register(fmt.Sprintf("hash-%d", i)) {
					wins <- fmt.Sprintf("hash-%d", i)
				}
			}
		}()
	}
	wg.Wait()
	close(wins)

	// Exactly one goroutine wins each hash.
	assert.Equal(t, 10, len(wins))
	assert.Equal(t, 10, s.Len())
}
