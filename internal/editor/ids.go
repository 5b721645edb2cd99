package editor

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator creates identifiers for pages, items and imported assets.
type IDGenerator interface {
	NewID(prefix string) string
}

// UUIDGenerator generates random UUIDs prefixed with the entity kind.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// SequenceIDs generates predictable IDs ("photo-1", "photo-2", ...), one
// counter per prefix. Useful in tests.
type SequenceIDs struct {
	mu       sync.Mutex
	counters map[string]int
}

func (s *SequenceIDs) NewID(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.counters == nil {
		s.counters = make(map[string]int)
	}
	s.counters[prefix]++
	return fmt.Sprintf("%s-%d", prefix, s.counters[prefix])
}
