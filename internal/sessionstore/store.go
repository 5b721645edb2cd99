// Package sessionstore keeps live editor sessions between requests.
//
// A live session is stored as an editor document including its undo and redo
// stacks, so a restart (or another instance sharing Redis) resumes editing
// with history intact. Project storage in Postgres is separate and never
// carries history.
//
// Two backends exist:
//   - MemoryStore: a single process, for development and tests
//   - RedisStore: shared between instances, entries expire after a TTL
package sessionstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kozaktomas/album-editor/internal/editor"
)

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 24 * time.Hour

// Store is the interface for live session backends.
type Store interface {
	// Get returns the stored document, or nil, nil if there is none.
	Get(ctx context.Context, id string) (*editor.Document, error)

	// Put stores the document under doc.ID, resetting its expiry.
	Put(ctx context.Context, doc *editor.Document) error

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// Cleaner is implemented by stores that drop expired entries only when
// asked. Redis expires keys on its own.
type Cleaner interface {
	Cleanup(ctx context.Context) error
}

func encode(doc *editor.Document) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}
	return data, nil
}

func decode(data []byte) (*editor.Document, error) {
	var doc editor.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	return &doc, nil
}
