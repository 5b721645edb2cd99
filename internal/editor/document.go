package editor

import (
	"fmt"

	"github.com/kozaktomas/album-editor/internal/album"
	"github.com/kozaktomas/album-editor/internal/history"
)

// Document is the persisted form of a session. History is optional: stores
// that keep live sessions save it, project storage does not.
type Document struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Size        album.Size    `json:"size"`
	BleedMm     float64       `json:"bleedMm"`
	Settings    Settings      `json:"settings"`
	Pages       []*album.Page `json:"pages"`
	Assets      []album.Asset `json:"assets"`
	CurrentPage int           `json:"currentPage"`
	Selection   []string      `json:"selection,omitempty"`
	History     *HistoryState `json:"history,omitempty"`
}

// HistoryState holds the undo and redo stacks, oldest first.
type HistoryState struct {
	Past   []history.Snapshot `json:"past"`
	Future []history.Snapshot `json:"future"`
}

// Document returns a deep copy of the session, optionally with its history.
func (s *Session) Document(withHistory bool) *Document {
	doc := &Document{
		ID:          s.id,
		Name:        s.name,
		Size:        s.size,
		BleedMm:     s.bleedMm,
		Settings:    s.settings,
		Pages:       s.Pages(),
		Assets:      s.Assets(),
		CurrentPage: s.current,
		Selection:   s.Selection(),
	}
	if withHistory {
		past, future := s.history.Stacks()
		doc.History = &HistoryState{Past: past, Future: future}
	}
	return doc
}

// Restore rebuilds a session from a document. Asset usage is recomputed
// rather than trusted.
func Restore(doc *Document, opts Options) (*Session, error) {
	if doc == nil {
		return nil, fmt.Errorf("restore session: %w", ErrInvalidValue)
	}
	if doc.Size.WidthCm > 0 && doc.Size.HeightCm > 0 {
		opts.Size = doc.Size
	}
	bleed := doc.BleedMm
	opts.BleedMm = &bleed
	settings := doc.Settings
	opts.Settings = &settings
	if doc.Name != "" {
		opts.Name = doc.Name
	}

	s := newSession(doc.ID, opts)
	for _, p := range doc.Pages {
		if p == nil {
			continue
		}
		s.pages = append(s.pages, p.Clone())
	}
	if len(s.pages) == 0 {
		s.pages = []*album.Page{s.newPage()}
	}
	s.assets = make([]album.Asset, len(doc.Assets))
	copy(s.assets, doc.Assets)
	s.recomputeUsage()

	s.current = max(0, min(doc.CurrentPage, len(s.pages)-1))
	s.selection = append([]string(nil), doc.Selection...)
	s.pruneSelection()

	if doc.History != nil {
		s.history.Restore(doc.History.Past, doc.History.Future)
	}
	return s, nil
}
