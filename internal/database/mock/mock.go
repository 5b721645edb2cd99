// Package mock provides mock implementations of database interfaces for testing.
package mock

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/kozaktomas/album-editor/internal/album"
	"github.com/kozaktomas/album-editor/internal/database"
	"github.com/kozaktomas/album-editor/internal/editor"
)

type storedProject struct {
	doc       *editor.Document
	createdAt time.Time
	updatedAt time.Time
}

// MockProjectWriter is a mock implementation of database.ProjectWriter
type MockProjectWriter struct {
	mu       sync.RWMutex
	projects map[string]*storedProject
	now      func() time.Time

	// Error injection
	GetProjectError    error
	ListProjectsError  error
	SaveProjectError   error
	DeleteProjectError error
}

// NewMockProjectWriter creates a new mock project writer
func NewMockProjectWriter() *MockProjectWriter {
	return &MockProjectWriter{
		projects: make(map[string]*storedProject),
		now:      time.Now,
	}
}

// copyDocument drops history and deep-copies pages, like a round trip
// through project storage would.
func copyDocument(doc *editor.Document) *editor.Document {
	c := *doc
	c.History = nil
	c.Selection = slices.Clone(doc.Selection)
	c.Assets = make([]album.Asset, len(doc.Assets))
	for i, a := range doc.Assets {
		a.Used = false
		c.Assets[i] = a
	}
	c.Pages = make([]*album.Page, 0, len(doc.Pages))
	for _, p := range doc.Pages {
		c.Pages = append(c.Pages, p.Clone())
	}
	return &c
}

// SaveProject stores a copy of doc
func (m *MockProjectWriter) SaveProject(ctx context.Context, doc *editor.Document) error {
	if m.SaveProjectError != nil {
		return m.SaveProjectError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	if existing, ok := m.projects[doc.ID]; ok {
		existing.doc = copyDocument(doc)
		existing.updatedAt = now
		return nil
	}
	m.projects[doc.ID] = &storedProject{doc: copyDocument(doc), createdAt: now, updatedAt: now}
	return nil
}

// GetProject returns a copy of the stored document, or nil
func (m *MockProjectWriter) GetProject(ctx context.Context, id string) (*editor.Document, error) {
	if m.GetProjectError != nil {
		return nil, m.GetProjectError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.projects[id]
	if !ok {
		return nil, nil
	}
	return copyDocument(p.doc), nil
}

// ListProjects returns summaries, most recently updated first
func (m *MockProjectWriter) ListProjects(ctx context.Context) ([]database.ProjectSummary, error) {
	if m.ListProjectsError != nil {
		return nil, m.ListProjectsError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]database.ProjectSummary, 0, len(m.projects))
	for _, p := range m.projects {
		result = append(result, database.ProjectSummary{
			ID:         p.doc.ID,
			Name:       p.doc.Name,
			Size:       p.doc.Size,
			PageCount:  len(p.doc.Pages),
			AssetCount: len(p.doc.Assets),
			CreatedAt:  p.createdAt,
			UpdatedAt:  p.updatedAt,
		})
	}
	slices.SortFunc(result, func(a, b database.ProjectSummary) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return result, nil
}

// DeleteProject removes a project
func (m *MockProjectWriter) DeleteProject(ctx context.Context, id string) error {
	if m.DeleteProjectError != nil {
		return m.DeleteProjectError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.projects, id)
	return nil
}

// Count returns the number of stored projects
func (m *MockProjectWriter) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.projects)
}

// MockLibraryReader is a mock implementation of database.LibraryReader
type MockLibraryReader struct {
	mu     sync.RWMutex
	photos []database.LibraryPhoto
	albums map[string][]string

	// Error injection
	ListPhotosError  error
	CountPhotosError error
}

// NewMockLibraryReader creates a new mock library reader
func NewMockLibraryReader() *MockLibraryReader {
	return &MockLibraryReader{albums: make(map[string][]string)}
}

// AddPhotos adds photos to the library, optionally into an album
func (m *MockLibraryReader) AddPhotos(albumUID string, photos ...database.LibraryPhoto) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range photos {
		m.photos = append(m.photos, p)
		if albumUID != "" {
			m.albums[albumUID] = append(m.albums[albumUID], p.UID)
		}
	}
}

func (m *MockLibraryReader) filter(filter database.LibraryFilter) []database.LibraryPhoto {
	var result []database.LibraryPhoto
	for _, p := range m.photos {
		if filter.AlbumUID != "" && !slices.Contains(m.albums[filter.AlbumUID], p.UID) {
			continue
		}
		result = append(result, p)
	}
	return result
}

// ListPhotos returns photos in insertion order, honoring limit and offset
func (m *MockLibraryReader) ListPhotos(ctx context.Context, filter database.LibraryFilter) ([]database.LibraryPhoto, error) {
	if m.ListPhotosError != nil {
		return nil, m.ListPhotosError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := m.filter(filter)
	start := min(max(filter.Offset, 0), len(result))
	result = result[start:]
	if filter.Limit > 0 && filter.Limit < len(result) {
		result = result[:filter.Limit]
	}
	return result, nil
}

// CountPhotos returns the number of matching photos
func (m *MockLibraryReader) CountPhotos(ctx context.Context, filter database.LibraryFilter) (int, error) {
	if m.CountPhotosError != nil {
		return 0, m.CountPhotosError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.filter(filter)), nil
}

var (
	_ database.ProjectWriter = (*MockProjectWriter)(nil)
	_ database.LibraryReader = (*MockLibraryReader)(nil)
)
