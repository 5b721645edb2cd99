package database

import (
	"context"

	"github.com/kozaktomas/album-editor/internal/editor"
)

// ProjectReader provides read-only access to saved album projects
type ProjectReader interface {
	// GetProject loads a project document, returns nil if not found.
	// Stored documents never carry undo history.
	GetProject(ctx context.Context, id string) (*editor.Document, error)
	// ListProjects returns all projects, most recently updated first
	ListProjects(ctx context.Context) ([]ProjectSummary, error)
}

// ProjectWriter provides write access to saved album projects
type ProjectWriter interface {
	ProjectReader

	// SaveProject replaces the stored project with doc (pages and assets included)
	SaveProject(ctx context.Context, doc *editor.Document) error
	// DeleteProject removes a project with its pages and assets
	DeleteProject(ctx context.Context, id string) error
}

// LibraryReader lists photos of an external photo library
type LibraryReader interface {
	// ListPhotos returns photos with a known primary file, newest first
	ListPhotos(ctx context.Context, filter LibraryFilter) ([]LibraryPhoto, error)
	// CountPhotos returns the number of photos matching the filter, ignoring limit and offset
	CountPhotos(ctx context.Context, filter LibraryFilter) (int, error)
}
