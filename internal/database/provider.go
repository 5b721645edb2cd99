package database

import (
	"context"
	"fmt"
)

var (
	postgresProjectWriter func() ProjectWriter
	libraryReader         func() LibraryReader
	postgresInitialized   bool
)

// RegisterPostgresBackend registers PostgreSQL repository constructors.
// This is called by the postgres package to avoid import cycles.
func RegisterPostgresBackend(projectWriter func() ProjectWriter) {
	postgresProjectWriter = projectWriter
	postgresInitialized = true
}

// RegisterLibraryReader registers the photo library constructor.
func RegisterLibraryReader(reader func() LibraryReader) {
	libraryReader = reader
}

// IsInitialized returns whether the PostgreSQL backend has been initialized.
func IsInitialized() bool {
	return postgresInitialized
}

// HasLibrary returns whether a photo library reader is registered.
func HasLibrary() bool {
	return libraryReader != nil
}

// ResetForTesting clears all registered backends.
func ResetForTesting() {
	postgresProjectWriter = nil
	libraryReader = nil
	postgresInitialized = false
}

// GetProjectWriter returns a ProjectWriter from the PostgreSQL backend
func GetProjectWriter(ctx context.Context) (ProjectWriter, error) {
	if !postgresInitialized {
		return nil, fmt.Errorf("PostgreSQL backend not initialized: DATABASE_URL is required")
	}
	if postgresProjectWriter == nil {
		return nil, fmt.Errorf("PostgreSQL project writer not registered")
	}
	return postgresProjectWriter(), nil
}

// GetProjectReader returns a ProjectReader from the PostgreSQL backend
func GetProjectReader(ctx context.Context) (ProjectReader, error) {
	return GetProjectWriter(ctx)
}

// GetLibraryReader returns the registered photo library reader
func GetLibraryReader(ctx context.Context) (LibraryReader, error) {
	if libraryReader == nil {
		return nil, fmt.Errorf("photo library not configured: PHOTOPRISM_DATABASE_URL is required")
	}
	return libraryReader(), nil
}
