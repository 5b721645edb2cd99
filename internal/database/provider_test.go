package database

import (
	"context"
	"testing"
)

func TestProvider_NotInitialized(t *testing.T) {
	ResetForTesting()
	t.Cleanup(ResetForTesting)

	if IsInitialized() || HasLibrary() {
		t.Fatal("expected empty registry")
	}
	if _, err := GetProjectWriter(context.Background()); err == nil {
		t.Error("expected error without a registered backend")
	}
	if _, err := GetProjectReader(context.Background()); err == nil {
		t.Error("expected error without a registered backend")
	}
	if _, err := GetLibraryReader(context.Background()); err == nil {
		t.Error("expected error without a registered library")
	}
}

type stubLibrary struct{ LibraryReader }

func TestProvider_Register(t *testing.T) {
	ResetForTesting()
	t.Cleanup(ResetForTesting)

	RegisterPostgresBackend(nil)
	if !IsInitialized() {
		t.Fatal("expected backend marked initialized")
	}
	if _, err := GetProjectWriter(context.Background()); err == nil {
		t.Error("expected error for a nil constructor")
	}

	RegisterLibraryReader(func() LibraryReader { return stubLibrary{} })
	r, err := GetLibraryReader(context.Background())
	if err != nil || r == nil {
		t.Errorf("expected registered library reader, got %v, %v", r, err)
	}
}
