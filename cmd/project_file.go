package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/kozaktomas/album-editor/internal/editor"
)

// readProject restores a session from an exported project file.
func readProject(path string) (*editor.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}
	var doc editor.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse project %s: %w", path, err)
	}
	return editor.Restore(&doc, editor.Options{Logger: logger})
}

// writeJSON writes v as indented JSON to path, or to stdout when path is empty.
func writeJSON(path string, v any) error {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
