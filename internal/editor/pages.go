package editor

import (
	"fmt"
	"slices"

	"github.com/kozaktomas/album-editor/internal/album"
)

// AddPage inserts an empty page after the current one and makes it current.
func (s *Session) AddPage() (*album.Page, error) {
	page := s.newPage()
	err := s.mutate("add-page", func() error {
		s.pages = slices.Insert(s.pages, s.current+1, page)
		s.current++
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.selection = nil
	s.drag = nil
	return page.Clone(), nil
}

// RemovePage deletes a page and the items on it. The last page cannot be
// removed.
func (s *Session) RemovePage(pageID string) error {
	idx, _, err := s.page(pageID)
	if err != nil {
		return fmt.Errorf("remove page %s: %w", pageID, err)
	}
	if len(s.pages) == 1 {
		return fmt.Errorf("remove page %s: %w", pageID, ErrLastPage)
	}

	err = s.mutate("remove-page", func() error {
		s.pages = slices.Delete(s.pages, idx, idx+1)
		if s.current >= idx && s.current > 0 {
			s.current--
		}
		s.recomputeUsage()
		return nil
	})
	if err != nil {
		return err
	}
	s.pruneSelection()
	s.drag = nil
	return nil
}

// SetCurrentPage switches the page being edited. Navigation is not an edit
// and is not recorded in history.
func (s *Session) SetCurrentPage(index int) error {
	if index < 0 || index >= len(s.pages) {
		return fmt.Errorf("page index %d: %w", index, ErrPageNotFound)
	}
	if index != s.current {
		s.current = index
		s.selection = nil
		s.drag = nil
	}
	return nil
}

// Undo restores the state before the latest command. It reports whether
// anything was undone.
func (s *Session) Undo() bool {
	prev, ok := s.history.Undo(s.snapshot())
	if !ok {
		return false
	}
	s.restore(prev)
	s.logger.Debug("undo", "page", s.current)
	return true
}

// Redo re-applies the latest undone command.
func (s *Session) Redo() bool {
	next, ok := s.history.Redo(s.snapshot())
	if !ok {
		return false
	}
	s.restore(next)
	s.logger.Debug("redo", "page", s.current)
	return true
}
