// Package history implements snapshot-based linear undo/redo.
package history

import (
	"github.com/kozaktomas/album-editor/internal/album"
	"github.com/kozaktomas/album-editor/internal/constants"
)

// Snapshot is a deep copy of the editable state of a project.
//
// Snapshots capture plain data only. Resources owned outside the editor
// (asset blobs behind Asset.URL) are not reference counted, so restoring a
// snapshot can bring back an asset whose blob was released since.
type Snapshot struct {
	Pages       []*album.Page `json:"pages"`
	Assets      []album.Asset `json:"assets"`
	CurrentPage int           `json:"currentPage"`
	Size        album.Size    `json:"size"`
	BleedMm     float64       `json:"bleedMm"`
}

// Clone returns a deep copy of s.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		CurrentPage: s.CurrentPage,
		Size:        s.Size,
		BleedMm:     s.BleedMm,
	}
	if s.Pages != nil {
		out.Pages = make([]*album.Page, len(s.Pages))
		for i, p := range s.Pages {
			out.Pages[i] = p.Clone()
		}
	}
	if s.Assets != nil {
		out.Assets = make([]album.Asset, len(s.Assets))
		copy(out.Assets, s.Assets)
	}
	return out
}

// Manager holds bounded past and future stacks.
type Manager struct {
	past   []Snapshot
	future []Snapshot
	limit  int
}

// NewManager creates a manager keeping at most limit snapshots per stack.
// A non-positive limit uses constants.HistoryLimit.
func NewManager(limit int) *Manager {
	if limit <= 0 {
		limit = constants.HistoryLimit
	}
	return &Manager{limit: limit}
}

// Push records current as the latest undo point and clears the redo chain.
func (m *Manager) Push(current Snapshot) {
	m.past = pushBounded(m.past, current.Clone(), m.limit)
	m.future = nil
}

// Undo pops the latest undo point and stores current for redo. It returns
// false when there is nothing to undo.
func (m *Manager) Undo(current Snapshot) (Snapshot, bool) {
	if len(m.past) == 0 {
		return Snapshot{}, false
	}
	prev := m.past[len(m.past)-1]
	m.past = m.past[:len(m.past)-1]
	m.future = pushBounded(m.future, current.Clone(), m.limit)
	return prev.Clone(), true
}

// Redo is the mirror of Undo.
func (m *Manager) Redo(current Snapshot) (Snapshot, bool) {
	if len(m.future) == 0 {
		return Snapshot{}, false
	}
	next := m.future[len(m.future)-1]
	m.future = m.future[:len(m.future)-1]
	m.past = pushBounded(m.past, current.Clone(), m.limit)
	return next.Clone(), true
}

// CanUndo reports whether Undo would succeed.
func (m *Manager) CanUndo() bool { return len(m.past) > 0 }

// CanRedo reports whether Redo would succeed.
func (m *Manager) CanRedo() bool { return len(m.future) > 0 }

// Len returns the sizes of the past and future stacks.
func (m *Manager) Len() (past, future int) {
	return len(m.past), len(m.future)
}

// Stacks returns copies of the past and future stacks, oldest first.
func (m *Manager) Stacks() (past, future []Snapshot) {
	return cloneAll(m.past), cloneAll(m.future)
}

// Restore replaces both stacks, keeping the newest snapshots when either
// exceeds the limit.
func (m *Manager) Restore(past, future []Snapshot) {
	m.Reset()
	for _, s := range past {
		m.past = pushBounded(m.past, s.Clone(), m.limit)
	}
	for _, s := range future {
		m.future = pushBounded(m.future, s.Clone(), m.limit)
	}
}

func cloneAll(stack []Snapshot) []Snapshot {
	out := make([]Snapshot, len(stack))
	for i, s := range stack {
		out[i] = s.Clone()
	}
	return out
}

// Reset drops both stacks.
func (m *Manager) Reset() {
	m.past = nil
	m.future = nil
}

func pushBounded(stack []Snapshot, s Snapshot, limit int) []Snapshot {
	stack = append(stack, s)
	if over := len(stack) - limit; over > 0 {
		// Copy down so the evicted snapshots can be collected.
		stack = append(stack[:0], stack[over:]...)
	}
	return stack
}
