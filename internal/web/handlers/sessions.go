package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kozaktomas/album-editor/internal/album"
	"github.com/kozaktomas/album-editor/internal/config"
	"github.com/kozaktomas/album-editor/internal/database"
	"github.com/kozaktomas/album-editor/internal/editor"
	"github.com/kozaktomas/album-editor/internal/sessionstore"
)

// errProjectNotFound is returned when neither the session store nor project
// storage knows a project.
var errProjectNotFound = errors.New("project not found")

// Sessions keeps open editor sessions in memory. Each session is guarded by
// its own mutex, so commands on one project run one at a time while
// different projects proceed in parallel. Every successful command is
// mirrored to the session store.
type Sessions struct {
	config *config.Config
	store  sessionstore.Store
	logger *log.Logger
	ids    editor.IDGenerator
	now    func() time.Time

	mu   sync.Mutex
	open map[string]*liveSession
}

type liveSession struct {
	mu       sync.Mutex
	session  *editor.Session
	lastUsed time.Time
	// evicted is set under mu when the entry leaves the registry. A caller
	// that was waiting for mu must look the project up again.
	evicted bool
}

// NewSessions creates a session registry backed by store.
func NewSessions(cfg *config.Config, store sessionstore.Store, logger *log.Logger) *Sessions {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Sessions{
		config: cfg,
		store:  store,
		logger: logger,
		ids:    editor.UUIDGenerator{},
		now:    time.Now,
		open:   make(map[string]*liveSession),
	}
}

// options builds session options from the editor configuration.
func (m *Sessions) options() editor.Options {
	ec := m.config.Editor
	settings := editor.DefaultSettings()
	if ec.DPI > 0 {
		settings.DPI = ec.DPI
	}
	settings.SafeMm = ec.SafeMm
	if ec.GridSize > 0 {
		settings.GridSize = ec.GridSize
	}
	if ec.MagnetTolerance > 0 {
		settings.MagnetTolerance = ec.MagnetTolerance
	}
	bleed := ec.BleedMm
	return editor.Options{
		BleedMm:  &bleed,
		Settings: &settings,
		Strict:   ec.StrictPlacement,
		IDs:      m.ids,
		Logger:   m.logger,
	}
}

// Create opens a new project session and stores it.
func (m *Sessions) Create(ctx context.Context, name string, size album.Size) (*editor.Session, error) {
	opts := m.options()
	opts.Name = name
	opts.Size = size
	s := editor.New("", opts)

	if err := m.store.Put(ctx, s.Document(true)); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	m.register(s)
	m.logger.Info("project created", "project", s.ID(), "name", sanitizeForLog(name))
	return s, nil
}

// Adopt registers a restored document as an open session, replacing any
// open session with the same ID.
func (m *Sessions) Adopt(ctx context.Context, doc *editor.Document) (*editor.Session, error) {
	s, err := editor.Restore(doc, m.options())
	if err != nil {
		return nil, err
	}
	if err := m.store.Put(ctx, s.Document(true)); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	m.register(s)
	return s, nil
}

func (m *Sessions) register(s *editor.Session) {
	m.mu.Lock()
	old := m.open[s.ID()]
	m.open[s.ID()] = &liveSession{session: s, lastUsed: m.now()}
	m.mu.Unlock()
	if old != nil {
		old.retire()
	}
}

// retire marks an entry that has left the registry.
func (l *liveSession) retire() {
	l.mu.Lock()
	l.evicted = true
	l.mu.Unlock()
}

// acquire returns the locked live session for id, loading it from the
// session store or from project storage on first use.
func (m *Sessions) acquire(ctx context.Context, id string) (*liveSession, error) {
	for {
		live, err := m.tryAcquire(ctx, id)
		if live != nil || err != nil {
			return live, err
		}
	}
}

// tryAcquire returns nil, nil when the entry was evicted while waiting.
func (m *Sessions) tryAcquire(ctx context.Context, id string) (*liveSession, error) {
	m.mu.Lock()
	live, ok := m.open[id]
	if !ok {
		live = &liveSession{}
		m.open[id] = live
	}
	m.mu.Unlock()

	live.mu.Lock()
	if live.evicted {
		live.mu.Unlock()
		return nil, nil
	}
	live.lastUsed = m.now()
	if live.session != nil {
		return live, nil
	}

	s, err := m.load(ctx, id)
	if err != nil || s == nil {
		live.evicted = true
		live.mu.Unlock()
		m.mu.Lock()
		if m.open[id] == live {
			delete(m.open, id)
		}
		m.mu.Unlock()
		if err == nil {
			err = errProjectNotFound
		}
		return nil, err
	}
	live.session = s
	return live, nil
}

// load restores a session from the store, falling back to saved projects.
func (m *Sessions) load(ctx context.Context, id string) (*editor.Session, error) {
	doc, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if doc == nil && database.IsInitialized() {
		reader, err := database.GetProjectReader(ctx)
		if err != nil {
			return nil, err
		}
		if doc, err = reader.GetProject(ctx, id); err != nil {
			return nil, fmt.Errorf("load project: %w", err)
		}
		if doc != nil {
			m.logger.Debug("project opened from storage", "project", id)
		}
	}
	if doc == nil {
		return nil, nil
	}
	return editor.Restore(doc, m.options())
}

// Update runs fn on the session and stores the result when fn succeeds.
func (m *Sessions) Update(ctx context.Context, id string, fn func(*editor.Session) error) error {
	live, err := m.acquire(ctx, id)
	if err != nil {
		return err
	}
	defer live.mu.Unlock()

	if err := fn(live.session); err != nil {
		return err
	}
	if err := m.store.Put(ctx, live.session.Document(true)); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// View runs fn on the session without storing it.
func (m *Sessions) View(ctx context.Context, id string, fn func(*editor.Session) error) error {
	live, err := m.acquire(ctx, id)
	if err != nil {
		return err
	}
	defer live.mu.Unlock()
	return fn(live.session)
}

// Forget closes a session and removes it from the store.
func (m *Sessions) Forget(ctx context.Context, id string) error {
	m.mu.Lock()
	live, ok := m.open[id]
	delete(m.open, id)
	m.mu.Unlock()
	if ok {
		live.retire()
	}
	if err := m.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// EvictIdle closes sessions not used for longer than maxIdle. Their state
// stays in the session store, so the next request reopens them. Sessions
// busy with a command are skipped. It returns the number evicted.
func (m *Sessions) EvictIdle(maxIdle time.Duration) int {
	cutoff := m.now().Add(-maxIdle)
	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for id, live := range m.open {
		if !live.mu.TryLock() {
			continue
		}
		if live.lastUsed.Before(cutoff) {
			live.evicted = true
			delete(m.open, id)
			evicted++
		}
		live.mu.Unlock()
	}
	if evicted > 0 {
		m.logger.Debug("idle sessions closed", "count", evicted, "open", len(m.open))
	}
	return evicted
}

// Len returns the number of open sessions.
func (m *Sessions) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.open)
}
