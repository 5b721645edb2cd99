// Package editor holds the editable state of one album project and exposes
// every edit as a named command on Session.
//
// Commands run synchronously and are not safe for concurrent use; callers
// serialize access to a Session. Each committed edit records the previous
// state in the history manager so it can be undone.
package editor

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/kozaktomas/album-editor/internal/album"
	"github.com/kozaktomas/album-editor/internal/constants"
	"github.com/kozaktomas/album-editor/internal/geometry"
	"github.com/kozaktomas/album-editor/internal/history"
	"github.com/kozaktomas/album-editor/internal/placement"
	"github.com/kozaktomas/album-editor/internal/snap"
	"github.com/kozaktomas/album-editor/internal/units"
)

// Settings are view and interaction preferences. They are not part of the
// undo history.
type Settings struct {
	DPI             float64 `json:"dpi"`
	SafeMm          float64 `json:"safeMm"`
	Zoom            float64 `json:"zoom"`
	Grid            bool    `json:"grid"`
	GridSize        float64 `json:"gridSize"`
	Guides          bool    `json:"guides"`
	Magnet          bool    `json:"magnet"`
	MagnetTolerance float64 `json:"magnetTolerance"`
}

// DefaultSettings returns the settings of a new session.
func DefaultSettings() Settings {
	return Settings{
		DPI:             constants.DefaultDPI,
		SafeMm:          constants.DefaultSafeMm,
		Zoom:            constants.DefaultZoom,
		GridSize:        constants.DefaultGridSize,
		Guides:          true,
		Magnet:          true,
		MagnetTolerance: constants.DefaultMagnetTolerance,
	}
}

// DefaultSize returns the page size of a new project.
func DefaultSize() album.Size {
	return album.Size{
		WidthCm:  constants.DefaultPageWidthCm,
		HeightCm: constants.DefaultPageHeightCm,
		Label:    "20 x 20 cm",
	}
}

// Options configure a new Session. Zero values fall back to defaults.
type Options struct {
	Name         string
	Size         album.Size
	BleedMm      *float64
	Settings     *Settings
	Strict       bool
	HistoryLimit int
	IDs          IDGenerator
	Logger       *log.Logger
}

// Session is the live editing state of one project.
type Session struct {
	id       string
	name     string
	size     album.Size
	bleedMm  float64
	settings Settings

	pages     []*album.Page
	assets    []album.Asset
	current   int
	selection []string

	history *history.Manager
	planner *placement.Planner
	ids     IDGenerator
	logger  *log.Logger

	drag *dragState
}

// New creates a session with a single empty page.
func New(id string, opts Options) *Session {
	s := newSession(id, opts)
	s.pages = []*album.Page{s.newPage()}
	return s
}

func newSession(id string, opts Options) *Session {
	if opts.IDs == nil {
		opts.IDs = UUIDGenerator{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Size.WidthCm <= 0 || opts.Size.HeightCm <= 0 {
		opts.Size = DefaultSize()
	}
	settings := DefaultSettings()
	if opts.Settings != nil {
		settings = sanitizeSettings(*opts.Settings)
	}
	bleed := constants.DefaultBleedMm
	if opts.BleedMm != nil && album.IsFinite(*opts.BleedMm) && *opts.BleedMm >= 0 {
		bleed = *opts.BleedMm
	}
	mode := placement.ModePermissive
	if opts.Strict {
		mode = placement.ModeStrict
	}
	if id == "" {
		id = opts.IDs.NewID("project")
	}

	return &Session{
		id:       id,
		name:     opts.Name,
		size:     opts.Size,
		bleedMm:  bleed,
		settings: settings,
		history:  history.NewManager(opts.HistoryLimit),
		planner:  placement.NewPlanner(mode),
		ids:      opts.IDs,
		logger:   opts.Logger.With("project", id),
	}
}

func sanitizeSettings(in Settings) Settings {
	def := DefaultSettings()
	if in.DPI <= 0 || !album.IsFinite(in.DPI) {
		in.DPI = def.DPI
	}
	if in.SafeMm < 0 || !album.IsFinite(in.SafeMm) {
		in.SafeMm = def.SafeMm
	}
	if in.Zoom <= 0 || !album.IsFinite(in.Zoom) {
		in.Zoom = def.Zoom
	}
	if in.GridSize <= 0 || !album.IsFinite(in.GridSize) {
		in.GridSize = def.GridSize
	}
	if in.MagnetTolerance < 0 || !album.IsFinite(in.MagnetTolerance) {
		in.MagnetTolerance = def.MagnetTolerance
	}
	return in
}

// ID returns the project ID.
func (s *Session) ID() string { return s.id }

// Name returns the project name.
func (s *Session) Name() string { return s.name }

// Size returns the album page size.
func (s *Session) Size() album.Size { return s.size }

// BleedMm returns the bleed margin in millimetres.
func (s *Session) BleedMm() float64 { return s.bleedMm }

// Settings returns the view settings.
func (s *Session) Settings() Settings { return s.settings }

// CurrentPageIndex returns the index of the page being edited.
func (s *Session) CurrentPageIndex() int { return s.current }

// CurrentPage returns the page being edited. The page is live state; use
// State for a copy.
func (s *Session) CurrentPage() *album.Page { return s.pages[s.current] }

// Pages returns deep copies of all pages.
func (s *Session) Pages() []*album.Page {
	out := make([]*album.Page, len(s.pages))
	for i, p := range s.pages {
		out[i] = p.Clone()
	}
	return out
}

// Assets returns a copy of the asset catalog.
func (s *Session) Assets() []album.Asset {
	out := make([]album.Asset, len(s.assets))
	copy(out, s.assets)
	return out
}

// Selection returns the selected item IDs.
func (s *Session) Selection() []string {
	out := make([]string, len(s.selection))
	copy(out, s.selection)
	return out
}

// CanUndo reports whether Undo would change the state.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether Redo would change the state.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

func (s *Session) converter() units.Converter {
	return units.NewConverter(s.settings.DPI)
}

// WorkingArea returns the page rectangle inset by bleed on every side.
func (s *Session) WorkingArea() geometry.Rect {
	return s.converter().WorkingArea(s.size.WidthCm, s.size.HeightCm, s.bleedMm)
}

// SafeArea returns the area inside bleed and safe margins.
func (s *Session) SafeArea() geometry.Rect {
	return s.converter().SafeArea(s.size.WidthCm, s.size.HeightCm, s.bleedMm, s.settings.SafeMm)
}

// SpreadRect returns the full spread in pixels.
func (s *Session) SpreadRect() geometry.Rect {
	return s.converter().Spread(s.size.WidthCm, s.size.HeightCm)
}

// snapshot captures the state covered by undo history.
func (s *Session) snapshot() history.Snapshot {
	return history.Snapshot{
		Pages:       s.pages,
		Assets:      s.assets,
		CurrentPage: s.current,
		Size:        s.size,
		BleedMm:     s.bleedMm,
	}.Clone()
}

func (s *Session) restore(snap history.Snapshot) {
	snap = snap.Clone()
	s.pages = snap.Pages
	s.assets = snap.Assets
	s.size = snap.Size
	s.bleedMm = snap.BleedMm
	if len(s.pages) == 0 {
		s.pages = []*album.Page{s.newPage()}
	}
	s.current = max(0, min(snap.CurrentPage, len(s.pages)-1))
	s.pruneSelection()
	s.drag = nil
}

// errNoChange aborts a command that turned out to be a no-op. It is never
// returned to callers.
var errNoChange = errors.New("no change")

// mutate runs fn as one undoable command. When fn fails the state is rolled
// back and nothing is recorded.
func (s *Session) mutate(op string, fn func() error) error {
	before := s.snapshot()
	if err := fn(); err != nil {
		// A rolled back command leaves the page as it was, so a drag in
		// progress stays valid.
		drag := s.drag
		s.restore(before)
		s.drag = drag
		if errors.Is(err, errNoChange) {
			return nil
		}
		s.logger.Debug("command rejected", "op", op, "err", err)
		return err
	}
	s.history.Push(before)
	s.logger.Debug("command", "op", op, "page", s.current, "items", len(s.pages[s.current].Items))
	return nil
}

// recomputeUsage derives Asset.Used from every page.
func (s *Session) recomputeUsage() {
	used := make(map[string]bool)
	for _, p := range s.pages {
		for _, ph := range p.Photos() {
			used[ph.AssetID] = true
		}
	}
	for i := range s.assets {
		s.assets[i].Used = used[s.assets[i].ID]
	}
}

func (s *Session) asset(id string) (album.Asset, bool) {
	for _, a := range s.assets {
		if a.ID == id {
			return a, true
		}
	}
	return album.Asset{}, false
}

func (s *Session) page(id string) (int, *album.Page, error) {
	for i, p := range s.pages {
		if p.ID == id {
			return i, p, nil
		}
	}
	return -1, nil, ErrPageNotFound
}

func (s *Session) newPage() *album.Page {
	return &album.Page{ID: s.ids.NewID("page"), Background: constants.DefaultPageBackground}
}

// pruneSelection drops selected IDs that no longer exist on the current page.
func (s *Session) pruneSelection() {
	page := s.pages[s.current]
	kept := s.selection[:0]
	for _, id := range s.selection {
		if i, _ := page.Find(id); i >= 0 {
			kept = append(kept, id)
		}
	}
	s.selection = kept
}

// State is a read-only view of the session for rendering.
type State struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Size        album.Size    `json:"size"`
	BleedMm     float64       `json:"bleedMm"`
	Settings    Settings      `json:"settings"`
	Pages       []*album.Page `json:"pages"`
	Assets      []album.Asset `json:"assets"`
	CurrentPage int           `json:"currentPage"`
	Selection   []string      `json:"selection"`
	CanUndo     bool          `json:"canUndo"`
	CanRedo     bool          `json:"canRedo"`
	Spread      geometry.Rect `json:"spread"`
	WorkingArea geometry.Rect `json:"workingArea"`
	SafeArea    geometry.Rect `json:"safeArea"`
	Guides      *snap.Guides  `json:"guides,omitempty"`
}

// State returns a copy of the current state.
func (s *Session) State() State {
	st := State{
		ID:          s.id,
		Name:        s.name,
		Size:        s.size,
		BleedMm:     s.bleedMm,
		Settings:    s.settings,
		Pages:       s.Pages(),
		Assets:      s.Assets(),
		CurrentPage: s.current,
		Selection:   s.Selection(),
		CanUndo:     s.history.CanUndo(),
		CanRedo:     s.history.CanRedo(),
		Spread:      s.SpreadRect(),
		WorkingArea: s.WorkingArea(),
		SafeArea:    s.SafeArea(),
	}
	if s.drag != nil {
		if g := s.drag.gesture.Guides(); !g.Empty() {
			st.Guides = &g
		}
	}
	return st
}
