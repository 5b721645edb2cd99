package editor

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/kozaktomas/album-editor/internal/album"
	"github.com/kozaktomas/album-editor/internal/geometry"
	"github.com/kozaktomas/album-editor/internal/layout"
)

func newTestSession(t *testing.T, opts Options) *Session {
	t.Helper()
	if opts.IDs == nil {
		opts.IDs = &SequenceIDs{}
	}
	return New("project-1", opts)
}

func sources(n int, w, h float64) []album.AssetSource {
	out := make([]album.AssetSource, n)
	for i := range out {
		out[i] = album.AssetSource{
			ID:     fmt.Sprintf("asset-%d", i+1),
			URL:    fmt.Sprintf("blob:asset-%d", i+1),
			Width:  w,
			Height: h,
		}
	}
	return out
}

func TestSession_HistoryRoundTrip(t *testing.T) {
	s := newTestSession(t, Options{})
	s.ImportAssets(sources(3, 3000, 2000))

	emptyPages := s.Pages()
	emptyAssets := s.Assets()

	for _, id := range []string{"asset-1", "asset-2", "asset-3"} {
		if _, err := s.PlaceAuto(id, 0); err != nil {
			t.Fatalf("place %s: %v", id, err)
		}
	}
	placedPages := s.Pages()
	placedAssets := s.Assets()
	if got := len(placedPages[0].Items); got != 3 {
		t.Fatalf("expected 3 items, got %d", got)
	}

	for i := range 3 {
		if !s.Undo() {
			t.Fatalf("undo %d failed", i+1)
		}
	}
	if !reflect.DeepEqual(s.Pages(), emptyPages) {
		t.Errorf("expected empty page after three undos, got %+v", s.Pages()[0].Items)
	}
	if !reflect.DeepEqual(s.Assets(), emptyAssets) {
		t.Errorf("expected assets unused after three undos, got %+v", s.Assets())
	}

	for i := range 3 {
		if !s.Redo() {
			t.Fatalf("redo %d failed", i+1)
		}
	}
	if !reflect.DeepEqual(s.Pages(), placedPages) {
		t.Error("expected redo to reproduce the three placements exactly")
	}
	if !reflect.DeepEqual(s.Assets(), placedAssets) {
		t.Error("expected redo to restore asset usage")
	}
	if s.CanRedo() {
		t.Error("expected redo chain to be exhausted")
	}
}

func TestSession_UndoRedoUnderflow(t *testing.T) {
	s := newTestSession(t, Options{})
	if s.Undo() || s.Redo() {
		t.Error("expected undo and redo on a fresh session to be no-ops")
	}
}

func TestSession_ImportCapacity(t *testing.T) {
	s := newTestSession(t, Options{})

	if added := s.ImportAssets(sources(160, 100, 100)); added != 150 {
		t.Errorf("expected 150 assets added, got %d", added)
	}
	if got := len(s.Assets()); got != 150 {
		t.Errorf("expected catalog of 150, got %d", got)
	}
	if added := s.ImportAssets([]album.AssetSource{{URL: "blob:extra", Width: 10, Height: 10}}); added != 0 {
		t.Errorf("expected full catalog to reject imports, got %d", added)
	}
}

func TestSession_ImportSkipsDuplicates(t *testing.T) {
	s := newTestSession(t, Options{})
	s.ImportAssets(sources(2, 100, 100))

	if added := s.ImportAssets(sources(3, 100, 100)); added != 1 {
		t.Errorf("expected only the new asset to be added, got %d", added)
	}
	if added := s.ImportAssets([]album.AssetSource{{URL: "blob:anon"}}); added != 1 {
		t.Fatalf("expected asset without id to be added, got %d", added)
	}
	assets := s.Assets()
	// Generated IDs skip the ones already in the catalog.
	if last := assets[len(assets)-1]; last.ID != "asset-4" {
		t.Errorf("expected generated id asset-4, got %s", last.ID)
	}
}

func TestSession_PlacementsDoNotOverlap(t *testing.T) {
	s := newTestSession(t, Options{})
	s.ImportAssets(sources(10, 1500, 1000))

	for _, a := range s.Assets() {
		if _, err := s.PlaceAuto(a.ID, 600); err != nil {
			t.Fatalf("place %s: %v", a.ID, err)
		}
	}

	area := s.WorkingArea()
	photos := s.CurrentPage().Photos()
	if len(photos) != 10 {
		t.Fatalf("expected 10 photos, got %d", len(photos))
	}
	for i, a := range photos {
		if !geometry.Contains(area.Inset(-1), a.Rect()) {
			t.Errorf("photo %s at %+v escapes working area %+v", a.ID, a.Rect(), area)
		}
		if got := a.Width / a.Height; got < 1.49 || got > 1.51 {
			t.Errorf("photo %s aspect %v, want 1.5", a.ID, got)
		}
		for _, b := range photos[i+1:] {
			if geometry.Overlaps(a.Rect(), b.Rect()) {
				t.Errorf("photos %s and %s overlap", a.ID, b.ID)
			}
		}
	}
	for _, a := range s.Assets() {
		if !a.Used {
			t.Errorf("expected asset %s to be used", a.ID)
		}
	}
}

func TestSession_PlaceAutoSelectsPhoto(t *testing.T) {
	s := newTestSession(t, Options{})
	s.ImportAssets(sources(1, 0, 0))

	photo, err := s.PlaceAuto("asset-1", 0)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if photo.AR != 1.5 {
		t.Errorf("expected default aspect ratio for unknown dimensions, got %v", photo.AR)
	}
	if sel := s.Selection(); len(sel) != 1 || sel[0] != photo.ID {
		t.Errorf("expected sole selection %s, got %v", photo.ID, sel)
	}
}

func fillWorkingArea(t *testing.T, s *Session) {
	t.Helper()
	s.ImportAssets([]album.AssetSource{
		{ID: "wide", Width: 2000, Height: 1000},
		{ID: "small", Width: 1500, Height: 1000},
	})
	area := s.WorkingArea()
	if _, err := s.PlaceAt("wide", area.X, area.Y, 100000); err != nil {
		t.Fatalf("place wide: %v", err)
	}
}

func TestSession_StrictPlacementExhaustion(t *testing.T) {
	s := newTestSession(t, Options{Strict: true})
	fillWorkingArea(t, s)
	past, _ := s.history.Len()

	_, err := s.PlaceAuto("small", 0)
	if !errors.Is(err, ErrNoFreeSlot) {
		t.Fatalf("expected ErrNoFreeSlot, got %v", err)
	}
	if got := len(s.CurrentPage().Items); got != 1 {
		t.Errorf("expected failed placement to leave 1 item, got %d", got)
	}
	if after, _ := s.history.Len(); after != past {
		t.Errorf("expected no history entry for failed placement")
	}
	for _, a := range s.Assets() {
		if a.ID == "small" && a.Used {
			t.Error("expected unplaced asset to stay unused")
		}
	}
}

func TestSession_PermissivePlacementExhaustion(t *testing.T) {
	s := newTestSession(t, Options{})
	fillWorkingArea(t, s)

	photo, err := s.PlaceAuto("small", 0)
	if err != nil {
		t.Fatalf("expected permissive placement to succeed, got %v", err)
	}
	wide := s.CurrentPage().Photos()[0]
	if !geometry.Overlaps(photo.Rect(), wide.Rect()) {
		t.Error("expected fallback placement to overlap the existing photo")
	}
}

func TestSession_DeleteItemClearsUsage(t *testing.T) {
	s := newTestSession(t, Options{})
	s.ImportAssets(sources(1, 400, 300))
	page := s.CurrentPage().ID

	first, _ := s.PlaceAuto("asset-1", 200)
	second, _ := s.PlaceAuto("asset-1", 200)

	if err := s.RemoveAsset("asset-1"); !errors.Is(err, ErrAssetInUse) {
		t.Fatalf("expected ErrAssetInUse, got %v", err)
	}

	if err := s.DeleteItem(page, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !s.Assets()[0].Used {
		t.Error("expected asset still used by the second photo")
	}

	if err := s.DeleteItem(page, second.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if s.Assets()[0].Used {
		t.Error("expected asset unused after deleting its last photo")
	}
	if len(s.Selection()) != 0 {
		t.Errorf("expected deleted item removed from selection, got %v", s.Selection())
	}

	if err := s.DeleteItem(page, "missing"); err != nil {
		t.Errorf("expected deleting an unknown item to be a no-op, got %v", err)
	}

	if err := s.RemoveAsset("asset-1"); err != nil {
		t.Fatalf("remove asset: %v", err)
	}
	if len(s.Assets()) != 0 {
		t.Error("expected asset removed")
	}
	if s.CanUndo() {
		t.Error("expected history cleared after releasing an asset")
	}
	if err := s.RemoveAsset("asset-1"); !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("expected ErrAssetNotFound, got %v", err)
	}
}

func TestSession_UpdateItemKeepsAspect(t *testing.T) {
	s := newTestSession(t, Options{})
	s.ImportAssets(sources(1, 3000, 2000))
	photo, _ := s.PlaceAuto("asset-1", 0)
	page := s.CurrentPage().ID

	item, err := s.UpdateItem(page, photo.ID, album.Patch{Width: album.Float(300)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if f := item.Base(); f.Width != 300 || f.Height != 200 {
		t.Errorf("expected 300x200, got %vx%v", f.Width, f.Height)
	}
	if !s.Assets()[0].Used {
		t.Error("expected update to leave usage untouched")
	}

	if _, err := s.UpdateItem(page, "missing", album.Patch{}); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
	if _, err := s.UpdateItem("missing", photo.ID, album.Patch{}); !errors.Is(err, ErrPageNotFound) {
		t.Errorf("expected ErrPageNotFound, got %v", err)
	}

	s.Undo()
	_, it := s.CurrentPage().Find(photo.ID)
	if it.Base().Width != photo.Width {
		t.Errorf("expected undo to restore width %v, got %v", photo.Width, it.Base().Width)
	}
}

func TestSession_AutoFill(t *testing.T) {
	s := newTestSession(t, Options{})
	s.ImportAssets(sources(5, 1500, 1000))
	s.PlaceAuto("asset-1", 0)

	placed, err := s.AutoFill(3)
	if err != nil {
		t.Fatalf("auto fill: %v", err)
	}
	if len(placed) != 3 {
		t.Fatalf("expected 3 photos, got %d", len(placed))
	}
	for i, want := range []string{"asset-2", "asset-3", "asset-4"} {
		if placed[i].AssetID != want {
			t.Errorf("photo %d: expected %s, got %s", i, want, placed[i].AssetID)
		}
	}
	wantW := float64(int(s.WorkingArea().W / 3))
	if placed[0].Width != wantW {
		t.Errorf("expected width %v, got %v", wantW, placed[0].Width)
	}
	if len(s.Selection()) != 3 {
		t.Errorf("expected the filled photos selected, got %v", s.Selection())
	}

	s.Undo()
	if got := len(s.CurrentPage().Items); got != 1 {
		t.Errorf("expected a single undo to revert the whole fill, got %d items", got)
	}
}

func TestSession_Layouts(t *testing.T) {
	s := newTestSession(t, Options{})
	s.ImportAssets(sources(5, 1500, 1000))
	for _, a := range s.Assets() {
		s.PlaceAuto(a.ID, 300)
	}
	s.AddText("Caption")
	before := s.Pages()

	area := s.WorkingArea()
	commands := map[string]func() error{
		"grid":     func() error { return s.LayoutGrid(2) },
		"auto":     s.LayoutAuto,
		"mosaic":   s.LayoutMosaic,
		"balanced": func() error { return s.LayoutBalanced(0, 0) },
	}
	for name, run := range commands {
		t.Run(name, func(t *testing.T) {
			if err := run(); err != nil {
				t.Fatalf("layout: %v", err)
			}
			page := s.CurrentPage()
			if len(page.Items) != 6 {
				t.Fatalf("expected membership unchanged, got %d items", len(page.Items))
			}
			for _, p := range page.Photos() {
				if p.X != float64(int(p.X)) || p.Width != float64(int(p.Width)) {
					t.Errorf("expected integer geometry, got %+v", p.Frame)
				}
				if name != "balanced" && !geometry.Contains(area, p.Rect()) {
					t.Errorf("photo %s at %+v escapes working area", p.ID, p.Rect())
				}
			}
			if _, text := page.Find("text-1"); text.Base().X != before[0].Items[5].Base().X {
				t.Error("expected text item untouched by layout")
			}

			s.Undo()
			if !reflect.DeepEqual(s.Pages(), before) {
				t.Error("expected undo to restore the previous geometry")
			}
		})
	}

	if err := s.LayoutGrid(0); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue, got %v", err)
	}
}

func TestSession_LayoutGridKeepsPhotosInCells(t *testing.T) {
	for _, columns := range []int{1, 2, 3} {
		t.Run(fmt.Sprintf("%d columns", columns), func(t *testing.T) {
			s := newTestSession(t, Options{})
			s.ImportAssets(sources(3, 3000, 1000))
			for _, a := range s.Assets() {
				if _, err := s.PlaceAuto(a.ID, 0); err != nil {
					t.Fatalf("place: %v", err)
				}
			}
			if err := s.LayoutGrid(columns); err != nil {
				t.Fatalf("layout: %v", err)
			}

			photos := s.CurrentPage().Photos()
			cells := layout.GridCells(s.WorkingArea(), len(photos), columns)
			for i, p := range photos {
				if !geometry.Contains(cells[i], p.Rect()) {
					t.Errorf("photo %d at %+v escapes cell %+v", i, p.Rect(), cells[i])
				}
			}
		})
	}
}

func TestSession_LayoutOnEmptyPageIsNoop(t *testing.T) {
	s := newTestSession(t, Options{})
	if err := s.LayoutAuto(); err != nil {
		t.Fatalf("layout: %v", err)
	}
	if s.CanUndo() {
		t.Error("expected no history entry")
	}
}

func TestSession_Pages(t *testing.T) {
	s := newTestSession(t, Options{})
	first := s.CurrentPage().ID

	page, err := s.AddPage()
	if err != nil {
		t.Fatalf("add page: %v", err)
	}
	if s.CurrentPageIndex() != 1 || s.CurrentPage().ID != page.ID {
		t.Errorf("expected new page to become current")
	}
	if err := s.SetCurrentPage(5); !errors.Is(err, ErrPageNotFound) {
		t.Errorf("expected ErrPageNotFound, got %v", err)
	}

	if err := s.RemovePage(page.ID); err != nil {
		t.Fatalf("remove page: %v", err)
	}
	if s.CurrentPage().ID != first {
		t.Errorf("expected first page to be current again")
	}
	if err := s.RemovePage(first); !errors.Is(err, ErrLastPage) {
		t.Errorf("expected ErrLastPage, got %v", err)
	}

	s.Undo()
	if len(s.Pages()) != 2 {
		t.Errorf("expected undo to restore the removed page")
	}
}

func TestSession_RemovePageRecomputesUsage(t *testing.T) {
	s := newTestSession(t, Options{})
	s.ImportAssets(sources(1, 100, 100))
	page, _ := s.AddPage()
	s.PlaceAuto("asset-1", 0)

	if err := s.RemovePage(page.ID); err != nil {
		t.Fatalf("remove page: %v", err)
	}
	if s.Assets()[0].Used {
		t.Error("expected asset unused after removing the page that held it")
	}
}

func TestSession_ZOrderAndAlign(t *testing.T) {
	s := newTestSession(t, Options{})
	s.ImportAssets(sources(2, 1000, 1000))
	a, _ := s.PlaceAuto("asset-1", 200)
	b, _ := s.PlaceAuto("asset-2", 200)
	page := s.CurrentPage().ID

	if err := s.SendToBack(page, b.ID); err != nil {
		t.Fatalf("send to back: %v", err)
	}
	if s.CurrentPage().Items[0].Base().ID != b.ID {
		t.Error("expected b at the bottom")
	}
	if err := s.BringToFront(page, b.ID); err != nil {
		t.Fatalf("bring to front: %v", err)
	}
	if s.CurrentPage().Items[1].Base().ID != b.ID {
		t.Error("expected b on top")
	}
	if err := s.BringToFront(page, "missing"); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}

	area := s.WorkingArea()
	if err := s.AlignItems([]string{a.ID, b.ID}, AlignRight); err != nil {
		t.Fatalf("align: %v", err)
	}
	for _, p := range s.CurrentPage().Photos() {
		want := math.Round(area.Right() - p.Width)
		if p.X != want {
			t.Errorf("photo %s: expected x %v, got %v", p.ID, want, p.X)
		}
	}
	if err := s.AlignItems(nil, "diagonal"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue, got %v", err)
	}
}

func TestSession_Selection(t *testing.T) {
	s := newTestSession(t, Options{})
	s.ImportAssets(sources(2, 100, 100))
	a, _ := s.PlaceAuto("asset-1", 0)
	b, _ := s.PlaceAuto("asset-2", 0)

	s.Select(a.ID, "missing", a.ID)
	if sel := s.Selection(); !reflect.DeepEqual(sel, []string{a.ID}) {
		t.Errorf("unexpected selection %v", sel)
	}
	s.ToggleSelect(b.ID)
	s.ToggleSelect(a.ID)
	if sel := s.Selection(); !reflect.DeepEqual(sel, []string{b.ID}) {
		t.Errorf("unexpected selection %v", sel)
	}
	s.ClearSelection()
	if len(s.Selection()) != 0 {
		t.Error("expected empty selection")
	}
}

func TestSession_Setters(t *testing.T) {
	s := newTestSession(t, Options{})

	if err := s.SetSize(album.Size{WidthCm: 30, HeightCm: 21, Label: "A4"}); err != nil {
		t.Fatalf("set size: %v", err)
	}
	if err := s.SetSize(album.Size{WidthCm: 0, HeightCm: 21}); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue, got %v", err)
	}
	if err := s.SetBleed(5); err != nil {
		t.Fatalf("set bleed: %v", err)
	}
	if err := s.SetDPI(-1); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue, got %v", err)
	}
	if err := s.SetZoom(2); err != nil {
		t.Fatalf("set zoom: %v", err)
	}
	s.SetGrid(true, 0)
	s.SetMagnet(false)
	s.SetGuides(false)

	st := s.State()
	if st.Size.WidthCm != 30 || st.BleedMm != 5 || st.Settings.Zoom != 2 {
		t.Errorf("unexpected state %+v", st)
	}
	if !st.Settings.Grid || st.Settings.GridSize != 20 || st.Settings.Magnet || st.Settings.Guides {
		t.Errorf("unexpected settings %+v", st.Settings)
	}

	// Size and bleed are undoable, view settings are not.
	s.Undo()
	if s.BleedMm() != 3 {
		t.Errorf("expected bleed 3 after undo, got %v", s.BleedMm())
	}
	s.Undo()
	if s.Size().WidthCm != 20 {
		t.Errorf("expected default width after undo, got %v", s.Size().WidthCm)
	}
	if s.Settings().Zoom != 2 {
		t.Error("expected zoom unaffected by undo")
	}
}

func TestSession_DocumentRoundTrip(t *testing.T) {
	s := newTestSession(t, Options{Name: "Holiday"})
	s.ImportAssets(sources(2, 1500, 1000))
	s.PlaceAuto("asset-1", 0)
	s.AddText("Summer 2024")

	doc := s.Document(true)
	restored, err := Restore(doc, Options{IDs: &SequenceIDs{}})
	if err != nil {
		t.Fatalf("restore: %v", err)
	}

	want, got := s.State(), restored.State()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("restored state differs:\n got %+v\nwant %+v", got, want)
	}
	if !restored.Undo() || len(restored.CurrentPage().Items) != 1 {
		t.Error("expected restored history to undo the text item")
	}

	if _, err := Restore(nil, Options{}); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue, got %v", err)
	}
}
