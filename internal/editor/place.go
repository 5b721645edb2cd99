package editor

import (
	"fmt"
	"math"

	"github.com/kozaktomas/album-editor/internal/album"
	"github.com/kozaktomas/album-editor/internal/constants"
	"github.com/kozaktomas/album-editor/internal/geometry"
	"github.com/kozaktomas/album-editor/internal/placement"
)

// ImportAssets appends decoded sources to the catalog and returns how many
// were added. Sources beyond constants.MaxAssets are dropped silently.
// Sources with a known ID are skipped; an empty ID gets a generated one.
func (s *Session) ImportAssets(sources []album.AssetSource) int {
	room := constants.MaxAssets - len(s.assets)
	if room <= 0 || len(sources) == 0 {
		return 0
	}

	var added int
	_ = s.mutate("import-assets", func() error {
		for _, src := range sources {
			if added >= room {
				break
			}
			id := src.ID
			if id == "" {
				id = s.newAssetID()
			} else if _, exists := s.asset(id); exists {
				continue
			}
			s.assets = append(s.assets, album.Asset{
				ID:           id,
				URL:          src.URL,
				SourceWidth:  album.SafeNumber(src.Width, 0),
				SourceHeight: album.SafeNumber(src.Height, 0),
			})
			added++
		}
		if added == 0 {
			return errNoChange
		}
		s.recomputeUsage()
		return nil
	})

	if dropped := len(sources) - added; dropped > 0 {
		s.logger.Debug("import truncated", "added", added, "skipped", dropped, "limit", constants.MaxAssets)
	}
	return added
}

// newAssetID returns a generated ID not yet present in the catalog.
func (s *Session) newAssetID() string {
	for {
		id := s.ids.NewID("asset")
		if _, exists := s.asset(id); !exists {
			return id
		}
	}
}

// RemoveAsset deletes an asset from the catalog. It is rejected while any
// page references the asset.
//
// Removing an asset releases its blob outside the editor, so undo history is
// cleared: no snapshot taken before the removal can be restored afterwards.
func (s *Session) RemoveAsset(id string) error {
	idx := -1
	for i, a := range s.assets {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("remove asset %s: %w", id, ErrAssetNotFound)
	}

	s.recomputeUsage()
	if s.assets[idx].Used {
		return fmt.Errorf("remove asset %s: %w", id, ErrAssetInUse)
	}

	s.assets = append(s.assets[:idx], s.assets[idx+1:]...)
	s.history.Reset()
	s.logger.Debug("asset removed", "asset", id, "remaining", len(s.assets))
	return nil
}

// resolveAR returns the aspect ratio for a new photo of assetID. Unknown
// assets fall back to the default ratio.
func (s *Session) resolveAR(assetID string) float64 {
	a, ok := s.asset(assetID)
	if !ok {
		s.logger.Warn("placing unknown asset, using default aspect ratio", "asset", assetID)
		return constants.DefaultAspectRatio
	}
	return a.AR()
}

func (s *Session) obstacles() []geometry.Rect {
	photos := s.pages[s.current].Photos()
	rects := make([]geometry.Rect, len(photos))
	for i, p := range photos {
		rects[i] = p.Rect()
	}
	return rects
}

func (s *Session) newPhoto(assetID string, r geometry.Rect, ar float64) *album.Photo {
	return &album.Photo{
		Frame: album.Frame{
			ID:      s.ids.NewID("photo"),
			X:       math.Round(r.X),
			Y:       math.Round(r.Y),
			Width:   math.Max(constants.MinItemSize, math.Round(r.W)),
			Height:  math.Max(constants.MinItemSize, math.Round(r.H)),
			Opacity: constants.DefaultOpacity,
		},
		AssetID: assetID,
		AR:      ar,
	}
}

// placeAuto plans and appends one photo to the current page.
func (s *Session) placeAuto(assetID string, targetWidth float64) (*album.Photo, error) {
	ar := s.resolveAR(assetID)
	res, err := s.planner.Plan(s.WorkingArea(), ar, targetWidth, s.obstacles())
	if err != nil {
		return nil, fmt.Errorf("place asset %s: %w", assetID, err)
	}
	if res.Overlapping {
		s.logger.Warn("no free slot, placing over existing items", "asset", assetID, "scale", res.Scale)
	}

	photo := s.newPhoto(assetID, res.Rect, ar)
	page := s.pages[s.current]
	page.Items = append(page.Items, photo)
	return photo, nil
}

// PlaceAuto places assetID on the current page at the first free position.
// A non-positive targetWidth uses 40% of the working area width. The new
// photo becomes the sole selection.
func (s *Session) PlaceAuto(assetID string, targetWidth float64) (*album.Photo, error) {
	var photo *album.Photo
	err := s.mutate("place-auto", func() error {
		var err error
		photo, err = s.placeAuto(assetID, targetWidth)
		if err != nil {
			return err
		}
		s.recomputeUsage()
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.selection = []string{photo.ID}
	return clonePhoto(photo), nil
}

// PlaceAt places assetID with its top-left corner at (x, y) without looking
// for a free slot. A non-positive width uses 40% of the working area width.
func (s *Session) PlaceAt(assetID string, x, y, width float64) (*album.Photo, error) {
	if !album.IsFinite(x) || !album.IsFinite(y) {
		return nil, fmt.Errorf("place asset %s at (%v, %v): %w", assetID, x, y, ErrInvalidValue)
	}

	var photo *album.Photo
	err := s.mutate("place-at", func() error {
		ar := s.resolveAR(assetID)
		w, h := placement.DesiredSize(s.WorkingArea(), ar, width)
		photo = s.newPhoto(assetID, geometry.Rect{X: x, Y: y, W: w, H: h}, ar)
		page := s.pages[s.current]
		page.Items = append(page.Items, photo)
		s.recomputeUsage()
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.selection = []string{photo.ID}
	return clonePhoto(photo), nil
}

// AutoFill places up to columns assets that are not yet on the current page,
// each a third of the working area wide. It records a single history entry.
func (s *Session) AutoFill(columns int) ([]*album.Photo, error) {
	if columns <= 0 {
		return nil, fmt.Errorf("auto fill with %d columns: %w", columns, ErrInvalidValue)
	}

	page := s.pages[s.current]
	var candidates []string
	for _, a := range s.assets {
		if len(candidates) == columns {
			break
		}
		if !page.References(a.ID) {
			candidates = append(candidates, a.ID)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	targetWidth := s.WorkingArea().W / constants.AutoFillWidthDivisor
	placed := make([]*album.Photo, 0, len(candidates))
	err := s.mutate("auto-fill", func() error {
		for _, id := range candidates {
			photo, err := s.placeAuto(id, targetWidth)
			if err != nil {
				return err
			}
			placed = append(placed, photo)
		}
		s.recomputeUsage()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.selection = s.selection[:0]
	out := make([]*album.Photo, len(placed))
	for i, p := range placed {
		s.selection = append(s.selection, p.ID)
		out[i] = clonePhoto(p)
	}
	return out, nil
}

func clonePhoto(p *album.Photo) *album.Photo {
	return p.Clone().(*album.Photo)
}
