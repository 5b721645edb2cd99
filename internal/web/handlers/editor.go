package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/album-editor/internal/album"
	"github.com/kozaktomas/album-editor/internal/config"
	"github.com/kozaktomas/album-editor/internal/editor"
)

// EditorHandler exposes editor commands for open projects
type EditorHandler struct {
	config   *config.Config
	sessions *Sessions
}

// NewEditorHandler creates a new editor handler
func NewEditorHandler(cfg *config.Config, sessions *Sessions) *EditorHandler {
	return &EditorHandler{config: cfg, sessions: sessions}
}

// commandResponse carries a command's own result next to the new state.
type commandResponse struct {
	Result any          `json:"result,omitempty"`
	State  editor.State `json:"state"`
}

// respondSessionError writes the status that matches err.
func respondSessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, errProjectNotFound) {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	status := editorStatus(err)
	if status == http.StatusInternalServerError {
		respondError(w, status, "failed to update project")
		return
	}
	respondError(w, status, err.Error())
}

// command runs fn against the project named in the URL, stores the session
// and responds with fn's result and the resulting state.
func (h *EditorHandler) command(w http.ResponseWriter, r *http.Request, fn func(s *editor.Session) (any, error)) {
	var resp commandResponse
	err := h.sessions.Update(r.Context(), chi.URLParam(r, "id"), func(s *editor.Session) error {
		result, err := fn(s)
		if err != nil {
			return err
		}
		resp.Result = result
		resp.State = s.State()
		return nil
	})
	if err != nil {
		respondSessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// --- Settings ---

type valueRequest struct {
	Value *float64 `json:"value"`
}

type toggleRequest struct {
	Enabled bool     `json:"enabled"`
	Size    *float64 `json:"size,omitempty"`
}

type sizeRequest struct {
	Label    string  `json:"label"`
	WidthCm  float64 `json:"widthCm"`
	HeightCm float64 `json:"heightCm"`
}

// resolveSize fills a size from the presets when only a label is given.
func resolveSize(cfg *config.Config, req sizeRequest) (album.Size, bool) {
	if req.WidthCm > 0 && req.HeightCm > 0 {
		return album.Size{Label: req.Label, WidthCm: req.WidthCm, HeightCm: req.HeightCm}, true
	}
	if req.Label != "" {
		return cfg.Sizes.Lookup(req.Label)
	}
	return album.Size{}, false
}

func (h *EditorHandler) SetSize(w http.ResponseWriter, r *http.Request) {
	var req sizeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	size, ok := resolveSize(h.config, req)
	if !ok {
		respondError(w, http.StatusBadRequest, "unknown size")
		return
	}
	h.command(w, r, func(s *editor.Session) (any, error) {
		return nil, s.SetSize(size)
	})
}

// numericSetting handles endpoints that take a single {"value": n}.
func (h *EditorHandler) numericSetting(set func(s *editor.Session, v float64) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req valueRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Value == nil {
			respondError(w, http.StatusBadRequest, "value is required")
			return
		}
		h.command(w, r, func(s *editor.Session) (any, error) {
			return nil, set(s, *req.Value)
		})
	}
}

func (h *EditorHandler) SetBleed(w http.ResponseWriter, r *http.Request) {
	h.numericSetting((*editor.Session).SetBleed)(w, r)
}

func (h *EditorHandler) SetDPI(w http.ResponseWriter, r *http.Request) {
	h.numericSetting((*editor.Session).SetDPI)(w, r)
}

func (h *EditorHandler) SetSafe(w http.ResponseWriter, r *http.Request) {
	h.numericSetting((*editor.Session).SetSafe)(w, r)
}

func (h *EditorHandler) SetZoom(w http.ResponseWriter, r *http.Request) {
	h.numericSetting((*editor.Session).SetZoom)(w, r)
}

func (h *EditorHandler) SetMagnetTolerance(w http.ResponseWriter, r *http.Request) {
	h.numericSetting((*editor.Session).SetMagnetTolerance)(w, r)
}

func (h *EditorHandler) SetGrid(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.command(w, r, func(s *editor.Session) (any, error) {
		size := s.Settings().GridSize
		if req.Size != nil {
			if *req.Size <= 0 {
				return nil, editor.ErrInvalidValue
			}
			size = *req.Size
		}
		s.SetGrid(req.Enabled, size)
		return nil, nil
	})
}

func (h *EditorHandler) SetGuides(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.command(w, r, func(s *editor.Session) (any, error) {
		s.SetGuides(req.Enabled)
		return nil, nil
	})
}

func (h *EditorHandler) SetMagnet(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.command(w, r, func(s *editor.Session) (any, error) {
		s.SetMagnet(req.Enabled)
		return nil, nil
	})
}

// --- Assets ---

type importAssetsRequest struct {
	Assets []album.AssetSource `json:"assets"`
}

type importAssetsResponse struct {
	Added int `json:"added"`
}

func (h *EditorHandler) ImportAssets(w http.ResponseWriter, r *http.Request) {
	var req importAssetsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.command(w, r, func(s *editor.Session) (any, error) {
		return importAssetsResponse{Added: s.ImportAssets(req.Assets)}, nil
	})
}

func (h *EditorHandler) RemoveAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "assetId")
	h.command(w, r, func(s *editor.Session) (any, error) {
		return nil, s.RemoveAsset(assetID)
	})
}

// --- Placement & layouts ---

type placeRequest struct {
	AssetID     string   `json:"assetId"`
	TargetWidth float64  `json:"targetWidth"`
	X           *float64 `json:"x,omitempty"`
	Y           *float64 `json:"y,omitempty"`
}

// Place puts an asset on the current page: at the given point when x and y
// are set, otherwise in the first free slot.
func (h *EditorHandler) Place(w http.ResponseWriter, r *http.Request) {
	var req placeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.AssetID == "" {
		respondError(w, http.StatusBadRequest, "assetId is required")
		return
	}
	h.command(w, r, func(s *editor.Session) (any, error) {
		if req.X != nil && req.Y != nil {
			return s.PlaceAt(req.AssetID, *req.X, *req.Y, req.TargetWidth)
		}
		return s.PlaceAuto(req.AssetID, req.TargetWidth)
	})
}

type autoFillRequest struct {
	Columns int `json:"columns"`
}

func (h *EditorHandler) AutoFill(w http.ResponseWriter, r *http.Request) {
	req := autoFillRequest{Columns: 3}
	if !decodeJSON(w, r, &req) {
		return
	}
	h.command(w, r, func(s *editor.Session) (any, error) {
		return s.AutoFill(req.Columns)
	})
}

type layoutRequest struct {
	Kind      string   `json:"kind"`
	Columns   int      `json:"columns"`
	RowHeight float64  `json:"rowHeight"`
	Gap       *float64 `json:"gap"` // nil uses the default gap
}

// Layout rearranges the photos on the current page.
func (h *EditorHandler) Layout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	var apply func(s *editor.Session) error
	switch req.Kind {
	case "grid":
		apply = func(s *editor.Session) error { return s.LayoutGrid(req.Columns) }
	case "auto", "":
		apply = (*editor.Session).LayoutAuto
	case "mosaic":
		apply = (*editor.Session).LayoutMosaic
	case "balanced":
		gap := -1.0
		if req.Gap != nil {
			gap = *req.Gap
		}
		apply = func(s *editor.Session) error { return s.LayoutBalanced(req.RowHeight, gap) }
	default:
		respondError(w, http.StatusBadRequest, "unknown layout kind")
		return
	}
	h.command(w, r, func(s *editor.Session) (any, error) {
		return nil, apply(s)
	})
}

// --- Items ---

type addTextRequest struct {
	Text string `json:"text"`
}

func (h *EditorHandler) AddText(w http.ResponseWriter, r *http.Request) {
	var req addTextRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.command(w, r, func(s *editor.Session) (any, error) {
		return s.AddText(req.Text)
	})
}

func (h *EditorHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var patch album.Patch
	if !decodeJSON(w, r, &patch) {
		return
	}
	pageID, itemID := chi.URLParam(r, "pageId"), chi.URLParam(r, "itemId")
	h.command(w, r, func(s *editor.Session) (any, error) {
		return s.UpdateItem(pageID, itemID, patch)
	})
}

func (h *EditorHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	pageID, itemID := chi.URLParam(r, "pageId"), chi.URLParam(r, "itemId")
	h.command(w, r, func(s *editor.Session) (any, error) {
		return nil, s.DeleteItem(pageID, itemID)
	})
}

func (h *EditorHandler) BringToFront(w http.ResponseWriter, r *http.Request) {
	pageID, itemID := chi.URLParam(r, "pageId"), chi.URLParam(r, "itemId")
	h.command(w, r, func(s *editor.Session) (any, error) {
		return nil, s.BringToFront(pageID, itemID)
	})
}

func (h *EditorHandler) SendToBack(w http.ResponseWriter, r *http.Request) {
	pageID, itemID := chi.URLParam(r, "pageId"), chi.URLParam(r, "itemId")
	h.command(w, r, func(s *editor.Session) (any, error) {
		return nil, s.SendToBack(pageID, itemID)
	})
}

type alignRequest struct {
	IDs   []string         `json:"ids"`
	Align editor.Alignment `json:"align"`
}

func (h *EditorHandler) Align(w http.ResponseWriter, r *http.Request) {
	var req alignRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.command(w, r, func(s *editor.Session) (any, error) {
		return nil, s.AlignItems(req.IDs, req.Align)
	})
}

// --- Pages ---

func (h *EditorHandler) ClearPage(w http.ResponseWriter, r *http.Request) {
	h.command(w, r, func(s *editor.Session) (any, error) {
		return nil, s.ClearPage()
	})
}

func (h *EditorHandler) AddPage(w http.ResponseWriter, r *http.Request) {
	h.command(w, r, func(s *editor.Session) (any, error) {
		return s.AddPage()
	})
}

func (h *EditorHandler) RemovePage(w http.ResponseWriter, r *http.Request) {
	pageID := chi.URLParam(r, "pageId")
	h.command(w, r, func(s *editor.Session) (any, error) {
		return nil, s.RemovePage(pageID)
	})
}

type currentPageRequest struct {
	Index int `json:"index"`
}

func (h *EditorHandler) SetCurrentPage(w http.ResponseWriter, r *http.Request) {
	var req currentPageRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.command(w, r, func(s *editor.Session) (any, error) {
		return nil, s.SetCurrentPage(req.Index)
	})
}

// --- Selection ---

type selectRequest struct {
	IDs    []string `json:"ids"`
	Toggle string   `json:"toggle,omitempty"`
}

// Select replaces the selection, or toggles a single item when toggle is set.
func (h *EditorHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.command(w, r, func(s *editor.Session) (any, error) {
		if req.Toggle != "" {
			s.ToggleSelect(req.Toggle)
		} else {
			s.Select(req.IDs...)
		}
		return nil, nil
	})
}

func (h *EditorHandler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	h.command(w, r, func(s *editor.Session) (any, error) {
		s.ClearSelection()
		return nil, nil
	})
}

// --- History ---

type historyResponse struct {
	Applied bool `json:"applied"`
}

func (h *EditorHandler) Undo(w http.ResponseWriter, r *http.Request) {
	h.command(w, r, func(s *editor.Session) (any, error) {
		return historyResponse{Applied: s.Undo()}, nil
	})
}

func (h *EditorHandler) Redo(w http.ResponseWriter, r *http.Request) {
	h.command(w, r, func(s *editor.Session) (any, error) {
		return historyResponse{Applied: s.Redo()}, nil
	})
}

// --- Drag ---

type dragBeginRequest struct {
	ItemID string `json:"itemId"`
}

type dragMoveRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (h *EditorHandler) DragBegin(w http.ResponseWriter, r *http.Request) {
	var req dragBeginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.command(w, r, func(s *editor.Session) (any, error) {
		return nil, s.BeginDrag(req.ItemID)
	})
}

// DragMove returns the magnetized rectangle and active guides. The session
// itself does not change until the drag ends, so nothing is stored.
func (h *EditorHandler) DragMove(w http.ResponseWriter, r *http.Request) {
	var req dragMoveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	var resp any
	err := h.sessions.View(r.Context(), chi.URLParam(r, "id"), func(s *editor.Session) error {
		res, err := s.DragMove(req.X, req.Y)
		if err != nil {
			return err
		}
		resp = res
		return nil
	})
	if err != nil {
		respondSessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *EditorHandler) DragEnd(w http.ResponseWriter, r *http.Request) {
	h.command(w, r, func(s *editor.Session) (any, error) {
		return s.EndDrag()
	})
}

func (h *EditorHandler) DragCancel(w http.ResponseWriter, r *http.Request) {
	h.command(w, r, func(s *editor.Session) (any, error) {
		s.CancelDrag()
		return nil, nil
	})
}
