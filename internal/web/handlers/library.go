package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/album-editor/internal/album"
	"github.com/kozaktomas/album-editor/internal/config"
	"github.com/kozaktomas/album-editor/internal/constants"
	"github.com/kozaktomas/album-editor/internal/database"
	"github.com/kozaktomas/album-editor/internal/editor"
)

// LibraryHandler imports photos from the PhotoPrism library
type LibraryHandler struct {
	config   *config.Config
	sessions *Sessions
}

// NewLibraryHandler creates a new library handler
func NewLibraryHandler(cfg *config.Config, sessions *Sessions) *LibraryHandler {
	return &LibraryHandler{config: cfg, sessions: sessions}
}

func getLibraryReader(r *http.Request, w http.ResponseWriter) database.LibraryReader {
	reader, err := database.GetLibraryReader(r.Context())
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "photo library not available")
		return nil
	}
	return reader
}

type libraryImportRequest struct {
	AlbumUID string `json:"albumUid"`
	Limit    int    `json:"limit"`
	Offset   int    `json:"offset"`
}

type libraryImportResponse struct {
	Found int `json:"found"`
	Added int `json:"added"`
}

// Import adds library photos to the project's assets. The asset ceiling
// caps a single import.
func (h *LibraryHandler) Import(w http.ResponseWriter, r *http.Request) {
	lr := getLibraryReader(r, w)
	if lr == nil {
		return
	}
	var req libraryImportRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Limit <= 0 || req.Limit > constants.MaxAssets {
		req.Limit = constants.MaxAssets
	}

	photos, err := lr.ListPhotos(r.Context(), database.LibraryFilter{
		AlbumUID: req.AlbumUID,
		Limit:    req.Limit,
		Offset:   req.Offset,
	})
	if err != nil {
		respondError(w, http.StatusBadGateway, "failed to read photo library")
		return
	}

	sources := make([]album.AssetSource, len(photos))
	for i, p := range photos {
		sources[i] = p.AssetSource(h.config.PhotoPrism.ThumbURL)
	}

	var resp commandResponse
	err = h.sessions.Update(r.Context(), chi.URLParam(r, "id"), func(s *editor.Session) error {
		resp.Result = libraryImportResponse{Found: len(photos), Added: s.ImportAssets(sources)}
		resp.State = s.State()
		return nil
	})
	if err != nil {
		respondSessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}
