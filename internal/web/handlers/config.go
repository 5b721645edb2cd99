package handlers

import (
	"net/http"

	"github.com/kozaktomas/album-editor/internal/album"
	"github.com/kozaktomas/album-editor/internal/config"
	"github.com/kozaktomas/album-editor/internal/constants"
	"github.com/kozaktomas/album-editor/internal/database"
)

// ConfigHandler handles configuration endpoints
type ConfigHandler struct {
	config *config.Config
}

// NewConfigHandler creates a new config handler
func NewConfigHandler(cfg *config.Config) *ConfigHandler {
	return &ConfigHandler{
		config: cfg,
	}
}

// ConfigResponse represents the configuration response
type ConfigResponse struct {
	Sizes            []album.Size        `json:"sizes"`
	Editor           config.EditorConfig `json:"editor"`
	MaxAssets        int                 `json:"max_assets"`
	ProjectsWritable bool                `json:"projects_writable"`
	LibraryAvailable bool                `json:"library_available"`
}

// Get returns the size presets, editor defaults and available backends
func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	sizes := h.config.Sizes.Sizes
	if sizes == nil {
		sizes = []album.Size{}
	}
	respondJSON(w, http.StatusOK, ConfigResponse{
		Sizes:            sizes,
		Editor:           h.config.Editor,
		MaxAssets:        constants.MaxAssets,
		ProjectsWritable: database.IsInitialized(),
		LibraryAvailable: database.HasLibrary(),
	})
}
