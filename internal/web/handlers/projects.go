package handlers

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/album-editor/internal/config"
	"github.com/kozaktomas/album-editor/internal/database"
	"github.com/kozaktomas/album-editor/internal/editor"
)

// ProjectsHandler handles project lifecycle endpoints
type ProjectsHandler struct {
	config   *config.Config
	sessions *Sessions
}

// NewProjectsHandler creates a new projects handler
func NewProjectsHandler(cfg *config.Config, sessions *Sessions) *ProjectsHandler {
	return &ProjectsHandler{config: cfg, sessions: sessions}
}

func getProjectWriter(r *http.Request, w http.ResponseWriter) database.ProjectWriter {
	writer, err := database.GetProjectWriter(r.Context())
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "project storage not available")
		return nil
	}
	return writer
}

type createProjectRequest struct {
	Name string `json:"name"`
	sizeRequest
}

// Create opens a new project. Without a size the default 20 x 20 cm is used.
func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	size := editor.DefaultSize()
	if req.Label != "" || req.WidthCm != 0 || req.HeightCm != 0 {
		var ok bool
		if size, ok = resolveSize(h.config, req.sizeRequest); !ok {
			respondError(w, http.StatusBadRequest, "unknown size")
			return
		}
	}

	s, err := h.sessions.Create(r.Context(), req.Name, size)
	if err != nil {
		log.Error("create project", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create project")
		return
	}
	respondJSON(w, http.StatusCreated, s.State())
}

// Import opens a project from an exported document. An existing project
// with the same ID is replaced.
func (h *ProjectsHandler) Import(w http.ResponseWriter, r *http.Request) {
	var doc editor.Document
	if !decodeJSON(w, r, &doc) {
		return
	}
	doc.History = nil
	s, err := h.sessions.Adopt(r.Context(), &doc)
	if err != nil {
		respondSessionError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, s.State())
}

// Get returns the current state of a project.
func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	var state editor.State
	err := h.sessions.View(r.Context(), chi.URLParam(r, "id"), func(s *editor.Session) error {
		state = s.State()
		return nil
	})
	if err != nil {
		respondSessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// Export returns the project document without history.
func (h *ProjectsHandler) Export(w http.ResponseWriter, r *http.Request) {
	var doc *editor.Document
	err := h.sessions.View(r.Context(), chi.URLParam(r, "id"), func(s *editor.Session) error {
		doc = s.Document(false)
		return nil
	})
	if err != nil {
		respondSessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, doc)
}

// List returns saved projects.
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	pw := getProjectWriter(r, w)
	if pw == nil {
		return
	}
	projects, err := pw.ListProjects(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list projects")
		return
	}
	if projects == nil {
		projects = []database.ProjectSummary{}
	}
	respondJSON(w, http.StatusOK, projects)
}

// Save writes the open project to project storage.
func (h *ProjectsHandler) Save(w http.ResponseWriter, r *http.Request) {
	pw := getProjectWriter(r, w)
	if pw == nil {
		return
	}
	id := chi.URLParam(r, "id")
	var doc *editor.Document
	err := h.sessions.View(r.Context(), id, func(s *editor.Session) error {
		doc = s.Document(false)
		return nil
	})
	if err != nil {
		respondSessionError(w, err)
		return
	}
	if err := pw.SaveProject(r.Context(), doc); err != nil {
		log.Error("save project", "project", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to save project")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"id": id, "status": "saved"})
}

// Delete closes the project and removes it from project storage when configured.
func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.sessions.Forget(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to close project")
		return
	}
	if database.IsInitialized() {
		pw := getProjectWriter(r, w)
		if pw == nil {
			return
		}
		if err := pw.DeleteProject(r.Context(), id); err != nil {
			respondError(w, http.StatusInternalServerError, "failed to delete project")
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
