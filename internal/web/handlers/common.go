package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/kozaktomas/album-editor/internal/editor"
)

// errInvalidRequestBody is a shared error message for invalid JSON request bodies.
const errInvalidRequestBody = "invalid request body"

// maxBodyBytes limits JSON request bodies. Asset imports are the largest.
const maxBodyBytes = 4 << 20

// sanitizeForLog removes newlines and carriage returns to prevent log injection.
func sanitizeForLog(s string) string {
	return strings.NewReplacer("\n", "", "\r", "").Replace(s)
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// decodeJSON reads the request body into v. An empty body leaves v untouched.
// It responds with 400 and returns false on malformed input.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil || r.Body == http.NoBody {
		return true
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return false
	}
	return true
}

// editorStatus maps editor errors to HTTP status codes.
func editorStatus(err error) int {
	switch {
	case errors.Is(err, editor.ErrAssetNotFound),
		errors.Is(err, editor.ErrPageNotFound),
		errors.Is(err, editor.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, editor.ErrAssetInUse),
		errors.Is(err, editor.ErrLastPage),
		errors.Is(err, editor.ErrNoDrag),
		errors.Is(err, editor.ErrNoFreeSlot):
		return http.StatusConflict
	case errors.Is(err, editor.ErrInvalidValue):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// HealthCheck handles the health check endpoint.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}
