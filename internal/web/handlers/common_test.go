package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kozaktomas/album-editor/internal/editor"
)

func TestRespondJSON(t *testing.T) {
	recorder := httptest.NewRecorder()
	respondJSON(recorder, http.StatusCreated, map[string]int{"count": 2})

	assertStatusCode(t, recorder, http.StatusCreated)
	assertContentType(t, recorder, "application/json")
	if body := recorder.Body.String(); body != "{\"count\":2}\n" {
		t.Errorf("unexpected body %q", body)
	}
}

func TestRespondError(t *testing.T) {
	recorder := httptest.NewRecorder()
	respondError(recorder, http.StatusTeapot, "short and stout")

	assertStatusCode(t, recorder, http.StatusTeapot)
	assertJSONError(t, recorder, "short and stout")
}

func TestSanitizeForLog(t *testing.T) {
	if got := sanitizeForLog("a\nb\r\nc"); got != "abc" {
		t.Errorf("expected %q, got %q", "abc", got)
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantOK   bool
		expected int
	}{
		{name: "valid", body: `{"columns": 4}`, wantOK: true, expected: 4},
		{name: "empty", body: "", wantOK: true, expected: 3},
		{name: "malformed", body: `{"columns":`, wantOK: false, expected: 3},
		{name: "wrong type", body: `{"columns": "four"}`, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", strings.NewReader(tt.body))
			recorder := httptest.NewRecorder()
			v := autoFillRequest{Columns: 3}

			ok := decodeJSON(recorder, req, &v)

			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if !ok {
				assertStatusCode(t, recorder, http.StatusBadRequest)
				assertJSONError(t, recorder, errInvalidRequestBody)
				return
			}
			if v.Columns != tt.expected {
				t.Errorf("expected columns %d, got %d", tt.expected, v.Columns)
			}
		})
	}
}

func TestEditorStatus(t *testing.T) {
	tests := []struct {
		err      error
		expected int
	}{
		{editor.ErrAssetNotFound, http.StatusNotFound},
		{editor.ErrPageNotFound, http.StatusNotFound},
		{fmt.Errorf("update item x: %w", editor.ErrItemNotFound), http.StatusNotFound},
		{editor.ErrAssetInUse, http.StatusConflict},
		{editor.ErrLastPage, http.StatusConflict},
		{editor.ErrNoDrag, http.StatusConflict},
		{fmt.Errorf("place asset a: %w", editor.ErrNoFreeSlot), http.StatusConflict},
		{fmt.Errorf("dpi -1: %w", editor.ErrInvalidValue), http.StatusBadRequest},
		{errors.New("disk full"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := editorStatus(tt.err); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestHealthCheck(t *testing.T) {
	recorder := httptest.NewRecorder()
	HealthCheck(recorder, httptest.NewRequest("GET", "/api/v1/health", nil))

	assertStatusCode(t, recorder, http.StatusOK)
	var result map[string]string
	parseJSONResponse(t, recorder, &result)
	if result["status"] != "ok" {
		t.Errorf("expected status ok, got %s", result["status"])
	}
}
