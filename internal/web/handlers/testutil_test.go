package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/album-editor/internal/album"
	"github.com/kozaktomas/album-editor/internal/config"
	"github.com/kozaktomas/album-editor/internal/database"
	"github.com/kozaktomas/album-editor/internal/editor"
	"github.com/kozaktomas/album-editor/internal/sessionstore"
)

// testConfig creates a config with the usual editor defaults
func testConfig() *config.Config {
	return &config.Config{
		Editor: config.EditorConfig{
			DPI:             300,
			BleedMm:         3,
			SafeMm:          5,
			GridSize:        20,
			MagnetTolerance: 8,
		},
		PhotoPrism: config.PhotoPrismConfig{
			URL: "http://localhost:2342",
		},
		Sizes: config.SizesConfig{Sizes: []album.Size{
			{Label: "20 x 20 cm", WidthCm: 20, HeightCm: 20},
			{Label: "A4 landscape", WidthCm: 29.7, HeightCm: 21},
		}},
	}
}

// newTestSessions creates a session registry over a memory store with
// predictable IDs. Database backends are reset after the test.
func newTestSessions(t *testing.T) (*Sessions, *sessionstore.MemoryStore) {
	t.Helper()
	database.ResetForTesting()
	t.Cleanup(database.ResetForTesting)

	store := sessionstore.NewMemoryStore(0)
	sessions := NewSessions(testConfig(), store, nil)
	sessions.ids = &editor.SequenceIDs{}
	return sessions, store
}

// createTestProject opens a project with the given assets and returns its ID
func createTestProject(t *testing.T, sessions *Sessions, sources ...album.AssetSource) string {
	t.Helper()
	s, err := sessions.Create(context.Background(), "Test", editor.DefaultSize())
	if err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	if len(sources) > 0 {
		err = sessions.Update(context.Background(), s.ID(), func(s *editor.Session) error {
			s.ImportAssets(sources)
			return nil
		})
		if err != nil {
			t.Fatalf("failed to import assets: %v", err)
		}
	}
	return s.ID()
}

// jsonRequest creates a request with a JSON body
func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// requestWithChiParams creates a request with chi URL parameters
func requestWithChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// parseJSONResponse parses a JSON response body into the target type
func parseJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nBody: %s", err, recorder.Body.String())
	}
}

// assertStatusCode checks if the response has the expected status code
func assertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if recorder.Code != expected {
		t.Errorf("expected status %d, got %d\nBody: %s", expected, recorder.Code, recorder.Body.String())
	}
}

// assertContentType checks if the response has the expected content type
func assertContentType(t *testing.T, recorder *httptest.ResponseRecorder, expected string) {
	t.Helper()
	ct := recorder.Header().Get("Content-Type")
	if ct != expected {
		t.Errorf("expected Content-Type '%s', got '%s'", expected, ct)
	}
}

// assertJSONError checks if the response is a JSON error with the expected message
func assertJSONError(t *testing.T, recorder *httptest.ResponseRecorder, expectedMessage string) {
	t.Helper()
	var result map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse error response: %v\nBody: %s", err, recorder.Body.String())
	}
	if result["error"] != expectedMessage {
		t.Errorf("expected error '%s', got '%s'", expectedMessage, result["error"])
	}
}
