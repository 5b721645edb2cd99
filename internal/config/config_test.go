package config

import (
	"testing"
	"time"
)

func TestThumbURL_EmptyURL(t *testing.T) {
	cfg := PhotoPrismConfig{
		URL: "",
	}

	result := cfg.ThumbURL("abc123")

	if result != "" {
		t.Errorf("expected empty string for empty URL, got '%s'", result)
	}
}

func TestThumbURL_WithURL(t *testing.T) {
	cfg := PhotoPrismConfig{
		URL: "https://photos.example.com/",
	}

	result := cfg.ThumbURL("abc123")

	expected := "https://photos.example.com/api/v1/t/abc123/public/fit_2048"
	if result != expected {
		t.Errorf("expected '%s', got '%s'", expected, result)
	}
}

func TestEnvInt(t *testing.T) {
	tests := []struct {
		name       string
		envValue   string
		defaultVal int
		expected   int
	}{
		{"unset returns default", "", 25, 25},
		{"valid positive", "10", 25, 10},
		{"zero returns default", "0", 25, 25},
		{"negative returns default", "-5", 25, 25},
		{"non-numeric returns default", "abc", 25, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_ENV_INT", tt.envValue)
			result := envInt("TEST_ENV_INT", tt.defaultVal)
			if result != tt.expected {
				t.Errorf("envInt() = %d, want %d", result, tt.expected)
			}
		})
	}
}

func TestEnvFloat(t *testing.T) {
	tests := []struct {
		name       string
		envValue   string
		defaultVal float64
		expected   float64
	}{
		{"unset returns default", "", 300, 300},
		{"valid", "254", 300, 254},
		{"fraction", "2.5", 3, 2.5},
		{"zero is allowed", "0", 3, 0},
		{"negative returns default", "-1", 3, 3},
		{"non-numeric returns default", "lots", 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_ENV_FLOAT", tt.envValue)
			result := envFloat("TEST_ENV_FLOAT", tt.defaultVal)
			if result != tt.expected {
				t.Errorf("envFloat() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestEnvBoolAndDuration(t *testing.T) {
	t.Setenv("TEST_ENV_BOOL", "true")
	if !envBool("TEST_ENV_BOOL", false) {
		t.Error("expected true")
	}
	t.Setenv("TEST_ENV_BOOL", "maybe")
	if envBool("TEST_ENV_BOOL", false) {
		t.Error("expected default for invalid value")
	}

	t.Setenv("TEST_ENV_DURATION", "90m")
	if got := envDuration("TEST_ENV_DURATION", time.Hour); got != 90*time.Minute {
		t.Errorf("envDuration() = %v, want 90m", got)
	}
	t.Setenv("TEST_ENV_DURATION", "-5s")
	if got := envDuration("TEST_ENV_DURATION", time.Hour); got != time.Hour {
		t.Errorf("envDuration() = %v, want default", got)
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"EDITOR_DPI", "EDITOR_BLEED_MM", "EDITOR_STRICT_PLACEMENT", "REDIS_ADDR", "REDIS_SESSION_TTL", "WEB_SESSION_IDLE", "WEB_CLEANUP_INTERVAL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Editor.DPI != 300 || cfg.Editor.BleedMm != 3 || cfg.Editor.StrictPlacement {
		t.Errorf("unexpected editor defaults %+v", cfg.Editor)
	}
	if cfg.Redis.SessionTTL != 24*time.Hour {
		t.Errorf("expected 24h session TTL, got %v", cfg.Redis.SessionTTL)
	}
	if cfg.Database.MaxOpenConns != 25 || cfg.Database.MaxIdleConns != 5 {
		t.Errorf("unexpected database pool defaults %+v", cfg.Database)
	}
	if cfg.Web.SessionIdle != 30*time.Minute || cfg.Web.CleanupInterval != 5*time.Minute {
		t.Errorf("unexpected session maintenance defaults %+v", cfg.Web)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("EDITOR_DPI", "150")
	t.Setenv("EDITOR_STRICT_PLACEMENT", "1")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg := Load()

	if cfg.Editor.DPI != 150 {
		t.Errorf("expected DPI 150, got %v", cfg.Editor.DPI)
	}
	if !cfg.Editor.StrictPlacement {
		t.Error("expected strict placement")
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("expected redis addr, got %q", cfg.Redis.Addr)
	}
}

func TestSizes_Embedded(t *testing.T) {
	cfg := Load()

	if len(cfg.Sizes.Sizes) == 0 {
		t.Fatal("expected embedded size presets")
	}
	for _, s := range cfg.Sizes.Sizes {
		if s.Label == "" || s.WidthCm <= 0 || s.HeightCm <= 0 {
			t.Errorf("invalid preset %+v", s)
		}
	}

	size, ok := cfg.Sizes.Lookup("a4 LANDSCAPE")
	if !ok {
		t.Fatal("expected case-insensitive lookup")
	}
	if size.WidthCm != 29.7 || size.HeightCm != 21 {
		t.Errorf("unexpected A4 landscape size %+v", size)
	}
	if _, ok := cfg.Sizes.Lookup("poster"); ok {
		t.Error("expected unknown label to miss")
	}
}

func TestEnvList(t *testing.T) {
	t.Setenv("TEST_ENV_LIST", " https://a.example.com, ,https://b.example.com ")
	got := envList("TEST_ENV_LIST")
	if len(got) != 2 || got[0] != "https://a.example.com" || got[1] != "https://b.example.com" {
		t.Errorf("envList() = %v", got)
	}

	t.Setenv("TEST_ENV_LIST", "")
	if got := envList("TEST_ENV_LIST"); got != nil {
		t.Errorf("expected nil for empty list, got %v", got)
	}
}
