package config

import (
	_ "embed"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kozaktomas/album-editor/internal/album"
	"github.com/kozaktomas/album-editor/internal/constants"
)

//go:embed sizes.yaml
var sizesYAML []byte

type Config struct {
	Editor     EditorConfig
	Database   DatabaseConfig
	PhotoPrism PhotoPrismConfig
	Redis      RedisConfig
	Web        WebConfig
	Sizes      SizesConfig
}

type EditorConfig struct {
	DPI             float64 `json:"dpi"`              // Print resolution (default 300)
	BleedMm         float64 `json:"bleed_mm"`         // Bleed margin (default 3)
	SafeMm          float64 `json:"safe_mm"`          // Safe-area margin (default 5)
	GridSize        float64 `json:"grid_size"`        // Grid-snap spacing in px (default 20)
	MagnetTolerance float64 `json:"magnet_tolerance"` // Magnet snap distance in px (default 8)
	StrictPlacement bool    `json:"strict_placement"` // Fail placements that find no free slot instead of overlapping
}

type DatabaseConfig struct {
	URL          string // PostgreSQL connection URL
	MaxOpenConns int    // Maximum open connections (default 25)
	MaxIdleConns int    // Maximum idle connections (default 5)
}

type PhotoPrismConfig struct {
	URL         string // Base URL used to build thumbnail links (e.g., https://photos.example.com)
	DatabaseURL string // MariaDB DSN for direct database access (e.g., photoprism:photoprism@tcp(mariadb:3306)/photoprism)
}

// ThumbURL returns the public thumbnail URL for a file hash, or an empty
// string when URL is not set.
func (c *PhotoPrismConfig) ThumbURL(hash string) string {
	if c.URL == "" || hash == "" {
		return ""
	}
	return strings.TrimRight(c.URL, "/") + "/api/v1/t/" + hash + "/public/fit_2048"
}

type RedisConfig struct {
	Addr       string        // host:port, live sessions are kept in memory when empty
	Password   string        //
	DB         int           // Database number (default 0)
	SessionTTL time.Duration // Expiry of idle sessions (default 24h)
}

type WebConfig struct {
	AllowedOrigins  []string      // Extra CORS origins, localhost is always allowed
	SessionIdle     time.Duration // Open sessions unused this long are closed (default 30m)
	CleanupInterval time.Duration // How often idle sessions and expired entries are dropped (default 5m)
}

type SizesConfig struct {
	Sizes []album.Size `yaml:"sizes"`
}

// Lookup returns the preset with the given label.
func (s SizesConfig) Lookup(label string) (album.Size, bool) {
	for _, size := range s.Sizes {
		if strings.EqualFold(size.Label, label) {
			return size, true
		}
	}
	return album.Size{}, false
}

// envList reads a comma-separated environment variable, skipping blanks.
func envList(key string) []string {
	var out []string
	for item := range strings.SplitSeq(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envFloat reads an environment variable as a non-negative float.
// Returns the default value if the env var is unset, empty, or invalid.
func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f >= 0 {
		return f
	}
	return defaultVal
}

// envBool reads an environment variable as a boolean ("1", "true", ...).
func envBool(key string, defaultVal bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return defaultVal
}

// envDuration reads an environment variable as a positive duration ("90m").
func envDuration(key string, defaultVal time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	return defaultVal
}

func Load() *Config {
	var sizes SizesConfig
	if err := yaml.Unmarshal(sizesYAML, &sizes); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded sizes.yaml: " + err.Error())
	}

	return &Config{
		Editor: EditorConfig{
			DPI:             envFloat("EDITOR_DPI", constants.DefaultDPI),
			BleedMm:         envFloat("EDITOR_BLEED_MM", constants.DefaultBleedMm),
			SafeMm:          envFloat("EDITOR_SAFE_MM", constants.DefaultSafeMm),
			GridSize:        envFloat("EDITOR_GRID_SIZE", constants.DefaultGridSize),
			MagnetTolerance: envFloat("EDITOR_MAGNET_TOLERANCE", constants.DefaultMagnetTolerance),
			StrictPlacement: envBool("EDITOR_STRICT_PLACEMENT", false),
		},
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns: envInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		PhotoPrism: PhotoPrismConfig{
			URL:         os.Getenv("PHOTOPRISM_URL"),
			DatabaseURL: os.Getenv("PHOTOPRISM_DATABASE_URL"),
		},
		Redis: RedisConfig{
			Addr:       os.Getenv("REDIS_ADDR"),
			Password:   os.Getenv("REDIS_PASSWORD"),
			DB:         envInt("REDIS_DB", 0),
			SessionTTL: envDuration("REDIS_SESSION_TTL", 24*time.Hour),
		},
		Web: WebConfig{
			AllowedOrigins:  envList("WEB_ALLOWED_ORIGINS"),
			SessionIdle:     envDuration("WEB_SESSION_IDLE", 30*time.Minute),
			CleanupInterval: envDuration("WEB_CLEANUP_INTERVAL", 5*time.Minute),
		},
		Sizes: sizes,
	}
}
