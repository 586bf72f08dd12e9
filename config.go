package courseclient

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds connection and behavior configuration for the client.
type Config struct {
	// BaseURL is the root of the course-management REST API.
	BaseURL string `env:"COURSE_API_BASE_URL" envDefault:"http://localhost:8080/api"`

	// Timeout applies to every request except exports and downloads.
	Timeout time.Duration `env:"COURSE_API_TIMEOUT" envDefault:"15s"`

	// ExportTimeout applies to report exports and file downloads.
	ExportTimeout time.Duration `env:"COURSE_API_EXPORT_TIMEOUT" envDefault:"60s"`

	// CacheDir overrides the directory for the persisted session file.
	// Empty means the user config dir (e.g. ~/.config/course-client).
	CacheDir string `env:"COURSE_CLIENT_CACHE_DIR"`

	// MetricsEnabled registers Prometheus metrics for client operations.
	MetricsEnabled bool `env:"COURSE_CLIENT_METRICS" envDefault:"false"`
}

// LoadConfig reads Config from the environment, loading a .env file first
// when one is present in the working directory.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("courseclient: parse config: %w", err)
	}
	if cfg.BaseURL == "" {
		return Config{}, fmt.Errorf("courseclient: base URL is required")
	}
	return cfg, nil
}
