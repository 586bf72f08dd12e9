package courseclient_test

import (
	"testing"
	"time"

	courseclient "github.com/air846/course-client"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := courseclient.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.BaseURL != "http://localhost:8080/api" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v, want 15s", cfg.Timeout)
	}
	if cfg.ExportTimeout != 60*time.Second {
		t.Errorf("ExportTimeout = %v, want 60s", cfg.ExportTimeout)
	}
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("COURSE_API_BASE_URL", "https://courses.example.com/api")
	t.Setenv("COURSE_API_TIMEOUT", "5s")

	cfg, err := courseclient.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.BaseURL != "https://courses.example.com/api" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
}
