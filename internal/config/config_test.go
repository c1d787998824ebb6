package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Storage != "sqlite" {
		t.Errorf("expected storage 'sqlite', got %q", cfg.Storage)
	}
	if cfg.AtomicLinking {
		t.Error("atomic_linking should default to false")
	}
	if cfg.Caption.BaseURL != "http://localhost:8000" {
		t.Errorf("expected default base URL, got %q", cfg.Caption.BaseURL)
	}
	if cfg.Caption.TimeoutDuration() != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.Caption.TimeoutDuration())
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")

	content := `
storage = "memory"
atomic_linking = true

[caption]
base_url = "https://captions.example.com"
timeout = "5s"
fallback = "Describe this photo yourself."
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Storage != "memory" {
		t.Errorf("expected storage 'memory', got %q", cfg.Storage)
	}
	if !cfg.AtomicLinking {
		t.Error("expected atomic_linking true")
	}
	if cfg.Caption.BaseURL != "https://captions.example.com" {
		t.Errorf("base URL = %q", cfg.Caption.BaseURL)
	}
	if cfg.Caption.TimeoutDuration() != 5*time.Second {
		t.Errorf("timeout = %v", cfg.Caption.TimeoutDuration())
	}
	if cfg.Caption.Fallback != "Describe this photo yourself." {
		t.Errorf("fallback = %q", cfg.Caption.Fallback)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PHOTODIARYCTL_STORAGE", "memory")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage != "memory" {
		t.Errorf("expected env override 'memory', got %q", cfg.Storage)
	}
}

func TestTimeoutDurationFallsBack(t *testing.T) {
	c := CaptionConfig{Timeout: "not-a-duration"}
	if c.TimeoutDuration() != 30*time.Second {
		t.Errorf("expected 30s for unparseable timeout, got %v", c.TimeoutDuration())
	}
	c = CaptionConfig{Timeout: "-5s"}
	if c.TimeoutDuration() != 30*time.Second {
		t.Errorf("expected 30s for negative timeout, got %v", c.TimeoutDuration())
	}
}
