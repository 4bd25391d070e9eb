package engine

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Window.Width != 960 || cfg.Window.Height != 540 {
		t.Errorf("default window = %dx%d, expected 960x540", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Title != "based game" {
		t.Errorf("default title = %q, expected %q", cfg.Window.Title, "based game")
	}
	if !cfg.Window.Resizable {
		t.Error("default window not resizable")
	}
	if cfg.Loop.TPS != 60 {
		t.Errorf("default tps = %d, expected 60", cfg.Loop.TPS)
	}
	if cfg.Sound.SampleRate != 44100 {
		t.Errorf("default sample rate = %d, expected 44100", cfg.Sound.SampleRate)
	}
	if cfg.Save.Namespace != "based" {
		t.Errorf("default save namespace = %q, expected based", cfg.Save.Namespace)
	}
	if cfg.Debug {
		t.Error("debug enabled by default")
	}
}

func TestWithDefaultsFillsZeroFields(t *testing.T) {
	cfg := Config{}
	cfg.Window.Width = 320

	got := cfg.withDefaults()
	if got.Window.Width != 320 {
		t.Errorf("width = %d, expected explicit 320 kept", got.Window.Width)
	}
	if got.Window.Height != 540 {
		t.Errorf("height = %d, expected default 540", got.Window.Height)
	}
	if got.Loop.TPS != 60 || got.Sound.SampleRate != 44100 {
		t.Errorf("loop/sound defaults not filled: tps %d, rate %d", got.Loop.TPS, got.Sound.SampleRate)
	}
	if got.Window.Title == "" || got.Window.Background == "" {
		t.Error("title/background defaults not filled")
	}
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	data := []byte("window:\n  width: 1280\n  title: Orbit Arena\nsave:\n  namespace: orbit\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Window.Width != 1280 {
		t.Errorf("width = %d, expected 1280", cfg.Window.Width)
	}
	if cfg.Window.Title != "Orbit Arena" {
		t.Errorf("title = %q, expected Orbit Arena", cfg.Window.Title)
	}
	if cfg.Window.Height != 540 {
		t.Errorf("height = %d, expected default 540 to survive the overlay", cfg.Window.Height)
	}
	if cfg.Save.Namespace != "orbit" {
		t.Errorf("namespace = %q, expected orbit", cfg.Save.Namespace)
	}
}

func TestLoadConfigMissingExplicitPath(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadConfig() on a missing explicit path returned nil error")
	}
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("window: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() on malformed yaml returned nil error")
	}
}

func TestLoadConfigLocalFile(t *testing.T) {
	t.Chdir(t.TempDir())
	data := []byte("loop:\n  tps: 120\n")
	if err := os.WriteFile("basedengine.yaml", data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Loop.TPS != 120 {
		t.Errorf("tps = %d, expected 120 from local basedengine.yaml", cfg.Loop.TPS)
	}
}

func TestLoadConfigFallsBackToDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Window.Width != 960 {
		t.Errorf("width = %d, expected embedded default 960", cfg.Window.Width)
	}
}
