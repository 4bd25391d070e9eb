package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "mygame", false},
		{"with dash", "my-game", false},
		{"with underscore", "my_game", false},
		{"with digits", "game2048", false},
		{"empty", "", true},
		{"uppercase", "MyGame", true},
		{"leading digit", "2048game", true},
		{"leading dash", "-game", true},
		{"spaces", "my game", true},
		{"path separator", "foo/bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateName(%q) error = %v, expected error %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestScaffoldWritesProjectSkeleton(t *testing.T) {
	t.Chdir(t.TempDir())

	if err := scaffold("mygame", "example.com/mygame"); err != nil {
		t.Fatalf("scaffold() error = %v", err)
	}

	for _, f := range []string{
		"main.go",
		filepath.Join("game", "menu.go"),
		"basedengine.yaml",
		"go.mod",
		"README.md",
	} {
		if _, err := os.Stat(filepath.Join("mygame", f)); err != nil {
			t.Errorf("generated project missing %s: %v", f, err)
		}
	}

	gomod, err := os.ReadFile(filepath.Join("mygame", "go.mod"))
	if err != nil {
		t.Fatalf("reading go.mod: %v", err)
	}
	if !strings.Contains(string(gomod), "module example.com/mygame") {
		t.Errorf("go.mod does not declare the requested module path:\n%s", gomod)
	}
	if !strings.Contains(string(gomod), engineModule) {
		t.Errorf("go.mod does not require the engine:\n%s", gomod)
	}

	mainSrc, err := os.ReadFile(filepath.Join("mygame", "main.go"))
	if err != nil {
		t.Fatalf("reading main.go: %v", err)
	}
	if !strings.Contains(string(mainSrc), `"example.com/mygame/game"`) {
		t.Errorf("main.go does not import the project's game package:\n%s", mainSrc)
	}

	cfg, err := os.ReadFile(filepath.Join("mygame", "basedengine.yaml"))
	if err != nil {
		t.Fatalf("reading basedengine.yaml: %v", err)
	}
	if !strings.Contains(string(cfg), "namespace: mygame") {
		t.Errorf("config does not namespace saves by project:\n%s", cfg)
	}
}

func TestScaffoldTitleReplacesDashes(t *testing.T) {
	t.Chdir(t.TempDir())

	if err := scaffold("space-miner", "example.com/space-miner"); err != nil {
		t.Fatalf("scaffold() error = %v", err)
	}
	menu, err := os.ReadFile(filepath.Join("space-miner", "game", "menu.go"))
	if err != nil {
		t.Fatalf("reading menu.go: %v", err)
	}
	if !strings.Contains(string(menu), `"space miner"`) {
		t.Errorf("level title not derived from project name:\n%s", menu)
	}
}

func TestScaffoldRefusesNonEmptyDirectory(t *testing.T) {
	t.Chdir(t.TempDir())

	if err := os.MkdirAll(filepath.Join("taken", "stuff"), 0o755); err != nil {
		t.Fatal(err)
	}
	err := scaffold("taken", "example.com/taken")
	if err == nil {
		t.Fatal("scaffold() into a non-empty directory succeeded, expected an error")
	}
	if !strings.Contains(err.Error(), "not empty") {
		t.Errorf("scaffold() error = %v, expected a not-empty complaint", err)
	}
}

func TestScaffoldAcceptsExistingEmptyDirectory(t *testing.T) {
	t.Chdir(t.TempDir())

	if err := os.Mkdir("fresh", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := scaffold("fresh", "example.com/fresh"); err != nil {
		t.Errorf("scaffold() into an empty directory error = %v", err)
	}
}
