package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	engineModule  = "github.com/wesleyshynes/based-engine-2"
	engineVersion = "v" + version
)

var flagModule string

var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Generate a new game project",
	Long: `Create a directory skeleton for a game built on the based engine.

Generates:
  <name>/main.go           - entry point wiring up the engine
  <name>/game/menu.go      - a starter level
  <name>/basedengine.yaml  - engine config, read from the working directory
  <name>/go.mod            - module requiring the engine
  <name>/README.md

With no name and an interactive terminal, prompts for one.

Examples:
  based new mygame
  based new mygame --module example.com/mygame`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNew,
}

func init() {
	newCmd.Flags().StringVar(&flagModule, "module", "", "Module path for go.mod (default github.com/you/<name>)")
}

func runNew(_ *cobra.Command, args []string) error {
	var name string
	if len(args) > 0 {
		name = args[0]
	} else {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("usage: based new <name> (stdin is not a terminal, cannot prompt)")
		}
		picked, err := promptName()
		if err != nil {
			return err
		}
		if picked == "" {
			// User cancelled the wizard.
			return nil
		}
		name = picked
	}
	if err := validateName(name); err != nil {
		return err
	}

	module := flagModule
	if module == "" {
		module = "github.com/you/" + name
	}

	if err := scaffold(name, module); err != nil {
		return err
	}

	fmt.Printf("Created %s/\n", name)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Printf("  cd %s\n", name)
	fmt.Println("  go mod tidy")
	fmt.Println("  go run .")
	return nil
}

var nameRe = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

func validateName(name string) error {
	if !nameRe.MatchString(name) {
		return fmt.Errorf("invalid name %q: use lowercase letters, digits, - or _, starting with a letter", name)
	}
	return nil
}

// projectData feeds the scaffolding templates.
type projectData struct {
	Name          string
	Title         string
	Module        string
	EngineModule  string
	EngineVersion string
}

// scaffold renders the project skeleton into a directory named after
// the project. It refuses to write into an existing non-empty
// directory so it can never clobber someone's work.
func scaffold(name, module string) error {
	if entries, err := os.ReadDir(name); err == nil && len(entries) > 0 {
		return fmt.Errorf("directory %s already exists and is not empty", name)
	}

	data := projectData{
		Name:          name,
		Title:         strings.ReplaceAll(name, "-", " "),
		Module:        module,
		EngineModule:  engineModule,
		EngineVersion: engineVersion,
	}

	files := []struct {
		path string
		tmpl string
	}{
		{"main.go", mainTmpl},
		{filepath.Join("game", "menu.go"), levelTmpl},
		{"basedengine.yaml", configTmpl},
		{"go.mod", gomodTmpl},
		{"README.md", readmeTmpl},
	}
	for _, f := range files {
		if err := renderFile(filepath.Join(name, f.path), f.tmpl, data); err != nil {
			return err
		}
	}
	return nil
}

func renderFile(path, tmplText string, data projectData) error {
	t, err := template.New(filepath.Base(path)).Parse(tmplText)
	if err != nil {
		return fmt.Errorf("parse template for %s: %w", path, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
