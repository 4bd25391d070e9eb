package main

// Scaffolding templates. Rendered with text/template over projectData;
// the generated files compile as-is once go mod tidy has run.

const mainTmpl = `package main

import (
	"fmt"
	"os"

	"{{.EngineModule}}/engine"

	"{{.Module}}/game"
)

func main() {
	cfg, err := engine.LoadConfig("")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	e := engine.New(cfg)
	defer e.Close()

	e.RegisterLevel("menu", game.NewMenu)

	if err := e.Start("menu"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
`

const levelTmpl = `package game

import (
	"context"

	"{{.EngineModule}}/engine"
	"{{.EngineModule}}/ui"
)

// MenuLevel is the starting point of the game. Replace it with your
// own levels and register them in main.go.
type MenuLevel struct {
	engine.BaseLevel
}

func NewMenu(_ *engine.Engine) engine.Level {
	return &MenuLevel{}
}

func (l *MenuLevel) Preload(ctx context.Context) error {
	// Load assets here. Long preloads can report progress through
	// l.Engine().SetLoadingProgress.
	return nil
}

func (l *MenuLevel) Create() {
	w, h := l.Engine().Size()
	title := ui.NewLabel("title", "{{.Title}}", w/2, h/2)
	title.Align = ui.AlignCenter
	title.Size = 32
	l.Add(title)
}

func (l *MenuLevel) Update(dt float64) {
	if l.Engine().Input().AnyKeyJustPressed() {
		l.Engine().Log().Info("key pressed", "elapsed", l.Engine().Elapsed())
	}
}
`

const configTmpl = `window:
  title: {{.Title}}
  width: 960
  height: 540
  background: "#1a1a2e"
  resizable: true
loop:
  tps: 60
sound:
  sample_rate: 44100
save:
  namespace: {{.Name}}
`

const gomodTmpl = `module {{.Module}}

go 1.25

require {{.EngineModule}} {{.EngineVersion}}
`

const readmeTmpl = `# {{.Title}}

A game built on the based engine.

## Run

    go mod tidy
    go run .

## Layout

    main.go           entry point
    game/menu.go      starter level
    basedengine.yaml  engine config, read from the working directory

Add levels under game/, register them in main.go with
e.RegisterLevel, and switch between them with e.LoadLevel.
`
