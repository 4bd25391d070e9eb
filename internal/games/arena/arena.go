// Package arena is the sample game: a top-down coin rush. The player
// steers a puck around a walled arena, shoving crates aside to grab
// every coin before the clock runs out. It exists to exercise the
// whole engine surface: level transitions, the entity lifecycle,
// physics bodies and sensors, camera follow and shake, synthesized
// sound, UI widgets and the save store.
package arena

import (
	"image/color"

	"github.com/wesleyshynes/based-engine-2/engine"
)

// Registry keys for the game's levels.
const (
	LevelMenu = "menu"
	LevelPlay = "arena"
)

// Save keys, under the engine's save namespace. Exported so the
// arena binary's scores command can read them back outside a running
// engine.
const (
	SaveKeyHighScore = "arena.highscore"
	SaveKeyLastScore = "arena.lastscore"
	SaveKeyPlayed    = "arena.played"
)

var (
	colorFloor  = color.RGBA{R: 0x18, G: 0x18, B: 0x26, A: 0xff}
	colorGrid   = color.RGBA{R: 0x22, G: 0x22, B: 0x34, A: 0xff}
	colorWall   = color.RGBA{R: 0x3c, G: 0x3c, B: 0x52, A: 0xff}
	colorPlayer = color.RGBA{R: 0x6e, G: 0x9f, B: 0xff, A: 0xff}
	colorCoin   = color.RGBA{R: 0xff, G: 0xc0, B: 0x3e, A: 0xff}
	colorCrate  = color.RGBA{R: 0x8a, G: 0x5c, B: 0x3c, A: 0xff}
)

// Register wires the game's levels into the engine.
func Register(e *engine.Engine) {
	e.RegisterLevels(map[string]engine.LevelFunc{
		LevelMenu: NewMenu,
		LevelPlay: NewPlay,
	})
}
