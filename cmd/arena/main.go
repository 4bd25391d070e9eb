// arena is the engine's sample game: a top-down coin rush in a
// walled arena.
//
// Usage:
//
//	arena                - Play (opens the menu)
//	arena scores         - Show saved round stats
//	arena levels         - List registered level keys
//
// Global flags:
//
//	--config <path> - Engine config YAML (default: ./basedengine.yaml)
//	--db <path>     - Save database path (default: ~/.based/arena.db)
package main

import (
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/wesleyshynes/based-engine-2/engine"
	"github.com/wesleyshynes/based-engine-2/internal/games/arena"
)

var (
	// Global flags
	flagConfig string
	flagDBPath string

	// Root-only flags
	flagWidth      int
	flagHeight     int
	flagDebug      bool
	flagFullscreen bool
	flagProfile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arena",
	Short: "Orbit Arena - grab every coin before the clock runs out",
	Long: `Orbit Arena is a top-down coin rush. Steer the puck with WASD, the
arrow keys or the pointer, shove crates out of the way and collect
all the coins before the timer expires. Cleared rounds bank the
remaining seconds as bonus score.

Available commands:
  scores   - Show the saved high score and round count
  levels   - List registered level keys

Examples:
  arena
  arena --width 1280 --height 720
  arena --debug
  arena scores`,
	Run: runArena,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to engine config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.based/arena.db", "Path to save database")

	rootCmd.Flags().IntVar(&flagWidth, "width", 0, "Window width (overrides config)")
	rootCmd.Flags().IntVar(&flagHeight, "height", 0, "Window height (overrides config)")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "Show the debug overlay and verbose logs")
	rootCmd.Flags().BoolVar(&flagFullscreen, "fullscreen", false, "Start fullscreen")
	rootCmd.Flags().StringVar(&flagProfile, "profile", "", "Write a profile on exit: cpu or mem")

	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
}

func runArena(cmd *cobra.Command, _ []string) {
	cfg, err := engine.LoadConfig(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// A config file can rebrand the window; otherwise use the game's.
	if cfg.Window.Title == engine.DefaultConfig().Window.Title {
		cfg.Window.Title = "Orbit Arena"
	}
	if flagWidth > 0 {
		cfg.Window.Width = flagWidth
	}
	if flagHeight > 0 {
		cfg.Window.Height = flagHeight
	}
	if flagDebug {
		cfg.Debug = true
	}
	if flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if cmd.Flags().Changed("db") || cfg.Save.Path == "" {
		cfg.Save.Path = flagDBPath
	}
	cfg.Save.Namespace = "arena"

	if p := startProfile(flagProfile); p != nil {
		defer p.Stop()
	}

	e := engine.New(cfg)
	defer e.Close()
	arena.Register(e)

	if err := e.Start(arena.LevelMenu); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

func startProfile(mode string) interface{ Stop() } {
	switch mode {
	case "":
		return nil
	case "cpu":
		return profile.Start(profile.CPUProfile, profile.ProfilePath("."))
	case "mem":
		return profile.Start(profile.MemProfile, profile.ProfilePath("."))
	default:
		fmt.Fprintf(os.Stderr, "Warning: unknown profile mode %q, want cpu or mem\n", mode)
		return nil
	}
}
