package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wesleyshynes/based-engine-2/engine"
	"github.com/wesleyshynes/based-engine-2/internal/games/arena"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List registered levels",
	Long:  `Shows every level key the arena binary registers on start.`,
	Run:   runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	cfg := engine.DefaultConfig()
	cfg.Sound.Muted = true
	e := engine.New(cfg)
	defer e.Close()
	arena.Register(e)

	keys := e.Levels()
	if len(keys) == 0 {
		fmt.Println("No levels registered.")
		return
	}

	fmt.Println("Registered levels:")
	fmt.Println()

	// Calculate column width
	maxKeyLen := 3 // "Key" header
	for _, k := range keys {
		if len(k) > maxKeyLen {
			maxKeyLen = len(k)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %s\n", maxKeyLen, "Key", "Note")
	fmt.Printf("  %-*s  %s\n", maxKeyLen, "---", "----")

	// Print levels
	for _, k := range keys {
		note := ""
		if k == arena.LevelMenu {
			note = "start level"
		}
		fmt.Printf("  %-*s  %s\n", maxKeyLen, k, note)
	}

	fmt.Println()
	fmt.Println("Run 'arena' to start at the menu.")
}
