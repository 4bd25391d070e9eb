package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/wesleyshynes/based-engine-2/internal/games/arena"
	"github.com/wesleyshynes/based-engine-2/save"
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show saved round stats",
	Long: `Display the persisted high score, last round score and round count.

Examples:
  arena scores
  arena scores --db ./arena.db`,
	Run: runScores,
}

var (
	scoresTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("13"))
	scoresBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("5")).
			Padding(0, 2)
	scoresLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Width(12)
	scoresValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("14"))
)

func runScores(_ *cobra.Command, _ []string) {
	store, err := save.Open(flagDBPath, "arena", nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening save database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	var best, last, played int
	hasBest := store.Load(arena.SaveKeyHighScore, &best)
	store.Load(arena.SaveKeyLastScore, &last)
	store.Load(arena.SaveKeyPlayed, &played)

	if !hasBest && played == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Println("Run 'arena' to play the first one!")
		return
	}

	rows := []string{
		scoresLabelStyle.Render("Best") + scoresValueStyle.Render(fmt.Sprintf("%d", best)),
		scoresLabelStyle.Render("Last round") + scoresValueStyle.Render(fmt.Sprintf("%d", last)),
		scoresLabelStyle.Render("Rounds") + scoresValueStyle.Render(fmt.Sprintf("%d", played)),
	}
	content := scoresTitleStyle.Render("Orbit Arena") + "\n\n" + strings.Join(rows, "\n")
	fmt.Println(scoresBoxStyle.Render(content))
}
