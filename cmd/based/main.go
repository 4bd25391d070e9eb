// based is the engine's project tool.
//
// Usage:
//
//	based new <name>     - Generate a new game skeleton
//	based new            - Interactive wizard (prompts for a name)
//	based version        - Print the tool version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "based",
	Short: "Project tool for the based engine",
	Long: `based scaffolds new games built on the based engine.

Available commands:
  new      - Generate a new game project
  version  - Print the tool version

Examples:
  based new mygame
  based new mygame --module example.com/mygame
  based new`,
}

func init() {
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(versionCmd)
}
