package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.2.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the based tool version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("based %s\n", version)
	},
}
