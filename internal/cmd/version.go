package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the CLI version, overridable at link time.
var Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the grid version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("grid %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
