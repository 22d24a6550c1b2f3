// Package cmd implements the grid CLI commands.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "grid",
	Short: "Grid CLI - Containerized build contexts from CI test matrices",
	Long: `Grid inspects a project's CI configuration and derives one containerized
build definition per point in its combinatorial test matrix (language x
runtime version x environment set), then materializes each as a
ready-to-build context: a mirrored source tree plus a generated Dockerfile.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}
