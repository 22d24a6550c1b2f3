package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var buildsCmd = &cobra.Command{
	Use:   "builds [dir]",
	Short: "List the builds derived from a project's CI test matrix",
	Long: `Reads the project's CI configuration, expands its test matrix and lists
one build per matrix cell with its unique key.

Examples:
  grid builds                # current directory
  grid builds ./my-service   # explicit project directory`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuilds,
}

func init() {
	rootCmd.AddCommand(buildsCmd)
}

func runBuilds(cmd *cobra.Command, args []string) error {
	dir, err := projectDir(args)
	if err != nil {
		return err
	}

	s, err := newRegistry("", "").For(dir)
	if err != nil {
		return err
	}

	builds, err := s.Builds(dir)
	if err != nil {
		return err
	}

	if len(builds) == 0 {
		fmt.Println("⚠️  Configuration declares no runtime versions - no builds to derive")
		return nil
	}

	fmt.Printf("🔍 Found %d build(s) for %s [%s]:\n", len(builds), builds[0].ProjectName(), s.Name())
	for _, b := range builds {
		fmt.Printf("   %s  %s\n", shortKey(b.Key()), b.Description())
	}
	return nil
}
