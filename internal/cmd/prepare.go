package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/gridworks/grid-cli/internal/build"
	"github.com/gridworks/grid-cli/internal/strategy"
)

var (
	prepareKey       string
	prepareAll       bool
	prepareBuildRoot string
	prepareTimezone  string
)

var prepareCmd = &cobra.Command{
	Use:   "prepare [dir]",
	Short: "Materialize build contexts for a project's matrix builds",
	Long: `Prepares ready-to-build contexts: for each selected build the project
source tree is mirrored into the build directory (stale files deleted,
conflicts overwritten) and a Dockerfile is rendered from the build's
parameters.

With no flags an interactive picker selects one build. Use --key to select
a build by key prefix, or --all to prepare every build in sequence.

Examples:
  grid prepare                      # pick a build interactively
  grid prepare --key 3f2a           # prepare the build matching the prefix
  grid prepare --all ./my-service   # prepare every matrix cell`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPrepare,
}

func init() {
	rootCmd.AddCommand(prepareCmd)
	prepareCmd.Flags().StringVarP(&prepareKey, "key", "k", "", "Select the build whose unique key starts with this prefix")
	prepareCmd.Flags().BoolVar(&prepareAll, "all", false, "Prepare every build in the matrix")
	prepareCmd.Flags().StringVar(&prepareBuildRoot, "build-root", "", "Directory to prepare build contexts under (default: user cache dir)")
	prepareCmd.Flags().StringVar(&prepareTimezone, "timezone", "", "Timezone recorded in build parameters (default: host timezone)")
}

func runPrepare(cmd *cobra.Command, args []string) error {
	dir, err := projectDir(args)
	if err != nil {
		return err
	}

	s, err := newRegistry(prepareBuildRoot, prepareTimezone).For(dir)
	if err != nil {
		return err
	}

	builds, err := s.Builds(dir)
	if err != nil {
		return err
	}
	if len(builds) == 0 {
		return fmt.Errorf("configuration declares no runtime versions - nothing to prepare")
	}

	if prepareAll {
		return prepareEvery(s, builds)
	}

	selected, err := selectBuild(builds, prepareKey)
	if err != nil {
		return err
	}

	target, err := s.PrepareBuild(selected)
	if err != nil {
		return err
	}

	fmt.Printf("✅ Prepared %s\n   %s\n", selected.Description(), target)
	return nil
}

// prepareEvery prepares builds one at a time. Builds of the same project
// and strategy share a target directory, so preparation is strictly
// sequential and each context should be consumed before the next prepare.
func prepareEvery(s strategy.Strategy, builds []*build.Build) error {
	bar := progressbar.NewOptions(len(builds),
		progressbar.OptionSetDescription("Preparing"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
	)

	for _, b := range builds {
		target, err := s.PrepareBuild(b)
		if err != nil {
			return fmt.Errorf("failed to prepare %s: %w", b.Description(), err)
		}
		bar.Add(1)
		fmt.Printf("✅ %s → %s\n", b.Description(), target)
	}
	return nil
}

// selectBuild picks one build by key prefix, or interactively when no
// prefix is given.
func selectBuild(builds []*build.Build, keyPrefix string) (*build.Build, error) {
	if keyPrefix != "" {
		var matches []*build.Build
		for _, b := range builds {
			if strings.HasPrefix(b.Key(), keyPrefix) {
				matches = append(matches, b)
			}
		}
		switch len(matches) {
		case 0:
			return nil, fmt.Errorf("no build matches key prefix %q", keyPrefix)
		case 1:
			return matches[0], nil
		default:
			return nil, fmt.Errorf("key prefix %q is ambiguous (%d matches)", keyPrefix, len(matches))
		}
	}

	if len(builds) == 1 {
		return builds[0], nil
	}

	items := make([]string, len(builds))
	for i, b := range builds {
		items[i] = fmt.Sprintf("%s  %s", shortKey(b.Key()), b.Description())
	}

	prompt := promptui.Select{
		Label: "Select build to prepare",
		Items: items,
		Size:  10,
	}
	i, _, err := prompt.Run()
	if err != nil {
		return nil, fmt.Errorf("selection aborted: %w", err)
	}
	return builds[i], nil
}
