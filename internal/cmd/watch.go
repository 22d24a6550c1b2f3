package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gridworks/grid-cli/internal/strategy"
	"github.com/gridworks/grid-cli/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch the CI configuration and re-list builds on change",
	Long: `Watches the project's CI configuration file and re-derives the build
matrix whenever it changes. Useful while editing a configuration to see
how the matrix expands. Stop with Ctrl-C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir, err := projectDir(args)
	if err != nil {
		return err
	}

	watcher, err := watch.New(dir, strategy.TravisConfigFileName, watch.DefaultDebounce)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Stop()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := watcher.Start(ctx); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	fmt.Printf("👀 Watching %s (Ctrl-C to stop)\n\n", filepath.Join(dir, strategy.TravisConfigFileName))
	printBuilds(dir)

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\n👋 Stopped watching")
			return nil
		case <-watcher.Events():
			fmt.Printf("♻️  %s changed\n", strategy.TravisConfigFileName)
			printBuilds(dir)
		case err := <-watcher.Errors():
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		}
	}
}

// printBuilds lists the current matrix, reporting derivation errors without
// stopping the watch.
func printBuilds(dir string) {
	s, err := newRegistry("", "").For(dir)
	if err != nil {
		fmt.Printf("⚠️  %v\n", err)
		return
	}

	builds, err := s.Builds(dir)
	if err != nil {
		fmt.Printf("⚠️  %v\n", err)
		return
	}
	if len(builds) == 0 {
		fmt.Println("⚠️  Configuration declares no runtime versions - no builds to derive")
		return
	}

	fmt.Printf("🔍 %d build(s):\n", len(builds))
	for _, b := range builds {
		fmt.Printf("   %s  %s\n", shortKey(b.Key()), b.Description())
	}
	fmt.Println()
}
