package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gridworks/grid-cli/internal/strategy"
)

// projectDir resolves the optional positional directory argument, defaulting
// to the current working directory.
func projectDir(args []string) (string, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve project directory: %w", err)
	}
	return abs, nil
}

// defaultBuildRoot returns the directory build contexts are prepared under
// when --build-root is not given.
func defaultBuildRoot() string {
	cache, err := os.UserCacheDir()
	if err != nil {
		cache = os.TempDir()
	}
	return filepath.Join(cache, "grid", "builds")
}

// hostTimezone reads the host's configured timezone. The value is injected
// into strategies as an explicit parameter so matrix expansion never reads
// ambient process state.
func hostTimezone() string {
	if tz := os.Getenv("TZ"); tz != "" {
		return tz
	}
	if data, err := os.ReadFile("/etc/timezone"); err == nil {
		if tz := strings.TrimSpace(string(data)); tz != "" {
			return tz
		}
	}
	return time.Now().Location().String()
}

// newRegistry builds the strategy registry probed by every command. New CI
// dialects get registered here; probe order is registration order.
func newRegistry(buildRoot, timezone string) *strategy.Registry {
	if buildRoot == "" {
		buildRoot = defaultBuildRoot()
	}
	if timezone == "" {
		timezone = hostTimezone()
	}

	r := strategy.NewRegistry()
	r.Register(strategy.NewTravis(strategy.TravisOptions{
		BuildRoot: buildRoot,
		Timezone:  timezone,
	}))
	return r
}

// shortKey renders the displayed prefix of a build key.
func shortKey(key string) string {
	if len(key) > 12 {
		return key[:12]
	}
	return key
}
