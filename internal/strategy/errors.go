package strategy

import "errors"

// Error kinds surfaced by strategies. None are retried internally; callers
// own any retry or backoff policy around Builds and PrepareBuild.
var (
	// ErrConfigNotFound indicates the provider configuration file does not
	// exist in the project directory. Callers should probe SupportsProject
	// before calling Builds.
	ErrConfigNotFound = errors.New("CI configuration file not found")

	// ErrConfigParse indicates the configuration file exists but is not a
	// valid structured document.
	ErrConfigParse = errors.New("CI configuration is not parseable")

	// ErrEnvFormat indicates an environment line token without a KEY=VALUE
	// shape.
	ErrEnvFormat = errors.New("malformed environment line")

	// ErrNoStrategy indicates no registered strategy supports the project.
	ErrNoStrategy = errors.New("no strategy supports this project")

	// ErrFilesystem wraps mirror or manifest-write failures during build
	// preparation. A failed prepare leaves a partial target behind; the
	// caller must treat it as requiring a full re-mirror.
	ErrFilesystem = errors.New("filesystem operation failed")
)
