// Package strategy turns a project's CI configuration into a set of
// concrete, uniquely-keyed build descriptors and prepares on-disk build
// contexts for them.
//
// Each CI dialect is one Strategy implementation; a Registry probes the
// registered strategies in order and picks the first one whose
// configuration file is present in the project directory.
package strategy

import (
	"fmt"

	"github.com/gridworks/grid-cli/internal/build"
)

// Strategy is the pluggable per-CI-dialect contract.
type Strategy interface {
	// Name returns the fixed strategy identifier, used as a namespace
	// component in generated keys and directory names.
	Name() string

	// SupportsProject reports whether the project directory contains the
	// provider-specific configuration file. Existence check only, no
	// content validation and no side effects.
	SupportsProject(dir string) bool

	// Builds reads the project's CI configuration and returns one Build
	// per cell of its combinatorial test matrix.
	Builds(dir string) ([]*build.Build, error)

	// PrepareBuild materializes a previously discovered Build as a
	// ready-to-build context (mirrored source tree plus a rendered
	// manifest) and returns the target directory. Idempotent at the
	// filesystem level, not transactional.
	PrepareBuild(b *build.Build) (string, error)
}

// Registry holds strategies in registration order.
type Registry struct {
	strategies []Strategy
}

// NewRegistry creates an empty strategy registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a strategy. Registration order is probe order.
func (r *Registry) Register(s Strategy) {
	r.strategies = append(r.strategies, s)
}

// For probes the registered strategies in order and returns the first one
// that supports the project directory.
func (r *Registry) For(dir string) (Strategy, error) {
	for _, s := range r.strategies {
		if s.SupportsProject(dir) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNoStrategy, dir)
}

// List returns the registered strategy names in probe order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.strategies))
	for _, s := range r.strategies {
		names = append(names, s.Name())
	}
	return names
}
