// Package build defines the Build descriptor: an immutable value object
// describing one concrete, fully-parameterized build job derived from a
// single matrix cell.
package build

// Build describes one build job. It is created by a strategy's discovery
// step and consumed read-only afterwards; the parameter mapping is copied on
// construction and on access so a Build can never be mutated.
type Build struct {
	projectName  string
	strategyName string
	key          string
	params       map[string]any
	description  string
}

// New constructs a Build descriptor. The parameter mapping is copied.
func New(projectName, strategyName, key string, params map[string]any, description string) *Build {
	return &Build{
		projectName:  projectName,
		strategyName: strategyName,
		key:          key,
		params:       copyParams(params),
		description:  description,
	}
}

// ProjectName returns the stable project identifier the build belongs to.
func (b *Build) ProjectName() string { return b.projectName }

// StrategyName returns the name of the strategy that discovered the build.
func (b *Build) StrategyName() string { return b.strategyName }

// Key returns the build's deterministic unique key. Two builds share a key
// only when their identity-bearing parameters are identical.
func (b *Build) Key() string { return b.key }

// Description returns the human-readable build description.
func (b *Build) Description() string { return b.description }

// Param returns a single parameter value, or nil if unset.
func (b *Build) Param(name string) any { return b.params[name] }

// Params returns a copy of the full parameter mapping.
func (b *Build) Params() map[string]any { return copyParams(b.params) }

func copyParams(params map[string]any) map[string]any {
	out := make(map[string]any, len(params))
	for k, v := range params {
		out[k] = v
	}
	return out
}
