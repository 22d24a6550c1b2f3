// Package naming derives stable identifiers from project paths and build
// parameters. Every generated directory name and build key depends on these
// functions being deterministic, so keys are computed over a canonical
// serialization that is independent of map iteration order.
package naming

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeRuns = regexp.MustCompile(`[^a-z0-9-_.]+`)

// ProjectName derives a filesystem-safe project identifier from a directory
// path: the basename, lowercased, with unsafe character runs collapsed to a
// single dash.
func ProjectName(dir string) string {
	base := filepath.Base(filepath.Clean(dir))
	name := unsafeRuns.ReplaceAllString(strings.ToLower(base), "-")
	name = strings.Trim(name, "-")
	if name == "" || name == "." {
		return "project"
	}
	return name
}

// BuildDirName derives the directory name a strategy prepares its build
// contexts in, namespaced by the strategy so two dialects never collide on
// the same project.
func BuildDirName(projectName, strategyName string) string {
	return projectName + "-" + strategyName
}

// UniqueKey derives a stable, collision-resistant key from a parameter
// mapping. Structurally equal mappings yield the same key regardless of
// insertion order: the mapping is serialized as JSON (which sorts map keys
// canonically) and hashed with SHA-256.
func UniqueKey(params map[string]any) (string, error) {
	canonical, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("failed to serialize key parameters: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
