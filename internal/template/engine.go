// Package template renders build manifests from embedded templates.
//
// Manifest templates are addressed by a two-part key: the language and a
// version family, laid out as templates/<language>/Dockerfile-<family>.tmpl.
// Lookup tries the exact version first and then falls back to broader
// semver families (major.minor, then major), so a config asking for ruby
// 3.2.4 is served by the ruby/Dockerfile-3 template when no narrower one
// is registered.
package template

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/semver/v3"
)

//go:embed all:templates
var templatesFS embed.FS

// ErrTemplateNotFound indicates that no manifest template matches the
// requested language/version pair in any version family.
var ErrTemplateNotFound = errors.New("manifest template not found")

// Engine provides manifest template rendering.
type Engine struct {
	funcMap template.FuncMap
}

// NewEngine creates a new template engine.
func NewEngine() *Engine {
	return &Engine{
		funcMap: template.FuncMap{
			"join":  strings.Join,
			"upper": strings.ToUpper,
			"lower": strings.ToLower,
		},
	}
}

// Render renders a template string with the given data.
func (e *Engine) Render(templateStr string, data any) (string, error) {
	tmpl, err := template.New("manifest").Funcs(e.funcMap).Parse(templateStr)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// RenderManifest resolves the manifest template for a language/version pair
// and renders it with the given data. Returns ErrTemplateNotFound when no
// version family matches.
func (e *Engine) RenderManifest(language, version string, data any) (string, error) {
	content, err := e.lookup(language, version)
	if err != nil {
		return "", err
	}
	return e.Render(content, data)
}

// lookup finds the template source for the narrowest matching version
// family of a language.
func (e *Engine) lookup(language, version string) (string, error) {
	for _, family := range versionFamilies(version) {
		path := fmt.Sprintf("templates/%s/Dockerfile-%s.tmpl", language, family)
		content, err := templatesFS.ReadFile(path)
		if err == nil {
			return string(content), nil
		}
	}
	return "", fmt.Errorf("%w: %s/%s", ErrTemplateNotFound, language, version)
}

// versionFamilies returns lookup candidates from narrowest to broadest:
// the literal version, then major.minor, then major. Versions that do not
// parse as (partial) semver only get the literal candidate.
func versionFamilies(version string) []string {
	families := []string{version}

	v, err := semver.NewVersion(version)
	if err != nil {
		return families
	}

	for _, family := range []string{
		fmt.Sprintf("%d.%d", v.Major(), v.Minor()),
		fmt.Sprintf("%d", v.Major()),
	} {
		if family != version {
			families = append(families, family)
		}
	}
	return families
}
