package template

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func manifestData() map[string]any {
	return map[string]any{
		"language":       "ruby",
		"version":        "3.2",
		"timezone":       "Europe/Madrid",
		"env":            map[string]string{"RAILS_ENV": "test"},
		"before_install": []string{},
		"install":        []string{"bundle install"},
		"before_script":  []string{},
		"script":         []string{"bundle exec rake"},
	}
}

func TestRenderManifest(t *testing.T) {
	engine := NewEngine()

	out, err := engine.RenderManifest("ruby", "3.2", manifestData())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"FROM ruby:3.2",
		"ENV TZ=Europe/Madrid",
		"ENV RAILS_ENV=test",
		"RUN bundle install",
		`CMD ["bundle exec rake"]`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("manifest missing %q:\n%s", want, out)
		}
	}
}

func TestRenderManifestFamilyFallback(t *testing.T) {
	engine := NewEngine()

	// No ruby/Dockerfile-3.2.4 template exists; lookup must fall back to
	// the major family.
	data := manifestData()
	data["version"] = "3.2.4"

	out, err := engine.RenderManifest("ruby", "3.2.4", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "FROM ruby:3.2.4") {
		t.Errorf("manifest does not pin the requested version:\n%s", out)
	}
}

func TestRenderManifestNotFound(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name     string
		language string
		version  string
	}{
		{"unknown language", "haskell", "9.4"},
		{"unknown version family", "node_js", "99"},
		{"unparseable version", "ruby", "jruby-head"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.RenderManifest(tt.language, tt.version, manifestData())
			if !errors.Is(err, ErrTemplateNotFound) {
				t.Errorf("err = %v, want ErrTemplateNotFound", err)
			}
		})
	}
}

func TestVersionFamilies(t *testing.T) {
	tests := []struct {
		version string
		want    []string
	}{
		{"3.2.4", []string{"3.2.4", "3.2", "3"}},
		{"3.2", []string{"3.2", "3"}},
		{"20", []string{"20", "20.0"}},
		{"jruby-head", []string{"jruby-head"}},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			if got := versionFamilies(tt.version); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("versionFamilies(%q) = %v, want %v", tt.version, got, tt.want)
			}
		})
	}
}

func TestRenderBadTemplate(t *testing.T) {
	engine := NewEngine()
	if _, err := engine.Render("{{ .unterminated", nil); err == nil {
		t.Error("expected parse error")
	}
}
