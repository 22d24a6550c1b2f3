package strategy

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gridworks/grid-cli/internal/build"
	"github.com/gridworks/grid-cli/internal/matrix"
	"github.com/gridworks/grid-cli/internal/mirror"
	"github.com/gridworks/grid-cli/internal/naming"
	"github.com/gridworks/grid-cli/internal/template"
	"github.com/gridworks/grid-cli/pkg/xos"
)

const (
	// TravisConfigFileName is the provider configuration file probed for
	// inside a project directory.
	TravisConfigFileName = ".travis.yml"

	// ManifestFileName is the fixed name of the rendered build manifest
	// written at the root of a prepared target directory.
	ManifestFileName = "Dockerfile"

	// defaultLanguage is assumed when the configuration omits the
	// language field.
	defaultLanguage = "ruby"
)

// phaseNames lists the four script phases in execution order. Each becomes
// a singleton matrix dimension; they carry the resolved command lists into
// the builds but do not participate in build identity.
var phaseNames = [4]string{"before_install", "install", "before_script", "script"}

// TravisOptions configures a Travis strategy. Zero fields fall back to the
// built-in tables; Timezone is deliberately an explicit input so matrix
// expansion never reads ambient process state.
type TravisOptions struct {
	// BuildRoot is the directory build contexts are prepared under.
	BuildRoot string

	// Timezone is the host timezone recorded in every build's parameters.
	Timezone string

	// VersionFields overrides the language → version-field alias table.
	VersionFields map[string]string

	// Phases overrides the per-language phase default table.
	Phases map[string]PhaseDefaults
}

// Travis derives builds from a .travis.yml configuration and prepares
// container build contexts for them.
type Travis struct {
	buildRoot     string
	timezone      string
	versionFields map[string]string
	phases        map[string]PhaseDefaults
	engine        *template.Engine
}

// NewTravis creates a Travis strategy.
func NewTravis(opts TravisOptions) *Travis {
	s := &Travis{
		buildRoot:     opts.BuildRoot,
		timezone:      opts.Timezone,
		versionFields: opts.VersionFields,
		phases:        opts.Phases,
		engine:        template.NewEngine(),
	}
	if s.versionFields == nil {
		s.versionFields = DefaultVersionFields()
	}
	if s.phases == nil {
		s.phases = DefaultPhases()
	}
	return s
}

// Name returns the fixed strategy identifier.
func (s *Travis) Name() string {
	return "travis"
}

// SupportsProject reports whether dir contains a regular .travis.yml file.
func (s *Travis) SupportsProject(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, TravisConfigFileName))
	return err == nil && info.Mode().IsRegular()
}

// Builds reads the project configuration and returns one Build per matrix
// cell (language × version × environment set). A missing or empty version
// list collapses the matrix and yields zero builds rather than an error.
func (s *Travis) Builds(dir string) ([]*build.Build, error) {
	config, err := s.readConfig(dir)
	if err != nil {
		return nil, err
	}

	origin, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project path: %w", err)
	}

	language := scalarString(config["language"])
	if language == "" {
		language = defaultLanguage
	}

	versionField := language
	if field, ok := s.versionFields[language]; ok {
		versionField = field
	}
	versions := stringList(config[versionField])

	phases := map[string][]string{}
	for _, name := range phaseNames {
		commands := stringList(config[name])
		if len(commands) == 0 {
			commands = s.phases[language].phase(name)
		}
		if commands == nil {
			commands = []string{}
		}
		phases[name] = commands
	}

	envSets, err := parseEnvLines(stringList(config["env"]))
	if err != nil {
		return nil, err
	}

	m := matrix.New()
	m.SetDimension("language", []any{language})
	m.SetDimension("version", anyList(versions))
	m.SetDimension("env", envSets)
	for _, name := range phaseNames {
		m.SetDimension(name, []any{phases[name]})
	}

	projectName := naming.ProjectName(origin)

	var builds []*build.Build
	for _, combo := range m.Compute() {
		b, err := s.buildFor(combo, projectName, origin)
		if err != nil {
			return nil, err
		}
		builds = append(builds, b)
	}
	return builds, nil
}

// buildFor converts one matrix combination into a Build descriptor.
func (s *Travis) buildFor(combo *matrix.Combination, projectName, origin string) (*build.Build, error) {
	params := combo.Values()
	params["origin"] = origin
	params["timezone"] = s.timezone

	// Keys are scoped to the three axes a user actually varies; the script
	// phases are derived values and must not affect build identity.
	key, err := naming.UniqueKey(map[string]any{
		"language": combo.Value("language"),
		"version":  combo.Value("version"),
		"env":      combo.Value("env"),
	})
	if err != nil {
		return nil, err
	}

	return build.New(projectName, s.Name(), key, params, describe(combo)), nil
}

// PrepareBuild mirrors the build's origin tree into the strategy's target
// directory, deleting target-only files and overwriting conflicts, then
// renders the build manifest from the template matching the build's
// language and version and writes it atomically at the target root.
func (s *Travis) PrepareBuild(b *build.Build) (string, error) {
	origin, _ := b.Param("origin").(string)
	if origin == "" {
		return "", fmt.Errorf("build %s has no origin", b.Key())
	}

	target := filepath.Join(s.buildRoot, naming.BuildDirName(b.ProjectName(), b.StrategyName()))
	if err := mirror.Mirror(origin, target, mirror.DefaultOptions()); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFilesystem, err)
	}

	language, _ := b.Param("language").(string)
	version, _ := b.Param("version").(string)
	manifest, err := s.engine.RenderManifest(language, version, b.Params())
	if err != nil {
		return "", err
	}

	manifestPath := filepath.Join(target, ManifestFileName)
	if err := xos.WriteFile(manifestPath, []byte(manifest), 0644); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFilesystem, err)
	}

	return target, nil
}

// readConfig loads and decodes the project's .travis.yml.
func (s *Travis) readConfig(dir string) (map[string]any, error) {
	path := filepath.Join(dir, TravisConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var config map[string]any
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return config, nil
}

// describe renders the human-readable build description:
// "<language> = <version>", suffixed with the environment mapping when it
// is non-empty. The environment renders as sorted JSON so descriptions are
// reproducible across runs.
func describe(combo *matrix.Combination) string {
	desc := fmt.Sprintf("%v = %v", combo.Value("language"), combo.Value("version"))

	env, _ := combo.Value("env").(map[string]string)
	if len(env) > 0 {
		rendered, err := json.Marshal(env)
		if err == nil {
			desc += fmt.Sprintf(", Environment: %s", rendered)
		}
	}
	return desc
}

// parseEnvLines converts the raw env lines into one environment mapping per
// line. With no lines declared, a single empty mapping keeps the env
// dimension from collapsing the matrix.
func parseEnvLines(lines []string) ([]any, error) {
	if len(lines) == 0 {
		return []any{map[string]string{}}, nil
	}

	sets := make([]any, 0, len(lines))
	for _, line := range lines {
		env, err := ParseEnvLine(line)
		if err != nil {
			return nil, err
		}
		sets = append(sets, env)
	}
	return sets, nil
}

// ParseEnvLine parses a space-separated sequence of KEY=VALUE tokens into
// an order-independent mapping. Blank tokens are skipped; a token without
// "=" is ErrEnvFormat.
func ParseEnvLine(line string) (map[string]string, error) {
	env := map[string]string{}
	for _, token := range strings.Fields(line) {
		key, value, ok := strings.Cut(token, "=")
		if !ok {
			return nil, fmt.Errorf("%w: token %q in %q", ErrEnvFormat, token, line)
		}
		env[key] = value
	}
	return env, nil
}

// stringList coerces a decoded YAML value to a list of strings: scalars
// become one-element lists, sequences are converted element-wise, and nil
// stays empty.
func stringList(v any) []string {
	switch value := v.(type) {
	case nil:
		return nil
	case []any:
		list := make([]string, 0, len(value))
		for _, item := range value {
			if s := scalarString(item); s != "" {
				list = append(list, s)
			}
		}
		return list
	default:
		if s := scalarString(v); s != "" {
			return []string{s}
		}
		return nil
	}
}

// scalarString renders a decoded YAML scalar as a string. Version numbers
// decode as ints or floats when unquoted, so those are formatted rather
// than rejected.
func scalarString(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		return ""
	}
}

func anyList(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
