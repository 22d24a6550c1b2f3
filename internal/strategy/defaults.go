package strategy

// PhaseDefaults holds the built-in command list for each script phase of a
// language. A phase left empty in the configuration resolves to these.
type PhaseDefaults struct {
	BeforeInstall []string
	Install       []string
	BeforeScript  []string
	Script        []string
}

// DefaultVersionFields maps a language to the configuration key that holds
// its version list. Only languages whose field differs from the language
// name need an entry; everything else falls through to the language name
// itself.
func DefaultVersionFields() map[string]string {
	return map[string]string{
		"ruby": "rvm",
	}
}

// DefaultPhases returns the built-in per-language phase command tables.
// The table is injectable so new CI dialects can register their own
// defaults without touching the matrix logic.
func DefaultPhases() map[string]PhaseDefaults {
	return map[string]PhaseDefaults{
		"ruby": {
			Install: []string{"bundle install"},
			Script:  []string{"bundle exec rake"},
		},
		"node_js": {
			Install: []string{"npm install"},
			Script:  []string{"npm test"},
		},
		"php": {
			Install: []string{"composer install"},
			Script:  []string{"phpunit"},
		},
		"python": {
			Install: []string{"pip install -r requirements.txt"},
			Script:  []string{"python -m pytest"},
		},
		"go": {
			Install: []string{"go get -t ./..."},
			Script:  []string{"go test ./..."},
		},
	}
}

// phase returns the default command list for one named phase of a language.
// Unknown languages or phases resolve to nil, which downstream treats as an
// empty command list.
func (p PhaseDefaults) phase(name string) []string {
	switch name {
	case "before_install":
		return p.BeforeInstall
	case "install":
		return p.Install
	case "before_script":
		return p.BeforeScript
	case "script":
		return p.Script
	}
	return nil
}
