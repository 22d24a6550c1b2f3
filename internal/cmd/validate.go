package cmd

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/gridworks/grid-cli/internal/strategy"
)

//go:embed schemas/travis-config.v1.schema.json
var schemaFS embed.FS

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Validate a project's CI configuration",
	Long: `Validates the project's .travis.yml against the configuration JSON Schema.
This catches structural mistakes (wrong field types, malformed lists) before
they surface as surprising matrices.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	dir, err := projectDir(args)
	if err != nil {
		return err
	}

	configPath := filepath.Join(dir, strategy.TravisConfigFileName)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("%s not found in %s", strategy.TravisConfigFileName, dir)
	}

	fmt.Printf("🔍 Validating %s...\n", configPath)

	configBytes, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read configuration: %w", err)
	}

	// The schema validator speaks JSON, so the YAML document is decoded
	// and re-encoded before validation.
	var document any
	if err := yaml.Unmarshal(configBytes, &document); err != nil {
		return fmt.Errorf("failed to parse configuration: %w", err)
	}
	documentBytes, err := json.Marshal(document)
	if err != nil {
		return fmt.Errorf("failed to convert configuration to JSON: %w", err)
	}

	schemaBytes, err := schemaFS.ReadFile("schemas/travis-config.v1.schema.json")
	if err != nil {
		return fmt.Errorf("failed to load JSON schema: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaBytes),
		gojsonschema.NewBytesLoader(documentBytes),
	)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if result.Valid() {
		fmt.Println("✅ Configuration is valid!")
		return nil
	}

	fmt.Println("\n❌ Validation failed with the following errors:")
	fmt.Println()
	for i, desc := range result.Errors() {
		fmt.Printf("%d. %s\n", i+1, desc.String())
		fmt.Printf("   Field: %s\n\n", desc.Field())
	}

	return fmt.Errorf("validation failed with %d errors", len(result.Errors()))
}
