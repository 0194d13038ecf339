package action

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed trajectory_schema.json
var trajectorySchemaJSON string

// ValidateTrajectory validates raw trajectory bytes (JSON) against the
// embedded schema: an array of {name, kwargs} entries.
func ValidateTrajectory(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(trajectorySchemaJSON)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validate trajectory schema: %w", err)
	}
	if result.Valid() {
		return nil
	}

	errs := make([]string, 0, len(result.Errors()))
	for _, schemaErr := range result.Errors() {
		errs = append(errs, schemaErr.String())
	}
	sort.Strings(errs)

	return fmt.Errorf("trajectory schema validation failed: %s", strings.Join(errs, "; "))
}

// ParseTrajectory decodes and validates a trajectory from JSON bytes.
func ParseTrajectory(data []byte) ([]Action, error) {
	if err := ValidateTrajectory(data); err != nil {
		return nil, err
	}
	var actions []Action
	if err := json.Unmarshal(data, &actions); err != nil {
		return nil, fmt.Errorf("parse trajectory: %w", err)
	}
	return actions, nil
}

// LoadTrajectory reads a trajectory file. YAML files are converted to
// JSON first so both formats share one schema and decode path.
func LoadTrajectory(path string) ([]Action, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trajectory: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("parse trajectory yaml: %w", err)
		}
		data, err = json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode trajectory yaml as json: %w", err)
		}
	}
	return ParseTrajectory(data)
}
