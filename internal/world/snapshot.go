package world

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

//go:embed snapshot_schema.json
var snapshotSchemaJSON string

// ValidateSnapshot validates raw snapshot bytes (JSON) against the
// embedded schema.
func ValidateSnapshot(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(snapshotSchemaJSON)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validate snapshot schema: %w", err)
	}
	if result.Valid() {
		return nil
	}

	errs := make([]string, 0, len(result.Errors()))
	for _, schemaErr := range result.Errors() {
		errs = append(errs, schemaErr.String())
	}
	sort.Strings(errs)

	return fmt.Errorf("snapshot schema validation failed: %s", strings.Join(errs, "; "))
}

// ParseSnapshot decodes and validates a snapshot from JSON bytes.
// Missing top-level maps are normalized to empty maps.
func ParseSnapshot(data []byte) (*State, error) {
	if err := ValidateSnapshot(data); err != nil {
		return nil, err
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	if st.Users == nil {
		st.Users = map[string]*User{}
	}
	if st.Orders == nil {
		st.Orders = map[string]*Order{}
	}
	if st.Products == nil {
		st.Products = map[string]*Product{}
	}
	return &st, nil
}

// LoadSnapshot reads a snapshot file. YAML files (.yaml/.yml) are
// converted to JSON before validation so both formats share one schema
// and one decode path.
func LoadSnapshot(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	if isYAMLPath(path) {
		data, err = yamlToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("convert snapshot yaml: %w", err)
		}
	}
	return ParseSnapshot(data)
}

func isYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// yamlToJSON re-encodes a YAML document as JSON bytes.
func yamlToJSON(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	out, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode yaml as json: %w", err)
	}
	return out, nil
}
