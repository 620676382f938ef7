package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

var errNilSchema = errors.New("json schema definition is nil")

// JSONSchema validates payloads against a JSON Schema document.
type JSONSchema struct {
	compiled *gojsonschema.Schema
}

// NewJSONSchema compiles a JSON Schema given as a decoded document.
func NewJSONSchema(definition map[string]any) (*JSONSchema, error) {
	if definition == nil {
		return nil, errNilSchema
	}

	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(definition))
	if err != nil {
		return nil, fmt.Errorf("failed to compile json schema: %w", err)
	}

	return &JSONSchema{compiled: compiled}, nil
}

// Parse validates value against the schema, returning it unchanged on
// success.
func (s *JSONSchema) Parse(value any) (any, error) {
	result, err := s.compiled.Validate(gojsonschema.NewGoLoader(value))
	if err != nil {
		return nil, err
	}

	if !result.Valid() {
		descriptions := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			descriptions = append(descriptions, desc.String())
		}

		return nil, fmt.Errorf("validation errors: %s", strings.Join(descriptions, "; "))
	}

	return value, nil
}
