package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/weftlabs/weft/pkg/schema"
	"github.com/weftlabs/weft/pkg/transform"
)

// Definition is the wire/file form of a pipeline: transformations as plain
// records and boundary schemas as embedded JSON Schema documents. Compile
// inflates it into an executable Pipeline.
type Definition struct {
	ID              string                `json:"id"              validate:"required"`
	Transformations []*TransformationSpec `json:"transformations" validate:"dive"`
	InputSchema     map[string]any        `json:"input_schema,omitempty"`
	OutputSchema    map[string]any        `json:"output_schema,omitempty"`
	Metadata        Metadata              `json:"metadata"`
}

// TransformationSpec mirrors transform.Transformation with the validate
// schema expressed as a JSON Schema document.
type TransformationSpec struct {
	ID          string         `json:"id"   validate:"required"`
	Type        string         `json:"type" validate:"required"`
	SourceField string         `json:"source_field,omitempty"`
	TargetField string         `json:"target_field,omitempty"`
	Operation   string         `json:"operation,omitempty"`
	Value       any            `json:"value,omitempty"`
	Condition   string         `json:"condition,omitempty"`
	Schema      map[string]any `json:"schema,omitempty"`
	Priority    int            `json:"priority,omitempty"`

	TrueTransformation  *TransformationSpec `json:"true_transformation,omitempty"`
	FalseTransformation *TransformationSpec `json:"false_transformation,omitempty"`

	ItemTransformations []*TransformationSpec `json:"item_transformations,omitempty"`
	BatchSize           int                   `json:"batch_size,omitempty"`
	Parallel            *bool                 `json:"parallel,omitempty"`
}

// ParseDefinition decodes a JSON pipeline definition.
func ParseDefinition(raw []byte) (*Definition, error) {
	var def Definition
	if err := json.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("failed to parse pipeline definition: %w", err)
	}

	return &def, nil
}

// Compile inflates the definition into an executable Pipeline, compiling all
// embedded JSON Schemas.
func (d *Definition) Compile() (*Pipeline, error) {
	p := &Pipeline{
		ID:       d.ID,
		Metadata: d.Metadata,
	}

	if d.InputSchema != nil {
		compiled, err := schema.NewJSONSchema(d.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("input schema: %w", err)
		}

		p.InputSchema = compiled
	}

	if d.OutputSchema != nil {
		compiled, err := schema.NewJSONSchema(d.OutputSchema)
		if err != nil {
			return nil, fmt.Errorf("output schema: %w", err)
		}

		p.OutputSchema = compiled
	}

	p.Transformations = make([]*transform.Transformation, 0, len(d.Transformations))

	for _, spec := range d.Transformations {
		t, err := spec.Compile()
		if err != nil {
			return nil, err
		}

		p.Transformations = append(p.Transformations, t)
	}

	return p, nil
}

// Compile inflates one transformation record, recursing into conditional
// branches and loop chains.
func (s *TransformationSpec) Compile() (*transform.Transformation, error) {
	t := &transform.Transformation{
		ID:          s.ID,
		Type:        transform.Type(s.Type),
		SourceField: s.SourceField,
		TargetField: s.TargetField,
		Operation:   s.Operation,
		Value:       s.Value,
		Condition:   s.Condition,
		Priority:    s.Priority,
		BatchSize:   s.BatchSize,
		Parallel:    s.Parallel,
	}

	if s.Schema != nil {
		compiled, err := schema.NewJSONSchema(s.Schema)
		if err != nil {
			return nil, fmt.Errorf("transformation %s schema: %w", s.ID, err)
		}

		t.Schema = compiled
	}

	var err error

	if s.TrueTransformation != nil {
		if t.TrueTransformation, err = s.TrueTransformation.Compile(); err != nil {
			return nil, err
		}
	}

	if s.FalseTransformation != nil {
		if t.FalseTransformation, err = s.FalseTransformation.Compile(); err != nil {
			return nil, err
		}
	}

	if len(s.ItemTransformations) > 0 {
		t.ItemTransformations = make([]*transform.Transformation, 0, len(s.ItemTransformations))

		for _, item := range s.ItemTransformations {
			compiled, err := item.Compile()
			if err != nil {
				return nil, err
			}

			t.ItemTransformations = append(t.ItemTransformations, compiled)
		}
	}

	return t, nil
}
