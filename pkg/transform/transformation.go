// Package transform implements the typed data transformations a pipeline is
// built from: a flat Transformation record whose field meanings are keyed by
// Type, and an Executor that dispatches one transformation to its
// implementation.
package transform

import "github.com/weftlabs/weft/pkg/schema"

// Type discriminates the transformation kinds the executor understands.
type Type string

const (
	TypeMap         Type = "map"
	TypeFilter      Type = "filter"
	TypeAggregate   Type = "aggregate"
	TypeFormat      Type = "format"
	TypeExtract     Type = "extract"
	TypeCombine     Type = "combine"
	TypeValidate    Type = "validate"
	TypeEnrich      Type = "enrich"
	TypeConditional Type = "conditional"
	TypeLoop        Type = "loop"
	TypeSort        Type = "sort"
)

const defaultBatchSize = 100

// ComputeFunc is the callable accepted by the enrich transformation's
// "computed" operation.
type ComputeFunc func(data any) (any, error)

// Transformation is one unit of data manipulation. Every field except ID and
// Type is optional; which ones are required depends on Type and is enforced
// at execution time.
type Transformation struct {
	ID          string `json:"id"   validate:"required"`
	Type        Type   `json:"type" validate:"required,oneof=map filter aggregate format extract combine validate enrich conditional loop sort"`
	SourceField string `json:"source_field,omitempty"`
	TargetField string `json:"target_field,omitempty"`
	Operation   string `json:"operation,omitempty"`
	Value       any    `json:"value,omitempty"`
	Condition   string `json:"condition,omitempty"`

	// Schema is the validator used by the validate transformation. It is
	// injected programmatically (or compiled from a pipeline definition) and
	// never travels over the wire.
	Schema schema.Schema `json:"-"`

	Priority int `json:"priority,omitempty"`

	// Conditional branches.
	TrueTransformation  *Transformation `json:"true_transformation,omitempty"`
	FalseTransformation *Transformation `json:"false_transformation,omitempty"`

	// Loop configuration.
	ItemTransformations []*Transformation `json:"item_transformations,omitempty"`
	BatchSize           int               `json:"batch_size,omitempty"`
	Parallel            *bool             `json:"parallel,omitempty"`
}

// parallel reports whether a loop runs its items concurrently. The default
// is true; only an explicit false disables it.
func (t *Transformation) parallel() bool {
	return t.Parallel == nil || *t.Parallel
}

func (t *Transformation) batchSize() int {
	if t.BatchSize > 0 {
		return t.BatchSize
	}

	return defaultBatchSize
}
