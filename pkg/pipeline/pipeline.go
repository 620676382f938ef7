// Package pipeline orders and applies transformations to one payload,
// aggregating step outcomes into a Result with partial-failure semantics.
package pipeline

import (
	"github.com/weftlabs/weft/pkg/schema"
	"github.com/weftlabs/weft/pkg/transform"
)

// Pipeline is an ordered list of transformations with optional boundary
// schemas. Metadata is descriptive only.
type Pipeline struct {
	ID              string                      `json:"id" validate:"required"`
	Transformations []*transform.Transformation `json:"transformations" validate:"dive"`
	InputSchema     schema.Schema               `json:"-"`
	OutputSchema    schema.Schema               `json:"-"`
	Metadata        Metadata                    `json:"metadata"`
}

type Metadata struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version,omitempty"`
}

// Result reports a pipeline application. Success is true iff zero step
// errors occurred; output-schema violations surface as warnings and never
// change Success. Callers inspect Success/Errors/Warnings rather than rely
// on exceptions, and may proceed with a partially transformed payload.
type Result struct {
	Success  bool           `json:"success"`
	Data     any            `json:"data"`
	Errors   []string       `json:"errors"`
	Warnings []string       `json:"warnings"`
	Metadata ResultMetadata `json:"metadata"`
}

type ResultMetadata struct {
	// ExecutionTimeMS is wall-clock milliseconds for the whole application.
	ExecutionTimeMS        int64    `json:"execution_time_ms"`
	TransformationsApplied int      `json:"transformations_applied"`
	DataSize               DataSize `json:"data_size"`
}

// DataSize carries JSON-serialized-length proxies for the input and output
// payloads, not exact byte counts.
type DataSize struct {
	Input  int `json:"input"`
	Output int `json:"output"`
}
