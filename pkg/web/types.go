package web

import "github.com/weftlabs/weft/pkg/pipeline"

// ApplyTransformationRequest applies one transformation to a payload.
type ApplyTransformationRequest struct {
	Data           any                          `json:"data"`
	Transformation *pipeline.TransformationSpec `json:"transformation" validate:"required"`
}

// ApplyPipelineRequest applies a whole pipeline definition to a payload.
type ApplyPipelineRequest struct {
	Data     any                  `json:"data"`
	Pipeline *pipeline.Definition `json:"pipeline" validate:"required"`
}

// FilterDataRequest resolves the relevant slice of a node-output bag.
type FilterDataRequest struct {
	Data        map[string]any `json:"data"`
	RelevantIDs []string       `json:"relevant_ids" validate:"required"`

	// PreserveEdgeConnections defaults to true when omitted.
	PreserveEdgeConnections *bool `json:"preserve_edge_connections,omitempty"`
}

// MergeDataRequest combines several objects under a strategy.
type MergeDataRequest struct {
	Sources  []map[string]any `json:"sources"  validate:"required"`
	Strategy string           `json:"strategy" validate:"required,oneof=overwrite combine array deep"`
}
