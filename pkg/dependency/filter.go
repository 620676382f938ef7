// Package dependency computes, from the full node-output bag of one workflow
// execution, the subset of upstream outputs a node is allowed to see. Every
// value leaves as a deep clone, so the filtered view never aliases the bag.
package dependency

import (
	"log/slog"

	"github.com/weftlabs/weft/pkg/values"
)

// Filter resolves the relevant slice of a node-output bag.
type Filter struct {
	logger *slog.Logger
}

func NewFilter(logger *slog.Logger) *Filter {
	if logger == nil {
		logger = slog.Default()
	}

	return &Filter{logger: logger.With("module", "dependency_filter")}
}

// RelevantData clones the outputs of the requested node ids out of allData.
// With preserveEdgeConnections, outputs referenced by provenance markers
// inside the requested data (objects carrying a "nodeId" string, directly or
// under "pairedItem") are cloned in as well, so those references stay
// resolvable downstream.
//
// The reference closure is one hop: outputs pulled in via provenance are not
// themselves re-scanned for further references. Whether a chain of
// references should be preserved transitively is an open product question;
// until it is settled this keeps the single-hop behavior.
//
// A nil bag degrades to an empty result and a nil id list returns the bag as
// given (no copy); both are logged, neither is an error.
func (f *Filter) RelevantData(allData map[string]any, relevantIDs []string, preserveEdgeConnections bool) map[string]any {
	if allData == nil {
		f.logger.Warn("Node-output bag is nil, returning empty result")

		return map[string]any{}
	}

	if relevantIDs == nil {
		f.logger.Warn("Relevant id list is nil, returning full bag unfiltered")

		return allData
	}

	result := make(map[string]any, len(relevantIDs))
	processed := make(map[string]bool, len(relevantIDs))

	for _, id := range relevantIDs {
		if v, ok := allData[id]; ok {
			result[id] = values.Clone(v)
			processed[id] = true
		}
	}

	if !preserveEdgeConnections {
		return result
	}

	// Scan only the directly requested data; referenced outputs added below
	// are intentionally not re-scanned (single-hop closure).
	referenced := make(map[string]bool)
	for _, id := range relevantIDs {
		if processed[id] {
			collectNodeRefs(result[id], referenced)
		}
	}

	for id := range referenced {
		if processed[id] {
			continue
		}

		if v, ok := allData[id]; ok {
			result[id] = values.Clone(v)
			processed[id] = true
		}
	}

	return result
}

// collectNodeRefs walks a value depth-first and records every provenance
// node id it finds: objects with a "nodeId" string field, or with a
// "pairedItem" object carrying one.
func collectNodeRefs(v any, refs map[string]bool) {
	switch tv := v.(type) {
	case []any:
		for _, item := range tv {
			collectNodeRefs(item, refs)
		}
	case map[string]any:
		if id, ok := tv["nodeId"].(string); ok {
			refs[id] = true
		}

		if paired, ok := tv["pairedItem"].(map[string]any); ok {
			if id, ok := paired["nodeId"].(string); ok {
				refs[id] = true
			}
		}

		for _, item := range tv {
			collectNodeRefs(item, refs)
		}
	}
}
