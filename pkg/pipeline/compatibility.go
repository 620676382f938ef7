package pipeline

import (
	"fmt"
	"sort"

	"github.com/weftlabs/weft/pkg/schema"
	"github.com/weftlabs/weft/pkg/transform"
)

// Compatibility builds a pipeline of rename transformations adapting one
// node's output shape to a downstream node's expected input shape. Mapping
// entries are emitted in sorted-key order, each with priority equal to its
// index; the schemas become the pipeline's boundary schemas.
func Compatibility(sourceSchema, targetSchema schema.Schema, fieldMapping map[string]string) *Pipeline {
	sourceFields := make([]string, 0, len(fieldMapping))
	for field := range fieldMapping {
		sourceFields = append(sourceFields, field)
	}

	sort.Strings(sourceFields)

	transformations := make([]*transform.Transformation, 0, len(sourceFields))
	for i, sourceField := range sourceFields {
		transformations = append(transformations, &transform.Transformation{
			ID:          fmt.Sprintf("compat-map-%d", i),
			Type:        transform.TypeMap,
			SourceField: sourceField,
			TargetField: fieldMapping[sourceField],
			Operation:   "rename",
			Priority:    i,
		})
	}

	return &Pipeline{
		ID:              "compatibility",
		Transformations: transformations,
		InputSchema:     sourceSchema,
		OutputSchema:    targetSchema,
		Metadata: Metadata{
			Name:        "Schema compatibility adapter",
			Description: "Renames fields to match the downstream input shape",
		},
	}
}
