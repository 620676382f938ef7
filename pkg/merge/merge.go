// Package merge combines several data objects under a chosen strategy.
package merge

import "fmt"

// Strategy selects how Merge combines its sources.
type Strategy string

const (
	// StrategyOverwrite assigns keys left to right; the last source wins.
	StrategyOverwrite Strategy = "overwrite"
	// StrategyCombine keeps the first occurrence of a key as a bare value
	// and accumulates later occurrences into an array.
	StrategyCombine Strategy = "combine"
	// StrategyArray returns the source list unchanged.
	StrategyArray Strategy = "array"
	// StrategyDeep merges nested objects recursively; any other value type
	// overwrites left to right.
	StrategyDeep Strategy = "deep"
)

// Merge combines sources under the strategy. Zero sources yield an empty
// object; a single source is returned as-is.
func Merge(sources []map[string]any, strategy Strategy) (any, error) {
	if len(sources) == 0 {
		return map[string]any{}, nil
	}

	if len(sources) == 1 {
		return sources[0], nil
	}

	switch strategy {
	case StrategyOverwrite:
		out := make(map[string]any)
		for _, source := range sources {
			for k, v := range source {
				out[k] = v
			}
		}

		return out, nil
	case StrategyCombine:
		return combine(sources), nil
	case StrategyArray:
		return sources, nil
	case StrategyDeep:
		out := map[string]any{}
		for _, source := range sources {
			out = deepMerge(out, source)
		}

		return out, nil
	default:
		return nil, fmt.Errorf("unsupported merge strategy: %q", strategy)
	}
}

// combine accumulates repeated keys into arrays: the first occurrence stays
// a bare value, any later occurrence coerces the slot into an array and
// appends.
func combine(sources []map[string]any) map[string]any {
	out := make(map[string]any)
	seen := make(map[string]bool)

	for _, source := range sources {
		for k, v := range source {
			if !seen[k] {
				out[k] = v
				seen[k] = true

				continue
			}

			if existing, ok := out[k].([]any); ok {
				out[k] = append(existing, v)
			} else {
				out[k] = []any{out[k], v}
			}
		}
	}

	return out
}

func deepMerge(dst, src map[string]any) map[string]any {
	out := make(map[string]any, len(dst)+len(src))
	for k, v := range dst {
		out[k] = v
	}

	for k, v := range src {
		srcObj, srcIsObj := v.(map[string]any)
		dstObj, dstIsObj := out[k].(map[string]any)

		if srcIsObj && dstIsObj {
			out[k] = deepMerge(dstObj, srcObj)

			continue
		}

		out[k] = v
	}

	return out
}
