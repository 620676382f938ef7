package transform

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/weftlabs/weft/pkg/values"
)

// applyAggregate reduces an array to a single value. Non-numeric elements
// contribute 0 to sum/avg and infinity sentinels to max/min; this permissive
// behavior is intentional, never an error.
func (e *Executor) applyAggregate(data any, t *Transformation) (any, error) {
	items, ok := data.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: aggregate requires an array, got %T", ErrInvalidInput, data)
	}

	element := func(item any) any {
		if t.SourceField == "" {
			return item
		}

		v, _ := values.Get(item, t.SourceField)

		return v
	}

	switch t.Operation {
	case "count":
		return len(items), nil
	case "sum", "avg":
		sum := 0.0

		for _, item := range items {
			if n, ok := values.AsNumber(element(item)); ok {
				sum += n
			}
		}

		if t.Operation == "sum" {
			return sum, nil
		}

		if len(items) == 0 {
			return 0.0, nil
		}

		return sum / float64(len(items)), nil
	case "max":
		maxValue := math.Inf(-1)

		for _, item := range items {
			n, ok := values.AsNumber(element(item))
			if !ok {
				n = math.Inf(-1)
			}

			maxValue = math.Max(maxValue, n)
		}

		return maxValue, nil
	case "min":
		minValue := math.Inf(1)

		for _, item := range items {
			n, ok := values.AsNumber(element(item))
			if !ok {
				n = math.Inf(1)
			}

			minValue = math.Min(minValue, n)
		}

		return minValue, nil
	default:
		return nil, fmt.Errorf("%w: aggregate %q", ErrUnsupportedOperation, t.Operation)
	}
}

// applySort stably sorts an array by the source field (or the elements
// themselves), ascending unless the operation is "desc". String keys compare
// case-insensitively. Non-array input and incomparable keys leave the input
// in its original order instead of failing.
func (e *Executor) applySort(data any, t *Transformation) (any, error) {
	items, ok := data.([]any)
	if !ok {
		return data, nil
	}

	sorted := make([]any, len(items))
	copy(sorted, items)

	descending := t.Operation == "desc"

	key := func(item any) any {
		if t.SourceField == "" {
			return item
		}

		v, _ := values.Get(item, t.SourceField)

		return v
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		c, ok := compareSortKeys(key(sorted[i]), key(sorted[j]))
		if !ok {
			return false
		}

		if descending {
			return c > 0
		}

		return c < 0
	})

	return sorted, nil
}

func compareSortKeys(a, b any) (int, bool) {
	as, aok := a.(string)
	bs, bok := b.(string)

	if aok && bok {
		return strings.Compare(strings.ToLower(as), strings.ToLower(bs)), true
	}

	return values.Compare(a, b)
}
