package values

import (
	"strings"
	"time"
)

// DeepEqual compares two payload values: primitives by value (numbers across
// int/float representations), arrays by length and order-sensitive element
// equality, objects by equal key sets and recursive value equality.
func DeepEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if an, aok := AsNumber(a); aok {
		bn, bok := AsNumber(b)

		return bok && an == bn
	}

	switch av := a.(type) {
	case string:
		bv, ok := b.(string)

		return ok && av == bv
	case bool:
		bv, ok := b.(bool)

		return ok && av == bv
	case time.Time:
		bv, ok := b.(time.Time)

		return ok && av.Equal(bv)
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}

		for i := range av {
			if !DeepEqual(av[i], bv[i]) {
				return false
			}
		}

		return true
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}

		for k, v := range av {
			bvv, ok := bv[k]
			if !ok || !DeepEqual(v, bvv) {
				return false
			}
		}

		return true
	default:
		return a == b
	}
}

// Compare orders two payload values, returning -1/0/1 and whether the pair
// is orderable at all. Numbers compare numerically across representations,
// strings lexicographically, times by instant. Mismatched or unordered types
// are not comparable.
func Compare(a, b any) (int, bool) {
	if an, ok := AsNumber(a); ok {
		bn, ok := AsNumber(b)
		if !ok {
			return 0, false
		}

		switch {
		case an < bn:
			return -1, true
		case an > bn:
			return 1, true
		default:
			return 0, true
		}
	}

	if as, ok := a.(string); ok {
		bs, ok := b.(string)
		if !ok {
			return 0, false
		}

		return strings.Compare(as, bs), true
	}

	if at, ok := a.(time.Time); ok {
		bt, ok := b.(time.Time)
		if !ok {
			return 0, false
		}

		return at.Compare(bt), true
	}

	return 0, false
}

// Truthy follows the loose-typing rules of the payloads this engine moves:
// nil, empty strings, zero numbers and false are falsy; everything else,
// including empty arrays and objects, is truthy.
func Truthy(v any) bool {
	switch tv := v.(type) {
	case nil:
		return false
	case bool:
		return tv
	case string:
		return tv != ""
	default:
		if n, ok := AsNumber(v); ok {
			return n != 0
		}

		return true
	}
}

// AsNumber coerces the numeric types a decoded JSON tree (or Go caller) may
// carry into float64. Strings are not coerced.
func AsNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
