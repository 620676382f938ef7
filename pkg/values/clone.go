package values

import "time"

// Clone returns a deep copy of a payload value. Primitives and nil are
// returned as-is, time.Time yields a new instance with the same instant,
// arrays and objects are copied element- and key-wise. The copy shares no
// mutable structure with the original.
func Clone(v any) any {
	switch tv := v.(type) {
	case nil:
		return nil
	case time.Time:
		return time.Unix(0, tv.UnixNano()).In(tv.Location())
	case []any:
		out := make([]any, len(tv))
		for i, item := range tv {
			out[i] = Clone(item)
		}

		return out
	case map[string]any:
		out := make(map[string]any, len(tv))
		for k, item := range tv {
			out[k] = Clone(item)
		}

		return out
	default:
		return v
	}
}
