package transform

import (
	"regexp"
	"strings"

	"github.com/weftlabs/weft/pkg/values"
)

// applyFilter keeps the array elements matching the predicate. Non-array
// input is treated as a single candidate: it passes through unchanged when
// it matches and becomes nil otherwise.
func (e *Executor) applyFilter(data any, t *Transformation) (any, error) {
	items, ok := data.([]any)
	if !ok {
		if e.filterMatches(data, t) {
			return data, nil
		}

		return nil, nil
	}

	kept := make([]any, 0, len(items))

	for _, item := range items {
		if e.filterMatches(item, t) {
			kept = append(kept, item)
		}
	}

	return kept, nil
}

func (e *Executor) filterMatches(item any, t *Transformation) bool {
	if t.Condition != "" {
		obj, ok := item.(map[string]any)
		if !ok {
			return false
		}

		return e.conditions.Evaluate(t.Condition, obj)
	}

	return e.matches(item, t)
}

// matches applies the operation-based predicate to the item's source field
// (or the item itself when no source field is set). Evaluation failures of
// any kind count as "does not match" and are never propagated.
func (e *Executor) matches(item any, t *Transformation) bool {
	var (
		v     any
		found bool
	)

	if t.SourceField != "" {
		v, found = values.Get(item, t.SourceField)
	} else {
		v, found = item, item != nil
	}

	switch t.Operation {
	case "exists":
		return found && v != nil
	case "not_exists":
		return !found || v == nil
	case "equals":
		return values.DeepEqual(v, t.Value)
	case "not_equals":
		return !values.DeepEqual(v, t.Value)
	case "greater_than":
		c, ok := values.Compare(v, t.Value)

		return ok && c > 0
	case "greater_than_equal":
		c, ok := values.Compare(v, t.Value)

		return ok && c >= 0
	case "less_than":
		c, ok := values.Compare(v, t.Value)

		return ok && c < 0
	case "less_than_equal":
		c, ok := values.Compare(v, t.Value)

		return ok && c <= 0
	case "contains":
		return contains(v, t.Value)
	case "starts_with":
		s, sok := v.(string)
		prefix, pok := t.Value.(string)

		return sok && pok && strings.HasPrefix(s, prefix)
	case "ends_with":
		s, sok := v.(string)
		suffix, pok := t.Value.(string)

		return sok && pok && strings.HasSuffix(s, suffix)
	case "regex":
		s, sok := v.(string)
		pattern, pok := t.Value.(string)
		if !sok || !pok {
			return false
		}

		matched, err := regexp.MatchString(pattern, s)

		return err == nil && matched
	case "in":
		return member(v, t.Value)
	case "not_in":
		return !member(v, t.Value)
	default:
		e.logger.Debug("Unknown filter operation, treating as no match", "operation", t.Operation)

		return false
	}
}

// contains checks substring membership on strings and deep-equal element
// membership on arrays.
func contains(v, needle any) bool {
	switch tv := v.(type) {
	case string:
		s, ok := needle.(string)

		return ok && strings.Contains(tv, s)
	case []any:
		for _, item := range tv {
			if values.DeepEqual(item, needle) {
				return true
			}
		}

		return false
	default:
		return false
	}
}

func member(v, list any) bool {
	items, ok := list.([]any)
	if !ok {
		return false
	}

	for _, item := range items {
		if values.DeepEqual(v, item) {
			return true
		}
	}

	return false
}
