package transform

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/weftlabs/weft/pkg/values"
)

var titleCaser = cases.Title(language.Und)

// applyFormat coerces one value according to the operation. The result is
// written to the target field, else back to the source field, else returned
// bare.
func (e *Executor) applyFormat(data any, t *Transformation) (any, error) {
	var v any

	if t.SourceField != "" {
		v, _ = values.Get(data, t.SourceField)
	} else {
		v = data
	}

	formatted, err := e.formatValue(v, t)
	if err != nil {
		return nil, err
	}

	switch {
	case t.TargetField != "":
		if err := values.Set(data, t.TargetField, formatted); err != nil {
			return nil, err
		}

		return data, nil
	case t.SourceField != "":
		if err := values.Set(data, t.SourceField, formatted); err != nil {
			return nil, err
		}

		return data, nil
	default:
		return formatted, nil
	}
}

func (e *Executor) formatValue(v any, t *Transformation) (any, error) {
	switch t.Operation {
	case "uppercase":
		return strings.ToUpper(stringify(v)), nil
	case "lowercase":
		return strings.ToLower(stringify(v)), nil
	case "trim":
		return strings.TrimSpace(stringify(v)), nil
	case "title_case":
		return titleCaser.String(strings.ToLower(stringify(v))), nil
	case "date":
		parsed, err := asTime(v)
		if err != nil {
			return nil, err
		}

		return parsed.UTC().Format(time.RFC3339), nil
	case "number":
		return asFormatNumber(v)
	case "string":
		return stringify(v), nil
	case "boolean":
		return values.Truthy(v), nil
	case "json":
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to stringify value: %w", err)
		}

		return string(b), nil
	case "parse_json":
		s, ok := v.(string)
		if !ok {
			return v, nil
		}

		var parsed any
		if err := json.Unmarshal([]byte(s), &parsed); err != nil {
			// Best effort: unparseable input keeps its original form.
			return v, nil
		}

		return parsed, nil
	case "multiply", "divide", "add", "subtract":
		return arithmetic(v, t.Value, t.Operation), nil
	default:
		return nil, fmt.Errorf("%w: format %q", ErrUnsupportedOperation, t.Operation)
	}
}

// arithmetic applies the operation when both operands are numeric and
// returns the value unchanged otherwise. The silent pass-through mirrors the
// other coercions' permissiveness.
func arithmetic(v, operand any, operation string) any {
	a, aok := values.AsNumber(v)
	b, bok := values.AsNumber(operand)

	if !aok || !bok {
		return v
	}

	switch operation {
	case "multiply":
		return a * b
	case "divide":
		return a / b
	case "add":
		return a + b
	default:
		return a - b
	}
}

func stringify(v any) string {
	switch tv := v.(type) {
	case nil:
		return "null"
	case string:
		return tv
	case bool:
		return strconv.FormatBool(tv)
	default:
		if n, ok := values.AsNumber(v); ok {
			return strconv.FormatFloat(n, 'f', -1, 64)
		}

		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}

		return string(b)
	}
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// asTime accepts time.Time, common date strings, and epoch milliseconds.
func asTime(v any) (time.Time, error) {
	switch tv := v.(type) {
	case time.Time:
		return tv, nil
	case string:
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, tv); err == nil {
				return parsed, nil
			}
		}

		return time.Time{}, fmt.Errorf("%w: cannot parse %q as date", ErrInvalidInput, tv)
	default:
		if n, ok := values.AsNumber(v); ok {
			return time.UnixMilli(int64(n)).UTC(), nil
		}

		return time.Time{}, fmt.Errorf("%w: cannot format %T as date", ErrInvalidInput, v)
	}
}

func asFormatNumber(v any) (any, error) {
	if n, ok := values.AsNumber(v); ok {
		return n, nil
	}

	switch tv := v.(type) {
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(tv), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: cannot convert %q to number", ErrInvalidInput, tv)
		}

		return n, nil
	case bool:
		if tv {
			return 1.0, nil
		}

		return 0.0, nil
	default:
		return nil, fmt.Errorf("%w: cannot convert %T to number", ErrInvalidInput, v)
	}
}

// applyCombine gathers the named fields and combines them by operation:
// concat joins their string forms, array keeps them as a list, object zips
// names to values. The combined value lands at the target field when one is
// set, else it becomes the result.
func (e *Executor) applyCombine(data any, t *Transformation) (any, error) {
	fields, err := combineFields(t.Value)
	if err != nil {
		return nil, err
	}

	gathered := make([]any, len(fields))
	for i, field := range fields {
		gathered[i], _ = values.Get(data, field)
	}

	var combined any

	switch t.Operation {
	case "concat":
		parts := make([]string, len(gathered))
		for i, v := range gathered {
			parts[i] = stringify(v)
		}

		combined = strings.Join(parts, "")
	case "array":
		combined = gathered
	case "object":
		obj := make(map[string]any, len(fields))
		for i, field := range fields {
			obj[field] = gathered[i]
		}

		combined = obj
	default:
		return nil, fmt.Errorf("%w: combine %q", ErrUnsupportedOperation, t.Operation)
	}

	if t.TargetField != "" {
		if err := values.Set(data, t.TargetField, combined); err != nil {
			return nil, err
		}

		return data, nil
	}

	return combined, nil
}

func combineFields(v any) ([]string, error) {
	switch tv := v.(type) {
	case []string:
		return tv, nil
	case []any:
		fields := make([]string, len(tv))

		for i, item := range tv {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: combine field names must be strings, got %T", ErrInvalidInput, item)
			}

			fields[i] = s
		}

		return fields, nil
	default:
		return nil, fmt.Errorf("%w: combine requires a list of field names", ErrMissingField)
	}
}
