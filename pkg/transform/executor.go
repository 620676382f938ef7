package transform

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/weftlabs/weft/pkg/condition"
	"github.com/weftlabs/weft/pkg/values"
)

// Executor applies a single Transformation to a payload. Payloads handed to
// Transform are understood to be private copies; implementations mutate them
// in place where that is cheaper than rebuilding.
type Executor struct {
	logger     *slog.Logger
	conditions *condition.Evaluator
}

func NewExecutor(logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With("module", "transformation_executor")

	return &Executor{
		logger:     logger,
		conditions: condition.NewEvaluator(logger),
	}
}

// Transform dispatches t by Type and returns the transformed payload. Errors
// propagate to the caller; when called through the pipeline runner they are
// collected as step errors instead.
func (e *Executor) Transform(ctx context.Context, data any, t *Transformation) (any, error) {
	switch t.Type {
	case TypeMap:
		return e.applyMap(data, t)
	case TypeFilter:
		return e.applyFilter(data, t)
	case TypeAggregate:
		return e.applyAggregate(data, t)
	case TypeFormat:
		return e.applyFormat(data, t)
	case TypeExtract:
		return e.applyExtract(data, t)
	case TypeCombine:
		return e.applyCombine(data, t)
	case TypeValidate:
		return e.applyValidate(data, t)
	case TypeEnrich:
		return e.applyEnrich(data, t)
	case TypeConditional:
		return e.applyConditional(ctx, data, t)
	case TypeLoop:
		return e.applyLoop(ctx, data, t)
	case TypeSort:
		return e.applySort(data, t)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, t.Type)
	}
}

// applyMap copies the source value to the target path. The "rename"
// operation additionally removes the source path.
func (e *Executor) applyMap(data any, t *Transformation) (any, error) {
	if t.SourceField == "" || t.TargetField == "" {
		return nil, fmt.Errorf("%w: map requires source_field and target_field", ErrMissingField)
	}

	v, _ := values.Get(data, t.SourceField)

	if err := values.Set(data, t.TargetField, v); err != nil {
		return nil, err
	}

	if t.Operation == "rename" {
		values.Delete(data, t.SourceField)
	}

	return data, nil
}

// applyExtract reads the source path. With a target field the value is
// written back into the object and the whole object returned; without one
// the bare extracted value is the result.
func (e *Executor) applyExtract(data any, t *Transformation) (any, error) {
	if t.SourceField == "" {
		return nil, fmt.Errorf("%w: extract requires source_field", ErrMissingField)
	}

	v, _ := values.Get(data, t.SourceField)

	if t.TargetField != "" {
		if err := values.Set(data, t.TargetField, v); err != nil {
			return nil, err
		}

		return data, nil
	}

	return v, nil
}

func (e *Executor) applyValidate(data any, t *Transformation) (any, error) {
	if t.Schema == nil {
		return nil, fmt.Errorf("%w: validate requires a schema", ErrMissingField)
	}

	if _, err := t.Schema.Parse(data); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	return data, nil
}

// applyEnrich adds a computed field to the payload. The default target field
// name follows the operation; a static value requires an explicit target.
func (e *Executor) applyEnrich(data any, t *Transformation) (any, error) {
	target := t.TargetField

	switch t.Operation {
	case "timestamp":
		if target == "" {
			target = "timestamp"
		}

		if err := values.Set(data, target, time.Now().UTC().Format(time.RFC3339)); err != nil {
			return nil, err
		}
	case "uuid":
		if target == "" {
			target = "uuid"
		}

		if err := values.Set(data, target, uuid.New().String()); err != nil {
			return nil, err
		}
	case "computed":
		if target == "" {
			target = "computed"
		}

		computed, err := e.compute(data, t.Value)
		if err != nil {
			return nil, err
		}

		if err := values.Set(data, target, computed); err != nil {
			return nil, err
		}
	default:
		if target == "" {
			return nil, fmt.Errorf("%w: enrich %q", ErrUnsupportedOperation, t.Operation)
		}

		if err := values.Set(data, target, t.Value); err != nil {
			return nil, err
		}
	}

	return data, nil
}

func (e *Executor) compute(data any, fn any) (any, error) {
	switch f := fn.(type) {
	case ComputeFunc:
		return f(data)
	case func(any) (any, error):
		return f(data)
	case func(any) any:
		return f(data), nil
	default:
		return nil, fmt.Errorf("%w: enrich computed requires a compute function, got %T", ErrInvalidInput, fn)
	}
}

// applyConditional evaluates the predicate and recurses into the matching
// branch through the same dispatcher. A failing branch is logged and the
// original payload kept.
func (e *Executor) applyConditional(ctx context.Context, data any, t *Transformation) (any, error) {
	matched := e.conditionalMatches(data, t)

	branch := t.FalseTransformation
	if matched {
		branch = t.TrueTransformation
	}

	if branch == nil {
		return data, nil
	}

	out, err := e.Transform(ctx, data, branch)
	if err != nil {
		e.logger.Warn("Conditional branch failed, keeping original payload",
			"transformation_id", t.ID, "matched", matched, "error", err)

		return data, nil
	}

	return out, nil
}

func (e *Executor) conditionalMatches(data any, t *Transformation) bool {
	if t.Condition != "" {
		obj, ok := data.(map[string]any)
		if !ok {
			return false
		}

		return e.conditions.Evaluate(t.Condition, obj)
	}

	if t.Operation != "" {
		return e.matches(data, t)
	}

	return false
}
