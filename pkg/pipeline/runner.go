package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/weftlabs/weft/pkg/otelhelper"
	"github.com/weftlabs/weft/pkg/transform"
)

// Runner applies pipelines. It never returns an error: every outcome,
// including internal faults, is reported through the Result.
type Runner struct {
	executor *transform.Executor
	logger   *slog.Logger
	tracer   trace.Tracer
}

func NewRunner(executor *transform.Executor, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		executor: executor,
		logger:   logger.With("module", "pipeline_runner"),
		tracer:   otel.Tracer("weft/pipeline"),
	}
}

// Apply validates the payload against the input schema, runs the pipeline's
// transformations in ascending priority order (stable for equal priorities),
// and validates the final payload against the output schema.
//
// An input-schema violation is fatal and aborts before any transformation. A
// failing transformation is recorded and the pipeline continues with the
// pre-failure payload. An output-schema violation is a warning only.
func (r *Runner) Apply(ctx context.Context, data any, p *Pipeline) (result *Result) {
	started := time.Now()

	ctx, span := otelhelper.StartSpan(ctx, r.tracer, "pipeline.apply",
		attribute.String(otelhelper.PipelineIDKey, p.ID),
		attribute.Int(otelhelper.TransformationCountKey, len(p.Transformations)),
	)
	defer span.End()

	logger := r.logger.With("pipeline_id", p.ID)

	inputSize := jsonSize(data)
	payload := data
	applied := 0

	var errs, warnings []string

	// Faults in the pipeline machinery itself (outside the per-step
	// recovery) still produce a Result with whatever payload was computed.
	defer func() {
		if rec := recover(); rec != nil {
			fault := fmt.Errorf("pipeline fault: %v", rec)
			logger.Error("Pipeline machinery fault", "error", fault)
			otelhelper.SetError(span, fault)

			errs = append(errs, fault.Error())
			result = r.buildResult(payload, errs, warnings, applied, inputSize, started)
		}
	}()

	if p.InputSchema != nil {
		if _, err := p.InputSchema.Parse(data); err != nil {
			logger.Warn("Input schema validation failed", "error", err)
			otelhelper.SetError(span, err)

			return &Result{
				Success:  false,
				Data:     data,
				Errors:   []string{fmt.Sprintf("Input validation failed: %v", err)},
				Warnings: nil,
				Metadata: ResultMetadata{
					ExecutionTimeMS:        time.Since(started).Milliseconds(),
					TransformationsApplied: 0,
					DataSize:               DataSize{Input: inputSize, Output: 0},
				},
			}
		}
	}

	for _, t := range sortByPriority(p.Transformations) {
		out, err := r.applyStep(ctx, payload, t)
		if err != nil {
			logger.Warn("Transformation failed, continuing pipeline",
				"transformation_id", t.ID, "transformation_type", t.Type, "error", err)

			errs = append(errs, fmt.Sprintf("Transformation %s failed: %v", t.ID, err))

			continue
		}

		payload = out
		applied++
	}

	if p.OutputSchema != nil {
		if _, err := p.OutputSchema.Parse(payload); err != nil {
			logger.Warn("Output schema validation failed", "error", err)

			warnings = append(warnings, fmt.Sprintf("Output validation failed: %v", err))
		}
	}

	return r.buildResult(payload, errs, warnings, applied, inputSize, started)
}

func (r *Runner) applyStep(ctx context.Context, payload any, t *transform.Transformation) (any, error) {
	ctx, span := otelhelper.StartSpan(ctx, r.tracer, "pipeline.step",
		attribute.String(otelhelper.TransformationIDKey, t.ID),
		attribute.String(otelhelper.TransformationTypeKey, string(t.Type)),
	)
	defer span.End()

	out, err := r.executor.Transform(ctx, payload, t)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, err
	}

	return out, nil
}

func (r *Runner) buildResult(payload any, errs, warnings []string, applied, inputSize int, started time.Time) *Result {
	return &Result{
		Success:  len(errs) == 0,
		Data:     payload,
		Errors:   errs,
		Warnings: warnings,
		Metadata: ResultMetadata{
			ExecutionTimeMS:        time.Since(started).Milliseconds(),
			TransformationsApplied: applied,
			DataSize:               DataSize{Input: inputSize, Output: jsonSize(payload)},
		},
	}
}

// sortByPriority returns a copy ordered by ascending priority; equal
// priorities keep their given relative order.
func sortByPriority(transformations []*transform.Transformation) []*transform.Transformation {
	ordered := make([]*transform.Transformation, len(transformations))
	copy(ordered, transformations)

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})

	return ordered
}

func jsonSize(v any) int {
	b, err := json.Marshal(v)
	if err != nil {
		return 0
	}

	return len(b)
}
