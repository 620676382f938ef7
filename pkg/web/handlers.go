// Package web exposes the transformation engine over HTTP: single
// transformations, whole pipelines, dependency filtering, and merging.
package web

import (
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/weftlabs/weft/pkg/dependency"
	"github.com/weftlabs/weft/pkg/merge"
	"github.com/weftlabs/weft/pkg/pipeline"
	"github.com/weftlabs/weft/pkg/transform"
)

type APIHandlers struct {
	executor  *transform.Executor
	runner    *pipeline.Runner
	filter    *dependency.Filter
	validator *validator.Validate
	logger    *slog.Logger
}

func NewAPIHandlers(
	executor *transform.Executor,
	runner *pipeline.Runner,
	filter *dependency.Filter,
	validator *validator.Validate,
	logger *slog.Logger,
) *APIHandlers {
	if logger == nil {
		logger = slog.Default()
	}

	return &APIHandlers{
		executor:  executor,
		runner:    runner,
		filter:    filter,
		validator: validator,
		logger:    logger.With("module", "web"),
	}
}

// Register mounts the engine routes on app.
func (h *APIHandlers) Register(app *fiber.App) {
	app.Post("/transformations/apply", h.ApplyTransformation)
	app.Post("/pipelines/apply", h.ApplyPipeline)
	app.Post("/data/filter", h.FilterData)
	app.Post("/data/merge", h.MergeData)
	app.Get("/health", h.HealthCheck)
}

// ApplyTransformation runs a single transformation. Unlike pipelines, a
// failing transformation here surfaces as an HTTP error.
func (h *APIHandlers) ApplyTransformation(c fiber.Ctx) error {
	var req ApplyTransformationRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return badRequest(c, err.Error())
	}

	t, err := req.Transformation.Compile()
	if err != nil {
		return badRequest(c, "Invalid transformation: "+err.Error())
	}

	result, err := h.executor.Transform(c.Context(), req.Data, t)
	if err != nil {
		h.logger.Warn("Transformation failed", "transformation_id", t.ID, "error", err)

		return handleTransformError(c, err)
	}

	return c.JSON(fiber.Map{"data": result})
}

// ApplyPipeline runs a pipeline definition and always answers 200 with the
// full Result; callers inspect success/errors/warnings.
func (h *APIHandlers) ApplyPipeline(c fiber.Ctx) error {
	var req ApplyPipelineRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return badRequest(c, err.Error())
	}

	p, err := req.Pipeline.Compile()
	if err != nil {
		return badRequest(c, "Invalid pipeline: "+err.Error())
	}

	result := h.runner.Apply(c.Context(), req.Data, p)

	return c.JSON(result)
}

func (h *APIHandlers) FilterData(c fiber.Ctx) error {
	var req FilterDataRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return badRequest(c, err.Error())
	}

	preserve := req.PreserveEdgeConnections == nil || *req.PreserveEdgeConnections
	filtered := h.filter.RelevantData(req.Data, req.RelevantIDs, preserve)

	return c.JSON(fiber.Map{"data": filtered})
}

func (h *APIHandlers) MergeData(c fiber.Ctx) error {
	var req MergeDataRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return badRequest(c, err.Error())
	}

	merged, err := merge.Merge(req.Sources, merge.Strategy(req.Strategy))
	if err != nil {
		return badRequest(c, err.Error())
	}

	return c.JSON(fiber.Map{"data": merged})
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
