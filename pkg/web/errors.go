package web

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/moogar0880/problems"

	"github.com/weftlabs/weft/pkg/transform"
)

func badRequest(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(400).
		WithInstance(c.Path()).
		WithType("validation_error").
		WithDetail(detail)

	return c.Status(fiber.StatusBadRequest).JSON(problem)
}

func internalError(c fiber.Ctx, err error) error {
	problem := problems.NewStatusProblem(500).
		WithInstance(c.Path()).
		WithType("internal_error").
		WithError(err)

	return c.Status(fiber.StatusInternalServerError).JSON(problem)
}

// handleTransformError maps executor errors onto problem responses. Bad
// transformation records are the client's fault; anything else is ours.
func handleTransformError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, transform.ErrUnsupportedType),
		errors.Is(err, transform.ErrUnsupportedOperation),
		errors.Is(err, transform.ErrMissingField):
		problem := problems.NewStatusProblem(422).
			WithInstance(c.Path()).
			WithType("unsupported_transformation").
			WithDetail(err.Error())

		return c.Status(fiber.StatusUnprocessableEntity).JSON(problem)
	case errors.Is(err, transform.ErrInvalidInput):
		problem := problems.NewStatusProblem(422).
			WithInstance(c.Path()).
			WithType("invalid_payload").
			WithDetail(err.Error())

		return c.Status(fiber.StatusUnprocessableEntity).JSON(problem)
	default:
		return internalError(c, err)
	}
}
