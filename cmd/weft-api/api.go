// Package main provides the Weft API server implementation.
package main

import (
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"

	"github.com/weftlabs/weft/pkg/dependency"
	"github.com/weftlabs/weft/pkg/pipeline"
	"github.com/weftlabs/weft/pkg/transform"
	"github.com/weftlabs/weft/pkg/web"
)

type API struct {
	logger   *slog.Logger
	handlers *web.APIHandlers
}

func NewAPI(log *slog.Logger) *API {
	executor := transform.NewExecutor(log)

	return &API{
		logger: log,
		handlers: web.NewAPIHandlers(
			executor,
			pipeline.NewRunner(executor, log),
			dependency.NewFilter(log),
			validator.New(validator.WithRequiredStructEnabled()),
			log,
		),
	}
}

func (a *API) App() *fiber.App {
	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Weft API")
	})

	a.handlers.Register(app)

	return app
}

func (a *API) Start(port int) error {
	return a.App().Listen(":" + strconv.Itoa(port))
}
