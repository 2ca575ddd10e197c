// Package api serves the use cases over HTTP. Every JSON body is the
// app.Result envelope; handlers validate request shape only.
package api

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alexanderramin/timelog/internal/app"
)

type Options struct {
	// Logger receives one line per request when LogRequests is set, and
	// store failures always.
	Logger      *slog.Logger
	LogRequests bool
	Timeout     time.Duration
	Metrics     *Metrics
}

type Server struct {
	app     *fiber.App
	uc      *app.UseCases
	metrics *Metrics
}

func NewServer(uc *app.UseCases, opts Options) *Server {
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if uc.Logger == nil {
		uc.Logger = opts.Logger
	}

	f := fiber.New(fiber.Config{
		AppName:               "timelog",
		DisableStartupMessage: true,
		ReadTimeout:           opts.Timeout,
		WriteTimeout:          opts.Timeout,
		ErrorHandler:          errorHandler(opts.Logger),
	})

	s := &Server{app: f, uc: uc, metrics: opts.Metrics}

	var reqLogger *slog.Logger
	if opts.LogRequests {
		reqLogger = opts.Logger
	}
	f.Use(requestContext())
	f.Use(instrument(opts.Metrics, reqLogger))

	f.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(app.Ok("ok", ""))
	})
	f.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(opts.Metrics.Registry, promhttp.HandlerOpts{})))

	s.routes(f.Group("/api"))
	return s
}

// App exposes the fiber app, mainly for app.Test in tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) routes(api fiber.Router) {
	api.Get("/projects", s.listProjects)
	api.Post("/projects", s.createProject)
	api.Get("/projects/:id", s.getProject)
	api.Put("/projects/:id", s.updateProject)
	api.Delete("/projects/:id", s.deleteProject)
	api.Get("/projects/:id/tasks", s.listProjectTasks)

	api.Get("/tasks", s.listTasks)
	api.Post("/tasks", s.createTask)
	api.Get("/tasks/:id", s.getTask)
	api.Put("/tasks/:id", s.updateTask)
	api.Delete("/tasks/:id", s.deleteTask)

	// Registered before /:id so the literal segment wins.
	api.Get("/time-entries/daily-summary", s.dailySummary)
	api.Get("/time-entries", s.listEntries)
	api.Post("/time-entries", s.createEntry)
	api.Get("/time-entries/:id", s.getEntry)
	api.Put("/time-entries/:id", s.updateEntry)
	api.Delete("/time-entries/:id", s.deleteEntry)
}

// errorHandler renders fiber's own errors (unknown route, bad method) and
// panics-turned-errors as envelopes.
func errorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code := app.StatusBadRequest
			switch {
			case fe.Code == fiber.StatusNotFound:
				code = app.StatusNotFound
			case fe.Code >= 500:
				code = app.StatusInternalServerError
			}
			return c.Status(fe.Code).JSON(app.Fail[any](code, fe.Message))
		}
		logger.ErrorContext(c.UserContext(), "unhandled error", "request_id", RequestID(c.UserContext()), "error", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(app.Fail[any](app.StatusInternalServerError, app.GenericFailureMessage))
	}
}

func respond[T any](c *fiber.Ctx, r app.Result[T]) error {
	return c.Status(r.StatusCode.HTTPStatus()).JSON(r)
}

func respondCreated[T any](c *fiber.Ctx, r app.Result[T]) error {
	if r.IsSuccess {
		return c.Status(fiber.StatusCreated).JSON(r)
	}
	return respond(c, r)
}
