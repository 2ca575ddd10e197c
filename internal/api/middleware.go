package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/segmentio/ksuid"
)

const HeaderRequestID = "X-Request-ID"

type requestIDKey struct{}

// RequestID returns the request id stored on ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// requestContext tags every request with a ksuid, honouring one supplied by
// the caller, and exposes it on the response and the user context.
func requestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if id == "" {
			id = ksuid.New().String()
		}
		c.Set(HeaderRequestID, id)
		c.SetUserContext(context.WithValue(c.UserContext(), requestIDKey{}, id))
		return c.Next()
	}
}

// instrument records metrics for every request and, when logger is set, logs
// one line per request.
func instrument(metrics *Metrics, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// Let the error handler write the response so the status is final.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		route := c.Route().Path
		elapsed := time.Since(start)
		metrics.observeRequest(c.Method(), route, status, elapsed)

		if logger != nil {
			logger.InfoContext(c.UserContext(), "http_request",
				"request_id", RequestID(c.UserContext()),
				"method", c.Method(),
				"path", c.Path(),
				"route", route,
				"status", status,
				"duration_ms", elapsed.Milliseconds(),
			)
		}
		return nil
	}
}
