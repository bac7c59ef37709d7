package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ashmitsharp/treasury-api/internal/logger"
	"github.com/ashmitsharp/treasury-api/internal/utils"
)

// RequestLogger assigns a request id, stores a request-scoped logger in the context
// and logs one line per request
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		requestID := c.Get(fiber.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(fiber.HeaderXRequestID, requestID)

		reqLog := log.With().Str("request_id", requestID).Logger()
		c.SetContext(logger.WithContext(c.Context(), reqLog))

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = statusFromError(err)
		}

		event := reqLog.Info()
		if status >= fiber.StatusInternalServerError {
			event = reqLog.Error().Err(err)
		} else if status >= fiber.StatusBadRequest {
			event = reqLog.Warn()
		}
		event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("HTTP request")

		return err
	}
}

// statusFromError mirrors the status utils.ErrorHandler will send for err
func statusFromError(err error) int {
	var apiErr *utils.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}
