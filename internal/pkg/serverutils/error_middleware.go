package serverutils

import (
	"errors"

	"doc-collab-be/internal/apperrors"
	"doc-collab-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps the error taxonomy onto HTTP status codes.
// Controllers just return errors; this is the single translation point.
// Classed errors surface only their user-facing message; the wrapped cause
// stays in the logs.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := fiber.StatusInternalServerError
		message := err.Error()

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			switch appErr.Class {
			case apperrors.ClassValidation:
				status = fiber.StatusBadRequest
			case apperrors.ClassSessionNotFound:
				status = fiber.StatusNotFound
			case apperrors.ClassSessionCreationFailed:
				status = fiber.StatusInternalServerError
			case apperrors.ClassRetrievalUnavailable:
				status = fiber.StatusServiceUnavailable
			case apperrors.ClassGenerationFailed:
				status = fiber.StatusBadGateway
			}
			message = appErr.Message
			if appErr.Cause != nil {
				log.Error("http", "request failed", map[string]interface{}{
					"path":   ctx.Path(),
					"status": status,
					"error":  appErr.Cause.Error(),
				})
			}
		} else if fiberErr, ok := err.(*fiber.Error); ok {
			status = fiberErr.Code
		}

		return ctx.Status(status).JSON(ErrorResponse(message))
	}
}
