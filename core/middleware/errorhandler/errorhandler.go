package errorhandler

import (
	"errors"
	"fmt"

	"project-admin/core/apperr"
	"project-admin/core/database"
	"project-admin/core/logger"
	"project-admin/core/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// New returns the terminal error handler. Every error returned by middleware
// or route handlers ends up here and is rendered as a failure envelope.
func New(l *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, message := classify(err)

		log := logger.WithRayID(l, c)
		if status >= fiber.StatusInternalServerError {
			log.Error("Request error", zap.Int("status", status), zap.String("path", c.Path()), zap.Error(err))
		} else {
			log.Debug("Request rejected", zap.Int("status", status), zap.String("path", c.Path()), zap.Error(err))
		}

		return response.Fail(c, status, message)
	}
}

// NotFound is the fallback handler for requests no route matched.
func NotFound(c *fiber.Ctx) error {
	return apperr.NotFound(fmt.Sprintf("Not Found - %s", c.OriginalURL()))
}

func classify(err error) (int, string) {
	if appErr, ok := apperr.As(err); ok {
		return appErr.Status, appErr.Message
	}

	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code, fiberErr.Message
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fiber.StatusNotFound, "Resource not found"
	case errors.Is(err, database.ErrNotReady):
		return fiber.StatusServiceUnavailable, "Database is not ready"
	default:
		return fiber.StatusInternalServerError, "Internal Server Error"
	}
}
