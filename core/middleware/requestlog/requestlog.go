package requestlog

import (
	"time"

	"project-admin/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// New returns middleware logging one entry per request. Errors returned by
// later stages are logged and passed on unchanged to the error handler.
func New(l *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		log := logger.WithRayID(l, c)
		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
			zap.Duration("latency", time.Since(start)),
		}
		if err != nil {
			log.Info("Request failed", append(fields, zap.Error(err))...)
			return err
		}
		log.Info("Request completed", append(fields, zap.Int("status", c.Response().StatusCode()))...)
		return nil
	}
}
