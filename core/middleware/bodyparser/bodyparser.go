package bodyparser

import (
	"encoding/json"
	"strings"

	"project-admin/core/apperr"

	"github.com/gofiber/fiber/v2"
)

// New returns middleware rejecting requests whose JSON body is malformed.
// Fiber has already enforced the configured body limit by the time it runs.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := c.Body()
		if len(body) == 0 || !isJSON(c.Get(fiber.HeaderContentType)) {
			return c.Next()
		}
		if !json.Valid(body) {
			return apperr.BadRequest("Invalid JSON payload")
		}
		return c.Next()
	}
}

func isJSON(contentType string) bool {
	mediaType, _, _ := strings.Cut(contentType, ";")
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	return mediaType == fiber.MIMEApplicationJSON || strings.HasSuffix(mediaType, "+json")
}
