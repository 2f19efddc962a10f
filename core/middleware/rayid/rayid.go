package rayid

import (
	"project-admin/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Header is the response header carrying the ray ID.
const Header = "X-Ray-ID"

// New returns middleware assigning every request a ray ID. An incoming
// X-Ray-ID header is reused when it is a valid UUID.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(Header)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Locals(logger.RayIDKey, id)
		c.Set(Header, id)
		return c.Next()
	}
}

// FromCtx returns the ray ID of the request, or an empty string.
func FromCtx(c *fiber.Ctx) string {
	id, _ := c.Locals(logger.RayIDKey).(string)
	return id
}
