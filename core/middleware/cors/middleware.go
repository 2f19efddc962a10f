package cors

import (
	"strings"

	"project-admin/core/apperr"

	"github.com/gofiber/fiber/v2"
	fibercors "github.com/gofiber/fiber/v2/middleware/cors"
)

// New returns middleware enforcing the policy. Denied origins abort the chain
// with a 403 apperr.Error wrapping ErrOriginNotAllowed; allowed requests get
// credentialed CORS headers from Fiber's cors middleware.
func New(p *Policy) fiber.Handler {
	headers := fibercors.New(fibercors.Config{
		AllowOrigins:     strings.Join(p.origins, ","),
		AllowMethods:     strings.Join(AllowedMethods, ","),
		AllowHeaders:     strings.Join(AllowedHeaders, ","),
		AllowCredentials: true,
	})

	return func(c *fiber.Ctx) error {
		if err := p.Check(c.Get(fiber.HeaderOrigin)); err != nil {
			return apperr.Wrap(fiber.StatusForbidden, "Not allowed by CORS", err)
		}
		return headers(c)
	}
}
