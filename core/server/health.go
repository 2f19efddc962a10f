package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// RootResponse is the body of GET /.
type RootResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Version string `json:"version"`
}

// timestampLayout renders UTC instants with millisecond precision.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Health reports that the process is alive. It does not check the database.
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} server.HealthResponse
// @Router /health [get]
func Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(HealthResponse{
		Success:   true,
		Message:   "API is healthy",
		Timestamp: time.Now().UTC().Format(timestampLayout),
	})
}

// Root reports the API version.
// @Summary API banner
// @Tags health
// @Produce json
// @Success 200 {object} server.RootResponse
// @Router / [get]
func Root(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(RootResponse{
		Success: true,
		Message: "API Running",
		Version: Version,
	})
}
