package errorhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"project-admin/core/apperr"
	"project-admin/core/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"AppError", apperr.Conflict("Email already registered"), 409, "Email already registered"},
		{"WrappedAppError", fmt.Errorf("svc: %w", apperr.Forbidden("nope")), 403, "nope"},
		{"FiberError", fiber.ErrRequestEntityTooLarge, 413, "Request Entity Too Large"},
		{"RecordNotFound", fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound), 404, "Resource not found"},
		{"DatabaseNotReady", database.ErrNotReady, 503, "Database is not ready"},
		{"Internal", errors.New("dial tcp: secret host"), 500, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: New(zap.NewNop())})
			app.Get("/", func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.message, body["message"])
		})
	}
}

func TestNotFound(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: New(zap.NewNop())})
	app.Get("/known", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Use(NotFound)

	resp, err := app.Test(httptest.NewRequest("GET", "/missing?x=1", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Not Found - /missing?x=1", body["message"])
}
