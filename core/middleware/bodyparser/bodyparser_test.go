package bodyparser

import (
	"net/http/httptest"
	"strings"
	"testing"

	"project-admin/core/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if appErr, ok := apperr.As(err); ok {
				return c.Status(appErr.Status).SendString(appErr.Message)
			}
			return c.SendStatus(fiber.StatusInternalServerError)
		},
	})
	app.Use(New())
	app.Post("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	tests := []struct {
		name        string
		contentType string
		body        string
		want        int
	}{
		{"ValidJSON", "application/json", `{"name":"x"}`, 200},
		{"ValidJSONWithCharset", "application/json; charset=utf-8", `{"name":"x"}`, 200},
		{"InvalidJSON", "application/json", `{"name":`, 400},
		{"InvalidVendorJSON", "application/merge-patch+json", `nope`, 400},
		{"EmptyBody", "application/json", ``, 200},
		{"NotJSON", "text/plain", `{"name":`, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
