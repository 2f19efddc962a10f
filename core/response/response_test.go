package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopes(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", func(c *fiber.Ctx) error { return OK(c, "fine", fiber.Map{"id": "1"}) })
	app.Post("/created", func(c *fiber.Ctx) error { return Created(c, "made", nil) })
	app.Get("/fail", func(c *fiber.Ctx) error { return Fail(c, fiber.StatusTeapot, "nope") })

	tests := []struct {
		method, path string
		status       int
		success      bool
		message      string
		hasData      bool
	}{
		{"GET", "/ok", 200, true, "fine", true},
		{"POST", "/created", 201, true, "made", false},
		{"GET", "/fail", 418, false, "nope", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(tt.method, tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.success, body["success"])
			assert.Equal(t, tt.message, body["message"])
			_, ok := body["data"]
			assert.Equal(t, tt.hasData, ok)
		})
	}
}

func TestPagination(t *testing.T) {
	tests := []struct {
		query               string
		page, limit, offset int
	}{
		{"", 1, 20, 0},
		{"?page=3&limit=10", 3, 10, 20},
		{"?page=0&limit=0", 1, 20, 0},
		{"?page=2&limit=500", 2, 100, 100},
		{"?page=abc", 1, 20, 0},
		{"?page=9223372036854775807&limit=100", maxPage, 100, (maxPage - 1) * 100},
		{"?page=-9223372036854775808", 1, 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				page, limit, offset := Pagination(c)
				assert.Equal(t, tt.page, page)
				assert.Equal(t, tt.limit, limit)
				assert.Equal(t, tt.offset, offset)
				return nil
			})
			_, err := app.Test(httptest.NewRequest("GET", "/"+tt.query, nil))
			require.NoError(t, err)
		})
	}
}
