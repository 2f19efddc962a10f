package response

import (
	"math"

	"github.com/gofiber/fiber/v2"
)

// Envelope is the body shape shared by every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Page is the data payload of a paginated listing.
type Page struct {
	Items any   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// OK writes a 200 success envelope.
func OK(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Success: true, Message: message, Data: data})
}

// Created writes a 201 success envelope.
func Created(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{Success: true, Message: message, Data: data})
}

// Fail writes a failure envelope with the given status.
func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Envelope{Success: false, Message: message})
}

const (
	defaultLimit = 20
	maxLimit     = 100
	// maxPage keeps the row offset within 32 bits for any limit.
	maxPage = math.MaxInt32 / maxLimit
)

// Pagination reads the page and limit query parameters, clamping them to sane
// bounds. It returns the page, the limit and the row offset.
func Pagination(c *fiber.Ctx) (page, limit, offset int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	limit = c.QueryInt("limit", defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit, (page - 1) * limit
}
