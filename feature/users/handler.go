package users

import (
	"project-admin/core/apperr"
	authmw "project-admin/core/middleware/auth"
	"project-admin/core/response"
	"project-admin/feature/users/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for user accounts.
type Handler struct {
	service     *Service
	requireAuth fiber.Handler
	logger      *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, requireAuth fiber.Handler, logger *zap.Logger) *Handler {
	return &Handler{service: service, requireAuth: requireAuth, logger: logger}
}

// RegisterRoutes registers the user routes on the /api/users group.
func (h *Handler) RegisterRoutes(router fiber.Router) {
	adminOnly := authmw.RequireRole(models.RoleAdmin)

	router.Get("/", h.requireAuth, adminOnly, h.HandleList)
	router.Get("/:id", h.requireAuth, h.HandleGet)
	router.Put("/:id", h.requireAuth, h.HandleUpdate)
	router.Delete("/:id", h.requireAuth, adminOnly, h.HandleDelete)
}

// HandleList lists users.
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} response.Envelope{data=response.Page}
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /api/users [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	page, limit, offset := response.Pagination(c)
	result, err := h.service.List(c.UserContext(), page, limit, offset)
	if err != nil {
		return err
	}
	return response.OK(c, "Users retrieved", result)
}

// HandleGet returns a user.
// @Summary Get user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope{data=models.User}
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/users/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	user, err := h.service.Get(c.UserContext(), authmw.CallerOf(c), c.Params("id"))
	if err != nil {
		return err
	}
	return response.OK(c, "User retrieved", user)
}

// HandleUpdate updates a user.
// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param body body UpdateInput true "Fields to change"
// @Success 200 {object} response.Envelope{data=models.User}
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /api/users/{id} [put]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	var in UpdateInput
	if err := c.BodyParser(&in); err != nil {
		return apperr.Wrap(fiber.StatusBadRequest, "Invalid request body", err)
	}

	user, err := h.service.Update(c.UserContext(), authmw.CallerOf(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return response.OK(c, "User updated", user)
}

// HandleDelete deletes a user.
// @Summary Delete user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /api/users/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), authmw.CallerOf(c), c.Params("id")); err != nil {
		return err
	}
	return response.OK(c, "User deleted", nil)
}
