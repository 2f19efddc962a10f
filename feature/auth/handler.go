package auth

import (
	"project-admin/core/apperr"
	"project-admin/core/logger"
	authmw "project-admin/core/middleware/auth"
	"project-admin/core/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for authentication.
type Handler struct {
	service     *Service
	requireAuth fiber.Handler
	logger      *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, requireAuth fiber.Handler, logger *zap.Logger) *Handler {
	return &Handler{service: service, requireAuth: requireAuth, logger: logger}
}

// RegisterRoutes registers the auth routes on the /api/auth group.
func (h *Handler) RegisterRoutes(router fiber.Router) {
	router.Post("/register", h.HandleRegister)
	router.Post("/login", h.HandleLogin)
	router.Get("/me", h.requireAuth, h.HandleMe)
}

// HandleRegister creates an account.
// @Summary Register
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterInput true "Account"
// @Success 201 {object} response.Envelope{data=Session}
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /api/auth/register [post]
func (h *Handler) HandleRegister(c *fiber.Ctx) error {
	var in RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return apperr.Wrap(fiber.StatusBadRequest, "Invalid request body", err)
	}

	session, err := h.service.Register(c.UserContext(), in)
	if err != nil {
		return err
	}
	return response.Created(c, "User registered successfully", session)
}

// HandleLogin exchanges credentials for a token.
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginInput true "Credentials"
// @Success 200 {object} response.Envelope{data=Session}
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /api/auth/login [post]
func (h *Handler) HandleLogin(c *fiber.Ctx) error {
	var in LoginInput
	if err := c.BodyParser(&in); err != nil {
		return apperr.Wrap(fiber.StatusBadRequest, "Invalid request body", err)
	}

	session, err := h.service.Login(c.UserContext(), in)
	if err != nil {
		if appErr, ok := apperr.As(err); ok && appErr.Status == fiber.StatusUnauthorized {
			logger.WithRayID(h.logger, c).Info("Login rejected", zap.String("ip", c.IP()))
		}
		return err
	}
	return response.OK(c, "Login successful", session)
}

// HandleMe returns the authenticated user.
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope{data=models.User}
// @Failure 401 {object} response.Envelope
// @Router /api/auth/me [get]
func (h *Handler) HandleMe(c *fiber.Ctx) error {
	user, err := h.service.Me(c.UserContext(), authmw.UserID(c))
	if err != nil {
		return err
	}
	return response.OK(c, "Current user", user)
}
