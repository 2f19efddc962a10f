package auth

import (
	"context"
	"errors"
	"strings"

	"project-admin/core/apperr"
	"project-admin/core/token"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	userIDKey = "user_id"
	roleKey   = "user_role"
)

// RoleAdmin is the role allowed to manage every user and project.
const RoleAdmin = "admin"

// RoleLookup returns the stored role of a user. It returns an error wrapping
// gorm.ErrRecordNotFound when the user no longer exists.
type RoleLookup func(ctx context.Context, userID string) (string, error)

// Config defines the config for the auth middleware.
type Config struct {
	// Tokens verifies bearer tokens.
	Tokens *token.Issuer
	// Roles resolves the caller's current role. The role claim in the token
	// is never trusted on its own.
	Roles RoleLookup
}

// New returns middleware requiring a valid "Authorization: Bearer" token whose
// subject still exists. The caller's ID and stored role are kept in the
// request locals.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		scheme, raw, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
			return apperr.Unauthorized("Not authorized, no token")
		}

		claims, err := cfg.Tokens.Parse(strings.TrimSpace(raw))
		if err != nil {
			return apperr.Wrap(fiber.StatusUnauthorized, "Not authorized, token failed", err)
		}

		role, err := cfg.Roles(c.UserContext(), claims.Subject)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Wrap(fiber.StatusUnauthorized, "Not authorized, user no longer exists", err)
		}
		if err != nil {
			return err
		}

		c.Locals(userIDKey, claims.Subject)
		c.Locals(roleKey, role)
		return c.Next()
	}
}

// RequireRole returns middleware allowing only callers with the given role.
// It must run after New.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if Role(c) != role {
			return apperr.Forbidden("Not authorized for this action")
		}
		return c.Next()
	}
}

// UserID returns the authenticated caller's ID.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(userIDKey).(string)
	return id
}

// Role returns the authenticated caller's role.
func Role(c *fiber.Ctx) string {
	role, _ := c.Locals(roleKey).(string)
	return role
}

// IsAdmin reports whether the caller has the admin role.
func IsAdmin(c *fiber.Ctx) bool {
	return Role(c) == RoleAdmin
}

// SelfOrAdmin reports whether the caller is the given user or an admin.
func SelfOrAdmin(c *fiber.Ctx, userID string) bool {
	return IsAdmin(c) || UserID(c) == userID
}

// Caller identifies the authenticated user of a request.
type Caller struct {
	UserID string
	Admin  bool
}

// CallerOf returns the authenticated caller of the request.
func CallerOf(c *fiber.Ctx) Caller {
	return Caller{UserID: UserID(c), Admin: IsAdmin(c)}
}
