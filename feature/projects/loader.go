package projects

import (
	"project-admin/core/database"
	authmw "project-admin/core/middleware/auth"
	"project-admin/core/storage"
	"project-admin/core/token"
	usermodels "project-admin/feature/users/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
}

// NewFeature creates the projects route group. store is nil when attachment
// storage is disabled.
func NewFeature(db database.Provider, tokens *token.Issuer, store storage.Client, storageCfg storage.Config, logger *zap.Logger) *Feature {
	svc := NewService(db, store, storageCfg, logger)
	h := NewHandler(svc, authmw.New(authmw.Config{Tokens: tokens, Roles: usermodels.StoredRole(db)}), logger)
	return &Feature{handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "projects"
}

// Prefix returns the mount path of the feature.
func (f *Feature) Prefix() string {
	return "/api/projects"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(router fiber.Router) error {
	f.handler.RegisterRoutes(router)
	return nil
}
