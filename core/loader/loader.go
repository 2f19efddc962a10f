package loader

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Feature is a route group mounted under a fixed path prefix.
type Feature interface {
	// Name identifies the feature in logs.
	Name() string
	// Prefix is the path the feature's routes are mounted under.
	Prefix() string
	// IsEnabled reports whether the feature should be mounted.
	IsEnabled() bool
	// Load registers the feature's routes on its group.
	Load(router fiber.Router) error
}

// Manager mounts registered features in registration order.
type Manager struct {
	features []Feature
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{}
}

// Register adds a feature. Features are mounted in the order they were registered.
func (m *Manager) Register(f Feature) {
	m.features = append(m.features, f)
}

// Features returns the registered features.
func (m *Manager) Features() []Feature {
	return m.features
}

// LoadAll mounts every enabled feature under its prefix and returns the names
// of the loaded features.
func (m *Manager) LoadAll(router fiber.Router) ([]string, error) {
	var loaded []string
	for _, f := range m.features {
		if !f.IsEnabled() {
			continue
		}
		if err := f.Load(router.Group(f.Prefix())); err != nil {
			return loaded, fmt.Errorf("failed to load feature %s: %w", f.Name(), err)
		}
		loaded = append(loaded, f.Name())
	}
	return loaded, nil
}
