// Package loader provides the route group loading system.
//
// Each route group implements the Feature interface, which names the group,
// declares its path prefix and registers its routes.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    Prefix() string
//	    IsEnabled() bool
//	    Load(router fiber.Router) error
//	}
//
// # Manager
//
// The Manager holds the registered features and mounts the enabled ones, in
// registration order, via LoadAll. Mount order matters to Fiber: the auth,
// users and projects groups are registered in that order by the start command.
package loader
