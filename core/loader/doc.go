// Package loader provides the plugin-like feature loading system.
//
// Each feature implements the Feature interface, which decides whether it is
// enabled and registers its routes:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager holds the registry. Register adds features; LoadAll mounts the
// enabled ones in registration order and reports which were loaded.
package loader
