package catalog

import (
	"context"
)

// Provider represents a course platform that can fetch courses for the
// catalog. All providers in CourseXpert must implement this interface to
// integrate with the system.
//
// Providers are self-contained units that:
// - Know how to fetch data from their platform (HTTP endpoint, export file, etc.)
// - Normalize raw records into Course values before emitting them
// - Manage their own configuration and lifecycle
//
// Key concepts:
//   - Type vs Name: Type is the platform category (e.g. "nptel"), Name is the
//     configured instance (e.g. "nptel_main").
//   - Streaming: Courses are fetched and sent through channels so callers can
//     consume them as they arrive.
//   - Configuration: Providers validate and manage their own settings.
//
// Registration pattern:
//
//	func init() {
//		prototype := &Provider{}
//		catalog.RegisterProviderPrototype("nptel", prototype)
//	}
type Provider interface {
	// Type returns the provider type identifier (e.g. "nptel", "coursera",
	// "udemy"). Used for factory registration and configuration matching.
	Type() string

	// Name returns the unique instance name for this provider. This
	// distinguishes between different instances of the same type and is
	// what users see in results.
	Name() string

	// FetchCourses retrieves the platform's catalog and streams normalized
	// courses. Implementations must respect context cancellation and send
	// courses as soon as they are normalized. A failed fetch should be
	// returned as an error; the caller degrades it to an empty contribution.
	FetchCourses(ctx context.Context, courseCh chan<- Course) error

	// ConfigType returns a pointer to an empty configuration struct. Used
	// by the system to decode TOML configuration blocks. Should return the
	// same type that SetConfig expects.
	ConfigType() interface{}

	// SetConfig updates the provider configuration. Called during
	// initialization and when configuration changes. Should validate the
	// config and return an error if invalid.
	SetConfig(config interface{}) error

	// GetConfig returns the current configuration.
	GetConfig() interface{}

	// Close performs cleanup when the provider is no longer needed.
	Close() error

	// Factory creates new instances of this provider type. Called by the
	// registry when creating provider instances from configuration. Should
	// validate the config and return a fully initialized provider.
	Factory(instanceName string, config interface{}) (Provider, error)
}
