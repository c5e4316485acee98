package driving

import "github.com/custodia-labs/projector/internal/core/domain"

// SettingsService manages projection settings.
type SettingsService interface {
	// Get retrieves current settings, falling back to defaults for
	// missing or invalid values.
	Get() (*domain.AppSettings, error)

	// Save validates and persists settings.
	Save(settings *domain.AppSettings) error

	// Set validates a single dotted key and persists it.
	Set(key, value string) error

	// Validate checks settings against their constraints.
	Validate(settings *domain.AppSettings) error

	// GetDefaults returns the default settings.
	GetDefaults() domain.AppSettings
}
