// internal/domain/notification/repository.go
package notification

import "context"

// ConfigRepository persists the single notification Config.
type ConfigRepository interface {
	// Get returns the stored config or a not-found error when none exists.
	Get(ctx context.Context) (*Config, error)
	// Save replaces any stored config with cfg.
	Save(ctx context.Context, cfg *Config) error
	// Update applies a partial update, creating the config when none exists.
	Update(ctx context.Context, u ConfigUpdate) error
	AddRecipient(ctx context.Context, email string) error
	RemoveRecipient(ctx context.Context, email string) error
}
