package sqlite

import (
	"context"

	"github.com/example/parish-booker/internal/persistence"
)

// ConfigRepository implements persistence.ConfigRepository over the document store.
type ConfigRepository struct {
	store *Store
}

// NewConfigRepository creates a config repository bound to the store.
func NewConfigRepository(store *Store) *ConfigRepository {
	return &ConfigRepository{store: store}
}

// GetConfig returns the singleton configuration record.
func (r *ConfigRepository) GetConfig(ctx context.Context) (persistence.AppConfig, error) {
	var config persistence.AppConfig
	found, err := r.store.Load(ctx, colConfig, &config)
	if err != nil {
		return persistence.AppConfig{}, err
	}
	if !found {
		return persistence.AppConfig{}, persistence.ErrNotFound
	}
	return config, nil
}

// SetConfig overwrites the singleton configuration record wholesale.
func (r *ConfigRepository) SetConfig(ctx context.Context, config persistence.AppConfig) error {
	return r.store.Save(ctx, colConfig, config)
}
