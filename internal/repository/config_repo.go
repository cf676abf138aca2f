package repository

import (
	"quotepanel/internal/model"
	"quotepanel/internal/storage"
)

type ConfigRepository interface {
	// Load returns the stored overrides merged over the hard-coded
	// defaults. Missing or corrupt records fall back to pure defaults.
	Load() model.Config
	Save(cfg model.Config) error
}

type configRepository struct {
	gw *storage.Gateway
}

func NewConfigRepository(gw *storage.Gateway) ConfigRepository {
	return &configRepository{gw: gw}
}

func (r *configRepository) Load() model.Config {
	cfg := model.DefaultConfig()
	r.gw.ReadJSON(storage.KeyConfig, &cfg)
	return cfg
}

func (r *configRepository) Save(cfg model.Config) error {
	return r.gw.WriteJSON(storage.KeyConfig, cfg)
}
