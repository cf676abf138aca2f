package service

import (
	"context"
	"fmt"
	"strings"

	"quotepanel/internal/model"
	"quotepanel/internal/repository"
)

type ConfigService interface {
	Load(ctx context.Context) model.Config
	Save(ctx context.Context, cfg model.Config) (model.Config, error)
}

type configService struct {
	configRepo repository.ConfigRepository
	budgets    BudgetService
	hub        EventBroadcaster
}

func NewConfigService(configRepo repository.ConfigRepository, budgets BudgetService, hub EventBroadcaster) ConfigService {
	return &configService{configRepo: configRepo, budgets: budgets, hub: hub}
}

func (s *configService) Load(ctx context.Context) model.Config {
	return s.configRepo.Load()
}

// Save validates, persists and propagates the new settings. Empty text
// fields fall back to the shipped defaults, matching how a half-filled
// settings form behaves.
func (s *configService) Save(ctx context.Context, cfg model.Config) (model.Config, error) {
	if cfg.IvaPercent < 0 || cfg.IvaPercent > 100 {
		return model.Config{}, fmt.Errorf("el IVA debe estar entre 0 y 100: %w", ErrValidation)
	}
	if cfg.MaxDiscount < 0 || cfg.MaxDiscount > 100 {
		return model.Config{}, fmt.Errorf("el descuento máximo debe estar entre 0 y 100: %w", ErrValidation)
	}
	if cfg.DefaultShipping < 0 {
		return model.Config{}, fmt.Errorf("el envío por defecto no puede ser negativo: %w", ErrValidation)
	}

	def := model.DefaultConfig()
	if strings.TrimSpace(cfg.Currency) == "" {
		cfg.Currency = def.Currency
	}
	if strings.TrimSpace(cfg.CompanyName) == "" {
		cfg.CompanyName = def.CompanyName
	}
	if strings.TrimSpace(cfg.Cuit) == "" {
		cfg.Cuit = def.Cuit
	}
	if strings.TrimSpace(cfg.Bank) == "" {
		cfg.Bank = def.Bank
	}
	if strings.TrimSpace(cfg.Cbu) == "" {
		cfg.Cbu = def.Cbu
	}

	if err := s.configRepo.Save(cfg); err != nil {
		return model.Config{}, fmt.Errorf("failed to save config: %w", err)
	}

	// The in-progress quote picks up the new defaults immediately.
	s.budgets.ApplyConfig(cfg)

	if s.hub != nil {
		s.hub.BroadcastEvent("config.updated", cfg)
	}
	return cfg, nil
}
