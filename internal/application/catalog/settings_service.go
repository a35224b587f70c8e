package catalog

import (
	"context"

	"github.com/chickenviken/backend/internal/domain/settings"
	"go.uber.org/zap"
)

// SettingsService reads and writes the storefront settings singleton
type SettingsService struct {
	repo   settings.Repository
	logger *zap.Logger
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(repo settings.Repository, logger *zap.Logger) *SettingsService {
	return &SettingsService{repo: repo, logger: logger}
}

// Get returns the saved settings, or the defaults when none exist yet
func (s *SettingsService) Get(ctx context.Context) (*SettingsResponse, error) {
	saved, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		saved = settings.DefaultSettings()
	}
	response := ToSettingsResponse(saved)
	return &response, nil
}

// Update replaces the settings, creating the row on first save
func (s *SettingsService) Update(ctx context.Context, req UpdateSettingsRequest) (*SettingsResponse, error) {
	saved, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		saved = settings.DefaultSettings()
	}

	if err := saved.Update(req.StoreName, req.ContactEmail, req.ContactPhone, req.StoreAddress, req.OpeningHours, req.AcceptingOrders); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, saved); err != nil {
		return nil, err
	}
	s.logger.Info("store settings updated", zap.String("store_name", saved.StoreName))

	response := ToSettingsResponse(saved)
	return &response, nil
}
