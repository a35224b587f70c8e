package persistence

import (
	"context"
	"errors"

	"github.com/chickenviken/backend/internal/domain/settings"
	"gorm.io/gorm"
)

// GormSettingsRepository implements the settings singleton port using GORM
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GormSettingsRepository
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// Get returns the saved settings row, or nil when nothing has been saved
func (r *GormSettingsRepository) Get(ctx context.Context) (*settings.StoreSettings, error) {
	var s settings.StoreSettings
	if err := r.db.WithContext(ctx).Order("created_at asc").First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// Save upserts the settings row
func (r *GormSettingsRepository) Save(ctx context.Context, s *settings.StoreSettings) error {
	return r.db.WithContext(ctx).Save(s).Error
}

var _ settings.Repository = (*GormSettingsRepository)(nil)
