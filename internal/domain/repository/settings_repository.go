package repository

import (
	"context"

	"github.com/sangkips/jewelbill-api/internal/domain/entity"
)

// SettingsRepository defines the interface for business settings data access
type SettingsRepository interface {
	// Get returns the settings row or nil when none was saved yet
	Get(ctx context.Context) (*entity.BusinessSettings, error)
	Save(ctx context.Context, settings *entity.BusinessSettings) error
}
