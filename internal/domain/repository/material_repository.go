package repository

import (
	"context"

	"github.com/sangkips/jewelbill-api/internal/domain/entity"
)

// MaterialRepository defines the interface for material data operations
type MaterialRepository interface {
	Create(ctx context.Context, material *entity.Material) error
	GetByID(ctx context.Context, id string) (*entity.Material, error)
	Update(ctx context.Context, material *entity.Material) error
	Delete(ctx context.Context, id string) error
	// List returns materials in display order
	List(ctx context.Context, headerOnly bool) ([]entity.Material, error)
	// Upsert inserts the material or overwrites the row with the same id
	Upsert(ctx context.Context, material *entity.Material) error
}
