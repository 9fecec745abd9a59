package repository

import (
	"context"
	"errors"

	"github.com/sangkips/jewelbill-api/internal/domain/entity"
	domainRepo "github.com/sangkips/jewelbill-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type materialRepository struct {
	db *gorm.DB
}

// NewMaterialRepository creates a new material repository
func NewMaterialRepository(db *gorm.DB) domainRepo.MaterialRepository {
	return &materialRepository{db: db}
}

func (r *materialRepository) Create(ctx context.Context, material *entity.Material) error {
	return r.db.WithContext(ctx).Create(material).Error
}

func (r *materialRepository) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	var material entity.Material
	err := r.db.WithContext(ctx).First(&material, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &material, err
}

func (r *materialRepository) Update(ctx context.Context, material *entity.Material) error {
	return r.db.WithContext(ctx).Save(material).Error
}

func (r *materialRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.Material{}, "id = ?", id).Error
}

func (r *materialRepository) List(ctx context.Context, headerOnly bool) ([]entity.Material, error) {
	var materials []entity.Material
	query := r.db.WithContext(ctx).Model(&entity.Material{})
	if headerOnly {
		query = query.Where("selected_in_header = ?", true)
	}
	err := query.Order("sort_order ASC").Order("name ASC").Find(&materials).Error
	return materials, err
}

func (r *materialRepository) Upsert(ctx context.Context, material *entity.Material) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(material).Error
}
