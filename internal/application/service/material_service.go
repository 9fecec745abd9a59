package service

import (
	"context"
	"strings"

	"github.com/sangkips/jewelbill-api/internal/config"
	"github.com/sangkips/jewelbill-api/internal/domain/billing"
	"github.com/sangkips/jewelbill-api/internal/domain/entity"
	"github.com/sangkips/jewelbill-api/internal/domain/repository"
	"github.com/sangkips/jewelbill-api/pkg/apperror"
	"github.com/sangkips/jewelbill-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// MaterialService handles material-related business logic
type MaterialService struct {
	materialRepo repository.MaterialRepository
	logger       logrus.FieldLogger
}

// NewMaterialService creates a new material service
func NewMaterialService(materialRepo repository.MaterialRepository, logger logrus.FieldLogger) *MaterialService {
	return &MaterialService{
		materialRepo: materialRepo,
		logger:       logger,
	}
}

// EnsureDefaults creates any built-in material that is missing
func (s *MaterialService) EnsureDefaults(ctx context.Context) error {
	for _, m := range entity.DefaultMaterials() {
		existing, err := s.materialRepo.GetByID(ctx, m.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		material := m
		if err := s.materialRepo.Create(ctx, &material); err != nil {
			config.LogError(s.logger, "MaterialService", "EnsureDefaults", "creating default material", m.ID, err)
			return err
		}
		s.logger.WithField("material", m.ID).Info("default material created")
	}
	return nil
}

// ListMaterials returns all materials, or only the header ones
func (s *MaterialService) ListMaterials(ctx context.Context, headerOnly bool) ([]entity.Material, error) {
	materials, err := s.materialRepo.List(ctx, headerOnly)
	if err != nil {
		return nil, err
	}
	if materials == nil {
		materials = []entity.Material{}
	}
	return materials, nil
}

// Registry returns a lookup over the current materials
func (s *MaterialService) Registry(ctx context.Context) (billing.Registry, error) {
	materials, err := s.materialRepo.List(ctx, false)
	if err != nil {
		return nil, err
	}
	return billing.NewRegistry(materials), nil
}

// GetMaterial retrieves a material by ID
func (s *MaterialService) GetMaterial(ctx context.Context, id string) (*entity.Material, error) {
	material, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, apperror.NewNotFoundError("Material")
	}
	return material, nil
}

// CreateMaterialInput represents the input for creating a custom material
type CreateMaterialInput struct {
	Name             string
	Price            float64
	Unit             string
	Icon             string
	HSNCode          string
	SelectedInHeader bool
	SortOrder        int
}

// CreateMaterial creates a custom material
func (s *MaterialService) CreateMaterial(ctx context.Context, input *CreateMaterialInput) (*entity.Material, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "name", Message: "is required"}})
	}
	if input.Price < 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "price", Message: "must not be negative"}})
	}

	material := &entity.Material{
		ID:               utils.NewMaterialID(name),
		Name:             name,
		Price:            input.Price,
		Unit:             strings.TrimSpace(input.Unit),
		Icon:             input.Icon,
		HSNCode:          input.HSNCode,
		SelectedInHeader: input.SelectedInHeader,
		SortOrder:        input.SortOrder,
	}
	if material.Unit == "" {
		material.Unit = "g"
	}

	if err := s.materialRepo.Create(ctx, material); err != nil {
		return nil, err
	}
	return material, nil
}

// UpdateMaterialInput represents a partial material update
type UpdateMaterialInput struct {
	Name             *string
	Price            *float64
	Unit             *string
	Icon             *string
	HSNCode          *string
	SelectedInHeader *bool
	SortOrder        *int
}

// UpdateMaterial applies a partial update, honouring the locks on
// built-in materials.
func (s *MaterialService) UpdateMaterial(ctx context.Context, id string, input *UpdateMaterialInput) (*entity.Material, error) {
	material, err := s.GetMaterial(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != material.Name {
		if !material.CanRename() {
			return nil, apperror.NewForbiddenError("The name of a built-in material cannot be changed")
		}
		if strings.TrimSpace(*input.Name) == "" {
			return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "name", Message: "is required"}})
		}
		material.Name = strings.TrimSpace(*input.Name)
	}
	if input.Icon != nil && *input.Icon != material.Icon {
		if material.IsDefault {
			return nil, apperror.NewForbiddenError("The icon of a built-in material cannot be changed")
		}
		material.Icon = *input.Icon
	}
	if input.Unit != nil && *input.Unit != material.Unit {
		if !material.CanChangeUnit() {
			return nil, apperror.NewForbiddenError("The unit of " + material.Name + " is fixed")
		}
		material.Unit = *input.Unit
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "price", Message: "must not be negative"}})
		}
		material.Price = *input.Price
	}
	if input.HSNCode != nil {
		material.HSNCode = *input.HSNCode
	}
	if input.SelectedInHeader != nil {
		material.SelectedInHeader = *input.SelectedInHeader
	}
	if input.SortOrder != nil {
		material.SortOrder = *input.SortOrder
	}

	if err := s.materialRepo.Update(ctx, material); err != nil {
		return nil, err
	}
	return material, nil
}

// UpdatePrice sets the current market price of a material
func (s *MaterialService) UpdatePrice(ctx context.Context, id string, price float64) (*entity.Material, error) {
	return s.UpdateMaterial(ctx, id, &UpdateMaterialInput{Price: &price})
}

// SetHeaderSelection shows or hides a material in the billing header
func (s *MaterialService) SetHeaderSelection(ctx context.Context, id string, selected bool) (*entity.Material, error) {
	return s.UpdateMaterial(ctx, id, &UpdateMaterialInput{SelectedInHeader: &selected})
}

// DeleteMaterial removes a custom material. Bill items that reference it
// keep their snapshot fields.
func (s *MaterialService) DeleteMaterial(ctx context.Context, id string) error {
	material, err := s.GetMaterial(ctx, id)
	if err != nil {
		return err
	}
	if !material.CanDelete() {
		return apperror.ErrDefaultMaterial
	}
	return s.materialRepo.Delete(ctx, id)
}

// ImportMaterial upserts a material from a settings import. Built-in
// materials keep their locked name, icon and unit.
func (s *MaterialService) ImportMaterial(ctx context.Context, m entity.Material) error {
	if m.Price < 0 {
		m.Price = 0
	}

	existing, err := s.materialRepo.GetByID(ctx, m.ID)
	if err != nil {
		return err
	}
	switch {
	case existing != nil && existing.IsDefault:
		m.Name = existing.Name
		m.Icon = existing.Icon
		m.IsDefault = true
		m.FixedUnit = existing.FixedUnit
		if existing.FixedUnit {
			m.Unit = existing.Unit
		}
	case m.ID == "":
		m.ID = utils.NewMaterialID(m.Name)
		fallthrough
	default:
		m.IsDefault = false
		m.FixedUnit = false
	}
	if strings.TrimSpace(m.Name) == "" {
		return apperror.NewBadRequestError("Imported material " + m.ID + " has no name")
	}
	return s.materialRepo.Upsert(ctx, &m)
}
