package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/sangkips/jewelbill-api/internal/config"
	"github.com/sangkips/jewelbill-api/internal/domain/billing"
	"github.com/sangkips/jewelbill-api/internal/domain/entity"
	"github.com/sangkips/jewelbill-api/internal/domain/enum"
	"github.com/sangkips/jewelbill-api/internal/domain/repository"
	"github.com/sangkips/jewelbill-api/pkg/apperror"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

const exportVersion = 1

// SettingsService handles business settings and their import/export
type SettingsService struct {
	settingsRepo    repository.SettingsRepository
	materialService *MaterialService
	logger          logrus.FieldLogger
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository, materialService *MaterialService, logger logrus.FieldLogger) *SettingsService {
	return &SettingsService{
		settingsRepo:    settingsRepo,
		materialService: materialService,
		logger:          logger,
	}
}

// DefaultSettings returns the settings used before the owner saves any
func DefaultSettings() *entity.BusinessSettings {
	return &entity.BusinessSettings{
		ID:             entity.SettingsID,
		CompanyName:    "My Jewellery Shop",
		CGSTRate:       1.5,
		SGSTRate:       1.5,
		CurrencySymbol: "₹",
		Features: datatypes.JSONMap{
			entity.FeatureEstimates:        true,
			entity.FeatureDeliveryVouchers: true,
			entity.FeaturePurchaseBills:    true,
			entity.FeatureGSTReport:        true,
		},
	}
}

// GetSettings retrieves the settings, creating defaults if none exist
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.BusinessSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if settings == nil {
		settings = DefaultSettings()
		if err := s.settingsRepo.Save(ctx, settings); err != nil {
			config.LogError(s.logger, "SettingsService", "GetSettings", "creating default settings", nil, err)
			return nil, err
		}
	}
	return settings, nil
}

// TaxRates returns the CGST and SGST rates currently configured
func (s *SettingsService) TaxRates(ctx context.Context) (billing.TaxRates, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return billing.TaxRates{}, err
	}
	return billing.TaxRates{CGST: settings.CGSTRate, SGST: settings.SGSTRate}, nil
}

// UpdateSettingsInput represents the input for updating settings
type UpdateSettingsInput struct {
	CompanyName               string
	CompanyAddress            string
	CompanyPhone              string
	CompanyEmail              string
	GSTIN                     string
	CGSTRate                  float64
	SGSTRate                  float64
	DefaultMakingChargeType   enum.MakingChargeType
	DefaultMakingCharge       float64
	DefaultPurchaseNetType    enum.PurchaseNetType
	DefaultPurchaseNetPercent float64
	DefaultPurchaseNetFixed   float64
	CurrencySymbol            string
	BillTerms                 string
	Features                  map[string]bool
}

// UpdateSettings replaces the editable settings
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.BusinessSettings, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	settings.CompanyName = strings.TrimSpace(input.CompanyName)
	settings.CompanyAddress = input.CompanyAddress
	settings.CompanyPhone = input.CompanyPhone
	settings.CompanyEmail = input.CompanyEmail
	settings.GSTIN = strings.ToUpper(strings.TrimSpace(input.GSTIN))
	settings.CGSTRate = input.CGSTRate
	settings.SGSTRate = input.SGSTRate
	settings.DefaultMakingChargeType = input.DefaultMakingChargeType
	settings.DefaultMakingCharge = input.DefaultMakingCharge
	settings.DefaultPurchaseNetType = input.DefaultPurchaseNetType
	settings.DefaultPurchaseNetPercent = input.DefaultPurchaseNetPercent
	settings.DefaultPurchaseNetFixed = input.DefaultPurchaseNetFixed
	settings.BillTerms = input.BillTerms
	if input.CurrencySymbol != "" {
		settings.CurrencySymbol = input.CurrencySymbol
	}
	if input.Features != nil {
		features := datatypes.JSONMap{}
		for k, v := range settings.Features {
			features[k] = v
		}
		for k, v := range input.Features {
			features[k] = v
		}
		settings.Features = features
	}

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// SettingsExport is the JSON blob produced by export and read by import
type SettingsExport struct {
	Version     int                      `json:"version"`
	CompanyName string                   `json:"companyName"`
	ExportedAt  time.Time                `json:"exportedAt"`
	Settings    *entity.BusinessSettings `json:"settings"`
	Valuables   []entity.Material        `json:"valuables"`
}

// ExportSettings bundles the settings and every material
func (s *SettingsService) ExportSettings(ctx context.Context) (*SettingsExport, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	materials, err := s.materialService.ListMaterials(ctx, false)
	if err != nil {
		return nil, err
	}

	return &SettingsExport{
		Version:     exportVersion,
		CompanyName: settings.CompanyName,
		ExportedAt:  time.Now().UTC(),
		Settings:    settings,
		Valuables:   materials,
	}, nil
}

// ImportSettings applies an exported blob. Only the shape is checked:
// companyName must be present and valuables must be a list.
func (s *SettingsService) ImportSettings(ctx context.Context, blob datatypes.JSON) (*entity.BusinessSettings, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(blob, &raw); err != nil {
		return nil, apperror.NewBadRequestError("Import file is not a JSON object")
	}

	var companyName string
	if err := json.Unmarshal(raw["companyName"], &companyName); err != nil || strings.TrimSpace(companyName) == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "companyName", Message: "is required"}})
	}

	var valuables []entity.Material
	if v, ok := raw["valuables"]; !ok || !isJSONArray(v) || json.Unmarshal(v, &valuables) != nil {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "valuables", Message: "must be a list"}})
	}

	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if v, ok := raw["settings"]; ok && string(v) != "null" {
		imported := *settings
		if err := json.Unmarshal(v, &imported); err != nil {
			return nil, apperror.NewBadRequestError("Imported settings are malformed")
		}
		settings = &imported
	}
	settings.CompanyName = strings.TrimSpace(companyName)

	for _, m := range valuables {
		if err := s.materialService.ImportMaterial(ctx, m); err != nil {
			config.LogError(s.logger, "SettingsService", "ImportSettings", "importing material", m.ID, err)
			return nil, err
		}
	}

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}
	s.logger.WithField("materials", len(valuables)).Info("settings imported")
	return settings, nil
}

func isJSONArray(v json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(v))
	return strings.HasPrefix(trimmed, "[")
}
