package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/jewelbill-api/internal/application/service"
	"github.com/sangkips/jewelbill-api/internal/presentation/http/dto/request"
	"github.com/sangkips/jewelbill-api/internal/presentation/http/dto/response"
	"gorm.io/datatypes"
)

const maxImportSize = 5 << 20

// SettingsHandler handles settings-related HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings retrieves the business settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings retrieved successfully", settings)
}

// UpdateSettings updates the business settings
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req request.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), &service.UpdateSettingsInput{
		CompanyName:               req.CompanyName,
		CompanyAddress:            req.CompanyAddress,
		CompanyPhone:              req.CompanyPhone,
		CompanyEmail:              req.CompanyEmail,
		GSTIN:                     req.GSTIN,
		CGSTRate:                  req.CGSTRate,
		SGSTRate:                  req.SGSTRate,
		DefaultMakingChargeType:   req.DefaultMakingChargeType,
		DefaultMakingCharge:       req.DefaultMakingCharge,
		DefaultPurchaseNetType:    req.DefaultPurchaseNetType,
		DefaultPurchaseNetPercent: req.DefaultPurchaseNetPercent,
		DefaultPurchaseNetFixed:   req.DefaultPurchaseNetFixed,
		CurrencySymbol:            req.CurrencySymbol,
		BillTerms:                 req.BillTerms,
		Features:                  req.Features,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated successfully", settings)
}

// Export returns the settings and materials as a downloadable JSON file
func (h *SettingsHandler) Export(c *gin.Context) {
	export, err := h.settingsService.ExportSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="jewelbill-settings.json"`)
	c.JSON(http.StatusOK, export)
}

// Import applies a previously exported settings file
func (h *SettingsHandler) Import(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportSize))
	if err != nil {
		response.BadRequest(c, "Could not read request body")
		return
	}

	settings, err := h.settingsService.ImportSettings(c.Request.Context(), datatypes.JSON(body))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings imported successfully", settings)
}
