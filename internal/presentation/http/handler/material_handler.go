package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/jewelbill-api/internal/application/service"
	"github.com/sangkips/jewelbill-api/internal/presentation/http/dto/request"
	"github.com/sangkips/jewelbill-api/internal/presentation/http/dto/response"
)

// MaterialHandler handles material-related HTTP requests
type MaterialHandler struct {
	materialService *service.MaterialService
}

// NewMaterialHandler creates a new material handler
func NewMaterialHandler(materialService *service.MaterialService) *MaterialHandler {
	return &MaterialHandler{materialService: materialService}
}

// List handles listing materials
func (h *MaterialHandler) List(c *gin.Context) {
	var filter request.MaterialFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BindError(c, err)
		return
	}

	materials, err := h.materialService.ListMaterials(c.Request.Context(), filter.HeaderOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Materials retrieved successfully", materials)
}

// Get handles getting a single material
func (h *MaterialHandler) Get(c *gin.Context) {
	material, err := h.materialService.GetMaterial(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Material retrieved successfully", material)
}

// Create handles creating a custom material
func (h *MaterialHandler) Create(c *gin.Context) {
	var req request.CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	material, err := h.materialService.CreateMaterial(c.Request.Context(), &service.CreateMaterialInput{
		Name:             req.Name,
		Price:            req.Price,
		Unit:             req.Unit,
		Icon:             req.Icon,
		HSNCode:          req.HSNCode,
		SelectedInHeader: req.SelectedInHeader,
		SortOrder:        req.SortOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Material created successfully", material)
}

// Update handles a partial material update
func (h *MaterialHandler) Update(c *gin.Context) {
	var req request.UpdateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	material, err := h.materialService.UpdateMaterial(c.Request.Context(), c.Param("id"), &service.UpdateMaterialInput{
		Name:             req.Name,
		Price:            req.Price,
		Unit:             req.Unit,
		Icon:             req.Icon,
		HSNCode:          req.HSNCode,
		SelectedInHeader: req.SelectedInHeader,
		SortOrder:        req.SortOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Material updated successfully", material)
}

// UpdatePrice handles setting the market price
func (h *MaterialHandler) UpdatePrice(c *gin.Context) {
	var req request.UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	material, err := h.materialService.UpdatePrice(c.Request.Context(), c.Param("id"), *req.Price)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Price updated successfully", material)
}

// SetHeader handles toggling header selection
func (h *MaterialHandler) SetHeader(c *gin.Context) {
	var req request.HeaderSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	material, err := h.materialService.SetHeaderSelection(c.Request.Context(), c.Param("id"), *req.Selected)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Header selection updated successfully", material)
}

// Delete handles deleting a custom material
func (h *MaterialHandler) Delete(c *gin.Context) {
	if err := h.materialService.DeleteMaterial(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
