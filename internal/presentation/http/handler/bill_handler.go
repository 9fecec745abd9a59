package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/jewelbill-api/internal/application/service"
	"github.com/sangkips/jewelbill-api/internal/domain/enum"
	"github.com/sangkips/jewelbill-api/internal/domain/repository"
	"github.com/sangkips/jewelbill-api/internal/presentation/http/dto/request"
	"github.com/sangkips/jewelbill-api/internal/presentation/http/dto/response"
	"github.com/sangkips/jewelbill-api/pkg/pagination"
)

// BillHandler handles bill-related HTTP requests
type BillHandler struct {
	billService *service.BillService
	location    *time.Location
}

// NewBillHandler creates a new bill handler. Date filters are read as
// calendar days in location.
func NewBillHandler(billService *service.BillService, location *time.Location) *BillHandler {
	if location == nil {
		location = time.UTC
	}
	return &BillHandler{billService: billService, location: location}
}

func toItemInputs(items []request.BillItemRequest) []service.ItemInput {
	out := make([]service.ItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, service.ItemInput{
			ValuableID:              it.ValuableID,
			Name:                    it.Name,
			HSNCode:                 it.HSNCode,
			WeightOrQuantity:        it.WeightOrQuantity,
			Unit:                    it.Unit,
			Rate:                    it.Rate,
			MakingChargeType:        it.MakingChargeType,
			MakingCharge:            it.MakingCharge,
			PurchaseNetType:         it.PurchaseNetType,
			PurchaseNetPercentValue: it.PurchaseNetPercentValue,
			PurchaseNetFixedValue:   it.PurchaseNetFixedValue,
		})
	}
	return out
}

func toBillInput(req *request.BillRequest) *service.BillInput {
	return &service.BillInput{
		Type:            req.Type,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		CustomerGSTIN:   req.CustomerGSTIN,
		Notes:           req.Notes,
		Items:           toItemInputs(req.Items),
		ApplyDefaults:   req.ApplyDefaults,
	}
}

// dayRange parses optional YYYY-MM-DD bounds. The end date covers its
// whole day.
func (h *BillHandler) dayRange(start, end string) (*time.Time, *time.Time, bool) {
	var from, to *time.Time
	if start != "" {
		t, err := time.ParseInLocation("2006-01-02", start, h.location)
		if err != nil {
			return nil, nil, false
		}
		from = &t
	}
	if end != "" {
		t, err := time.ParseInLocation("2006-01-02", end, h.location)
		if err != nil {
			return nil, nil, false
		}
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		to = &t
	}
	return from, to, true
}

// List handles listing bills (supports both page-based and cursor-based pagination)
func (h *BillHandler) List(c *gin.Context) {
	var filter request.BillFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BindError(c, err)
		return
	}

	from, to, ok := h.dayRange(filter.StartDate, filter.EndDate)
	if !ok {
		response.BadRequest(c, "Dates must be in YYYY-MM-DD format")
		return
	}
	var billType *enum.BillType
	if filter.Type != "" {
		t := enum.BillType(filter.Type)
		billType = &t
	}

	// Check if cursor-based pagination is requested
	if cursor := c.Query("cursor"); cursor != "" || filter.Limit > 0 {
		result, err := h.billService.ListBillsWithCursor(c.Request.Context(), &repository.BillCursorFilterParams{
			Cursor: &pagination.CursorParams{
				Cursor:    cursor,
				Direction: pagination.CursorDirection(c.DefaultQuery("direction", "next")),
				Limit:     filter.Limit,
			},
			Search:    filter.Search,
			Type:      billType,
			StartDate: from,
			EndDate:   to,
		})
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Bills retrieved successfully", result)
		return
	}

	result, err := h.billService.ListBills(c.Request.Context(), &repository.BillFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:    filter.Search,
		Type:      billType,
		StartDate: from,
		EndDate:   to,
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Bills retrieved successfully", result)
}

// Create handles saving a new bill
// @Summary Create bill
// @Description Price, number and save a bill. Supports the Idempotency-Key header.
// @Tags bills
// @Accept json
// @Produce json
// @Param request body request.BillRequest true "Bill"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /bills [post]
func (h *BillHandler) Create(c *gin.Context) {
	var req request.BillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	bill, err := h.billService.CreateBill(c.Request.Context(), toBillInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Bill created successfully", bill)
}

// Get handles getting a single bill
func (h *BillHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	bill, err := h.billService.GetBill(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill retrieved successfully", bill)
}

// Update handles replacing the items of a saved bill
func (h *BillHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req request.BillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	bill, err := h.billService.UpdateBill(c.Request.Context(), id, toBillInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill updated successfully", bill)
}

// Delete handles deleting a bill
func (h *BillHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.billService.DeleteBill(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Preview handles live recalculation of a draft bill
func (h *BillHandler) Preview(c *gin.Context) {
	var req request.DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if req.Type == "" {
		req.Type = enum.BillTypeSales
	}

	out, err := h.billService.Preview(c.Request.Context(), &service.BillInput{
		Type:          req.Type,
		Items:         toItemInputs(req.Items),
		ApplyDefaults: req.ApplyDefaults,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill preview calculated", out)
}

// Estimate handles tax-free estimates
func (h *BillHandler) Estimate(c *gin.Context) {
	var req request.DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	out, err := h.billService.Estimate(c.Request.Context(), &service.BillInput{
		Type:          enum.BillTypeSales,
		Items:         toItemInputs(req.Items),
		ApplyDefaults: req.ApplyDefaults,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Estimate calculated", out)
}

// NextNumber returns the number the next bill of a type would get
func (h *BillHandler) NextNumber(c *gin.Context) {
	var req request.NextNumberRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}

	number, err := h.billService.PeekNextNumber(c.Request.Context(), enum.BillType(req.Type))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Next bill number", gin.H{"type": req.Type, "bill_number": number})
}
