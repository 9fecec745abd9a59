package handler

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/jewelbill-api/internal/application/service"
	"github.com/sangkips/jewelbill-api/internal/presentation/http/dto/request"
	"github.com/sangkips/jewelbill-api/internal/presentation/http/dto/response"
	"github.com/sangkips/jewelbill-api/pkg/export"
)

// ReportHandler handles report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func bindPeriod(c *gin.Context) (service.PeriodInput, bool) {
	var req request.PeriodRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return service.PeriodInput{}, false
	}
	return service.PeriodInput{
		Kind:      service.ParsePeriodKind(req.Period),
		Year:      req.Year,
		Month:     req.Month,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}, true
}

// Summary handles period summaries
func (h *ReportHandler) Summary(c *gin.Context) {
	in, ok := bindPeriod(c)
	if !ok {
		return
	}

	out, err := h.reportService.Summary(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Summary retrieved successfully", out)
}

// GST handles the item level GST report
func (h *ReportHandler) GST(c *gin.Context) {
	in, ok := bindPeriod(c)
	if !ok {
		return
	}

	out, err := h.reportService.GST(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "GST report retrieved successfully", out)
}

// HSN handles the GST report grouped by HSN code
func (h *ReportHandler) HSN(c *gin.Context) {
	in, ok := bindPeriod(c)
	if !ok {
		return
	}

	lines, err := h.reportService.HSN(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "HSN summary retrieved successfully", lines)
}

// ExportGST streams the GST report as an xlsx workbook
func (h *ReportHandler) ExportGST(c *gin.Context) {
	in, ok := bindPeriod(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	name, err := h.reportService.ExportGST(c.Request.Context(), in, &buf)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, export.ContentTypeXLSX, buf.Bytes())
}

// Years lists the years that have bills
func (h *ReportHandler) Years(c *gin.Context) {
	years, err := h.reportService.Years(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Years retrieved successfully", years)
}

// Financial handles the yearly financial report
func (h *ReportHandler) Financial(c *gin.Context) {
	year := 0
	if v := c.Query("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(c, "year must be a number")
			return
		}
		year = parsed
	}

	report, err := h.reportService.Financial(c.Request.Context(), year)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Financial report retrieved successfully", report)
}
