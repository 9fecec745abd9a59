package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sangkips/jewelbill-api/internal/domain/billing"
	"github.com/sangkips/jewelbill-api/internal/domain/entity"
	"github.com/sangkips/jewelbill-api/internal/domain/enum"
	"github.com/sangkips/jewelbill-api/internal/domain/report"
	"github.com/sangkips/jewelbill-api/internal/domain/repository"
	"github.com/sangkips/jewelbill-api/pkg/apperror"
	"github.com/sangkips/jewelbill-api/pkg/export"
	"github.com/sirupsen/logrus"
)

const reportDateLayout = "2006-01-02"

// ReportService builds summaries and GST reports from saved bills
type ReportService struct {
	billRepo        repository.BillRepository
	materialService *MaterialService
	settingsService *SettingsService
	location        *time.Location
	logger          logrus.FieldLogger
	now             func() time.Time
}

// NewReportService creates a new report service
func NewReportService(
	billRepo repository.BillRepository,
	materialService *MaterialService,
	settingsService *SettingsService,
	location *time.Location,
	logger logrus.FieldLogger,
) *ReportService {
	if location == nil {
		location = time.UTC
	}
	return &ReportService{
		billRepo:        billRepo,
		materialService: materialService,
		settingsService: settingsService,
		location:        location,
		logger:          logger,
		now:             time.Now,
	}
}

// PeriodInput is a reporting window as received from a request. Dates are
// YYYY-MM-DD in the billing timezone or RFC3339.
type PeriodInput struct {
	Kind      enum.PeriodKind
	Year      int
	Month     int
	StartDate string
	EndDate   string
}

// ResolvedPeriod is a period with its concrete bounds
type ResolvedPeriod struct {
	Kind  enum.PeriodKind `json:"kind"`
	Start *time.Time      `json:"start,omitempty"`
	End   *time.Time      `json:"end,omitempty"`

	period report.Period
}

func (s *ReportService) today() time.Time {
	return s.now().In(s.location)
}

func (s *ReportService) parseDate(field, value string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(reportDateLayout, value, s.location)
	if err != nil {
		return time.Time{}, apperror.NewValidationError([]apperror.FieldError{{Field: field, Message: "must be a date in YYYY-MM-DD format"}})
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return t, nil
}

// ResolvePeriod validates the input and computes the window bounds. An
// empty kind means all bills.
func (s *ReportService) ResolvePeriod(in PeriodInput) (*ResolvedPeriod, error) {
	now := s.today()
	kind := in.Kind
	if kind == "" {
		kind = enum.PeriodAll
	}
	if !kind.IsValid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "period", Message: "is not a known period"}})
	}

	p := report.Period{Kind: kind, Year: in.Year, Month: time.Month(in.Month)}
	if p.Year == 0 {
		p.Year = now.Year()
	}

	var start, end time.Time
	switch kind {
	case enum.PeriodAll:
		return &ResolvedPeriod{Kind: kind, period: p}, nil
	case enum.PeriodToday:
		start, end = billing.DayBounds(now)
	case enum.PeriodThisMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.location)
		end = start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	case enum.PeriodThisYear:
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, s.location)
		end = start.AddDate(1, 0, 0).Add(-time.Nanosecond)
	case enum.PeriodMonth:
		if p.Month < time.January || p.Month > time.December {
			return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "month", Message: "must be between 1 and 12"}})
		}
		start = time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, s.location)
		end = start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	case enum.PeriodYear:
		start = time.Date(p.Year, time.January, 1, 0, 0, 0, 0, s.location)
		end = start.AddDate(1, 0, 0).Add(-time.Nanosecond)
	case enum.PeriodCustom:
		if in.StartDate == "" || in.EndDate == "" {
			return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "start_date", Message: "start_date and end_date are required for a custom period"}})
		}
		var err error
		if start, err = s.parseDate("start_date", in.StartDate, false); err != nil {
			return nil, err
		}
		if end, err = s.parseDate("end_date", in.EndDate, true); err != nil {
			return nil, err
		}
		p.Start, p.End = start, end
	}
	return &ResolvedPeriod{Kind: kind, Start: &start, End: &end, period: p}, nil
}

func (s *ReportService) loadBills(ctx context.Context, rp *ResolvedPeriod, withItems bool, types ...enum.BillType) ([]entity.Bill, error) {
	filter := repository.ReportFilter{Types: types, WithItems: withItems}
	if rp != nil {
		filter.From, filter.To = rp.Start, rp.End
	}
	return s.billRepo.ListForReport(ctx, filter)
}

// SummaryOutput is the totals of one period
type SummaryOutput struct {
	Period  *ResolvedPeriod `json:"period"`
	Summary report.Summary  `json:"summary"`
}

// Summary totals sales, purchases and tax over a period
func (s *ReportService) Summary(ctx context.Context, in PeriodInput) (*SummaryOutput, error) {
	rp, err := s.ResolvePeriod(in)
	if err != nil {
		return nil, err
	}
	bills, err := s.loadBills(ctx, rp, false)
	if err != nil {
		return nil, err
	}
	return &SummaryOutput{
		Period:  rp,
		Summary: report.Summarize(bills, rp.period.Predicate(s.today())),
	}, nil
}

// GSTOutput is the GST report of one period
type GSTOutput struct {
	Period *ResolvedPeriod `json:"period"`
	report.GSTReport
}

// GST builds the item level GST report for a period
func (s *ReportService) GST(ctx context.Context, in PeriodInput) (*GSTOutput, error) {
	settings, err := s.settingsService.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.FeatureEnabled(entity.FeatureGSTReport) {
		return nil, apperror.NewForbiddenError("The GST report is disabled")
	}

	rp, err := s.ResolvePeriod(in)
	if err != nil {
		return nil, err
	}
	bills, err := s.loadBills(ctx, rp, true, enum.BillTypeSales)
	if err != nil {
		return nil, err
	}
	registry, err := s.materialService.Registry(ctx)
	if err != nil {
		return nil, err
	}

	return &GSTOutput{
		Period:    rp,
		GSTReport: report.GSTRows(bills, rp.period.Predicate(s.today()), registry),
	}, nil
}

// HSN groups the GST report of a period by HSN code
func (s *ReportService) HSN(ctx context.Context, in PeriodInput) ([]report.HSNLine, error) {
	out, err := s.GST(ctx, in)
	if err != nil {
		return nil, err
	}
	return report.HSNSummary(out.GSTReport), nil
}

// ExportGST writes the GST report and its HSN summary as an xlsx workbook.
// It returns the suggested file name.
func (s *ReportService) ExportGST(ctx context.Context, in PeriodInput, w io.Writer) (string, error) {
	out, err := s.GST(ctx, in)
	if err != nil {
		return "", err
	}

	rows := make([][]any, 0, len(out.Rows))
	for _, r := range out.Rows {
		rows = append(rows, []any{
			r.BillNumber, r.Date.In(s.location).Format("02-01-2006"), r.CustomerName, r.CustomerGSTIN,
			r.Material, r.HSNCode, r.Quantity, r.Unit, r.TaxableValue, r.CGST, r.SGST, r.Total,
		})
	}

	hsnLines := report.HSNSummary(out.GSTReport)
	hsnRows := make([][]any, 0, len(hsnLines))
	for _, l := range hsnLines {
		hsnRows = append(hsnRows, []any{l.HSNCode, l.Unit, l.ItemCount, l.Quantity, l.TaxableValue, l.CGST, l.SGST, l.Total})
	}

	err = export.WriteWorkbook(w,
		export.Sheet{
			Name: "GST Report",
			Headings: []string{"Bill No", "Date", "Customer", "Customer GSTIN", "Material", "HSN",
				"Qty", "Unit", "Taxable Value", "CGST", "SGST", "Total"},
			Rows:   rows,
			Footer: []any{"Total", "", "", "", "", "", "", "", out.TotalTaxable, out.TotalCGST, out.TotalSGST, out.GrandTotal},
		},
		export.Sheet{
			Name:     "HSN Summary",
			Headings: []string{"HSN", "Unit", "Items", "Qty", "Taxable Value", "CGST", "SGST", "Total"},
			Rows:     hsnRows,
		},
	)
	if err != nil {
		s.logger.WithError(err).Error("gst export failed")
		return "", err
	}
	return exportFileName(out.Period), nil
}

func exportFileName(rp *ResolvedPeriod) string {
	if rp == nil || rp.Start == nil {
		return "gst-report-all.xlsx"
	}
	from := rp.Start.Format("20060102")
	to := rp.End.Format("20060102")
	if from == to {
		return fmt.Sprintf("gst-report-%s.xlsx", from)
	}
	return fmt.Sprintf("gst-report-%s-%s.xlsx", from, to)
}

// Years lists the years that have bills plus the current year, newest first
func (s *ReportService) Years(ctx context.Context) ([]int, error) {
	bills, err := s.loadBills(ctx, nil, false)
	if err != nil {
		return nil, err
	}
	return report.AvailableYears(bills, s.today()), nil
}

// FinancialReport is the year summary with its monthly breakdown
type FinancialReport struct {
	Year    int                   `json:"year"`
	Summary report.Summary        `json:"summary"`
	Months  []report.MonthSummary `json:"months"`
}

// Financial builds the financial report of one calendar year
func (s *ReportService) Financial(ctx context.Context, year int) (*FinancialReport, error) {
	rp, err := s.ResolvePeriod(PeriodInput{Kind: enum.PeriodYear, Year: year})
	if err != nil {
		return nil, err
	}
	bills, err := s.loadBills(ctx, rp, false)
	if err != nil {
		return nil, err
	}
	return &FinancialReport{
		Year:    rp.period.Year,
		Summary: report.Summarize(bills, rp.period.Predicate(s.today())),
		Months:  report.MonthlyBreakdown(bills, rp.period.Year, s.location),
	}, nil
}

// ParsePeriodKind maps the loose names accepted on the query string
func ParsePeriodKind(v string) enum.PeriodKind {
	v = strings.ToLower(strings.TrimSpace(v))
	switch v {
	case "month_of_year", "monthly":
		return enum.PeriodMonth
	case "yearly":
		return enum.PeriodYear
	}
	return enum.PeriodKind(v)
}
