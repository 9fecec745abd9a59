package service

import (
	"context"

	"github.com/sangkips/jewelbill-api/internal/domain/entity"
	"github.com/sangkips/jewelbill-api/internal/domain/enum"
	"github.com/sangkips/jewelbill-api/internal/domain/report"
	"github.com/sangkips/jewelbill-api/internal/domain/repository"
	"github.com/sangkips/jewelbill-api/pkg/pagination"
)

const recentBillsLimit = 5

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	Today        report.Summary        `json:"today"`
	ThisMonth    report.Summary        `json:"this_month"`
	ThisYear     report.Summary        `json:"this_year"`
	AllTime      report.Summary        `json:"all_time"`
	MonthlyChart []report.MonthSummary `json:"monthly_chart"`
	Years        []int                 `json:"years"`
	RecentBills  []entity.Bill         `json:"recent_bills"`
	Materials    []entity.Material     `json:"header_materials"`
}

// Dashboard returns the today, month and year summaries along with the
// monthly chart of the current year
func (s *ReportService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	bills, err := s.loadBills(ctx, nil, false)
	if err != nil {
		return nil, err
	}

	now := s.today()
	stats := &DashboardStats{
		Today:        report.Summarize(bills, report.Period{Kind: enum.PeriodToday}.Predicate(now)),
		ThisMonth:    report.Summarize(bills, report.Period{Kind: enum.PeriodThisMonth}.Predicate(now)),
		ThisYear:     report.Summarize(bills, report.Period{Kind: enum.PeriodThisYear}.Predicate(now)),
		AllTime:      report.Summarize(bills, report.Period{Kind: enum.PeriodAll}.Predicate(now)),
		MonthlyChart: report.MonthlyBreakdown(bills, now.Year(), s.location),
		Years:        report.AvailableYears(bills, now),
	}

	recent, _, err := s.billRepo.List(ctx, &repository.BillFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: recentBillsLimit},
		SortBy:     "date",
		SortOrder:  "desc",
	})
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []entity.Bill{}
	}
	stats.RecentBills = recent

	materials, err := s.materialService.ListMaterials(ctx, true)
	if err != nil {
		return nil, err
	}
	stats.Materials = materials

	return stats, nil
}
