package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/jewelbill-api/internal/domain/entity"
	"github.com/sangkips/jewelbill-api/internal/domain/enum"
	"github.com/sangkips/jewelbill-api/pkg/pagination"
)

// BillRepository defines the interface for bill data operations
type BillRepository interface {
	// Create stores the bill together with its items
	Create(ctx context.Context, bill *entity.Bill) error
	// GetByID loads a bill with its items in display order
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error)
	// Update saves the bill header and replaces its items
	Update(ctx context.Context, bill *entity.Bill) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *BillFilterParams) ([]entity.Bill, int64, error)
	ListWithCursor(ctx context.Context, params *BillCursorFilterParams) ([]entity.Bill, error)
	// ListForNumbering returns bills of one type dated within [from, to]
	ListForNumbering(ctx context.Context, billType enum.BillType, from, to time.Time) ([]entity.Bill, error)
	// ListForReport returns bills matching the filter, oldest first
	ListForReport(ctx context.Context, filter ReportFilter) ([]entity.Bill, error)
}

// BillFilterParams contains filtering parameters for bill queries
type BillFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Type       *enum.BillType
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// BillCursorFilterParams contains cursor-based filtering for bill queries
type BillCursorFilterParams struct {
	Cursor    *pagination.CursorParams
	Search    string
	Type      *enum.BillType
	StartDate *time.Time
	EndDate   *time.Time
}

// ReportFilter narrows the bills loaded for reporting. Nil bounds are open.
type ReportFilter struct {
	Types     []enum.BillType
	From      *time.Time
	To        *time.Time
	WithItems bool
}
