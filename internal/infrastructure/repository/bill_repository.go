package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/jewelbill-api/internal/domain/entity"
	"github.com/sangkips/jewelbill-api/internal/domain/enum"
	domainRepo "github.com/sangkips/jewelbill-api/internal/domain/repository"
	"github.com/sangkips/jewelbill-api/pkg/pagination"
	"gorm.io/gorm"
)

var billSortColumns = map[string]string{
	"date":         "date",
	"bill_number":  "bill_number",
	"total_amount": "total_amount",
	"created_at":   "created_at",
}

type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository
func NewBillRepository(db *gorm.DB) domainRepo.BillRepository {
	return &billRepository{db: db}
}

func (r *billRepository) Create(ctx context.Context, bill *entity.Bill) error {
	return r.db.WithContext(ctx).Create(bill).Error
}

func (r *billRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	var bill entity.Bill
	err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) Update(ctx context.Context, bill *entity.Bill) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bill_id = ?", bill.ID).Delete(&entity.BillItem{}).Error; err != nil {
			return err
		}
		if err := tx.Omit("Items").Save(bill).Error; err != nil {
			return err
		}
		if len(bill.Items) == 0 {
			return nil
		}
		for i := range bill.Items {
			bill.Items[i].ID = uuid.Nil
			bill.Items[i].BillID = bill.ID
		}
		return tx.Create(&bill.Items).Error
	})
}

func (r *billRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Bill{}, "id = ?", id).Error
}

func (r *billRepository) List(ctx context.Context, params *domainRepo.BillFilterParams) ([]entity.Bill, int64, error) {
	var bills []entity.Bill
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Bill{})
	query = query.Scopes(billSearch(params.Search), billTypes(typeFilter(params.Type)...), dateBetween(params.StartDate, params.EndDate))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "date"
	if col, ok := billSortColumns[params.SortBy]; ok {
		sortBy = col
	}
	sortOrder := "DESC"
	if strings.EqualFold(params.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Items", orderedItems).
		Order(sortBy + " " + sortOrder).
		Order("id " + sortOrder).
		Find(&bills).Error

	return bills, total, err
}

// ListWithCursor returns bills newest first using keyset pagination on (date, id)
func (r *billRepository) ListWithCursor(ctx context.Context, params *domainRepo.BillCursorFilterParams) ([]entity.Bill, error) {
	var bills []entity.Bill

	params.Cursor.Validate()
	query := r.db.WithContext(ctx).Model(&entity.Bill{})
	query = query.Scopes(billSearch(params.Search), billTypes(typeFilter(params.Type)...), dateBetween(params.StartDate, params.EndDate))

	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, err
	}

	order := "date DESC, id DESC"
	if cursor != nil {
		if params.Cursor.Direction == pagination.CursorDirectionNext {
			query = query.Where("(date, id) < (?, ?)", cursor.At, cursor.ID)
		} else {
			query = query.Where("(date, id) > (?, ?)", cursor.At, cursor.ID)
			order = "date ASC, id ASC"
		}
	}

	err = query.Limit(params.Cursor.Limit + 1).
		Preload("Items", orderedItems).
		Order(order).
		Find(&bills).Error
	if err != nil {
		return nil, err
	}

	if params.Cursor.Direction == pagination.CursorDirectionPrev {
		for i, j := 0, len(bills)-1; i < j; i, j = i+1, j-1 {
			bills[i], bills[j] = bills[j], bills[i]
		}
	}
	return bills, nil
}

func (r *billRepository) ListForNumbering(ctx context.Context, billType enum.BillType, from, to time.Time) ([]entity.Bill, error) {
	var bills []entity.Bill
	err := r.db.WithContext(ctx).
		Select("id", "bill_number", "type", "date").
		Scopes(billTypes(billType), dateBetween(&from, &to)).
		Find(&bills).Error
	return bills, err
}

func (r *billRepository) ListForReport(ctx context.Context, filter domainRepo.ReportFilter) ([]entity.Bill, error) {
	var bills []entity.Bill

	query := r.db.WithContext(ctx).Model(&entity.Bill{}).
		Scopes(billTypes(filter.Types...), dateBetween(filter.From, filter.To))
	if filter.WithItems {
		query = query.Preload("Items", orderedItems)
	}

	err := query.Order("date ASC").Find(&bills).Error
	return bills, err
}
