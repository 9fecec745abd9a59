package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/jewelbill-api/internal/config"
	"github.com/sangkips/jewelbill-api/internal/domain/billing"
	"github.com/sangkips/jewelbill-api/internal/domain/entity"
	"github.com/sangkips/jewelbill-api/internal/domain/enum"
	"github.com/sangkips/jewelbill-api/internal/domain/repository"
	"github.com/sangkips/jewelbill-api/internal/infrastructure/lock"
	"github.com/sangkips/jewelbill-api/pkg/apperror"
	"github.com/sangkips/jewelbill-api/pkg/money"
	"github.com/sangkips/jewelbill-api/pkg/pagination"
	"github.com/sangkips/jewelbill-api/pkg/phone"
	"github.com/sirupsen/logrus"
)

// BillService handles bill pricing, numbering and persistence
type BillService struct {
	billRepo        repository.BillRepository
	materialService *MaterialService
	settingsService *SettingsService
	locker          lock.Locker
	location        *time.Location
	phoneRegion     string
	logger          logrus.FieldLogger
	now             func() time.Time
}

// NewBillService creates a new bill service. Bill days are calendar days
// in location.
func NewBillService(
	billRepo repository.BillRepository,
	materialService *MaterialService,
	settingsService *SettingsService,
	locker lock.Locker,
	location *time.Location,
	phoneRegion string,
	logger logrus.FieldLogger,
) *BillService {
	if location == nil {
		location = time.UTC
	}
	return &BillService{
		billRepo:        billRepo,
		materialService: materialService,
		settingsService: settingsService,
		locker:          locker,
		location:        location,
		phoneRegion:     phoneRegion,
		logger:          logger,
		now:             time.Now,
	}
}

// ItemInput represents one item line as entered
type ItemInput struct {
	ValuableID              string
	Name                    string
	HSNCode                 string
	WeightOrQuantity        float64
	Unit                    string
	Rate                    float64
	MakingChargeType        enum.MakingChargeType
	MakingCharge            float64
	PurchaseNetType         enum.PurchaseNetType
	PurchaseNetPercentValue float64
	PurchaseNetFixedValue   float64
}

// BillInput represents the input for creating or updating a bill
type BillInput struct {
	Type            enum.BillType
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	CustomerGSTIN   string
	Notes           string
	Items           []ItemInput
	// ApplyDefaults fills empty making charge and purchase net policies
	// from the business settings.
	ApplyDefaults bool
}

// PreviewOutput is a priced draft that was not saved
type PreviewOutput struct {
	Type       enum.BillType     `json:"type"`
	Items      []entity.BillItem `json:"items"`
	Totals     billing.Totals    `json:"totals"`
	TaxRates   billing.TaxRates  `json:"tax_rates"`
	NextNumber string            `json:"next_number,omitempty"`
}

func (s *BillService) today() time.Time {
	return s.now().In(s.location)
}

func (s *BillService) checkFeature(settings *entity.BusinessSettings, billType enum.BillType) error {
	switch billType {
	case enum.BillTypePurchase:
		if !settings.FeatureEnabled(entity.FeaturePurchaseBills) {
			return apperror.NewForbiddenError("Purchase bills are disabled")
		}
	case enum.BillTypeDeliveryVoucher:
		if !settings.FeatureEnabled(entity.FeatureDeliveryVouchers) {
			return apperror.NewForbiddenError("Delivery vouchers are disabled")
		}
	}
	return nil
}

// buildItems turns inputs into draft items with snapshots and, when asked,
// the default pricing policies filled in.
func buildItems(inputs []ItemInput, lookup billing.MaterialLookup, settings *entity.BusinessSettings, applyDefaults bool) []entity.BillItem {
	items := make([]entity.BillItem, 0, len(inputs))
	for i, in := range inputs {
		item := entity.BillItem{
			Position:                i,
			ValuableID:              in.ValuableID,
			Name:                    strings.TrimSpace(in.Name),
			HSNCode:                 strings.TrimSpace(in.HSNCode),
			WeightOrQuantity:        in.WeightOrQuantity,
			Unit:                    in.Unit,
			Rate:                    in.Rate,
			MakingChargeType:        in.MakingChargeType,
			MakingCharge:            in.MakingCharge,
			PurchaseNetType:         in.PurchaseNetType,
			PurchaseNetPercentValue: in.PurchaseNetPercentValue,
			PurchaseNetFixedValue:   in.PurchaseNetFixedValue,
		}
		billing.FillSnapshot(&item, lookup)

		if applyDefaults && settings != nil {
			if item.MakingChargeType == enum.MakingChargeNone {
				item.MakingChargeType = settings.DefaultMakingChargeType
				item.MakingCharge = settings.DefaultMakingCharge
			}
			if item.PurchaseNetType == enum.PurchaseNetNone {
				item.PurchaseNetType = settings.DefaultPurchaseNetType
				item.PurchaseNetPercentValue = settings.DefaultPurchaseNetPercent
				item.PurchaseNetFixedValue = settings.DefaultPurchaseNetFixed
			}
		}
		roundToColumns(&item)
		items = append(items, item)
	}
	return items
}

// roundToColumns rounds the priced inputs to the scale they are stored
// with, so a reloaded item prices to the same amount.
func roundToColumns(item *entity.BillItem) {
	item.WeightOrQuantity = money.RoundTo(item.WeightOrQuantity, 3)
	item.Rate = money.Round2(item.Rate)
	item.MakingCharge = money.Round2(item.MakingCharge)
	item.PurchaseNetPercentValue = money.RoundTo(item.PurchaseNetPercentValue, 3)
	item.PurchaseNetFixedValue = money.Round2(item.PurchaseNetFixedValue)
}

func (s *BillService) pricingContext(ctx context.Context) (billing.Registry, *entity.BusinessSettings, error) {
	registry, err := s.materialService.Registry(ctx)
	if err != nil {
		return nil, nil, err
	}
	settings, err := s.settingsService.GetSettings(ctx)
	if err != nil {
		return nil, nil, err
	}
	return registry, settings, nil
}

// Preview prices a draft bill without saving or numbering it
func (s *BillService) Preview(ctx context.Context, input *BillInput) (*PreviewOutput, error) {
	registry, settings, err := s.pricingContext(ctx)
	if err != nil {
		return nil, err
	}

	rates := billing.TaxRates{CGST: settings.CGSTRate, SGST: settings.SGSTRate}
	bill := entity.Bill{
		Type:  input.Type,
		Items: buildItems(input.Items, registry, settings, input.ApplyDefaults),
	}
	totals := billing.PriceBill(&bill, registry, rates)

	return &PreviewOutput{
		Type:     input.Type,
		Items:    bill.Items,
		Totals:   totals,
		TaxRates: rates,
	}, nil
}

// Estimate prices items as a sales bill with tax forced to zero. Estimates
// are never numbered or saved.
func (s *BillService) Estimate(ctx context.Context, input *BillInput) (*PreviewOutput, error) {
	registry, settings, err := s.pricingContext(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.FeatureEnabled(entity.FeatureEstimates) {
		return nil, apperror.NewForbiddenError("Estimates are disabled")
	}

	items := buildItems(input.Items, registry, settings, input.ApplyDefaults)
	for i := range items {
		billing.ApplyToItem(&items[i], enum.PricingModeSales, registry, billing.TaxRates{})
	}

	return &PreviewOutput{
		Type:   enum.BillTypeSales,
		Items:  items,
		Totals: billing.EstimateTotals(items),
	}, nil
}

func (s *BillService) normalizeCustomer(bill *entity.Bill, input *BillInput) error {
	normalized, err := phone.Normalize(input.CustomerPhone, s.phoneRegion)
	if err != nil {
		return apperror.NewValidationError([]apperror.FieldError{{Field: "customer_phone", Message: "must be a valid phone number"}})
	}
	bill.CustomerName = strings.TrimSpace(input.CustomerName)
	bill.CustomerPhone = normalized
	bill.CustomerAddress = input.CustomerAddress
	bill.CustomerGSTIN = strings.ToUpper(strings.TrimSpace(input.CustomerGSTIN))
	bill.Notes = input.Notes
	return nil
}

// CreateBill prices, numbers and saves a new bill. The date is set to now
// and saves sharing a number sequence are serialised.
func (s *BillService) CreateBill(ctx context.Context, input *BillInput) (*entity.Bill, error) {
	if !input.Type.IsValid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "type", Message: "is not a known bill type"}})
	}

	registry, settings, err := s.pricingContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.checkFeature(settings, input.Type); err != nil {
		return nil, err
	}

	bill := &entity.Bill{
		Type:     input.Type,
		CGSTRate: settings.CGSTRate,
		SGSTRate: settings.SGSTRate,
		Items:    buildItems(input.Items, registry, settings, input.ApplyDefaults),
	}
	if input.Type != enum.BillTypeSales {
		bill.CGSTRate, bill.SGSTRate = 0, 0
	}
	if err := s.normalizeCustomer(bill, input); err != nil {
		return nil, err
	}
	billing.PriceBill(bill, registry, billing.TaxRates{CGST: bill.CGSTRate, SGST: bill.SGSTRate})

	now := s.today()
	if input.Type.IsNumbered() {
		release, err := s.locker.Acquire(ctx, lock.BillSequenceKey(input.Type, now))
		if err != nil {
			config.LogError(s.logger, "BillService", "CreateBill", "acquiring bill number lock", input.Type, err)
			if errors.Is(err, lock.ErrNotObtained) {
				return nil, apperror.NewConflictError("Another bill is being saved, please retry")
			}
			return nil, err
		}
		defer release()

		// the clock is read again under the lock so the number and date agree
		now = s.today()
		from, to := billing.DayBounds(now)
		existing, err := s.billRepo.ListForNumbering(ctx, input.Type, from, to)
		if err != nil {
			return nil, err
		}
		bill.BillNumber = billing.NextBillNumber(input.Type, existing, now)
	}
	bill.Date = now

	if err := s.billRepo.Create(ctx, bill); err != nil {
		config.LogError(s.logger, "BillService", "CreateBill", "saving bill", bill.BillNumber, err)
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"bill_id":     bill.ID,
		"bill_number": bill.BillNumber,
		"type":        bill.Type,
		"total":       bill.TotalAmount,
	}).Info("bill created")
	return bill, nil
}

// UpdateBill replaces the customer details and items of a saved bill and
// recomputes its totals. Type, number, date and tax rates stay as saved.
func (s *BillService) UpdateBill(ctx context.Context, id uuid.UUID, input *BillInput) (*entity.Bill, error) {
	bill, err := s.GetBill(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Type != "" && input.Type != bill.Type {
		return nil, apperror.NewBadRequestError("The type of a saved bill cannot be changed")
	}

	registry, settings, err := s.pricingContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.normalizeCustomer(bill, input); err != nil {
		return nil, err
	}

	bill.Items = buildItems(input.Items, registry, settings, input.ApplyDefaults)
	for i := range bill.Items {
		bill.Items[i].BillID = bill.ID
	}
	billing.PriceBill(bill, registry, billing.TaxRates{CGST: bill.CGSTRate, SGST: bill.SGSTRate})

	if err := s.billRepo.Update(ctx, bill); err != nil {
		config.LogError(s.logger, "BillService", "UpdateBill", "saving bill", id, err)
		return nil, err
	}
	return bill, nil
}

// GetBill retrieves a bill with its items
func (s *BillService) GetBill(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

// ListBills retrieves bills with page-based pagination
func (s *BillService) ListBills(ctx context.Context, params *repository.BillFilterParams) (*pagination.PaginatedResult[entity.Bill], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	bills, total, err := s.billRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(bills, p), nil
}

// ListBillsWithCursor retrieves bills newest first with keyset pagination
func (s *BillService) ListBillsWithCursor(ctx context.Context, params *repository.BillCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Bill], error) {
	if params.Cursor == nil {
		params.Cursor = &pagination.CursorParams{}
	}
	params.Cursor.Validate()
	if _, err := params.Cursor.DecodeCursor(); err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	bills, err := s.billRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	p, bills := pagination.NewCursorPagination(bills, params.Cursor.Limit, params.Cursor.Cursor != "",
		func(b entity.Bill) (string, time.Time) { return b.ID.String(), b.Date })
	return pagination.NewCursorPaginatedResult(bills, p), nil
}

// DeleteBill deletes a bill
func (s *BillService) DeleteBill(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetBill(ctx, id); err != nil {
		return err
	}
	return s.billRepo.Delete(ctx, id)
}

// PeekNextNumber returns the number the next bill of billType would get
// if saved now. The number is not reserved.
func (s *BillService) PeekNextNumber(ctx context.Context, billType enum.BillType) (string, error) {
	if !billType.IsValid() {
		return "", apperror.NewBadRequestError("Unknown bill type")
	}
	if !billType.IsNumbered() {
		return "", nil
	}

	now := s.today()
	from, to := billing.DayBounds(now)
	existing, err := s.billRepo.ListForNumbering(ctx, billType, from, to)
	if err != nil {
		return "", err
	}
	return billing.NextBillNumber(billType, existing, now), nil
}
