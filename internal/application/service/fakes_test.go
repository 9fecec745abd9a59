package service

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/jewelbill-api/internal/domain/entity"
	"github.com/sangkips/jewelbill-api/internal/domain/enum"
	"github.com/sangkips/jewelbill-api/internal/domain/repository"
	"github.com/sirupsen/logrus"
)

func testLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type fakeMaterialRepo struct {
	mu   sync.Mutex
	rows map[string]entity.Material
}

func newFakeMaterialRepo(materials ...entity.Material) *fakeMaterialRepo {
	r := &fakeMaterialRepo{rows: make(map[string]entity.Material)}
	for _, m := range materials {
		r.rows[m.ID] = m
	}
	return r
}

func (r *fakeMaterialRepo) Create(_ context.Context, m *entity.Material) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[m.ID] = *m
	return nil
}

func (r *fakeMaterialRepo) GetByID(_ context.Context, id string) (*entity.Material, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *fakeMaterialRepo) Update(ctx context.Context, m *entity.Material) error {
	return r.Create(ctx, m)
}

func (r *fakeMaterialRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

func (r *fakeMaterialRepo) List(_ context.Context, headerOnly bool) ([]entity.Material, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Material
	for _, m := range r.rows {
		if headerOnly && !m.SelectedInHeader {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder == out[j].SortOrder {
			return out[i].Name < out[j].Name
		}
		return out[i].SortOrder < out[j].SortOrder
	})
	return out, nil
}

func (r *fakeMaterialRepo) Upsert(ctx context.Context, m *entity.Material) error {
	return r.Create(ctx, m)
}

type fakeSettingsRepo struct {
	mu       sync.Mutex
	settings *entity.BusinessSettings
	saves    int
}

func (r *fakeSettingsRepo) Get(context.Context) (*entity.BusinessSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.settings == nil {
		return nil, nil
	}
	copied := *r.settings
	return &copied, nil
}

func (r *fakeSettingsRepo) Save(_ context.Context, s *entity.BusinessSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *s
	r.settings = &copied
	r.saves++
	return nil
}

type fakeBillRepo struct {
	mu    sync.Mutex
	bills map[uuid.UUID]entity.Bill
	// numberingDelay widens the read-then-write window of concurrent saves
	numberingDelay time.Duration
}

func newFakeBillRepo(bills ...entity.Bill) *fakeBillRepo {
	r := &fakeBillRepo{bills: make(map[uuid.UUID]entity.Bill)}
	for _, b := range bills {
		if b.ID == uuid.Nil {
			b.ID = uuid.New()
		}
		r.bills[b.ID] = b
	}
	return r
}

func cloneBill(b entity.Bill) entity.Bill {
	b.Items = append([]entity.BillItem(nil), b.Items...)
	return b
}

func (r *fakeBillRepo) sorted() []entity.Bill {
	out := make([]entity.Bill, 0, len(r.bills))
	for _, b := range r.bills {
		out = append(out, cloneBill(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func (r *fakeBillRepo) Create(_ context.Context, b *entity.Bill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	for i := range b.Items {
		b.Items[i].BillID = b.ID
	}
	r.bills[b.ID] = cloneBill(*b)
	return nil
}

func (r *fakeBillRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bills[id]
	if !ok {
		return nil, nil
	}
	b = cloneBill(b)
	return &b, nil
}

func (r *fakeBillRepo) Update(_ context.Context, b *entity.Bill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bills[b.ID] = cloneBill(*b)
	return nil
}

func (r *fakeBillRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.bills, id)
	return nil
}

func (r *fakeBillRepo) List(_ context.Context, params *repository.BillFilterParams) ([]entity.Bill, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Bill
	for _, b := range r.sorted() {
		if params.Type != nil && b.Type != *params.Type {
			continue
		}
		if params.Search != "" && !strings.Contains(strings.ToLower(b.CustomerName+" "+b.BillNumber), strings.ToLower(params.Search)) {
			continue
		}
		out = append(out, b)
	}
	if params.SortOrder == "desc" {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	total := int64(len(out))
	start := params.Pagination.Offset()
	if start > len(out) {
		start = len(out)
	}
	end := start + params.Pagination.PerPage
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (r *fakeBillRepo) ListWithCursor(_ context.Context, params *repository.BillCursorFilterParams) ([]entity.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.sorted()
	if len(out) > params.Cursor.Limit+1 {
		out = out[:params.Cursor.Limit+1]
	}
	return out, nil
}

func (r *fakeBillRepo) ListForNumbering(_ context.Context, billType enum.BillType, from, to time.Time) ([]entity.Bill, error) {
	r.mu.Lock()
	var out []entity.Bill
	for _, b := range r.bills {
		if b.Type == billType && !b.Date.Before(from) && !b.Date.After(to) {
			out = append(out, entity.Bill{ID: b.ID, BillNumber: b.BillNumber, Type: b.Type, Date: b.Date})
		}
	}
	r.mu.Unlock()
	if r.numberingDelay > 0 {
		time.Sleep(r.numberingDelay)
	}
	return out, nil
}

func (r *fakeBillRepo) ListForReport(_ context.Context, filter repository.ReportFilter) ([]entity.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Bill
	for _, b := range r.sorted() {
		if len(filter.Types) > 0 && !containsType(filter.Types, b.Type) {
			continue
		}
		if filter.From != nil && b.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && b.Date.After(*filter.To) {
			continue
		}
		if !filter.WithItems {
			b.Items = nil
		}
		out = append(out, b)
	}
	return out, nil
}

func containsType(types []enum.BillType, t enum.BillType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

type fakeUserRepo struct {
	users   map[uuid.UUID]entity.User
	updates int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == strings.ToLower(email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.users[u.ID] = *u
	r.updates++
	return nil
}
