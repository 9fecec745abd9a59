package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/sangkips/jewelbill-api/internal/domain/entity"
	"github.com/sangkips/jewelbill-api/pkg/apperror"
)

func appErrorCode(err error) int {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return 0
}

func TestEnsureDefaultsIsIdempotent(t *testing.T) {
	repo := newFakeMaterialRepo()
	svc := NewMaterialService(repo, testLogger())
	ctx := context.Background()

	if err := svc.EnsureDefaults(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	price := 7000.0
	if _, err := svc.UpdatePrice(ctx, "gold-22k", price); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.EnsureDefaults(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.rows) != len(entity.DefaultMaterials()) {
		t.Fatalf("expected %d materials, got %d", len(entity.DefaultMaterials()), len(repo.rows))
	}
	if got := repo.rows["gold-22k"].Price; got != price {
		t.Fatalf("expected reseeding to keep price %v, got %v", price, got)
	}
}

func TestUpdateMaterialLocks(t *testing.T) {
	ctx := context.Background()
	newName := "Gold"
	newUnit := "kg"
	newIcon := "star"

	cases := []struct {
		name  string
		id    string
		input *UpdateMaterialInput
		code  int
	}{
		{"rename default", "gold-22k", &UpdateMaterialInput{Name: &newName}, http.StatusForbidden},
		{"change default icon", "gold-22k", &UpdateMaterialInput{Icon: &newIcon}, http.StatusForbidden},
		{"change fixed unit", "diamond", &UpdateMaterialInput{Unit: &newUnit}, http.StatusForbidden},
		{"change default unit", "silver", &UpdateMaterialInput{Unit: &newUnit}, 0},
		{"rename custom", "custom-ring", &UpdateMaterialInput{Name: &newName}, 0},
		{"missing", "nope", &UpdateMaterialInput{Name: &newName}, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeMaterialRepo(append(entity.DefaultMaterials(),
				entity.Material{ID: "custom-ring", Name: "Ring Alloy", Unit: "g"})...)
			svc := NewMaterialService(repo, testLogger())

			_, err := svc.UpdateMaterial(ctx, tc.id, tc.input)
			if tc.code == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if got := appErrorCode(err); got != tc.code {
				t.Fatalf("expected status %d, got %d (%v)", tc.code, got, err)
			}
		})
	}
}

func TestUpdateMaterialRejectsNegativePrice(t *testing.T) {
	repo := newFakeMaterialRepo(entity.DefaultMaterials()...)
	svc := NewMaterialService(repo, testLogger())

	_, err := svc.UpdatePrice(context.Background(), "silver", -1)
	if got := appErrorCode(err); got != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d (%v)", got, err)
	}
}

func TestCreateAndDeleteMaterial(t *testing.T) {
	repo := newFakeMaterialRepo(entity.DefaultMaterials()...)
	svc := NewMaterialService(repo, testLogger())
	ctx := context.Background()

	m, err := svc.CreateMaterial(ctx, &CreateMaterialInput{Name: "  Rose Gold ", Price: 5200})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Name != "Rose Gold" || m.Unit != "g" || m.IsDefault {
		t.Fatalf("unexpected material: %+v", m)
	}

	if _, err := svc.CreateMaterial(ctx, &CreateMaterialInput{Name: " "}); appErrorCode(err) != http.StatusUnprocessableEntity {
		t.Fatalf("expected validation error for empty name, got %v", err)
	}

	if err := svc.DeleteMaterial(ctx, "gold-24k"); !errors.Is(err, apperror.ErrDefaultMaterial) {
		t.Fatalf("expected ErrDefaultMaterial, got %v", err)
	}
	if err := svc.DeleteMaterial(ctx, m.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.rows[m.ID]; ok {
		t.Fatal("expected custom material to be deleted")
	}
}

func TestImportMaterialKeepsDefaultLocks(t *testing.T) {
	repo := newFakeMaterialRepo(entity.DefaultMaterials()...)
	svc := NewMaterialService(repo, testLogger())

	err := svc.ImportMaterial(context.Background(), entity.Material{
		ID: "diamond", Name: "Stone", Unit: "g", Price: 90000, SelectedInHeader: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := repo.rows["diamond"]
	if got.Name != "Diamond" || got.Unit != "ct" || !got.IsDefault {
		t.Fatalf("expected locked fields to survive import, got %+v", got)
	}
	if got.Price != 90000 || !got.SelectedInHeader {
		t.Fatalf("expected price and header selection to be imported, got %+v", got)
	}
}

func TestListMaterialsHeaderOnly(t *testing.T) {
	repo := newFakeMaterialRepo(entity.DefaultMaterials()...)
	svc := NewMaterialService(repo, testLogger())

	header, err := svc.ListMaterials(context.Background(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, m := range header {
		if !m.SelectedInHeader {
			t.Fatalf("unexpected non-header material %s", m.ID)
		}
	}

	empty, err := NewMaterialService(newFakeMaterialRepo(), testLogger()).ListMaterials(context.Background(), false)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil list, got %v, %v", empty, err)
	}
}
