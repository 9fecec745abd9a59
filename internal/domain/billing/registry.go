// Package billing holds the bill computation rules: material lookup,
// item pricing, bill totals and bill numbering. Every function here is
// pure; callers load state from storage and persist what is returned.
package billing

import "github.com/sangkips/jewelbill-api/internal/domain/entity"

// MaterialInfo is the part of a material the pricing rules read
type MaterialInfo struct {
	ID      string
	Name    string
	Price   float64
	Unit    string
	HSNCode string
}

// MaterialLookup resolves a material id to its current market data.
// A miss means the material was deleted and callers must fall back to
// the snapshot fields stored on the bill item.
type MaterialLookup interface {
	Lookup(id string) (MaterialInfo, bool)
}

// Registry is a map backed MaterialLookup
type Registry map[string]MaterialInfo

// NewRegistry builds a Registry from persisted materials
func NewRegistry(materials []entity.Material) Registry {
	r := make(Registry, len(materials))
	for _, m := range materials {
		r[m.ID] = MaterialInfo{
			ID:      m.ID,
			Name:    m.Name,
			Price:   m.Price,
			Unit:    m.Unit,
			HSNCode: m.HSNCode,
		}
	}
	return r
}

// Lookup implements MaterialLookup
func (r Registry) Lookup(id string) (MaterialInfo, bool) {
	if id == "" {
		return MaterialInfo{}, false
	}
	info, ok := r[id]
	return info, ok
}

func lookupMaterial(lookup MaterialLookup, id string) (MaterialInfo, bool) {
	if lookup == nil {
		return MaterialInfo{}, false
	}
	return lookup.Lookup(id)
}

// FillSnapshot copies the material's name, unit, HSN code and price onto
// item fields the caller left empty. Items whose material is gone are
// left untouched.
func FillSnapshot(item *entity.BillItem, lookup MaterialLookup) {
	info, ok := lookupMaterial(lookup, item.ValuableID)
	if !ok {
		return
	}
	if item.Name == "" {
		item.Name = info.Name
	}
	if item.Unit == "" {
		item.Unit = info.Unit
	}
	if item.HSNCode == "" {
		item.HSNCode = info.HSNCode
	}
	if item.Rate == 0 {
		item.Rate = info.Price
	}
}
