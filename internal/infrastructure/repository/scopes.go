package repository

import (
	"strings"
	"time"

	"github.com/sangkips/jewelbill-api/internal/domain/enum"
	"gorm.io/gorm"
)

// orderedItems preloads bill items in display order
func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// billSearch matches the bill number, customer name or phone
func billSearch(search string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if search == "" {
			return db
		}
		like := "%" + strings.ToLower(search) + "%"
		return db.Where("LOWER(bill_number) LIKE ? OR LOWER(customer_name) LIKE ? OR customer_phone LIKE ?", like, like, like)
	}
}

// billTypes keeps bills of the given types. No types means all.
func billTypes(types ...enum.BillType) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch len(types) {
		case 0:
			return db
		case 1:
			return db.Where("type = ?", types[0])
		}
		return db.Where("type IN ?", types)
	}
}

// dateBetween bounds the bill date inclusively. Nil bounds are open.
func dateBetween(from, to *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if from != nil {
			db = db.Where("date >= ?", *from)
		}
		if to != nil {
			db = db.Where("date <= ?", *to)
		}
		return db
	}
}

func typeFilter(t *enum.BillType) []enum.BillType {
	if t == nil {
		return nil
	}
	return []enum.BillType{*t}
}
