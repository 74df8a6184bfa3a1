package db

import (
	"gorm.io/gorm"
)

// Paginate applies LIMIT/OFFSET for a 1-based page. Callers normalize
// page and pageSize beforehand.
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}

// NewestFirst orders by created_at then id, both descending, so rows
// created in the same millisecond keep a stable position across pages.
func NewestFirst(table string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		prefix := ""
		if table != "" {
			prefix = table + "."
		}
		return db.Order(prefix + "created_at DESC").Order(prefix + "id DESC")
	}
}
