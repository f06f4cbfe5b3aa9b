package repository

import (
	"context"

	"github.com/chenmq77/duckiki/internal/models"
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	Expense  ExpenseRepository
	Activity ActivityRepository
	Contract ContractRepository
	Charge   ChargeRepository
	Setting  SettingRepository
	Audit    AuditRepository

	db *gorm.DB
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Expense:  NewExpenseRepository(db),
		Activity: NewActivityRepository(db),
		Contract: NewContractRepository(db),
		Charge:   NewChargeRepository(db),
		Setting:  NewSettingRepository(db),
		Audit:    NewAuditRepository(db),
		db:       db,
	}
}

// Transaction runs fn with repositories bound to a single database
// transaction. The transaction commits when fn returns nil and rolls back
// otherwise.
func (r *Repositories) Transaction(ctx context.Context, fn func(tx *Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}

// ListQuery represents common query parameters
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
	SortBy  string
	SortDir string
	Filters map[string]string
}

// NewListQuery creates a ListQuery with defaults
func NewListQuery() *ListQuery {
	return &ListQuery{
		Page:    1,
		PerPage: 20,
		Filters: make(map[string]string),
	}
}

// apply adds sorting and pagination. Only columns in sortable are accepted;
// anything else falls back to fallback.
func (q *ListQuery) apply(db *gorm.DB, sortable map[string]bool, fallback string) *gorm.DB {
	if q.SortBy != "" && sortable[q.SortBy] {
		order := q.SortBy
		if q.SortDir == "desc" {
			order += " DESC"
		}
		db = db.Order(order).Order("id DESC")
	} else {
		db = db.Order(fallback)
	}

	if q.PerPage > 0 {
		page := q.Page
		if page < 1 {
			page = 1
		}
		db = db.Offset((page - 1) * q.PerPage).Limit(q.PerPage)
	}
	return db
}

// likePattern builds a case-insensitive LIKE pattern
func likePattern(s string) string {
	return "%" + s + "%"
}

// dateRange filters column to [from, to]. Unparseable bounds are ignored.
func dateRange(db *gorm.DB, column, from, to string) *gorm.DB {
	if d, err := models.ParseDate(from); from != "" && err == nil {
		db = db.Where(column+" >= ?", d)
	}
	if d, err := models.ParseDate(to); to != "" && err == nil {
		db = db.Where(column+" <= ?", d)
	}
	return db
}
