package repository

import (
	"context"
	"strings"

	"github.com/chenmq77/duckiki/internal/models"
	"gorm.io/gorm"
)

// Expense kind filters
const (
	ExpenseKindFlat   = "flat"
	ExpenseKindAnchor = "anchor"
	ExpenseKindChild  = "child"
)

// ExpenseRepository defines the interface for expense data access
type ExpenseRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Expense, error)
	FindByIDWithDetails(ctx context.Context, id uint) (*models.Expense, error)
	Create(ctx context.Context, expense *models.Expense) error
	Update(ctx context.Context, expense *models.Expense) error
	Delete(ctx context.Context, id uint) error
	DeleteByIDs(ctx context.Context, ids []uint) error
	FindChildren(ctx context.Context, parentID uint) ([]models.Expense, error)
	DeleteByParent(ctx context.Context, parentID uint) error
	List(ctx context.Context, query *ListQuery) ([]models.Expense, int64, error)
	FindFlat(ctx context.Context) ([]models.Expense, error)
	FindAllWithDetails(ctx context.Context) ([]models.Expense, error)
}

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

var expenseSortable = map[string]bool{
	"date":       true,
	"amount":     true,
	"type":       true,
	"category":   true,
	"created_at": true,
}

func (r *expenseRepository) FindByID(ctx context.Context, id uint) (*models.Expense, error) {
	var expense models.Expense
	err := r.db.WithContext(ctx).First(&expense, id).Error
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepository) FindByIDWithDetails(ctx context.Context, id uint) (*models.Expense, error) {
	var expense models.Expense
	err := r.withDetails(r.db.WithContext(ctx)).First(&expense, id).Error
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	return r.db.WithContext(ctx).Omit("Parent", "Contract").Create(expense).Error
}

func (r *expenseRepository) Update(ctx context.Context, expense *models.Expense) error {
	return r.db.WithContext(ctx).Omit("Parent", "Contract").Save(expense).Error
}

func (r *expenseRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Expense{}, id).Error
}

func (r *expenseRepository) DeleteByIDs(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.Expense{}).Error
}

// FindChildren returns the expenses recorded against an anchor, in
// installment order
func (r *expenseRepository) FindChildren(ctx context.Context, parentID uint) ([]models.Expense, error) {
	var expenses []models.Expense
	err := r.db.WithContext(ctx).
		Where("parent_expense_id = ?", parentID).
		Order("installment_number ASC, id ASC").
		Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepository) DeleteByParent(ctx context.Context, parentID uint) error {
	return r.db.WithContext(ctx).Where("parent_expense_id = ?", parentID).Delete(&models.Expense{}).Error
}

func (r *expenseRepository) List(ctx context.Context, query *ListQuery) ([]models.Expense, int64, error) {
	var expenses []models.Expense
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Expense{})

	// Apply search
	if query.Search != "" {
		search := likePattern(strings.ToLower(query.Search))
		db = db.Where("LOWER(category) LIKE ? OR LOWER(note) LIKE ?", search, search)
	}

	// Apply type filter
	if query.Filters["type"] != "" {
		db = db.Where("type = ?", query.Filters["type"])
	}

	if query.Filters["currency"] != "" {
		db = db.Where("currency = ?", strings.ToUpper(query.Filters["currency"]))
	}

	// Apply kind filter; children are hidden unless asked for
	switch query.Filters["kind"] {
	case ExpenseKindFlat:
		db = db.Where("is_installment = ? AND parent_expense_id IS NULL", false)
	case ExpenseKindAnchor:
		db = db.Where("is_installment = ? AND parent_expense_id IS NULL", true)
	case ExpenseKindChild:
		db = db.Where("parent_expense_id IS NOT NULL")
	case "all":
	default:
		db = db.Where("parent_expense_id IS NULL")
	}

	db = dateRange(db, "date", query.Filters["from"], query.Filters["to"])

	// Count total
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	db = query.apply(r.withDetails(db), expenseSortable, "date DESC, id DESC")

	err := db.Find(&expenses).Error
	return expenses, total, err
}

func (r *expenseRepository) FindFlat(ctx context.Context) ([]models.Expense, error) {
	var expenses []models.Expense
	err := r.db.WithContext(ctx).
		Where("is_installment = ? AND parent_expense_id IS NULL", false).
		Order("date ASC, id ASC").
		Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepository) FindAllWithDetails(ctx context.Context) ([]models.Expense, error) {
	var expenses []models.Expense
	err := r.withDetails(r.db.WithContext(ctx)).
		Order("date DESC, id DESC").
		Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepository) withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Parent").
		Preload("Contract").
		Preload("Contract.Charges", func(db *gorm.DB) *gorm.DB {
			return db.Order("period_index ASC")
		})
}
