package repository

import (
	"context"
	"time"

	"github.com/chenmq77/duckiki/internal/models"
	"gorm.io/gorm"
)

// ContractRepository defines the interface for contract data access
type ContractRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Contract, error)
	FindByIDWithDetails(ctx context.Context, id uint) (*models.Contract, error)
	FindByExpenseID(ctx context.Context, expenseID uint) (*models.Contract, error)
	Create(ctx context.Context, contract *models.Contract) error
	Update(ctx context.Context, contract *models.Contract) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.Contract, int64, error)
	FindAllWithDetails(ctx context.Context) ([]models.Contract, error)
}

type contractRepository struct {
	db *gorm.DB
}

// NewContractRepository creates a new contract repository
func NewContractRepository(db *gorm.DB) ContractRepository {
	return &contractRepository{db: db}
}

var contractSortable = map[string]bool{
	"start_date":   true,
	"end_date":     true,
	"total_amount": true,
	"created_at":   true,
}

func (r *contractRepository) FindByID(ctx context.Context, id uint) (*models.Contract, error) {
	var contract models.Contract
	err := r.db.WithContext(ctx).First(&contract, id).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *contractRepository) FindByIDWithDetails(ctx context.Context, id uint) (*models.Contract, error) {
	var contract models.Contract
	err := r.withDetails(r.db.WithContext(ctx)).First(&contract, id).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *contractRepository) FindByExpenseID(ctx context.Context, expenseID uint) (*models.Contract, error) {
	var contract models.Contract
	err := r.withDetails(r.db.WithContext(ctx)).
		Where("expense_id = ?", expenseID).
		First(&contract).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *contractRepository) Create(ctx context.Context, contract *models.Contract) error {
	return r.db.WithContext(ctx).Omit("Expense", "Charges").Create(contract).Error
}

func (r *contractRepository) Update(ctx context.Context, contract *models.Contract) error {
	return r.db.WithContext(ctx).Omit("Expense", "Charges").Save(contract).Error
}

func (r *contractRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Contract{}, id).Error
}

func (r *contractRepository) List(ctx context.Context, query *ListQuery) ([]models.Contract, int64, error) {
	var contracts []models.Contract
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Contract{})

	if query.Filters["status"] != "" {
		db = db.Where("status = ?", query.Filters["status"])
	}
	if query.Filters["period_type"] != "" {
		db = db.Where("period_type = ?", query.Filters["period_type"])
	}

	// Count total
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	db = query.apply(r.withDetails(db), contractSortable, "start_date DESC, id DESC")

	err := db.Find(&contracts).Error
	return contracts, total, err
}

func (r *contractRepository) FindAllWithDetails(ctx context.Context) ([]models.Contract, error) {
	var contracts []models.Contract
	err := r.withDetails(r.db.WithContext(ctx)).Order("id ASC").Find(&contracts).Error
	return contracts, err
}

func (r *contractRepository) withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Expense").
		Preload("Charges", func(db *gorm.DB) *gorm.DB {
			return db.Order("period_index ASC")
		})
}

// ChargeRepository defines the interface for charge data access
type ChargeRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Charge, error)
	FindByContract(ctx context.Context, contractID uint) ([]models.Charge, error)
	CreateBatch(ctx context.Context, charges []models.Charge) error
	Update(ctx context.Context, charge *models.Charge) error
	DeleteByIDs(ctx context.Context, ids []uint) error
	DeleteByContract(ctx context.Context, contractID uint) error
	FindDuePending(ctx context.Context, asOf time.Time) ([]models.Charge, error)
}

type chargeRepository struct {
	db *gorm.DB
}

// NewChargeRepository creates a new charge repository
func NewChargeRepository(db *gorm.DB) ChargeRepository {
	return &chargeRepository{db: db}
}

func (r *chargeRepository) FindByID(ctx context.Context, id uint) (*models.Charge, error) {
	var charge models.Charge
	err := r.db.WithContext(ctx).First(&charge, id).Error
	if err != nil {
		return nil, err
	}
	return &charge, nil
}

func (r *chargeRepository) FindByContract(ctx context.Context, contractID uint) ([]models.Charge, error) {
	var charges []models.Charge
	err := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("period_index ASC").
		Find(&charges).Error
	return charges, err
}

func (r *chargeRepository) CreateBatch(ctx context.Context, charges []models.Charge) error {
	if len(charges) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(&charges, 100).Error
}

func (r *chargeRepository) Update(ctx context.Context, charge *models.Charge) error {
	return r.db.WithContext(ctx).Save(charge).Error
}

func (r *chargeRepository) DeleteByIDs(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.Charge{}).Error
}

func (r *chargeRepository) DeleteByContract(ctx context.Context, contractID uint) error {
	return r.db.WithContext(ctx).Where("contract_id = ?", contractID).Delete(&models.Charge{}).Error
}

// FindDuePending returns pending charges dated on or before asOf, for active
// contracts only.
func (r *chargeRepository) FindDuePending(ctx context.Context, asOf time.Time) ([]models.Charge, error) {
	var charges []models.Charge
	err := r.db.WithContext(ctx).
		Joins("JOIN contracts ON contracts.id = charges.contract_id").
		Where("charges.status = ? AND charges.charge_date <= ? AND contracts.status = ?",
			models.ChargeStatusPending, asOf, models.ContractStatusActive).
		Order("charges.contract_id ASC, charges.period_index ASC").
		Find(&charges).Error
	return charges, err
}
