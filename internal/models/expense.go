package models

import (
	"time"
)

// Expense is a single spend record. A contract's anchor is an expense with
// IsInstallment set and no parent; expenses recorded for paid charges carry
// ParentExpenseID pointing at the anchor.
type Expense struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Type              string    `gorm:"size:50;not null;index" json:"type"`
	Category          string    `gorm:"size:100" json:"category"`
	Amount            float64   `gorm:"not null" json:"amount"`
	Currency          string    `gorm:"size:10;default:NZD;not null" json:"currency"`
	Date              time.Time `gorm:"type:date;not null;index" json:"date"`
	Note              *string   `gorm:"type:text" json:"note"`
	IsInstallment     bool      `gorm:"default:false;index" json:"is_installment"`
	ParentExpenseID   *uint     `gorm:"index" json:"parent_expense_id"`
	InstallmentNumber *int      `json:"installment_number"`
	CreatedAt         time.Time `gorm:"index" json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Associations
	Parent   *Expense  `gorm:"foreignKey:ParentExpenseID" json:"-"`
	Contract *Contract `gorm:"foreignKey:ExpenseID" json:"-"`
}

// TableName specifies the table name for Expense
func (Expense) TableName() string {
	return "expenses"
}

// IsAnchor returns true if the expense represents a whole contract
func (e *Expense) IsAnchor() bool {
	return e.IsInstallment && e.ParentExpenseID == nil
}

// IsChild returns true if the expense was recorded for a paid charge
func (e *Expense) IsChild() bool {
	return e.ParentExpenseID != nil
}

// IsFlat returns true for a one-off expense outside any contract
func (e *Expense) IsFlat() bool {
	return !e.IsInstallment && e.ParentExpenseID == nil
}

// ContractInfo summarizes a contract on its anchor expense.
type ContractInfo struct {
	ContractID   uint    `json:"contract_id"`
	PeriodType   string  `json:"period_type"`
	PeriodAmount float64 `json:"period_amount"`
	TotalPeriods int     `json:"total_periods"`
	PaidPeriods  int     `json:"paid_periods"`
	Status       string  `json:"status"`
}

// ExpenseResponse is the JSON response format for expenses
type ExpenseResponse struct {
	ID                uint          `json:"id"`
	Type              string        `json:"type"`
	Category          string        `json:"category"`
	Amount            float64       `json:"amount"`
	Currency          string        `json:"currency"`
	Date              string        `json:"date"`
	Note              *string       `json:"note"`
	IsInstallment     bool          `json:"is_installment"`
	ParentExpenseID   *uint         `json:"parent_expense_id"`
	InstallmentNumber *int          `json:"installment_number,omitempty"`
	ParentCategory    *string       `json:"parent_category,omitempty"`
	ContractInfo      *ContractInfo `json:"contract_info,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
}

// ToResponse converts Expense to ExpenseResponse. The contract summary is
// attached when the Contract association is loaded with its charges.
func (e *Expense) ToResponse() ExpenseResponse {
	resp := ExpenseResponse{
		ID:                e.ID,
		Type:              e.Type,
		Category:          e.Category,
		Amount:            e.Amount,
		Currency:          e.Currency,
		Date:              FormatDate(e.Date),
		Note:              e.Note,
		IsInstallment:     e.IsInstallment,
		ParentExpenseID:   e.ParentExpenseID,
		InstallmentNumber: e.InstallmentNumber,
		CreatedAt:         e.CreatedAt,
	}

	if e.Parent != nil {
		category := e.Parent.Category
		resp.ParentCategory = &category
	}

	if e.IsAnchor() && e.Contract != nil && e.Contract.ID != 0 {
		resp.ContractInfo = &ContractInfo{
			ContractID:   e.Contract.ID,
			PeriodType:   e.Contract.PeriodType,
			PeriodAmount: e.Contract.PeriodAmount,
			TotalPeriods: len(e.Contract.Charges),
			PaidPeriods:  e.Contract.PaidCount(),
			Status:       e.Contract.Status,
		}
		if resp.ContractInfo.TotalPeriods == 0 {
			resp.ContractInfo.TotalPeriods = e.Contract.PeriodCount
		}
	}

	return resp
}
