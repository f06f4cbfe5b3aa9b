package models

import (
	"time"

	"github.com/chenmq77/duckiki/internal/schedule"
)

// Contract is an installment plan attached to an anchor expense. Type,
// category, currency and note live on the anchor.
type Contract struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ExpenseID    uint      `gorm:"not null;uniqueIndex" json:"expense_id"`
	TotalAmount  float64   `gorm:"not null" json:"total_amount"`
	PeriodAmount float64   `gorm:"not null" json:"period_amount"`
	PeriodType   string    `gorm:"size:10;not null;default:weekly" json:"period_type"`
	PeriodCount  int       `gorm:"not null" json:"period_count"`
	DayOfWeek    *int      `json:"day_of_week"`
	DayOfMonth   *int      `json:"day_of_month"`
	StartDate    time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate      time.Time `gorm:"type:date;not null" json:"end_date"`
	Status       string    `gorm:"size:20;default:draft;not null;index" json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Associations
	Expense *Expense `gorm:"foreignKey:ExpenseID" json:"expense,omitempty"`
	Charges []Charge `gorm:"foreignKey:ContractID" json:"charges,omitempty"`
}

// TableName specifies the table name for Contract
func (Contract) TableName() string {
	return "contracts"
}

// Contract status constants
const (
	ContractStatusDraft  = "draft"
	ContractStatusActive = "active"
	ContractStatusEdited = "edited"
	ContractStatusClosed = "closed"
)

// MayActivate returns true if charges can be generated for the contract
func (c *Contract) MayActivate() bool {
	return c.Status == ContractStatusDraft
}

// MayEdit returns true if the contract can enter regeneration
func (c *Contract) MayEdit() bool {
	return c.Status == ContractStatusActive
}

// MaySettle returns true if a regeneration can be committed
func (c *Contract) MaySettle() bool {
	return c.Status == ContractStatusEdited
}

// MayClose returns true if the contract can be closed and removed
func (c *Contract) MayClose() bool {
	return c.Status == ContractStatusActive || c.Status == ContractStatusDraft
}

// Params returns the generation parameters the contract was built from
func (c *Contract) Params() schedule.Params {
	return schedule.Params{
		StartDate:    c.StartDate,
		PeriodType:   schedule.PeriodType(c.PeriodType),
		PeriodCount:  c.PeriodCount,
		PeriodAmount: c.PeriodAmount,
		DayOfWeek:    c.DayOfWeek,
		DayOfMonth:   c.DayOfMonth,
	}
}

// ApplyParams copies normalized generation parameters onto the contract and
// refreshes the derived end date.
func (c *Contract) ApplyParams(p schedule.Params) {
	c.StartDate = p.StartDate
	c.PeriodType = string(p.PeriodType)
	c.PeriodCount = p.PeriodCount
	c.PeriodAmount = p.PeriodAmount
	c.DayOfWeek = p.DayOfWeek
	c.DayOfMonth = p.DayOfMonth
	c.EndDate = schedule.EndDate(p.StartDate, p.PeriodType, p.PeriodCount)
}

// Lines returns the charges as schedule lines
func (c *Contract) Lines() []schedule.Line {
	lines := make([]schedule.Line, len(c.Charges))
	for i := range c.Charges {
		lines[i] = c.Charges[i].Line()
	}
	return lines
}

// PaidCount returns the number of settled charges
func (c *Contract) PaidCount() int {
	n := 0
	for i := range c.Charges {
		if c.Charges[i].IsPaid() {
			n++
		}
	}
	return n
}

// PaidTotal returns the sum of settled charge amounts
func (c *Contract) PaidTotal() float64 {
	var total float64
	for i := range c.Charges {
		if c.Charges[i].IsPaid() {
			total += c.Charges[i].Amount
		}
	}
	return total
}

// ContractResponse is the JSON response format for contracts
type ContractResponse struct {
	ID           uint             `json:"id"`
	ExpenseID    uint             `json:"expense_id"`
	Type         string           `json:"type"`
	Category     string           `json:"category"`
	Currency     string           `json:"currency"`
	Note         *string          `json:"note"`
	TotalAmount  float64          `json:"total_amount"`
	PeriodAmount float64          `json:"period_amount"`
	PeriodType   string           `json:"period_type"`
	PeriodCount  int              `json:"period_count"`
	DayOfWeek    *int             `json:"day_of_week"`
	DayOfMonth   *int             `json:"day_of_month"`
	StartDate    string           `json:"start_date"`
	EndDate      string           `json:"end_date"`
	Status       string           `json:"status"`
	ChargesCount int              `json:"charges_count"`
	PaidCount    int              `json:"paid_count"`
	PendingCount int              `json:"pending_count"`
	PaidTotal    float64          `json:"paid_total"`
	Charges      []ChargeResponse `json:"charges,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// ToResponse converts Contract to ContractResponse
func (c *Contract) ToResponse() ContractResponse {
	paid := c.PaidCount()
	resp := ContractResponse{
		ID:           c.ID,
		ExpenseID:    c.ExpenseID,
		TotalAmount:  c.TotalAmount,
		PeriodAmount: c.PeriodAmount,
		PeriodType:   c.PeriodType,
		PeriodCount:  c.PeriodCount,
		DayOfWeek:    c.DayOfWeek,
		DayOfMonth:   c.DayOfMonth,
		StartDate:    FormatDate(c.StartDate),
		EndDate:      FormatDate(c.EndDate),
		Status:       c.Status,
		ChargesCount: len(c.Charges),
		PaidCount:    paid,
		PendingCount: len(c.Charges) - paid,
		PaidTotal:    c.PaidTotal(),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}

	if c.Expense != nil {
		resp.Type = c.Expense.Type
		resp.Category = c.Expense.Category
		resp.Currency = c.Expense.Currency
		resp.Note = c.Expense.Note
	}

	if len(c.Charges) > 0 {
		resp.Charges = make([]ChargeResponse, len(c.Charges))
		for i := range c.Charges {
			resp.Charges[i] = c.Charges[i].ToResponse()
		}
	}

	return resp
}
