package models

import (
	"time"

	"github.com/chenmq77/duckiki/internal/schedule"
)

// Charge is one dated installment of a contract.
type Charge struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ContractID  uint       `gorm:"not null;uniqueIndex:idx_charges_contract_period" json:"contract_id"`
	PeriodIndex int        `gorm:"not null;uniqueIndex:idx_charges_contract_period" json:"period_index"`
	ChargeDate  time.Time  `gorm:"type:date;not null;index" json:"charge_date"`
	Amount      float64    `gorm:"not null" json:"amount"`
	Status      string     `gorm:"size:20;default:pending;not null;index" json:"status"`
	ExpenseID   *uint      `gorm:"index" json:"expense_id"`
	PaidAt      *time.Time `json:"paid_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName specifies the table name for Charge
func (Charge) TableName() string {
	return "charges"
}

// Charge status constants
const (
	ChargeStatusPending = string(schedule.StatusPending)
	ChargeStatusPaid    = string(schedule.StatusPaid)
)

// IsPaid returns true if the charge is settled
func (c *Charge) IsPaid() bool {
	return c.Status == ChargeStatusPaid
}

// MayPay returns true if the charge can be settled
func (c *Charge) MayPay() bool {
	return c.Status == ChargeStatusPending
}

// MayRevert returns true if the charge can go back to pending
func (c *Charge) MayRevert() bool {
	return c.Status == ChargeStatusPaid
}

// InstallmentNumber is the 1-based position of the charge in its contract
func (c *Charge) InstallmentNumber() int {
	return c.PeriodIndex + 1
}

// Line converts the charge to a schedule line
func (c *Charge) Line() schedule.Line {
	return schedule.Line{
		Index:  c.PeriodIndex,
		Date:   c.ChargeDate,
		Amount: c.Amount,
		Status: schedule.Status(c.Status),
	}
}

// ApplyLine overwrites date, amount and status from a schedule line
func (c *Charge) ApplyLine(l schedule.Line) {
	c.PeriodIndex = l.Index
	c.ChargeDate = l.Date
	c.Amount = l.Amount
	c.Status = string(l.Status)
}

// ChargeResponse is the JSON response format for charges
type ChargeResponse struct {
	ID                uint       `json:"id"`
	ContractID        uint       `json:"contract_id"`
	InstallmentNumber int        `json:"installment_number"`
	ChargeDate        string     `json:"charge_date"`
	Amount            float64    `json:"amount"`
	Status            string     `json:"status"`
	ExpenseID         *uint      `json:"expense_id"`
	PaidAt            *time.Time `json:"paid_at"`
}

// ToResponse converts Charge to ChargeResponse
func (c *Charge) ToResponse() ChargeResponse {
	return ChargeResponse{
		ID:                c.ID,
		ContractID:        c.ContractID,
		InstallmentNumber: c.InstallmentNumber(),
		ChargeDate:        FormatDate(c.ChargeDate),
		Amount:            c.Amount,
		Status:            c.Status,
		ExpenseID:         c.ExpenseID,
		PaidAt:            c.PaidAt,
	}
}
