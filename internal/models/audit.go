package models

import (
	"time"
)

// AuditLog records a change to a dashboard record
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Action    string    `gorm:"size:50;not null;index" json:"action"` // CREATE, UPDATE, DELETE, CONVERT, SETTLE
	Entity    string    `gorm:"size:50;not null;index" json:"entity"` // Activity, Expense, Contract, Charge, Setting
	EntityID  uint      `json:"entity_id"`
	Details   string    `gorm:"type:text" json:"details"`
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	UserAgent string    `gorm:"size:255" json:"user_agent"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName specifies the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}

// Audit actions
const (
	AuditActionCreate  = "CREATE"
	AuditActionUpdate  = "UPDATE"
	AuditActionDelete  = "DELETE"
	AuditActionConvert = "CONVERT"
	AuditActionSettle  = "SETTLE"
)
