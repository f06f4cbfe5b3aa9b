package models

import "time"

// Setting is a key/value pair for user-adjustable configuration
type Setting struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Setting
func (Setting) TableName() string {
	return "settings"
}

// Setting keys
const (
	SettingMarketReferencePrice = "market_reference_price"
)
