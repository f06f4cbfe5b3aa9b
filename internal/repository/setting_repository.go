package repository

import (
	"context"

	"github.com/chenmq77/duckiki/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingRepository defines the interface for key/value settings
type SettingRepository interface {
	Get(ctx context.Context, key string) (*models.Setting, error)
	Set(ctx context.Context, key, value string) error
}

type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new setting repository
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) Get(ctx context.Context, key string) (*models.Setting, error) {
	var setting models.Setting
	err := r.db.WithContext(ctx).Where(&models.Setting{Key: key}).First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// Set writes the value, last write wins
func (r *settingRepository) Set(ctx context.Context, key, value string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&models.Setting{Key: key, Value: value}).Error
}

// AuditRepository defines the interface for the change history
type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, query *ListQuery) ([]models.AuditLog, int64, error)
}

type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditRepository) List(ctx context.Context, query *ListQuery) ([]models.AuditLog, int64, error) {
	var logs []models.AuditLog
	var total int64

	db := r.db.WithContext(ctx).Model(&models.AuditLog{})

	if query.Filters["entity"] != "" {
		db = db.Where("entity = ?", query.Filters["entity"])
	}
	if query.Filters["action"] != "" {
		db = db.Where("action = ?", query.Filters["action"])
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	db = query.apply(db, map[string]bool{"created_at": true}, "created_at DESC, id DESC")

	err := db.Find(&logs).Error
	return logs, total, err
}
