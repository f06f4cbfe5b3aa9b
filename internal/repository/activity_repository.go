package repository

import (
	"context"
	"strings"

	"github.com/chenmq77/duckiki/internal/models"
	"gorm.io/gorm"
)

// ActivityRepository defines the interface for activity data access
type ActivityRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Activity, error)
	Create(ctx context.Context, activity *models.Activity) error
	Update(ctx context.Context, activity *models.Activity) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.Activity, int64, error)
	FindAll(ctx context.Context) ([]models.Activity, error)
	Weights(ctx context.Context) ([]float64, error)
}

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

var activitySortable = map[string]bool{
	"date":              true,
	"type":              true,
	"distance":          true,
	"calculated_weight": true,
	"created_at":        true,
}

func (r *activityRepository) FindByID(ctx context.Context, id uint) (*models.Activity, error) {
	var activity models.Activity
	err := r.db.WithContext(ctx).First(&activity, id).Error
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *activityRepository) Create(ctx context.Context, activity *models.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *activityRepository) Update(ctx context.Context, activity *models.Activity) error {
	return r.db.WithContext(ctx).Save(activity).Error
}

func (r *activityRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Activity{}, id).Error
}

func (r *activityRepository) List(ctx context.Context, query *ListQuery) ([]models.Activity, int64, error) {
	var activities []models.Activity
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Activity{})

	// Apply search
	if query.Search != "" {
		search := likePattern(strings.ToLower(query.Search))
		db = db.Where("LOWER(note) LIKE ? OR LOWER(class_name) LIKE ? OR LOWER(topic) LIKE ? OR LOWER(trainer) LIKE ?",
			search, search, search, search)
	}

	// Apply type filter
	if query.Filters["type"] != "" {
		db = db.Where("type = ?", query.Filters["type"])
	}

	db = dateRange(db, "date", query.Filters["from"], query.Filters["to"])

	// Count total
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	db = query.apply(db, activitySortable, "date DESC, id DESC")

	err := db.Find(&activities).Error
	return activities, total, err
}

func (r *activityRepository) FindAll(ctx context.Context) ([]models.Activity, error) {
	var activities []models.Activity
	err := r.db.WithContext(ctx).Order("date DESC, id DESC").Find(&activities).Error
	return activities, err
}

func (r *activityRepository) Weights(ctx context.Context) ([]float64, error) {
	var weights []float64
	err := r.db.WithContext(ctx).
		Model(&models.Activity{}).
		Order("id ASC").
		Pluck("calculated_weight", &weights).Error
	return weights, err
}
