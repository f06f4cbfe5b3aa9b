package models

import (
	"time"

	"github.com/chenmq77/duckiki/internal/catalog"
	"github.com/chenmq77/duckiki/internal/weighting"
)

// Activity is a logged workout. CalculatedWeight is written on every create
// or update that touches the type or payload and is never derived on read.
type Activity struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Type             string    `gorm:"size:50;not null;index" json:"type"`
	Date             time.Time `gorm:"type:date;not null;index" json:"date"`
	Distance         *int      `json:"distance"`
	ClassName        *string   `gorm:"size:100" json:"class_name"`
	Intensity        *string   `gorm:"size:20" json:"intensity"`
	Topic            *string   `gorm:"size:100" json:"topic"`
	DurationMinutes  *int      `json:"duration_minutes"`
	Trainer          *string   `gorm:"size:100" json:"trainer"`
	CalculatedWeight float64   `gorm:"not null;default:0" json:"calculated_weight"`
	Note             *string   `gorm:"type:text" json:"note"`
	CreatedAt        time.Time `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName specifies the table name for Activity
func (Activity) TableName() string {
	return "activities"
}

// Kind returns the activity kind and whether it is a known one
func (a *Activity) Kind() (catalog.ActivityKind, bool) {
	return catalog.ParseActivityKind(a.Type)
}

// Payload builds the typed payload for the activity's kind, or nil when the
// kind is unknown.
func (a *Activity) Payload() weighting.Payload {
	kind, ok := a.Kind()
	if !ok {
		return nil
	}
	switch kind {
	case catalog.ActivitySwimming:
		return weighting.Swim{DistanceMeters: derefInt(a.Distance)}
	case catalog.ActivityGroupClass:
		return weighting.GroupClass{ClassName: derefString(a.ClassName), Intensity: derefString(a.Intensity)}
	case catalog.ActivityPersonalTraining:
		return weighting.PersonalTraining{
			Topic:           derefString(a.Topic),
			DurationMinutes: derefInt(a.DurationMinutes),
			Trainer:         derefString(a.Trainer),
			Intensity:       derefString(a.Intensity),
		}
	}
	return nil
}

// ActivityResponse is the JSON response format for activities
type ActivityResponse struct {
	ID               uint      `json:"id"`
	Type             string    `json:"type"`
	Date             string    `json:"date"`
	Distance         *int      `json:"distance,omitempty"`
	ClassName        *string   `json:"class_name,omitempty"`
	Intensity        *string   `json:"intensity,omitempty"`
	Topic            *string   `json:"topic,omitempty"`
	DurationMinutes  *int      `json:"duration_minutes,omitempty"`
	Trainer          *string   `json:"trainer,omitempty"`
	CalculatedWeight float64   `json:"calculated_weight"`
	Note             *string   `json:"note"`
	CreatedAt        time.Time `json:"created_at"`
}

// ToResponse converts Activity to ActivityResponse
func (a *Activity) ToResponse() ActivityResponse {
	return ActivityResponse{
		ID:               a.ID,
		Type:             a.Type,
		Date:             FormatDate(a.Date),
		Distance:         a.Distance,
		ClassName:        a.ClassName,
		Intensity:        a.Intensity,
		Topic:            a.Topic,
		DurationMinutes:  a.DurationMinutes,
		Trainer:          a.Trainer,
		CalculatedWeight: a.CalculatedWeight,
		Note:             a.Note,
		CreatedAt:        a.CreatedAt,
	}
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
