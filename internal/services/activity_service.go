package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/chenmq77/duckiki/internal/catalog"
	"github.com/chenmq77/duckiki/internal/models"
	"github.com/chenmq77/duckiki/internal/repository"
	"github.com/chenmq77/duckiki/internal/weighting"
	"github.com/chenmq77/duckiki/pkg/logger"
)

// ActivityInput is the payload for logging an activity
type ActivityInput struct {
	Type            string  `json:"type" binding:"required"`
	Date            string  `json:"date" binding:"required"`
	Distance        *int    `json:"distance"`
	ClassName       *string `json:"class_name"`
	Intensity       *string `json:"intensity"`
	Topic           *string `json:"topic"`
	DurationMinutes *int    `json:"duration_minutes"`
	Trainer         *string `json:"trainer"`
	Note            *string `json:"note"`
}

// ActivityPatch holds the fields to change. Nil fields are left alone.
type ActivityPatch struct {
	Type            *string `json:"type"`
	Date            *string `json:"date"`
	Distance        *int    `json:"distance"`
	ClassName       *string `json:"class_name"`
	Intensity       *string `json:"intensity"`
	Topic           *string `json:"topic"`
	DurationMinutes *int    `json:"duration_minutes"`
	Trainer         *string `json:"trainer"`
	Note            *string `json:"note"`
}

// touchesWeight reports whether the patch changes anything the weight depends on
func (p ActivityPatch) touchesWeight() bool {
	return p.Type != nil || p.Distance != nil || p.ClassName != nil || p.Intensity != nil ||
		p.Topic != nil || p.DurationMinutes != nil || p.Trainer != nil
}

type ActivityService struct {
	repos     *repository.Repositories
	catalog   *catalog.Catalog
	auditSvc  *AuditService
	publisher *publisher
}

func NewActivityService(repos *repository.Repositories, cat *catalog.Catalog, auditSvc *AuditService, pub *publisher) *ActivityService {
	return &ActivityService{repos: repos, catalog: cat, auditSvc: auditSvc, publisher: pub}
}

// Create validates the payload, computes its weight and stores the activity
func (s *ActivityService) Create(ctx context.Context, in ActivityInput) (*models.Activity, error) {
	date, err := parseRequiredDate("date", in.Date)
	if err != nil {
		return nil, err
	}

	activity := &models.Activity{
		Type:            normalizeActivityType(in.Type),
		Date:            date,
		Distance:        in.Distance,
		ClassName:       trimmed(in.ClassName),
		Intensity:       lowered(in.Intensity),
		Topic:           trimmed(in.Topic),
		DurationMinutes: in.DurationMinutes,
		Trainer:         trimmed(in.Trainer),
		Note:            in.Note,
	}
	if activity.Type == "" {
		return nil, invalid("type", "is required")
	}

	if err := s.weigh(activity); err != nil {
		return nil, err
	}

	if err := s.repos.Activity.Create(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	logger.Info("activity created",
		slog.Any("activity_id", activity.ID),
		slog.String("type", activity.Type),
		slog.Float64("weight", activity.CalculatedWeight))
	s.auditSvc.Log(ctx, models.AuditActionCreate, "Activity", activity.ID,
		fmt.Sprintf("%s on %s weighted %.4f", activity.Type, models.FormatDate(activity.Date), activity.CalculatedWeight))
	s.publisher.changed()

	return activity, nil
}

// Update applies the patch. The weight is recomputed only when the type or
// payload changes; otherwise the stored weight is kept.
func (s *ActivityService) Update(ctx context.Context, id uint, patch ActivityPatch) (*models.Activity, error) {
	activity, err := s.repos.Activity.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "activity", id)
	}

	if patch.Type != nil {
		activity.Type = normalizeActivityType(*patch.Type)
		if activity.Type == "" {
			return nil, invalid("type", "is required")
		}
	}
	if patch.Date != nil {
		date, err := parseRequiredDate("date", *patch.Date)
		if err != nil {
			return nil, err
		}
		activity.Date = date
	}
	if patch.Distance != nil {
		activity.Distance = patch.Distance
	}
	if patch.ClassName != nil {
		activity.ClassName = trimmed(patch.ClassName)
	}
	if patch.Intensity != nil {
		activity.Intensity = lowered(patch.Intensity)
	}
	if patch.Topic != nil {
		activity.Topic = trimmed(patch.Topic)
	}
	if patch.DurationMinutes != nil {
		activity.DurationMinutes = patch.DurationMinutes
	}
	if patch.Trainer != nil {
		activity.Trainer = trimmed(patch.Trainer)
	}
	if patch.Note != nil {
		activity.Note = patch.Note
	}

	if patch.touchesWeight() {
		if err := s.weigh(activity); err != nil {
			return nil, err
		}
	}

	if err := s.repos.Activity.Update(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to update activity: %w", err)
	}

	s.auditSvc.Log(ctx, models.AuditActionUpdate, "Activity", activity.ID,
		fmt.Sprintf("weight %.4f", activity.CalculatedWeight))
	s.publisher.changed()

	return activity, nil
}

// Get retrieves an activity by ID
func (s *ActivityService) Get(ctx context.Context, id uint) (*models.Activity, error) {
	activity, err := s.repos.Activity.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "activity", id)
	}
	return activity, nil
}

// List retrieves activities with filters
func (s *ActivityService) List(ctx context.Context, query *repository.ListQuery) ([]models.Activity, int64, error) {
	return s.repos.Activity.List(ctx, query)
}

// Delete removes an activity
func (s *ActivityService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repos.Activity.FindByID(ctx, id); err != nil {
		return notFound(err, "activity", id)
	}
	if err := s.repos.Activity.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	s.auditSvc.Log(ctx, models.AuditActionDelete, "Activity", id, "")
	s.publisher.changed()
	return nil
}

// weigh validates the payload of a known kind and stores its weight on the
// activity. Kinds outside the catalog weigh 1.0.
func (s *ActivityService) weigh(a *models.Activity) error {
	kind, known := a.Kind()
	payload := a.Payload()
	if known {
		if err := weighting.ValidatePayload(payload); err != nil {
			return classify(err)
		}
	}
	w, err := weighting.Valuate(kind, payload, s.catalog)
	if err != nil {
		return classify(err)
	}
	a.CalculatedWeight = w
	return nil
}

func normalizeActivityType(s string) string {
	if kind, ok := catalog.ParseActivityKind(s); ok {
		return string(kind)
	}
	return strings.TrimSpace(s)
}
