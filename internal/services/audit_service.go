package services

import (
	"context"
	"log/slog"

	"github.com/chenmq77/duckiki/internal/models"
	"github.com/chenmq77/duckiki/internal/repository"
	"github.com/chenmq77/duckiki/pkg/logger"
)

type clientInfoKey struct{}

// ClientInfo identifies the caller of an operation for the change history
type ClientInfo struct {
	IP        string
	UserAgent string
}

// WithClientInfo attaches caller details to ctx
func WithClientInfo(ctx context.Context, info ClientInfo) context.Context {
	return context.WithValue(ctx, clientInfoKey{}, info)
}

func clientInfo(ctx context.Context) ClientInfo {
	info, _ := ctx.Value(clientInfoKey{}).(ClientInfo)
	return info
}

type AuditService struct {
	repo repository.AuditRepository
}

func NewAuditService(repo repository.AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

// Record writes an audit entry through repo, which may be bound to an open
// transaction. A failed write is logged and does not fail the caller.
func (s *AuditService) Record(ctx context.Context, repo repository.AuditRepository, action, entity string, entityID uint, details string) {
	if repo == nil {
		repo = s.repo
	}
	info := clientInfo(ctx)
	entry := &models.AuditLog{
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Details:   details,
		IPAddress: info.IP,
		UserAgent: info.UserAgent,
	}
	if err := repo.Create(ctx, entry); err != nil {
		logger.Warn("failed to write audit log",
			slog.String("action", action),
			slog.String("entity", entity),
			slog.Any("entity_id", entityID),
			slog.String("error", err.Error()))
	}
}

// Log records an audit entry outside any transaction
func (s *AuditService) Log(ctx context.Context, action, entity string, entityID uint, details string) {
	s.Record(ctx, s.repo, action, entity, entityID, details)
}

// List retrieves audit logs with filters
func (s *AuditService) List(ctx context.Context, query *repository.ListQuery) ([]models.AuditLog, int64, error) {
	return s.repo.List(ctx, query)
}
