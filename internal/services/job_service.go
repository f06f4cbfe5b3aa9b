package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/chenmq77/duckiki/internal/jobs"
	"github.com/chenmq77/duckiki/pkg/logger"
)

// Names of the background jobs
const (
	JobSettleCharges   = "settle-due-charges"
	JobPublishSnapshot = "publish-snapshot"
)

type JobService struct {
	worker      *jobs.Worker
	contractSvc *ContractService
	exportSvc   *ExportService
}

func NewJobService(worker *jobs.Worker, contractSvc *ContractService, exportSvc *ExportService) *JobService {
	return &JobService{
		worker:      worker,
		contractSvc: contractSvc,
		exportSvc:   exportSvc,
	}
}

// StartSettlement settles due charges now and then every interval
func (s *JobService) StartSettlement(interval time.Duration) {
	s.worker.ScheduleEveryImmediate(JobSettleCharges, interval, s.SettleDue)
}

// SettleDue pays every charge that has fallen due
func (s *JobService) SettleDue(ctx context.Context) error {
	n, _, err := s.SettleNow(ctx)
	if err != nil {
		return err
	}
	logger.Debug("settlement run finished", slog.Int("settled", n))
	return nil
}

// SettleNow settles as of the current time and reports how many charges
// were paid
func (s *JobService) SettleNow(ctx context.Context) (int, time.Time, error) {
	asOf := s.contractSvc.now()
	n, err := s.contractSvc.SettleDue(ctx, asOf)
	return n, asOf, err
}

// PublishSnapshot regenerates summary.json
func (s *JobService) PublishSnapshot(ctx context.Context) error {
	res, err := s.exportSvc.PublishJSON(ctx)
	if err != nil {
		return err
	}
	logger.Info("snapshot published", slog.String("path", res.FilePath))
	return nil
}

func (s *JobService) GetStatus() map[string]interface{} {
	stats := s.worker.GetStats()
	return map[string]interface{}{
		"active_jobs":    stats.ActiveJobs,
		"completed_jobs": stats.CompletedJobs,
		"failed_jobs":    stats.FailedJobs,
		"queue_length":   stats.QueueLength,
		"max_concurrent": stats.MaxConcurrent,
		"last_runs":      stats.LastRuns,
		"schedules":      stats.Schedules,
	}
}
