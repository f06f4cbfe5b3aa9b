package services

import (
	"context"

	"github.com/chenmq77/duckiki/internal/catalog"
	"github.com/chenmq77/duckiki/internal/config"
	"github.com/chenmq77/duckiki/internal/jobs"
	"github.com/chenmq77/duckiki/internal/repository"
	"github.com/chenmq77/duckiki/internal/storage"
)

// Services holds all service instances
type Services struct {
	Activity *ActivityService
	Expense  *ExpenseService
	Contract *ContractService
	ROI      *ROIService
	Export   *ExportService
	Report   *ReportService
	Audit    *AuditService
	Job      *JobService
	Catalog  *catalog.Catalog
}

// publisher queues a snapshot publish after committed writes. A nil
// publisher, or one without a worker, does nothing.
type publisher struct {
	worker  *jobs.Worker
	publish func(ctx context.Context) error
}

func (p *publisher) changed() {
	if p == nil || p.worker == nil || p.publish == nil {
		return
	}
	p.worker.EnqueueAsync(JobPublishSnapshot, p.publish)
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, store *storage.LocalStorage, cfg *config.Config, cat *catalog.Catalog) *Services {
	auditSvc := NewAuditService(repos.Audit)

	var pub *publisher
	if cfg.AutoPublishSnapshot {
		pub = &publisher{worker: worker}
	}

	roiSvc := NewROIService(repos, cat, cfg.MarketReferencePrice, auditSvc, pub)
	contractSvc := NewContractService(repos, cat, cfg.BaseCurrency, cfg.AutoSettleCharges, auditSvc, pub)
	exportSvc := NewExportService(repos, roiSvc, store)
	jobSvc := NewJobService(worker, contractSvc, exportSvc)

	if pub != nil {
		pub.publish = jobSvc.PublishSnapshot
	}

	return &Services{
		Activity: NewActivityService(repos, cat, auditSvc, pub),
		Expense:  NewExpenseService(repos, cat, cfg.BaseCurrency, auditSvc, pub),
		Contract: contractSvc,
		ROI:      roiSvc,
		Export:   exportSvc,
		Report:   NewReportService(repos.Contract),
		Audit:    auditSvc,
		Job:      jobSvc,
		Catalog:  cat,
	}
}
