package handlers

import (
	"github.com/chenmq77/duckiki/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health   *HealthHandler
	Activity *ActivityHandler
	Expense  *ExpenseHandler
	Contract *ContractHandler
	ROI      *ROIHandler
	Export   *ExportHandler
	Catalog  *CatalogHandler
	Audit    *AuditHandler
	Job      *JobHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(),
		Activity: NewActivityHandler(svcs.Activity),
		Expense:  NewExpenseHandler(svcs.Expense, svcs.Contract),
		Contract: NewContractHandler(svcs.Contract, svcs.Report),
		ROI:      NewROIHandler(svcs.ROI),
		Export:   NewExportHandler(svcs.Export),
		Catalog:  NewCatalogHandler(svcs.Catalog),
		Audit:    NewAuditHandler(svcs.Audit),
		Job:      NewJobHandler(svcs.Job),
	}
}
