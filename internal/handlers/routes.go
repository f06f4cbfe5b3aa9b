package handlers

import "github.com/gin-gonic/gin"

// Register mounts every API route on the /api/v1 group
func (h *Handlers) Register(v1 *gin.RouterGroup) {
	v1.GET("/health", h.Health.Index)
	v1.GET("/catalog", h.Catalog.Index)

	activities := v1.Group("/activities")
	{
		activities.GET("", h.Activity.Index)
		activities.POST("", h.Activity.Create)
		activities.GET("/:id", h.Activity.Show)
		activities.PATCH("/:id", h.Activity.Update)
		activities.DELETE("/:id", h.Activity.Delete)
	}

	expenses := v1.Group("/expenses")
	{
		expenses.GET("", h.Expense.Index)
		expenses.POST("", h.Expense.Create)
		expenses.GET("/:id", h.Expense.Show)
		expenses.PATCH("/:id", h.Expense.Update)
		expenses.DELETE("/:id", h.Expense.Delete)
		expenses.POST("/:id/convert-to-installment", h.Expense.Convert)
	}

	// Static route first so "quote" is not matched as :id
	contracts := v1.Group("/contracts")
	{
		contracts.POST("/quote", h.Contract.Quote)
		contracts.GET("", h.Contract.Index)
		contracts.POST("", h.Contract.Create)
		contracts.GET("/:id", h.Contract.Show)
		contracts.PUT("/:id", h.Contract.Update)
		contracts.DELETE("/:id", h.Contract.Delete)
		contracts.PUT("/:id/charges/:charge_id", h.Contract.UpdateCharge)
		contracts.DELETE("/:id/charges/:charge_id", h.Contract.DeleteCharge)
		contracts.GET("/:id/charges.csv", h.Contract.ChargesCSV)
		contracts.GET("/:id/statement", h.Contract.Statement)
		contracts.GET("/:id/statement.pdf", h.Contract.StatementPDF)
	}

	roi := v1.Group("/roi")
	{
		roi.GET("/summary", h.ROI.Summary)
		roi.GET("/market-price", h.ROI.MarketPrice)
		roi.PUT("/market-price", h.ROI.UpdateMarketPrice)
	}

	export := v1.Group("/export")
	{
		export.GET("", h.Export.Export)
		export.GET("/snapshot", h.Export.Snapshot)
		export.POST("/json", h.Export.PublishJSON)
	}

	v1.GET("/audits", h.Audit.Index)
	v1.GET("/jobs/status", h.Job.Status)
	v1.POST("/jobs/settle", h.Job.SettleDue)
}
