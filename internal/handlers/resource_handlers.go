package handlers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/chenmq77/duckiki/internal/catalog"
	"github.com/chenmq77/duckiki/internal/models"
	"github.com/chenmq77/duckiki/internal/services"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// @Summary Health Check
// @Description Checks if the API is running
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "duckiki",
		"version": "1.0.0",
	})
}

type CatalogHandler struct {
	catalog *catalog.Catalog
}

func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: cat}
}

// @Summary Catalog
// @Description Activity types with their weight parameters, expense types with their categories, and currency rates
// @Tags Catalog
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /catalog [get]
func (h *CatalogHandler) Index(c *gin.Context) {
	activities := make([]catalog.ActivityType, 0, len(catalog.ActivityKinds))
	for _, kind := range catalog.ActivityKinds {
		if t, ok := h.catalog.Activity(kind); ok {
			activities = append(activities, t)
		}
	}
	expenses := make([]catalog.ExpenseType, 0, len(catalog.ExpenseKinds))
	for _, kind := range catalog.ExpenseKinds {
		if t, ok := h.catalog.ExpenseTypes[kind]; ok {
			expenses = append(expenses, t)
		}
	}
	currencies := []string{h.catalog.BaseCurrency}
	for code := range h.catalog.Rates {
		if code != h.catalog.BaseCurrency {
			currencies = append(currencies, code)
		}
	}
	sort.Strings(currencies[1:])

	c.JSON(http.StatusOK, gin.H{
		"activity_types":         activities,
		"expense_types":          expenses,
		"base_currency":          h.catalog.BaseCurrency,
		"currencies":             currencies,
		"rates":                  h.catalog.Rates,
		"market_reference_price": h.catalog.MarketReferencePrice,
	})
}

type AuditHandler struct {
	auditService *services.AuditService
}

func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// @Summary List Audit Logs
// @Description Get a paginated list of changes, newest first
// @Tags Audit
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param entity query string false "Activity, Expense, Contract, Charge or Setting"
// @Param action query string false "CREATE, UPDATE, DELETE, CONVERT or SETTLE"
// @Success 200 {object} map[string]interface{}
// @Router /audits [get]
func (h *AuditHandler) Index(c *gin.Context) {
	query := listQuery(c, "entity", "action")

	logs, total, err := h.auditService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}
	c.JSON(http.StatusOK, gin.H{"audits": logs, "pagination": pagination(query, total)})
}
