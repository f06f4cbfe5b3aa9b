package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chenmq77/duckiki/internal/models"
	"github.com/chenmq77/duckiki/internal/services"
)

type ExpenseHandler struct {
	expenseService  *services.ExpenseService
	contractService *services.ContractService
}

func NewExpenseHandler(expenseService *services.ExpenseService, contractService *services.ContractService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, contractService: contractService}
}

// @Summary List Expenses
// @Description Get a paginated list of expenses. By default flat expenses and contract anchors are listed; kind=all adds the paid installments.
// @Tags Expenses
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param type query string false "Filter by expense type"
// @Param currency query string false "Filter by currency"
// @Param kind query string false "flat, anchor, child or all"
// @Param from query string false "Earliest date (YYYY-MM-DD)"
// @Param to query string false "Latest date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Router /expenses [get]
func (h *ExpenseHandler) Index(c *gin.Context) {
	query := listQuery(c, "type", "currency", "kind", "from", "to")

	expenses, total, err := h.expenseService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		responses = append(responses, expenses[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"expenses": responses, "pagination": pagination(query, total)})
}

// @Summary Get Expense
// @Tags Expenses
// @Produce json
// @Param id path int true "Expense ID"
// @Success 200 {object} models.ExpenseResponse
// @Failure 404 {object} map[string]string
// @Router /expenses/{id} [get]
func (h *ExpenseHandler) Show(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	expense, err := h.expenseService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expense": expense.ToResponse()})
}

// @Summary Create Expense
// @Description Record a one-off expense
// @Tags Expenses
// @Accept json
// @Produce json
// @Param request body services.ExpenseInput true "Expense"
// @Success 201 {object} models.ExpenseResponse
// @Failure 400 {object} map[string]string
// @Router /expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req services.ExpenseInput
	if err := BindNestedOrFlat(c, "expense", &req); err != nil {
		badRequest(c, err)
		return
	}

	expense, err := h.expenseService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"expense": expense.ToResponse()})
}

// @Summary Update Expense
// @Description Change a flat expense. Contract anchors and paid installments are rejected with 409.
// @Tags Expenses
// @Accept json
// @Produce json
// @Param id path int true "Expense ID"
// @Param request body services.ExpensePatch true "Fields to change"
// @Success 200 {object} models.ExpenseResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /expenses/{id} [patch]
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req services.ExpensePatch
	if err := BindNestedOrFlat(c, "expense", &req); err != nil {
		badRequest(c, err)
		return
	}

	expense, err := h.expenseService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expense": expense.ToResponse()})
}

// @Summary Delete Expense
// @Description Delete a flat expense. Contracts are deleted through /contracts/{id}.
// @Tags Expenses
// @Param id path int true "Expense ID"
// @Success 200 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.expenseService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "expense deleted"})
}

// @Summary Convert Expense to Installments
// @Description Turn a flat expense into a contract. The expense amount becomes the contract total and its date the start date.
// @Tags Expenses
// @Accept json
// @Produce json
// @Param id path int true "Expense ID"
// @Param request body services.ConvertInput true "Schedule"
// @Success 201 {object} models.ContractResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /expenses/{id}/convert-to-installment [post]
func (h *ExpenseHandler) Convert(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req services.ConvertInput
	if err := BindNestedOrFlat(c, "contract", &req); err != nil {
		badRequest(c, err)
		return
	}

	contract, err := h.contractService.Convert(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"contract": contract.ToResponse()})
}
