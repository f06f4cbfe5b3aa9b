package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chenmq77/duckiki/internal/models"
	"github.com/chenmq77/duckiki/internal/services"
)

type ContractHandler struct {
	contractService *services.ContractService
	reportService   *services.ReportService
}

func NewContractHandler(contractService *services.ContractService, reportService *services.ReportService) *ContractHandler {
	return &ContractHandler{contractService: contractService, reportService: reportService}
}

// @Summary List Contracts
// @Description Get a paginated list of installment contracts with their charges
// @Tags Contracts
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param status query string false "Filter by status"
// @Param period_type query string false "weekly or monthly"
// @Success 200 {object} map[string]interface{}
// @Router /contracts [get]
func (h *ContractHandler) Index(c *gin.Context) {
	query := listQuery(c, "status", "period_type")

	contracts, total, err := h.contractService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.ContractResponse, 0, len(contracts))
	for i := range contracts {
		responses = append(responses, contracts[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"contracts": responses, "pagination": pagination(query, total)})
}

// @Summary Get Contract
// @Tags Contracts
// @Produce json
// @Param id path int true "Contract ID"
// @Success 200 {object} models.ContractResponse
// @Failure 404 {object} map[string]string
// @Router /contracts/{id} [get]
func (h *ContractHandler) Show(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	contract, err := h.contractService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contract": contract.ToResponse()})
}

// @Summary Quote Contract
// @Description Complete a partially filled contract form. Given either amount and either the period count or the end date, the other values are derived.
// @Tags Contracts
// @Accept json
// @Produce json
// @Param request body services.QuoteRequest true "Contract form"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /contracts/quote [post]
func (h *ContractHandler) Quote(c *gin.Context) {
	var req services.QuoteRequest
	if err := BindNestedOrFlat(c, "contract", &req); err != nil {
		badRequest(c, err)
		return
	}

	q, err := h.contractService.Quote(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quote": gin.H{
		"start_date":       models.FormatDate(q.StartDate),
		"period_type":      q.PeriodType,
		"total_amount":     q.TotalAmount,
		"period_amount":    q.PeriodAmount,
		"period_count":     q.PeriodCount,
		"last_charge_date": models.FormatDate(q.LastCharge),
		"end_date":         models.FormatDate(q.EndDate),
	}})
}

// @Summary Create Contract
// @Description Create an installment contract with its anchor expense and generated charges
// @Tags Contracts
// @Accept json
// @Produce json
// @Param request body services.ContractInput true "Contract"
// @Success 201 {object} models.ContractResponse
// @Failure 400 {object} map[string]string
// @Router /contracts [post]
func (h *ContractHandler) Create(c *gin.Context) {
	var req services.ContractInput
	if err := BindNestedOrFlat(c, "contract", &req); err != nil {
		badRequest(c, err)
		return
	}

	contract, err := h.contractService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"contract": contract.ToResponse()})
}

// @Summary Update Contract
// @Description Change a contract. Pending charges are regenerated while paid charges are kept.
// @Tags Contracts
// @Accept json
// @Produce json
// @Param id path int true "Contract ID"
// @Param request body services.ContractPatch true "Fields to change"
// @Success 200 {object} models.ContractResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /contracts/{id} [put]
func (h *ContractHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req services.ContractPatch
	if err := BindNestedOrFlat(c, "contract", &req); err != nil {
		badRequest(c, err)
		return
	}

	contract, err := h.contractService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contract": contract.ToResponse()})
}

// @Summary Delete Contract
// @Description Delete a contract with its charges, paid installments and anchor expense
// @Tags Contracts
// @Param id path int true "Contract ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /contracts/{id} [delete]
func (h *ContractHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.contractService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "contract deleted"})
}

// @Summary Update Charge
// @Description Pay, revert or re-price one charge of a contract
// @Tags Contracts
// @Accept json
// @Produce json
// @Param id path int true "Contract ID"
// @Param charge_id path int true "Charge ID"
// @Param request body services.ChargePatch true "Charge changes"
// @Success 200 {object} models.ChargeResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /contracts/{id}/charges/{charge_id} [put]
func (h *ContractHandler) UpdateCharge(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	chargeID, ok := paramID(c, "charge_id")
	if !ok {
		return
	}
	var req services.ChargePatch
	if err := BindNestedOrFlat(c, "charge", &req); err != nil {
		badRequest(c, err)
		return
	}

	charge, err := h.contractService.UpdateCharge(c.Request.Context(), id, chargeID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"charge": charge.ToResponse()})
}

// @Summary Delete Charge
// @Description Charges cannot be deleted on their own; change the contract period count instead. Always 409 for an existing charge.
// @Tags Contracts
// @Param id path int true "Contract ID"
// @Param charge_id path int true "Charge ID"
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /contracts/{id}/charges/{charge_id} [delete]
func (h *ContractHandler) DeleteCharge(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	chargeID, ok := paramID(c, "charge_id")
	if !ok {
		return
	}
	if err := h.contractService.DeleteCharge(c.Request.Context(), id, chargeID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Contract Statement
// @Description Download the contract statement with every charge as PDF
// @Tags Contracts
// @Produce application/pdf
// @Param id path int true "Contract ID"
// @Success 200 {file} file "statement.pdf"
// @Router /contracts/{id}/statement.pdf [get]
func (h *ContractHandler) StatementPDF(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	buf, err := h.reportService.ContractStatementPDF(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=contract_%d_statement.pdf", id))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// @Summary Contract Charges CSV
// @Description Download the charges of a contract as CSV
// @Tags Contracts
// @Produce text/csv
// @Param id path int true "Contract ID"
// @Success 200 {file} file "charges.csv"
// @Router /contracts/{id}/charges.csv [get]
func (h *ContractHandler) ChargesCSV(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	buf, err := h.reportService.ContractChargesCSV(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=contract_%d_charges.csv", id))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// @Summary Contract Statement (HTML)
// @Description Render the contract statement as an HTML page
// @Tags Contracts
// @Produce text/html
// @Param id path int true "Contract ID"
// @Success 200 {string} string "statement"
// @Router /contracts/{id}/statement [get]
func (h *ContractHandler) Statement(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	html, err := h.reportService.RenderContractStatement(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}
