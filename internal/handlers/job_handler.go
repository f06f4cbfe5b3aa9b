package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chenmq77/duckiki/internal/models"
	"github.com/chenmq77/duckiki/internal/services"
)

type JobHandler struct {
	jobService *services.JobService
}

func NewJobHandler(jobSvc *services.JobService) *JobHandler {
	return &JobHandler{
		jobService: jobSvc,
	}
}

// Status returns the current worker status
// @Summary Get background job status
// @Description Statistics about background jobs (active, completed, failed, queue length) with the last run of each job
// @Tags Jobs
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /jobs/status [get]
func (h *JobHandler) Status(c *gin.Context) {
	status := h.jobService.GetStatus()
	c.JSON(http.StatusOK, status)
}

// SettleDue runs the due-charge settlement immediately
// @Summary Settle due charges
// @Description Mark every pending charge dated today or earlier as paid
// @Tags Jobs
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /jobs/settle [post]
func (h *JobHandler) SettleDue(c *gin.Context) {
	settled, asOf, err := h.jobService.SettleNow(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settled": settled, "as_of": models.FormatDate(asOf)})
}
