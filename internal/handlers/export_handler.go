package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chenmq77/duckiki/internal/services"
)

type ExportHandler struct {
	exportSvc *services.ExportService
}

func NewExportHandler(exportSvc *services.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

var exportContentTypes = map[string]string{
	"csv":  "text/csv",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"pdf":  "application/pdf",
}

// @Summary Snapshot
// @Description The read-only dashboard snapshot: ROI summary, every expense and every activity
// @Tags Export
// @Produce json
// @Success 200 {object} services.Snapshot
// @Router /export/snapshot [get]
func (h *ExportHandler) Snapshot(c *gin.Context) {
	snap, err := h.exportSvc.Snapshot(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// @Summary Publish Snapshot
// @Description Write the snapshot to summary.json for the static site and keep a dated copy
// @Tags Export
// @Produce json
// @Success 200 {object} services.PublishResult
// @Router /export/json [post]
func (h *ExportHandler) PublishJSON(c *gin.Context) {
	result, err := h.exportSvc.PublishJSON(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// @Summary Export Report
// @Description Download the snapshot as a report file
// @Tags Export
// @Produce octet-stream
// @Param format query string false "csv, xlsx or pdf" default(csv)
// @Success 200 {file} file "report"
// @Failure 400 {object} map[string]string
// @Router /export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")

	var (
		data     []byte
		filename string
		err      error
	)
	switch format {
	case "csv":
		data, filename, err = h.exportSvc.ExportCSV(c.Request.Context())
	case "xlsx":
		data, filename, err = h.exportSvc.ExportXLSX(c.Request.Context())
	case "pdf":
		data, filename, err = h.exportSvc.ExportPDF(c.Request.Context())
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid format (csv, xlsx, pdf)"})
		return
	}
	if err != nil {
		respondError(c, fmt.Errorf("failed to generate %s: %w", format, err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, exportContentTypes[format], data)
}
