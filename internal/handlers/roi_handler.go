package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chenmq77/duckiki/internal/services"
)

type ROIHandler struct {
	roiService *services.ROIService
}

func NewROIHandler(roiService *services.ROIService) *ROIHandler {
	return &ROIHandler{roiService: roiService}
}

// MarketPriceRequest is the body of a market reference price update
type MarketPriceRequest struct {
	Price *float64 `json:"price"`
}

// @Summary ROI Summary
// @Description Paid and planned return on investment computed from every expense, charge and activity
// @Tags ROI
// @Produce json
// @Success 200 {object} roi.Snapshot
// @Router /roi/summary [get]
func (h *ROIHandler) Summary(c *gin.Context) {
	summary, err := h.roiService.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// @Summary Get Market Reference Price
// @Tags ROI
// @Produce json
// @Success 200 {object} services.MarketPrice
// @Router /roi/market-price [get]
func (h *ROIHandler) MarketPrice(c *gin.Context) {
	price, err := h.roiService.MarketPrice(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services.MarketPrice{Price: price})
}

// @Summary Update Market Reference Price
// @Description Set the price of one comparable session. The last write wins.
// @Tags ROI
// @Accept json
// @Produce json
// @Param request body MarketPriceRequest true "New price"
// @Success 200 {object} services.MarketPrice
// @Failure 400 {object} map[string]string
// @Router /roi/market-price [put]
func (h *ROIHandler) UpdateMarketPrice(c *gin.Context) {
	var req MarketPriceRequest
	if err := BindNestedOrFlat(c, "market_price", &req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Price == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price: is required", "field": "price"})
		return
	}

	price, err := h.roiService.SetMarketPrice(c.Request.Context(), *req.Price)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, price)
}
