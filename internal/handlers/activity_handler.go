package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chenmq77/duckiki/internal/models"
	"github.com/chenmq77/duckiki/internal/services"
)

type ActivityHandler struct {
	activityService *services.ActivityService
}

func NewActivityHandler(activityService *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// @Summary List Activities
// @Description Get a paginated list of logged activities, newest first
// @Tags Activities
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param type query string false "Filter by activity type"
// @Param from query string false "Earliest date (YYYY-MM-DD)"
// @Param to query string false "Latest date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Router /activities [get]
func (h *ActivityHandler) Index(c *gin.Context) {
	query := listQuery(c, "type", "from", "to")

	activities, total, err := h.activityService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.ActivityResponse, 0, len(activities))
	for i := range activities {
		responses = append(responses, activities[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"activities": responses, "pagination": pagination(query, total)})
}

// @Summary Get Activity
// @Tags Activities
// @Produce json
// @Param id path int true "Activity ID"
// @Success 200 {object} models.ActivityResponse
// @Failure 404 {object} map[string]string
// @Router /activities/{id} [get]
func (h *ActivityHandler) Show(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	activity, err := h.activityService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activity": activity.ToResponse()})
}

// @Summary Log Activity
// @Description Record a workout. Its weight is computed from the activity type parameters.
// @Tags Activities
// @Accept json
// @Produce json
// @Param request body services.ActivityInput true "Activity"
// @Success 201 {object} models.ActivityResponse
// @Failure 400 {object} map[string]string
// @Router /activities [post]
func (h *ActivityHandler) Create(c *gin.Context) {
	var req services.ActivityInput
	if err := BindNestedOrFlat(c, "activity", &req); err != nil {
		badRequest(c, err)
		return
	}

	activity, err := h.activityService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"activity": activity.ToResponse()})
}

// @Summary Update Activity
// @Description Change an activity. The weight is recomputed only when a weight input changes.
// @Tags Activities
// @Accept json
// @Produce json
// @Param id path int true "Activity ID"
// @Param request body services.ActivityPatch true "Fields to change"
// @Success 200 {object} models.ActivityResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /activities/{id} [patch]
func (h *ActivityHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req services.ActivityPatch
	if err := BindNestedOrFlat(c, "activity", &req); err != nil {
		badRequest(c, err)
		return
	}

	activity, err := h.activityService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activity": activity.ToResponse()})
}

// @Summary Delete Activity
// @Tags Activities
// @Param id path int true "Activity ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /activities/{id} [delete]
func (h *ActivityHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.activityService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "activity deleted"})
}
