package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unity-app/unity-engine/internal/core/domain"
	"github.com/unity-app/unity-engine/internal/core/services"
)

type ConsistencyHandler struct {
	svc *services.ConsistencyService
}

func NewConsistencyHandler(svc *services.ConsistencyService) *ConsistencyHandler {
	return &ConsistencyHandler{svc: svc}
}

func (h *ConsistencyHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/goals/:id/consistency", h.GetGoalReport)
	r.GET("/consistency", h.GetOverview)
}

// GetGoalReport godoc
// @Summary      Consistency metrics and display for one goal
// @Description  Grace streak, recovery, momentum, month progress and flex days, with the badge, chips and encouragement to render.
// @Tags         consistency
// @Produce      json
// @Param        id          path   string true  "goal id"
// @Param        start_date  query  string false "series start, YYYY-MM-DD"
// @Success      200 {object} domain.ConsistencyReport
// @Failure      400 {object} errorResponse
// @Failure      403 {object} errorResponse
// @Failure      404 {object} errorResponse
// @Security     BearerAuth
// @Router       /goals/{id}/consistency [get]
func (h *ConsistencyHandler) GetGoalReport(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	start, ok := parseDateQuery(c, "start_date")
	if !ok {
		return
	}

	report, err := h.svc.Report(c.Request.Context(), domain.ReportInput{
		GoalID:    c.Param("id"),
		UserID:    userID,
		StartDate: start,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetOverview godoc
// @Summary   Consistency reports for every active goal
// @Tags      consistency
// @Produce   json
// @Success   200 {object} domain.ConsistencyOverview
// @Security  BearerAuth
// @Router    /consistency [get]
func (h *ConsistencyHandler) GetOverview(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	overview, err := h.svc.Overview(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}
