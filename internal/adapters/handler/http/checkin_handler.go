package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/unity-app/unity-engine/internal/core/services"
)

const maxListRange = 366 * 24 * time.Hour

type CheckInHandler struct {
	svc *services.CheckInService
}

func NewCheckInHandler(svc *services.CheckInService) *CheckInHandler {
	return &CheckInHandler{
		svc: svc,
	}
}

type createCheckInRequest struct {
	GoalID      string    `json:"goal_id" binding:"required"`
	CompletedAt time.Time `json:"completed_at"`
	Note        string    `json:"note"`
}

func (h *CheckInHandler) RegisterRoutes(router *gin.RouterGroup) {
	checkIns := router.Group("/checkins")
	{
		checkIns.POST("", h.Create)
		checkIns.GET("", h.ListByGoal)
		checkIns.GET("/sync", h.Sync)
		checkIns.DELETE("/:id", h.Delete)
	}
}

// Create godoc
// @Summary  Record a completion
// @Tags     checkins
// @Accept   json
// @Produce  json
// @Param    body body createCheckInRequest true "completed_at defaults to now"
// @Success  201 {object} domain.CheckIn
// @Failure  400 {object} errorResponse
// @Failure  403 {object} errorResponse
// @Security BearerAuth
// @Router   /checkins [post]
func (h *CheckInHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req createCheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	checkIn, err := h.svc.CheckIn(c.Request.Context(), services.CreateCheckInInput{
		GoalID:      req.GoalID,
		UserID:      userID,
		CompletedAt: req.CompletedAt,
		Note:        req.Note,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, checkIn)
}

func (h *CheckInHandler) ListByGoal(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	goalID := c.Query("goal_id")
	if goalID == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "goal_id is required"})
		return
	}

	from, ok := parseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "to")
	if !ok {
		return
	}

	if to.IsZero() {
		to = time.Now().UTC()
	} else {
		to = to.Add(24*time.Hour - time.Nanosecond)
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	if from.After(to) {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "from cannot be after to"})
		return
	}
	if to.Sub(from) > maxListRange {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "date range too large, max 1 year allowed"})
		return
	}

	list, err := h.svc.ListByGoalID(c.Request.Context(), goalID, userID, from, to)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *CheckInHandler) Sync(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var since time.Time
	if raw := c.Query("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid since format, use RFC3339"})
			return
		}
		since = parsed
	}

	changes, err := h.svc.GetDelta(c.Request.Context(), userID, since)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"changes":   changes,
		"timestamp": time.Now().UTC(),
	})
}

func (h *CheckInHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.svc.Undo(c.Request.Context(), c.Param("id"), userID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
