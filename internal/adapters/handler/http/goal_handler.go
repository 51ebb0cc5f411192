package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unity-app/unity-engine/internal/core/services"
)

type GoalHandler struct {
	svc *services.GoalService
}

func NewGoalHandler(svc *services.GoalService) *GoalHandler {
	return &GoalHandler{
		svc: svc,
	}
}

type createGoalRequest struct {
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description"`
	Color           string `json:"color"`
	Icon            string `json:"icon"`
	DurationMinutes int    `json:"duration_minutes"`
	Difficulty      string `json:"difficulty"`
	MonthlyTarget   int    `json:"monthly_target"`
}

type updateGoalRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Color           string `json:"color"`
	Icon            string `json:"icon"`
	DurationMinutes *int   `json:"duration_minutes"`
	Difficulty      string `json:"difficulty"`
	MonthlyTarget   *int   `json:"monthly_target"`
	Version         int    `json:"version"`
}

func (h *GoalHandler) RegisterRoutes(router *gin.RouterGroup) {
	goals := router.Group("/goals")
	{
		goals.POST("", h.Create)
		goals.GET("", h.List)
		goals.GET("/:id", h.Get)
		goals.PUT("/:id", h.Update)
		goals.POST("/:id/archive", h.Archive)
		goals.DELETE("/:id", h.Delete)
	}
}

func (h *GoalHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req createGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	goal, err := h.svc.Create(c.Request.Context(), services.CreateGoalInput{
		UserID:          userID,
		Title:           req.Title,
		Description:     req.Description,
		Color:           req.Color,
		Icon:            req.Icon,
		DurationMinutes: req.DurationMinutes,
		Difficulty:      req.Difficulty,
		MonthlyTarget:   req.MonthlyTarget,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, goal)
}

func (h *GoalHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	list, err := h.svc.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *GoalHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	goal, err := h.svc.Get(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) Update(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req updateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	goal, err := h.svc.Update(c.Request.Context(), services.UpdateGoalInput{
		ID:              c.Param("id"),
		UserID:          userID,
		Title:           req.Title,
		Description:     req.Description,
		Color:           req.Color,
		Icon:            req.Icon,
		DurationMinutes: req.DurationMinutes,
		Difficulty:      req.Difficulty,
		MonthlyTarget:   req.MonthlyTarget,
		Version:         req.Version,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) Archive(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	goal, err := h.svc.Archive(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
