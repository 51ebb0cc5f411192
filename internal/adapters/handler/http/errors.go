package http

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/unity-app/unity-engine/internal/adapters/handler/http/middleware"
	"github.com/unity-app/unity-engine/internal/core/domain"
)

const dateLayout = "2006-01-02"

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

var validationErrors = []error{
	domain.ErrGoalTitleEmpty,
	domain.ErrGoalInvalidUserID,
	domain.ErrGoalTitleTooLong,
	domain.ErrGoalDescTooLong,
	domain.ErrInvalidColor,
	domain.ErrInvalidDifficulty,
	domain.ErrInvalidDuration,
	domain.ErrInvalidTarget,
	domain.ErrInvalidCheckIn,
	domain.ErrNoteTooLong,
}

func handleError(c *gin.Context, err error) {
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			c.JSON(http.StatusBadRequest, errorResponse{Error: v.Error()})
			return
		}
	}

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusForbidden, errorResponse{Error: "unauthorized access"})

	case errors.Is(err, domain.ErrGoalNotFound) || errors.Is(err, domain.ErrCheckInNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: "resource not found"})

	case errors.Is(err, domain.ErrGoalConflict) || errors.Is(err, domain.ErrCheckInConflict):
		c.JSON(http.StatusConflict, errorResponse{
			Error:   "version conflict",
			Message: "data has been modified elsewhere, please sync",
		})

	case errors.Is(err, domain.ErrGoalArchived):
		c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})

	default:
		log.Printf("[ERROR] Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func requireUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "user context missing"})
	}
	return userID, ok
}

// parseDateQuery reads an optional YYYY-MM-DD query parameter.
func parseDateQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid " + name + " format, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}
