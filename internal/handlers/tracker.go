package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/willowhealth/willow-api/internal/apierror"
	"github.com/willowhealth/willow-api/internal/logger"
	"github.com/willowhealth/willow-api/internal/service"
)

const (
	defaultWindowDays = 30
	maxWindowDays     = 365
)

// TrackerHandler handles tracker summary HTTP requests
type TrackerHandler struct {
	trackerService service.TrackerService
}

// NewTrackerHandler creates a new tracker handler
func NewTrackerHandler(trackerService service.TrackerService) *TrackerHandler {
	return &TrackerHandler{trackerService: trackerService}
}

// GetSummary returns the derived tracker view over a lookback window.
// GET /api/v1/tracker/summary?days=N
func (h *TrackerHandler) GetSummary(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	days, ok := windowDays(c)
	if !ok {
		return
	}

	summary, err := h.trackerService.Summarize(c.Request.Context(), userID, days)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to summarize tracker data", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	c.JSON(http.StatusOK, summary)
}

// windowDays parses the days query parameter, defaulting to 30 and
// rejecting out-of-range values with a 400 problem.
func windowDays(c *gin.Context) (int, bool) {
	raw := c.Query("days")
	if raw == "" {
		return defaultWindowDays, true
	}

	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 || days > maxWindowDays {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{{
			Field:   "days",
			Message: "must be an integer between 1 and 365",
			Code:    "out_of_range",
		}}))
		return 0, false
	}
	return days, true
}
