package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/willowhealth/willow-api/internal/apierror"
	"github.com/willowhealth/willow-api/internal/models"
	"github.com/willowhealth/willow-api/internal/service"
)

// MoodHandler handles daily mood HTTP requests
type MoodHandler struct {
	moodService service.MoodService
}

// NewMoodHandler creates a new mood handler
func NewMoodHandler(moodService service.MoodService) *MoodHandler {
	return &MoodHandler{moodService: moodService}
}

// ListMoods returns the user's mood entries over a lookback window.
// GET /api/v1/mood?days=N
func (h *MoodHandler) ListMoods(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	days, ok := windowDays(c)
	if !ok {
		return
	}

	moods, err := h.moodService.List(c.Request.Context(), userID, days)
	if err != nil {
		writeStoreError(c, err, "failed to list moods")
		return
	}

	c.JSON(http.StatusOK, gin.H{"moods": moods})
}

// UpsertMood records the mood for a date (today when omitted).
// PUT /api/v1/mood
func (h *MoodHandler) UpsertMood(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req models.UpsertMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid request body"))
		return
	}

	entry, err := h.moodService.Upsert(c.Request.Context(), userID, &req)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		var field string
		switch {
		case errors.Is(err, service.ErrInvalidMood):
			field = "mood"
		case errors.Is(err, service.ErrInvalidDate):
			field = "date"
		default:
			writeStoreError(c, err, "failed to upsert mood")
			return
		}
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{{
			Field:   field,
			Message: err.Error(),
			Code:    "invalid_value",
		}}))
		return
	}

	c.JSON(http.StatusOK, entry)
}
