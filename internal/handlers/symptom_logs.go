package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/willowhealth/willow-api/internal/apierror"
	"github.com/willowhealth/willow-api/internal/models"
	"github.com/willowhealth/willow-api/internal/service"
)

// SymptomLogHandler handles symptom log HTTP requests
type SymptomLogHandler struct {
	logService service.SymptomLogService
}

// NewSymptomLogHandler creates a new symptom log handler
func NewSymptomLogHandler(logService service.SymptomLogService) *SymptomLogHandler {
	return &SymptomLogHandler{logService: logService}
}

// ListLogs returns the user's symptom logs over a lookback window.
// GET /api/v1/symptom-logs?days=N
func (h *SymptomLogHandler) ListLogs(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	days, ok := windowDays(c)
	if !ok {
		return
	}

	logs, err := h.logService.List(c.Request.Context(), userID, days)
	if err != nil {
		writeStoreError(c, err, "failed to list symptom logs")
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

// CreateLog records a symptom occurrence.
// POST /api/v1/symptom-logs
func (h *SymptomLogHandler) CreateLog(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req models.LogSymptomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid request body"))
		return
	}

	log, err := h.logService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.writeLogError(c, err, "")
		return
	}

	c.JSON(http.StatusCreated, log)
}

// UpdateLog edits an existing symptom log.
// PUT /api/v1/symptom-logs/:id
func (h *SymptomLogHandler) UpdateLog(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req models.UpdateSymptomLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid request body"))
		return
	}

	id, ok := pathUUID(c, "id", "log_id")
	if !ok {
		return
	}

	log, err := h.logService.Update(c.Request.Context(), userID, id, &req)
	if err != nil {
		h.writeLogError(c, err, id)
		return
	}

	c.JSON(http.StatusOK, log)
}

// DeleteLog removes a symptom log.
// DELETE /api/v1/symptom-logs/:id
func (h *SymptomLogHandler) DeleteLog(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	id, ok := pathUUID(c, "id", "log_id")
	if !ok {
		return
	}

	if err := h.logService.Delete(c.Request.Context(), userID, id); err != nil {
		h.writeLogError(c, err, id)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *SymptomLogHandler) writeLogError(c *gin.Context, err error, id string) {
	requestID := apierror.GetRequestID(c)
	switch {
	case errors.Is(err, service.ErrInvalidSeverity):
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{{
			Field:   "severity",
			Message: err.Error(),
			Code:    "out_of_range",
		}}))
	case errors.Is(err, service.ErrNotOwned):
		apierror.WriteProblem(c, apierror.NewForbiddenError(requestID))
	default:
		writeStoreError(c, err, "symptom log operation failed")
	}
}
