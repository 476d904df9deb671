package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/willowhealth/willow-api/internal/apierror"
	"github.com/willowhealth/willow-api/internal/models"
	"github.com/willowhealth/willow-api/internal/service"
	"github.com/willowhealth/willow-api/pkg/supabase"
)

// SymptomHandler handles symptom definition HTTP requests
type SymptomHandler struct {
	symptomService service.SymptomService
}

// NewSymptomHandler creates a new symptom handler
func NewSymptomHandler(symptomService service.SymptomService) *SymptomHandler {
	return &SymptomHandler{symptomService: symptomService}
}

// ListSymptoms returns the user's symptom definitions, seeding defaults
// on first use.
// GET /api/v1/symptoms
func (h *SymptomHandler) ListSymptoms(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	symptoms, err := h.symptomService.List(c.Request.Context(), userID)
	if err != nil {
		writeStoreError(c, err, "failed to list symptoms")
		return
	}

	c.JSON(http.StatusOK, gin.H{"symptoms": symptoms})
}

// CreateSymptom creates a custom symptom definition.
// POST /api/v1/symptoms
func (h *SymptomHandler) CreateSymptom(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req models.CreateSymptomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid request body"))
		return
	}

	symptom, err := h.symptomService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateSymptom) {
			requestID := apierror.GetRequestID(c)
			apierror.WriteProblem(c, apierror.NewConflictError(requestID,
				"A symptom named '"+req.Name+"' already exists"))
			return
		}
		writeStoreError(c, err, "failed to create symptom")
		return
	}

	c.JSON(http.StatusCreated, symptom)
}

// DeleteSymptom removes a symptom definition.
// DELETE /api/v1/symptoms/:id
func (h *SymptomHandler) DeleteSymptom(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	id, ok := pathUUID(c, "id", "symptom_id")
	if !ok {
		return
	}

	if err := h.symptomService.Delete(c.Request.Context(), userID, id); err != nil {
		requestID := apierror.GetRequestID(c)
		switch {
		case errors.Is(err, service.ErrNotOwned):
			apierror.WriteProblem(c, apierror.NewForbiddenError(requestID))
		case errors.Is(err, supabase.ErrUnavailable):
			writeStoreError(c, err, "failed to delete symptom")
		default:
			apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "symptom", id))
		}
		return
	}

	c.Status(http.StatusNoContent)
}
