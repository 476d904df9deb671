package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/willowhealth/willow-api/internal/apierror"
	"github.com/willowhealth/willow-api/internal/models"
	"github.com/willowhealth/willow-api/internal/service"
)

// NutritionHandler handles nutrition entry HTTP requests
type NutritionHandler struct {
	nutritionService service.NutritionService
}

// NewNutritionHandler creates a new nutrition handler
func NewNutritionHandler(nutritionService service.NutritionService) *NutritionHandler {
	return &NutritionHandler{nutritionService: nutritionService}
}

// ListEntries returns the user's nutrition entries over a window.
// GET /api/v1/nutrition?days=N
func (h *NutritionHandler) ListEntries(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	days, ok := windowDays(c)
	if !ok {
		return
	}

	entries, err := h.nutritionService.List(c.Request.Context(), userID, days)
	if err != nil {
		writeStoreError(c, err, "failed to list nutrition entries")
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// CreateEntry logs a meal.
// POST /api/v1/nutrition
func (h *NutritionHandler) CreateEntry(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req models.CreateNutritionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid request body"))
		return
	}

	entry, err := h.nutritionService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		writeStoreError(c, err, "failed to create nutrition entry")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// DeleteEntry removes a nutrition entry.
// DELETE /api/v1/nutrition/:id
func (h *NutritionHandler) DeleteEntry(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	id, ok := pathUUID(c, "id", "entry_id")
	if !ok {
		return
	}

	if err := h.nutritionService.Delete(c.Request.Context(), userID, id); err != nil {
		writeStoreError(c, err, "failed to delete nutrition entry")
		return
	}

	c.Status(http.StatusNoContent)
}

// FitnessHandler handles fitness entry HTTP requests
type FitnessHandler struct {
	fitnessService service.FitnessService
}

// NewFitnessHandler creates a new fitness handler
func NewFitnessHandler(fitnessService service.FitnessService) *FitnessHandler {
	return &FitnessHandler{fitnessService: fitnessService}
}

// ListEntries returns the user's fitness entries over a window.
// GET /api/v1/fitness?days=N
func (h *FitnessHandler) ListEntries(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	days, ok := windowDays(c)
	if !ok {
		return
	}

	entries, err := h.fitnessService.List(c.Request.Context(), userID, days)
	if err != nil {
		writeStoreError(c, err, "failed to list fitness entries")
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// CreateEntry logs a workout.
// POST /api/v1/fitness
func (h *FitnessHandler) CreateEntry(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req models.CreateFitnessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid request body"))
		return
	}

	entry, err := h.fitnessService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		writeStoreError(c, err, "failed to create fitness entry")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// DeleteEntry removes a fitness entry.
// DELETE /api/v1/fitness/:id
func (h *FitnessHandler) DeleteEntry(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	id, ok := pathUUID(c, "id", "entry_id")
	if !ok {
		return
	}

	if err := h.fitnessService.Delete(c.Request.Context(), userID, id); err != nil {
		writeStoreError(c, err, "failed to delete fitness entry")
		return
	}

	c.Status(http.StatusNoContent)
}
