package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/willowhealth/willow-api/internal/apierror"
	"github.com/willowhealth/willow-api/internal/logger"
	"github.com/willowhealth/willow-api/internal/service"
)

// InsightsHandler handles insight-related HTTP requests
type InsightsHandler struct {
	insightService service.InsightService
}

// NewInsightsHandler creates a new insights handler
func NewInsightsHandler(insightService service.InsightService) *InsightsHandler {
	return &InsightsHandler{insightService: insightService}
}

// GetInsights returns the narrative plus ranked insights for the
// authenticated user.
// GET /api/v1/insights?refresh=true
func (h *InsightsHandler) GetInsights(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	refresh := c.Query("refresh") == "true"

	response, err := h.insightService.GenerateInsights(c.Request.Context(), userID, refresh)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to generate insights", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetWeeklyInsights returns the template-based weekly insight list.
// GET /api/v1/insights/weekly
func (h *InsightsHandler) GetWeeklyInsights(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	insights, err := h.insightService.WeeklyInsights(c.Request.Context(), userID)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to generate weekly insights", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	c.JSON(http.StatusOK, gin.H{"insights": insights})
}

// GetWeekComparison returns this week vs last week.
// GET /api/v1/insights/week-comparison
func (h *InsightsHandler) GetWeekComparison(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	comparison, err := h.insightService.CompareWeeks(c.Request.Context(), userID)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to compare weeks", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	c.JSON(http.StatusOK, comparison)
}

// requireUser pulls the authenticated user id set by the auth
// middleware, writing a 401 problem when absent.
func requireUser(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
		return "", false
	}
	id, ok := userID.(string)
	if !ok || id == "" {
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
		return "", false
	}
	return id, true
}
