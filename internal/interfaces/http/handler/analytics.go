package handler

import (
	"github.com/gin-gonic/gin"

	analyticsapp "github.com/invoicedash/backend/internal/application/analytics"
)

// AnalyticsHandler handles dashboard analytics API endpoints
type AnalyticsHandler struct {
	BaseHandler
	dashboardService *analyticsapp.DashboardService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(dashboardService *analyticsapp.DashboardService) *AnalyticsHandler {
	return &AnalyticsHandler{
		dashboardService: dashboardService,
	}
}

// GetDashboard returns the analytics dashboard computed over all invoices.
// An optional selected_id focuses the risk assessment and insights on one invoice.
func (h *AnalyticsHandler) GetDashboard(c *gin.Context) {
	var req analyticsapp.DashboardRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.dashboardService.GetDashboard(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
