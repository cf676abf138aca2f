package handler

import (
	"net/http"

	"quotepanel/internal/service"
	"quotepanel/pkg/response"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/dashboard", h.GetSummary)
}

// GetSummary returns the landing screen counters
// @Summary      Dashboard summary
// @Description  Returns today's budget count, client/product/order totals and the latest quotes
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  response.Response{data=service.DashboardSummary}
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.dashboardService.Summary(c.Request.Context())))
}
