package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/prevalence-backend-go/internal/service"
	"github.com/jengzang/prevalence-backend-go/pkg/response"
)

// DashboardHandler handles HTTP requests for the dashboard views
type DashboardHandler struct {
	controller *service.Controller
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(controller *service.Controller) *DashboardHandler {
	return &DashboardHandler{controller: controller}
}

// GetConditions handles GET /api/v1/conditions
func (h *DashboardHandler) GetConditions(c *gin.Context) {
	conditions, active := h.controller.Conditions()
	response.Success(c, gin.H{
		"conditions": conditions,
		"active":     active,
	})
}

// GetDashboard handles GET /api/v1/dashboard
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	condition, cards, table, legend := h.controller.Dashboard()
	response.Success(c, gin.H{
		"condition":   condition,
		"score_cards": cards,
		"table":       table,
		"legend":      legend,
	})
}

// SelectCondition handles POST /api/v1/conditions/select
func (h *DashboardHandler) SelectCondition(c *gin.Context) {
	var req struct {
		Condition string `json:"condition" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Missing condition")
		return
	}

	if err := h.controller.Select(req.Condition); err != nil {
		response.NotFound(c, err.Error())
		return
	}

	condition, cards, table, legend := h.controller.Dashboard()
	response.Success(c, gin.H{
		"condition":   condition,
		"score_cards": cards,
		"table":       table,
		"legend":      legend,
	})
}

// NavigateTable handles POST /api/v1/table/page
func (h *DashboardHandler) NavigateTable(c *gin.Context) {
	var req struct {
		Action string `json:"action" binding:"required"`
		Page   int    `json:"page"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Missing page action")
		return
	}

	if err := h.controller.Navigate(req.Action, req.Page); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	_, _, table, _ := h.controller.Dashboard()
	response.Success(c, gin.H{"table": table})
}

// GetMapSVG handles GET /api/v1/map.svg
func (h *DashboardHandler) GetMapSVG(c *gin.Context) {
	c.Header("Content-Type", "image/svg+xml")
	c.String(http.StatusOK, h.controller.MapSVG())
}
