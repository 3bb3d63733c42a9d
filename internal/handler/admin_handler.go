package handler

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/prevalence-backend-go/internal/service"
	"github.com/jengzang/prevalence-backend-go/pkg/response"
)

// AdminHandler handles administrative requests
type AdminHandler struct {
	deriver    *service.DeriveService
	controller *service.Controller
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(deriver *service.DeriveService, controller *service.Controller) *AdminHandler {
	return &AdminHandler{deriver: deriver, controller: controller}
}

// Rebuild handles POST /api/v1/admin/rebuild: re-runs the offline
// pipeline in-process and reloads the controller with the new dataset.
func (h *AdminHandler) Rebuild(c *gin.Context) {
	ds, err := h.deriver.Run()
	if err != nil {
		log.Printf("Rebuild failed: %v", err)
		response.InternalError(c, "Failed to rebuild dataset")
		return
	}

	if err := h.controller.Load(ds); err != nil {
		log.Printf("Reload failed: %v", err)
		response.InternalError(c, "Failed to reload dataset")
		return
	}

	response.Success(c, gin.H{
		"conditions": len(ds.ConditionTotals),
		"practices":  len(ds.PracticeInfo),
	})
}
