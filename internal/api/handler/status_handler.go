package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/service"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/pkg/response"
)

// StatusHandler 目录状态
type StatusHandler struct {
	catalogSvc service.CatalogService
}

// NewStatusHandler 创建 StatusHandler
func NewStatusHandler(catalogSvc service.CatalogService) *StatusHandler {
	return &StatusHandler{catalogSvc: catalogSvc}
}

// GetStatus 目录计数与存储状态
// GET /api/v1/status
func (h *StatusHandler) GetStatus(c *gin.Context) {
	status, err := h.catalogSvc.Status(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, status)
}
