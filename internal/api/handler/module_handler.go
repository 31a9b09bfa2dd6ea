package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/dto"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/service"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/pkg/response"
)

// ModuleHandler 模块 HTTP 处理器
type ModuleHandler struct {
	moduleSvc service.ModuleService
}

// NewModuleHandler 创建 ModuleHandler
func NewModuleHandler(moduleSvc service.ModuleService) *ModuleHandler {
	return &ModuleHandler{moduleSvc: moduleSvc}
}

// ListModules 模块列表
// GET /api/v1/modules?search=&credit_value=&year=&semester=&page=&page_size=
func (h *ModuleHandler) ListModules(c *gin.Context) {
	var req dto.ModuleListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParam, "参数校验失败")
		return
	}

	items, total, err := h.moduleSvc.List(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OKPage(c, items, total, req.GetPage(), req.GetPageSize())
}

// GetModule 模块详情
// GET /api/v1/modules/:code
func (h *ModuleHandler) GetModule(c *gin.Context) {
	code, ok := bindCode(c)
	if !ok {
		return
	}

	module, err := h.moduleSvc.GetByCode(c.Request.Context(), code)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, module)
}

// GetPrerequisiteChain 先修链
// GET /api/v1/modules/:code/prerequisites?max_depth=N
func (h *ModuleHandler) GetPrerequisiteChain(c *gin.Context) {
	code, ok := bindCode(c)
	if !ok {
		return
	}

	var req dto.PrerequisiteChainRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidDepth, "max_depth 必须为整数")
		return
	}

	chain, err := h.moduleSvc.GetPrerequisiteChain(c.Request.Context(), code, req.MaxDepth)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, chain)
}
