package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/dto"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/service"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/pkg/response"
)

// CourseHandler 课程模块 HTTP 处理器
type CourseHandler struct {
	courseSvc service.CourseService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(courseSvc service.CourseService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc}
}

// ListCourses 课程列表
// GET /api/v1/courses?search=&degree=&department=&page=&page_size=
func (h *CourseHandler) ListCourses(c *gin.Context) {
	var req dto.CourseListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParam, "参数校验失败")
		return
	}

	items, total, err := h.courseSvc.List(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OKPage(c, items, total, req.GetPage(), req.GetPageSize())
}

// GetCourse 课程详情
// GET /api/v1/courses/:code
func (h *CourseHandler) GetCourse(c *gin.Context) {
	code, ok := bindCode(c)
	if !ok {
		return
	}

	course, err := h.courseSvc.GetByCode(c.Request.Context(), code)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, course)
}

// GetCourseGraph 课程依赖图
// GET /api/v1/courses/:code/graph
func (h *CourseHandler) GetCourseGraph(c *gin.Context) {
	code, ok := bindCode(c)
	if !ok {
		return
	}

	g, err := h.courseSvc.GetGraph(c.Request.Context(), code)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, g)
}

// ExportCurriculum 导出课程模块清单
// GET /api/v1/courses/:code/export
func (h *CourseHandler) ExportCurriculum(c *gin.Context) {
	code, ok := bindCode(c)
	if !ok {
		return
	}

	buf, filename, err := h.courseSvc.ExportCurriculum(c.Request.Context(), code)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
