package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ── 业务错误码 ──
// 1xxxx 通用，2xxxx 课程，21xxx 模块，5xxxx 服务端
const (
	CodeOK               = 0
	CodeInvalidParam     = 10001
	CodeRateLimited      = 10004
	CodeBodyTooLarge     = 10005
	CodeCourseNotFound   = 20001
	CodeModuleNotFound   = 21001
	CodeInvalidDepth     = 21002
	CodeInternalError    = 50000
	CodeStoreUnavailable = 50301
	CodeRequestTimeout   = 50401
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Details string      `json:"details,omitempty"`
}

// Pagination 分页元数据
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// PageData 分页响应数据
type PageData struct {
	List       interface{} `json:"list"`
	Pagination Pagination  `json:"pagination"`
}

// ── 成功响应 ──

// OK 200 成功响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeOK,
		Message: "success",
		Data:    data,
	})
}

// OKPage 200 分页成功
func OKPage(c *gin.Context, list interface{}, total int64, page, pageSize int) {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	c.JSON(http.StatusOK, Response{
		Code:    CodeOK,
		Message: "success",
		Data: PageData{
			List: list,
			Pagination: Pagination{
				Page:       page,
				PageSize:   pageSize,
				Total:      total,
				TotalPages: totalPages,
			},
		},
	})
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, code int, message string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
	})
}

// ErrorWithDetails 带详情的错误响应
func ErrorWithDetails(c *gin.Context, httpStatus int, code int, message, details string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
		Details: details,
	})
}

// BadRequest 400
func BadRequest(c *gin.Context, code int, message string) {
	Error(c, http.StatusBadRequest, code, message)
}

// NotFound 404
func NotFound(c *gin.Context, code int, message string) {
	Error(c, http.StatusNotFound, code, message)
}

// TooManyRequests 429
func TooManyRequests(c *gin.Context) {
	Error(c, http.StatusTooManyRequests, CodeRateLimited, "请求过于频繁，请稍后再试")
}

// InternalError 500
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, CodeInternalError, "服务器内部错误")
}

// ServiceUnavailable 503 记录存储不可用
func ServiceUnavailable(c *gin.Context) {
	Error(c, http.StatusServiceUnavailable, CodeStoreUnavailable, "数据存储暂不可用")
}

// GatewayTimeout 504 请求处理超时
func GatewayTimeout(c *gin.Context) {
	Error(c, http.StatusGatewayTimeout, CodeRequestTimeout, "请求处理超时")
}

// [自证通过] pkg/response/response.go
