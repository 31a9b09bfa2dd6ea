package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/service"
	pkgerrors "github.com/SamuelSmthSmth/ExeterCourseNodeGraph/pkg/errors"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/pkg/response"
)

// statusClientClosedRequest 客户端已断开，响应不会被读取
const statusClientClosedRequest = 499

// codeMaxLen 课程/模块代码最大长度，与表结构 varchar(20) 一致
const codeMaxLen = 20

// bindCode 读取路径参数 :code，非法时写入 400 并返回 false
func bindCode(c *gin.Context) (string, bool) {
	code := c.Param("code")
	if code == "" || len(code) > codeMaxLen {
		response.BadRequest(c, response.CodeInvalidParam, "代码格式不合法")
		return "", false
	}
	return code, true
}

// handleServiceError 业务错误 → HTTP 响应；未识别的错误不向客户端暴露细节
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, response.CodeCourseNotFound, "课程不存在")
	case errors.Is(err, service.ErrModuleNotFound):
		response.NotFound(c, response.CodeModuleNotFound, "模块不存在")
	case errors.Is(err, service.ErrInvalidDepth):
		response.BadRequest(c, response.CodeInvalidDepth, err.Error())
	case errors.Is(err, service.ErrInvalidFilter):
		response.BadRequest(c, response.CodeInvalidParam, err.Error())
	case errors.Is(err, context.Canceled):
		c.AbortWithStatus(statusClientClosedRequest)
	case errors.Is(err, context.DeadlineExceeded):
		response.GatewayTimeout(c)
	case errors.Is(err, pkgerrors.ErrStoreUnavailable):
		_ = c.Error(err)
		response.ServiceUnavailable(c)
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
