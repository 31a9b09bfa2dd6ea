package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/config"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/api/handler"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/api/middleware"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/pkg/metrics"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 为 nil 时限流降级放行
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))
	r.Use(middleware.Metrics())

	// ── 健康检查 / 指标 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	if cfg.RateLimit.Enabled && rdb != nil {
		v1.Use(middleware.RateLimit(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window, logger))
	}
	{
		v1.GET("/status", h.Status.GetStatus)

		// 课程模块
		courses := v1.Group("/courses")
		{
			courses.GET("", h.Course.ListCourses)
			courses.GET("/:code", h.Course.GetCourse)
			courses.GET("/:code/graph", h.Course.GetCourseGraph)
			courses.GET("/:code/export", h.Course.ExportCurriculum)
		}

		// 模块
		modules := v1.Group("/modules")
		{
			modules.GET("", h.Module.ListModules)
			modules.GET("/:code", h.Module.GetModule)
			modules.GET("/:code/prerequisites", h.Module.GetPrerequisiteChain)
		}
	}

	return r
}
