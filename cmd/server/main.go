package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/config"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/api/handler"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/api/router"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/bootstrap"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/service"
	applogger "github.com/SamuelSmthSmth/ExeterCourseNodeGraph/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径（默认查找 ./config/config.yaml 或 ./config.yaml）")
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("store", cfg.Store.Driver),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 打开记录存储（postgres 模式下自动迁移）
	repo, closeStore, err := bootstrap.OpenStore(cfg, logger)
	if err != nil {
		logger.Fatal("记录存储初始化失败", zap.Error(err))
	}
	defer closeStore()

	// 4. 连接 Redis（可选：失败时降级运行，不中断启动）
	rdb := bootstrap.OpenRedis(cfg, logger)
	if rdb != nil {
		defer rdb.Close()
	}

	// 5. 依赖注入: Repository → Service → Handler
	svc := service.NewService(cfg, repo, bootstrap.GraphCacheOf(rdb), logger)
	h := handler.NewHandler(svc)

	// 6. 可选的示例数据导入
	bootstrap.SeedOnStartup(context.Background(), cfg, svc.Catalog, logger)

	// 7. 初始化路由
	engine := router.Setup(cfg, h, rdb, logger)

	// 8. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 9. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	logger.Info("服务器已关闭")
}
