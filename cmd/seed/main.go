// seed 将课程目录文件导入记录存储
//
//	go run ./cmd/seed -file catalog.yaml
//	go run ./cmd/seed -sample
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/config"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/bootstrap"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/seed"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/service"
	applogger "github.com/SamuelSmthSmth/ExeterCourseNodeGraph/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径")
	file := flag.String("file", "", "目录 YAML 文件")
	sample := flag.Bool("sample", false, "导入内置示例目录")
	flag.Parse()

	if (*file == "") == !*sample {
		fmt.Fprintln(os.Stderr, "必须且只能指定 -file 或 -sample 之一")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, *file, logger); err != nil {
		var verr *seed.ValidationError
		if errors.As(err, &verr) {
			for _, p := range verr.Problems {
				fmt.Fprintln(os.Stderr, "  -", p)
			}
		}
		logger.Fatal("导入失败", zap.Error(err))
	}
}

func run(cfg *config.Config, file string, logger *zap.Logger) error {
	catalog, err := bootstrap.LoadCatalog(file)
	if err != nil {
		return err
	}

	repo, closeStore, err := bootstrap.OpenStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// 导入后需要清理服务端的图缓存
	rdb := bootstrap.OpenRedis(cfg, logger)
	if rdb != nil {
		defer rdb.Close()
	}

	svc := service.NewService(cfg, repo, bootstrap.GraphCacheOf(rdb), logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := svc.Catalog.Import(ctx, catalog)
	if err != nil {
		return err
	}
	logger.Info("导入完成",
		zap.String("store", repo.Driver()),
		zap.Int("courses", result.Courses),
		zap.Int("modules", result.Modules),
	)
	return nil
}
