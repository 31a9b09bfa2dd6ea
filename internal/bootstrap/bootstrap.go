package bootstrap

import (
	"context"

	"go.uber.org/zap"

	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/config"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/repository"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/seed"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/service"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/pkg/database"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/pkg/redis"
)

// OpenStore 按 store.driver 打开记录存储；postgres 模式下执行迁移
// 返回的 closeFn 总是非 nil
func OpenStore(cfg *config.Config, logger *zap.Logger) (*repository.Repository, func(), error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		logger.Info("使用内存记录存储")
		return repository.NewMemoryRepository(), func() {}, nil
	}

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		return nil, func() {}, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, func() {}, err
	}
	closeFn := func() { _ = sqlDB.Close() }

	if err := database.RunMigrations(sqlDB, logger); err != nil {
		closeFn()
		return nil, func() {}, err
	}

	return repository.NewRepository(db), closeFn, nil
}

// OpenRedis 连接 Redis（可选：关闭或连接失败时返回 nil，调用方降级运行）
func OpenRedis(cfg *config.Config, logger *zap.Logger) *redis.Client {
	if !cfg.Redis.Enabled {
		logger.Info("Redis 未启用，图缓存与限流关闭")
		return nil
	}
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，图缓存与限流将不可用", zap.Error(err))
		return nil
	}
	return rdb
}

// GraphCacheOf nil 客户端转为 nil 接口，避免 typed-nil
func GraphCacheOf(rdb *redis.Client) service.GraphCache {
	if rdb == nil {
		return nil
	}
	return rdb
}

// LoadCatalog file 为空时使用内置示例目录
func LoadCatalog(file string) (*seed.Catalog, error) {
	if file == "" {
		return seed.Sample()
	}
	return seed.Load(file)
}

// SeedOnStartup seed.on_startup 开启且存储为空时导入目录；失败只告警
func SeedOnStartup(ctx context.Context, cfg *config.Config, catalog service.CatalogService, logger *zap.Logger) {
	if !cfg.Seed.OnStartup {
		return
	}
	c, err := LoadCatalog(cfg.Seed.File)
	if err != nil {
		logger.Warn("加载示例目录失败，跳过导入", zap.String("file", cfg.Seed.File), zap.Error(err))
		return
	}
	seeded, err := catalog.SeedIfEmpty(ctx, c)
	if err != nil {
		logger.Warn("启动导入失败", zap.Error(err))
		return
	}
	if seeded {
		logger.Info("已导入示例目录", zap.Int("courses", len(c.Courses)), zap.Int("modules", len(c.Modules)))
	}
}
