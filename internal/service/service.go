package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/config"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/graph"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/repository"
	pkgerrors "github.com/SamuelSmthSmth/ExeterCourseNodeGraph/pkg/errors"
)

// ErrInvalidFilter 列表过滤参数无法解析（学位 / 学期等枚举值）
var ErrInvalidFilter = errors.New("查询参数不合法")

// storeError 存储失败记 Error 日志并包装为 ErrStoreUnavailable
// 请求被取消或超时不算存储故障：原样返回，只记 Debug
func storeError(logger *zap.Logger, msg string, err error, fields ...zap.Field) error {
	fields = append(fields, zap.Error(err))
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		logger.Debug(msg, fields...)
		return err
	}
	logger.Error(msg, fields...)
	return pkgerrors.StoreUnavailable(err)
}

// GraphCache 图响应缓存，由 pkg/redis.Client 实现；为 nil 时不缓存
type GraphCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPrefix(ctx context.Context, prefix string) (int, error)
}

// Service 所有 Service 的聚合入口
type Service struct {
	Course  CourseService
	Module  ModuleService
	Catalog CatalogService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	cache GraphCache,
	logger *zap.Logger,
) *Service {
	builder := graph.NewBuilder(repository.NewRecordStore(repo))
	gc := newGraphCache(cache, cfg.Graph.CacheTTL, logger)
	return &Service{
		Course:  NewCourseService(repo, builder, gc, logger),
		Module:  NewModuleService(&cfg.Graph, repo, builder, gc, logger),
		Catalog: NewCatalogService(repo, gc, logger),
	}
}
