package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/dto"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/repository"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/seed"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/pkg/metrics"
)

// CatalogService 目录导入与状态
type CatalogService interface {
	// Import 在一个事务内先写模块后写课程，完成后清理图缓存
	Import(ctx context.Context, catalog *seed.Catalog) (*dto.ImportResult, error)
	// SeedIfEmpty 存储中没有任何课程与模块时导入 catalog，返回是否执行了导入
	SeedIfEmpty(ctx context.Context, catalog *seed.Catalog) (bool, error)
	Status(ctx context.Context) (*dto.StatusResponse, error)
}

type catalogService struct {
	repo   *repository.Repository
	cache  *graphCache
	logger *zap.Logger
}

// NewCatalogService 创建 CatalogService 实例
func NewCatalogService(repo *repository.Repository, cache *graphCache, logger *zap.Logger) CatalogService {
	return &catalogService{repo: repo, cache: cache, logger: logger}
}

func (s *catalogService) Import(ctx context.Context, catalog *seed.Catalog) (*dto.ImportResult, error) {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		for i := range catalog.Modules {
			if err := tx.Module.Upsert(ctx, &catalog.Modules[i]); err != nil {
				return fmt.Errorf("写入模块 %s 失败: %w", catalog.Modules[i].ModuleCode, err)
			}
		}
		for i := range catalog.Courses {
			if err := tx.Course.Upsert(ctx, &catalog.Courses[i]); err != nil {
				return fmt.Errorf("写入课程 %s 失败: %w", catalog.Courses[i].CourseCode, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, storeError(s.logger, "导入目录失败", err)
	}

	metrics.CatalogImportedTotal.WithLabelValues("module").Add(float64(len(catalog.Modules)))
	metrics.CatalogImportedTotal.WithLabelValues("course").Add(float64(len(catalog.Courses)))
	s.cache.invalidate(ctx)

	s.logger.Info("目录导入完成",
		zap.Int("modules", len(catalog.Modules)),
		zap.Int("courses", len(catalog.Courses)),
	)
	return &dto.ImportResult{Courses: len(catalog.Courses), Modules: len(catalog.Modules)}, nil
}

func (s *catalogService) SeedIfEmpty(ctx context.Context, catalog *seed.Catalog) (bool, error) {
	status, err := s.Status(ctx)
	if err != nil {
		return false, err
	}
	if status.Courses > 0 || status.Modules > 0 {
		s.logger.Info("存储非空，跳过示例数据导入",
			zap.Int64("courses", status.Courses),
			zap.Int64("modules", status.Modules),
		)
		return false, nil
	}
	if _, err := s.Import(ctx, catalog); err != nil {
		return false, err
	}
	return true, nil
}

func (s *catalogService) Status(ctx context.Context) (*dto.StatusResponse, error) {
	courses, err := s.repo.Course.Count(ctx)
	if err != nil {
		return nil, storeError(s.logger, "统计课程失败", err)
	}
	modules, err := s.repo.Module.Count(ctx)
	if err != nil {
		return nil, storeError(s.logger, "统计模块失败", err)
	}
	return &dto.StatusResponse{
		Store:        s.repo.Driver(),
		CacheEnabled: s.cache.enabled(),
		Courses:      courses,
		Modules:      modules,
	}, nil
}
