package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/config"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/repository"
)

// ── 测试辅助 ──

func testConfig() *config.Config {
	return &config.Config{
		Graph: config.GraphConfig{DefaultMaxDepth: 5, MaxDepthLimit: 10, CacheTTL: time.Minute},
	}
}

func setupTestServices() (*Service, *mockCourseRepo, *mockModuleRepo, *mockCache) {
	courses := newMockCourseRepo()
	modules := newMockModuleRepo()
	seedMathCatalog(courses, modules)
	repo := &repository.Repository{Course: courses, Module: modules}
	cache := newMockCache()
	svc := NewService(testConfig(), repo, cache, zap.NewNop())
	return svc, courses, modules, cache
}
