package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/config"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/dto"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/graph"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/model"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/repository"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/pkg/metrics"
)

// ── 模块业务错误 ──

var (
	ErrModuleNotFound = errors.New("模块不存在")
	ErrInvalidDepth   = errors.New("max_depth 超出允许范围")
)

// ModuleService 模块业务接口
type ModuleService interface {
	List(ctx context.Context, req *dto.ModuleListRequest) ([]dto.ModuleResponse, int64, error)
	// GetByCode 模块详情，附带存在的直接先修与直接后续模块
	GetByCode(ctx context.Context, code string) (*dto.ModuleDetailResponse, error)
	// GetPrerequisiteChain maxDepth 为 nil 时使用配置默认深度
	GetPrerequisiteChain(ctx context.Context, code string, maxDepth *int) (*dto.PrerequisiteChainResponse, error)
}

type moduleService struct {
	cfg     *config.GraphConfig
	repo    *repository.Repository
	builder *graph.Builder
	cache   *graphCache
	logger  *zap.Logger
}

// NewModuleService 创建 ModuleService 实例
func NewModuleService(cfg *config.GraphConfig, repo *repository.Repository, builder *graph.Builder, cache *graphCache, logger *zap.Logger) ModuleService {
	return &moduleService{cfg: cfg, repo: repo, builder: builder, cache: cache, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *moduleService) List(ctx context.Context, req *dto.ModuleListRequest) ([]dto.ModuleResponse, int64, error) {
	filter := repository.ModuleFilter{
		Search:      strings.TrimSpace(req.Search),
		CreditValue: req.CreditValue,
		Year:        req.Year,
	}
	if req.Semester != "" {
		sem, err := model.ParseSemester(req.Semester)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
		}
		filter.Semester = sem
	}

	modules, total, err := s.repo.Module.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		return nil, 0, storeError(s.logger, "列出模块失败", err)
	}

	result := make([]dto.ModuleResponse, 0, len(modules))
	for i := range modules {
		result = append(result, dto.ModuleFrom(&modules[i]))
	}
	return result, total, nil
}

// ────────────────────── GetByCode ──────────────────────

func (s *moduleService) GetByCode(ctx context.Context, code string) (*dto.ModuleDetailResponse, error) {
	module, err := s.repo.Module.GetByCode(ctx, code)
	if err != nil {
		return nil, storeError(s.logger, "查询模块失败", err, zap.String("code", code))
	}
	if module == nil {
		return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, code)
	}

	// 先修按声明顺序去重
	var declared []string
	seen := make(map[string]bool, len(module.Prerequisites))
	for _, p := range module.Prerequisites {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		declared = append(declared, p)
	}

	prereqs, err := s.repo.Module.ListByCodes(ctx, declared)
	if err != nil {
		return nil, storeError(s.logger, "查询先修模块失败", err, zap.String("code", code))
	}
	found := make(map[string]*model.Module, len(prereqs))
	for i := range prereqs {
		found[prereqs[i].ModuleCode] = &prereqs[i]
	}

	dependents, err := s.repo.Module.ListDependents(ctx, code)
	if err != nil {
		return nil, storeError(s.logger, "查询后续模块失败", err, zap.String("code", code))
	}

	resp := &dto.ModuleDetailResponse{
		ModuleResponse:       dto.ModuleFrom(module),
		PrerequisiteModules:  make([]dto.ModuleBriefResponse, 0, len(declared)),
		MissingPrerequisites: []string{},
		Dependents:           make([]dto.ModuleBriefResponse, 0, len(dependents)),
	}
	for _, p := range declared {
		if m, ok := found[p]; ok {
			resp.PrerequisiteModules = append(resp.PrerequisiteModules, dto.ModuleBriefFrom(m))
		} else {
			resp.MissingPrerequisites = append(resp.MissingPrerequisites, p)
		}
	}
	for i := range dependents {
		resp.Dependents = append(resp.Dependents, dto.ModuleBriefFrom(&dependents[i]))
	}
	return resp, nil
}

// ────────────────────── GetPrerequisiteChain ──────────────────────

func (s *moduleService) GetPrerequisiteChain(ctx context.Context, code string, maxDepth *int) (*dto.PrerequisiteChainResponse, error) {
	depth := s.cfg.DefaultMaxDepth
	if maxDepth != nil {
		if *maxDepth < 0 || *maxDepth > s.cfg.MaxDepthLimit {
			return nil, fmt.Errorf("%w: 0-%d，实际=%d", ErrInvalidDepth, s.cfg.MaxDepthLimit, *maxDepth)
		}
		depth = *maxDepth
	}

	cacheKey := fmt.Sprintf("chain:%s:%d", code, depth)
	var cached dto.PrerequisiteChainResponse
	if s.cache.get(ctx, "chain", cacheKey, &cached) {
		return &cached, nil
	}

	start := time.Now()
	cg, err := s.builder.PrerequisiteChain(ctx, code, depth)
	if err != nil {
		if errors.Is(err, graph.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, code)
		}
		return nil, storeError(s.logger, "解析先修链失败", err, zap.String("code", code), zap.Int("max_depth", depth))
	}
	metrics.GraphBuildDuration.WithLabelValues("chain").Observe(time.Since(start).Seconds())
	metrics.GraphNodes.WithLabelValues("chain").Observe(float64(len(cg.Nodes)))
	metrics.ChainLookups.Observe(float64(cg.Lookups))

	unresolved := cg.Unresolved
	if unresolved == nil {
		unresolved = []string{}
	}
	resp := &dto.PrerequisiteChainResponse{
		ModuleCode: cg.Root,
		MaxDepth:   cg.MaxDepth,
		Nodes:      cg.Nodes,
		Edges:      cg.Edges,
		Unresolved: unresolved,
		Stats:      dto.StatsOf(cg.Graph),
	}
	s.cache.set(ctx, cacheKey, resp)
	return resp, nil
}
