package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/dto"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/graph"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/model"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/repository"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/pkg/metrics"
)

// ── 课程模块业务错误 ──

var (
	ErrCourseNotFound     = errors.New("课程不存在")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// CourseService 课程业务接口
type CourseService interface {
	List(ctx context.Context, req *dto.CourseListRequest) ([]dto.CourseSummaryResponse, int64, error)
	GetByCode(ctx context.Context, code string) (*dto.CourseDetailResponse, error)
	// GetGraph 课程依赖图，命中缓存时不访问存储
	GetGraph(ctx context.Context, code string) (*dto.CourseGraphResponse, error)
	// ExportCurriculum 导出课程模块清单与先修关系为 Excel
	ExportCurriculum(ctx context.Context, code string) (*bytes.Buffer, string, error)
}

type courseService struct {
	repo    *repository.Repository
	builder *graph.Builder
	cache   *graphCache
	logger  *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, builder *graph.Builder, cache *graphCache, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, builder: builder, cache: cache, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *courseService) List(ctx context.Context, req *dto.CourseListRequest) ([]dto.CourseSummaryResponse, int64, error) {
	filter := repository.CourseFilter{
		Search:     strings.TrimSpace(req.Search),
		Department: strings.TrimSpace(req.Department),
	}
	if req.Degree != "" {
		d, err := model.ParseDegree(req.Degree)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
		}
		filter.Degree = d
	}

	courses, total, err := s.repo.Course.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		return nil, 0, storeError(s.logger, "列出课程失败", err)
	}

	result := make([]dto.CourseSummaryResponse, 0, len(courses))
	for i := range courses {
		c := &courses[i]
		result = append(result, dto.CourseSummaryResponse{
			CourseCode:          c.CourseCode,
			CourseName:          c.CourseName,
			Degree:              string(c.Degree),
			Department:          c.Department,
			Duration:            c.Duration,
			CoreModuleCount:     len(c.CoreModules),
			OptionalModuleCount: len(c.OptionalModules),
		})
	}
	return result, total, nil
}

// ────────────────────── GetByCode ──────────────────────

func (s *courseService) GetByCode(ctx context.Context, code string) (*dto.CourseDetailResponse, error) {
	course, err := s.repo.Course.GetByCode(ctx, code)
	if err != nil {
		return nil, storeError(s.logger, "查询课程失败", err, zap.String("code", code))
	}
	if course == nil {
		return nil, fmt.Errorf("%w: %s", ErrCourseNotFound, code)
	}

	modules, err := s.repo.Module.ListByCodes(ctx, course.ModuleCodes())
	if err != nil {
		return nil, storeError(s.logger, "查询课程模块失败", err, zap.String("code", code))
	}
	byCode := make(map[string]*model.Module, len(modules))
	for i := range modules {
		byCode[modules[i].ModuleCode] = &modules[i]
	}

	resp := &dto.CourseDetailResponse{
		CourseCode:        course.CourseCode,
		CourseName:        course.CourseName,
		Degree:            string(course.Degree),
		Department:        course.Department,
		Duration:          course.Duration,
		EntryRequirements: course.EntryRequirements,
		Description:       course.Description,
		URL:               course.URL,
		CoreModules:       courseModules(course.CoreModules, byCode),
		OptionalModules:   courseModules(course.OptionalModules, byCode),
		UpdatedAt:         course.UpdatedAt.Format(time.RFC3339),
	}

	counted := make(map[string]bool, len(course.CoreModules))
	for _, ref := range course.CoreModules {
		if m, ok := byCode[ref.ModuleCode]; ok && !counted[ref.ModuleCode] {
			counted[ref.ModuleCode] = true
			resp.TotalCredits += m.CreditValue
		}
	}
	return resp, nil
}

func courseModules(refs []model.ModuleRef, byCode map[string]*model.Module) []dto.CourseModuleResponse {
	out := make([]dto.CourseModuleResponse, 0, len(refs))
	for _, ref := range refs {
		item := dto.CourseModuleResponse{ModuleCode: ref.ModuleCode, Year: ref.Year}
		if m, ok := byCode[ref.ModuleCode]; ok {
			brief := dto.ModuleBriefFrom(m)
			item.Found = true
			item.Module = &brief
		}
		out = append(out, item)
	}
	return out
}

// ────────────────────── GetGraph ──────────────────────

func (s *courseService) GetGraph(ctx context.Context, code string) (*dto.CourseGraphResponse, error) {
	cacheKey := "course:" + code
	var cached dto.CourseGraphResponse
	if s.cache.get(ctx, "course", cacheKey, &cached) {
		return &cached, nil
	}

	cg, err := s.buildCourseGraph(ctx, code)
	if err != nil {
		return nil, err
	}

	resp := &dto.CourseGraphResponse{
		CourseCode: cg.Course.CourseCode,
		CourseName: cg.Course.CourseName,
		Nodes:      cg.Nodes,
		Edges:      cg.Edges,
		Stats:      dto.StatsOf(cg.Graph),
	}
	s.cache.set(ctx, cacheKey, resp)
	return resp, nil
}

func (s *courseService) buildCourseGraph(ctx context.Context, code string) (*graph.CourseGraph, error) {
	start := time.Now()
	cg, err := s.builder.CourseGraph(ctx, code)
	if err != nil {
		if errors.Is(err, graph.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCourseNotFound, code)
		}
		return nil, storeError(s.logger, "构建课程图失败", err, zap.String("code", code))
	}
	metrics.GraphBuildDuration.WithLabelValues("course").Observe(time.Since(start).Seconds())
	metrics.GraphNodes.WithLabelValues("course").Observe(float64(len(cg.Nodes)))

	s.logger.Debug("课程图构建完成",
		zap.String("code", code),
		zap.Int("nodes", len(cg.Nodes)),
		zap.Int("edges", len(cg.Edges)),
	)
	return cg, nil
}

// ═══════════════════════════════════════════════════════════
// ExportCurriculum 导出课程模块清单
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - Sheet "Modules"：每个模块一行，含学分、学年、学期、核心/选修与课程内先修
//   - Sheet "Prerequisites"：课程内的先修边，一条边一行
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *courseService) ExportCurriculum(ctx context.Context, code string) (*bytes.Buffer, string, error) {
	cg, err := s.buildCourseGraph(ctx, code)
	if err != nil {
		return nil, "", err
	}

	membership := make(map[string]graph.EdgeType)
	prereqsOf := make(map[string][]string)
	for _, e := range cg.Edges {
		switch e.Type {
		case graph.EdgeCore, graph.EdgeOptional:
			membership[e.Target] = e.Type
		case graph.EdgePrerequisite:
			prereqsOf[e.Target] = append(prereqsOf[e.Target], e.Source)
		}
	}

	titles := make(map[string]string)
	f := excelize.NewFile()
	defer f.Close()

	// ── Modules ──
	const modulesSheet = "Modules"
	idx, err := f.NewSheet(modulesSheet)
	if err != nil {
		s.logger.Error("创建工作表失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetCellValue(modulesSheet, "A1", fmt.Sprintf("%s (%s) - %s", cg.Course.CourseName, cg.Course.CourseCode, cg.Course.Degree))
	f.MergeCell(modulesSheet, "A1", "H1")
	f.SetCellStyle(modulesSheet, "A1", "A1", headerStyle)

	headers := []string{"Code", "Title", "Credits", "Year", "Semester", "Type", "Prerequisites", "Summary"}
	for i, h := range headers {
		f.SetCellValue(modulesSheet, cell(colName(i), 2), h)
	}
	f.SetCellStyle(modulesSheet, "A2", cell(colName(len(headers)-1), 2), headerStyle)
	for i, w := range []float64{12, 36, 9, 7, 12, 10, 24, 60} {
		col := colName(i)
		f.SetColWidth(modulesSheet, col, col, w)
	}

	row := 3
	for _, n := range cg.Nodes {
		if n.Type != graph.NodeModule {
			continue
		}
		data, ok := n.Data.(graph.ModuleNodeData)
		if !ok {
			continue
		}
		titles[n.ID] = data.ModuleTitle

		year := ""
		if data.CourseYear != nil {
			year = fmt.Sprint(*data.CourseYear)
		}
		f.SetCellValue(modulesSheet, cell("A", row), data.ModuleCode)
		f.SetCellValue(modulesSheet, cell("B", row), data.ModuleTitle)
		f.SetCellValue(modulesSheet, cell("C", row), data.CreditValue)
		f.SetCellValue(modulesSheet, cell("D", row), year)
		f.SetCellValue(modulesSheet, cell("E", row), string(data.Semester))
		f.SetCellValue(modulesSheet, cell("F", row), string(membership[n.ID]))
		f.SetCellValue(modulesSheet, cell("G", row), strings.Join(prereqsOf[n.ID], ", "))
		f.SetCellValue(modulesSheet, cell("H", row), data.SummaryOfContents)
		row++
	}

	// ── Prerequisites ──
	const prereqSheet = "Prerequisites"
	if _, err := f.NewSheet(prereqSheet); err != nil {
		s.logger.Error("创建工作表失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	for i, h := range []string{"Prerequisite", "Prerequisite Title", "Module", "Module Title"} {
		f.SetCellValue(prereqSheet, cell(colName(i), 1), h)
	}
	f.SetCellStyle(prereqSheet, "A1", "D1", headerStyle)
	f.SetColWidth(prereqSheet, "A", "D", 24)

	row = 2
	for _, e := range cg.EdgesOfType(graph.EdgePrerequisite) {
		f.SetCellValue(prereqSheet, cell("A", row), e.Source)
		f.SetCellValue(prereqSheet, cell("B", row), titles[e.Source])
		f.SetCellValue(prereqSheet, cell("C", row), e.Target)
		f.SetCellValue(prereqSheet, cell("D", row), titles[e.Target])
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("%s_curriculum.xlsx", cg.Course.CourseCode)
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
