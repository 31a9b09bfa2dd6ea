package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/model"
)

// ── 内存实现：示例数据模式与单元测试使用，读多写少 ──

// memoryCourseRepo CourseRepository 的内存实现
type memoryCourseRepo struct {
	mu      sync.RWMutex
	courses map[string]model.Course
}

// NewMemoryCourseRepo 创建内存 CourseRepository
func NewMemoryCourseRepo() CourseRepository {
	return &memoryCourseRepo{courses: make(map[string]model.Course)}
}

func (r *memoryCourseRepo) GetByCode(_ context.Context, code string) (*model.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.courses[code]
	if !ok {
		return nil, nil
	}
	c = cloneCourse(c)
	return &c, nil
}

func (r *memoryCourseRepo) List(_ context.Context, filter CourseFilter, offset, limit int) ([]model.Course, int64, error) {
	r.mu.RLock()
	matched := make([]model.Course, 0, len(r.courses))
	for _, c := range r.courses {
		if courseMatches(&c, filter) {
			matched = append(matched, cloneCourse(c))
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CourseName != matched[j].CourseName {
			return matched[i].CourseName < matched[j].CourseName
		}
		return matched[i].CourseCode < matched[j].CourseCode
	})
	return page(matched, offset, limit), int64(len(matched)), nil
}

func (r *memoryCourseRepo) Upsert(_ context.Context, course *model.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	if old, ok := r.courses[course.CourseCode]; ok {
		course.CreatedAt = old.CreatedAt
	} else {
		course.CreatedAt = now
	}
	course.UpdatedAt = now
	r.courses[course.CourseCode] = cloneCourse(*course)
	return nil
}

func (r *memoryCourseRepo) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.courses)), nil
}

func courseMatches(c *model.Course, f CourseFilter) bool {
	if f.Search != "" &&
		!containsFold(c.CourseCode, f.Search) &&
		!containsFold(c.CourseName, f.Search) &&
		!containsFold(c.Department, f.Search) {
		return false
	}
	if f.Degree != "" && c.Degree != f.Degree {
		return false
	}
	if f.Department != "" && !strings.EqualFold(c.Department, f.Department) {
		return false
	}
	return true
}

// memoryModuleRepo ModuleRepository 的内存实现
type memoryModuleRepo struct {
	mu      sync.RWMutex
	modules map[string]model.Module
}

// NewMemoryModuleRepo 创建内存 ModuleRepository
func NewMemoryModuleRepo() ModuleRepository {
	return &memoryModuleRepo{modules: make(map[string]model.Module)}
}

func (r *memoryModuleRepo) GetByCode(_ context.Context, code string) (*model.Module, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.modules[code]
	if !ok {
		return nil, nil
	}
	m = cloneModule(m)
	return &m, nil
}

func (r *memoryModuleRepo) ListByCodes(_ context.Context, codes []string) ([]model.Module, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]struct{}, len(codes))
	var out []model.Module
	for _, code := range codes {
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		if m, ok := r.modules[code]; ok {
			out = append(out, cloneModule(m))
		}
	}
	sortModules(out)
	return out, nil
}

func (r *memoryModuleRepo) ListDependents(_ context.Context, code string) ([]model.Module, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.Module
	for _, m := range r.modules {
		for _, p := range m.Prerequisites {
			if p == code {
				out = append(out, cloneModule(m))
				break
			}
		}
	}
	sortModules(out)
	return out, nil
}

func (r *memoryModuleRepo) List(_ context.Context, filter ModuleFilter, offset, limit int) ([]model.Module, int64, error) {
	r.mu.RLock()
	matched := make([]model.Module, 0, len(r.modules))
	for _, m := range r.modules {
		if moduleMatches(&m, filter) {
			matched = append(matched, cloneModule(m))
		}
	}
	r.mu.RUnlock()

	sortModules(matched)
	return page(matched, offset, limit), int64(len(matched)), nil
}

func (r *memoryModuleRepo) Upsert(_ context.Context, module *model.Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	if old, ok := r.modules[module.ModuleCode]; ok {
		module.CreatedAt = old.CreatedAt
	} else {
		module.CreatedAt = now
	}
	module.UpdatedAt = now
	r.modules[module.ModuleCode] = cloneModule(*module)
	return nil
}

func (r *memoryModuleRepo) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.modules)), nil
}

func moduleMatches(m *model.Module, f ModuleFilter) bool {
	if f.Search != "" && !containsFold(m.ModuleCode, f.Search) && !containsFold(m.ModuleTitle, f.Search) {
		return false
	}
	if f.CreditValue > 0 && m.CreditValue != f.CreditValue {
		return false
	}
	if f.Year > 0 && (m.CourseYear == nil || *m.CourseYear != f.Year) {
		return false
	}
	if f.Semester != "" && m.Semester != f.Semester {
		return false
	}
	return true
}

// ── 辅助函数 ──

func sortModules(ms []model.Module) {
	sort.Slice(ms, func(i, j int) bool { return ms[i].ModuleCode < ms[j].ModuleCode })
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// page 按 offset/limit 截取，limit <= 0 表示不限制
func page[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// cloneCourse 复制切片与指针字段，调用方修改返回值不影响存储
func cloneCourse(c model.Course) model.Course {
	c.CoreModules = cloneRefs(c.CoreModules)
	c.OptionalModules = cloneRefs(c.OptionalModules)
	return c
}

func cloneRefs(refs []model.ModuleRef) []model.ModuleRef {
	out := append(refs[:0:0], refs...)
	for i := range out {
		if out[i].Year != nil {
			y := *out[i].Year
			out[i].Year = &y
		}
	}
	return out
}

func cloneModule(m model.Module) model.Module {
	m.IntendedLearningOutcomes = append(m.IntendedLearningOutcomes[:0:0], m.IntendedLearningOutcomes...)
	m.AssessmentMethods = append(m.AssessmentMethods[:0:0], m.AssessmentMethods...)
	m.Prerequisites = append(m.Prerequisites[:0:0], m.Prerequisites...)
	m.Corequisites = append(m.Corequisites[:0:0], m.Corequisites...)
	if m.CourseYear != nil {
		y := *m.CourseYear
		m.CourseYear = &y
	}
	return m
}
