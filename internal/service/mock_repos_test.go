package service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/model"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/repository"
)

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses map[string]*model.Course
	err     error
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[string]*model.Course)}
}

func (m *mockCourseRepo) GetByCode(_ context.Context, code string) (*model.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	if c, ok := m.courses[code]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (m *mockCourseRepo) List(_ context.Context, filter repository.CourseFilter, offset, limit int) ([]model.Course, int64, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	var result []model.Course
	for _, c := range m.courses {
		if filter.Degree != "" && c.Degree != filter.Degree {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(c.CourseName), strings.ToLower(filter.Search)) {
			continue
		}
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CourseCode < result[j].CourseCode })
	total := int64(len(result))
	if offset >= len(result) {
		return []model.Course{}, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockCourseRepo) Upsert(_ context.Context, course *model.Course) error {
	if m.err != nil {
		return m.err
	}
	cp := *course
	m.courses[course.CourseCode] = &cp
	return nil
}

func (m *mockCourseRepo) Count(_ context.Context) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return int64(len(m.courses)), nil
}

// ── Mock ModuleRepository ──

type mockModuleRepo struct {
	modules map[string]*model.Module
	err     error
	lookups int
}

func newMockModuleRepo() *mockModuleRepo {
	return &mockModuleRepo{modules: make(map[string]*model.Module)}
}

func (m *mockModuleRepo) GetByCode(_ context.Context, code string) (*model.Module, error) {
	m.lookups++
	if m.err != nil {
		return nil, m.err
	}
	if mod, ok := m.modules[code]; ok {
		cp := *mod
		return &cp, nil
	}
	return nil, nil
}

func (m *mockModuleRepo) ListByCodes(_ context.Context, codes []string) ([]model.Module, error) {
	m.lookups++
	if m.err != nil {
		return nil, m.err
	}
	var result []model.Module
	for _, code := range codes {
		if mod, ok := m.modules[code]; ok {
			result = append(result, *mod)
		}
	}
	return result, nil
}

func (m *mockModuleRepo) ListDependents(_ context.Context, code string) ([]model.Module, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.Module
	for _, mod := range m.modules {
		for _, p := range mod.Prerequisites {
			if p == code {
				result = append(result, *mod)
				break
			}
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ModuleCode < result[j].ModuleCode })
	return result, nil
}

func (m *mockModuleRepo) List(_ context.Context, filter repository.ModuleFilter, offset, limit int) ([]model.Module, int64, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	var result []model.Module
	for _, mod := range m.modules {
		if filter.Semester != "" && mod.Semester != filter.Semester {
			continue
		}
		if filter.CreditValue > 0 && mod.CreditValue != filter.CreditValue {
			continue
		}
		result = append(result, *mod)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ModuleCode < result[j].ModuleCode })
	total := int64(len(result))
	if offset >= len(result) {
		return []model.Module{}, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockModuleRepo) Upsert(_ context.Context, module *model.Module) error {
	if m.err != nil {
		return m.err
	}
	cp := *module
	m.modules[module.ModuleCode] = &cp
	return nil
}

func (m *mockModuleRepo) Count(_ context.Context) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return int64(len(m.modules)), nil
}

// ── Mock GraphCache ──

type mockCache struct {
	items   map[string][]byte
	getErr  error
	gets    int
	sets    int
	deletes int
}

func newMockCache() *mockCache {
	return &mockCache{items: make(map[string][]byte)}
}

func (c *mockCache) GetJSON(_ context.Context, key string, dest interface{}) (bool, error) {
	c.gets++
	if c.getErr != nil {
		return false, c.getErr
	}
	data, ok := c.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (c *mockCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.sets++
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.items[key] = data
	return nil
}

func (c *mockCache) DeleteByPrefix(_ context.Context, prefix string) (int, error) {
	n := 0
	for k := range c.items {
		if strings.HasPrefix(k, prefix) {
			delete(c.items, k)
			n++
		}
	}
	c.deletes++
	return n, nil
}

// ── 测试数据 ──

func intPtr(v int) *int { return &v }

func ref(code string) model.ModuleRef { return model.ModuleRef{ModuleCode: code} }

// seedMathCatalog MATHBSC：MTH1001 → MTH2001 → MTH3003，MTH1002 → MTH3003；MTH3003 另声明缺失的 MTH9999
func seedMathCatalog(courses *mockCourseRepo, modules *mockModuleRepo) {
	for _, m := range []*model.Module{
		{ModuleCode: "MTH1001", ModuleTitle: "Calculus and Linear Algebra", CreditValue: 20, CourseYear: intPtr(1), Semester: model.SemesterFullYear},
		{ModuleCode: "MTH1002", ModuleTitle: "Probability and Statistics", CreditValue: 20, CourseYear: intPtr(1), Semester: model.SemesterFullYear},
		{ModuleCode: "MTH2001", ModuleTitle: "Analysis", CreditValue: 20, CourseYear: intPtr(2), Semester: model.SemesterAutumn, Prerequisites: []string{"MTH1001"}},
		{ModuleCode: "MTH3003", ModuleTitle: "Mathematical Modeling", CreditValue: 15, CourseYear: intPtr(3), Semester: model.SemesterFullYear, Prerequisites: []string{"MTH2001", "MTH1002", "MTH9999"}},
	} {
		modules.modules[m.ModuleCode] = m
	}
	courses.courses["MATHBSC"] = &model.Course{
		CourseCode:      "MATHBSC",
		CourseName:      "Mathematics",
		Degree:          model.DegreeBSc,
		Department:      "Mathematics and Statistics",
		Duration:        3,
		CoreModules:     []model.ModuleRef{ref("MTH1001"), ref("MTH2001")},
		OptionalModules: []model.ModuleRef{ref("MTH3003"), ref("MTH4040")},
	}
}
