package graph

import (
	"context"

	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/model"
)

// ── 测试用内存 Store，记录查询次数并可注入故障 ──

type fakeStore struct {
	courses map[string]*model.Course
	modules map[string]*model.Module

	courseLookups int
	batchLookups  int
	moduleLookups int
	lastBatch     []string

	err error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		courses: make(map[string]*model.Course),
		modules: make(map[string]*model.Module),
	}
}

func (s *fakeStore) addModule(code string, prereqs ...string) *model.Module {
	m := &model.Module{
		ModuleCode:    code,
		ModuleTitle:   "Title " + code,
		CreditValue:   15,
		Semester:      model.SemesterFullYear,
		Prerequisites: prereqs,
	}
	s.modules[code] = m
	return m
}

func (s *fakeStore) addCourse(code string, core, optional []string) *model.Course {
	c := &model.Course{
		CourseCode: code,
		CourseName: "Course " + code,
		Degree:     model.DegreeBSc,
		Department: "Mathematics and Statistics",
	}
	for _, m := range core {
		c.CoreModules = append(c.CoreModules, model.ModuleRef{ModuleCode: m})
	}
	for _, m := range optional {
		c.OptionalModules = append(c.OptionalModules, model.ModuleRef{ModuleCode: m})
	}
	s.courses[code] = c
	return c
}

func (s *fakeStore) FindCourseByCode(_ context.Context, code string) (*model.Course, error) {
	s.courseLookups++
	if s.err != nil {
		return nil, s.err
	}
	return s.courses[code], nil
}

func (s *fakeStore) FindModulesByCodes(_ context.Context, codes []string) ([]model.Module, error) {
	s.batchLookups++
	s.lastBatch = append([]string(nil), codes...)
	if s.err != nil {
		return nil, s.err
	}
	var out []model.Module
	// 倒序返回，验证构建结果不依赖存储返回顺序
	for i := len(codes) - 1; i >= 0; i-- {
		if m, ok := s.modules[codes[i]]; ok {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (s *fakeStore) FindModuleByCode(_ context.Context, code string) (*model.Module, error) {
	s.moduleLookups++
	if s.err != nil {
		return nil, s.err
	}
	return s.modules[code], nil
}
