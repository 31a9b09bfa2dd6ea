package graph

import (
	"context"

	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/model"
)

// CourseNodeData 课程节点携带的固定字段投影
type CourseNodeData struct {
	CourseName  string       `json:"course_name"`
	Degree      model.Degree `json:"degree"`
	Department  string       `json:"department"`
	Description string       `json:"description,omitempty"`
}

// ModuleNodeData 模块节点携带的固定字段投影
type ModuleNodeData struct {
	ModuleCode               string                   `json:"module_code"`
	ModuleTitle              string                   `json:"module_title"`
	CreditValue              int                      `json:"credit_value"`
	SummaryOfContents        string                   `json:"summary_of_contents"`
	IntendedLearningOutcomes []string                 `json:"intended_learning_outcomes"`
	AssessmentMethods        []model.AssessmentMethod `json:"assessment_methods"`
	CourseYear               *int                     `json:"course_year,omitempty"`
	Semester                 model.Semester           `json:"semester"`
	IsOptional               bool                     `json:"is_optional"`
}

// CourseGraph 课程范围的两层图：一个课程节点 + 该课程引用且存在的模块
type CourseGraph struct {
	Course *model.Course
	*Graph
}

// CourseGraph 构建课程依赖图
//
//  1. 按代码精确查询课程，不存在返回 *NotFoundError
//  2. 核心 + 选修模块代码取并集，一次批量查询；存储中缺失的模块静默丢弃
//  3. 课程 → 模块的成员边，同时出现在核心与选修列表时只生成一条 core 边
//  4. 模块 → 模块的先修边，只保留两端都属于本课程的边，重复声明只保留一条
//
// 课程存在但没有任何模块时返回只含课程节点的图，不视为错误。
func (b *Builder) CourseGraph(ctx context.Context, courseCode string) (*CourseGraph, error) {
	course, err := b.store.FindCourseByCode(ctx, courseCode)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, &NotFoundError{Kind: KindCourse, Code: courseCode}
	}

	codes := course.ModuleCodes()
	var modules []model.Module
	if len(codes) > 0 {
		modules, err = b.store.FindModulesByCodes(ctx, codes)
		if err != nil {
			return nil, err
		}
	}

	byCode := make(map[string]*model.Module, len(modules))
	for i := range modules {
		if _, dup := byCode[modules[i].ModuleCode]; !dup {
			byCode[modules[i].ModuleCode] = &modules[i]
		}
	}

	g := New()
	g.AddNode(CourseNode(course))

	// 节点顺序沿用课程声明顺序，而不是存储返回顺序
	members := make([]*model.Module, 0, len(codes))
	memberSet := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		m, ok := byCode[code]
		if !ok {
			continue
		}
		if !g.AddNode(ModuleNode(m, nil)) {
			continue
		}
		members = append(members, m)
		memberSet[m.ModuleCode] = struct{}{}
	}

	core := course.CoreCodeSet()
	for _, m := range members {
		typ := EdgeOptional
		if _, ok := core[m.ModuleCode]; ok {
			typ = EdgeCore
		}
		g.AddEdge(course.CourseCode, m.ModuleCode, typ)
	}

	for _, m := range members {
		for _, prereq := range m.Prerequisites {
			if _, ok := memberSet[prereq]; !ok {
				continue
			}
			g.AddEdge(prereq, m.ModuleCode, EdgePrerequisite)
		}
	}

	return &CourseGraph{Course: course, Graph: g}, nil
}

// CourseNode 课程节点（ID 为课程代码）
func CourseNode(c *model.Course) Node {
	return Node{
		ID:    c.CourseCode,
		Label: c.CourseName,
		Type:  NodeCourse,
		Data: CourseNodeData{
			CourseName:  c.CourseName,
			Degree:      c.Degree,
			Department:  c.Department,
			Description: c.Description,
		},
	}
}

// ModuleNode 模块节点（ID 为模块代码）；depth 为 nil 时不输出深度
func ModuleNode(m *model.Module, depth *int) Node {
	outcomes := []string(m.IntendedLearningOutcomes)
	if outcomes == nil {
		outcomes = []string{}
	}
	assessments := []model.AssessmentMethod(m.AssessmentMethods)
	if assessments == nil {
		assessments = []model.AssessmentMethod{}
	}
	return Node{
		ID:    m.ModuleCode,
		Label: m.ModuleTitle,
		Type:  NodeModule,
		Depth: depth,
		Data: ModuleNodeData{
			ModuleCode:               m.ModuleCode,
			ModuleTitle:              m.ModuleTitle,
			CreditValue:              m.CreditValue,
			SummaryOfContents:        m.SummaryOfContents,
			IntendedLearningOutcomes: outcomes,
			AssessmentMethods:        assessments,
			CourseYear:               m.CourseYear,
			Semester:                 m.Semester,
			IsOptional:               m.IsOptional,
		},
	}
}
