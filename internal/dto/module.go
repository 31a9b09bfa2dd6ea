package dto

import "github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/model"

// ── 模块 DTO ──

// ModuleListRequest 模块列表查询参数
type ModuleListRequest struct {
	PaginationRequest
	Search      string `form:"search"       binding:"omitempty,max=100"`
	CreditValue int    `form:"credit_value" binding:"omitempty,min=1"`
	Year        int    `form:"year"         binding:"omitempty,min=1,max=4"`
	Semester    string `form:"semester"     binding:"omitempty,max=20"`
}

// PrerequisiteChainRequest 先修链查询参数，MaxDepth 为空时使用配置默认值
type PrerequisiteChainRequest struct {
	MaxDepth *int `form:"max_depth"`
}

// ModuleBriefResponse 模块简要信息
type ModuleBriefResponse struct {
	ModuleCode  string `json:"module_code"`
	ModuleTitle string `json:"module_title"`
	CreditValue int    `json:"credit_value"`
	CourseYear  *int   `json:"course_year,omitempty"`
	Semester    string `json:"semester"`
}

// ModuleResponse 模块完整信息
type ModuleResponse struct {
	ModuleCode               string                   `json:"module_code"`
	ModuleTitle              string                   `json:"module_title"`
	CreditValue              int                      `json:"credit_value"`
	SummaryOfContents        string                   `json:"summary_of_contents"`
	IntendedLearningOutcomes []string                 `json:"intended_learning_outcomes"`
	AssessmentMethods        []model.AssessmentMethod `json:"assessment_methods"`
	CourseYear               *int                     `json:"course_year,omitempty"`
	Semester                 string                   `json:"semester"`
	IsOptional               bool                     `json:"is_optional"`
	Prerequisites            []string                 `json:"prerequisites"`
	Corequisites             []string                 `json:"corequisites"`
	URL                      string                   `json:"url,omitempty"`
}

// ModuleDetailResponse 模块详情：直接先修（存在的）与直接后续模块
type ModuleDetailResponse struct {
	ModuleResponse
	PrerequisiteModules  []ModuleBriefResponse `json:"prerequisite_modules"`
	MissingPrerequisites []string              `json:"missing_prerequisites"`
	Dependents           []ModuleBriefResponse `json:"dependents"`
}

// ModuleBriefFrom 由模型构造简要信息
func ModuleBriefFrom(m *model.Module) ModuleBriefResponse {
	return ModuleBriefResponse{
		ModuleCode:  m.ModuleCode,
		ModuleTitle: m.ModuleTitle,
		CreditValue: m.CreditValue,
		CourseYear:  m.CourseYear,
		Semester:    string(m.Semester),
	}
}

// ModuleFrom 由模型构造完整信息，nil 列表输出为 []
func ModuleFrom(m *model.Module) ModuleResponse {
	return ModuleResponse{
		ModuleCode:               m.ModuleCode,
		ModuleTitle:              m.ModuleTitle,
		CreditValue:              m.CreditValue,
		SummaryOfContents:        m.SummaryOfContents,
		IntendedLearningOutcomes: nonNil(m.IntendedLearningOutcomes),
		AssessmentMethods:        nonNil(m.AssessmentMethods),
		CourseYear:               m.CourseYear,
		Semester:                 string(m.Semester),
		IsOptional:               m.IsOptional,
		Prerequisites:            nonNil(m.Prerequisites),
		Corequisites:             nonNil(m.Corequisites),
		URL:                      m.URL,
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
