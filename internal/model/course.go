package model

import "gorm.io/datatypes"

// ModuleRef 课程对模块的引用（不保证模块存在）
type ModuleRef struct {
	ModuleCode string `json:"module_code"`
	Year       *int   `json:"year,omitempty"`
}

// Course 课程表，对应 courses
//
// 同一模块可能同时出现在 CoreModules 与 OptionalModules 中，数据层不去重。
type Course struct {
	CourseCode        string                         `gorm:"type:varchar(20);primaryKey"           json:"course_code"`
	CourseName        string                         `gorm:"type:varchar(255);not null"            json:"course_name"`
	Degree            Degree                         `gorm:"type:varchar(10);not null"             json:"degree"`
	Department        string                         `gorm:"type:varchar(255);not null"            json:"department"`
	Duration          int                            `gorm:"type:smallint;not null;default:3"      json:"duration"` // 年
	CoreModules       datatypes.JSONSlice[ModuleRef] `gorm:"type:jsonb;not null;default:'[]'"      json:"core_modules"`
	OptionalModules   datatypes.JSONSlice[ModuleRef] `gorm:"type:jsonb;not null;default:'[]'"      json:"optional_modules"`
	EntryRequirements string                         `gorm:"type:text;not null;default:''"         json:"entry_requirements,omitempty"`
	Description       string                         `gorm:"type:text;not null;default:''"         json:"description,omitempty"`
	URL               string                         `gorm:"type:varchar(500);not null;default:''" json:"url,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// ModuleCodes 返回核心与选修模块代码的并集，按首次出现顺序去重
func (c *Course) ModuleCodes() []string {
	seen := make(map[string]struct{}, len(c.CoreModules)+len(c.OptionalModules))
	codes := make([]string, 0, len(c.CoreModules)+len(c.OptionalModules))
	for _, lists := range [][]ModuleRef{c.CoreModules, c.OptionalModules} {
		for _, ref := range lists {
			if ref.ModuleCode == "" {
				continue
			}
			if _, ok := seen[ref.ModuleCode]; ok {
				continue
			}
			seen[ref.ModuleCode] = struct{}{}
			codes = append(codes, ref.ModuleCode)
		}
	}
	return codes
}

// CoreCodeSet 核心模块代码集合
func (c *Course) CoreCodeSet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.CoreModules))
	for _, ref := range c.CoreModules {
		set[ref.ModuleCode] = struct{}{}
	}
	return set
}
