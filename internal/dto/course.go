package dto

// ── 课程模块 DTO ──

// CourseListRequest 课程列表查询参数
type CourseListRequest struct {
	PaginationRequest
	Search     string `form:"search"     binding:"omitempty,max=100"`
	Degree     string `form:"degree"     binding:"omitempty,max=10"`
	Department string `form:"department" binding:"omitempty,max=255"`
}

// CourseSummaryResponse 课程列表项
type CourseSummaryResponse struct {
	CourseCode          string `json:"course_code"`
	CourseName          string `json:"course_name"`
	Degree              string `json:"degree"`
	Department          string `json:"department"`
	Duration            int    `json:"duration"`
	CoreModuleCount     int    `json:"core_module_count"`
	OptionalModuleCount int    `json:"optional_module_count"`
}

// CourseModuleResponse 课程下的模块条目
//
// 课程引用但存储中不存在的模块 Found=false，Module 为空。
type CourseModuleResponse struct {
	ModuleCode string               `json:"module_code"`
	Year       *int                 `json:"year,omitempty"`
	Found      bool                 `json:"found"`
	Module     *ModuleBriefResponse `json:"module,omitempty"`
}

// CourseDetailResponse 课程详情
type CourseDetailResponse struct {
	CourseCode        string                 `json:"course_code"`
	CourseName        string                 `json:"course_name"`
	Degree            string                 `json:"degree"`
	Department        string                 `json:"department"`
	Duration          int                    `json:"duration"`
	EntryRequirements string                 `json:"entry_requirements,omitempty"`
	Description       string                 `json:"description,omitempty"`
	URL               string                 `json:"url,omitempty"`
	CoreModules       []CourseModuleResponse `json:"core_modules"`
	OptionalModules   []CourseModuleResponse `json:"optional_modules"`
	TotalCredits      int                    `json:"total_core_credits"`
	UpdatedAt         string                 `json:"updated_at"`
}
