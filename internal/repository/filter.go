package repository

import "github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/model"

// CourseFilter 课程列表过滤条件，零值表示不过滤
type CourseFilter struct {
	Search     string // 匹配代码 / 名称 / 学院，忽略大小写
	Degree     model.Degree
	Department string
}

// ModuleFilter 模块列表过滤条件，零值表示不过滤
type ModuleFilter struct {
	Search      string // 匹配代码 / 标题，忽略大小写
	CreditValue int
	Year        int
	Semester    model.Semester
}
