package handler

import "github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Course *CourseHandler
	Module *ModuleHandler
	Status *StatusHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Course: NewCourseHandler(svc.Course),
		Module: NewModuleHandler(svc.Module),
		Status: NewStatusHandler(svc.Catalog),
	}
}
