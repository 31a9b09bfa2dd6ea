package graph

import (
	"context"

	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/model"
)

// Store 解析器依赖的只读记录存储
//
// 查不到记录时返回 (nil, nil)；error 仅表示存储本身的故障。
type Store interface {
	FindCourseByCode(ctx context.Context, code string) (*model.Course, error)
	// FindModulesByCodes 一次批量查询，只返回命中的模块，缺失的代码静默忽略
	FindModulesByCodes(ctx context.Context, codes []string) ([]model.Module, error)
	FindModuleByCode(ctx context.Context, code string) (*model.Module, error)
}

// Builder 基于 Store 的图解析器，无内部状态，可并发使用
type Builder struct {
	store Store
}

// NewBuilder 创建 Builder
func NewBuilder(store Store) *Builder {
	return &Builder{store: store}
}
