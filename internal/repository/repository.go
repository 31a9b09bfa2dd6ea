package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Course CourseRepository
	Module ModuleRepository

	driver string
	db     *gorm.DB // 内存实现时为 nil
}

// NewRepository 创建基于 PostgreSQL 的 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Course: NewCourseRepo(db),
		Module: NewModuleRepo(db),
		driver: "postgres",
		db:     db,
	}
}

// NewMemoryRepository 创建内存 Repository 聚合（示例数据模式 / 测试）
func NewMemoryRepository() *Repository {
	return &Repository{
		Course: NewMemoryCourseRepo(),
		Module: NewMemoryModuleRepo(),
		driver: "memory",
	}
}

// Driver 当前存储后端名称
func (r *Repository) Driver() string { return r.driver }

// Transaction 在单个事务内执行 fn；内存实现直接执行
//
// fn 收到的 *Repository 绑定事务连接，fn 返回错误时整体回滚。
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}

// WithTx 返回绑定到事务连接的 Repository 副本
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{
		Course: NewCourseRepo(tx),
		Module: NewModuleRepo(tx),
		driver: r.driver,
		db:     tx,
	}
}

// notFoundAsNil 将 gorm.ErrRecordNotFound 统一转换为 (nil, nil)
func notFoundAsNil[T any](v *T, err error) (*T, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return v, nil
}
