package repository

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/model"
)

// ModuleRepository 模块数据访问接口
//
// 查不到记录时 GetByCode 返回 (nil, nil)；ListByCodes 只返回命中的模块。
type ModuleRepository interface {
	GetByCode(ctx context.Context, code string) (*model.Module, error)
	ListByCodes(ctx context.Context, codes []string) ([]model.Module, error)
	// ListDependents 返回先修列表中包含 code 的模块
	ListDependents(ctx context.Context, code string) ([]model.Module, error)
	List(ctx context.Context, filter ModuleFilter, offset, limit int) ([]model.Module, int64, error)
	Upsert(ctx context.Context, module *model.Module) error
	Count(ctx context.Context) (int64, error)
}

// moduleRepo ModuleRepository 的 GORM 实现
type moduleRepo struct {
	db *gorm.DB
}

// NewModuleRepo 创建 ModuleRepository 实例
func NewModuleRepo(db *gorm.DB) ModuleRepository {
	return &moduleRepo{db: db}
}

func (r *moduleRepo) GetByCode(ctx context.Context, code string) (*model.Module, error) {
	var module model.Module
	err := r.db.WithContext(ctx).
		Where("module_code = ?", code).
		First(&module).Error
	return notFoundAsNil(&module, err)
}

func (r *moduleRepo) ListByCodes(ctx context.Context, codes []string) ([]model.Module, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	var modules []model.Module
	err := r.db.WithContext(ctx).
		Where("module_code IN ?", codes).
		Order("module_code ASC").
		Find(&modules).Error
	return modules, err
}

func (r *moduleRepo) ListDependents(ctx context.Context, code string) ([]model.Module, error) {
	needle, err := json.Marshal([]string{code})
	if err != nil {
		return nil, err
	}
	var modules []model.Module
	// 命中 prerequisites 上的 GIN 索引
	err = r.db.WithContext(ctx).
		Where("prerequisites @> ?::jsonb", string(needle)).
		Order("module_code ASC").
		Find(&modules).Error
	return modules, err
}

func (r *moduleRepo) List(ctx context.Context, filter ModuleFilter, offset, limit int) ([]model.Module, int64, error) {
	var modules []model.Module
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Module{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("module_code ILIKE ? OR module_title ILIKE ?", like, like)
	}
	if filter.CreditValue > 0 {
		query = query.Where("credit_value = ?", filter.CreditValue)
	}
	if filter.Year > 0 {
		query = query.Where("course_year = ?", filter.Year)
	}
	if filter.Semester != "" {
		query = query.Where("semester = ?", filter.Semester)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("module_code ASC").
		Offset(offset).
		Limit(limit).
		Find(&modules).Error
	return modules, total, err
}

func (r *moduleRepo) Upsert(ctx context.Context, module *model.Module) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "module_code"}},
			DoUpdates: clause.AssignmentColumns(moduleUpsertColumns),
		}).
		Create(module).Error
}

func (r *moduleRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Module{}).Count(&n).Error
	return n, err
}

var moduleUpsertColumns = []string{
	"module_title", "credit_value", "summary_of_contents",
	"intended_learning_outcomes", "assessment_methods", "course_year",
	"semester", "is_optional", "prerequisites", "corequisites",
	"url", "updated_at",
}
