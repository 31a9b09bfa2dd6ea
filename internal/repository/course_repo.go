package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/model"
)

// CourseRepository 课程数据访问接口
//
// 查不到记录时 GetByCode 返回 (nil, nil)。
type CourseRepository interface {
	GetByCode(ctx context.Context, code string) (*model.Course, error)
	List(ctx context.Context, filter CourseFilter, offset, limit int) ([]model.Course, int64, error)
	Upsert(ctx context.Context, course *model.Course) error
	Count(ctx context.Context) (int64, error)
}

// courseRepo CourseRepository 的 GORM 实现
type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) GetByCode(ctx context.Context, code string) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Where("course_code = ?", code).
		First(&course).Error
	return notFoundAsNil(&course, err)
}

func (r *courseRepo) List(ctx context.Context, filter CourseFilter, offset, limit int) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Course{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("course_code ILIKE ? OR course_name ILIKE ? OR department ILIKE ?", like, like, like)
	}
	if filter.Degree != "" {
		query = query.Where("degree = ?", filter.Degree)
	}
	if filter.Department != "" {
		query = query.Where("department ILIKE ?", filter.Department)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("course_name ASC, course_code ASC").
		Offset(offset).
		Limit(limit).
		Find(&courses).Error
	return courses, total, err
}

func (r *courseRepo) Upsert(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "course_code"}},
			DoUpdates: clause.AssignmentColumns(courseUpsertColumns),
		}).
		Create(course).Error
}

func (r *courseRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Course{}).Count(&n).Error
	return n, err
}

// 冲突时覆盖的列，created_at 保留首次导入时间
var courseUpsertColumns = []string{
	"course_name", "degree", "department", "duration",
	"core_modules", "optional_modules", "entry_requirements",
	"description", "url", "updated_at",
}
