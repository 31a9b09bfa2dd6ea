package repository

import (
	"context"

	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/graph"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/model"
)

// RecordStore 将 Repository 适配为图解析器所需的 graph.Store
type RecordStore struct {
	repo *Repository
}

var _ graph.Store = (*RecordStore)(nil)

// NewRecordStore 创建 RecordStore
func NewRecordStore(repo *Repository) *RecordStore {
	return &RecordStore{repo: repo}
}

func (s *RecordStore) FindCourseByCode(ctx context.Context, code string) (*model.Course, error) {
	return s.repo.Course.GetByCode(ctx, code)
}

func (s *RecordStore) FindModulesByCodes(ctx context.Context, codes []string) ([]model.Module, error) {
	return s.repo.Module.ListByCodes(ctx, codes)
}

func (s *RecordStore) FindModuleByCode(ctx context.Context, code string) (*model.Module, error) {
	return s.repo.Module.GetByCode(ctx, code)
}
