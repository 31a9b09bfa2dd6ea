package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/model"
)

func intPtr(v int) *int { return &v }

func seedMemory(t *testing.T) *Repository {
	t.Helper()
	ctx := context.Background()
	repo := NewMemoryRepository()

	modules := []model.Module{
		{ModuleCode: "MTH1001", ModuleTitle: "Mathematical Structures", CreditValue: 15, CourseYear: intPtr(1), Semester: model.SemesterAutumn},
		{ModuleCode: "MTH1002", ModuleTitle: "Mathematical Methods", CreditValue: 15, CourseYear: intPtr(1), Semester: model.SemesterSpring},
		{ModuleCode: "MTH2001", ModuleTitle: "Analysis", CreditValue: 30, CourseYear: intPtr(2), Semester: model.SemesterFullYear, Prerequisites: []string{"MTH1001"}},
		{ModuleCode: "MTH3003", ModuleTitle: "Complex Analysis", CreditValue: 15, CourseYear: intPtr(3), Semester: model.SemesterAutumn, Prerequisites: []string{"MTH2001", "MTH1001"}},
	}
	for i := range modules {
		if err := repo.Module.Upsert(ctx, &modules[i]); err != nil {
			t.Fatalf("写入模块失败: %v", err)
		}
	}

	courses := []model.Course{
		{CourseCode: "MATHBSC", CourseName: "Mathematics", Degree: model.DegreeBSc, Department: "Mathematics and Statistics"},
		{CourseCode: "COMPBSC", CourseName: "Computer Science", Degree: model.DegreeBSc, Department: "Computer Science"},
		{CourseCode: "MATHMSC", CourseName: "Advanced Mathematics", Degree: model.DegreeMSc, Department: "Mathematics and Statistics"},
	}
	for i := range courses {
		if err := repo.Course.Upsert(ctx, &courses[i]); err != nil {
			t.Fatalf("写入课程失败: %v", err)
		}
	}
	return repo
}

func TestMemoryCourseRepo_GetByCode(t *testing.T) {
	repo := seedMemory(t)
	ctx := context.Background()

	c, err := repo.Course.GetByCode(ctx, "MATHBSC")
	if err != nil || c == nil {
		t.Fatalf("期望查到 MATHBSC，err=%v", err)
	}
	if c.CourseName != "Mathematics" {
		t.Errorf("期望名称 Mathematics，实际=%s", c.CourseName)
	}

	missing, err := repo.Course.GetByCode(ctx, "NOEXIST")
	if err != nil || missing != nil {
		t.Errorf("不存在的课程应返回 (nil, nil)，实际=(%v, %v)", missing, err)
	}
}

func TestMemoryCourseRepo_ListFilter(t *testing.T) {
	repo := seedMemory(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		filter CourseFilter
		want   []string
	}{
		{"全部按名称排序", CourseFilter{}, []string{"MATHMSC", "COMPBSC", "MATHBSC"}},
		{"搜索忽略大小写", CourseFilter{Search: "math"}, []string{"MATHMSC", "MATHBSC"}},
		{"按学位", CourseFilter{Degree: model.DegreeMSc}, []string{"MATHMSC"}},
		{"按学院", CourseFilter{Department: "computer science"}, []string{"COMPBSC"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, total, err := repo.Course.List(ctx, tt.filter, 0, 20)
			if err != nil {
				t.Fatalf("List 失败: %v", err)
			}
			var got []string
			for _, c := range items {
				got = append(got, c.CourseCode)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
			if total != int64(len(tt.want)) {
				t.Errorf("期望 total=%d，实际=%d", len(tt.want), total)
			}
		})
	}
}

func TestMemoryModuleRepo_Pagination(t *testing.T) {
	repo := seedMemory(t)

	items, total, err := repo.Module.List(context.Background(), ModuleFilter{}, 1, 2)
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if total != 4 {
		t.Errorf("期望 total=4，实际=%d", total)
	}
	if len(items) != 2 || items[0].ModuleCode != "MTH1002" || items[1].ModuleCode != "MTH2001" {
		t.Errorf("分页结果不符: %+v", items)
	}

	items, _, _ = repo.Module.List(context.Background(), ModuleFilter{}, 10, 2)
	if len(items) != 0 {
		t.Errorf("越界 offset 应返回空列表，实际=%d", len(items))
	}
}

func TestMemoryModuleRepo_ListFilter(t *testing.T) {
	repo := seedMemory(t)
	ctx := context.Background()

	items, _, _ := repo.Module.List(ctx, ModuleFilter{Year: 1, Semester: model.SemesterSpring}, 0, 20)
	if len(items) != 1 || items[0].ModuleCode != "MTH1002" {
		t.Errorf("期望仅 MTH1002，实际=%+v", items)
	}
	items, _, _ = repo.Module.List(ctx, ModuleFilter{CreditValue: 30}, 0, 20)
	if len(items) != 1 || items[0].ModuleCode != "MTH2001" {
		t.Errorf("期望仅 MTH2001，实际=%+v", items)
	}
	items, _, _ = repo.Module.List(ctx, ModuleFilter{Search: "analysis"}, 0, 20)
	if len(items) != 2 {
		t.Errorf("期望 2 个匹配 analysis 的模块，实际=%d", len(items))
	}
}

func TestMemoryModuleRepo_ListByCodes(t *testing.T) {
	repo := seedMemory(t)

	items, err := repo.Module.ListByCodes(context.Background(), []string{"MTH2001", "GHOST", "MTH1001", "MTH2001"})
	if err != nil {
		t.Fatalf("ListByCodes 失败: %v", err)
	}
	var got []string
	for _, m := range items {
		got = append(got, m.ModuleCode)
	}
	if diff := cmp.Diff([]string{"MTH1001", "MTH2001"}, got); diff != "" {
		t.Errorf("缺失代码应忽略、重复代码应去重 (-want +got):\n%s", diff)
	}
}

func TestMemoryModuleRepo_ListDependents(t *testing.T) {
	repo := seedMemory(t)

	items, err := repo.Module.ListDependents(context.Background(), "MTH1001")
	if err != nil {
		t.Fatalf("ListDependents 失败: %v", err)
	}
	var got []string
	for _, m := range items {
		got = append(got, m.ModuleCode)
	}
	if diff := cmp.Diff([]string{"MTH2001", "MTH3003"}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestMemoryModuleRepo_UpsertKeepsCreatedAt(t *testing.T) {
	repo := seedMemory(t)
	ctx := context.Background()

	before, _ := repo.Module.GetByCode(ctx, "MTH1001")
	updated := &model.Module{ModuleCode: "MTH1001", ModuleTitle: "Structures", CreditValue: 15}
	if err := repo.Module.Upsert(ctx, updated); err != nil {
		t.Fatalf("Upsert 失败: %v", err)
	}
	after, _ := repo.Module.GetByCode(ctx, "MTH1001")
	if after.ModuleTitle != "Structures" {
		t.Errorf("期望标题被覆盖，实际=%s", after.ModuleTitle)
	}
	if !after.CreatedAt.Equal(before.CreatedAt) {
		t.Error("覆盖写入不应修改 created_at")
	}
	if n, _ := repo.Module.Count(ctx); n != 4 {
		t.Errorf("覆盖写入不应新增记录，实际数量=%d", n)
	}
}

func TestMemoryModuleRepo_ReturnsCopies(t *testing.T) {
	repo := seedMemory(t)
	ctx := context.Background()

	m, _ := repo.Module.GetByCode(ctx, "MTH2001")
	m.Prerequisites[0] = "TAMPERED"

	again, _ := repo.Module.GetByCode(ctx, "MTH2001")
	if again.Prerequisites[0] != "MTH1001" {
		t.Error("修改返回值不应影响存储内容")
	}
}

func TestMemoryCourseRepo_ReturnsDeepCopies(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	in := model.Course{
		CourseCode:      "MATHBSC",
		CourseName:      "Mathematics",
		Degree:          model.DegreeBSc,
		CoreModules:     []model.ModuleRef{{ModuleCode: "MTH1001", Year: intPtr(1)}},
		OptionalModules: []model.ModuleRef{{ModuleCode: "MTH3003", Year: intPtr(3)}},
	}
	if err := repo.Course.Upsert(ctx, &in); err != nil {
		t.Fatalf("写入课程失败: %v", err)
	}
	*in.CoreModules[0].Year = 9

	c, _ := repo.Course.GetByCode(ctx, "MATHBSC")
	*c.CoreModules[0].Year = 7
	*c.OptionalModules[0].Year = 7
	c.CoreModules[0].ModuleCode = "TAMPERED"

	again, _ := repo.Course.GetByCode(ctx, "MATHBSC")
	if got := *again.CoreModules[0].Year; got != 1 {
		t.Errorf("核心模块学年应保持 1，实际=%d", got)
	}
	if got := *again.OptionalModules[0].Year; got != 3 {
		t.Errorf("选修模块学年应保持 3，实际=%d", got)
	}
	if again.CoreModules[0].ModuleCode != "MTH1001" {
		t.Error("修改返回值不应影响存储内容")
	}
}

func TestMemoryRepository_ConcurrentAccess(t *testing.T) {
	repo := seedMemory(t)
	store := NewRecordStore(repo)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = store.FindModuleByCode(ctx, "MTH3003")
			_, _ = store.FindModulesByCodes(ctx, []string{"MTH1001", "MTH2001"})
		}()
		go func() {
			defer wg.Done()
			_ = repo.Module.Upsert(ctx, &model.Module{ModuleCode: "MTH1002", ModuleTitle: "Methods", CreditValue: 15})
		}()
	}
	wg.Wait()
}

func TestRepository_TransactionMemory(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	err := repo.Transaction(ctx, func(tx *Repository) error {
		return tx.Course.Upsert(ctx, &model.Course{CourseCode: "X", CourseName: "X", Degree: model.DegreeBA})
	})
	if err != nil {
		t.Fatalf("Transaction 失败: %v", err)
	}
	if n, _ := repo.Course.Count(ctx); n != 1 {
		t.Errorf("期望 1 门课程，实际=%d", n)
	}
	if repo.Driver() != "memory" {
		t.Errorf("期望 driver=memory，实际=%s", repo.Driver())
	}
}
