package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/dto"
	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/model"
	pkgerrors "github.com/SamuelSmthSmth/ExeterCourseNodeGraph/pkg/errors"
)

// ── GetByCode 测试 ──

func TestModuleService_GetByCode_PrerequisitesAndDependents(t *testing.T) {
	svc, _, _, _ := setupTestServices()

	resp, err := svc.Module.GetByCode(context.Background(), "MTH3003")
	if err != nil {
		t.Fatalf("GetByCode 应成功: %v", err)
	}
	var found []string
	for _, p := range resp.PrerequisiteModules {
		found = append(found, p.ModuleCode)
	}
	if diff := cmp.Diff([]string{"MTH2001", "MTH1002"}, found); diff != "" {
		t.Errorf("存在的先修应按声明顺序返回 (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"MTH9999"}, resp.MissingPrerequisites); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if len(resp.Dependents) != 0 {
		t.Errorf("MTH3003 不应有后续模块，实际=%d", len(resp.Dependents))
	}

	resp, err = svc.Module.GetByCode(context.Background(), "MTH1001")
	if err != nil {
		t.Fatalf("GetByCode 应成功: %v", err)
	}
	if len(resp.Dependents) != 1 || resp.Dependents[0].ModuleCode != "MTH2001" {
		t.Errorf("期望后续模块 MTH2001，实际=%+v", resp.Dependents)
	}
	if resp.Prerequisites == nil || resp.IntendedLearningOutcomes == nil {
		t.Error("空列表应输出为 []")
	}
}

func TestModuleService_GetByCode_NotFound(t *testing.T) {
	svc, _, _, _ := setupTestServices()

	_, err := svc.Module.GetByCode(context.Background(), "NOPE")
	if !errors.Is(err, ErrModuleNotFound) {
		t.Errorf("期望 ErrModuleNotFound，实际: %v", err)
	}
}

// ── GetPrerequisiteChain 测试 ──

func TestModuleService_GetPrerequisiteChain_DefaultDepth(t *testing.T) {
	svc, _, _, _ := setupTestServices()

	resp, err := svc.Module.GetPrerequisiteChain(context.Background(), "MTH3003", nil)
	if err != nil {
		t.Fatalf("GetPrerequisiteChain 应成功: %v", err)
	}
	if resp.MaxDepth != 5 {
		t.Errorf("期望默认深度 5，实际=%d", resp.MaxDepth)
	}
	if resp.Stats.NodeCount != 4 || resp.Stats.EdgeCount != 3 {
		t.Errorf("期望 4 节点 3 边，实际 %d/%d", resp.Stats.NodeCount, resp.Stats.EdgeCount)
	}
	if diff := cmp.Diff([]string{"MTH9999"}, resp.Unresolved); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestModuleService_GetPrerequisiteChain_ZeroDepth(t *testing.T) {
	svc, _, _, _ := setupTestServices()

	resp, err := svc.Module.GetPrerequisiteChain(context.Background(), "MTH3003", intPtr(0))
	if err != nil {
		t.Fatalf("GetPrerequisiteChain 应成功: %v", err)
	}
	if len(resp.Nodes) != 1 || len(resp.Edges) != 0 {
		t.Errorf("深度 0 只应返回根节点，实际 %d 节点 %d 边", len(resp.Nodes), len(resp.Edges))
	}
	if diff := cmp.Diff([]string{"MTH1002", "MTH2001", "MTH9999"}, resp.Unresolved); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestModuleService_GetPrerequisiteChain_InvalidDepth(t *testing.T) {
	svc, _, _, _ := setupTestServices()

	for _, d := range []int{-1, 11} {
		_, err := svc.Module.GetPrerequisiteChain(context.Background(), "MTH3003", intPtr(d))
		if !errors.Is(err, ErrInvalidDepth) {
			t.Errorf("max_depth=%d 期望 ErrInvalidDepth，实际: %v", d, err)
		}
	}
}

func TestModuleService_GetPrerequisiteChain_CacheKeyIncludesDepth(t *testing.T) {
	svc, _, _, cache := setupTestServices()
	ctx := context.Background()

	one, _ := svc.Module.GetPrerequisiteChain(ctx, "MTH3003", intPtr(1))
	two, _ := svc.Module.GetPrerequisiteChain(ctx, "MTH3003", intPtr(2))
	if cache.sets != 2 {
		t.Errorf("不同深度应分别缓存，实际写入=%d", cache.sets)
	}
	if len(one.Nodes) != 3 || len(two.Nodes) != 4 {
		t.Errorf("节点数不符: depth1=%d depth2=%d", len(one.Nodes), len(two.Nodes))
	}

	again, _ := svc.Module.GetPrerequisiteChain(ctx, "MTH3003", intPtr(1))
	if cache.sets != 2 || len(again.Nodes) != 3 {
		t.Error("相同深度的第二次请求应命中缓存")
	}
}

func TestModuleService_GetPrerequisiteChain_NotFound(t *testing.T) {
	svc, _, _, _ := setupTestServices()

	_, err := svc.Module.GetPrerequisiteChain(context.Background(), "NOPE", nil)
	if !errors.Is(err, ErrModuleNotFound) {
		t.Errorf("期望 ErrModuleNotFound，实际: %v", err)
	}
}

func TestModuleService_GetPrerequisiteChain_StoreError(t *testing.T) {
	svc, _, modules, _ := setupTestServices()
	modules.err = errors.New("timeout")

	_, err := svc.Module.GetPrerequisiteChain(context.Background(), "MTH3003", nil)
	if !errors.Is(err, pkgerrors.ErrStoreUnavailable) {
		t.Errorf("期望 ErrStoreUnavailable，实际: %v", err)
	}
}

func TestModuleService_GetPrerequisiteChain_CanceledIsNotStoreFailure(t *testing.T) {
	svc, _, _, cache := setupTestServices()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Module.GetPrerequisiteChain(ctx, "MTH3003", nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("期望 context.Canceled，实际: %v", err)
	}
	if errors.Is(err, pkgerrors.ErrStoreUnavailable) {
		t.Error("请求取消不应被识别为存储不可用")
	}
	if cache.sets != 0 {
		t.Errorf("失败结果不应写入缓存，实际写入=%d", cache.sets)
	}
}

// ── List 测试 ──

func TestModuleService_List_SemesterFilter(t *testing.T) {
	svc, _, _, _ := setupTestServices()

	items, total, err := svc.Module.List(context.Background(), &dto.ModuleListRequest{Semester: "autumn"})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if total != 1 || items[0].ModuleCode != "MTH2001" {
		t.Errorf("期望仅 MTH2001，实际 total=%d items=%+v", total, items)
	}
	if items[0].Semester != string(model.SemesterAutumn) {
		t.Errorf("学期输出不符: %s", items[0].Semester)
	}
}

func TestModuleService_List_InvalidSemester(t *testing.T) {
	svc, _, _, _ := setupTestServices()

	_, _, err := svc.Module.List(context.Background(), &dto.ModuleListRequest{Semester: "Winter"})
	if !errors.Is(err, ErrInvalidFilter) {
		t.Errorf("期望 ErrInvalidFilter，实际: %v", err)
	}
}

func TestModuleService_List_Pagination(t *testing.T) {
	svc, _, _, _ := setupTestServices()

	req := &dto.ModuleListRequest{PaginationRequest: dto.PaginationRequest{Page: 2, PageSize: 3}}
	items, total, err := svc.Module.List(context.Background(), req)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if total != 4 || len(items) != 1 || items[0].ModuleCode != "MTH3003" {
		t.Errorf("第 2 页应只有 MTH3003，实际 total=%d items=%+v", total, items)
	}
}
