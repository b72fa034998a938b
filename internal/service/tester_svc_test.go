package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"feedback_flow_v1_202608/internal/api/dto"
	"feedback_flow_v1_202608/internal/model"
	"feedback_flow_v1_202608/internal/repository"
)

func setupTesterSvcTest(t *testing.T) (*TesterService, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.Tester{}, &model.IDMapping{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}

	svc := NewTesterService(
		repository.NewTesterRepository(db),
		repository.NewIDMappingRepository(db),
	)
	return svc, db
}

func TestTesterSvc_Create(t *testing.T) {
	svc, db := setupTesterSvcTest(t)
	ctx := context.Background()

	tester, err := svc.Create(ctx, &dto.CreateTesterRequest{
		Name: "Alice",
		IDs:  []string{"auth0|alice", "google-oauth2|alice"},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if tester.UUID == "" {
		t.Error("应分配 UUID")
	}

	// 映射应同步落库
	var count int64
	db.Model(&model.IDMapping{}).Where("tester_uuid = ?", tester.UUID).Count(&count)
	if count != 2 {
		t.Errorf("映射条数 = %d, want 2", count)
	}
}

func TestTesterSvc_CreateDuplicateID(t *testing.T) {
	svc, db := setupTesterSvcTest(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, &dto.CreateTesterRequest{
		Name: "Alice",
		IDs:  []string{"auth0|alice"},
	}); err != nil {
		t.Fatalf("第一次 Create() error = %v", err)
	}

	// 第二个测试员的身份列表里有一个已被占用，整体拒绝
	_, err := svc.Create(ctx, &dto.CreateTesterRequest{
		Name: "Bob",
		IDs:  []string{"auth0|bob", "auth0|alice"},
	})
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("error = %v, want ErrDuplicateID", err)
	}

	// 失败时不落任何数据：没有 Bob，也没有 auth0|bob 的映射
	var testerCount int64
	db.Model(&model.Tester{}).Count(&testerCount)
	if testerCount != 1 {
		t.Errorf("测试员条数 = %d, want 1", testerCount)
	}
	var mappingCount int64
	db.Model(&model.IDMapping{}).Where("external_id = ?", "auth0|bob").Count(&mappingCount)
	if mappingCount != 0 {
		t.Errorf("失败的创建不应写入映射, got %d", mappingCount)
	}
}

func TestTesterSvc_CreateDuplicateIDWithinRequest(t *testing.T) {
	svc, db := setupTesterSvcTest(t)
	ctx := context.Background()

	// 同一请求里重复出现的身份去重后正常创建，而不是撞唯一约束后残留半套数据
	tester, err := svc.Create(ctx, &dto.CreateTesterRequest{
		Name: "Alice",
		IDs:  []string{"auth0|alice", "auth0|alice"},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(tester.IDs) != 1 {
		t.Errorf("len(IDs) = %d, want 1", len(tester.IDs))
	}

	var testerCount, mappingCount int64
	db.Model(&model.Tester{}).Count(&testerCount)
	db.Model(&model.IDMapping{}).Count(&mappingCount)
	if testerCount != 1 || mappingCount != 1 {
		t.Errorf("落库条数 = %d 测试员 / %d 映射, want 1/1", testerCount, mappingCount)
	}
}

func TestTesterSvc_AddID(t *testing.T) {
	svc, _ := setupTesterSvcTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateTesterRequest{Name: "Alice", IDs: []string{"auth0|alice"}})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tester, err := svc.AddID(ctx, "Alice", "github|alice")
	if err != nil {
		t.Fatalf("AddID() error = %v", err)
	}
	if len(tester.IDs) != 2 {
		t.Errorf("len(IDs) = %d, want 2", len(tester.IDs))
	}

	// 新身份可以解析到同一个测试员
	resolved, err := svc.ResolveBySubject(ctx, "github|alice")
	if err != nil {
		t.Fatalf("ResolveBySubject() error = %v", err)
	}
	if resolved.UUID != created.UUID {
		t.Errorf("UUID = %s, want %s", resolved.UUID, created.UUID)
	}
}

func TestTesterSvc_AddIDErrors(t *testing.T) {
	svc, _ := setupTesterSvcTest(t)
	ctx := context.Background()

	svc.Create(ctx, &dto.CreateTesterRequest{Name: "Alice", IDs: []string{"auth0|alice"}})
	svc.Create(ctx, &dto.CreateTesterRequest{Name: "Bob", IDs: []string{"auth0|bob"}})

	// 找不到测试员
	if _, err := svc.AddID(ctx, "Nobody", "auth0|x"); !errors.Is(err, ErrTesterNotFound) {
		t.Errorf("error = %v, want ErrTesterNotFound", err)
	}

	// 身份已挂在别人名下
	if _, err := svc.AddID(ctx, "Bob", "auth0|alice"); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("error = %v, want ErrDuplicateID", err)
	}

	// 身份已挂在自己名下也算冲突
	if _, err := svc.AddID(ctx, "Alice", "auth0|alice"); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("error = %v, want ErrDuplicateID", err)
	}
}

func TestTesterSvc_List(t *testing.T) {
	svc, _ := setupTesterSvcTest(t)
	ctx := context.Background()

	svc.Create(ctx, &dto.CreateTesterRequest{Name: "Charlie", IDs: []string{"c"}})
	svc.Create(ctx, &dto.CreateTesterRequest{Name: "Alice", IDs: []string{"a"}})

	vos, total, err := svc.List(ctx, &dto.ListTestersRequest{Page: 1, Limit: 10, SortBy: "name"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 2 {
		t.Errorf("total = %d, want 2", total)
	}
	if vos[0].Name != "Alice" {
		t.Errorf("首条 = %s, want Alice", vos[0].Name)
	}
}

func TestTesterSvc_Delete(t *testing.T) {
	svc, db := setupTesterSvcTest(t)
	ctx := context.Background()

	tester, _ := svc.Create(ctx, &dto.CreateTesterRequest{Name: "Alice", IDs: []string{"auth0|alice"}})

	if err := svc.Delete(ctx, tester.UUID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := svc.ResolveBySubject(ctx, "auth0|alice"); !errors.Is(err, ErrTesterNotFound) {
		t.Errorf("删除后身份不应再解析到测试员, err = %v", err)
	}

	var count int64
	db.Model(&model.IDMapping{}).Where("external_id = ?", "auth0|alice").Count(&count)
	if count != 0 {
		t.Errorf("删除后映射应清理, got %d", count)
	}

	// 重复删除
	if err := svc.Delete(ctx, tester.UUID); !errors.Is(err, ErrTesterNotFound) {
		t.Errorf("重复删除应返回 ErrTesterNotFound, got %v", err)
	}
}
