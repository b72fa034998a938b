package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"feedback_flow_v1_202608/internal/config"
	"feedback_flow_v1_202608/internal/controller"
	"feedback_flow_v1_202608/internal/middleware"
	"feedback_flow_v1_202608/internal/model"
	"feedback_flow_v1_202608/internal/repository"
	"feedback_flow_v1_202608/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==================== 测试装配 ====================

// setupTestServer 用 sqlite 内存库装配完整服务栈
func setupTestServer(t *testing.T) *gin.Engine {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	err = db.AutoMigrate(
		&model.Tester{}, &model.IDMapping{},
		&model.Purchase{}, &model.Feedback{}, &model.Publication{}, &model.Refund{},
	)
	if err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}

	cfg := &config.Config{
		CORSOrigin: "*",
		Permissions: config.PermissionConfig{
			Read:   "read:purchases",
			Write:  "write:purchases",
			Admin:  "admin:testers",
			Search: "search:purchases",
			Backup: "backup:data",
		},
		// 测试里不触发限流
		RateLimit: config.RateLimitConfig{Requests: 10000, WindowSeconds: 60},
		Search:    config.SearchConfig{MinQueryLength: 4, DefaultLimit: 50, MaxLimit: 1000},
	}

	middleware.SetJWTConfig(&middleware.JWTConfig{
		SecretKey: "router-test-secret",
		Audience:  "https://api.feedback-flow.test",
	})

	testerRepo := repository.NewTesterRepository(db)
	mappingRepo := repository.NewIDMappingRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	publicationRepo := repository.NewPublicationRepository(db)
	refundRepo := repository.NewRefundRepository(db)

	purchaseSvc := service.NewPurchaseService(purchaseRepo, mappingRepo, nil, cfg.Search)

	ctls := &Controllers{
		Tester:      controller.NewTesterController(service.NewTesterService(testerRepo, mappingRepo)),
		Purchase:    controller.NewPurchaseController(purchaseSvc),
		Feedback:    controller.NewFeedbackController(service.NewFeedbackService(feedbackRepo, purchaseSvc)),
		Publication: controller.NewPublicationController(service.NewPublicationService(publicationRepo, purchaseSvc)),
		Refund:      controller.NewRefundController(service.NewRefundService(refundRepo, purchaseRepo, purchaseSvc)),
		Backup: controller.NewBackupController(service.NewBackupService(
			testerRepo, mappingRepo, purchaseRepo, feedbackRepo, publicationRepo, refundRepo,
		)),
	}

	return SetupRouter(cfg, ctls)
}

func token(t *testing.T, subject string, permissions ...string) string {
	tok, err := middleware.GenerateAccessToken(subject, permissions, time.Hour)
	if err != nil {
		t.Fatalf("签发测试 token 失败: %v", err)
	}
	return tok
}

func doJSON(r http.Handler, method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("响应解析失败: %v (%s)", err, w.Body.String())
	}
	return body
}

// createTester 用 admin 权限建测试员，返回 uuid
func createTester(t *testing.T, r http.Handler, name string, ids ...string) string {
	admin := token(t, "auth0|admin", "admin:testers")
	w := doJSON(r, http.MethodPost, "/api/tester", admin, map[string]interface{}{
		"name": name,
		"ids":  ids,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("创建测试员 status = %d: %s", w.Code, w.Body.String())
	}
	return decode(t, w)["uuid"].(string)
}

// createPurchase 以指定 subject 建采购，返回 id
func createPurchase(t *testing.T, r http.Handler, subject, order, description string, amount float64) string {
	writer := token(t, subject, "write:purchases")
	w := doJSON(r, http.MethodPost, "/api/purchase", writer, map[string]interface{}{
		"date":        "2026-05-01T12:00:00Z",
		"order":       order,
		"description": description,
		"amount":      amount,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("创建采购 status = %d: %s", w.Code, w.Body.String())
	}
	return decode(t, w)["id"].(string)
}

// ==================== 路由与信封 ====================

func TestRouter_NoRoute(t *testing.T) {
	r := setupTestServer(t)

	w := doJSON(r, http.MethodGet, "/api/nonexistent", "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	body := decode(t, w)
	if body["success"] != false {
		t.Errorf("未匹配路由应返回标准信封: %s", w.Body.String())
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	r := setupTestServer(t)

	req, _ := http.NewRequest(http.MethodOptions, "/api/tester", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("预检 status = %d, want 204", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("预检响应应带 CORS 头")
	}
}

// ==================== 权限 ====================

func TestRouter_PermissionEnforcement(t *testing.T) {
	r := setupTestServer(t)

	// 无 token
	w := doJSON(r, http.MethodPost, "/api/tester", "", map[string]interface{}{
		"name": "Alice", "ids": []string{"auth0|alice"},
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("无 token status = %d, want 401", w.Code)
	}

	// 有 token 但缺 admin scope
	readOnly := token(t, "auth0|alice", "read:purchases")
	w = doJSON(r, http.MethodPost, "/api/tester", readOnly, map[string]interface{}{
		"name": "Alice", "ids": []string{"auth0|alice"},
	})
	if w.Code != http.StatusForbidden {
		t.Errorf("缺 scope status = %d, want 403", w.Code)
	}

	// 搜索路由要的是 search scope，read 不够
	w = doJSON(r, http.MethodGet, "/api/purchases/search?q=test", readOnly, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("搜索缺 scope status = %d, want 403", w.Code)
	}
}

// ==================== 测试员 ====================

func TestRouter_TesterLifecycle(t *testing.T) {
	r := setupTestServer(t)
	admin := token(t, "auth0|admin", "admin:testers")

	uuid := createTester(t, r, "Alice", "auth0|alice")

	// 同一身份再建一个测试员 -> 409
	w := doJSON(r, http.MethodPost, "/api/tester", admin, map[string]interface{}{
		"name": "Impostor", "ids": []string{"auth0|alice"},
	})
	if w.Code != http.StatusConflict {
		t.Errorf("重复身份 status = %d, want 409", w.Code)
	}

	// 缺 ids -> 400
	w = doJSON(r, http.MethodPost, "/api/tester", admin, map[string]interface{}{"name": "NoIDs"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("缺 ids status = %d, want 400", w.Code)
	}

	// 列表
	w = doJSON(r, http.MethodGet, "/api/testers", admin, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("列表 status = %d: %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if body["total"].(float64) != 1 {
		t.Errorf("total = %v, want 1", body["total"])
	}

	// 调用者自查
	reader := token(t, "auth0|alice", "read:purchases")
	w = doJSON(r, http.MethodGet, "/api/tester/current", reader, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("current status = %d: %s", w.Code, w.Body.String())
	}
	data := decode(t, w)["data"].(map[string]interface{})
	if data["uuid"] != uuid {
		t.Errorf("current uuid = %v, want %s", data["uuid"], uuid)
	}

	// 追加身份
	w = doJSON(r, http.MethodPost, "/api/tester/id", admin, map[string]interface{}{
		"name": "Alice", "id": "github|alice",
	})
	if w.Code != http.StatusOK {
		t.Errorf("追加身份 status = %d: %s", w.Code, w.Body.String())
	}

	// 删除
	w = doJSON(r, http.MethodDelete, "/api/tester/"+uuid, admin, nil)
	if w.Code != http.StatusOK {
		t.Errorf("删除 status = %d: %s", w.Code, w.Body.String())
	}
	w = doJSON(r, http.MethodDelete, "/api/tester/"+uuid, admin, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("重复删除 status = %d, want 404", w.Code)
	}
}

// ==================== 采购 ====================

func TestRouter_PurchaseOwnership(t *testing.T) {
	r := setupTestServer(t)

	createTester(t, r, "Alice", "auth0|alice")
	createTester(t, r, "Bob", "auth0|bob")

	id := createPurchase(t, r, "auth0|alice", "ORDER-1", "wireless keyboard", 49.99)

	// 归属者可读
	alice := token(t, "auth0|alice", "read:purchases")
	w := doJSON(r, http.MethodGet, "/api/purchase/"+id, alice, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("归属者读取 status = %d: %s", w.Code, w.Body.String())
	}
	data := decode(t, w)["data"].(map[string]interface{})
	if data["order"] != "ORDER-1" {
		t.Errorf("order = %v, want ORDER-1", data["order"])
	}

	// 非归属者读到 404，与不存在不可区分
	bob := token(t, "auth0|bob", "read:purchases")
	w = doJSON(r, http.MethodGet, "/api/purchase/"+id, bob, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("非归属者读取 status = %d, want 404", w.Code)
	}
	w = doJSON(r, http.MethodGet, "/api/purchase/no-such-id", alice, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("不存在读取 status = %d, want 404", w.Code)
	}
}

func TestRouter_PurchaseListsAndAmounts(t *testing.T) {
	r := setupTestServer(t)

	createTester(t, r, "Alice", "auth0|alice")
	createPurchase(t, r, "auth0|alice", "ORDER-1", "keyboard", 50)
	createPurchase(t, r, "auth0|alice", "ORDER-2", "mouse", 25)

	alice := token(t, "auth0|alice", "read:purchases")

	w := doJSON(r, http.MethodGet, "/api/purchases/not-refunded?page=1&limit=10", alice, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("not-refunded status = %d: %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if body["total"].(float64) != 2 {
		t.Errorf("total = %v, want 2", body["total"])
	}

	w = doJSON(r, http.MethodGet, "/api/purchases/refunded", alice, nil)
	body = decode(t, w)
	if body["total"].(float64) != 0 {
		t.Errorf("refunded total = %v, want 0", body["total"])
	}

	w = doJSON(r, http.MethodGet, "/api/purchases/amount/not-refunded", alice, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("amount status = %d: %s", w.Code, w.Body.String())
	}
	if amount := decode(t, w)["amount"].(float64); amount != 75 {
		t.Errorf("amount = %v, want 75", amount)
	}

	w = doJSON(r, http.MethodGet, "/api/purchases/amount/refunded", alice, nil)
	if amount := decode(t, w)["amount"].(float64); amount != 0 {
		t.Errorf("refunded amount = %v, want 0", amount)
	}
}

func TestRouter_PurchaseStatusEnvelope(t *testing.T) {
	r := setupTestServer(t)

	createTester(t, r, "Alice", "auth0|alice")
	for i := 0; i < 5; i++ {
		createPurchase(t, r, "auth0|alice", fmt.Sprintf("ORDER-%d", i), "item", 10)
	}

	alice := token(t, "auth0|alice", "read:purchases")
	w := doJSON(r, http.MethodGet, "/api/purchase-status?page=2&limit=2", alice, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("purchase-status status = %d: %s", w.Code, w.Body.String())
	}

	body := decode(t, w)
	pageInfo := body["pageInfo"].(map[string]interface{})
	if pageInfo["totalCount"].(float64) != 5 {
		t.Errorf("totalCount = %v, want 5", pageInfo["totalCount"])
	}
	if pageInfo["totalPages"].(float64) != 3 {
		t.Errorf("totalPages = %v, want 3", pageInfo["totalPages"])
	}
	if pageInfo["hasNextPage"] != true || pageInfo["hasPreviousPage"] != true {
		t.Errorf("第 2 页前后页标志错误: %v", pageInfo)
	}
	if len(body["data"].([]interface{})) != 2 {
		t.Errorf("data 长度 = %d, want 2", len(body["data"].([]interface{})))
	}
}

// 同前缀的参数路由和静态路由不能互吞
func TestRouter_PurchaseStatusNotSwallowedByParam(t *testing.T) {
	r := setupTestServer(t)

	createTester(t, r, "Alice", "auth0|alice")
	alice := token(t, "auth0|alice", "read:purchases")

	// /api/purchase-status 走状态联查而不是 /api/purchase/:id
	w := doJSON(r, http.MethodGet, "/api/purchase-status", alice, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("purchase-status status = %d: %s", w.Code, w.Body.String())
	}
	if _, ok := decode(t, w)["pageInfo"]; !ok {
		t.Error("purchase-status 响应应带 pageInfo")
	}
}

// ==================== 搜索 ====================

func TestRouter_Search(t *testing.T) {
	r := setupTestServer(t)

	createTester(t, r, "Alice", "auth0|alice")
	createPurchase(t, r, "auth0|alice", "ORDER-CAFE", "Chaise en rotin Café", 89.50)

	searcher := token(t, "auth0|alice", "search:purchases")

	// 搜索词太短 -> 400
	w := doJSON(r, http.MethodGet, "/api/purchases/search?q=abc", searcher, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("短搜索词 status = %d, want 400", w.Code)
	}

	// 缺 q -> 400
	w = doJSON(r, http.MethodGet, "/api/purchases/search", searcher, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("缺 q status = %d, want 400", w.Code)
	}

	// 重音不敏感命中
	w = doJSON(r, http.MethodGet, "/api/purchases/search?q=cafe", searcher, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("搜索 status = %d: %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if body["total"].(float64) != 1 {
		t.Errorf("total = %v, want 1", body["total"])
	}
}

// ==================== 完整退款链路 ====================

func TestRouter_RefundLifecycle(t *testing.T) {
	r := setupTestServer(t)

	createTester(t, r, "Alice", "auth0|alice")
	id := createPurchase(t, r, "auth0|alice", "ORDER-1", "keyboard", 49.99)

	writer := token(t, "auth0|alice", "write:purchases")
	reader := token(t, "auth0|alice", "read:purchases")
	admin := token(t, "auth0|admin", "admin:testers")

	// 反馈
	w := doJSON(r, http.MethodPost, "/api/feedback", writer, map[string]interface{}{
		"purchase": id, "text": "five stars", "date": "2026-05-02T10:00:00Z",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("创建反馈 status = %d: %s", w.Code, w.Body.String())
	}

	// 反馈重复 -> 409
	w = doJSON(r, http.MethodPost, "/api/feedback", writer, map[string]interface{}{
		"purchase": id, "text": "again", "date": "2026-05-02T10:00:00Z",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("重复反馈 status = %d, want 409", w.Code)
	}

	// 此时还不 ready（缺发布凭证）
	w = doJSON(r, http.MethodGet, "/api/purchases/ready-for-refund", reader, nil)
	if total := decode(t, w)["total"].(float64); total != 0 {
		t.Errorf("缺发布凭证时 ready total = %v, want 0", total)
	}

	// 发布凭证
	w = doJSON(r, http.MethodPost, "/api/publication", writer, map[string]interface{}{
		"purchase": id, "screenshot": "data:image/png;base64,abc", "date": "2026-05-03T10:00:00Z",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("创建发布凭证 status = %d: %s", w.Code, w.Body.String())
	}

	// ready-for-refund 命中
	w = doJSON(r, http.MethodGet, "/api/purchases/ready-for-refund", reader, nil)
	if total := decode(t, w)["total"].(float64); total != 1 {
		t.Errorf("ready total = %v, want 1", total)
	}

	// 管理员退款
	w = doJSON(r, http.MethodPost, "/api/refund", admin, map[string]interface{}{
		"purchase": id, "amount": 49.99, "date": "2026-05-04T10:00:00Z", "transactionId": "TXN-1",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("退款 status = %d: %s", w.Code, w.Body.String())
	}

	// 重复退款 -> 409
	w = doJSON(r, http.MethodPost, "/api/refund", admin, map[string]interface{}{
		"purchase": id, "amount": 49.99, "date": "2026-05-04T10:00:00Z",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("重复退款 status = %d, want 409", w.Code)
	}

	// 退款后从 ready 和 not-refunded 消失，进入 refunded
	w = doJSON(r, http.MethodGet, "/api/purchases/ready-for-refund", reader, nil)
	if total := decode(t, w)["total"].(float64); total != 0 {
		t.Errorf("退款后 ready total = %v, want 0", total)
	}
	w = doJSON(r, http.MethodGet, "/api/purchases/refunded", reader, nil)
	if total := decode(t, w)["total"].(float64); total != 1 {
		t.Errorf("refunded total = %v, want 1", total)
	}

	// 金额合计随退款迁移
	w = doJSON(r, http.MethodGet, "/api/purchases/amount/refunded", reader, nil)
	if amount := decode(t, w)["amount"].(float64); amount != 49.99 {
		t.Errorf("refunded amount = %v, want 49.99", amount)
	}

	// 读退款记录
	w = doJSON(r, http.MethodGet, "/api/refund/"+id, reader, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("读退款 status = %d: %s", w.Code, w.Body.String())
	}
	data := decode(t, w)["data"].(map[string]interface{})
	if data["transactionId"] != "TXN-1" {
		t.Errorf("transactionId = %v, want TXN-1", data["transactionId"])
	}

	// 状态联查反映三个子记录
	w = doJSON(r, http.MethodGet, "/api/purchase-status", reader, nil)
	rows := decode(t, w)["data"].([]interface{})
	row := rows[0].(map[string]interface{})
	if row["hasFeedback"] != true || row["hasPublication"] != true || row["hasRefund"] != true {
		t.Errorf("状态联查错误: %v", row)
	}
}

// ==================== 备份 ====================

func TestRouter_BackupExport(t *testing.T) {
	r := setupTestServer(t)

	createTester(t, r, "Alice", "auth0|alice")
	createPurchase(t, r, "auth0|alice", "ORDER-1", "keyboard", 10)

	// backup scope 必须
	reader := token(t, "auth0|alice", "read:purchases")
	w := doJSON(r, http.MethodGet, "/api/backup", reader, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("缺 backup scope status = %d, want 403", w.Code)
	}

	operator := token(t, "auth0|ops", "backup:data")
	w = doJSON(r, http.MethodGet, "/api/backup", operator, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("备份导出 status = %d: %s", w.Code, w.Body.String())
	}
	data := decode(t, w)["data"].(map[string]interface{})
	if len(data["testers"].([]interface{})) != 1 {
		t.Errorf("备份应包含 1 个测试员: %v", data["testers"])
	}
	if len(data["purchases"].([]interface{})) != 1 {
		t.Errorf("备份应包含 1 条采购: %v", data["purchases"])
	}
}
