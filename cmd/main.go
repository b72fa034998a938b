package main

import (
	"context"
	"errors"
	"feedback_flow_v1_202608/internal/config"
	"feedback_flow_v1_202608/internal/controller"
	"feedback_flow_v1_202608/internal/middleware"
	"feedback_flow_v1_202608/internal/model"
	"feedback_flow_v1_202608/internal/repository"
	"feedback_flow_v1_202608/internal/router"
	"feedback_flow_v1_202608/internal/service"
	"feedback_flow_v1_202608/internal/task"
	"feedback_flow_v1_202608/pkg/database"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	// 1. 加载配置
	cfg := loadConfig()

	// 2. 初始化数据库
	db := initDatabase(cfg)

	// 3. 初始化依赖
	deps := initDependencies(cfg, db)

	// 4. 启动定时任务
	initTasks(deps)

	// 5. 初始化路由
	r := router.SetupRouter(cfg, deps.Controllers)

	// 6. 启动服务
	startServer(cfg, r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	Config      *config.Config
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	Tester      repository.TesterRepository
	IDMapping   repository.IDMappingRepository
	Purchase    repository.PurchaseRepository
	Feedback    repository.FeedbackRepository
	Publication repository.PublicationRepository
	Refund      repository.RefundRepository
}

// Services 服务集合
type Services struct {
	Tester      *service.TesterService
	Purchase    *service.PurchaseService
	Feedback    *service.FeedbackService
	Publication *service.PublicationService
	Refund      *service.RefundService
	Backup      *service.BackupService
	Storage     *service.StorageService
	AI          *service.AIService
}

// ==================== 初始化函数 ====================

// loadConfig 加载配置并下发 JWT 配置
func loadConfig() *config.Config {
	cfg, err := config.Load(getEnv("CONFIG_PATH", ""))
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	middleware.SetJWTConfig(&middleware.JWTConfig{
		Domain:    cfg.Auth.Domain,
		Audience:  cfg.Auth.Audience,
		SecretKey: cfg.Auth.SecretKey,
	})

	return cfg
}

// initDatabase 初始化数据库
func initDatabase(cfg *config.Config) *gorm.DB {
	return database.InitDB(
		cfg.Database.DSN,
		database.Options{
			LogSQL:          cfg.Database.LogSQL,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetimeMinutes) * time.Minute,
		},
		// Tester
		&model.Tester{}, &model.IDMapping{},
		// Purchase
		&model.Purchase{},
		// Lifecycle
		&model.Feedback{}, &model.Publication{}, &model.Refund{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Config, db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := initRepositories(db)

	// -------- 存储 & AI 服务 --------
	storageSvc := initStorageService(cfg)
	aiSvc := service.NewAIService(cfg.AI)

	// -------- 业务服务 --------
	services := &Services{
		Storage: storageSvc,
		AI:      aiSvc,
	}

	services.Tester = service.NewTesterService(repos.Tester, repos.IDMapping)
	services.Purchase = service.NewPurchaseService(repos.Purchase, repos.IDMapping, aiSvc, cfg.Search)
	services.Feedback = service.NewFeedbackService(repos.Feedback, services.Purchase)
	services.Publication = service.NewPublicationService(repos.Publication, services.Purchase)
	services.Refund = service.NewRefundService(repos.Refund, repos.Purchase, services.Purchase)
	services.Backup = service.NewBackupService(
		repos.Tester, repos.IDMapping,
		repos.Purchase, repos.Feedback, repos.Publication, repos.Refund,
	)

	// -------- Controller 层 --------
	controllers := initControllers(services)

	return &Dependencies{
		Config:      cfg,
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// initRepositories 初始化所有仓库
func initRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Tester:      repository.NewTesterRepository(db),
		IDMapping:   repository.NewIDMappingRepository(db),
		Purchase:    repository.NewPurchaseRepository(db),
		Feedback:    repository.NewFeedbackRepository(db),
		Publication: repository.NewPublicationRepository(db),
		Refund:      repository.NewRefundRepository(db),
	}
}

// initStorageService 初始化存储服务
func initStorageService(cfg *config.Config) *service.StorageService {
	storageSvc, err := service.NewStorageService(cfg.Backup)
	if err != nil {
		log.Printf("警告: 存储服务初始化失败，备份上传不可用: %v", err)
		return nil
	}
	return storageSvc
}

// initControllers 初始化所有控制器
func initControllers(svc *Services) *router.Controllers {
	return &router.Controllers{
		Tester:      controller.NewTesterController(svc.Tester),
		Purchase:    controller.NewPurchaseController(svc.Purchase),
		Feedback:    controller.NewFeedbackController(svc.Feedback),
		Publication: controller.NewPublicationController(svc.Publication),
		Refund:      controller.NewRefundController(svc.Refund),
		Backup:      controller.NewBackupController(svc.Backup),
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) {
	// 夜间备份，依赖对象存储
	if deps.Services.Storage != nil {
		backupTask := task.NewBackupTask(deps.Services.Backup, deps.Services.Storage)
		backupTask.Start()
	}

	// 截图摘要补录，依赖 AI
	if deps.Services.AI.Enabled() {
		summaryTask := task.NewSummaryTask(deps.Repos.Purchase, deps.Services.AI)
		summaryTask.Start()
	}

	log.Println("定时任务已启动")
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(cfg *config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
