package router

import (
	"net/http"
	"time"

	"feedback_flow_v1_202608/internal/config"
	"feedback_flow_v1_202608/internal/controller"
	"feedback_flow_v1_202608/internal/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "feedback_flow_v1_202608/docs"
)

// Controllers 控制器集合
type Controllers struct {
	Tester      *controller.TesterController
	Purchase    *controller.PurchaseController
	Feedback    *controller.FeedbackController
	Publication *controller.PublicationController
	Refund      *controller.RefundController
	Backup      *controller.BackupController
}

// SetupRouter 组装引擎：CORS -> 限流 -> 按路由挂权限
func SetupRouter(cfg *config.Config, ctls *Controllers) *gin.Engine {
	r := gin.New()

	// panic 统一转 500，不向客户端泄漏内部错误
	r.Use(gin.CustomRecovery(func(c *gin.Context, _ interface{}) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Internal server error",
		})
	}))

	r.Use(middleware.CORS(cfg.CORSOrigin))

	limiter := middleware.NewPathRateLimiter(
		cfg.RateLimit.Requests,
		time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
	)
	r.Use(middleware.RateLimit(limiter))

	// 未匹配路由统一 404 信封
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Not found",
		})
	})

	// Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	read := middleware.RequirePermission(cfg.Permissions.Read)
	write := middleware.RequirePermission(cfg.Permissions.Write)
	admin := middleware.RequirePermission(cfg.Permissions.Admin)
	search := middleware.RequirePermission(cfg.Permissions.Search)
	backup := middleware.RequirePermission(cfg.Permissions.Backup)

	// API 路由组
	api := r.Group("/api")
	{
		// tester 测试员管理
		api.POST("/tester", admin, ctls.Tester.Create)
		api.POST("/tester/id", admin, ctls.Tester.AddID)
		api.GET("/testers", admin, ctls.Tester.List)
		api.GET("/tester/current", read, ctls.Tester.Current)
		api.DELETE("/tester/:uuid", admin, ctls.Tester.Delete)

		// purchase 采购
		api.POST("/purchase", write, ctls.Purchase.Create)
		api.GET("/purchase/:id", read, ctls.Purchase.Get)
		api.PUT("/purchase/:id", admin, ctls.Purchase.Update)
		api.DELETE("/purchase/:id", write, ctls.Purchase.Delete)

		purchases := api.Group("/purchases")
		{
			purchases.GET("/not-refunded", read, ctls.Purchase.ListNotRefunded)
			purchases.GET("/refunded", read, ctls.Purchase.ListRefunded)
			purchases.GET("/ready-for-refund", read, ctls.Purchase.ListReadyForRefund)
			purchases.GET("/amount/refunded", read, ctls.Purchase.RefundedAmount)
			purchases.GET("/amount/not-refunded", read, ctls.Purchase.NotRefundedAmount)
			purchases.GET("/search", search, ctls.Purchase.Search)
		}

		// 状态联查（注意与 /purchase/:id 不同段数，互不吞路由）
		api.GET("/purchase-status", read, ctls.Purchase.Status)

		// feedback / publication / refund 子记录
		api.POST("/feedback", write, ctls.Feedback.Create)
		api.GET("/feedback/:purchaseId", read, ctls.Feedback.Get)
		api.POST("/publication", write, ctls.Publication.Create)
		api.GET("/publication/:purchaseId", read, ctls.Publication.Get)
		api.POST("/refund", admin, ctls.Refund.Create)
		api.GET("/refund/:purchaseId", read, ctls.Refund.Get)

		// backup 全量导出
		api.GET("/backup", backup, ctls.Backup.Export)
	}

	return r
}
