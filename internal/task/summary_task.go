package task

import (
	"context"
	"log"
	"time"

	"feedback_flow_v1_202608/internal/repository"
	"feedback_flow_v1_202608/internal/service"

	"github.com/robfig/cron/v3"
)

// ==================== SummaryTask 截图摘要回填 ====================

// SummaryTask 定时回填缺失的截图摘要
// 创建时异步生成失败的采购由这里兜底重试
type SummaryTask struct {
	PurchaseRepo repository.PurchaseRepository
	AIService    *service.AIService
	Cron         *cron.Cron

	batchSize int
	sleepTime time.Duration
}

// NewSummaryTask 创建摘要回填任务
func NewSummaryTask(purchaseRepo repository.PurchaseRepository, aiSvc *service.AIService) *SummaryTask {
	return &SummaryTask{
		PurchaseRepo: purchaseRepo,
		AIService:    aiSvc,
		Cron:         cron.New(cron.WithSeconds()),
		batchSize:    20,                     // 每轮最多处理 20 条
		sleepTime:    500 * time.Millisecond, // 两次调用间隔，避免打满配额
	}
}

// Start 启动定时任务
func (t *SummaryTask) Start() {
	// 每 30 分钟回填一轮
	_, err := t.Cron.AddFunc("0 0/30 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
		defer cancel()

		t.backfillJob(ctx)
	})

	if err != nil {
		log.Fatalf("无法启动摘要回填任务: %v", err)
	}

	t.Cron.Start()
	log.Println("摘要回填任务已启动 (每30分钟一轮)")
}

// Stop 停止任务
func (t *SummaryTask) Stop() {
	t.Cron.Stop()
}

// backfillJob 回填逻辑
func (t *SummaryTask) backfillJob(ctx context.Context) {
	purchases, err := t.PurchaseRepo.ListMissingSummary(ctx, t.batchSize)
	if err != nil {
		log.Printf("[Cron] 查询缺摘要采购失败: %v", err)
		return
	}
	if len(purchases) == 0 {
		return
	}

	log.Printf("[Cron] 开始回填 %d 条截图摘要", len(purchases))

	for _, p := range purchases {
		select {
		case <-ctx.Done():
			log.Println("[Cron] 摘要回填超时停止")
			return
		default:
		}

		summary, err := t.AIService.SummarizeScreenshot(ctx, p.Screenshot)
		if err != nil {
			log.Printf("[Cron] 采购 %s 摘要生成失败: %v", p.ID, err)
			continue
		}

		if err := t.PurchaseRepo.UpdateFields(ctx, p.ID, map[string]interface{}{
			"screenshot_summary": summary,
		}); err != nil {
			log.Printf("[Cron] 采购 %s 摘要写入失败: %v", p.ID, err)
		}

		time.Sleep(t.sleepTime)
	}
}
