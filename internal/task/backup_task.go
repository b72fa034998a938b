package task

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"feedback_flow_v1_202608/internal/service"

	"github.com/robfig/cron/v3"
)

// ==================== BackupTask 定时备份 ====================

// BackupTask 每晚把全量导出上传到 S3
type BackupTask struct {
	BackupService  *service.BackupService
	StorageService *service.StorageService
	Cron           *cron.Cron
}

// NewBackupTask 创建备份任务
func NewBackupTask(backupSvc *service.BackupService, storageSvc *service.StorageService) *BackupTask {
	return &BackupTask{
		BackupService:  backupSvc,
		StorageService: storageSvc,
		Cron:           cron.New(cron.WithSeconds()),
	}
}

// Start 启动定时任务
func (t *BackupTask) Start() {
	// 每天 03:00 执行
	_, err := t.Cron.AddFunc("0 0 3 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		t.backupJob(ctx)
	})

	if err != nil {
		log.Fatalf("无法启动备份定时任务: %v", err)
	}

	t.Cron.Start()
	log.Println("备份任务已启动 (每天 03:00 上传一次)")
}

// Stop 停止任务
func (t *BackupTask) Stop() {
	t.Cron.Stop()
}

// backupJob 导出并上传
func (t *BackupTask) backupJob(ctx context.Context) {
	dump, err := t.BackupService.Export(ctx)
	if err != nil {
		log.Printf("[Cron] 备份导出失败: %v", err)
		return
	}

	data, err := json.Marshal(dump)
	if err != nil {
		log.Printf("[Cron] 备份序列化失败: %v", err)
		return
	}

	filename := "backup-" + time.Now().UTC().Format("20060102-150405") + ".json"
	key, err := t.StorageService.Upload(ctx, data, filename, "application/json")
	if err != nil {
		log.Printf("[Cron] 备份上传失败: %v", err)
		return
	}

	log.Printf("[Cron] 备份完成: %s (%d 字节)", key, len(data))
}
