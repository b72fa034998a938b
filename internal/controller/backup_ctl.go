package controller

import (
	"net/http"

	"feedback_flow_v1_202608/internal/service"

	"github.com/gin-gonic/gin"
)

// ==================== BackupController 备份控制器 ====================

// BackupController 备份控制器
type BackupController struct {
	backupService *service.BackupService
}

// NewBackupController 创建备份控制器
func NewBackupController(backupService *service.BackupService) *BackupController {
	return &BackupController{backupService: backupService}
}

// Export 全量数据导出
// @Summary 全量数据导出
// @Tags Backup
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /backup [get]
func (c *BackupController) Export(ctx *gin.Context) {
	dump, err := c.backupService.Export(ctx.Request.Context())
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    dump,
	})
}
