package controller

import (
	"errors"
	"log"
	"net/http"

	"feedback_flow_v1_202608/internal/service"

	"github.com/gin-gonic/gin"
)

// ==================== 错误映射 ====================

// handleServiceError 业务错误 -> HTTP 状态码
// 归属不符和不存在统一 404；未知错误 500，细节只进服务端日志
func handleServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrQueryTooShort):
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, service.ErrTesterNotFound),
		errors.Is(err, service.ErrPurchaseNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, service.ErrDuplicateID),
		errors.Is(err, service.ErrAlreadyExists),
		errors.Is(err, service.ErrAlreadyRefunded):
		ctx.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error()})
	default:
		log.Printf("[API] %s %s 处理失败: %v", ctx.Request.Method, ctx.Request.URL.Path, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
	}
}

// badRequest 参数校验失败
func badRequest(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   "Invalid request: " + err.Error(),
	})
}
