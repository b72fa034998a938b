package controller

import (
	"net/http"

	"feedback_flow_v1_202608/internal/api/dto"
	"feedback_flow_v1_202608/internal/middleware"
	"feedback_flow_v1_202608/internal/service"

	"github.com/gin-gonic/gin"
)

// ==================== RefundController 退款控制器 ====================

// RefundController 退款控制器
type RefundController struct {
	refundService *service.RefundService
}

// NewRefundController 创建退款控制器
func NewRefundController(refundService *service.RefundService) *RefundController {
	return &RefundController{refundService: refundService}
}

// Create 创建退款（管理员）
// @Summary 创建退款并把采购标记为已退款
// @Tags Refund
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateRefundRequest true "退款信息"
// @Success 201 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /refund [post]
func (c *RefundController) Create(ctx *gin.Context) {
	var req dto.CreateRefundRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	refund, err := c.refundService.Create(ctx.Request.Context(), &req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    refund,
	})
}

// Get 按采购 ID 查退款
// @Summary 按采购 ID 查退款
// @Tags Refund
// @Produce json
// @Security BearerAuth
// @Param purchaseId path string true "采购 ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /refund/{purchaseId} [get]
func (c *RefundController) Get(ctx *gin.Context) {
	refund, err := c.refundService.Get(ctx.Request.Context(), middleware.GetSubject(ctx), ctx.Param("purchaseId"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    refund,
	})
}
