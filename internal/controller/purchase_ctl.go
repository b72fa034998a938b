package controller

import (
	"net/http"

	"feedback_flow_v1_202608/internal/api/dto"
	"feedback_flow_v1_202608/internal/middleware"
	"feedback_flow_v1_202608/internal/service"

	"github.com/gin-gonic/gin"
)

// ==================== PurchaseController 采购控制器 ====================

// PurchaseController 采购控制器
type PurchaseController struct {
	purchaseService *service.PurchaseService
}

// NewPurchaseController 创建采购控制器
func NewPurchaseController(purchaseService *service.PurchaseService) *PurchaseController {
	return &PurchaseController{purchaseService: purchaseService}
}

// ==================== CRUD ====================

// Create 创建采购
// @Summary 创建采购
// @Tags Purchase
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePurchaseRequest true "采购信息"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /purchase [post]
func (c *PurchaseController) Create(ctx *gin.Context) {
	var req dto.CreatePurchaseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	purchase, err := c.purchaseService.Create(ctx.Request.Context(), middleware.GetSubject(ctx), &req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"id":      purchase.ID,
	})
}

// Get 采购详情
// @Summary 采购详情
// @Tags Purchase
// @Produce json
// @Security BearerAuth
// @Param id path string true "采购 ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /purchase/{id} [get]
func (c *PurchaseController) Get(ctx *gin.Context) {
	purchase, err := c.purchaseService.Get(ctx.Request.Context(), middleware.GetSubject(ctx), ctx.Param("id"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    purchase,
	})
}

// Update 更新采购（管理员）
// @Summary 更新采购
// @Tags Purchase
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "采购 ID"
// @Param request body dto.UpdatePurchaseRequest true "更新字段"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /purchase/{id} [put]
func (c *PurchaseController) Update(ctx *gin.Context) {
	var req dto.UpdatePurchaseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	purchase, err := c.purchaseService.Update(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    purchase,
	})
}

// Delete 删除采购
// @Summary 删除采购
// @Tags Purchase
// @Produce json
// @Security BearerAuth
// @Param id path string true "采购 ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /purchase/{id} [delete]
func (c *PurchaseController) Delete(ctx *gin.Context) {
	if err := c.purchaseService.Delete(ctx.Request.Context(), middleware.GetSubject(ctx), ctx.Param("id")); err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// ==================== 列表 ====================

// listByRefunded 按退款状态列表的公共实现
func (c *PurchaseController) listByRefunded(ctx *gin.Context, refunded bool) {
	var req dto.ListPurchasesRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	purchases, total, err := c.purchaseService.ListByRefunded(ctx.Request.Context(), middleware.GetSubject(ctx), refunded, &req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    purchases,
		"total":   total,
		"page":    req.Page,
		"limit":   req.Limit,
	})
}

// ListNotRefunded 未退款采购列表
// @Summary 未退款采购列表
// @Tags Purchase
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Param sortBy query string false "排序字段 date|order|amount|description"
// @Param desc query bool false "倒序"
// @Success 200 {object} map[string]interface{}
// @Router /purchases/not-refunded [get]
func (c *PurchaseController) ListNotRefunded(ctx *gin.Context) {
	c.listByRefunded(ctx, false)
}

// ListRefunded 已退款采购列表
// @Summary 已退款采购列表
// @Tags Purchase
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} map[string]interface{}
// @Router /purchases/refunded [get]
func (c *PurchaseController) ListRefunded(ctx *gin.Context) {
	c.listByRefunded(ctx, true)
}

// ListReadyForRefund 可退款采购列表
// @Summary 可退款采购列表（未退款且反馈、发布凭证齐全）
// @Tags Purchase
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} map[string]interface{}
// @Router /purchases/ready-for-refund [get]
func (c *PurchaseController) ListReadyForRefund(ctx *gin.Context) {
	var req dto.ListPurchasesRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	rows, total, err := c.purchaseService.ListReadyForRefund(ctx.Request.Context(), middleware.GetSubject(ctx), &req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    rows,
		"total":   total,
		"page":    req.Page,
		"limit":   req.Limit,
	})
}

// ==================== 金额合计 ====================

// sumAmount 金额合计的公共实现
func (c *PurchaseController) sumAmount(ctx *gin.Context, refunded bool) {
	amount, err := c.purchaseService.SumAmount(ctx.Request.Context(), middleware.GetSubject(ctx), refunded)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"amount":  amount,
	})
}

// RefundedAmount 已退款金额合计
// @Summary 已退款金额合计
// @Tags Purchase
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /purchases/amount/refunded [get]
func (c *PurchaseController) RefundedAmount(ctx *gin.Context) {
	c.sumAmount(ctx, true)
}

// NotRefundedAmount 未退款金额合计
// @Summary 未退款金额合计
// @Tags Purchase
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /purchases/amount/not-refunded [get]
func (c *PurchaseController) NotRefundedAmount(ctx *gin.Context) {
	c.sumAmount(ctx, false)
}

// ==================== 状态联查 ====================

// Status 采购状态列表
// @Summary 采购状态列表（反馈/发布/退款存在性）
// @Tags Purchase
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Param notRefundedOnly query bool false "只看未退款"
// @Success 200 {object} map[string]interface{}
// @Router /purchase-status [get]
func (c *PurchaseController) Status(ctx *gin.Context) {
	var req dto.PurchaseStatusRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	rows, pageInfo, err := c.purchaseService.Status(ctx.Request.Context(), middleware.GetSubject(ctx), &req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":  true,
		"data":     rows,
		"pageInfo": pageInfo,
	})
}

// ==================== 搜索 ====================

// Search 采购搜索
// @Summary 采购搜索（大小写/重音不敏感的子串匹配）
// @Tags Purchase
// @Produce json
// @Security BearerAuth
// @Param q query string true "搜索词，至少 4 个字符"
// @Param limit query int false "返回上限，默认 50，最大 1000"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /purchases/search [get]
func (c *PurchaseController) Search(ctx *gin.Context) {
	var req dto.SearchPurchasesRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	results, err := c.purchaseService.Search(ctx.Request.Context(), middleware.GetSubject(ctx), req.Query, req.Limit)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    results,
		"total":   len(results),
	})
}
