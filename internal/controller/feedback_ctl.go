package controller

import (
	"net/http"

	"feedback_flow_v1_202608/internal/api/dto"
	"feedback_flow_v1_202608/internal/middleware"
	"feedback_flow_v1_202608/internal/service"

	"github.com/gin-gonic/gin"
)

// ==================== FeedbackController 反馈控制器 ====================

// FeedbackController 反馈控制器
type FeedbackController struct {
	feedbackService *service.FeedbackService
}

// NewFeedbackController 创建反馈控制器
func NewFeedbackController(feedbackService *service.FeedbackService) *FeedbackController {
	return &FeedbackController{feedbackService: feedbackService}
}

// Create 创建反馈
// @Summary 创建反馈
// @Tags Feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateFeedbackRequest true "反馈信息"
// @Success 201 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /feedback [post]
func (c *FeedbackController) Create(ctx *gin.Context) {
	var req dto.CreateFeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	feedback, err := c.feedbackService.Create(ctx.Request.Context(), middleware.GetSubject(ctx), &req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    feedback,
	})
}

// Get 按采购 ID 查反馈
// @Summary 按采购 ID 查反馈
// @Tags Feedback
// @Produce json
// @Security BearerAuth
// @Param purchaseId path string true "采购 ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /feedback/{purchaseId} [get]
func (c *FeedbackController) Get(ctx *gin.Context) {
	feedback, err := c.feedbackService.Get(ctx.Request.Context(), middleware.GetSubject(ctx), ctx.Param("purchaseId"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    feedback,
	})
}
