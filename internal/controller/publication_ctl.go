package controller

import (
	"net/http"

	"feedback_flow_v1_202608/internal/api/dto"
	"feedback_flow_v1_202608/internal/middleware"
	"feedback_flow_v1_202608/internal/service"

	"github.com/gin-gonic/gin"
)

// ==================== PublicationController 发布凭证控制器 ====================

// PublicationController 发布凭证控制器
type PublicationController struct {
	publicationService *service.PublicationService
}

// NewPublicationController 创建发布凭证控制器
func NewPublicationController(publicationService *service.PublicationService) *PublicationController {
	return &PublicationController{publicationService: publicationService}
}

// Create 创建发布凭证
// @Summary 创建发布凭证
// @Tags Publication
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePublicationRequest true "发布凭证"
// @Success 201 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /publication [post]
func (c *PublicationController) Create(ctx *gin.Context) {
	var req dto.CreatePublicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	publication, err := c.publicationService.Create(ctx.Request.Context(), middleware.GetSubject(ctx), &req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    publication,
	})
}

// Get 按采购 ID 查发布凭证
// @Summary 按采购 ID 查发布凭证
// @Tags Publication
// @Produce json
// @Security BearerAuth
// @Param purchaseId path string true "采购 ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /publication/{purchaseId} [get]
func (c *PublicationController) Get(ctx *gin.Context) {
	publication, err := c.publicationService.Get(ctx.Request.Context(), middleware.GetSubject(ctx), ctx.Param("purchaseId"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    publication,
	})
}
