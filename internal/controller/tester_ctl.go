package controller

import (
	"net/http"

	"feedback_flow_v1_202608/internal/api/dto"
	"feedback_flow_v1_202608/internal/middleware"
	"feedback_flow_v1_202608/internal/service"

	"github.com/gin-gonic/gin"
)

// ==================== TesterController 测试员控制器 ====================

// TesterController 测试员控制器
type TesterController struct {
	testerService *service.TesterService
}

// NewTesterController 创建测试员控制器
func NewTesterController(testerService *service.TesterService) *TesterController {
	return &TesterController{testerService: testerService}
}

// Create 创建测试员
// @Summary 创建测试员
// @Tags Tester
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTesterRequest true "测试员信息"
// @Success 201 {object} dto.CreateTesterResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /tester [post]
func (c *TesterController) Create(ctx *gin.Context) {
	var req dto.CreateTesterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	tester, err := c.testerService.Create(ctx.Request.Context(), &req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"uuid":    tester.UUID,
	})
}

// AddID 给测试员追加外部身份
// @Summary 追加外部身份
// @Tags Tester
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AddTesterIDRequest true "身份信息"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /tester/id [post]
func (c *TesterController) AddID(ctx *gin.Context) {
	var req dto.AddTesterIDRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	tester, err := c.testerService.AddID(ctx.Request.Context(), req.Name, req.ID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"uuid":    tester.UUID,
		"ids":     []string(tester.IDs),
	})
}

// List 测试员列表
// @Summary 测试员列表
// @Tags Tester
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Param sortBy query string false "排序字段 name|created_at"
// @Success 200 {object} map[string]interface{}
// @Router /testers [get]
func (c *TesterController) List(ctx *gin.Context) {
	var req dto.ListTestersRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	testers, total, err := c.testerService.List(ctx.Request.Context(), &req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    testers,
		"total":   total,
		"page":    req.Page,
		"limit":   req.Limit,
	})
}

// Current 当前调用者的测试员信息
// @Summary 当前调用者的测试员信息
// @Tags Tester
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.TesterVO
// @Failure 404 {object} map[string]interface{}
// @Router /tester/current [get]
func (c *TesterController) Current(ctx *gin.Context) {
	subject := middleware.GetSubject(ctx)

	tester, err := c.testerService.ResolveBySubject(ctx.Request.Context(), subject)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": dto.TesterVO{
			UUID:      tester.UUID,
			Name:      tester.Name,
			IDs:       tester.IDs,
			CreatedAt: tester.CreatedAt,
		},
	})
}

// Delete 删除测试员
// @Summary 删除测试员
// @Tags Tester
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "测试员 UUID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /tester/{uuid} [delete]
func (c *TesterController) Delete(ctx *gin.Context) {
	if err := c.testerService.Delete(ctx.Request.Context(), ctx.Param("uuid")); err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
