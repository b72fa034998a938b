package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"feedback_flow_v1_202608/internal/api/dto"
	"feedback_flow_v1_202608/internal/config"
	"feedback_flow_v1_202608/internal/model"
	"feedback_flow_v1_202608/internal/repository"
	"feedback_flow_v1_202608/pkg/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ==================== PurchaseService 采购服务 ====================

// PurchaseService 采购服务
// 所有单条读写都先做归属校验：采购不存在或不归调用者所有，一律按不存在处理
type PurchaseService struct {
	purchaseRepo repository.PurchaseRepository
	mappingRepo  repository.IDMappingRepository
	aiSvc        *AIService
	searchCfg    config.SearchConfig
}

// NewPurchaseService 创建采购服务
func NewPurchaseService(
	purchaseRepo repository.PurchaseRepository,
	mappingRepo repository.IDMappingRepository,
	aiSvc *AIService,
	searchCfg config.SearchConfig,
) *PurchaseService {
	if searchCfg.MinQueryLength <= 0 {
		searchCfg.MinQueryLength = 4
	}
	if searchCfg.DefaultLimit <= 0 {
		searchCfg.DefaultLimit = 50
	}
	if searchCfg.MaxLimit <= 0 {
		searchCfg.MaxLimit = 1000
	}
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		mappingRepo:  mappingRepo,
		aiSvc:        aiSvc,
		searchCfg:    searchCfg,
	}
}

// resolveOwner 调用者外部身份 -> 测试员 UUID
func (s *PurchaseService) resolveOwner(ctx context.Context, subject string) (string, error) {
	testerUUID, err := s.mappingRepo.ResolveTesterUUID(ctx, subject)
	if err != nil {
		return "", err
	}
	if testerUUID == "" {
		return "", ErrTesterNotFound
	}
	return testerUUID, nil
}

// getOwned 加载采购并校验归属
func (s *PurchaseService) getOwned(ctx context.Context, subject, purchaseID string) (*model.Purchase, error) {
	testerUUID, err := s.resolveOwner(ctx, subject)
	if err != nil {
		return nil, err
	}

	purchase, err := s.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, err
	}
	if purchase.TesterUUID != testerUUID {
		return nil, ErrPurchaseNotFound
	}
	return purchase, nil
}

// ==================== CRUD ====================

// Create 创建采购，归属为调用者的测试员
func (s *PurchaseService) Create(ctx context.Context, subject string, req *dto.CreatePurchaseRequest) (*model.Purchase, error) {
	testerUUID, err := s.resolveOwner(ctx, subject)
	if err != nil {
		return nil, err
	}

	purchase := &model.Purchase{
		ID:          uuid.NewString(),
		TesterUUID:  testerUUID,
		Date:        req.Date,
		OrderRef:    req.Order,
		Description: req.Description,
		Amount:      req.Amount,
		Screenshot:  req.Screenshot,
	}
	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		return nil, err
	}

	// 截图摘要异步生成，失败只打日志，由回填任务兜底
	if s.aiSvc.Enabled() && purchase.Screenshot != "" {
		go s.fillSummary(purchase.ID, purchase.Screenshot)
	}

	return purchase, nil
}

func (s *PurchaseService) fillSummary(purchaseID, screenshot string) {
	ctx, cancel := context.WithTimeout(context.Background(), aiRequestTimeout)
	defer cancel()

	summary, err := s.aiSvc.SummarizeScreenshot(ctx, screenshot)
	if err != nil {
		log.Printf("[AI] 采购 %s 截图摘要生成失败: %v", purchaseID, err)
		return
	}
	if err := s.purchaseRepo.UpdateFields(ctx, purchaseID, map[string]interface{}{
		"screenshot_summary": summary,
	}); err != nil {
		log.Printf("[AI] 采购 %s 摘要写入失败: %v", purchaseID, err)
	}
}

// Get 按 ID 读取（归属校验）
func (s *PurchaseService) Get(ctx context.Context, subject, purchaseID string) (*model.Purchase, error) {
	return s.getOwned(ctx, subject, purchaseID)
}

// Update 管理员更新采购元数据（只改传了的字段）
func (s *PurchaseService) Update(ctx context.Context, purchaseID string, req *dto.UpdatePurchaseRequest) (*model.Purchase, error) {
	purchase, err := s.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Date != nil {
		fields["date"] = *req.Date
	}
	if req.Order != nil {
		fields["order_ref"] = *req.Order
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Amount != nil {
		fields["amount"] = *req.Amount
	}
	if req.Screenshot != nil {
		fields["screenshot"] = *req.Screenshot
		// 换了截图，旧摘要作废
		fields["screenshot_summary"] = ""
	}

	if len(fields) == 0 {
		return purchase, nil
	}
	if err := s.purchaseRepo.UpdateFields(ctx, purchaseID, fields); err != nil {
		return nil, err
	}
	return s.purchaseRepo.GetByID(ctx, purchaseID)
}

// Delete 删除采购（归属校验）
func (s *PurchaseService) Delete(ctx context.Context, subject, purchaseID string) error {
	if _, err := s.getOwned(ctx, subject, purchaseID); err != nil {
		return err
	}
	return s.purchaseRepo.Delete(ctx, purchaseID)
}

// ==================== 列表 ====================

// ListByRefunded 按退款状态分页列出调用者的采购
func (s *PurchaseService) ListByRefunded(ctx context.Context, subject string, refunded bool, req *dto.ListPurchasesRequest) ([]model.Purchase, int64, error) {
	testerUUID, err := s.resolveOwner(ctx, subject)
	if err != nil {
		return nil, 0, err
	}

	return s.purchaseRepo.List(ctx, repository.PurchaseFilter{
		TesterUUID: testerUUID,
		Refunded:   &refunded,
		SortBy:     req.SortBy,
		SortDesc:   req.SortDesc,
		Page:       req.Page,
		PageSize:   req.Limit,
	})
}

// ListReadyForRefund 可退款列表（未退款 + 有反馈 + 有发布凭证）
func (s *PurchaseService) ListReadyForRefund(ctx context.Context, subject string, req *dto.ListPurchasesRequest) ([]repository.ReadyForRefundRow, int64, error) {
	testerUUID, err := s.resolveOwner(ctx, subject)
	if err != nil {
		return nil, 0, err
	}

	return s.purchaseRepo.ListReadyForRefund(ctx, repository.PurchaseFilter{
		TesterUUID: testerUUID,
		SortBy:     req.SortBy,
		SortDesc:   req.SortDesc,
		Page:       req.Page,
		PageSize:   req.Limit,
	})
}

// SumAmount 已退款/未退款金额合计
func (s *PurchaseService) SumAmount(ctx context.Context, subject string, refunded bool) (float64, error) {
	testerUUID, err := s.resolveOwner(ctx, subject)
	if err != nil {
		return 0, err
	}
	return s.purchaseRepo.SumAmount(ctx, testerUUID, refunded)
}

// ==================== 状态联查 ====================

// Status 采购状态（反馈/发布/退款存在性），带 pageInfo 信封
func (s *PurchaseService) Status(ctx context.Context, subject string, req *dto.PurchaseStatusRequest) ([]dto.PurchaseStatusVO, *dto.PageInfo, error) {
	testerUUID, err := s.resolveOwner(ctx, subject)
	if err != nil {
		return nil, nil, err
	}

	rows, total, err := s.purchaseRepo.ListStatus(ctx, testerUUID, req.NotRefundedOnly, req.Page, req.Limit)
	if err != nil {
		return nil, nil, err
	}

	vos := make([]dto.PurchaseStatusVO, 0, len(rows))
	for _, row := range rows {
		vo := dto.PurchaseStatusVO{
			ID:                row.ID,
			Date:              row.Date,
			Order:             row.OrderRef,
			Description:       row.Description,
			Amount:            row.Amount,
			Refunded:          row.Refunded,
			Screenshot:        row.Screenshot,
			ScreenshotSummary: row.ScreenshotSummary,
			HasFeedback:       row.FeedbackID != nil,
			HasPublication:    row.PublicationID != nil,
			HasRefund:         row.RefundID != nil,
			FeedbackDate:      row.FeedbackDate,
			PublicationDate:   row.PublicationDate,
		}
		if row.PublicationScreenshot != nil {
			vo.PublicationScreenshot = *row.PublicationScreenshot
		}
		if row.RefundTransactionID != nil {
			vo.RefundTransactionID = *row.RefundTransactionID
		}
		vos = append(vos, vo)
	}

	return vos, BuildPageInfo(total, req.Page, req.Limit), nil
}

// BuildPageInfo 计算分页信封
func BuildPageInfo(total int64, page, limit int) *dto.PageInfo {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	info := &dto.PageInfo{
		TotalCount:      total,
		TotalPages:      totalPages,
		CurrentPage:     page,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
	if info.HasNextPage {
		info.NextPage = page + 1
	}
	if info.HasPreviousPage {
		info.PreviousPage = page - 1
	}
	return info
}

// ==================== 搜索 ====================

// SearchResult 搜索命中项
type SearchResult struct {
	ID          string  `json:"id"`
	Order       string  `json:"order"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Refunded    bool    `json:"refunded"`
}

// Search 大小写/重音不敏感的子串搜索
// 匹配字段：订单号、描述、金额（两位小数字符串）；只搜调用者自己的采购
func (s *PurchaseService) Search(ctx context.Context, subject, query string, limit int) ([]SearchResult, error) {
	if len([]rune(query)) < s.searchCfg.MinQueryLength {
		return nil, ErrQueryTooShort
	}

	if limit <= 0 {
		limit = s.searchCfg.DefaultLimit
	}
	if limit > s.searchCfg.MaxLimit {
		limit = s.searchCfg.MaxLimit
	}

	testerUUID, err := s.resolveOwner(ctx, subject)
	if err != nil {
		return nil, err
	}

	purchases, err := s.purchaseRepo.ListByTester(ctx, testerUUID)
	if err != nil {
		return nil, err
	}

	folded := utils.FoldString(query)
	results := make([]SearchResult, 0)
	for _, p := range purchases {
		amountStr := fmt.Sprintf("%.2f", p.Amount)
		if utils.FoldContains(p.OrderRef, folded) ||
			utils.FoldContains(p.Description, folded) ||
			utils.FoldContains(amountStr, folded) {
			results = append(results, SearchResult{
				ID:          p.ID,
				Order:       p.OrderRef,
				Description: p.Description,
				Amount:      p.Amount,
				Refunded:    p.Refunded,
			})
			if len(results) >= limit {
				break
			}
		}
	}

	return results, nil
}
