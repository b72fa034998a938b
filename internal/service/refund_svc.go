package service

import (
	"context"
	"errors"

	"feedback_flow_v1_202608/internal/api/dto"
	"feedback_flow_v1_202608/internal/model"
	"feedback_flow_v1_202608/internal/repository"

	"gorm.io/gorm"
)

// ==================== RefundService 退款服务 ====================

// RefundService 退款服务
// 创建退款是管理员操作，不做归属校验；读取走归属校验
type RefundService struct {
	refundRepo   repository.RefundRepository
	purchaseRepo repository.PurchaseRepository
	purchaseSvc  *PurchaseService
}

// NewRefundService 创建退款服务
func NewRefundService(
	refundRepo repository.RefundRepository,
	purchaseRepo repository.PurchaseRepository,
	purchaseSvc *PurchaseService,
) *RefundService {
	return &RefundService{
		refundRepo:   refundRepo,
		purchaseRepo: purchaseRepo,
		purchaseSvc:  purchaseSvc,
	}
}

// Create 创建退款并把采购标记为已退款（同一事务）
func (s *RefundService) Create(ctx context.Context, req *dto.CreateRefundRequest) (*model.Refund, error) {
	purchase, err := s.purchaseRepo.GetByID(ctx, req.Purchase)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, err
	}
	if purchase.Refunded {
		return nil, ErrAlreadyRefunded
	}

	exists, err := s.refundRepo.Exists(ctx, req.Purchase)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyRefunded
	}

	refund := &model.Refund{
		PurchaseID:    req.Purchase,
		Amount:        req.Amount,
		Date:          req.Date,
		TransactionID: req.TransactionID,
	}
	if err := s.refundRepo.CreateAndMarkRefunded(ctx, refund); err != nil {
		return nil, err
	}
	return refund, nil
}

// Get 按采购 ID 读取退款（采购归属校验）
func (s *RefundService) Get(ctx context.Context, subject, purchaseID string) (*model.Refund, error) {
	if _, err := s.purchaseSvc.getOwned(ctx, subject, purchaseID); err != nil {
		return nil, err
	}

	refund, err := s.refundRepo.GetByPurchaseID(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, err
	}
	return refund, nil
}
