package service

import (
	"context"
	"errors"

	"feedback_flow_v1_202608/internal/api/dto"
	"feedback_flow_v1_202608/internal/model"
	"feedback_flow_v1_202608/internal/repository"

	"gorm.io/gorm"
)

// ==================== FeedbackService 反馈服务 ====================

// FeedbackService 反馈服务（一条采购最多一条反馈）
type FeedbackService struct {
	feedbackRepo repository.FeedbackRepository
	purchaseSvc  *PurchaseService
}

// NewFeedbackService 创建反馈服务
func NewFeedbackService(feedbackRepo repository.FeedbackRepository, purchaseSvc *PurchaseService) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		purchaseSvc:  purchaseSvc,
	}
}

// Create 创建反馈（采购归属校验 + 去重）
func (s *FeedbackService) Create(ctx context.Context, subject string, req *dto.CreateFeedbackRequest) (*model.Feedback, error) {
	if _, err := s.purchaseSvc.getOwned(ctx, subject, req.Purchase); err != nil {
		return nil, err
	}

	exists, err := s.feedbackRepo.Exists(ctx, req.Purchase)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyExists
	}

	feedback := &model.Feedback{
		PurchaseID: req.Purchase,
		Text:       req.Text,
		Date:       req.Date,
	}
	if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

// Get 按采购 ID 读取反馈（采购归属校验）
func (s *FeedbackService) Get(ctx context.Context, subject, purchaseID string) (*model.Feedback, error) {
	if _, err := s.purchaseSvc.getOwned(ctx, subject, purchaseID); err != nil {
		return nil, err
	}

	feedback, err := s.feedbackRepo.GetByPurchaseID(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, err
	}
	return feedback, nil
}
