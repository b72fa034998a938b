package service

import (
	"context"
	"errors"

	"feedback_flow_v1_202608/internal/api/dto"
	"feedback_flow_v1_202608/internal/model"
	"feedback_flow_v1_202608/internal/repository"

	"gorm.io/gorm"
)

// ==================== PublicationService 发布凭证服务 ====================

// PublicationService 发布凭证服务
// 发布凭证的存在决定采购是否具备退款资格
type PublicationService struct {
	publicationRepo repository.PublicationRepository
	purchaseSvc     *PurchaseService
}

// NewPublicationService 创建发布凭证服务
func NewPublicationService(publicationRepo repository.PublicationRepository, purchaseSvc *PurchaseService) *PublicationService {
	return &PublicationService{
		publicationRepo: publicationRepo,
		purchaseSvc:     purchaseSvc,
	}
}

// Create 创建发布凭证（采购归属校验 + 去重）
func (s *PublicationService) Create(ctx context.Context, subject string, req *dto.CreatePublicationRequest) (*model.Publication, error) {
	if _, err := s.purchaseSvc.getOwned(ctx, subject, req.Purchase); err != nil {
		return nil, err
	}

	exists, err := s.publicationRepo.Exists(ctx, req.Purchase)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyExists
	}

	publication := &model.Publication{
		PurchaseID: req.Purchase,
		Screenshot: req.Screenshot,
		Date:       req.Date,
	}
	if err := s.publicationRepo.Create(ctx, publication); err != nil {
		return nil, err
	}
	return publication, nil
}

// Get 按采购 ID 读取发布凭证（采购归属校验）
func (s *PublicationService) Get(ctx context.Context, subject, purchaseID string) (*model.Publication, error) {
	if _, err := s.purchaseSvc.getOwned(ctx, subject, purchaseID); err != nil {
		return nil, err
	}

	publication, err := s.publicationRepo.GetByPurchaseID(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, err
	}
	return publication, nil
}
