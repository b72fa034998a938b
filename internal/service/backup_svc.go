package service

import (
	"context"

	"feedback_flow_v1_202608/internal/model"
	"feedback_flow_v1_202608/internal/repository"
)

// ==================== BackupService 备份服务 ====================

// BackupDump 全量数据导出
type BackupDump struct {
	Testers      []model.Tester      `json:"testers"`
	IDMappings   []model.IDMapping   `json:"idMappings"`
	Purchases    []model.Purchase    `json:"purchases"`
	Feedbacks    []model.Feedback    `json:"feedbacks"`
	Publications []model.Publication `json:"publications"`
	Refunds      []model.Refund      `json:"refunds"`
}

// BackupService 备份服务，导出六个存储的全量数据
type BackupService struct {
	testerRepo      repository.TesterRepository
	mappingRepo     repository.IDMappingRepository
	purchaseRepo    repository.PurchaseRepository
	feedbackRepo    repository.FeedbackRepository
	publicationRepo repository.PublicationRepository
	refundRepo      repository.RefundRepository
}

// NewBackupService 创建备份服务
func NewBackupService(
	testerRepo repository.TesterRepository,
	mappingRepo repository.IDMappingRepository,
	purchaseRepo repository.PurchaseRepository,
	feedbackRepo repository.FeedbackRepository,
	publicationRepo repository.PublicationRepository,
	refundRepo repository.RefundRepository,
) *BackupService {
	return &BackupService{
		testerRepo:      testerRepo,
		mappingRepo:     mappingRepo,
		purchaseRepo:    purchaseRepo,
		feedbackRepo:    feedbackRepo,
		publicationRepo: publicationRepo,
		refundRepo:      refundRepo,
	}
}

// Export 导出全量数据
func (s *BackupService) Export(ctx context.Context) (*BackupDump, error) {
	dump := &BackupDump{}
	var err error

	if dump.Testers, err = s.testerRepo.All(ctx); err != nil {
		return nil, err
	}
	if dump.IDMappings, err = s.mappingRepo.All(ctx); err != nil {
		return nil, err
	}
	if dump.Purchases, err = s.purchaseRepo.All(ctx); err != nil {
		return nil, err
	}
	if dump.Feedbacks, err = s.feedbackRepo.All(ctx); err != nil {
		return nil, err
	}
	if dump.Publications, err = s.publicationRepo.All(ctx); err != nil {
		return nil, err
	}
	if dump.Refunds, err = s.refundRepo.All(ctx); err != nil {
		return nil, err
	}

	return dump, nil
}
