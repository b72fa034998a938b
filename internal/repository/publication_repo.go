package repository

import (
	"context"

	"feedback_flow_v1_202608/internal/model"

	"gorm.io/gorm"
)

// ==================== PublicationRepository 发布凭证仓库 ====================

// PublicationRepository 发布凭证仓库接口（按采购 ID 一对一）
type PublicationRepository interface {
	Create(ctx context.Context, publication *model.Publication) error
	GetByPurchaseID(ctx context.Context, purchaseID string) (*model.Publication, error)
	Exists(ctx context.Context, purchaseID string) (bool, error)
	All(ctx context.Context) ([]model.Publication, error)
}

// ==================== 实现 ====================

type publicationRepository struct {
	db *gorm.DB
}

// NewPublicationRepository 创建发布凭证仓库
func NewPublicationRepository(db *gorm.DB) PublicationRepository {
	return &publicationRepository{db: db}
}

func (r *publicationRepository) Create(ctx context.Context, publication *model.Publication) error {
	return r.db.WithContext(ctx).Create(publication).Error
}

func (r *publicationRepository) GetByPurchaseID(ctx context.Context, purchaseID string) (*model.Publication, error) {
	var publication model.Publication
	err := r.db.WithContext(ctx).Where("purchase_id = ?", purchaseID).First(&publication).Error
	if err != nil {
		return nil, err
	}
	return &publication, nil
}

func (r *publicationRepository) Exists(ctx context.Context, purchaseID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Publication{}).
		Where("purchase_id = ?", purchaseID).
		Count(&count).Error
	return count > 0, err
}

func (r *publicationRepository) All(ctx context.Context) ([]model.Publication, error) {
	var publications []model.Publication
	err := r.db.WithContext(ctx).Find(&publications).Error
	return publications, err
}
