package repository

import (
	"context"

	"feedback_flow_v1_202608/internal/model"

	"gorm.io/gorm"
)

// ==================== FeedbackRepository 反馈仓库 ====================

// FeedbackRepository 反馈仓库接口（按采购 ID 一对一）
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *model.Feedback) error
	GetByPurchaseID(ctx context.Context, purchaseID string) (*model.Feedback, error)
	Exists(ctx context.Context, purchaseID string) (bool, error)
	All(ctx context.Context) ([]model.Feedback, error)
}

// ==================== 实现 ====================

type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository 创建反馈仓库
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *model.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *feedbackRepository) GetByPurchaseID(ctx context.Context, purchaseID string) (*model.Feedback, error) {
	var feedback model.Feedback
	err := r.db.WithContext(ctx).Where("purchase_id = ?", purchaseID).First(&feedback).Error
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}

func (r *feedbackRepository) Exists(ctx context.Context, purchaseID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Feedback{}).
		Where("purchase_id = ?", purchaseID).
		Count(&count).Error
	return count > 0, err
}

func (r *feedbackRepository) All(ctx context.Context) ([]model.Feedback, error) {
	var feedbacks []model.Feedback
	err := r.db.WithContext(ctx).Find(&feedbacks).Error
	return feedbacks, err
}
