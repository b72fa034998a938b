package repository

import (
	"context"

	"feedback_flow_v1_202608/internal/model"

	"gorm.io/gorm"
)

// ==================== RefundRepository 退款仓库 ====================

// RefundRepository 退款仓库接口（按采购 ID 一对一）
type RefundRepository interface {
	// CreateAndMarkRefunded 创建退款并在同一事务内把采购标记为已退款
	CreateAndMarkRefunded(ctx context.Context, refund *model.Refund) error
	GetByPurchaseID(ctx context.Context, purchaseID string) (*model.Refund, error)
	Exists(ctx context.Context, purchaseID string) (bool, error)
	All(ctx context.Context) ([]model.Refund, error)
}

// ==================== 实现 ====================

type refundRepository struct {
	db *gorm.DB
}

// NewRefundRepository 创建退款仓库
func NewRefundRepository(db *gorm.DB) RefundRepository {
	return &refundRepository{db: db}
}

func (r *refundRepository) CreateAndMarkRefunded(ctx context.Context, refund *model.Refund) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(refund).Error; err != nil {
			return err
		}
		return tx.Model(&model.Purchase{}).
			Where("id = ?", refund.PurchaseID).
			Update("refunded", true).Error
	})
}

func (r *refundRepository) GetByPurchaseID(ctx context.Context, purchaseID string) (*model.Refund, error) {
	var refund model.Refund
	err := r.db.WithContext(ctx).Where("purchase_id = ?", purchaseID).First(&refund).Error
	if err != nil {
		return nil, err
	}
	return &refund, nil
}

func (r *refundRepository) Exists(ctx context.Context, purchaseID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Refund{}).
		Where("purchase_id = ?", purchaseID).
		Count(&count).Error
	return count > 0, err
}

func (r *refundRepository) All(ctx context.Context) ([]model.Refund, error) {
	var refunds []model.Refund
	err := r.db.WithContext(ctx).Find(&refunds).Error
	return refunds, err
}
