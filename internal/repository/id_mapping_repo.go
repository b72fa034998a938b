package repository

import (
	"context"
	"errors"

	"feedback_flow_v1_202608/internal/model"

	"gorm.io/gorm"
)

// ==================== IDMappingRepository 身份映射仓库 ====================

// IDMappingRepository 外部身份映射仓库接口
type IDMappingRepository interface {
	Create(ctx context.Context, mapping *model.IDMapping) error
	Exists(ctx context.Context, externalID string) (bool, error)
	ResolveTesterUUID(ctx context.Context, externalID string) (string, error)
	DeleteByTester(ctx context.Context, testerUUID string) error
	All(ctx context.Context) ([]model.IDMapping, error)
}

// ==================== 实现 ====================

type idMappingRepository struct {
	db *gorm.DB
}

// NewIDMappingRepository 创建身份映射仓库
func NewIDMappingRepository(db *gorm.DB) IDMappingRepository {
	return &idMappingRepository{db: db}
}

func (r *idMappingRepository) Create(ctx context.Context, mapping *model.IDMapping) error {
	return r.db.WithContext(ctx).Create(mapping).Error
}

func (r *idMappingRepository) Exists(ctx context.Context, externalID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.IDMapping{}).
		Where("external_id = ?", externalID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ResolveTesterUUID 解析调用者身份，查不到返回空串（不报错，由上层决定 401/404）
func (r *idMappingRepository) ResolveTesterUUID(ctx context.Context, externalID string) (string, error) {
	var mapping model.IDMapping
	err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&mapping).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return mapping.TesterUUID, nil
}

func (r *idMappingRepository) DeleteByTester(ctx context.Context, testerUUID string) error {
	return r.db.WithContext(ctx).Where("tester_uuid = ?", testerUUID).Delete(&model.IDMapping{}).Error
}

func (r *idMappingRepository) All(ctx context.Context) ([]model.IDMapping, error) {
	var mappings []model.IDMapping
	err := r.db.WithContext(ctx).Find(&mappings).Error
	return mappings, err
}
