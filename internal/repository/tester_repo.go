package repository

import (
	"context"

	"feedback_flow_v1_202608/internal/model"

	"gorm.io/gorm"
)

// ==================== 过滤条件 ====================

// TesterFilter 测试员列表过滤条件
type TesterFilter struct {
	SortBy   string // 白名单字段，见 model.TesterSortFields
	SortDesc bool
	Page     int
	PageSize int
}

// ==================== TesterRepository 测试员仓库 ====================

// TesterRepository 测试员仓库接口
type TesterRepository interface {
	Create(ctx context.Context, tester *model.Tester) error
	// CreateWithMappings 同一事务内创建测试员及其全部身份映射，任一失败整体回滚
	CreateWithMappings(ctx context.Context, tester *model.Tester, mappings []*model.IDMapping) error
	// AppendMapping 同一事务内写入新映射并持久化测试员的身份列表
	AppendMapping(ctx context.Context, tester *model.Tester, mapping *model.IDMapping) error
	GetByUUID(ctx context.Context, uuid string) (*model.Tester, error)
	GetByName(ctx context.Context, name string) (*model.Tester, error)
	List(ctx context.Context, filter TesterFilter) ([]model.Tester, int64, error)
	Update(ctx context.Context, tester *model.Tester) error
	Delete(ctx context.Context, uuid string) error
	All(ctx context.Context) ([]model.Tester, error)
}

// ==================== 实现 ====================

type testerRepository struct {
	db *gorm.DB
}

// NewTesterRepository 创建测试员仓库
func NewTesterRepository(db *gorm.DB) TesterRepository {
	return &testerRepository{db: db}
}

func (r *testerRepository) Create(ctx context.Context, tester *model.Tester) error {
	return r.db.WithContext(ctx).Create(tester).Error
}

func (r *testerRepository) CreateWithMappings(ctx context.Context, tester *model.Tester, mappings []*model.IDMapping) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(tester).Error; err != nil {
			return err
		}
		for _, m := range mappings {
			if err := tx.Create(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *testerRepository) AppendMapping(ctx context.Context, tester *model.Tester, mapping *model.IDMapping) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(mapping).Error; err != nil {
			return err
		}
		return tx.Save(tester).Error
	})
}

func (r *testerRepository) GetByUUID(ctx context.Context, uuid string) (*model.Tester, error) {
	var tester model.Tester
	err := r.db.WithContext(ctx).Where("uuid = ?", uuid).First(&tester).Error
	if err != nil {
		return nil, err
	}
	return &tester, nil
}

func (r *testerRepository) GetByName(ctx context.Context, name string) (*model.Tester, error) {
	var tester model.Tester
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&tester).Error
	if err != nil {
		return nil, err
	}
	return &tester, nil
}

func (r *testerRepository) List(ctx context.Context, filter TesterFilter) ([]model.Tester, int64, error) {
	var testers []model.Tester
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Tester{})

	// 计算总数
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 排序（仅允许白名单字段）
	column, ok := model.TesterSortFields[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}
	db = db.Order(column + " " + direction)

	// 分页
	if filter.Page > 0 && filter.PageSize > 0 {
		db = db.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	if err := db.Find(&testers).Error; err != nil {
		return nil, 0, err
	}

	return testers, total, nil
}

func (r *testerRepository) Update(ctx context.Context, tester *model.Tester) error {
	return r.db.WithContext(ctx).Save(tester).Error
}

func (r *testerRepository) Delete(ctx context.Context, uuid string) error {
	// 事务内同时清理身份映射，保证两边一致
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tester_uuid = ?", uuid).Delete(&model.IDMapping{}).Error; err != nil {
			return err
		}
		return tx.Where("uuid = ?", uuid).Delete(&model.Tester{}).Error
	})
}

func (r *testerRepository) All(ctx context.Context) ([]model.Tester, error) {
	var testers []model.Tester
	err := r.db.WithContext(ctx).Find(&testers).Error
	return testers, err
}
