package repository

import (
	"context"
	"time"

	"feedback_flow_v1_202608/internal/model"

	"gorm.io/gorm"
)

// ==================== 过滤条件 ====================

// PurchaseFilter 采购列表过滤条件
type PurchaseFilter struct {
	TesterUUID string
	Refunded   *bool
	SortBy     string // 白名单字段，见 model.PurchaseSortFields
	SortDesc   bool
	Page       int
	PageSize   int
}

// ==================== 联查结果行 ====================

// ReadyForRefundRow 可退款采购（未退款 + 有反馈 + 有发布凭证）
type ReadyForRefundRow struct {
	ID                    string    `json:"id"`
	TesterUUID            string    `json:"testerUuid"`
	Date                  time.Time `json:"date"`
	OrderRef              string    `json:"order"`
	Description           string    `json:"description"`
	Amount                float64   `json:"amount"`
	Screenshot            string    `json:"screenshot"`
	FeedbackText          string    `json:"feedbackText"`
	FeedbackDate          time.Time `json:"feedbackDate"`
	PublicationDate       time.Time `json:"publicationDate"`
	PublicationScreenshot string    `json:"publicationScreenshot"`
}

// PurchaseStatusRow 采购状态联查行
// LEFT JOIN 一次取齐反馈/发布/退款的存在性，替代逐条查询
type PurchaseStatusRow struct {
	ID                    string     `json:"id"`
	Date                  time.Time  `json:"date"`
	OrderRef              string     `json:"order"`
	Description           string     `json:"description"`
	Amount                float64    `json:"amount"`
	Refunded              bool       `json:"refunded"`
	Screenshot            string     `json:"screenshot"`
	ScreenshotSummary     string     `json:"screenshotSummary,omitempty"`
	FeedbackID            *string    `json:"-"`
	FeedbackDate          *time.Time `json:"feedbackDate,omitempty"`
	PublicationID         *string    `json:"-"`
	PublicationDate       *time.Time `json:"publicationDate,omitempty"`
	PublicationScreenshot *string    `json:"publicationScreenshot,omitempty"`
	RefundID              *string    `json:"-"`
	RefundTransactionID   *string    `json:"refundTransactionId,omitempty"`
}

// ==================== PurchaseRepository 采购仓库 ====================

// PurchaseRepository 采购仓库接口
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *model.Purchase) error
	GetByID(ctx context.Context, id string) (*model.Purchase, error)
	Update(ctx context.Context, purchase *model.Purchase) error
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error

	List(ctx context.Context, filter PurchaseFilter) ([]model.Purchase, int64, error)
	ListByTester(ctx context.Context, testerUUID string) ([]model.Purchase, error)
	SumAmount(ctx context.Context, testerUUID string, refunded bool) (float64, error)

	ListReadyForRefund(ctx context.Context, filter PurchaseFilter) ([]ReadyForRefundRow, int64, error)
	ListStatus(ctx context.Context, testerUUID string, notRefundedOnly bool, page, pageSize int) ([]PurchaseStatusRow, int64, error)

	ListMissingSummary(ctx context.Context, limit int) ([]model.Purchase, error)
	All(ctx context.Context) ([]model.Purchase, error)
}

// ==================== 实现 ====================

type purchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository 创建采购仓库
func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) Create(ctx context.Context, purchase *model.Purchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

func (r *purchaseRepository) GetByID(ctx context.Context, id string) (*model.Purchase, error) {
	var purchase model.Purchase
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&purchase).Error
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *purchaseRepository) Update(ctx context.Context, purchase *model.Purchase) error {
	return r.db.WithContext(ctx).Save(purchase).Error
}

func (r *purchaseRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Purchase{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *purchaseRepository) Delete(ctx context.Context, id string) error {
	// 采购删除时连同反馈/发布/退款一起清理
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("purchase_id = ?", id).Delete(&model.Feedback{}).Error; err != nil {
			return err
		}
		if err := tx.Where("purchase_id = ?", id).Delete(&model.Publication{}).Error; err != nil {
			return err
		}
		if err := tx.Where("purchase_id = ?", id).Delete(&model.Refund{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Purchase{}).Error
	})
}

func (r *purchaseRepository) List(ctx context.Context, filter PurchaseFilter) ([]model.Purchase, int64, error) {
	var purchases []model.Purchase
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Purchase{})

	// 应用过滤条件
	if filter.TesterUUID != "" {
		db = db.Where("tester_uuid = ?", filter.TesterUUID)
	}
	if filter.Refunded != nil {
		db = db.Where("refunded = ?", *filter.Refunded)
	}

	// 计算总数
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 排序 + 分页
	db = db.Order(purchaseOrderClause(filter))
	if filter.Page > 0 && filter.PageSize > 0 {
		db = db.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	if err := db.Find(&purchases).Error; err != nil {
		return nil, 0, err
	}

	return purchases, total, nil
}

func (r *purchaseRepository) ListByTester(ctx context.Context, testerUUID string) ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.WithContext(ctx).
		Where("tester_uuid = ?", testerUUID).
		Order("date DESC").
		Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepository) SumAmount(ctx context.Context, testerUUID string, refunded bool) (float64, error) {
	var sum float64
	err := r.db.WithContext(ctx).Model(&model.Purchase{}).
		Where("tester_uuid = ? AND refunded = ?", testerUUID, refunded).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, err
}

// ListReadyForRefund 未退款且反馈和发布凭证齐全的采购
// INNER JOIN 即存在性过滤，分页/排序契约与普通列表一致
func (r *purchaseRepository) ListReadyForRefund(ctx context.Context, filter PurchaseFilter) ([]ReadyForRefundRow, int64, error) {
	var rows []ReadyForRefundRow
	var total int64

	base := r.db.WithContext(ctx).Model(&model.Purchase{}).
		Joins("INNER JOIN feedbacks f ON f.purchase_id = purchases.id AND f.deleted_at IS NULL").
		Joins("INNER JOIN publications pub ON pub.purchase_id = purchases.id AND pub.deleted_at IS NULL").
		Where("purchases.tester_uuid = ? AND purchases.refunded = ?", filter.TesterUUID, false)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	db := base.Select(`purchases.id AS id,
		purchases.tester_uuid AS tester_uuid,
		purchases.date AS date,
		purchases.order_ref AS order_ref,
		purchases.description AS description,
		purchases.amount AS amount,
		purchases.screenshot AS screenshot,
		f.text AS feedback_text,
		f.date AS feedback_date,
		pub.date AS publication_date,
		pub.screenshot AS publication_screenshot`).
		Order("purchases." + purchaseOrderClause(filter))

	if filter.Page > 0 && filter.PageSize > 0 {
		db = db.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	if err := db.Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// ListStatus 采购状态联查（一次 LEFT JOIN 取齐三张子表）
func (r *purchaseRepository) ListStatus(ctx context.Context, testerUUID string, notRefundedOnly bool, page, pageSize int) ([]PurchaseStatusRow, int64, error) {
	var rows []PurchaseStatusRow
	var total int64

	base := r.db.WithContext(ctx).Model(&model.Purchase{}).
		Where("purchases.tester_uuid = ?", testerUUID)
	if notRefundedOnly {
		base = base.Where("purchases.refunded = ?", false)
	}

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	db := base.
		Joins("LEFT JOIN feedbacks f ON f.purchase_id = purchases.id AND f.deleted_at IS NULL").
		Joins("LEFT JOIN publications pub ON pub.purchase_id = purchases.id AND pub.deleted_at IS NULL").
		Joins("LEFT JOIN refunds rf ON rf.purchase_id = purchases.id AND rf.deleted_at IS NULL").
		Select(`purchases.id AS id,
			purchases.date AS date,
			purchases.order_ref AS order_ref,
			purchases.description AS description,
			purchases.amount AS amount,
			purchases.refunded AS refunded,
			purchases.screenshot AS screenshot,
			purchases.screenshot_summary AS screenshot_summary,
			f.purchase_id AS feedback_id,
			f.date AS feedback_date,
			pub.purchase_id AS publication_id,
			pub.date AS publication_date,
			pub.screenshot AS publication_screenshot,
			rf.purchase_id AS refund_id,
			rf.transaction_id AS refund_transaction_id`).
		Order("purchases.date DESC")

	if page > 0 && pageSize > 0 {
		db = db.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	if err := db.Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// ListMissingSummary 有截图但还没有 AI 摘要的采购（摘要回填任务用）
func (r *purchaseRepository) ListMissingSummary(ctx context.Context, limit int) ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.WithContext(ctx).
		Where("screenshot <> '' AND screenshot_summary = ''").
		Order("created_at ASC").
		Limit(limit).
		Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepository) All(ctx context.Context) ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.WithContext(ctx).Find(&purchases).Error
	return purchases, err
}

// ==================== 排序工具 ====================

// purchaseOrderClause 白名单排序，默认按日期倒序
func purchaseOrderClause(filter PurchaseFilter) string {
	column, ok := model.PurchaseSortFields[filter.SortBy]
	if !ok {
		column = "date"
		if filter.SortBy == "" {
			return "date DESC"
		}
	}
	if filter.SortDesc {
		return column + " DESC"
	}
	return column + " ASC"
}
