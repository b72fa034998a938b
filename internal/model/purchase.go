package model

import (
	"time"
)

// ==================== Purchase 采购记录 ====================

// Purchase 采购记录
// 归属某个测试员，退款后 Refunded 置 true
type Purchase struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	TesterUUID string `gorm:"index;size:36;not null" json:"testerUuid"`

	Date        time.Time `gorm:"index" json:"date"`
	OrderRef    string    `gorm:"column:order_ref;size:255" json:"order"`
	Description string    `gorm:"type:text" json:"description"`
	Amount      float64   `json:"amount"`

	// 截图（base64 data URL，可能很大）
	Screenshot        string `gorm:"type:text" json:"screenshot"`
	ScreenshotSummary string `gorm:"type:text" json:"screenshotSummary,omitempty"`

	Refunded bool `gorm:"index;default:false" json:"refunded"`

	BaseModel
}

func (*Purchase) TableName() string {
	return "purchases"
}

// ==================== 排序白名单 ====================

// PurchaseSortFields 采购列表允许的排序字段
// 防止前端传任意列名拼进 ORDER BY
var PurchaseSortFields = map[string]string{
	"date":        "date",
	"order":       "order_ref",
	"amount":      "amount",
	"description": "description",
}
