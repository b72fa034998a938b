package model

import (
	"time"
)

// ==================== Feedback 反馈 ====================

// Feedback 采购的反馈文本，一条采购最多一条
type Feedback struct {
	PurchaseID string    `gorm:"primaryKey;size:36" json:"purchase"`
	Text       string    `gorm:"type:text" json:"text"`
	Date       time.Time `json:"date"`

	BaseModel
}

func (*Feedback) TableName() string {
	return "feedbacks"
}

// ==================== Publication 发布凭证 ====================

// Publication 反馈公开发布的凭证（截图），是退款资格的前置条件
type Publication struct {
	PurchaseID string    `gorm:"primaryKey;size:36" json:"purchase"`
	Screenshot string    `gorm:"type:text" json:"screenshot"`
	Date       time.Time `json:"date"`

	BaseModel
}

func (*Publication) TableName() string {
	return "publications"
}

// ==================== Refund 退款 ====================

// Refund 退款记录，存在即意味着对应采购 Refunded = true
type Refund struct {
	PurchaseID    string    `gorm:"primaryKey;size:36" json:"purchase"`
	Amount        float64   `json:"amount"`
	Date          time.Time `json:"date"`
	TransactionID string    `gorm:"size:255" json:"transactionId,omitempty"`

	BaseModel
}

func (*Refund) TableName() string {
	return "refunds"
}
