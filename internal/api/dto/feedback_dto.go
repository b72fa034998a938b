package dto

import "time"

// ==================== 反馈 ====================

// CreateFeedbackRequest 创建反馈请求
type CreateFeedbackRequest struct {
	Purchase string    `json:"purchase" binding:"required"`
	Text     string    `json:"text" binding:"required"`
	Date     time.Time `json:"date" binding:"required"`
}

// ==================== 发布凭证 ====================

// CreatePublicationRequest 创建发布凭证请求
type CreatePublicationRequest struct {
	Purchase   string    `json:"purchase" binding:"required"`
	Screenshot string    `json:"screenshot" binding:"required"`
	Date       time.Time `json:"date" binding:"required"`
}

// ==================== 退款 ====================

// CreateRefundRequest 创建退款请求（管理员）
type CreateRefundRequest struct {
	Purchase      string    `json:"purchase" binding:"required"`
	Amount        float64   `json:"amount" binding:"required,gt=0"`
	Date          time.Time `json:"date" binding:"required"`
	TransactionID string    `json:"transactionId"`
}
