package dto

import "time"

// ==================== 采购创建/更新 ====================

// CreatePurchaseRequest 创建采购请求
type CreatePurchaseRequest struct {
	Date        time.Time `json:"date" binding:"required"`
	Order       string    `json:"order" binding:"required"`
	Description string    `json:"description" binding:"required"`
	Amount      float64   `json:"amount" binding:"required,gt=0"`
	Screenshot  string    `json:"screenshot"` // base64 data URL
}

// UpdatePurchaseRequest 更新采购请求（管理员）
// 指针字段区分 "没传" 和 "传了零值"
type UpdatePurchaseRequest struct {
	Date        *time.Time `json:"date"`
	Order       *string    `json:"order"`
	Description *string    `json:"description"`
	Amount      *float64   `json:"amount"`
	Screenshot  *string    `json:"screenshot"`
}

// ==================== 列表 ====================

// ListPurchasesRequest 采购列表请求
type ListPurchasesRequest struct {
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=20"`
	SortBy   string `form:"sortBy"` // date | order | amount | description
	SortDesc bool   `form:"desc"`
}

// ==================== 状态查询 ====================

// PurchaseStatusRequest 采购状态请求
type PurchaseStatusRequest struct {
	Page            int  `form:"page,default=1"`
	Limit           int  `form:"limit,default=20"`
	NotRefundedOnly bool `form:"notRefundedOnly"`
}

// PageInfo 状态查询的分页信封
type PageInfo struct {
	TotalCount      int64 `json:"totalCount"`
	TotalPages      int   `json:"totalPages"`
	CurrentPage     int   `json:"currentPage"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
	NextPage        int   `json:"nextPage"`
	PreviousPage    int   `json:"previousPage"`
}

// PurchaseStatusVO 采购状态视图对象
type PurchaseStatusVO struct {
	ID                    string     `json:"id"`
	Date                  time.Time  `json:"date"`
	Order                 string     `json:"order"`
	Description           string     `json:"description"`
	Amount                float64    `json:"amount"`
	Refunded              bool       `json:"refunded"`
	Screenshot            string     `json:"screenshot"`
	ScreenshotSummary     string     `json:"screenshotSummary,omitempty"`
	HasFeedback           bool       `json:"hasFeedback"`
	HasPublication        bool       `json:"hasPublication"`
	HasRefund             bool       `json:"hasRefund"`
	FeedbackDate          *time.Time `json:"feedbackDate,omitempty"`
	PublicationDate       *time.Time `json:"publicationDate,omitempty"`
	PublicationScreenshot string     `json:"publicationScreenshot,omitempty"`
	RefundTransactionID   string     `json:"refundTransactionId,omitempty"`
}

// ==================== 搜索 ====================

// SearchPurchasesRequest 采购搜索请求
type SearchPurchasesRequest struct {
	Query string `form:"q" binding:"required"`
	Limit int    `form:"limit,default=50"`
}
