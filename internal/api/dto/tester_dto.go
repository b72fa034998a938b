package dto

import "time"

// ==================== 测试员创建 ====================

// CreateTesterRequest 创建测试员请求
type CreateTesterRequest struct {
	Name string   `json:"name" binding:"required"`
	IDs  []string `json:"ids" binding:"required,min=1"` // 外部身份，格式 provider|subject
}

// CreateTesterResponse 创建测试员响应
type CreateTesterResponse struct {
	Success bool   `json:"success"`
	UUID    string `json:"uuid"`
}

// ==================== 追加身份 ====================

// AddTesterIDRequest 给已有测试员追加外部身份
type AddTesterIDRequest struct {
	Name string `json:"name" binding:"required"` // 按名字定位测试员
	ID   string `json:"id" binding:"required"`
}

// ==================== 列表 ====================

// ListTestersRequest 测试员列表请求
type ListTestersRequest struct {
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=20"`
	SortBy   string `form:"sortBy"` // name | created_at
	SortDesc bool   `form:"desc"`
}

// TesterVO 测试员视图对象
type TesterVO struct {
	UUID      string    `json:"uuid"`
	Name      string    `json:"name"`
	IDs       []string  `json:"ids"`
	CreatedAt time.Time `json:"created_at"`
}
