package model

import (
	"gorm.io/datatypes"
)

// ==================== Tester 测试员 ====================

// Tester 测试员
// 一个测试员可以绑定多个外部身份（OAuth subject，格式 provider|subject）
type Tester struct {
	UUID string `gorm:"primaryKey;size:36" json:"uuid"`
	Name string `gorm:"size:255;not null" json:"name"`

	// 外部身份列表（与 id_mappings 表保持同步，跨库兼容存 JSON）
	IDs datatypes.JSONSlice[string] `json:"ids"`

	BaseModel
}

func (*Tester) TableName() string {
	return "testers"
}

// TesterSortFields 测试员列表允许的排序字段
var TesterSortFields = map[string]string{
	"name":       "name",
	"created_at": "created_at",
}

// ==================== IDMapping 身份映射 ====================

// IDMapping 外部身份 -> 测试员 UUID 映射
// 全局唯一：同一个外部身份不允许出现在两个测试员名下
type IDMapping struct {
	ExternalID string `gorm:"primaryKey;size:255" json:"external_id"`
	TesterUUID string `gorm:"index;size:36;not null" json:"tester_uuid"`

	BaseModel
}

func (*IDMapping) TableName() string {
	return "id_mappings"
}
