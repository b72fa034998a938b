package model

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel 通用审计字段（UUID 主键实体自行声明主键）
type BaseModel struct {
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
