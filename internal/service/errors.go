package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ==================== 业务错误 ====================

// 由 controller 统一映射到 HTTP 状态码
var (
	// ErrTesterNotFound 调用者没有对应的测试员记录，或按名字/UUID 找不到测试员
	ErrTesterNotFound = errors.New("tester not found")

	// ErrDuplicateID 外部身份已经绑定在某个测试员名下（全局唯一）
	ErrDuplicateID = errors.New("id already exists")

	// ErrPurchaseNotFound 采购不存在，或调用者不是其归属测试员
	// 统一用 404 表达，不向非归属者暴露记录是否存在
	ErrPurchaseNotFound = errors.New("purchase not found")

	// ErrAlreadyExists 一对一子记录（反馈/发布/退款）已存在
	ErrAlreadyExists = errors.New("record already exists for this purchase")

	// ErrAlreadyRefunded 采购已经退款
	ErrAlreadyRefunded = errors.New("purchase already refunded")

	// ErrQueryTooShort 搜索词太短
	ErrQueryTooShort = errors.New("query must be at least 4 characters")
)

// isUniqueViolation 唯一约束冲突判定
// 驱动报错形态不一致（postgres/sqlite），gorm 的翻译错误之外再按消息兜底
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
