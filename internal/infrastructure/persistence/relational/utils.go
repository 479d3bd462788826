package relational

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isDuplicateError 唯一约束冲突
// TranslateError未覆盖的驱动版本退回到按错误文本判断
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
