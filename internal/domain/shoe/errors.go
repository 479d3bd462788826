package shoe

import (
	"fmt"

	apperrors "github.com/xiebiao/shoestock/pkg/errors"
)

// 鞋子领域错误定义
var (
	ErrEmptyCountry     = apperrors.NewValidation("Country cannot be empty!")
	ErrEmptyCode        = apperrors.NewValidation("Code cannot be empty!")
	ErrEmptyProduct     = apperrors.NewValidation("Product name cannot be empty!")
	ErrInvalidCost      = apperrors.NewValidation("Invalid cost! Please enter a valid number.")
	ErrInvalidQuantity  = apperrors.NewValidation("Invalid quantity! Please enter a whole number.")
	ErrNegativeValue    = apperrors.NewValidation("Cost and quantity cannot be negative!")
	ErrInvalidDelta     = apperrors.NewValidation("Invalid quantity!")
	ErrNegativeDelta    = apperrors.NewValidation("Quantity cannot be negative!")
	ErrQuantityOverflow = apperrors.NewValidation("Quantity is too large!")

	// 以下直接复用公共错误，便于调用方用errors.Is判断
	ErrEmptyInventory = apperrors.ErrEmptyInventory
	ErrNotFound       = apperrors.ErrShoeNotFound
	ErrDuplicateCode  = apperrors.ErrDuplicateCode
)

// ParseError 已存储记录无法解析
// 只出现在加载时的跳过诊断中，不会向上抛出中断加载
type ParseError struct {
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid record %q: %s", e.Line, e.Reason)
}

// Unwrap 使apperrors.IsCode(err, ErrCodeParseRecord)成立
func (e *ParseError) Unwrap() error {
	return apperrors.New(apperrors.ErrCodeParseRecord, e.Reason)
}

// SkippedRecord 加载时被跳过的记录
type SkippedRecord struct {
	Number int    // 行号（从1开始，含表头）
	Line   string // 原始内容
	Reason string
}

func (s SkippedRecord) String() string {
	return fmt.Sprintf("line %d: %s (%s)", s.Number, s.Line, s.Reason)
}
