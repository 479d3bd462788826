package errors

import (
	"errors"
	"fmt"
)

// AppError 应用错误
// 设计说明：
// 1. Code供调用方判断错误类型（CLI菜单、HTML表单、JSON接口共用一套错误码）
// 2. Message是可以直接展示给用户的提示
// 3. Err是内部原因，只写日志，不展示给用户
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较，使errors.Is(err, ErrEmptyInventory)对包装后的副本同样成立
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// NewValidation 输入校验失败（可恢复：重新提示或重新渲染表单）
func NewValidation(message string) *AppError {
	return New(ErrCodeInvalidParams, message)
}

// StorageUnavailable 存储后端（文件、Blob、数据库）不可用
func StorageUnavailable(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeStorageUnavailable,
		Message: message,
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 4xxxx: 用户可以自行纠正的错误
// - 5xxxx: 服务端错误

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal           = 50000
	ErrCodeDatabaseError      = 50001
	ErrCodeRedisError         = 50002
	ErrCodeStorageUnavailable = 50003

	// 认证授权错误（40100-40199）
	ErrCodeUnauthorized       = 40100
	ErrCodeInvalidToken       = 40101
	ErrCodeTokenExpired       = 40102
	ErrCodeInvalidCredentials = 40103

	// 资源错误（40400-40499）
	ErrCodeNotFound     = 40400
	ErrCodeShoeNotFound = 40402

	// 业务规则错误（40000-40099）
	ErrCodeBusinessError     = 40000
	ErrCodeUsernameDuplicate = 40003
	ErrCodeDuplicateEntry    = 40009
	ErrCodeEmptyInventory    = 40010
	ErrCodeParseRecord       = 40020

	// 参数错误（40900-40999）
	ErrCodeInvalidParams = 40900
	ErrCodeBindError     = 40901
)

// =========================================
// 预定义错误
// =========================================

var (
	// 系统错误
	ErrInternal      = New(ErrCodeInternal, "Internal error")
	ErrDatabaseError = New(ErrCodeDatabaseError, "Database error")
	ErrRedisError    = New(ErrCodeRedisError, "Session store error")

	// 认证授权
	ErrUnauthorized = New(ErrCodeUnauthorized, "Please log in first")
	ErrInvalidToken = New(ErrCodeInvalidToken, "Invalid session token")
	ErrTokenExpired = New(ErrCodeTokenExpired, "Session expired, please log in again")
	// ErrInvalidCredentials 不区分"用户不存在"和"密码错误"，防止用户名枚举
	ErrInvalidCredentials = New(ErrCodeInvalidCredentials, "Invalid username or password!")

	// 资源
	ErrShoeNotFound = New(ErrCodeShoeNotFound, "Shoe not found!")

	// 业务规则
	ErrEmptyInventory    = New(ErrCodeEmptyInventory, "No shoes in inventory!")
	ErrDuplicateCode     = New(ErrCodeDuplicateEntry, "A shoe with this code already exists!")
	ErrDuplicateUsername = New(ErrCodeUsernameDuplicate, "Username already exists!")

	// 参数错误
	ErrInvalidParams = New(ErrCodeInvalidParams, "Invalid input!")
	ErrBindError     = New(ErrCodeBindError, "Malformed request")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "Internal error")
}

// IsCode 判断错误链上是否存在指定错误码
func IsCode(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// Message 返回适合展示给用户的提示
func Message(err error) string {
	if err == nil {
		return ""
	}
	return GetAppError(err).Message
}
