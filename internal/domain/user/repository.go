package user

import (
	"context"
)

// Repository 用户仓储接口
// 实现在infrastructure/persistence/relational
type Repository interface {
	// Create 创建用户
	// 用户名已存在时返回errors.ErrDuplicateUsername
	Create(ctx context.Context, user *User) error

	// FindByUsername 按用户名查找
	// 不存在时返回ErrUserNotFound
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByID 按ID查找
	FindByID(ctx context.Context, id uint) (*User, error)
}
