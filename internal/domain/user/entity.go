package user

import (
	"time"
)

// User 用户实体
// 1. Password是bcrypt哈希值，明文只在Service内短暂存在
// 2. 领域实体不依赖GORM tag（映射在persistence/relational中处理）
type User struct {
	ID        uint
	Username  string
	Password  string
	CreatedAt time.Time
}

// NewUser 创建新用户（工厂方法）
// hashedPassword必须是bcrypt加密后的密码
func NewUser(username, hashedPassword string) *User {
	return &User{
		Username:  username,
		Password:  hashedPassword,
		CreatedAt: time.Now(),
	}
}
