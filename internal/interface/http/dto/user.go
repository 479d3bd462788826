package dto

import "time"

// RegisterRequest 注册请求
// 长度规则由领域层校验，这里只检查必填
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserInfo 用户信息（不包含密码）
type UserInfo struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// LoginResponse 登录/注册成功响应
type LoginResponse struct {
	User        UserInfo  `json:"user"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	ExpiresIn   int64     `json:"expires_in"`
}
