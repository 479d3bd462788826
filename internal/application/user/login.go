package user

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/shoestock/internal/domain/user"
	"github.com/xiebiao/shoestock/internal/infrastructure/persistence/redis"
	apperrors "github.com/xiebiao/shoestock/pkg/errors"
	"github.com/xiebiao/shoestock/pkg/jwt"
	"github.com/xiebiao/shoestock/pkg/metrics"
)

// LoginUseCase 用户登录用例
// 1. 验证用户名密码
// 2. 生成JWT
// 3. 保存会话到Redis（会话有效期 = Token有效期）
type LoginUseCase struct {
	userService  user.Service
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
	log          *zap.Logger
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(
	userService user.Service,
	jwtManager *jwt.Manager,
	sessionStore *redis.SessionStore,
	log *zap.Logger,
) *LoginUseCase {
	return &LoginUseCase{
		userService:  userService,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
		log:          log,
	}
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (resp *LoginResponse, err error) {
	defer func() { metrics.ObserveAuth("login", err) }()

	// 1. 验证用户名密码（用户不存在和密码错误返回同一个错误）
	u, err := uc.userService.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrCodeInvalidCredentials) {
			uc.log.Info("login rejected", zap.String("username", req.Username))
		}
		return nil, err
	}

	return uc.issue(ctx, u)
}

// issue 签发Token并保存会话
// 会话保存失败时登录失败，否则中间件会拒绝这个Token
func (uc *LoginUseCase) issue(ctx context.Context, u *user.User) (*LoginResponse, error) {
	token, err := uc.jwtManager.GenerateToken(u.ID, u.Username)
	if err != nil {
		return nil, err
	}

	sess := redis.Session{UserID: u.ID, Username: u.Username, LoginAt: time.Now()}
	if err := uc.sessionStore.SaveSession(ctx, sess, uc.jwtManager.Expire()); err != nil {
		return nil, err
	}

	uc.log.Info("user logged in", zap.Uint("user_id", u.ID), zap.String("username", u.Username))
	return &LoginResponse{
		User:        UserInfo{ID: u.ID, Username: u.Username},
		AccessToken: token.AccessToken,
		ExpiresAt:   token.ExpiresAt,
		ExpiresIn:   token.ExpiresIn,
	}, nil
}

// LogoutUseCase 用户登出用例
type LogoutUseCase struct {
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(jwtManager *jwt.Manager, sessionStore *redis.SessionStore) *LogoutUseCase {
	return &LogoutUseCase{jwtManager: jwtManager, sessionStore: sessionStore}
}

// Execute 执行登出
// 无效或过期的Token直接视为已登出
func (uc *LogoutUseCase) Execute(ctx context.Context, accessToken string) (err error) {
	defer func() { metrics.ObserveAuth("logout", err) }()

	claims, err := uc.jwtManager.ParseToken(accessToken)
	if err != nil {
		return nil
	}

	// 1. 删除会话
	if err := uc.sessionStore.DeleteSession(ctx, claims.UserID); err != nil {
		return err
	}

	// 2. Token加入黑名单，TTL为剩余有效期
	return uc.sessionStore.AddToBlacklist(ctx, accessToken, time.Until(claims.ExpiresAt.Time))
}

// AuthorizeUseCase 校验请求携带的Token
// 1. Token签名与过期时间
// 2. 黑名单（已登出）
// 3. 会话存在（登出后同一用户的其他Token也失效）
type AuthorizeUseCase struct {
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
}

// NewAuthorizeUseCase 创建鉴权用例
func NewAuthorizeUseCase(jwtManager *jwt.Manager, sessionStore *redis.SessionStore) *AuthorizeUseCase {
	return &AuthorizeUseCase{jwtManager: jwtManager, sessionStore: sessionStore}
}

// Execute 返回Token对应的用户
func (uc *AuthorizeUseCase) Execute(ctx context.Context, accessToken string) (*UserInfo, error) {
	if accessToken == "" {
		return nil, apperrors.ErrUnauthorized
	}

	claims, err := uc.jwtManager.ParseToken(accessToken)
	if err != nil {
		return nil, err
	}

	revoked, err := uc.sessionStore.IsInBlacklist(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, apperrors.ErrInvalidToken
	}

	if _, err := uc.sessionStore.GetSession(ctx, claims.UserID); err != nil {
		return nil, err
	}

	return &UserInfo{ID: claims.UserID, Username: claims.Username}, nil
}

// =========================================
// 应用层DTO
// =========================================

// LoginRequest 登录请求
type LoginRequest struct {
	Username string
	Password string
}

// LoginResponse 登录响应
type LoginResponse struct {
	User        UserInfo  `json:"user"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	ExpiresIn   int64     `json:"expires_in"` // 秒
}

// UserInfo 用户信息
type UserInfo struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}
