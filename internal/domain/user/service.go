package user

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/shoestock/pkg/errors"
)

const (
	bcryptCost = 12

	minUsernameLen = 3
	maxUsernameLen = 50
	minPasswordLen = 6
	// bcrypt只使用前72字节，更长的密码会被静默截断
	maxPasswordLen = 72
)

// 用户领域错误
var (
	ErrUserNotFound    = apperrors.New(apperrors.ErrCodeNotFound, "User not found")
	ErrInvalidUsername = apperrors.NewValidation("Username must be 3-50 characters!")
	ErrInvalidPassword = apperrors.NewValidation("Password must be 6-72 characters!")
)

// Service 用户领域服务
type Service interface {
	// Register 注册，返回已持久化的用户
	Register(ctx context.Context, username, password string) (*User, error)

	// Authenticate 校验用户名密码
	// 用户不存在和密码错误返回同一个ErrInvalidCredentials
	Authenticate(ctx context.Context, username, password string) (*User, error)
}

type service struct {
	repo Repository
	cost int
}

// NewService 创建用户服务
func NewService(repo Repository) Service {
	return &service{repo: repo, cost: bcryptCost}
}

// newServiceWithCost 测试使用较低的bcrypt cost
func newServiceWithCost(repo Repository, cost int) *service {
	return &service{repo: repo, cost: cost}
}

// Register 用户注册
// 1. 用户名长度3-50（按字符计）
// 2. 密码长度6-72（按字节计，bcrypt上限）
// 3. 唯一性由数据库UNIQUE索引保证
func (s *service) Register(ctx context.Context, username, password string) (*User, error) {
	username = strings.TrimSpace(username)
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to hash password")
	}

	u := NewUser(username, string(hashed))
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate 用户登录校验
func (s *service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	u, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(err, "Failed to verify password")
	}

	return u, nil
}

// ValidateUsername 用户名规则
func ValidateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n < minUsernameLen || n > maxUsernameLen {
		return ErrInvalidUsername
	}
	return nil
}

// ValidatePassword 密码规则
func ValidatePassword(password string) error {
	if len(password) < minPasswordLen || len(password) > maxPasswordLen {
		return ErrInvalidPassword
	}
	return nil
}
