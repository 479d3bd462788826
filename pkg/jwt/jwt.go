package jwt

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/xiebiao/shoestock/pkg/errors"
)

const issuer = "shoestock"

// Manager JWT管理器
// 登录成功后签发Access Token，写入HttpOnly Cookie
// 主动失效（登出）依赖Redis黑名单，见persistence/redis
type Manager struct {
	secret            string
	accessTokenExpire time.Duration
}

// NewManager 创建JWT管理器
func NewManager(secret string, accessTokenExpire time.Duration) *Manager {
	return &Manager{
		secret:            secret,
		accessTokenExpire: accessTokenExpire,
	}
}

// Claims 自定义JWT Claims
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Token 签发结果
type Token struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	ExpiresIn   int64     `json:"expires_in"` // 秒
}

// Expire Token有效期
func (m *Manager) Expire() time.Duration {
	return m.accessTokenExpire
}

// GenerateToken 签发Access Token
func (m *Manager) GenerateToken(userID uint, username string) (*Token, error) {
	now := time.Now()
	expiresAt := now.Add(m.accessTokenExpire)

	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   strconv.FormatUint(uint64(userID), 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.secret))
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to sign session token")
	}

	return &Token{
		AccessToken: signed,
		ExpiresAt:   expiresAt,
		ExpiresIn:   int64(m.accessTokenExpire.Seconds()),
	}, nil
}

// ParseToken 解析并验证Token
// 1. 只接受HMAC签名（防止alg=none等降级）
// 2. 校验exp/nbf和签发方
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrInvalidToken
		}
		return []byte(m.secret), nil
	}, jwt.WithIssuer(issuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, apperrors.ErrInvalidToken
}
