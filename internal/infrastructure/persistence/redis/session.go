package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/shoestock/pkg/errors"
)

// Session 登录会话
type Session struct {
	UserID   uint
	Username string
	LoginAt  time.Time
}

// SessionStore 会话与Token黑名单
// 1. session:{userID} Hash，TTL与Token有效期一致；登出或过期后所有Token失效
// 2. blacklist:{token} String，登出时写入，TTL为Token剩余有效期
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore 创建会话存储
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// SaveSession 保存会话
func (s *SessionStore) SaveSession(ctx context.Context, sess Session, ttl time.Duration) error {
	key := sessionKey(sess.UserID)

	// HSet + Expire放进同一个事务管道，避免留下没有TTL的会话
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, map[string]interface{}{
			"user_id":  sess.UserID,
			"username": sess.Username,
			"login_at": sess.LoginAt.Unix(),
		})
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return redisError(err, "Failed to save session")
	}
	return nil
}

// GetSession 读取会话，不存在返回ErrUnauthorized
func (s *SessionStore) GetSession(ctx context.Context, userID uint) (*Session, error) {
	result, err := s.client.HGetAll(ctx, sessionKey(userID)).Result()
	if err != nil {
		return nil, redisError(err, "Failed to read session")
	}
	if len(result) == 0 {
		return nil, apperrors.ErrUnauthorized
	}

	loginAt, _ := strconv.ParseInt(result["login_at"], 10, 64)
	return &Session{
		UserID:   userID,
		Username: result["username"],
		LoginAt:  time.Unix(loginAt, 0),
	}, nil
}

// DeleteSession 删除会话
func (s *SessionStore) DeleteSession(ctx context.Context, userID uint) error {
	if err := s.client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return redisError(err, "Failed to delete session")
	}
	return nil
}

// AddToBlacklist Token加入黑名单
// ttl<=0表示Token已过期，不需要记录
func (s *SessionStore) AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, blacklistKey(token), "revoked", ttl).Err(); err != nil {
		return redisError(err, "Failed to revoke token")
	}
	return nil
}

// IsInBlacklist Token是否已被吊销
func (s *SessionStore) IsInBlacklist(ctx context.Context, token string) (bool, error) {
	exists, err := s.client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, redisError(err, "Failed to check token")
	}
	return exists > 0, nil
}

func sessionKey(userID uint) string {
	return fmt.Sprintf("session:%d", userID)
}

func blacklistKey(token string) string {
	return "blacklist:" + token
}

func redisError(err error, message string) error {
	return &apperrors.AppError{Code: apperrors.ErrCodeRedisError, Message: message, Err: err}
}
