package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/shoestock/pkg/errors"
)

func newTestStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewSessionStore(client), mr
}

func TestSessionStore_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)

	loginAt := time.Unix(1700000000, 0)
	require.NoError(t, store.SaveSession(ctx, Session{UserID: 7, Username: "alice", LoginAt: loginAt}, time.Hour))

	sess, err := store.GetSession(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "alice", sess.Username)
	assert.True(t, loginAt.Equal(sess.LoginAt))
	assert.Equal(t, time.Hour, mr.TTL("session:7"))

	require.NoError(t, store.DeleteSession(ctx, 7))
	_, err = store.GetSession(ctx, 7)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestSessionStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)

	require.NoError(t, store.SaveSession(ctx, Session{UserID: 1, Username: "bob", LoginAt: time.Now()}, time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := store.GetSession(ctx, 1)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestSessionStore_Blacklist(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)

	revoked, err := store.IsInBlacklist(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.AddToBlacklist(ctx, "token-a", 30*time.Minute))
	require.NoError(t, store.AddToBlacklist(ctx, "token-b", 0))

	revoked, err = store.IsInBlacklist(ctx, "token-a")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.False(t, mr.Exists("blacklist:token-b"), "已过期的Token不写入黑名单")
}

func TestSessionStore_ServerDown(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Close()

	_, err := store.IsInBlacklist(context.Background(), "token")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeRedisError))
}
