package relational

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/shoestock/internal/domain/shoe"
	"github.com/xiebiao/shoestock/internal/domain/user"
	"github.com/xiebiao/shoestock/internal/infrastructure/config"
	"github.com/xiebiao/shoestock/internal/infrastructure/persistence/storagetest"
	apperrors "github.com/xiebiao/shoestock/pkg/errors"
)

// newTestDB 每个测试一个独立的内存SQLite库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := Open(config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		DSNOverride:  "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
	}, false)
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newTestShoeRepo(t *testing.T) shoe.Repository {
	db := newTestDB(t)
	return NewShoeRepository(db, NewTxManager(db), zap.NewNop())
}

func TestShoeRepository_Contract(t *testing.T) {
	storagetest.RunContract(t, newTestShoeRepo)
}

func TestShoeRepository_DuplicateCodeRollsBack(t *testing.T) {
	ctx := context.Background()
	repo := newTestShoeRepo(t)
	require.NoError(t, repo.Save(ctx, storagetest.Sample()))

	dup := shoe.Add(storagetest.Sample(), shoe.Shoe{Country: "US", Code: "A", Product: "Clone", Cost: 1, Quantity: 1})
	err := repo.Save(ctx, dup)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateCode)

	res, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, storagetest.Sample(), res.Shoes, "失败的保存不应提交任何修改")
}

func TestShoeRepository_LoadOnClosedDB(t *testing.T) {
	db := newTestDB(t)
	repo := NewShoeRepository(db, NewTxManager(db), zap.NewNop())

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	res, err := repo.Load(context.Background())
	assert.Nil(t, res)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeStorageUnavailable))
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	u := user.NewUser("alice", "$2a$hash")
	require.NoError(t, repo.Create(ctx, u))
	assert.NotZero(t, u.ID)

	err := repo.Create(ctx, user.NewUser("alice", "$2a$other"))
	assert.ErrorIs(t, err, apperrors.ErrDuplicateUsername)

	found, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)
	assert.Equal(t, "$2a$hash", found.Password)

	byID, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	_, err = repo.FindByUsername(ctx, "bob")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestTxManager_Rollback(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	tx := NewTxManager(db)
	repo := NewUserRepository(db)

	err := tx.Transaction(ctx, func(ctx context.Context) error {
		require.NoError(t, repo.Create(ctx, user.NewUser("carol", "hash")))
		return apperrors.ErrInternal
	})
	assert.ErrorIs(t, err, apperrors.ErrInternal)

	_, err = repo.FindByUsername(ctx, "carol")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
