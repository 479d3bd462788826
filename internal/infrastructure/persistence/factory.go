// Package persistence 按配置选择库存存储后端
package persistence

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/shoestock/internal/domain/shoe"
	"github.com/xiebiao/shoestock/internal/infrastructure/config"
	"github.com/xiebiao/shoestock/internal/infrastructure/persistence/blob"
	"github.com/xiebiao/shoestock/internal/infrastructure/persistence/file"
	"github.com/xiebiao/shoestock/internal/infrastructure/persistence/relational"
	"github.com/xiebiao/shoestock/pkg/circuitbreaker"
)

// Deps 后端可能用到的共享资源
// DB为nil且选择了sql后端时按配置新建连接
type Deps struct {
	Fs  afero.Fs
	DB  *gorm.DB
	Log *zap.Logger
}

// NewShoeRepository 启动时选择一次后端
// 1. file：本地文本文件
// 2. blob：S3对象，对象不存在时从本地文件迁移
// 3. sql：shoes表
func NewShoeRepository(ctx context.Context, cfg *config.Config, deps Deps) (shoe.Repository, error) {
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	log := deps.Log.With(zap.String("backend", cfg.Storage.Backend))

	switch cfg.Storage.Backend {
	case config.BackendFile:
		return file.NewRepository(deps.Fs, cfg.Storage.FilePath, log), nil

	case config.BackendBlob:
		client, err := blob.NewClient(ctx, cfg.Blob)
		if err != nil {
			return nil, err
		}
		breaker := circuitbreaker.New("blob", blob.BreakerSettings(cfg.Breaker, log))
		fallback := file.NewRepository(deps.Fs, cfg.Storage.FilePath, log)
		return blob.NewRepository(client, cfg.Blob.Bucket, cfg.Blob.Key, fallback, breaker, log), nil

	case config.BackendSQL:
		db := deps.DB
		if db == nil {
			var err error
			if db, err = relational.NewDB(cfg, log); err != nil {
				return nil, err
			}
		}
		return relational.NewShoeRepository(db, relational.NewTxManager(db), log), nil

	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Storage.Backend)
	}
}
