package main

import (
	"context"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"gorm.io/gorm"

	appuser "github.com/xiebiao/shoestock/internal/application/user"
	"github.com/xiebiao/shoestock/internal/domain/shoe"
	"github.com/xiebiao/shoestock/internal/infrastructure/config"
	"github.com/xiebiao/shoestock/internal/infrastructure/persistence"
	"github.com/xiebiao/shoestock/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/shoestock/internal/infrastructure/persistence/relational"
	"github.com/xiebiao/shoestock/internal/interface/http/middleware"
	"github.com/xiebiao/shoestock/pkg/jwt"
	"github.com/xiebiao/shoestock/pkg/logger"
)

// App 组装完成的应用
type App struct {
	Config *config.Config
	Log    *zap.Logger
	Engine *gin.Engine
}

// provideLogger 按log段创建zap Logger
func provideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	log, err := logger.New(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		return nil, nil, err
	}
	return log, func() { _ = log.Sync() }, nil
}

// provideDB 用户表所在的关系库；sql后端的shoes表也在这里
func provideDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, func(), error) {
	db, err := relational.NewDB(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

// provideRedis 会话存储
func provideRedis(cfg *config.Config, log *zap.Logger) (*goredis.Client, func(), error) {
	client, err := redis.NewClient(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { _ = client.Close() }, nil
}

// provideShoeRepository 按storage.backend选择库存后端
func provideShoeRepository(cfg *config.Config, db *gorm.DB, log *zap.Logger) (shoe.Repository, error) {
	return persistence.NewShoeRepository(context.Background(), cfg, persistence.Deps{
		Fs:  afero.NewOsFs(),
		DB:  db,
		Log: log,
	})
}

// provideSessionStore 从Redis客户端创建会话存储
func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire)
}

// provideAuthMiddleware Cookie名称来自配置
func provideAuthMiddleware(authorize *appuser.AuthorizeUseCase, cfg *config.Config) *middleware.AuthMiddleware {
	return middleware.NewAuthMiddleware(authorize, cfg.JWT.CookieName)
}
