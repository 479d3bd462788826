package relational

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/shoestock/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 1. 按driver选择方言：mysql（生产）或sqlite（本地单机、测试）
// 2. TranslateError打开后，唯一约束冲突统一为gorm.ErrDuplicatedKey
// 3. 自动迁移shoes和users两张表
func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := Open(cfg.Database, cfg.Server.Mode == "debug")
	if err != nil {
		return nil, err
	}
	log.Info("database connected", zap.String("driver", cfg.Database.Driver))
	return db, nil
}

// Open 按数据库配置打开连接并迁移表结构
// debug为true时打印SQL
func Open(dbCfg config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch dbCfg.Driver {
	case config.DriverMySQL:
		dialector = mysql.Open(dbCfg.DSN())
	case config.DriverSQLite:
		dialector = sqlite.Open(dbCfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", dbCfg.Driver)
	}

	logLevel := logger.Silent
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	// 连接池（0表示使用database/sql默认值）
	if dbCfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(dbCfg.MaxOpenConns)
	}
	if dbCfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(dbCfg.MaxIdleConns)
	}
	if dbCfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(dbCfg.ConnMaxLifetime)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return db, nil
}

// autoMigrate 只建表和补列，不做破坏性变更
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&ShoeModel{},
		&UserModel{},
	)
}

// =========================================
// GORM模型（与领域实体分离）
// =========================================

// ShoeModel 库存表
// Position保存集合顺序，加载时按它排序
type ShoeModel struct {
	Code     string  `gorm:"primaryKey;size:64;comment:鞋子编码"`
	Country  string  `gorm:"size:100;not null;comment:产地"`
	Product  string  `gorm:"size:200;not null;comment:产品名"`
	Cost     float64 `gorm:"not null;comment:单价"`
	Quantity int     `gorm:"not null;comment:库存数量"`
	Position int     `gorm:"index;not null;comment:集合顺序"`
}

func (ShoeModel) TableName() string {
	return "shoes"
}

// UserModel 用户表
type UserModel struct {
	ID        uint      `gorm:"primaryKey"`
	Username  string    `gorm:"uniqueIndex;size:50;not null;comment:用户名"`
	Password  string    `gorm:"size:255;not null;comment:密码（bcrypt）"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
}

func (UserModel) TableName() string {
	return "users"
}
