package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// PlaceholderSecret 示例配置中的JWT密钥，release模式下拒绝启动
const PlaceholderSecret = "change-me-in-production"

// Config 全局配置
// 加载顺序：默认值 → config.yaml（可选）→ SHOESTOCK_* 环境变量
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Blob     BlobConfig     `mapstructure:"blob"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Log      LogConfig      `mapstructure:"log"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
	Breaker  BreakerConfig  `mapstructure:"breaker"`
}

// ServerConfig HTTP服务配置
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // debug | release | test
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr 监听地址
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// StorageConfig 库存存储后端选择
type StorageConfig struct {
	Backend  string `mapstructure:"backend"`   // file | blob | sql
	FilePath string `mapstructure:"file_path"` // 文件后端路径，也是Blob迁移的来源
}

// BlobConfig S3兼容对象存储
type BlobConfig struct {
	Bucket    string `mapstructure:"bucket"`
	Key       string `mapstructure:"key"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`   // 自建MinIO等，空表示AWS默认
	PathStyle bool   `mapstructure:"path_style"` // MinIO需要true
	AccessKey string `mapstructure:"access_key"` // 空表示走AWS默认凭证链
	SecretKey string `mapstructure:"secret_key"`
}

// DatabaseConfig 关系库配置
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // mysql | sqlite
	DSNOverride     string        `mapstructure:"dsn"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	Charset         string        `mapstructure:"charset"`
	ParseTime       bool          `mapstructure:"parse_time"`
	Loc             string        `mapstructure:"loc"`
	SQLitePath      string        `mapstructure:"sqlite_path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN 连接串
// 显式配置的dsn优先；否则MySQL按各字段拼接，SQLite使用sqlite_path
func (d DatabaseConfig) DSN() string {
	if d.DSNOverride != "" {
		return d.DSNOverride
	}
	if d.Driver == DriverSQLite {
		return d.SQLitePath
	}
	loc := url.QueryEscape(d.Loc)
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.Charset, d.ParseTime, loc)
}

// RedisConfig 会话存储
type RedisConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr host:port
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// JWTConfig 登录令牌
type JWTConfig struct {
	Secret            string        `mapstructure:"secret"`
	AccessTokenExpire time.Duration `mapstructure:"access_token_expire"`
	CookieName        string        `mapstructure:"cookie_name"`
	CookieSecure      bool          `mapstructure:"cookie_secure"`
}

// LogConfig 日志
type LogConfig struct {
	Level        string `mapstructure:"level"`  // debug | info | warn | error
	Format       string `mapstructure:"format"` // console | json
	Output       string `mapstructure:"output"` // stdout | stderr | /path/to/file
	EnableCaller bool   `mapstructure:"enable_caller"`
}

// TracingConfig 链路追踪
type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
}

// BreakerConfig Blob熔断器
type BreakerConfig struct {
	MaxRequests      uint32        `mapstructure:"max_requests"`
	Interval         time.Duration `mapstructure:"interval"`
	Timeout          time.Duration `mapstructure:"timeout"`
	FailureThreshold uint32        `mapstructure:"failure_threshold"`
}

// 存储后端与数据库驱动
const (
	BackendFile = "file"
	BackendBlob = "blob"
	BackendSQL  = "sql"

	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Load 加载Web服务配置
// path为空时在./config和当前目录查找config.yaml；找不到文件不是错误，使用默认值和环境变量
func Load(path string) (*Config, error) {
	return load(path, true)
}

// LoadInventory 加载命令行菜单配置，菜单没有登录，不校验jwt段
func LoadInventory(path string) (*Config, error) {
	return load(path, false)
}

func load(path string, requireAuth bool) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	// SHOESTOCK_JWT_SECRET 覆盖 jwt.secret
	v.SetEnvPrefix("SHOESTOCK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(&cfg, requireAuth); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults 每个键都要有默认值，AutomaticEnv才能在Unmarshal时生效
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetDefault("storage.backend", BackendFile)
	v.SetDefault("storage.file_path", "inventory.txt")

	v.SetDefault("blob.bucket", "")
	v.SetDefault("blob.key", "inventory.json")
	v.SetDefault("blob.region", "us-east-1")
	v.SetDefault("blob.endpoint", "")
	v.SetDefault("blob.path_style", false)
	v.SetDefault("blob.access_key", "")
	v.SetDefault("blob.secret_key", "")

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.user", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "shoestock")
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parse_time", true)
	v.SetDefault("database.loc", "Local")
	v.SetDefault("database.sqlite_path", "shoestock.db")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", time.Hour)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.read_timeout", 3*time.Second)
	v.SetDefault("redis.write_timeout", 3*time.Second)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.access_token_expire", 2*time.Hour)
	v.SetDefault("jwt.cookie_name", "shoestock_session")
	v.SetDefault("jwt.cookie_secure", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.enable_caller", false)

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "localhost:4317")
	v.SetDefault("tracing.service_name", "shoestock")

	v.SetDefault("breaker.max_requests", 1)
	v.SetDefault("breaker.interval", time.Minute)
	v.SetDefault("breaker.timeout", 30*time.Second)
	v.SetDefault("breaker.failure_threshold", 5)
}

// validate 配置校验
// 密钥没有任何兜底值：未配置直接拒绝启动
func validate(cfg *Config, requireAuth bool) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", cfg.Server.Port)
	}

	if requireAuth {
		if cfg.JWT.Secret == "" {
			return errors.New("jwt.secret is required (set SHOESTOCK_JWT_SECRET)")
		}
		if cfg.JWT.Secret == PlaceholderSecret && cfg.Server.Mode == "release" {
			return errors.New("jwt.secret must be changed in release mode")
		}
	}

	switch cfg.Storage.Backend {
	case BackendFile, BackendSQL:
	case BackendBlob:
		if cfg.Blob.Bucket == "" {
			return errors.New("blob.bucket is required when storage.backend is blob")
		}
	default:
		return fmt.Errorf("unknown storage backend: %q", cfg.Storage.Backend)
	}

	switch cfg.Database.Driver {
	case DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("unknown database driver: %q", cfg.Database.Driver)
	}

	return nil
}
