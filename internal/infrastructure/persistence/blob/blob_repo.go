// Package blob S3兼容对象存储库存后端
//
// 整个库存保存为一个JSON数组对象（默认键inventory.json）。
// 对象不存在时从本地文件后端读取（一次性迁移路径），下一次保存即写入对象存储。
package blob

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	"github.com/xiebiao/shoestock/internal/domain/shoe"
	appconfig "github.com/xiebiao/shoestock/internal/infrastructure/config"
	"github.com/xiebiao/shoestock/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/shoestock/pkg/errors"
	"github.com/xiebiao/shoestock/pkg/metrics"
	"github.com/xiebiao/shoestock/pkg/tracing"
)

const contentType = "application/json"

// NewClient 按配置创建S3客户端
// AccessKey为空时走AWS默认凭证链（环境变量、共享配置、实例角色）
func NewClient(ctx context.Context, cfg appconfig.BlobConfig) (*s3.Client, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		// MinIO等兼容实现不一定支持默认的请求校验和
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
	}), nil
}

// Repository Blob后端
type Repository struct {
	client   *s3.Client
	bucket   string
	key      string
	fallback shoe.Repository
	breaker  *circuitbreaker.Breaker
	log      *zap.Logger
}

// NewRepository 创建Blob后端
// fallback是对象不存在时的迁移来源（文件后端），可以为nil
func NewRepository(client *s3.Client, bucket, key string, fallback shoe.Repository, breaker *circuitbreaker.Breaker, log *zap.Logger) *Repository {
	return &Repository{
		client:   client,
		bucket:   bucket,
		key:      key,
		fallback: fallback,
		breaker:  breaker,
		log:      log,
	}
}

func (r *Repository) Backend() string {
	return shoe.BackendBlob
}

// BreakerSettings Blob熔断器配置
// 对象不存在是正常分支，不计入失败
func BreakerSettings(cfg appconfig.BreakerConfig, log *zap.Logger) circuitbreaker.Settings {
	return circuitbreaker.Settings{
		MaxRequests:      cfg.MaxRequests,
		Interval:         cfg.Interval,
		Timeout:          cfg.Timeout,
		FailureThreshold: cfg.FailureThreshold,
		IsSuccessful: func(err error) bool {
			return err == nil || isNotFound(err)
		},
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			metrics.SetBreakerState(name, int(to))
			log.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}
}

// Load 读取对象并解码JSON数组
// 1. 对象不存在：从fallback读取（迁移路径）
// 2. JSON结构错误（语法、类型、缺字段、负数）：整体失败，不做部分加载
// 3. 网络/服务错误或熔断打开：StorageUnavailable
func (r *Repository) Load(ctx context.Context) (res *shoe.LoadResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "storage", "blob.Load")
	start := time.Now()
	defer func() {
		metrics.ObserveStorage(shoe.BackendBlob, metrics.OperationLoad, start, err)
		tracing.End(span, err)
	}()

	var data []byte
	err = r.breaker.Execute(func() error {
		out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(r.bucket),
			Key:    aws.String(r.key),
		})
		if err != nil {
			return err
		}
		defer out.Body.Close()

		data, err = io.ReadAll(out.Body)
		return err
	})

	switch {
	case err == nil:
	case isNotFound(err):
		return r.migrate(ctx)
	default:
		return nil, r.unavailable("load", err)
	}

	shoes, err := Decode(data)
	if err != nil {
		r.log.Error("inventory blob is malformed", zap.String("key", r.key), zap.Error(err))
		return nil, err
	}
	return &shoe.LoadResult{Shoes: shoes}, nil
}

// Save 整个集合序列化为JSON数组，无条件覆盖对象
func (r *Repository) Save(ctx context.Context, shoes shoe.Collection) (err error) {
	ctx, span := tracing.StartSpan(ctx, "storage", "blob.Save")
	start := time.Now()
	defer func() {
		metrics.ObserveStorage(shoe.BackendBlob, metrics.OperationSave, start, err)
		tracing.End(span, err)
	}()

	body, err := Encode(shoes)
	if err != nil {
		return apperrors.Wrap(err, "Could not encode inventory!")
	}

	err = r.breaker.Execute(func() error {
		_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(r.bucket),
			Key:         aws.String(r.key),
			Body:        bytes.NewReader(body),
			ContentType: aws.String(contentType),
		})
		return err
	})
	if err != nil {
		return r.unavailable("save", err)
	}
	return nil
}

func (r *Repository) migrate(ctx context.Context) (*shoe.LoadResult, error) {
	if r.fallback == nil {
		return &shoe.LoadResult{Shoes: shoe.Collection{}}, nil
	}

	r.log.Info("inventory blob not found, loading from fallback",
		zap.String("key", r.key),
		zap.String("fallback", r.fallback.Backend()),
	)
	return r.fallback.Load(ctx)
}

func (r *Repository) unavailable(op string, err error) error {
	if errors.Is(err, circuitbreaker.ErrOpenState) {
		r.log.Warn("blob storage circuit open", zap.String("operation", op))
		return apperrors.StorageUnavailable(err, "Blob storage is temporarily unavailable!")
	}
	r.log.Error("blob storage request failed", zap.String("operation", op), zap.String("key", r.key), zap.Error(err))
	return apperrors.StorageUnavailable(err, "Could not reach blob storage!")
}

// Encode 集合 → JSON数组（空集合编码为[]）
func Encode(shoes shoe.Collection) ([]byte, error) {
	records := make([]shoe.Record, 0, len(shoes))
	for _, s := range shoes {
		records = append(records, s.Record())
	}
	return json.Marshal(records)
}

// Decode JSON数组 → 集合
// 任何一个元素不合法都视为整个对象损坏
func Decode(data []byte) (shoe.Collection, error) {
	var records []shoe.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, malformed(err)
	}

	shoes := make(shoe.Collection, 0, len(records))
	for i, rec := range records {
		s, err := shoe.FromRecord(rec)
		if err != nil {
			return nil, malformed(fmt.Errorf("element %d: %w", i, err))
		}
		shoes = append(shoes, s)
	}
	return shoes, nil
}

func malformed(err error) error {
	return &apperrors.AppError{
		Code:    apperrors.ErrCodeParseRecord,
		Message: "Inventory blob is malformed!",
		Err:     err,
	}
}

// isNotFound 对象不存在
// GetObject在对象不存在时返回NoSuchKey；部分兼容实现只给404状态码
func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var respErr *awshttp.ResponseError
	return errors.As(err, &respErr) && respErr.HTTPStatusCode() == 404
}
