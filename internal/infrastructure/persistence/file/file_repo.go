// Package file 文本文件库存后端
//
// 文件格式：第一行固定表头 Country,Code,Product,Cost,Quantity，之后每行一条记录。
// 字段不做转义，产品名中含逗号的行加载时会被跳过。
package file

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/xiebiao/shoestock/internal/domain/shoe"
	apperrors "github.com/xiebiao/shoestock/pkg/errors"
	"github.com/xiebiao/shoestock/pkg/metrics"
	"github.com/xiebiao/shoestock/pkg/tracing"
)

// Repository 文件后端
type Repository struct {
	fs   afero.Fs
	path string
	log  *zap.Logger
}

// NewRepository 创建文件后端
// 生产使用afero.NewOsFs()，测试使用afero.NewMemMapFs()
func NewRepository(fs afero.Fs, path string, log *zap.Logger) *Repository {
	return &Repository{fs: fs, path: path, log: log}
}

func (r *Repository) Backend() string {
	return shoe.BackendFile
}

// Path 文件路径
func (r *Repository) Path() string {
	return r.path
}

// Load 读取全部记录
// 1. 文件不存在或为空：创建只有表头的文件，返回空集合
// 2. 空行忽略，坏行记录为跳过诊断，加载继续
func (r *Repository) Load(ctx context.Context) (res *shoe.LoadResult, err error) {
	_, span := tracing.StartSpan(ctx, "storage", "file.Load")
	start := time.Now()
	defer func() {
		metrics.ObserveStorage(shoe.BackendFile, metrics.OperationLoad, start, err)
		tracing.End(span, err)
	}()

	data, err := afero.ReadFile(r.fs, r.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		r.log.Error("read inventory file failed", zap.String("path", r.path), zap.Error(err))
		return nil, apperrors.StorageUnavailable(err, "Could not read the inventory file!")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		if err := r.write(shoe.Collection{}); err != nil {
			return nil, err
		}
		r.log.Info("created new inventory file", zap.String("path", r.path))
		return &shoe.LoadResult{Shoes: shoe.Collection{}}, nil
	}

	res = Parse(data)
	for _, s := range res.Skipped {
		r.log.Warn("skipping invalid line",
			zap.String("path", r.path),
			zap.Int("line", s.Number),
			zap.String("content", s.Line),
			zap.String("reason", s.Reason),
		)
	}
	metrics.AddSkipped(shoe.BackendFile, len(res.Skipped))
	return res, nil
}

// Save 整体重写：表头 + 每条记录一行
// 先写临时文件再重命名，写入中途失败不会留下半个文件
func (r *Repository) Save(ctx context.Context, shoes shoe.Collection) (err error) {
	_, span := tracing.StartSpan(ctx, "storage", "file.Save")
	start := time.Now()
	defer func() {
		metrics.ObserveStorage(shoe.BackendFile, metrics.OperationSave, start, err)
		tracing.End(span, err)
	}()

	return r.write(shoes)
}

func (r *Repository) write(shoes shoe.Collection) error {
	var buf bytes.Buffer
	buf.WriteString(shoe.FileHeader)
	buf.WriteByte('\n')
	for _, s := range shoes {
		buf.WriteString(s.Line())
		buf.WriteByte('\n')
	}

	if dir := filepath.Dir(r.path); dir != "." {
		if err := r.fs.MkdirAll(dir, 0o755); err != nil {
			return apperrors.StorageUnavailable(err, "Could not write the inventory file!")
		}
	}

	tmp := r.path + ".tmp"
	if err := afero.WriteFile(r.fs, tmp, buf.Bytes(), 0o644); err != nil {
		r.log.Error("write inventory file failed", zap.String("path", tmp), zap.Error(err))
		return apperrors.StorageUnavailable(err, "Could not write the inventory file!")
	}
	if err := r.fs.Rename(tmp, r.path); err != nil {
		_ = r.fs.Remove(tmp)
		r.log.Error("replace inventory file failed", zap.String("path", r.path), zap.Error(err))
		return apperrors.StorageUnavailable(err, "Could not write the inventory file!")
	}
	return nil
}

// Parse 解析文件内容（Blob后端迁移时也会用到）
// 第一行视为表头，不参与解析
// 整个文件已在内存中，按换行切分，行长度不设上限，末行可以没有换行符
func Parse(data []byte) *shoe.LoadResult {
	res := &shoe.LoadResult{Shoes: shoe.Collection{}}

	for i, raw := range bytes.Split(data, []byte("\n")) {
		number := i + 1
		line := strings.TrimRight(string(raw), "\r")
		if number == 1 || strings.TrimSpace(line) == "" {
			continue
		}

		s, err := shoe.ParseLine(line)
		if err != nil {
			reason := err.Error()
			var perr *shoe.ParseError
			if errors.As(err, &perr) {
				reason = perr.Reason
			}
			res.Skipped = append(res.Skipped, shoe.SkippedRecord{Number: number, Line: line, Reason: reason})
			continue
		}
		res.Shoes = append(res.Shoes, s)
	}
	return res
}
