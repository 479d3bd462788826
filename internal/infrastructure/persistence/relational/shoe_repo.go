package relational

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/shoestock/internal/domain/shoe"
	apperrors "github.com/xiebiao/shoestock/pkg/errors"
	"github.com/xiebiao/shoestock/pkg/metrics"
	"github.com/xiebiao/shoestock/pkg/tracing"
)

type shoeRepository struct {
	db  *gorm.DB
	tx  *TxManager
	log *zap.Logger
}

// NewShoeRepository SQL后端
func NewShoeRepository(db *gorm.DB, tx *TxManager, log *zap.Logger) shoe.Repository {
	return &shoeRepository{db: db, tx: tx, log: log}
}

func (r *shoeRepository) Backend() string {
	return shoe.BackendSQL
}

// Load 按Position读取全部记录
// 列类型由表结构保证，不需要逐行跳过
func (r *shoeRepository) Load(ctx context.Context) (res *shoe.LoadResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "storage", "sql.Load")
	start := time.Now()
	defer func() {
		metrics.ObserveStorage(shoe.BackendSQL, metrics.OperationLoad, start, err)
		tracing.End(span, err)
	}()

	var models []ShoeModel
	if err := getDB(ctx, r.db).Order("position ASC").Find(&models).Error; err != nil {
		r.log.Error("load shoes failed", zap.Error(err))
		return nil, apperrors.StorageUnavailable(err, "Could not read inventory from the database!")
	}

	shoes := make(shoe.Collection, 0, len(models))
	for i := range models {
		shoes = append(shoes, toShoe(&models[i]))
	}
	return &shoe.LoadResult{Shoes: shoes}, nil
}

// Save 整体替换
// 1. 同一事务内先删除全部行再按集合顺序插入
// 2. 重复Code返回ErrDuplicateCode，事务回滚，表内容不变
func (r *shoeRepository) Save(ctx context.Context, shoes shoe.Collection) (err error) {
	ctx, span := tracing.StartSpan(ctx, "storage", "sql.Save")
	start := time.Now()
	defer func() {
		metrics.ObserveStorage(shoe.BackendSQL, metrics.OperationSave, start, err)
		tracing.End(span, err)
	}()

	return r.tx.Transaction(ctx, func(ctx context.Context) error {
		db := getDB(ctx, r.db)

		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&ShoeModel{}).Error; err != nil {
			return apperrors.StorageUnavailable(err, "Could not update the database!")
		}
		if len(shoes) == 0 {
			return nil
		}

		models := make([]ShoeModel, 0, len(shoes))
		for i, s := range shoes {
			models = append(models, toModel(s, i))
		}

		if err := db.CreateInBatches(models, 100).Error; err != nil {
			if isDuplicateError(err) {
				return apperrors.ErrDuplicateCode
			}
			r.log.Error("save shoes failed", zap.Error(err))
			return apperrors.StorageUnavailable(err, "Could not update the database!")
		}
		return nil
	})
}

func toModel(s shoe.Shoe, position int) ShoeModel {
	row := s.Row(position)
	return ShoeModel{
		Code:     row.Code,
		Country:  row.Country,
		Product:  row.Product,
		Cost:     row.Cost,
		Quantity: row.Quantity,
		Position: row.Position,
	}
}

func toShoe(m *ShoeModel) shoe.Shoe {
	return shoe.FromRow(shoe.Row{
		Code:     m.Code,
		Country:  m.Country,
		Product:  m.Product,
		Cost:     m.Cost,
		Quantity: m.Quantity,
		Position: m.Position,
	})
}
