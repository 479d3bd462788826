package shoe

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/xiebiao/shoestock/internal/domain/shoe"
	"github.com/xiebiao/shoestock/pkg/tracing"
)

// AddShoeUseCase 新增库存记录
// 流程：重新加载 → 追加 → 整体保存
type AddShoeUseCase struct {
	loader
}

// NewAddShoeUseCase 创建用例
func NewAddShoeUseCase(repo shoe.Repository, log *zap.Logger) *AddShoeUseCase {
	return &AddShoeUseCase{loader{repo: repo, log: log}}
}

// Execute s必须已通过shoe.New/NewFromValues校验
// SQL后端遇到重复编码返回ErrDuplicateCode
func (uc *AddShoeUseCase) Execute(ctx context.Context, s shoe.Shoe) (err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "AddShoe")
	defer func() { tracing.End(span, err) }()

	inv, err := uc.hydrate(ctx)
	if err != nil {
		return err
	}

	if err := uc.repo.Save(ctx, shoe.Add(inv.Shoes, s)); err != nil {
		return err
	}

	uc.log.Info("shoe added", zap.String("code", s.Code), zap.Int("quantity", s.Quantity))
	return nil
}

// RestockLowestUseCase 给数量最少的记录补货
type RestockLowestUseCase struct {
	loader
}

// NewRestockLowestUseCase 创建用例
func NewRestockLowestUseCase(repo shoe.Repository, log *zap.Logger) *RestockLowestUseCase {
	return &RestockLowestUseCase{loader{repo: repo, log: log}}
}

// Execute 返回补货后的记录
// 1. delta < 0 在加载前拒绝
// 2. 重新加载后再找最少的记录，避免使用过期的预览结果
func (uc *RestockLowestUseCase) Execute(ctx context.Context, delta int) (updated shoe.Shoe, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "RestockLowest")
	defer func() { tracing.End(span, ignoreEmpty(err)) }()

	if delta < 0 {
		return shoe.Shoe{}, shoe.ErrNegativeDelta
	}

	inv, err := uc.hydrateNonEmpty(ctx)
	if err != nil {
		return shoe.Shoe{}, err
	}

	lowest, _ := shoe.FindLowestQuantity(inv.Shoes)
	shoes, err := shoe.Restock(inv.Shoes, lowest.Code, delta)
	if err != nil {
		return shoe.Shoe{}, err
	}
	if err := uc.repo.Save(ctx, shoes); err != nil {
		return shoe.Shoe{}, err
	}

	updated, _ = shoe.SearchByCode(shoes, lowest.Code)
	uc.log.Info("shoe restocked", zap.String("code", updated.Code), zap.Int("delta", delta), zap.Int("quantity", updated.Quantity))
	return updated, nil
}

// ignoreEmpty 空库存是正常的用户提示，不记为Span错误
func ignoreEmpty(err error) error {
	if errors.Is(err, shoe.ErrEmptyInventory) {
		return nil
	}
	return err
}
