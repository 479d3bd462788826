package shoe

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/shoestock/internal/domain/shoe"
	"github.com/xiebiao/shoestock/pkg/tracing"
)

const tracerName = "shoe"

// Inventory 一次加载得到的库存快照
type Inventory struct {
	Shoes   shoe.Collection      `json:"-"`
	Skipped []shoe.SkippedRecord `json:"-"`
}

// ValueReport 库存价值报表
type ValueReport struct {
	Items []shoe.ItemValue
	Total float64
}

// loader 每个用例开始时从存储重新加载（不跨请求缓存）
type loader struct {
	repo shoe.Repository
	log  *zap.Logger
}

func (l loader) hydrate(ctx context.Context) (*Inventory, error) {
	res, err := l.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(res.Skipped) > 0 {
		l.log.Warn("inventory loaded with skipped records",
			zap.String("backend", l.repo.Backend()),
			zap.Int("skipped", len(res.Skipped)),
		)
	}
	return &Inventory{Shoes: res.Shoes, Skipped: res.Skipped}, nil
}

// hydrateNonEmpty 读操作的前置检查：空库存返回ErrEmptyInventory
func (l loader) hydrateNonEmpty(ctx context.Context) (*Inventory, error) {
	inv, err := l.hydrate(ctx)
	if err != nil {
		return nil, err
	}
	if shoe.IsEmpty(inv.Shoes) {
		return inv, shoe.ErrEmptyInventory
	}
	return inv, nil
}

// =========================================
// 查询用例
// =========================================

// ListShoesUseCase 查看全部库存
type ListShoesUseCase struct {
	loader
}

// NewListShoesUseCase 创建用例
func NewListShoesUseCase(repo shoe.Repository, log *zap.Logger) *ListShoesUseCase {
	return &ListShoesUseCase{loader{repo: repo, log: log}}
}

// Execute 返回全部记录和跳过诊断
// 空库存时同时返回快照和ErrEmptyInventory，调用方可以展示跳过数量
func (uc *ListShoesUseCase) Execute(ctx context.Context) (inv *Inventory, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "ListShoes")
	defer func() { tracing.End(span, ignoreEmpty(err)) }()

	return uc.hydrateNonEmpty(ctx)
}

// LowestStockUseCase 补货预览：数量最少的记录
type LowestStockUseCase struct {
	loader
}

// NewLowestStockUseCase 创建用例
func NewLowestStockUseCase(repo shoe.Repository, log *zap.Logger) *LowestStockUseCase {
	return &LowestStockUseCase{loader{repo: repo, log: log}}
}

// Execute 数量相同时取最先出现的
func (uc *LowestStockUseCase) Execute(ctx context.Context) (s shoe.Shoe, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "LowestStock")
	defer func() { tracing.End(span, ignoreEmpty(err)) }()

	inv, err := uc.hydrateNonEmpty(ctx)
	if err != nil {
		return shoe.Shoe{}, err
	}
	lowest, _ := shoe.FindLowestQuantity(inv.Shoes)
	return lowest, nil
}

// SearchShoeUseCase 按编码查找
type SearchShoeUseCase struct {
	loader
}

// NewSearchShoeUseCase 创建用例
func NewSearchShoeUseCase(repo shoe.Repository, log *zap.Logger) *SearchShoeUseCase {
	return &SearchShoeUseCase{loader{repo: repo, log: log}}
}

// Execute 空编码在加载前拒绝；找不到返回ErrNotFound
func (uc *SearchShoeUseCase) Execute(ctx context.Context, code string) (s shoe.Shoe, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "SearchShoe")
	defer func() { tracing.End(span, ignoreEmpty(err)) }()

	code, err = shoe.ValidateCode(code)
	if err != nil {
		return shoe.Shoe{}, err
	}

	inv, err := uc.hydrateNonEmpty(ctx)
	if err != nil {
		return shoe.Shoe{}, err
	}

	found, ok := shoe.SearchByCode(inv.Shoes, code)
	if !ok {
		return shoe.Shoe{}, shoe.ErrNotFound
	}
	return found, nil
}

// ValuePerItemUseCase 每条记录的库存价值
type ValuePerItemUseCase struct {
	loader
}

// NewValuePerItemUseCase 创建用例
func NewValuePerItemUseCase(repo shoe.Repository, log *zap.Logger) *ValuePerItemUseCase {
	return &ValuePerItemUseCase{loader{repo: repo, log: log}}
}

// Execute 顺序与集合一致，不合并同名产品
func (uc *ValuePerItemUseCase) Execute(ctx context.Context) (report *ValueReport, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "ValuePerItem")
	defer func() { tracing.End(span, ignoreEmpty(err)) }()

	inv, err := uc.hydrateNonEmpty(ctx)
	if err != nil {
		return nil, err
	}
	return &ValueReport{
		Items: shoe.ValuePerItem(inv.Shoes),
		Total: shoe.TotalValue(inv.Shoes),
	}, nil
}

// HighestQuantityUseCase 数量最多的记录（促销候选）
type HighestQuantityUseCase struct {
	loader
}

// NewHighestQuantityUseCase 创建用例
func NewHighestQuantityUseCase(repo shoe.Repository, log *zap.Logger) *HighestQuantityUseCase {
	return &HighestQuantityUseCase{loader{repo: repo, log: log}}
}

// Execute 数量相同时取最先出现的
func (uc *HighestQuantityUseCase) Execute(ctx context.Context) (s shoe.Shoe, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "HighestQuantity")
	defer func() { tracing.End(span, ignoreEmpty(err)) }()

	inv, err := uc.hydrateNonEmpty(ctx)
	if err != nil {
		return shoe.Shoe{}, err
	}
	highest, _ := shoe.FindHighestQuantity(inv.Shoes)
	return highest, nil
}
