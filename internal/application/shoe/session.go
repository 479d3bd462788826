package shoe

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/shoestock/internal/domain/shoe"
)

// Session 交互式菜单的库存会话
// 启动时加载一次，之后在内存中操作；新增和补货成功后整体保存
// 保存失败时内存状态保持不变
type Session struct {
	repo    shoe.Repository
	log     *zap.Logger
	shoes   shoe.Collection
	skipped []shoe.SkippedRecord
}

// NewSession 创建会话（尚未加载）
func NewSession(repo shoe.Repository, log *zap.Logger) *Session {
	return &Session{repo: repo, log: log, shoes: shoe.Collection{}}
}

// Open 从存储加载库存
// 加载失败时会话仍可使用，内存为空集合
func (s *Session) Open(ctx context.Context) error {
	res, err := s.repo.Load(ctx)
	if err != nil {
		s.shoes = shoe.Collection{}
		return err
	}
	s.shoes = res.Shoes
	s.skipped = res.Skipped
	return nil
}

// Backend 当前存储后端名称
func (s *Session) Backend() string {
	return s.repo.Backend()
}

// Shoes 当前内存中的集合
func (s *Session) Shoes() shoe.Collection {
	return s.shoes
}

// Skipped 最近一次加载跳过的记录
func (s *Session) Skipped() []shoe.SkippedRecord {
	return s.skipped
}

// Add 追加并保存
func (s *Session) Add(ctx context.Context, item shoe.Shoe) error {
	next := shoe.Add(s.shoes, item)
	if err := s.repo.Save(ctx, next); err != nil {
		return err
	}
	s.shoes = next
	s.log.Info("shoe added", zap.String("code", item.Code))
	return nil
}

// Lowest 数量最少的记录
func (s *Session) Lowest() (shoe.Shoe, error) {
	lowest, ok := shoe.FindLowestQuantity(s.shoes)
	if !ok {
		return shoe.Shoe{}, shoe.ErrEmptyInventory
	}
	return lowest, nil
}

// Restock 给指定编码补货并保存，返回补货后的记录
func (s *Session) Restock(ctx context.Context, code string, delta int) (shoe.Shoe, error) {
	next, err := shoe.Restock(s.shoes, code, delta)
	if err != nil {
		return shoe.Shoe{}, err
	}
	if err := s.repo.Save(ctx, next); err != nil {
		return shoe.Shoe{}, err
	}
	s.shoes = next
	updated, _ := shoe.SearchByCode(next, code)
	s.log.Info("shoe restocked", zap.String("code", code), zap.Int("delta", delta))
	return updated, nil
}

// Search 按编码查找
func (s *Session) Search(code string) (shoe.Shoe, error) {
	if shoe.IsEmpty(s.shoes) {
		return shoe.Shoe{}, shoe.ErrEmptyInventory
	}
	found, ok := shoe.SearchByCode(s.shoes, code)
	if !ok {
		return shoe.Shoe{}, shoe.ErrNotFound
	}
	return found, nil
}

// ValuePerItem 价值报表
func (s *Session) ValuePerItem() (*ValueReport, error) {
	if shoe.IsEmpty(s.shoes) {
		return nil, shoe.ErrEmptyInventory
	}
	return &ValueReport{Items: shoe.ValuePerItem(s.shoes), Total: shoe.TotalValue(s.shoes)}, nil
}

// Highest 数量最多的记录
func (s *Session) Highest() (shoe.Shoe, error) {
	highest, ok := shoe.FindHighestQuantity(s.shoes)
	if !ok {
		return shoe.Shoe{}, shoe.ErrEmptyInventory
	}
	return highest, nil
}
