// Package storagetest 所有库存后端共用的加载/保存契约测试
package storagetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/shoestock/internal/domain/shoe"
)

// Factory 为每个子测试创建一个干净的仓储
type Factory func(t *testing.T) shoe.Repository

// Sample 契约测试使用的数据，包含相同数量和需要精确往返的小数
func Sample() shoe.Collection {
	return shoe.Collection{
		{Country: "US", Code: "A", Product: "Air Max 90", Cost: 120, Quantity: 5},
		{Country: "FR", Code: "B", Product: "Stan Smith", Cost: 89.99, Quantity: 2},
		{Country: "DE", Code: "C", Product: "Superstar", Cost: 0, Quantity: 9},
		{Country: "VN", Code: "D", Product: "Chuck 70", Cost: 0.1, Quantity: 0},
	}
}

// RunContract 执行后端契约
func RunContract(t *testing.T, newRepo Factory) {
	t.Helper()

	t.Run("初始为空", func(t *testing.T) {
		repo := newRepo(t)
		res, err := repo.Load(context.Background())
		require.NoError(t, err)
		assert.True(t, shoe.IsEmpty(res.Shoes))
		assert.Empty(t, res.Skipped)
	})

	t.Run("保存后加载顺序与内容一致", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		require.NoError(t, repo.Save(ctx, Sample()))

		res, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, Sample(), res.Shoes)
	})

	t.Run("添加后加载包含新记录", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		require.NoError(t, repo.Save(ctx, Sample()))

		res, err := repo.Load(ctx)
		require.NoError(t, err)
		added := shoe.Add(res.Shoes, shoe.Shoe{Country: "IT", Code: "E", Product: "Samba", Cost: 75.5, Quantity: 11})
		require.NoError(t, repo.Save(ctx, added))

		res, err = repo.Load(ctx)
		require.NoError(t, err)
		require.Len(t, res.Shoes, 5)
		got, ok := shoe.SearchByCode(res.Shoes, "E")
		require.True(t, ok)
		assert.Equal(t, added[4], got)
	})

	t.Run("保存是整体替换", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		require.NoError(t, repo.Save(ctx, Sample()))

		restocked, err := shoe.Restock(Sample()[:2], "B", 10)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, restocked))

		res, err := repo.Load(ctx)
		require.NoError(t, err)
		require.Len(t, res.Shoes, 2)
		assert.Equal(t, 12, res.Shoes[1].Quantity)
	})

	t.Run("保存空集合清空存储", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		require.NoError(t, repo.Save(ctx, Sample()))
		require.NoError(t, repo.Save(ctx, shoe.Collection{}))

		res, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, res.Shoes)
	})

	t.Run("后端名称", func(t *testing.T) {
		assert.NotEmpty(t, newRepo(t).Backend())
	})
}
