package handler

import (
	appshoe "github.com/xiebiao/shoestock/internal/application/shoe"
)

// InventoryUseCases 页面和JSON接口共用的库存用例
type InventoryUseCases struct {
	List    *appshoe.ListShoesUseCase
	Add     *appshoe.AddShoeUseCase
	Lowest  *appshoe.LowestStockUseCase
	Restock *appshoe.RestockLowestUseCase
	Search  *appshoe.SearchShoeUseCase
	Value   *appshoe.ValuePerItemUseCase
	Highest *appshoe.HighestQuantityUseCase
}
