package shoe

import "math"

// Collection 有序的库存集合
// 顺序即加载顺序再加上追加顺序，所有操作都保持该顺序
// 集合由调用方显式持有并传入各操作，包内没有全局状态
type Collection []Shoe

// ItemValue 单个商品的库存价值
type ItemValue struct {
	Product string
	Value   float64
}

// Add 追加一条记录，返回新集合
// 不检查Code重复：唯一性由SQL后端的主键保证
func Add(c Collection, s Shoe) Collection {
	out := make(Collection, len(c), len(c)+1)
	copy(out, c)
	return append(out, s)
}

// IsEmpty 集合是否为空
func IsEmpty(c Collection) bool {
	return len(c) == 0
}

// FindLowestQuantity 数量最少的记录，数量相同时取最先出现的
func FindLowestQuantity(c Collection) (Shoe, bool) {
	if IsEmpty(c) {
		return Shoe{}, false
	}
	lowest := c[0]
	for _, s := range c[1:] {
		if s.Quantity < lowest.Quantity {
			lowest = s
		}
	}
	return lowest, true
}

// FindHighestQuantity 数量最多的记录，数量相同时取最先出现的
func FindHighestQuantity(c Collection) (Shoe, bool) {
	if IsEmpty(c) {
		return Shoe{}, false
	}
	highest := c[0]
	for _, s := range c[1:] {
		if s.Quantity > highest.Quantity {
			highest = s
		}
	}
	return highest, true
}

// Restock 给指定Code的第一条记录增加库存
// 1. delta < 0 返回ErrNegativeDelta，原集合不变
// 2. Code不存在时原样返回（no-op），不报错
// 3. 相加溢出int返回ErrQuantityOverflow，原集合不变
func Restock(c Collection, code string, delta int) (Collection, error) {
	if delta < 0 {
		return c, ErrNegativeDelta
	}

	out := make(Collection, len(c))
	copy(out, c)
	for i := range out {
		if out[i].Code == code {
			if delta > math.MaxInt-out[i].Quantity {
				return c, ErrQuantityOverflow
			}
			out[i].Quantity += delta
			break
		}
	}
	return out, nil
}

// SearchByCode 按Code精确查找，返回第一条匹配
func SearchByCode(c Collection, code string) (Shoe, bool) {
	for _, s := range c {
		if s.Code == code {
			return s, true
		}
	}
	return Shoe{}, false
}

// ValuePerItem 每条记录的库存价值，顺序与集合一致
func ValuePerItem(c Collection) []ItemValue {
	values := make([]ItemValue, 0, len(c))
	for _, s := range c {
		values = append(values, ItemValue{Product: s.Product, Value: s.Value()})
	}
	return values
}

// TotalValue 整个库存的总价值
func TotalValue(c Collection) float64 {
	var total float64
	for _, s := range c {
		total += s.Value()
	}
	return total
}
