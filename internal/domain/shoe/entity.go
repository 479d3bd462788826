package shoe

import (
	"math"
	"strconv"
	"strings"
)

// Shoe 鞋子库存记录（实体）
// 设计说明：
// 1. Cost和Quantity在进入系统的边界处校验（New/ParseLine/FromRecord），实体内始终满足 >= 0
// 2. Code是业务标识，但只有SQL后端通过主键保证唯一
// 3. 实体不依赖任何存储框架，序列化方式见codec.go
type Shoe struct {
	Country  string
	Code     string
	Product  string
	Cost     float64
	Quantity int
}

// New 从用户输入创建鞋子记录（工厂方法）
// 所有参数都是原始字符串，适用于CLI输入和HTML表单提交
func New(country, code, product, cost, quantity string) (Shoe, error) {
	country, code, product = strings.TrimSpace(country), strings.TrimSpace(code), strings.TrimSpace(product)

	if err := validateText(country, code, product); err != nil {
		return Shoe{}, err
	}

	c, err := ParseCost(cost)
	if err != nil {
		return Shoe{}, err
	}
	q, err := ParseQuantity(quantity)
	if err != nil {
		return Shoe{}, err
	}

	return Shoe{Country: country, Code: code, Product: product, Cost: c, Quantity: q}, nil
}

// NewFromValues 从已解析的数值创建鞋子记录（JSON接口使用）
func NewFromValues(country, code, product string, cost float64, quantity int) (Shoe, error) {
	country, code, product = strings.TrimSpace(country), strings.TrimSpace(code), strings.TrimSpace(product)

	if err := validateText(country, code, product); err != nil {
		return Shoe{}, err
	}
	if !finite(cost) {
		return Shoe{}, ErrInvalidCost
	}
	if cost < 0 || quantity < 0 {
		return Shoe{}, ErrNegativeValue
	}

	return Shoe{Country: country, Code: code, Product: product, Cost: cost, Quantity: quantity}, nil
}

// Value 库存价值 = 单价 × 数量
func (s Shoe) Value() float64 {
	return s.Cost * float64(s.Quantity)
}

// String 与文件行格式一致
func (s Shoe) String() string {
	return s.Line()
}

// ParseCost 解析单价（非负有限小数，NaN/Inf视为非法）
func ParseCost(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || !finite(v) {
		return 0, ErrInvalidCost
	}
	if v < 0 {
		return 0, ErrNegativeValue
	}
	return v, nil
}

// ParseQuantity 解析数量（非负整数）
func ParseQuantity(raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, ErrInvalidQuantity
	}
	if v < 0 {
		return 0, ErrNegativeValue
	}
	return v, nil
}

// ParseDelta 解析补货数量
func ParseDelta(raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, ErrInvalidDelta
	}
	if v < 0 {
		return 0, ErrNegativeDelta
	}
	return v, nil
}

// ValidateCode 搜索条件校验，空编码在上游拒绝
func ValidateCode(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", ErrEmptyCode
	}
	return code, nil
}

func validateText(country, code, product string) error {
	switch {
	case country == "":
		return ErrEmptyCountry
	case code == "":
		return ErrEmptyCode
	case product == "":
		return ErrEmptyProduct
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
