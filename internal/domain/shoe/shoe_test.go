package shoe

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/shoestock/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		country  string
		code     string
		product  string
		cost     string
		quantity string
		wantErr  error
	}{
		{name: "合法输入", country: " South Africa ", code: "SKU44386", product: "Air Max 90", cost: "2300", quantity: "20"},
		{name: "国家为空", country: "  ", code: "SKU1", product: "P", cost: "1", quantity: "1", wantErr: ErrEmptyCountry},
		{name: "编码为空", country: "ZA", code: "", product: "P", cost: "1", quantity: "1", wantErr: ErrEmptyCode},
		{name: "产品为空", country: "ZA", code: "SKU1", product: "", cost: "1", quantity: "1", wantErr: ErrEmptyProduct},
		{name: "单价非数字", country: "ZA", code: "SKU1", product: "P", cost: "abc", quantity: "1", wantErr: ErrInvalidCost},
		{name: "数量非整数", country: "ZA", code: "SKU1", product: "P", cost: "1", quantity: "1.5", wantErr: ErrInvalidQuantity},
		{name: "单价为负", country: "ZA", code: "SKU1", product: "P", cost: "-1", quantity: "1", wantErr: ErrNegativeValue},
		{name: "数量为负", country: "ZA", code: "SKU1", product: "P", cost: "1", quantity: "-5", wantErr: ErrNegativeValue},
		{name: "单价NaN", country: "ZA", code: "SKU1", product: "P", cost: "NaN", quantity: "1", wantErr: ErrInvalidCost},
		{name: "单价Inf", country: "ZA", code: "SKU1", product: "P", cost: "Inf", quantity: "1", wantErr: ErrInvalidCost},
		{name: "单价+Inf", country: "ZA", code: "SKU1", product: "P", cost: "+Inf", quantity: "1", wantErr: ErrInvalidCost},
		{name: "单价-Inf", country: "ZA", code: "SKU1", product: "P", cost: "-Inf", quantity: "1", wantErr: ErrInvalidCost},
		{name: "数量超出int", country: "ZA", code: "SKU1", product: "P", cost: "1", quantity: "99999999999999999999", wantErr: ErrInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.country, tt.code, tt.product, tt.cost, tt.quantity)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidParams))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Shoe{Country: "South Africa", Code: "SKU44386", Product: "Air Max 90", Cost: 2300, Quantity: 20}, s)
		})
	}
}

func TestNewFromValues_Negative(t *testing.T) {
	_, err := NewFromValues("ZA", "SKU1", "P", -0.5, 1)
	assert.ErrorIs(t, err, ErrNegativeValue)
}

func TestNewFromValues_NonFiniteCost(t *testing.T) {
	for _, cost := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := NewFromValues("ZA", "SKU1", "P", cost, 1)
		assert.Equal(t, ErrInvalidCost, err, "cost=%v", cost)
	}
}

func TestParseDelta(t *testing.T) {
	d, err := ParseDelta(" 15 ")
	require.NoError(t, err)
	assert.Equal(t, 15, d)

	_, err = ParseDelta("-1")
	assert.ErrorIs(t, err, ErrNegativeDelta)

	_, err = ParseDelta("ten")
	assert.ErrorIs(t, err, ErrInvalidDelta)
}

func TestLine_RoundTrip(t *testing.T) {
	s := Shoe{Country: "Vietnam", Code: "SKU90000", Product: "Ultraboost", Cost: 1499.99, Quantity: 7}

	assert.Equal(t, "Vietnam,SKU90000,Ultraboost,1499.99,7", s.Line())

	parsed, err := ParseLine(s.Line())
	require.NoError(t, err)
	assert.Equal(t, s, parsed)
}

func TestParseLine_Invalid(t *testing.T) {
	lines := []string{
		"only,four,fields,1",
		"ZA,SKU1,P,cheap,3",
		"ZA,SKU1,P,10,three",
		"ZA,SKU1,P,10,-3",
		"ZA,SKU1,Air, Max,10,3",
		"ZA,SKU1,P,NaN,3",
		"ZA,SKU1,P,Inf,3",
		"ZA,SKU1,P,+Inf,3",
		"US,,Boot,1,1",
		" ,SKU1,Boot,1,1",
		"US,SKU1,,1,1",
	}
	for _, line := range lines {
		_, err := ParseLine(line)
		var perr *ParseError
		require.ErrorAs(t, err, &perr, line)
		assert.Equal(t, line, perr.Line)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeParseRecord))
	}
}

func TestRecord_JSON(t *testing.T) {
	s := Shoe{Country: "China", Code: "SKU1", Product: "Runner", Cost: 10.5, Quantity: 2}

	data, err := json.Marshal(s.Record())
	require.NoError(t, err)
	assert.JSONEq(t, `{"country":"China","code":"SKU1","product":"Runner","cost":10.5,"quantity":2}`, string(data))

	var r Record
	require.NoError(t, json.Unmarshal([]byte(`{"country":"China","code":"SKU1","product":"Runner","cost":10.5}`), &r))
	_, err = FromRecord(r)
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)

	rec := s.Record()
	nan := math.NaN()
	rec.Cost = &nan
	_, err = FromRecord(rec)
	assert.ErrorAs(t, err, &perr)
}

func TestRow(t *testing.T) {
	s := Shoe{Country: "China", Code: "SKU1", Product: "Runner", Cost: 10.5, Quantity: 2}
	row := s.Row(3)
	assert.Equal(t, 3, row.Position)
	assert.Equal(t, s, FromRow(row))
}

func sample() Collection {
	return Collection{
		{Country: "ZA", Code: "A", Product: "Alpha", Cost: 10, Quantity: 5},
		{Country: "ZA", Code: "B", Product: "Beta", Cost: 2.5, Quantity: 2},
		{Country: "ZA", Code: "C", Product: "Gamma", Cost: 1, Quantity: 9},
		{Country: "ZA", Code: "D", Product: "Delta", Cost: 4, Quantity: 2},
		{Country: "ZA", Code: "E", Product: "Epsilon", Cost: 3, Quantity: 9},
	}
}

func TestAdd_DoesNotMutate(t *testing.T) {
	c := sample()
	added := Add(c, Shoe{Code: "F"})

	assert.Len(t, c, 5)
	assert.Len(t, added, 6)
	assert.Equal(t, "F", added[5].Code)
}

func TestFindLowestAndHighest_FirstWinsTies(t *testing.T) {
	c := sample()

	low, ok := FindLowestQuantity(c)
	require.True(t, ok)
	assert.Equal(t, "B", low.Code)

	high, ok := FindHighestQuantity(c)
	require.True(t, ok)
	assert.Equal(t, "C", high.Code)

	_, ok = FindLowestQuantity(nil)
	assert.False(t, ok)
	_, ok = FindHighestQuantity(Collection{})
	assert.False(t, ok)
}

func TestRestock(t *testing.T) {
	t.Run("增加指定记录", func(t *testing.T) {
		c := sample()
		out, err := Restock(c, "B", 10)
		require.NoError(t, err)
		assert.Equal(t, 12, out[1].Quantity)
		assert.Equal(t, 2, c[1].Quantity, "原集合不变")
	})

	t.Run("负数拒绝", func(t *testing.T) {
		c := sample()
		out, err := Restock(c, "B", -1)
		assert.ErrorIs(t, err, ErrNegativeDelta)
		assert.Equal(t, c, out)
	})

	t.Run("未知编码不报错", func(t *testing.T) {
		c := sample()
		out, err := Restock(c, "ZZZ", 3)
		require.NoError(t, err)
		assert.Equal(t, c, out)
	})

	t.Run("溢出拒绝", func(t *testing.T) {
		c := sample()
		out, err := Restock(c, "A", math.MaxInt)
		assert.Equal(t, ErrQuantityOverflow, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidParams))
		assert.Equal(t, c, out)
		assert.Equal(t, 5, c[0].Quantity)
	})

	t.Run("恰好到达上限", func(t *testing.T) {
		c := sample()
		out, err := Restock(c, "A", math.MaxInt-5)
		require.NoError(t, err)
		assert.Equal(t, math.MaxInt, out[0].Quantity)
	})

	t.Run("补货0不改变", func(t *testing.T) {
		c := sample()
		out, err := Restock(c, "A", 0)
		require.NoError(t, err)
		assert.Equal(t, c, out)
	})
}

func TestSearchByCode(t *testing.T) {
	s, ok := SearchByCode(sample(), "D")
	require.True(t, ok)
	assert.Equal(t, "Delta", s.Product)

	_, ok = SearchByCode(sample(), "d")
	assert.False(t, ok, "大小写敏感")
}

func TestValuePerItem(t *testing.T) {
	values := ValuePerItem(sample())
	require.Len(t, values, 5)
	assert.Equal(t, ItemValue{Product: "Alpha", Value: 50}, values[0])
	assert.Equal(t, ItemValue{Product: "Beta", Value: 5}, values[1])
	assert.InDelta(t, 50+5+9+8+27, TotalValue(sample()), 1e-9)
	assert.Empty(t, ValuePerItem(nil))
}
