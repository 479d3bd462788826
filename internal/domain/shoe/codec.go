package shoe

import (
	"strconv"
	"strings"
)

// FileHeader 文本文件固定表头
const FileHeader = "Country,Code,Product,Cost,Quantity"

const fieldCount = 5

// =========================================
// 文本行格式（文件后端）
// =========================================

// Line 序列化为逗号分隔的一行
// 注意：字段中的逗号不做转义，包含逗号的产品名会破坏文件格式
func (s Shoe) Line() string {
	return strings.Join([]string{
		s.Country,
		s.Code,
		s.Product,
		strconv.FormatFloat(s.Cost, 'f', -1, 64),
		strconv.Itoa(s.Quantity),
	}, ",")
}

// ParseLine 解析文件中的一行
// 返回的错误总是*ParseError，由调用方记录为跳过诊断
func ParseLine(line string) (Shoe, error) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) != fieldCount {
		return Shoe{}, &ParseError{Line: line, Reason: "expected 5 fields, got " + strconv.Itoa(len(fields))}
	}

	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if fields[0] == "" || fields[1] == "" || fields[2] == "" {
		return Shoe{}, &ParseError{Line: line, Reason: "country, code and product cannot be empty"}
	}

	cost, err := strconv.ParseFloat(fields[3], 64)
	if err != nil || !finite(cost) {
		return Shoe{}, &ParseError{Line: line, Reason: "cost is not a finite number"}
	}
	quantity, err := strconv.Atoi(fields[4])
	if err != nil {
		return Shoe{}, &ParseError{Line: line, Reason: "quantity is not an integer"}
	}
	if cost < 0 || quantity < 0 {
		return Shoe{}, &ParseError{Line: line, Reason: "cost and quantity must be non-negative"}
	}

	return Shoe{
		Country:  fields[0],
		Code:     fields[1],
		Product:  fields[2],
		Cost:     cost,
		Quantity: quantity,
	}, nil
}

// =========================================
// 结构化格式（Blob JSON、HTML渲染、JSON接口）
// =========================================

// Record JSON对象，键名与inventory.json一致
// 指针字段用于区分"缺失"和"零值"，缺失字段视为结构错误
type Record struct {
	Country  *string  `json:"country"`
	Code     *string  `json:"code"`
	Product  *string  `json:"product"`
	Cost     *float64 `json:"cost"`
	Quantity *int     `json:"quantity"`
}

// Record 序列化为结构化记录
func (s Shoe) Record() Record {
	country, code, product := s.Country, s.Code, s.Product
	cost, quantity := s.Cost, s.Quantity
	return Record{Country: &country, Code: &code, Product: &product, Cost: &cost, Quantity: &quantity}
}

// FromRecord 反序列化结构化记录
// 缺失字段、空文本或非法数值返回*ParseError
func FromRecord(r Record) (Shoe, error) {
	if r.Country == nil || r.Code == nil || r.Product == nil || r.Cost == nil || r.Quantity == nil {
		return Shoe{}, &ParseError{Reason: "missing field"}
	}
	if *r.Country == "" || *r.Code == "" || *r.Product == "" {
		return Shoe{}, &ParseError{Line: *r.Code, Reason: "country, code and product cannot be empty"}
	}
	if !finite(*r.Cost) || *r.Cost < 0 || *r.Quantity < 0 {
		return Shoe{}, &ParseError{Line: *r.Code, Reason: "cost and quantity must be non-negative"}
	}
	return Shoe{Country: *r.Country, Code: *r.Code, Product: *r.Product, Cost: *r.Cost, Quantity: *r.Quantity}, nil
}

// =========================================
// 行元组格式（SQL后端）
// =========================================

// Row 关系表的一行，Position保存集合顺序
type Row struct {
	Code     string
	Country  string
	Product  string
	Cost     float64
	Quantity int
	Position int
}

// Row 序列化为表行
func (s Shoe) Row(position int) Row {
	return Row{
		Code:     s.Code,
		Country:  s.Country,
		Product:  s.Product,
		Cost:     s.Cost,
		Quantity: s.Quantity,
		Position: position,
	}
}

// FromRow 表行 → 实体
func FromRow(r Row) Shoe {
	return Shoe{Country: r.Country, Code: r.Code, Product: r.Product, Cost: r.Cost, Quantity: r.Quantity}
}
