package dto

import "github.com/xiebiao/shoestock/internal/domain/shoe"

// ShoeResponse 单条库存记录
type ShoeResponse struct {
	Country  string  `json:"country"`
	Code     string  `json:"code"`
	Product  string  `json:"product"`
	Cost     float64 `json:"cost"`
	Quantity int     `json:"quantity"`
	Value    float64 `json:"value"` // cost × quantity
}

// NewShoeResponse 领域实体 → HTTP DTO
func NewShoeResponse(s shoe.Shoe) ShoeResponse {
	return ShoeResponse{
		Country:  s.Country,
		Code:     s.Code,
		Product:  s.Product,
		Cost:     s.Cost,
		Quantity: s.Quantity,
		Value:    s.Value(),
	}
}

// SkippedRecordResponse 加载时跳过的记录
type SkippedRecordResponse struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ListShoesResponse 库存列表
// 空库存返回空数组，不是错误
type ListShoesResponse struct {
	Shoes   []ShoeResponse          `json:"shoes"`
	Total   int                     `json:"total"`
	Skipped []SkippedRecordResponse `json:"skipped,omitempty"`
}

// NewListShoesResponse 构建列表响应
func NewListShoesResponse(shoes shoe.Collection, skipped []shoe.SkippedRecord) *ListShoesResponse {
	resp := &ListShoesResponse{
		Shoes: make([]ShoeResponse, 0, len(shoes)),
		Total: len(shoes),
	}
	for _, s := range shoes {
		resp.Shoes = append(resp.Shoes, NewShoeResponse(s))
	}
	for _, s := range skipped {
		resp.Skipped = append(resp.Skipped, SkippedRecordResponse{Line: s.Number, Reason: s.Reason})
	}
	return resp
}

// AddShoeRequest 新增库存
// Cost和Quantity用指针区分"未传"和0
type AddShoeRequest struct {
	Country  string   `json:"country" binding:"required"`
	Code     string   `json:"code" binding:"required"`
	Product  string   `json:"product" binding:"required"`
	Cost     *float64 `json:"cost" binding:"required"`
	Quantity *int     `json:"quantity" binding:"required"`
}

// RestockRequest 给数量最少的记录补货
type RestockRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// ItemValueResponse 单条记录的库存价值
type ItemValueResponse struct {
	Product string  `json:"product"`
	Value   float64 `json:"value"`
}

// ValueReportResponse 价值报表
type ValueReportResponse struct {
	Items []ItemValueResponse `json:"items"`
	Total float64             `json:"total"`
}
