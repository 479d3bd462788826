package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xiebiao/shoestock/internal/domain/shoe"
	"github.com/xiebiao/shoestock/internal/interface/http/dto"
	apperrors "github.com/xiebiao/shoestock/pkg/errors"
	"github.com/xiebiao/shoestock/pkg/response"
)

// ShoeHandler 库存JSON接口
type ShoeHandler struct {
	uc  InventoryUseCases
	log *zap.Logger
}

// NewShoeHandler 创建库存接口处理器
func NewShoeHandler(uc InventoryUseCases, log *zap.Logger) *ShoeHandler {
	return &ShoeHandler{uc: uc, log: log}
}

// ListShoes 查看全部库存
// @Summary      库存列表
// @Description  返回全部库存记录（按存储顺序），以及加载时跳过的无效记录
// @Tags         库存
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.ListShoesResponse}
// @Failure      401 {object} response.Response "未登录"
// @Failure      503 {object} response.Response "存储不可用"
// @Router       /api/v1/shoes [get]
func (h *ShoeHandler) ListShoes(c *gin.Context) {
	inv, err := h.uc.List.Execute(c.Request.Context())
	if err != nil && !errors.Is(err, shoe.ErrEmptyInventory) {
		response.Error(c, h.log, err)
		return
	}
	response.Success(c, dto.NewListShoesResponse(inv.Shoes, inv.Skipped))
}

// AddShoe 新增库存
// @Summary      新增库存
// @Description  追加一条记录并整体保存；SQL后端编码重复返回409
// @Tags         库存
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddShoeRequest true "库存记录"
// @Success      201 {object} response.Response{data=dto.ShoeResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      409 {object} response.Response "编码已存在"
// @Router       /api/v1/shoes [post]
func (h *ShoeHandler) AddShoe(c *gin.Context) {
	// 1. 参数绑定
	var req dto.AddShoeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "Invalid parameters: "+err.Error())
		return
	}

	// 2. 领域校验（去空格、非负）
	s, err := shoe.NewFromValues(req.Country, req.Code, req.Product, *req.Cost, *req.Quantity)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	// 3. 调用用例
	if err := h.uc.Add.Execute(c.Request.Context(), s); err != nil {
		response.Error(c, h.log, err)
		return
	}

	response.Created(c, dto.NewShoeResponse(s))
}

// GetShoe 按编码查询
// @Summary      按编码查询
// @Tags         库存
// @Produce      json
// @Security     BearerAuth
// @Param        code path string true "鞋子编码（区分大小写）"
// @Success      200 {object} response.Response{data=dto.ShoeResponse}
// @Failure      404 {object} response.Response "未找到或库存为空"
// @Router       /api/v1/shoes/{code} [get]
func (h *ShoeHandler) GetShoe(c *gin.Context) {
	found, err := h.uc.Search.Execute(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.Success(c, dto.NewShoeResponse(found))
}

// Lowest 数量最少的记录
// @Summary      补货预览
// @Description  数量最少的记录，数量相同时取最先出现的
// @Tags         库存
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.ShoeResponse}
// @Failure      404 {object} response.Response "库存为空"
// @Router       /api/v1/shoes/lowest [get]
func (h *ShoeHandler) Lowest(c *gin.Context) {
	lowest, err := h.uc.Lowest.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.Success(c, dto.NewShoeResponse(lowest))
}

// Restock 给数量最少的记录补货
// @Summary      补货
// @Tags         库存
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.RestockRequest true "补货数量（>=0）"
// @Success      200 {object} response.Response{data=dto.ShoeResponse}
// @Failure      400 {object} response.Response "数量无效"
// @Failure      404 {object} response.Response "库存为空"
// @Router       /api/v1/shoes/restock [post]
func (h *ShoeHandler) Restock(c *gin.Context) {
	var req dto.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "Invalid parameters: "+err.Error())
		return
	}

	updated, err := h.uc.Restock.Execute(c.Request.Context(), *req.Quantity)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.Success(c, dto.NewShoeResponse(updated))
}

// Highest 数量最多的记录
// @Summary      促销候选
// @Tags         库存
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.ShoeResponse}
// @Failure      404 {object} response.Response "库存为空"
// @Router       /api/v1/shoes/highest [get]
func (h *ShoeHandler) Highest(c *gin.Context) {
	highest, err := h.uc.Highest.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.Success(c, dto.NewShoeResponse(highest))
}

// ValueReport 价值报表
// @Summary      库存价值
// @Description  每条记录的 cost × quantity，不合并同名产品
// @Tags         报表
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.ValueReportResponse}
// @Failure      404 {object} response.Response "库存为空"
// @Router       /api/v1/reports/value [get]
func (h *ShoeHandler) ValueReport(c *gin.Context) {
	report, err := h.uc.Value.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	resp := dto.ValueReportResponse{Items: make([]dto.ItemValueResponse, 0, len(report.Items)), Total: report.Total}
	for _, item := range report.Items {
		resp.Items = append(resp.Items, dto.ItemValueResponse{Product: item.Product, Value: item.Value})
	}
	response.Success(c, resp)
}
