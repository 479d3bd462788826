package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xiebiao/shoestock/internal/domain/shoe"
	"github.com/xiebiao/shoestock/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/shoestock/pkg/errors"
	"github.com/xiebiao/shoestock/pkg/response"
)

// WebHandler 库存页面
// 1. GET渲染表单，POST校验并执行
// 2. 校验失败重新渲染表单并显示错误（HTTP 200）
// 3. 修改成功后303重定向到/view_all，避免刷新重复提交
// 4. 每个请求都从存储重新加载，不跨请求缓存
type WebHandler struct {
	uc  InventoryUseCases
	log *zap.Logger
}

// NewWebHandler 创建页面处理器
func NewWebHandler(uc InventoryUseCases, log *zap.Logger) *WebHandler {
	return &WebHandler{uc: uc, log: log}
}

// addShoeForm 新增表单回填
type addShoeForm struct {
	Country, Code, Product, Cost, Quantity string
}

// Index 首页
func (h *WebHandler) Index(c *gin.Context) {
	h.render(c, "index.html", "Shoe Inventory", gin.H{})
}

// ViewAll 查看全部库存
func (h *WebHandler) ViewAll(c *gin.Context) {
	inv, err := h.uc.List.Execute(c.Request.Context())
	data := gin.H{}
	if inv != nil {
		data["Shoes"] = inv.Shoes
		data["Skipped"] = len(inv.Skipped)
	}
	h.renderResult(c, "view_all.html", "Inventory List", data, err)
}

// AddShoeForm 新增表单
func (h *WebHandler) AddShoeForm(c *gin.Context) {
	h.render(c, "add_shoe.html", "Add Shoe", gin.H{"Form": addShoeForm{}})
}

// AddShoe 提交新增
func (h *WebHandler) AddShoe(c *gin.Context) {
	form := addShoeForm{
		Country:  c.PostForm("country"),
		Code:     c.PostForm("code"),
		Product:  c.PostForm("product"),
		Cost:     c.PostForm("cost"),
		Quantity: c.PostForm("quantity"),
	}
	data := gin.H{"Form": form}

	// 1. 校验表单
	s, err := shoe.New(form.Country, form.Code, form.Product, form.Cost, form.Quantity)
	if err != nil {
		h.renderResult(c, "add_shoe.html", "Add Shoe", data, err)
		return
	}

	// 2. 重新加载 → 追加 → 保存
	if err := h.uc.Add.Execute(c.Request.Context(), s); err != nil {
		h.renderResult(c, "add_shoe.html", "Add Shoe", data, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/view_all")
}

// RestockForm 显示数量最少的记录
func (h *WebHandler) RestockForm(c *gin.Context) {
	lowest, err := h.uc.Lowest.Execute(c.Request.Context())
	h.renderResult(c, "re_stock.html", "Restock Shoes", withShoe(gin.H{}, lowest, err), err)
}

// Restock 提交补货
func (h *WebHandler) Restock(c *gin.Context) {
	ctx := c.Request.Context()

	delta, err := shoe.ParseDelta(c.PostForm("quantity"))
	if err != nil {
		// 重新渲染时仍然展示当前数量最少的记录
		lowest, lerr := h.uc.Lowest.Execute(ctx)
		if lerr != nil {
			err = lerr
		}
		h.renderResult(c, "re_stock.html", "Restock Shoes", withShoe(gin.H{}, lowest, lerr), err)
		return
	}

	if _, err := h.uc.Restock.Execute(ctx, delta); err != nil {
		lowest, lerr := h.uc.Lowest.Execute(ctx)
		h.renderResult(c, "re_stock.html", "Restock Shoes", withShoe(gin.H{}, lowest, lerr), err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/view_all")
}

// SearchForm 搜索表单
func (h *WebHandler) SearchForm(c *gin.Context) {
	h.render(c, "search_shoe.html", "Search Shoe", gin.H{})
}

// Search 按编码搜索
func (h *WebHandler) Search(c *gin.Context) {
	code := c.PostForm("code")
	found, err := h.uc.Search.Execute(c.Request.Context(), code)
	h.renderResult(c, "search_shoe.html", "Search Shoe", withShoe(gin.H{"Code": code}, found, err), err)
}

// ValuePerItem 价值报表
func (h *WebHandler) ValuePerItem(c *gin.Context) {
	report, err := h.uc.Value.Execute(c.Request.Context())
	data := gin.H{}
	if err == nil {
		data["Values"] = report.Items
		data["Total"] = report.Total
	}
	h.renderResult(c, "value_per_item.html", "Value per Item", data, err)
}

// HighestQty 数量最多的记录
func (h *WebHandler) HighestQty(c *gin.Context) {
	highest, err := h.uc.Highest.Execute(c.Request.Context())
	h.renderResult(c, "highest_qty.html", "Highest Quantity", withShoe(gin.H{}, highest, err), err)
}

// =========================================
// 渲染辅助函数
// =========================================

func (h *WebHandler) render(c *gin.Context, page, title string, data gin.H) {
	renderPage(c, http.StatusOK, page, title, data)
}

// renderResult 把错误显示在页面上
// 用户可处理的错误（校验、空库存、未找到、重复）返回200，存储故障返回对应的5xx
func (h *WebHandler) renderResult(c *gin.Context, page, title string, data gin.H, err error) {
	if err == nil {
		renderPage(c, http.StatusOK, page, title, data)
		return
	}

	appErr := apperrors.GetAppError(err)
	if appErr.Err != nil {
		h.log.Error("page request failed",
			zap.String("path", c.FullPath()),
			zap.Int("code", appErr.Code),
			zap.Error(appErr.Err),
		)
	}
	data["Error"] = appErr.Message
	renderPage(c, pageStatus(appErr.Code), page, title, data)
}

func renderPage(c *gin.Context, status int, page, title string, data gin.H) {
	data["Title"] = title
	data["User"] = middleware.GetUsername(c)
	c.HTML(status, page, data)
}

func pageStatus(code int) int {
	status := response.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		return status
	}
	return http.StatusOK
}

// withShoe 只有成功时才放入记录，模板用with判断
func withShoe(data gin.H, s shoe.Shoe, err error) gin.H {
	if err == nil {
		data["Shoe"] = &s
	}
	return data
}

