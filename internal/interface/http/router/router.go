// Package router 注册全部HTTP路由
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/xiebiao/shoestock/internal/infrastructure/config"
	"github.com/xiebiao/shoestock/internal/interface/http/handler"
	"github.com/xiebiao/shoestock/internal/interface/http/middleware"
	"github.com/xiebiao/shoestock/internal/interface/http/templates"
	"github.com/xiebiao/shoestock/pkg/response"
)

// New 创建gin引擎
// 1. 页面路由：未登录重定向到/login
// 2. /api/v1：JSON接口，未登录返回401
// 3. /ping、/metrics、/swagger 不需要登录
func New(
	cfg *config.Config,
	log *zap.Logger,
	webHandler *handler.WebHandler,
	userHandler *handler.UserHandler,
	shoeHandler *handler.ShoeHandler,
	authMiddleware *middleware.AuthMiddleware,
) (*gin.Engine, error) {
	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	tmpl, err := templates.Load()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(log), middleware.Metrics())
	r.SetHTMLTemplate(tmpl)

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"backend": cfg.Storage.Backend,
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 页面
	r.GET("/", webHandler.Index)
	r.GET("/login", userHandler.LoginPage)
	r.POST("/login", userHandler.LoginForm)
	r.GET("/register", userHandler.RegisterPage)
	r.POST("/register", userHandler.RegisterForm)
	r.GET("/logout", userHandler.LogoutPage)

	pages := r.Group("")
	pages.Use(authMiddleware.RequireLogin())
	{
		pages.GET("/view_all", webHandler.ViewAll)
		pages.GET("/add_shoe", webHandler.AddShoeForm)
		pages.POST("/add_shoe", webHandler.AddShoe)
		pages.GET("/re_stock", webHandler.RestockForm)
		pages.POST("/re_stock", webHandler.Restock)
		pages.GET("/search_shoe", webHandler.SearchForm)
		pages.POST("/search_shoe", webHandler.Search)
		pages.GET("/value_per_item", webHandler.ValuePerItem)
		pages.GET("/highest_qty", webHandler.HighestQty)
	}

	// JSON接口
	v1 := r.Group("/api/v1")
	{
		users := v1.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.POST("/logout", authMiddleware.RequireAuth(), userHandler.Logout)
		}

		authorized := v1.Group("")
		authorized.Use(authMiddleware.RequireAuth())
		{
			authorized.GET("/shoes", shoeHandler.ListShoes)
			authorized.POST("/shoes", shoeHandler.AddShoe)
			authorized.GET("/shoes/lowest", shoeHandler.Lowest)
			authorized.GET("/shoes/highest", shoeHandler.Highest)
			authorized.POST("/shoes/restock", shoeHandler.Restock)
			authorized.GET("/shoes/:code", shoeHandler.GetShoe)
			authorized.GET("/reports/value", shoeHandler.ValueReport)
		}
	}

	return r, nil
}
