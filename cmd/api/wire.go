//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 修改后运行 `wire gen ./cmd/api` 重新生成wire_gen.go

package main

import (
	"github.com/google/wire"

	appshoe "github.com/xiebiao/shoestock/internal/application/shoe"
	appuser "github.com/xiebiao/shoestock/internal/application/user"
	"github.com/xiebiao/shoestock/internal/domain/user"
	"github.com/xiebiao/shoestock/internal/infrastructure/config"
	"github.com/xiebiao/shoestock/internal/infrastructure/persistence/relational"
	"github.com/xiebiao/shoestock/internal/interface/http/handler"
	"github.com/xiebiao/shoestock/internal/interface/http/router"
)

// infrastructureSet 配置、日志、数据库、Redis
var infrastructureSet = wire.NewSet(
	config.Load,
	provideLogger,
	provideDB,
	provideRedis,
)

// repositorySet 仓储
// 库存仓储按storage.backend选择；用户表始终在关系库中
var repositorySet = wire.NewSet(
	provideShoeRepository,
	relational.NewUserRepository,
	provideSessionStore,
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	user.NewService,
	provideJWTManager,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	appshoe.NewListShoesUseCase,
	appshoe.NewAddShoeUseCase,
	appshoe.NewLowestStockUseCase,
	appshoe.NewRestockLowestUseCase,
	appshoe.NewSearchShoeUseCase,
	appshoe.NewValuePerItemUseCase,
	appshoe.NewHighestQuantityUseCase,
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewAuthorizeUseCase,
)

// interfaceSet 中间件、处理器、路由
var interfaceSet = wire.NewSet(
	wire.Struct(new(handler.InventoryUseCases), "*"),
	provideAuthMiddleware,
	handler.NewWebHandler,
	handler.NewUserHandler,
	handler.NewShoeHandler,
	router.New,
)

// InitializeApp 组装整个应用
// cleanup按创建的相反顺序关闭Redis、数据库并刷新日志
func InitializeApp(cfgPath string) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		interfaceSet,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}
