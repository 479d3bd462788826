package user

import (
	"context"

	"github.com/xiebiao/shoestock/internal/domain/user"
	"github.com/xiebiao/shoestock/pkg/metrics"
)

// RegisterUseCase 用户注册用例
// 注册成功后直接登录（与登录用例共用会话和Token签发）
type RegisterUseCase struct {
	userService user.Service
	login       *LoginUseCase
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service, login *LoginUseCase) *RegisterUseCase {
	return &RegisterUseCase{
		userService: userService,
		login:       login,
	}
}

// Execute 执行注册
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (resp *LoginResponse, err error) {
	defer func() { metrics.ObserveAuth("register", err) }()

	// 1. 调用领域服务执行注册（校验、哈希、唯一性）
	u, err := uc.userService.Register(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	// 2. 签发Token并建立会话
	return uc.login.issue(ctx, u)
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string
	Password string
}
