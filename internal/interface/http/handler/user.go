package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appuser "github.com/xiebiao/shoestock/internal/application/user"
	"github.com/xiebiao/shoestock/internal/infrastructure/config"
	"github.com/xiebiao/shoestock/internal/interface/http/dto"
	"github.com/xiebiao/shoestock/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/shoestock/pkg/errors"
	"github.com/xiebiao/shoestock/pkg/response"
)

// UserHandler 登录、注册、登出（页面和JSON接口）
// 页面登录成功后Token写入HttpOnly Cookie；JSON接口直接返回Token
type UserHandler struct {
	registerUseCase *appuser.RegisterUseCase
	loginUseCase    *appuser.LoginUseCase
	logoutUseCase   *appuser.LogoutUseCase
	auth            *middleware.AuthMiddleware
	cookie          config.JWTConfig
	log             *zap.Logger
}

// NewUserHandler 创建用户处理器
func NewUserHandler(
	registerUseCase *appuser.RegisterUseCase,
	loginUseCase *appuser.LoginUseCase,
	logoutUseCase *appuser.LogoutUseCase,
	auth *middleware.AuthMiddleware,
	cfg *config.Config,
	log *zap.Logger,
) *UserHandler {
	return &UserHandler{
		registerUseCase: registerUseCase,
		loginUseCase:    loginUseCase,
		logoutUseCase:   logoutUseCase,
		auth:            auth,
		cookie:          cfg.JWT,
		log:             log,
	}
}

// =========================================
// 页面
// =========================================

// LoginPage 登录表单
func (h *UserHandler) LoginPage(c *gin.Context) {
	renderPage(c, http.StatusOK, "login.html", "Login", gin.H{})
}

// LoginForm 提交登录
// 用户不存在和密码错误显示同一条消息
func (h *UserHandler) LoginForm(c *gin.Context) {
	username := c.PostForm("username")
	resp, err := h.loginUseCase.Execute(c.Request.Context(), appuser.LoginRequest{
		Username: username,
		Password: c.PostForm("password"),
	})
	if err != nil {
		h.renderAuthError(c, "login.html", "Login", username, err)
		return
	}

	h.setCookie(c, resp.AccessToken, resp.ExpiresAt)
	c.Redirect(http.StatusSeeOther, "/view_all")
}

// RegisterPage 注册表单
func (h *UserHandler) RegisterPage(c *gin.Context) {
	renderPage(c, http.StatusOK, "register.html", "Register", gin.H{})
}

// RegisterForm 提交注册，成功后直接登录
func (h *UserHandler) RegisterForm(c *gin.Context) {
	username := c.PostForm("username")
	resp, err := h.registerUseCase.Execute(c.Request.Context(), appuser.RegisterRequest{
		Username: username,
		Password: c.PostForm("password"),
	})
	if err != nil {
		h.renderAuthError(c, "register.html", "Register", username, err)
		return
	}

	h.setCookie(c, resp.AccessToken, resp.ExpiresAt)
	c.Redirect(http.StatusSeeOther, "/view_all")
}

// LogoutPage 登出并清除Cookie
func (h *UserHandler) LogoutPage(c *gin.Context) {
	if token := h.auth.Token(c); token != "" {
		if err := h.logoutUseCase.Execute(c.Request.Context(), token); err != nil {
			h.log.Warn("logout failed", zap.Error(err))
		}
	}
	h.clearCookie(c)
	c.Redirect(http.StatusSeeOther, "/login")
}

func (h *UserHandler) renderAuthError(c *gin.Context, page, title, username string, err error) {
	appErr := apperrors.GetAppError(err)
	if appErr.Err != nil {
		h.log.Error("auth request failed", zap.Int("code", appErr.Code), zap.Error(appErr.Err))
	}
	renderPage(c, pageStatus(appErr.Code), page, title, gin.H{
		"Error":    appErr.Message,
		"Username": username,
	})
}

func (h *UserHandler) setCookie(c *gin.Context, token string, expiresAt time.Time) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.CookieName, token, int(time.Until(expiresAt).Seconds()), "/", "", h.cookie.CookieSecure, true)
}

func (h *UserHandler) clearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.CookieName, "", -1, "/", "", h.cookie.CookieSecure, true)
}

// =========================================
// JSON接口
// =========================================

// Register 用户注册
// @Summary      用户注册
// @Description  创建账号并直接登录，返回Token
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "注册信息"
// @Success      200 {object} response.Response{data=dto.LoginResponse} "注册成功"
// @Failure      400 {object} response.Response "参数错误"
// @Failure      409 {object} response.Response "用户名已存在"
// @Router       /api/v1/users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "Invalid parameters: "+err.Error())
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), appuser.RegisterRequest{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.Success(c, toLoginResponse(result))
}

// Login 用户登录
// @Summary      用户登录
// @Description  验证用户名密码，返回JWT
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录信息"
// @Success      200 {object} response.Response{data=dto.LoginResponse} "登录成功"
// @Failure      401 {object} response.Response "用户名或密码错误"
// @Router       /api/v1/users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "Invalid parameters: "+err.Error())
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), appuser.LoginRequest{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.Success(c, toLoginResponse(result))
}

// Logout 用户登出
// @Summary      用户登出
// @Description  删除会话并吊销当前Token
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/users/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.logoutUseCase.Execute(c.Request.Context(), h.auth.Token(c)); err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.Success(c, nil)
}

func toLoginResponse(r *appuser.LoginResponse) *dto.LoginResponse {
	return &dto.LoginResponse{
		User:        dto.UserInfo{ID: r.User.ID, Username: r.User.Username},
		AccessToken: r.AccessToken,
		ExpiresAt:   r.ExpiresAt,
		ExpiresIn:   r.ExpiresIn,
	}
}
