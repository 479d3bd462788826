package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/shoestock/internal/application/user"
	"github.com/xiebiao/shoestock/pkg/response"
)

const (
	ctxUserID   = "user_id"
	ctxUsername = "username"
	ctxToken    = "access_token"
)

// AuthMiddleware 登录校验中间件
// Token来源：HttpOnly Cookie（页面）或 Authorization: Bearer（JSON接口）
type AuthMiddleware struct {
	authorize  *appuser.AuthorizeUseCase
	cookieName string
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(authorize *appuser.AuthorizeUseCase, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		authorize:  authorize,
		cookieName: cookieName,
	}
}

// RequireLogin 页面路由：未登录重定向到/login
func (m *AuthMiddleware) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.authenticate(c) {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAuth JSON接口：未登录返回401
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.Token(c)
		info, err := m.authorize.Execute(c.Request.Context(), token)
		if err != nil {
			response.Error(c, nil, err)
			c.Abort()
			return
		}
		set(c, info, token)
		c.Next()
	}
}

// Token 从请求中提取Token，Authorization头优先
func (m *AuthMiddleware) Token(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	token, err := c.Cookie(m.cookieName)
	if err != nil {
		return ""
	}
	return token
}

func (m *AuthMiddleware) authenticate(c *gin.Context) bool {
	token := m.Token(c)
	info, err := m.authorize.Execute(c.Request.Context(), token)
	if err != nil {
		return false
	}
	set(c, info, token)
	return true
}

func set(c *gin.Context, info *appuser.UserInfo, token string) {
	c.Set(ctxUserID, info.ID)
	c.Set(ctxUsername, info.Username)
	c.Set(ctxToken, token)
}

// GetUserID 当前登录用户ID，未登录返回0
func GetUserID(c *gin.Context) uint {
	if v, ok := c.Get(ctxUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// GetUsername 当前登录用户名
func GetUsername(c *gin.Context) string {
	return c.GetString(ctxUsername)
}
