package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := gin.New()
	r.Use(Logger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})
	r.GET("/boom", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})

	t.Run("生成请求ID", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

		id := w.Header().Get(requestIDHeader)
		assert.Len(t, id, 36)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("沿用客户端请求ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set(requestIDHeader, "req-42")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "req-42", w.Header().Get(requestIDHeader))
		last := logs.All()[logs.Len()-1]
		assert.Equal(t, zapcore.InfoLevel, last.Level)
		assert.Equal(t, "req-42", last.ContextMap()["request_id"])
		assert.Equal(t, "/ok", last.ContextMap()["path"])
	})

	t.Run("5xx记为Error", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

		require.Equal(t, http.StatusInternalServerError, w.Code)
		last := logs.All()[logs.Len()-1]
		assert.Equal(t, zapcore.ErrorLevel, last.Level)
		assert.EqualValues(t, http.StatusInternalServerError, last.ContextMap()["status"])
	})
}

func TestAuthMiddleware_Token(t *testing.T) {
	m := NewAuthMiddleware(nil, "sid")

	tests := []struct {
		name   string
		header string
		cookie string
		want   string
	}{
		{name: "Bearer头", header: "Bearer abc", want: "abc"},
		{name: "大小写不敏感", header: "bearer  abc ", want: "abc"},
		{name: "Cookie", cookie: "from-cookie", want: "from-cookie"},
		{name: "头优先于Cookie", header: "Bearer abc", cookie: "from-cookie", want: "abc"},
		{name: "非Bearer头", header: "Basic xyz", cookie: "from-cookie", want: ""},
		{name: "都没有", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "sid", Value: tt.cookie})
			}
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = req

			assert.Equal(t, tt.want, m.Token(c))
		})
	}
}

func TestGetUserID_NotLoggedIn(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Zero(t, GetUserID(c))
	assert.Empty(t, GetUsername(c))
}
