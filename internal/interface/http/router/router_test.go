package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appshoe "github.com/xiebiao/shoestock/internal/application/shoe"
	appuser "github.com/xiebiao/shoestock/internal/application/user"
	"github.com/xiebiao/shoestock/internal/domain/user"
	"github.com/xiebiao/shoestock/internal/infrastructure/config"
	"github.com/xiebiao/shoestock/internal/infrastructure/persistence/file"
	"github.com/xiebiao/shoestock/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/shoestock/internal/infrastructure/persistence/relational"
	"github.com/xiebiao/shoestock/internal/interface/http/handler"
	"github.com/xiebiao/shoestock/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/shoestock/pkg/errors"
	"github.com/xiebiao/shoestock/pkg/jwt"
	"github.com/xiebiao/shoestock/pkg/metrics"
	"github.com/xiebiao/shoestock/pkg/response"
)

const cookieName = "shoestock_session"

// newTestServer 文件后端（内存文件系统）+ 内存SQLite用户表 + miniredis会话
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	metrics.InitMetrics()
	log := zap.NewNop()

	cfg := &config.Config{
		Server:  config.ServerConfig{Mode: gin.TestMode},
		Storage: config.StorageConfig{Backend: config.BackendFile, FilePath: "inventory.txt"},
		JWT:     config.JWTConfig{Secret: "test-secret", AccessTokenExpire: time.Hour, CookieName: cookieName},
	}

	db, err := relational.Open(config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		DSNOverride:  "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
	}, false)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := file.NewRepository(afero.NewMemMapFs(), cfg.Storage.FilePath, log)
	uc := handler.InventoryUseCases{
		List:    appshoe.NewListShoesUseCase(repo, log),
		Add:     appshoe.NewAddShoeUseCase(repo, log),
		Lowest:  appshoe.NewLowestStockUseCase(repo, log),
		Restock: appshoe.NewRestockLowestUseCase(repo, log),
		Search:  appshoe.NewSearchShoeUseCase(repo, log),
		Value:   appshoe.NewValuePerItemUseCase(repo, log),
		Highest: appshoe.NewHighestQuantityUseCase(repo, log),
	}

	store := redis.NewSessionStore(client)
	manager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire)
	userService := user.NewService(relational.NewUserRepository(db))
	login := appuser.NewLoginUseCase(userService, manager, store, log)
	auth := middleware.NewAuthMiddleware(appuser.NewAuthorizeUseCase(manager, store), cookieName)

	r, err := New(cfg, log,
		handler.NewWebHandler(uc, log),
		handler.NewUserHandler(appuser.NewRegisterUseCase(userService, login), login, appuser.NewLogoutUseCase(manager, store), auth, cfg, log),
		handler.NewShoeHandler(uc, log),
		auth,
	)
	require.NoError(t, err)
	return r
}

// browser 带Cookie的表单客户端
type browser struct {
	t      *testing.T
	r      *gin.Engine
	cookie *http.Cookie
}

func (b *browser) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}

	w := httptest.NewRecorder()
	b.r.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.Name == cookieName {
			if c.MaxAge < 0 {
				b.cookie = nil
			} else {
				b.cookie = c
			}
		}
	}
	return w
}

func (b *browser) register(username, password string) {
	w := b.do(http.MethodPost, "/register", url.Values{"username": {username}, "password": {password}})
	require.Equal(b.t, http.StatusSeeOther, w.Code, w.Body.String())
	require.NotNil(b.t, b.cookie)
}

// apiCall JSON接口请求
func apiCall(t *testing.T, r *gin.Engine, method, path, token, body string) (int, response.Response) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func TestPing(t *testing.T) {
	r := newTestServer(t)
	code, resp := apiCall(t, r, http.MethodGet, "/ping", "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, resp.Code)
}

func TestPages_RequireLogin(t *testing.T) {
	b := &browser{t: t, r: newTestServer(t)}

	for _, path := range []string{"/view_all", "/add_shoe", "/re_stock", "/search_shoe", "/value_per_item", "/highest_qty"} {
		w := b.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/login", w.Header().Get("Location"), path)
	}

	w := b.do(http.MethodGet, "/login", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPages_InventoryFlow(t *testing.T) {
	b := &browser{t: t, r: newTestServer(t)}
	b.register("alice", "secret1")

	// 空库存
	w := b.do(http.MethodGet, "/view_all", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No shoes in inventory!")

	w = b.do(http.MethodGet, "/highest_qty", nil)
	assert.Contains(t, w.Body.String(), "No shoes in inventory!")

	// 校验失败重新渲染表单（200），并回填输入
	w = b.do(http.MethodPost, "/add_shoe", url.Values{
		"country": {"US"}, "code": {"A"}, "product": {"Air Max"}, "cost": {"abc"}, "quantity": {"5"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid cost! Please enter a valid number.")
	assert.Contains(t, w.Body.String(), `value="Air Max"`)

	// 成功后303到列表
	for _, f := range []url.Values{
		{"country": {"US"}, "code": {"A"}, "product": {"Air Max"}, "cost": {"120"}, "quantity": {"5"}},
		{"country": {"FR"}, "code": {"B"}, "product": {"Stan Smith"}, "cost": {"89.99"}, "quantity": {"2"}},
	} {
		w = b.do(http.MethodPost, "/add_shoe", f)
		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/view_all", w.Header().Get("Location"))
	}

	w = b.do(http.MethodGet, "/view_all", nil)
	assert.Contains(t, w.Body.String(), "Stan Smith")
	assert.Contains(t, w.Body.String(), "89.99")

	// 补货：预览最少的B，负数被拒绝
	w = b.do(http.MethodGet, "/re_stock", nil)
	assert.Contains(t, w.Body.String(), "Stan Smith")

	w = b.do(http.MethodPost, "/re_stock", url.Values{"quantity": {"-1"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Quantity cannot be negative!")

	w = b.do(http.MethodPost, "/re_stock", url.Values{"quantity": {"10"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = b.do(http.MethodGet, "/highest_qty", nil)
	assert.Contains(t, w.Body.String(), "Stan Smith")

	// 搜索
	w = b.do(http.MethodPost, "/search_shoe", url.Values{"code": {"Z"}})
	assert.Contains(t, w.Body.String(), "Shoe not found!")
	w = b.do(http.MethodPost, "/search_shoe", url.Values{"code": {" "}})
	assert.Contains(t, w.Body.String(), "Code cannot be empty!")
	w = b.do(http.MethodPost, "/search_shoe", url.Values{"code": {"A"}})
	assert.Contains(t, w.Body.String(), "Air Max")

	// 价值：600 + 89.99*12
	w = b.do(http.MethodGet, "/value_per_item", nil)
	assert.Contains(t, w.Body.String(), "600.00")
	assert.Contains(t, w.Body.String(), "1079.88")
	assert.Contains(t, w.Body.String(), "1679.88")
}

func TestPages_AuthErrors(t *testing.T) {
	r := newTestServer(t)
	b := &browser{t: t, r: r}
	b.register("alice", "secret1")

	w := b.do(http.MethodGet, "/logout", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Nil(t, b.cookie)

	w = b.do(http.MethodPost, "/register", url.Values{"username": {"alice"}, "password": {"another"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Username already exists!")

	wrong := b.do(http.MethodPost, "/login", url.Values{"username": {"alice"}, "password": {"wrong!!"}})
	unknown := b.do(http.MethodPost, "/login", url.Values{"username": {"nobody"}, "password": {"secret1"}})
	assert.Equal(t, http.StatusOK, wrong.Code)
	assert.Contains(t, wrong.Body.String(), "Invalid username or password!")
	assert.Contains(t, unknown.Body.String(), "Invalid username or password!")
	assert.Nil(t, b.cookie)

	w = b.do(http.MethodPost, "/login", url.Values{"username": {"alice"}, "password": {"secret1"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.NotNil(t, b.cookie)
}

func TestPages_LogoutRevokesCookieToken(t *testing.T) {
	r := newTestServer(t)
	b := &browser{t: t, r: r}
	b.register("alice", "secret1")
	stolen := b.cookie

	b.do(http.MethodGet, "/logout", nil)

	b.cookie = stolen
	w := b.do(http.MethodGet, "/view_all", nil)
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestAPI_Flow(t *testing.T) {
	r := newTestServer(t)

	code, resp := apiCall(t, r, http.MethodGet, "/api/v1/shoes", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, apperrors.ErrCodeUnauthorized, resp.Code)

	code, resp = apiCall(t, r, http.MethodPost, "/api/v1/users/register", "", `{"username":"bob","password":"secret1"}`)
	require.Equal(t, http.StatusOK, code)
	token := resp.Data.(map[string]interface{})["access_token"].(string)

	// 空库存：列表返回空数组，报表返回404
	code, resp = apiCall(t, r, http.MethodGet, "/api/v1/shoes", token, "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(0), resp.Data.(map[string]interface{})["total"])

	code, resp = apiCall(t, r, http.MethodGet, "/api/v1/shoes/lowest", token, "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, apperrors.ErrCodeEmptyInventory, resp.Code)

	// 新增
	code, _ = apiCall(t, r, http.MethodPost, "/api/v1/shoes", token,
		`{"country":"US","code":"A","product":"Air","cost":10.5,"quantity":4}`)
	assert.Equal(t, http.StatusCreated, code)
	code, _ = apiCall(t, r, http.MethodPost, "/api/v1/shoes", token,
		`{"country":"FR","code":"B","product":"Stan","cost":2,"quantity":0}`)
	assert.Equal(t, http.StatusCreated, code)

	code, resp = apiCall(t, r, http.MethodPost, "/api/v1/shoes", token,
		`{"country":"FR","code":"C","product":"Neg","cost":-1,"quantity":1}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Cost and quantity cannot be negative!", resp.Message)

	code, resp = apiCall(t, r, http.MethodPost, "/api/v1/shoes", token, `{"country":"FR"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, apperrors.ErrCodeBindError, resp.Code)

	// 查询
	code, resp = apiCall(t, r, http.MethodGet, "/api/v1/shoes/A", token, "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(42), resp.Data.(map[string]interface{})["value"])

	code, resp = apiCall(t, r, http.MethodGet, "/api/v1/shoes/zzz", token, "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, apperrors.ErrCodeShoeNotFound, resp.Code)

	code, resp = apiCall(t, r, http.MethodGet, "/api/v1/shoes/lowest", token, "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "B", resp.Data.(map[string]interface{})["code"])

	// 补货
	code, resp = apiCall(t, r, http.MethodPost, "/api/v1/shoes/restock", token, `{"quantity":7}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(7), resp.Data.(map[string]interface{})["quantity"])

	code, _ = apiCall(t, r, http.MethodPost, "/api/v1/shoes/restock", token, `{"quantity":-2}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, resp = apiCall(t, r, http.MethodGet, "/api/v1/shoes/highest", token, "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "B", resp.Data.(map[string]interface{})["code"])

	code, resp = apiCall(t, r, http.MethodGet, "/api/v1/reports/value", token, "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(56), resp.Data.(map[string]interface{})["total"])

	// 登出后Token失效
	code, _ = apiCall(t, r, http.MethodPost, "/api/v1/users/logout", token, "")
	assert.Equal(t, http.StatusOK, code)
	code, _ = apiCall(t, r, http.MethodGet, "/api/v1/shoes", token, "")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAPI_Login(t *testing.T) {
	r := newTestServer(t)
	_, _ = apiCall(t, r, http.MethodPost, "/api/v1/users/register", "", `{"username":"bob","password":"secret1"}`)

	code, resp := apiCall(t, r, http.MethodPost, "/api/v1/users/login", "", `{"username":"bob","password":"nope!!"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, apperrors.ErrCodeInvalidCredentials, resp.Code)

	code, resp = apiCall(t, r, http.MethodPost, "/api/v1/users/register", "", `{"username":"bob","password":"secret1"}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "Username already exists!", resp.Message)

	code, _ = apiCall(t, r, http.MethodPost, "/api/v1/users/login", "", `{"username":"bob","password":"secret1"}`)
	assert.Equal(t, http.StatusOK, code)
}
