//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 集成测试需要先启动服务：
//   go run ./cmd/api -c config/config.yaml
//   go test -tags integration ./test/integration/...
// SHOESTOCK_BASE_URL 可覆盖默认地址

const (
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
	// TestPassword 测试账号统一密码
	TestPassword = "Test1234"
)

// BaseURL API基础URL
var BaseURL = baseURL()

func baseURL() string {
	if v := os.Getenv("SHOESTOCK_BASE_URL"); v != "" {
		return v + "/api/v1"
	}
	return "http://localhost:8080/api/v1"
}

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`

	Status int `json:"-"` // HTTP状态码
}

// LoginData 登录/注册响应数据
type LoginData struct {
	User struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
	} `json:"user"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// ShoeData 库存记录
type ShoeData struct {
	Country  string  `json:"country"`
	Code     string  `json:"code"`
	Product  string  `json:"product"`
	Cost     float64 `json:"cost"`
	Quantity int     `json:"quantity"`
	Value    float64 `json:"value"`
}

// ListData 库存列表
type ListData struct {
	Shoes []ShoeData `json:"shoes"`
	Total int        `json:"total"`
}

// ValueData 价值报表
type ValueData struct {
	Items []struct {
		Product string  `json:"product"`
		Value   float64 `json:"value"`
	} `json:"items"`
	Total float64 `json:"total"`
}

func do(t *testing.T, method, url string, data interface{}, token string) *Response {
	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败（服务是否已启动？）")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	require.NoError(t, json.Unmarshal(raw, &result), "解析JSON响应失败: %s", string(raw))
	result.Status = resp.StatusCode
	return &result
}

// PostJSON 发送POST请求并解析JSON响应
func PostJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return do(t, http.MethodPost, url, data, token)
}

// GetJSON 发送GET请求并解析JSON响应
func GetJSON(t *testing.T, url string, token string) *Response {
	return do(t, http.MethodGet, url, nil, token)
}

// Decode 解析Data字段
func Decode(t *testing.T, resp *Response, out interface{}) {
	require.NoError(t, json.Unmarshal(resp.Data, out), "解析data失败: %s", string(resp.Data))
}

// UniqueSuffix 用纳秒时间戳避免重复运行时冲突
func UniqueSuffix() string {
	return fmt.Sprintf("%d", time.Now().UnixNano()%1e10)
}

// RegisterTestUser 注册测试用户（注册即登录），返回用户名和Token
func RegisterTestUser(t *testing.T, prefix string) (username string, token string) {
	username = prefix + "_" + UniqueSuffix()
	resp := PostJSON(t, BaseURL+"/users/register", map[string]string{
		"username": username,
		"password": TestPassword,
	}, "")
	require.Equal(t, 0, resp.Code, "注册失败: %s", resp.Message)

	var data LoginData
	Decode(t, resp, &data)
	require.NotEmpty(t, data.AccessToken)
	return username, data.AccessToken
}

// AddTestShoe 新增一条测试记录，编码唯一
func AddTestShoe(t *testing.T, token, product string, cost float64, quantity int) ShoeData {
	shoe := ShoeData{
		Country:  "Testland",
		Code:     "IT" + UniqueSuffix(),
		Product:  product,
		Cost:     cost,
		Quantity: quantity,
	}
	resp := PostJSON(t, BaseURL+"/shoes", shoe, token)
	require.Equal(t, 0, resp.Code, "新增失败: %s", resp.Message)
	require.Equal(t, http.StatusCreated, resp.Status)
	return shoe
}
