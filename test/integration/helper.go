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

// 集成测试辅助工具
// 测试打到一个已启动的服务（docker compose + go run ./cmd/api），地址可用EBOOKSTORE_BASE_URL覆盖
//
// 运行方式：
//
//	go test -tags integration -v ./test/integration/...

const (
	defaultBaseURL = "http://localhost:8080/api/v1"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
	// Password 测试账号统一密码
	Password = "Test1234"
)

// BaseURL API基础URL
var BaseURL = baseURL()

func baseURL() string {
	if v := os.Getenv("EBOOKSTORE_BASE_URL"); v != "" {
		return v
	}
	return defaultBaseURL
}

// Response 统一响应结构
type Response struct {
	Status  int             `json:"-"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// LoginData 登录响应数据
type LoginData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// ProfileData 个人信息
type ProfileData struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	SignedUp bool   `json:"signed_up"`
	AuthorID string `json:"author_id"`
}

// Decode 解析Data字段
func Decode[T any](t *testing.T, resp *Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(resp.Data, &v), "解析响应数据失败: %s", string(resp.Data))
	return v
}

// Do 发送请求并解析统一响应
func Do(t *testing.T, method, path string, data interface{}, token string) *Response {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, BaseURL+path, body)
	require.NoError(t, err, "创建HTTP请求失败")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	require.NoError(t, json.Unmarshal(raw, &result), "解析JSON响应失败: %s", string(raw))
	result.Status = resp.StatusCode
	return &result
}

// PostJSON 发送POST请求
func PostJSON(t *testing.T, path string, data interface{}, token string) *Response {
	t.Helper()
	return Do(t, http.MethodPost, path, data, token)
}

// GetJSON 发送GET请求
func GetJSON(t *testing.T, path string, token string) *Response {
	t.Helper()
	return Do(t, http.MethodGet, path, nil, token)
}

// GenerateTestEmail 生成唯一的测试邮箱
func GenerateTestEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.com", prefix, time.Now().UnixNano())
}

// RegisterTestUser 注册、登录并完善资料，返回已完成注册的用户和Token
func RegisterTestUser(t *testing.T, name string) (ProfileData, string) {
	t.Helper()
	email := GenerateTestEmail(name)

	resp := PostJSON(t, "/users/register", map[string]string{"email": email, "password": Password}, "")
	require.Equal(t, http.StatusCreated, resp.Status, "注册失败: %s", resp.Message)

	resp = PostJSON(t, "/users/login", map[string]string{"email": email, "password": Password}, "")
	require.Equal(t, http.StatusOK, resp.Status, "登录失败: %s", resp.Message)
	login := Decode[LoginData](t, resp)

	resp = Do(t, http.MethodPut, "/profile", map[string]string{"name": name}, login.AccessToken)
	require.Equal(t, http.StatusOK, resp.Status, "完善资料失败: %s", resp.Message)

	return Decode[ProfileData](t, resp), login.AccessToken
}

// RegisterTestAuthor 注册用户并成为作者
func RegisterTestAuthor(t *testing.T, name string) (ProfileData, string) {
	t.Helper()
	_, token := RegisterTestUser(t, name)

	resp := PostJSON(t, "/authors", map[string]interface{}{
		"name":  name,
		"about": "集成测试作者",
	}, token)
	require.Equal(t, http.StatusOK, resp.Status, "注册作者失败: %s", resp.Message)

	return Decode[struct {
		User ProfileData `json:"user"`
	}](t, resp).User, token
}

// PublishTestBook 上架测试图书并返回图书ID
func PublishTestBook(t *testing.T, token string, title string) string {
	t.Helper()
	resp := PostJSON(t, "/books", map[string]interface{}{
		"title":       title,
		"genre":       "Fiction",
		"description": "集成测试用图书",
		"price":       map[string]int64{"mrp": 2999, "sale": 1999},
		"status":      "published",
	}, token)
	require.Equal(t, http.StatusCreated, resp.Status, "图书上架失败: %s", resp.Message)

	return Decode[struct {
		ID string `json:"id"`
	}](t, resp).ID
}
