//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 用户模块集成测试
// 集成测试使用真实的MongoDB和Redis，验证 Handler → UseCase → Service → Repository 的完整链路

// TestUserRegister 注册
func TestUserRegister(t *testing.T) {
	t.Run("正常注册", func(t *testing.T) {
		resp := PostJSON(t, "/users/register", map[string]string{
			"email":    GenerateTestEmail("normal_user"),
			"password": Password,
		}, "")

		require.Equal(t, http.StatusCreated, resp.Status, resp.Message)
		assert.Equal(t, 0, resp.Code)

		profile := Decode[ProfileData](t, resp)
		assert.NotEmpty(t, profile.ID)
		assert.False(t, profile.SignedUp, "填写姓名前不算完成注册")
		assert.Equal(t, "user", profile.Role)
	})

	t.Run("重复邮箱", func(t *testing.T) {
		email := GenerateTestEmail("duplicate")
		req := map[string]string{"email": email, "password": Password}

		first := PostJSON(t, "/users/register", req, "")
		require.Equal(t, http.StatusCreated, first.Status)

		second := PostJSON(t, "/users/register", req, "")
		assert.Equal(t, http.StatusConflict, second.Status)
		assert.Equal(t, 40003, second.Code)
	})

	t.Run("密码过短", func(t *testing.T) {
		resp := PostJSON(t, "/users/register", map[string]string{
			"email":    GenerateTestEmail("short"),
			"password": "123",
		}, "")
		assert.Equal(t, http.StatusBadRequest, resp.Status)
	})

	t.Run("邮箱格式错误", func(t *testing.T) {
		resp := PostJSON(t, "/users/register", map[string]string{
			"email":    "not-an-email",
			"password": Password,
		}, "")
		assert.Equal(t, http.StatusBadRequest, resp.Status)
	})
}

// TestUserLogin 登录、刷新、退出
func TestUserLogin(t *testing.T) {
	email := GenerateTestEmail("login")
	resp := PostJSON(t, "/users/register", map[string]string{"email": email, "password": Password}, "")
	require.Equal(t, http.StatusCreated, resp.Status)

	t.Run("密码错误", func(t *testing.T) {
		resp := PostJSON(t, "/users/login", map[string]string{"email": email, "password": "Wrong1234"}, "")
		assert.Equal(t, http.StatusUnauthorized, resp.Status)
	})

	resp = PostJSON(t, "/users/login", map[string]string{"email": email, "password": Password}, "")
	require.Equal(t, http.StatusOK, resp.Status, resp.Message)
	login := Decode[LoginData](t, resp)
	require.NotEmpty(t, login.AccessToken)
	require.NotEmpty(t, login.RefreshToken)

	t.Run("刷新Token", func(t *testing.T) {
		resp := PostJSON(t, "/users/refresh", map[string]string{"refresh_token": login.RefreshToken}, "")
		require.Equal(t, http.StatusOK, resp.Status, resp.Message)
		assert.NotEmpty(t, Decode[LoginData](t, resp).AccessToken)
	})

	t.Run("退出后Token失效", func(t *testing.T) {
		resp := PostJSON(t, "/users/logout", nil, login.AccessToken)
		require.Equal(t, http.StatusOK, resp.Status)

		resp = GetJSON(t, "/profile", login.AccessToken)
		assert.Equal(t, http.StatusUnauthorized, resp.Status)

		resp = PostJSON(t, "/users/refresh", map[string]string{"refresh_token": login.RefreshToken}, "")
		assert.Equal(t, http.StatusUnauthorized, resp.Status)
	})
}

// TestProfile 完善资料
func TestProfile(t *testing.T) {
	profile, token := RegisterTestUser(t, "profile")
	assert.True(t, profile.SignedUp)
	assert.Equal(t, "profile", profile.Name)

	t.Run("未登录", func(t *testing.T) {
		resp := GetJSON(t, "/profile", "")
		assert.Equal(t, http.StatusUnauthorized, resp.Status)
	})

	t.Run("头像不属于当前用户", func(t *testing.T) {
		resp := Do(t, http.MethodPut, "/profile", map[string]string{
			"name":   "profile",
			"avatar": "avatars/000000000000000000000000/x.png",
		}, token)
		assert.Equal(t, http.StatusForbidden, resp.Status)
	})
}
