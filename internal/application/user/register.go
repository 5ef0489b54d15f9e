package user

import (
	"context"

	"github.com/xiebiao/ebookstore/internal/domain/user"
)

// RegisterUseCase 用户注册用例
// 设计说明：
// 1. Application层负责用例编排，协调领域服务
// 2. 注册只创建账号，姓名在UpdateProfile时填写（signed_up=true）
type RegisterUseCase struct {
	userService user.Service
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service) *RegisterUseCase {
	return &RegisterUseCase{
		userService: userService,
	}
}

// Execute 执行注册
// 返回Profile（应用层DTO，不是领域实体）
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*Profile, error) {
	u, err := uc.userService.Register(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	profile := ProfileOf(u)
	return &profile, nil
}

// =========================================
// 应用层DTO（数据传输对象）
// =========================================

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string
	Password string
}

// Profile 用户资料
// 说明：不返回密码字段；作者注册、登录、资料接口共用
type Profile struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Role     string   `json:"role"`
	Avatar   string   `json:"avatar,omitempty"`
	SignedUp bool     `json:"signed_up"`
	AuthorID string   `json:"author_id,omitempty"`
	Books    []string `json:"books"`
}

// ProfileOf 领域实体 → Profile
func ProfileOf(u *user.User) Profile {
	p := Profile{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     string(u.Role),
		SignedUp: u.SignedUp,
		AuthorID: u.AuthorID,
		Books:    u.Books,
	}
	if u.Avatar != nil {
		p.Avatar = u.Avatar.URL
	}
	if p.Books == nil {
		p.Books = []string{}
	}
	return p
}
