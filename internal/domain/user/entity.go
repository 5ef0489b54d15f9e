package user

import (
	"slices"
	"time"

	"github.com/xiebiao/ebookstore/internal/domain/media"
)

// Role 用户角色
type Role string

const (
	RoleUser   Role = "user"
	RoleAuthor Role = "author"
)

// User 用户实体（聚合根）
// DDD设计说明：
// 1. 密码是bcrypt哈希值，不对外暴露
// 2. SignedUp表示用户已完成资料填写（UpdateProfile设置姓名后为true）
// 3. Books是已购图书ID，由支付流程写入，本服务只读
type User struct {
	ID        string
	Email     string
	Password  string // bcrypt哈希值
	Name      string
	Role      Role
	SignedUp  bool
	AuthorID  string // 注册为作者后关联的作者ID
	Avatar    *media.Asset
	Books     []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建新用户（工厂方法）
// hashedPassword必须是bcrypt加密后的密码
func NewUser(email, hashedPassword string) *User {
	now := time.Now()
	return &User{
		Email:     email,
		Password:  hashedPassword,
		Role:      RoleUser,
		Books:     []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CompleteProfile 填写姓名并完成注册（领域行为）
func (u *User) CompleteProfile(name string) {
	u.Name = name
	u.SignedUp = true
	u.UpdatedAt = time.Now()
}

// ChangeAvatar 更换头像，返回被替换的旧头像（可能为nil）
func (u *User) ChangeAvatar(avatar *media.Asset) *media.Asset {
	old := u.Avatar
	u.Avatar = avatar
	u.UpdatedAt = time.Now()
	return old
}

// IsAuthor 是否已注册为作者
func (u *User) IsAuthor() bool {
	return u.Role == RoleAuthor && u.AuthorID != ""
}

// HasPurchased 是否已购买指定图书
func (u *User) HasPurchased(bookID string) bool {
	return slices.Contains(u.Books, bookID)
}
