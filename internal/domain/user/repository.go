package user

import (
	"context"
)

// Repository 用户仓储接口
// DDD设计说明：
// 1. 接口定义在domain层（依赖倒置原则）
// 2. 具体实现在infrastructure/persistence/mongo层
// 3. 便于单元测试（用内存实现替换）
type Repository interface {
	// Create 创建用户
	// 如果邮箱已存在，返回errors.ErrEmailDuplicate
	Create(ctx context.Context, user *User) error

	// FindByID 根据ID查找用户
	// 如果不存在，返回errors.ErrUserNotFound
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByIDs 批量查找用户（用于评论列表关联作者信息）
	// 不存在的ID被忽略，返回顺序不保证
	FindByIDs(ctx context.Context, ids []string) ([]*User, error)

	// FindByEmail 根据邮箱查找用户
	// 如果不存在，返回errors.ErrUserNotFound
	FindByEmail(ctx context.Context, email string) (*User, error)

	// UpdateProfile 更新姓名、注册状态和头像
	UpdateProfile(ctx context.Context, user *User) error

	// PromoteToAuthor 将用户升级为作者（role=author, author_id=authorID）
	// 返回更新后的用户
	PromoteToAuthor(ctx context.Context, userID, authorID string) (*User, error)

	// HasPurchased 用户是否购买过指定图书
	HasPurchased(ctx context.Context, userID, bookID string) (bool, error)
}
