package author

import (
	"context"
)

// Repository 作者仓储接口
type Repository interface {
	// NextID 生成新的作者ID
	NextID() string

	// Create 创建作者，slug重复时返回ErrCodeDuplicateEntry
	Create(ctx context.Context, author *Author) error

	// FindByID 不存在时返回ErrAuthorNotFound
	FindByID(ctx context.Context, id string) (*Author, error)

	// Update 更新姓名、简介、社交链接
	Update(ctx context.Context, author *Author) error

	// Delete 删除作者（Saga补偿使用，不存在时不报错）
	Delete(ctx context.Context, id string) error

	// AddBook 把图书ID追加到作者的books列表（$addToSet）
	AddBook(ctx context.Context, authorID, bookID string) error
}
