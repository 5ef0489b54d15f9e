package cart

import (
	"context"
)

// Repository 购物车仓储接口
type Repository interface {
	// FindByUserID 不存在时返回ErrCartNotFound
	FindByUserID(ctx context.Context, userID string) (*Cart, error)

	// Save 按user_id整体写入条目(不存在则创建),写入后cart.ID有值
	Save(ctx context.Context, cart *Cart) error

	// Clear 清空条目,购物车不存在时不报错
	Clear(ctx context.Context, userID string) error
}
