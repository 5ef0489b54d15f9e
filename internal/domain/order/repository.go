package order

import (
	"context"
)

// Repository 订单仓储接口(依赖倒置原则)
type Repository interface {
	// FindByID 根据ID查找订单,不存在时返回ErrOrderNotFound
	FindByID(ctx context.Context, id string) (*Order, error)

	// ListByUserID 查询用户的全部订单,按创建时间倒序
	ListByUserID(ctx context.Context, userID string) ([]*Order, error)
}
