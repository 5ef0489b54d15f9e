package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 关联查询(作者的图书、购物车商品、订单商品)统一走FindByIDs,由应用层拼装
type Repository interface {
	// NextID 生成新的图书ID
	NextID() string

	// Create 创建图书
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id string) (*Book, error)

	// FindByIDs 批量查找图书,不存在的ID被忽略
	FindByIDs(ctx context.Context, ids []string) ([]*Book, error)

	// UpdateAverageRating 写入平均评分
	// 只由评分聚合流程调用,图书不存在时返回ErrBookNotFound
	UpdateAverageRating(ctx context.Context, id string, average float64) error
}

// IndexByID 按ID建立索引,便于关联查询时保持原顺序
func IndexByID(books []*Book) map[string]*Book {
	m := make(map[string]*Book, len(books))
	for _, b := range books {
		m[b.ID] = b
	}
	return m
}
