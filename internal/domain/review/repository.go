package review

import (
	"context"
)

// Repository 评论仓储接口
type Repository interface {
	// Upsert 按(book,user)写入content、rating、updated_at
	// 不存在时插入并设置created_at
	Upsert(ctx context.Context, review *Review) error

	// AverageRating 聚合一本书的全部评论($match + $group/$avg)
	// 没有评论时Count为0
	AverageRating(ctx context.Context, bookID string) (Summary, error)

	// FindByBookAndUser 不存在时返回ErrReviewNotFound
	FindByBookAndUser(ctx context.Context, bookID, userID string) (*Review, error)

	// ListByBook 一本书的全部评论,按创建时间倒序
	ListByBook(ctx context.Context, bookID string) ([]*Review, error)
}

// RatingWriter 写回图书平均评分(由图书仓储实现)
type RatingWriter interface {
	UpdateAverageRating(ctx context.Context, bookID string, average float64) error
}
