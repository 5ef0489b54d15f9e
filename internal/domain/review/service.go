package review

import (
	"context"
	"time"
)

// Service 评论领域服务
type Service interface {
	// AddReview 写入评论并同步重算图书平均评分,返回新的平均分
	// 三步(upsert → 聚合 → 写回图书)之间没有事务,并发写入时平均分可能短暂滞后
	AddReview(ctx context.Context, bookID, userID string, rating float64, content string) (float64, error)

	// GetReview 当前用户对某本书的评论
	GetReview(ctx context.Context, bookID, userID string) (*Review, error)

	// ListReviews 某本书的全部评论
	ListReviews(ctx context.Context, bookID string) ([]*Review, error)
}

type service struct {
	reviews Repository
	books   RatingWriter
	now     func() time.Time
}

// NewService 创建评论服务
func NewService(reviews Repository, books RatingWriter) Service {
	return &service{reviews: reviews, books: books, now: time.Now}
}

// AddReview 评分聚合流程
// 1. 按(book,user)upsert评论
// 2. 聚合该书全部评论的平均分
// 3. 写回Book.average_rating
// 聚合结果为空时返回ErrNoReviews,不修改图书
func (s *service) AddReview(ctx context.Context, bookID, userID string, rating float64, content string) (float64, error) {
	now := s.now()
	r := &Review{
		BookID:    bookID,
		UserID:    userID,
		Content:   content,
		Rating:    rating,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.reviews.Upsert(ctx, r); err != nil {
		return 0, err
	}

	summary, err := s.reviews.AverageRating(ctx, bookID)
	if err != nil {
		return 0, err
	}
	if summary.Count == 0 {
		return 0, ErrNoReviews
	}

	if err := s.books.UpdateAverageRating(ctx, bookID, summary.Average); err != nil {
		return 0, err
	}

	return summary.Average, nil
}

// GetReview 当前用户对某本书的评论
func (s *service) GetReview(ctx context.Context, bookID, userID string) (*Review, error) {
	return s.reviews.FindByBookAndUser(ctx, bookID, userID)
}

// ListReviews 某本书的全部评论
func (s *service) ListReviews(ctx context.Context, bookID string) ([]*Review, error) {
	return s.reviews.ListByBook(ctx, bookID)
}
