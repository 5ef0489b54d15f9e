package review

import (
	"context"

	"github.com/xiebiao/ebookstore/internal/domain/book"
	"github.com/xiebiao/ebookstore/internal/domain/review"
	"github.com/xiebiao/ebookstore/internal/domain/user"
	"github.com/xiebiao/ebookstore/pkg/objectid"
)

// QueryUseCase 评论查询
type QueryUseCase struct {
	reviewService review.Service
	users         user.Repository
}

// NewQueryUseCase 创建评论查询用例
func NewQueryUseCase(reviewService review.Service, users user.Repository) *QueryUseCase {
	return &QueryUseCase{reviewService: reviewService, users: users}
}

// GetReview 当前用户对某本书的评论
func (uc *QueryUseCase) GetReview(ctx context.Context, userID, bookID string) (*review.Review, error) {
	if !objectid.IsValid(bookID) {
		return nil, book.ErrInvalidBookID
	}
	return uc.reviewService.GetReview(ctx, bookID, userID)
}

// PublicReview 公开评论列表项，Author为nil表示评论者已不存在
type PublicReview struct {
	Review *review.Review
	Author *user.User
}

// ListPublicReviews 一本书的全部评论及评论者信息
// 评论者通过一次FindByIDs批量查询，不逐条查库
func (uc *QueryUseCase) ListPublicReviews(ctx context.Context, bookID string) ([]PublicReview, error) {
	if !objectid.IsValid(bookID) {
		return nil, book.ErrInvalidBookID
	}

	reviews, err := uc.reviewService.ListReviews(ctx, bookID)
	if err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(reviews))
	seen := make(map[string]struct{}, len(reviews))
	for _, r := range reviews {
		if _, ok := seen[r.UserID]; ok {
			continue
		}
		seen[r.UserID] = struct{}{}
		userIDs = append(userIDs, r.UserID)
	}

	users, err := uc.users.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*user.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	out := make([]PublicReview, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, PublicReview{Review: r, Author: byID[r.UserID]})
	}
	return out, nil
}
