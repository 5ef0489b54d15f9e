package dto

import (
	appreview "github.com/xiebiao/ebookstore/internal/application/review"
	"github.com/xiebiao/ebookstore/internal/domain/review"
)

// AddReviewRequest 添加/更新评论
// rating必填,不校验取值范围
type AddReviewRequest struct {
	BookID  string   `json:"book_id" binding:"required" example:"6560f1c2a9b3e4d5f6a7b8c9"`
	Rating  *float64 `json:"rating" binding:"required" example:"4"`
	Content string   `json:"content" binding:"max=5000" example:"Great read"`
}

// ReviewResponse 当前用户对某本书的评论
type ReviewResponse struct {
	Content string  `json:"content"`
	Rating  float64 `json:"rating"`
}

// ReviewUser 评论者
type ReviewUser struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// PublicReviewResponse 公开评论
type PublicReviewResponse struct {
	ID      string      `json:"id"`
	Content string      `json:"content"`
	Date    string      `json:"date" example:"2024-03-01"`
	Rating  float64     `json:"rating"`
	User    *ReviewUser `json:"user"`
}

// PublicReviewsResponse 公开评论列表
type PublicReviewsResponse struct {
	Reviews []PublicReviewResponse `json:"reviews"`
}

// NewReviewResponse 领域实体 → HTTP响应
func NewReviewResponse(r *review.Review) ReviewResponse {
	return ReviewResponse{Content: r.Content, Rating: r.Rating}
}

// NewPublicReviewsResponse 评论者不存在时user为null
func NewPublicReviewsResponse(list []appreview.PublicReview) PublicReviewsResponse {
	reviews := make([]PublicReviewResponse, 0, len(list))
	for _, pr := range list {
		item := PublicReviewResponse{
			ID:      pr.Review.ID,
			Content: pr.Review.Content,
			Date:    pr.Review.Date(),
			Rating:  pr.Review.Rating,
		}
		if u := pr.Author; u != nil {
			item.User = &ReviewUser{ID: u.ID, Name: u.Name}
			if u.Avatar != nil {
				item.User.Avatar = u.Avatar.URL
			}
		}
		reviews = append(reviews, item)
	}
	return PublicReviewsResponse{Reviews: reviews}
}
