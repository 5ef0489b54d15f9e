package review

import (
	"context"
	"time"
)

// RoutingKeyRatingUpdated 平均评分更新事件的routing key
const RoutingKeyRatingUpdated = "review.rating_updated"

// RatingUpdated 平均评分重算完成后发布的领域事件
type RatingUpdated struct {
	BookID        string    `json:"book_id"`
	UserID        string    `json:"user_id"`
	AverageRating float64   `json:"average_rating"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// EventPublisher 领域事件发布接口(由infrastructure/messaging实现)
type EventPublisher interface {
	PublishRatingUpdated(ctx context.Context, event RatingUpdated) error
}
