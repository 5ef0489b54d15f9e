// Package messaging 把领域事件发布到消息队列
package messaging

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/ebookstore/internal/domain/review"
)

// messagePublisher 由*mq.Publisher实现
type messagePublisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// EventPublisher 基于RabbitMQ的领域事件发布
type EventPublisher struct {
	publisher messagePublisher
}

var _ review.EventPublisher = (*EventPublisher)(nil)

// NewEventPublisher 创建事件发布者
func NewEventPublisher(publisher messagePublisher) *EventPublisher {
	return &EventPublisher{publisher: publisher}
}

// PublishRatingUpdated 发布review.rating_updated
func (p *EventPublisher) PublishRatingUpdated(ctx context.Context, event review.RatingUpdated) error {
	return p.publisher.Publish(ctx, review.RoutingKeyRatingUpdated, event)
}

// NoopPublisher 未配置消息队列时使用，只记录调试日志
type NoopPublisher struct {
	logger *zap.Logger
}

var _ review.EventPublisher = (*NoopPublisher)(nil)

// NewNoopPublisher 创建空实现
func NewNoopPublisher(logger *zap.Logger) *NoopPublisher {
	return &NoopPublisher{logger: logger}
}

func (p *NoopPublisher) PublishRatingUpdated(_ context.Context, event review.RatingUpdated) error {
	p.logger.Debug("event dropped, message queue disabled",
		zap.String("routing_key", review.RoutingKeyRatingUpdated),
		zap.String("book_id", event.BookID),
	)
	return nil
}
