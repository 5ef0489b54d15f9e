package review

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/ebookstore/internal/domain/book"
	"github.com/xiebiao/ebookstore/internal/domain/review"
	"github.com/xiebiao/ebookstore/pkg/metrics"
	"github.com/xiebiao/ebookstore/pkg/objectid"
	"github.com/xiebiao/ebookstore/pkg/tracing"
)

const tracerName = "ebookstore/application/review"

// AddReviewUseCase 写入评论并重算平均评分
// 设计说明：
// 1. 评分聚合由领域服务完成（upsert → aggregate → 写回图书）
// 2. 应用层负责参数校验、链路追踪、指标和事件发布
// 3. 事件发布失败只记录日志，不影响请求结果
type AddReviewUseCase struct {
	reviewService review.Service
	events        review.EventPublisher
	logger        *zap.Logger
	now           func() time.Time
}

// NewAddReviewUseCase 创建评论用例
func NewAddReviewUseCase(reviewService review.Service, events review.EventPublisher, logger *zap.Logger) *AddReviewUseCase {
	return &AddReviewUseCase{
		reviewService: reviewService,
		events:        events,
		logger:        logger,
		now:           time.Now,
	}
}

// AddReviewRequest 评论请求
type AddReviewRequest struct {
	UserID  string
	BookID  string
	Rating  float64
	Content string
}

// Execute 执行评论用例，返回新的平均评分
func (uc *AddReviewUseCase) Execute(ctx context.Context, req AddReviewRequest) (float64, error) {
	if !objectid.IsValid(req.BookID) {
		return 0, book.ErrInvalidBookID
	}

	ctx, span := tracing.StartSpan(ctx, tracerName, "review.AddReview")
	defer span.End()
	span.SetAttributes(
		attribute.String("book.id", req.BookID),
		attribute.String("user.id", req.UserID),
	)

	start := uc.now()
	average, err := uc.reviewService.AddReview(ctx, req.BookID, req.UserID, req.Rating, req.Content)
	metrics.ObserveHistogram(metrics.RatingRecomputeDuration, time.Since(start).Seconds())
	if err != nil {
		metrics.IncCounterVec(metrics.ReviewsUpsertedTotal, map[string]string{"result": "failure"})
		tracing.RecordError(span, err)
		return 0, err
	}
	metrics.IncCounterVec(metrics.ReviewsUpsertedTotal, map[string]string{"result": "success"})
	span.SetAttributes(attribute.Float64("book.average_rating", average))

	event := review.RatingUpdated{
		BookID:        req.BookID,
		UserID:        req.UserID,
		AverageRating: average,
		OccurredAt:    uc.now().UTC(),
	}
	if err := uc.events.PublishRatingUpdated(ctx, event); err != nil {
		uc.logger.Warn("publish rating updated event failed",
			zap.String("book_id", req.BookID),
			zap.Error(err),
		)
	}

	return average, nil
}
