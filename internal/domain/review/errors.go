package review

import (
	apperrors "github.com/xiebiao/ebookstore/pkg/errors"
)

var (
	// ErrReviewNotFound 评论不存在
	ErrReviewNotFound = apperrors.New(apperrors.ErrCodeReviewNotFound, "Review not found")

	// ErrNoReviews 写入评论后聚合结果为空
	// 正常情况下不会出现(刚写入的评论一定能被聚合到),出现时说明数据被并发删除
	ErrNoReviews = apperrors.New(apperrors.ErrCodeDatabaseError, "No reviews found to compute the average rating")
)
