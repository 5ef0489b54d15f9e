package history

import (
	apperrors "github.com/xiebiao/ebookstore/pkg/errors"
)

var (
	// ErrHistoryNotFound 阅读记录不存在
	ErrHistoryNotFound = apperrors.New(apperrors.ErrCodeHistoryNotFound, "Invalid book id")

	// ErrInvalidBookID 图书ID格式错误
	ErrInvalidBookID = apperrors.New(apperrors.ErrCodeInvalidID, "Invalid book id!")
)
