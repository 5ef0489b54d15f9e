package book

import (
	apperrors "github.com/xiebiao/ebookstore/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "Book not found")

	// ErrInvalidBookID 图书ID格式错误
	ErrInvalidBookID = apperrors.New(apperrors.ErrCodeInvalidID, "Book Id is not valid")

	// ErrInvalidPrice 价格不合法
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidArg, "Price must satisfy mrp > 0 and 0 < sale <= mrp")

	// ErrInvalidStatus 状态不合法
	ErrInvalidStatus = apperrors.New(apperrors.ErrCodeInvalidArg, "Status must be published or unpublished")

	// ErrSlugDuplicate slug已存在
	ErrSlugDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "Book slug already exists")
)
