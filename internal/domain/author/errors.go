package author

import (
	apperrors "github.com/xiebiao/ebookstore/pkg/errors"
)

var (
	// ErrAuthorNotFound 作者不存在
	ErrAuthorNotFound = apperrors.New(apperrors.ErrCodeAuthorNotFound, "Author is not found!")

	// ErrNotSignedUp 用户未完成注册（沿用产品定义返回404）
	ErrNotSignedUp = apperrors.New(apperrors.ErrCodeNotSignedUp, "User has to be logged in before registering as author")

	// ErrAlreadyAuthor 已经注册为作者
	ErrAlreadyAuthor = apperrors.New(apperrors.ErrCodeAlreadyAuthor, "User is already registered as author")

	// ErrNotAuthor 当前用户没有作者资料
	ErrNotAuthor = apperrors.New(apperrors.ErrCodeNotAuthor, "Unauthorized request")

	// ErrInvalidAuthorID 作者ID格式错误
	ErrInvalidAuthorID = apperrors.New(apperrors.ErrCodeInvalidID, "Invalid author id!")
)
