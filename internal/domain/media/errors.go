package media

import (
	apperrors "github.com/xiebiao/ebookstore/pkg/errors"
)

var (
	// ErrInvalidKind 不支持的上传类型
	ErrInvalidKind = apperrors.New(apperrors.ErrCodeInvalidArg, "Upload kind must be covers or avatars")

	// ErrInvalidContentType 只允许图片
	ErrInvalidContentType = apperrors.New(apperrors.ErrCodeInvalidArg, "Only image uploads are allowed")

	// ErrForeignKey 对象key不属于当前用户
	ErrForeignKey = apperrors.New(apperrors.ErrCodeForbidden, "Asset does not belong to the current user")
)
