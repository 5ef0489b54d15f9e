package cart

import (
	apperrors "github.com/xiebiao/ebookstore/pkg/errors"
)

var (
	// ErrCartNotFound 购物车不存在
	ErrCartNotFound = apperrors.New(apperrors.ErrCodeCartNotFound, "Cart not found")

	// ErrInvalidProductID 商品ID格式错误
	ErrInvalidProductID = apperrors.New(apperrors.ErrCodeInvalidID, "Invalid product id!")
)
