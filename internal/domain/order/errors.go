package order

import (
	apperrors "github.com/xiebiao/ebookstore/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = apperrors.New(apperrors.ErrCodeOrderNotFound, "Order not found!")

	// ErrInvalidSessionID 支付会话ID缺失或不是字符串
	ErrInvalidSessionID = apperrors.New(apperrors.ErrCodeBusinessError, "Invalid sessionId")

	// ErrOrderUnresolvable 支付会话没有客户,或客户metadata里没有合法的订单ID
	ErrOrderUnresolvable = apperrors.New(apperrors.ErrCodeInternal, "Something went wrong order not found!")
)
