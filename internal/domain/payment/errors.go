package payment

import (
	apperrors "github.com/xiebiao/ebookstore/pkg/errors"
)

var (
	// ErrGatewayUnavailable 支付网关调用失败或熔断器打开
	ErrGatewayUnavailable = apperrors.New(apperrors.ErrCodePaymentError, "Payment provider unavailable")

	// ErrSessionNotFound 支付会话不存在
	ErrSessionNotFound = apperrors.New(apperrors.ErrCodeNotFound, "Checkout session not found")
)
