package payment

import (
	"context"
)

// CheckoutSession 支付网关的结账会话
// CustomerID为空表示会话没有关联客户
type CheckoutSession struct {
	ID         string
	CustomerID string
}

// Customer 支付网关的客户,Metadata由下单时写入(包含orderId)
type Customer struct {
	ID       string
	Metadata map[string]string
}

// MetadataOrderID 客户metadata中订单ID的key
const MetadataOrderID = "orderId"

// OrderID 从metadata读取订单ID
func (c *Customer) OrderID() string {
	if c == nil || c.Metadata == nil {
		return ""
	}
	return c.Metadata[MetadataOrderID]
}

// Gateway 支付网关接口(由infrastructure/payment基于Stripe实现)
type Gateway interface {
	// CheckoutSession 查询结账会话
	CheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error)

	// Customer 查询客户
	Customer(ctx context.Context, customerID string) (*Customer, error)
}
