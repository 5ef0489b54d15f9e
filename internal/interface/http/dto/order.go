package dto

import (
	"time"

	apporder "github.com/xiebiao/ebookstore/internal/application/order"
)

// OrderItemResponse 订单明细
// 图书已删除时title、slug、cover为空
type OrderItemResponse struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	Cover      string `json:"cover,omitempty"`
	Qty        int    `json:"qty"`
	Price      string `json:"price" example:"10.99"`
	TotalPrice string `json:"total_price" example:"21.98"`
}

// OrderResponse 订单
type OrderResponse struct {
	ID               string              `json:"id"`
	StripeCustomerID string              `json:"stripe_customer_id"`
	PaymentID        string              `json:"payment_id"`
	TotalAmount      string              `json:"total_amount" example:"21.98"`
	PaymentStatus    string              `json:"payment_status" example:"paid"`
	Date             string              `json:"date" example:"2024-03-01T10:00:00Z"`
	OrderItems       []OrderItemResponse `json:"order_items"`
}

// OrdersResponse 订单列表
type OrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
}

// OrderStatusResponse 是否已购买
type OrderStatusResponse struct {
	Status bool `json:"status"`
}

// OrderSuccessRequest 支付成功回跳
type OrderSuccessRequest struct {
	SessionID string `json:"session_id" example:"cs_test_a1b2c3"`
}

// OrderSuccessResponse 支付成功页
type OrderSuccessResponse struct {
	Orders      []OrderItemResponse `json:"orders"`
	TotalAmount string              `json:"total_amount" example:"21.98"`
}

func orderItemsOf(v apporder.View) []OrderItemResponse {
	items := make([]OrderItemResponse, 0, len(v.Items))
	for _, it := range v.Items {
		item := OrderItemResponse{
			ID:         it.BookID,
			Qty:        it.Qty,
			Price:      FormatPrice(it.Price),
			TotalPrice: FormatPrice(it.TotalPrice),
		}
		if it.Book != nil {
			item.Title = it.Book.Title
			item.Slug = it.Book.Slug
			item.Cover = it.Book.CoverURL()
		}
		items = append(items, item)
	}
	return items
}

// NewOrdersResponse 订单视图 → HTTP响应
func NewOrdersResponse(views []apporder.View) OrdersResponse {
	orders := make([]OrderResponse, 0, len(views))
	for _, v := range views {
		o := v.Order
		orders = append(orders, OrderResponse{
			ID:               o.ID,
			StripeCustomerID: o.StripeCustomerID,
			PaymentID:        o.PaymentID,
			TotalAmount:      FormatAmount(o.TotalAmount),
			PaymentStatus:    o.PaymentStatus,
			Date:             o.CreatedAt.UTC().Format(time.RFC3339),
			OrderItems:       orderItemsOf(v),
		})
	}
	return OrdersResponse{Orders: orders}
}

// NewOrderSuccessResponse 支付成功页
func NewOrderSuccessResponse(v *apporder.View) OrderSuccessResponse {
	return OrderSuccessResponse{
		Orders:      orderItemsOf(*v),
		TotalAmount: FormatAmount(v.Order.TotalAmount),
	}
}
