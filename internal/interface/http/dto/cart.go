package dto

import (
	appcart "github.com/xiebiao/ebookstore/internal/application/cart"
	"github.com/xiebiao/ebookstore/internal/domain/cart"
)

// CartItemRequest 购物车条目
// quantity<=0表示移除该商品
type CartItemRequest struct {
	Product  string `json:"product" binding:"required" example:"6560f1c2a9b3e4d5f6a7b8c9"`
	Quantity int    `json:"quantity" example:"1"`
}

// UpdateCartRequest 更新购物车
type UpdateCartRequest struct {
	Items []CartItemRequest `json:"items" binding:"required,dive"`
}

// ToItems HTTP请求 → 领域条目
func (r UpdateCartRequest) ToItems() []cart.Item {
	items := make([]cart.Item, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, cart.Item{ProductID: it.Product, Quantity: it.Quantity})
	}
	return items
}

// UpdateCartResponse 更新购物车响应
type UpdateCartResponse struct {
	Cart string `json:"cart" example:"6560f1c2a9b3e4d5f6a7b8c9"`
}

// CartProduct 购物车中的商品
type CartProduct struct {
	ID    string        `json:"id"`
	Title string        `json:"title"`
	Slug  string        `json:"slug"`
	Cover string        `json:"cover,omitempty"`
	Price PriceResponse `json:"price"`
}

// CartLine 购物车条目
type CartLine struct {
	Quantity int         `json:"quantity"`
	Product  CartProduct `json:"product"`
}

// CartBody 购物车
type CartBody struct {
	ID    string     `json:"id"`
	Items []CartLine `json:"items"`
}

// CartResponse 查询购物车响应
type CartResponse struct {
	Cart CartBody `json:"cart"`
}

// NewCartResponse 购物车视图 → HTTP响应
func NewCartResponse(v *appcart.View) CartResponse {
	lines := make([]CartLine, 0, len(v.Lines))
	for _, l := range v.Lines {
		lines = append(lines, CartLine{
			Quantity: l.Quantity,
			Product: CartProduct{
				ID:    l.Product.ID,
				Title: l.Product.Title,
				Slug:  l.Product.Slug,
				Cover: l.Product.CoverURL(),
				Price: priceOf(l.Product.Price),
			},
		})
	}
	return CartResponse{Cart: CartBody{ID: v.ID, Items: lines}}
}
