package dto

import (
	"fmt"

	"github.com/xiebiao/ebookstore/internal/domain/book"
)

// MessageResponse 只包含提示信息的响应
type MessageResponse struct {
	Message string `json:"message" example:"Review updated"`
}

// PriceResponse 价格(元),两位小数
type PriceResponse struct {
	MRP  string `json:"mrp" example:"19.99"`
	Sale string `json:"sale" example:"10.99"`
}

// PriceRequest 价格(分)
type PriceRequest struct {
	MRP  int64 `json:"mrp" binding:"required" example:"1999"`
	Sale int64 `json:"sale" binding:"required" example:"1099"`
}

// FormatPrice 格式化价格(分→元)
// 例如:1099分 → "10.99"
func FormatPrice(cents int64) string {
	return fmt.Sprintf("%.2f", float64(cents)/100.0)
}

// FormatAmount 订单金额,为0时返回"0"
func FormatAmount(cents int64) string {
	if cents == 0 {
		return "0"
	}
	return FormatPrice(cents)
}

// FormatRating 评分保留一位小数,未评分时返回空串
func FormatRating(rating *float64) string {
	if rating == nil {
		return ""
	}
	return fmt.Sprintf("%.1f", *rating)
}

func priceOf(p book.Price) PriceResponse {
	return PriceResponse{MRP: FormatPrice(p.MRP), Sale: FormatPrice(p.Sale)}
}
