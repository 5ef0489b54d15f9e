package dto

import (
	"time"

	"github.com/xiebiao/ebookstore/internal/domain/book"
)

// PublishBookRequest HTTP上架请求
// validator tag说明:
// - required: 必填字段
// - oneof: 状态只能是published或unpublished,为空时默认published
// - cover是上传地址接口返回的key
type PublishBookRequest struct {
	Title       string       `json:"title" binding:"required,max=200" example:"The Go Way"`
	Genre       string       `json:"genre" binding:"required,max=50" example:"tech"`
	Description string       `json:"description" binding:"max=5000" example:"Practical Go"`
	Price       PriceRequest `json:"price" binding:"required"`
	Cover       string       `json:"cover" binding:"omitempty,max=300" example:"covers/6560f1c2a9b3e4d5f6a7b8c9/1f0c.png"`
	Status      string       `json:"status" binding:"omitempty,oneof=published unpublished" example:"published"`
}

// BookResponse HTTP图书响应
type BookResponse struct {
	ID          string        `json:"id" example:"6560f1c2a9b3e4d5f6a7b8c9"`
	AuthorID    string        `json:"author_id"`
	Title       string        `json:"title" example:"The Go Way"`
	Slug        string        `json:"slug" example:"the-go-way-6560f1c2a9b3e4d5f6a7b8c9"`
	Genre       string        `json:"genre" example:"tech"`
	Description string        `json:"description"`
	Price       PriceResponse `json:"price"`
	Cover       string        `json:"cover,omitempty"`
	Status      string        `json:"status" example:"published"`
	Rating      string        `json:"rating,omitempty" example:"4.0"`
	CreatedAt   string        `json:"created_at" example:"2024-01-15 10:30:00"`
}

// NewBookResponse 领域实体 → HTTP响应
func NewBookResponse(b *book.Book) BookResponse {
	return BookResponse{
		ID:          b.ID,
		AuthorID:    b.AuthorID,
		Title:       b.Title,
		Slug:        b.Slug,
		Genre:       b.Genre,
		Description: b.Description,
		Price:       priceOf(b.Price),
		Cover:       b.CoverURL(),
		Status:      string(b.Status),
		Rating:      FormatRating(b.AverageRating),
		CreatedAt:   b.CreatedAt.Format(time.DateTime),
	}
}
