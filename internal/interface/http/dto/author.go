package dto

import (
	appauthor "github.com/xiebiao/ebookstore/internal/application/author"
	appuser "github.com/xiebiao/ebookstore/internal/application/user"
	"github.com/xiebiao/ebookstore/internal/domain/author"
	"github.com/xiebiao/ebookstore/internal/domain/book"
)

// AuthorRequest 注册/更新作者资料
type AuthorRequest struct {
	Name        string   `json:"name" binding:"required,max=100" example:"Jane Doe"`
	About       string   `json:"about" binding:"required,max=2000" example:"Writes about Go"`
	SocialLinks []string `json:"social_links" binding:"omitempty,max=5,dive,url"`
}

// RegisterAuthorResponse 注册作者响应
type RegisterAuthorResponse struct {
	Message string          `json:"message" example:"Thanks for registering as an author."`
	User    appuser.Profile `json:"user"`
}

// AuthorResponse 作者资料
type AuthorResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	About       string   `json:"about"`
	Slug        string   `json:"slug"`
	SocialLinks []string `json:"social_links"`
}

// AuthorBook 作者详情中的图书
type AuthorBook struct {
	ID     string        `json:"id"`
	Title  string        `json:"title"`
	Slug   string        `json:"slug"`
	Genre  string        `json:"genre"`
	Price  PriceResponse `json:"price"`
	Cover  string        `json:"cover,omitempty"`
	Rating string        `json:"rating,omitempty" example:"4.0"`
}

// AuthorDetailsResponse 作者详情
type AuthorDetailsResponse struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	About       string       `json:"about"`
	SocialLinks []string     `json:"social_links"`
	Books       []AuthorBook `json:"books"`
}

// AuthorBookStatus 作者图书列表项
type AuthorBookStatus struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Slug   string `json:"slug"`
	Status string `json:"status" example:"published"`
}

// AuthorBooksResponse 作者图书列表
type AuthorBooksResponse struct {
	Books []AuthorBookStatus `json:"books"`
}

// NewAuthorResponse 领域实体 → HTTP响应
func NewAuthorResponse(a *author.Author) AuthorResponse {
	return AuthorResponse{
		ID:          a.ID,
		Name:        a.Name,
		About:       a.About,
		Slug:        a.Slug,
		SocialLinks: a.SocialLinks,
	}
}

// NewAuthorDetailsResponse 作者详情
func NewAuthorDetailsResponse(d *appauthor.Details) AuthorDetailsResponse {
	books := make([]AuthorBook, 0, len(d.Books))
	for _, b := range d.Books {
		books = append(books, AuthorBook{
			ID:     b.ID,
			Title:  b.Title,
			Slug:   b.Slug,
			Genre:  b.Genre,
			Price:  priceOf(b.Price),
			Cover:  b.CoverURL(),
			Rating: FormatRating(b.AverageRating),
		})
	}
	return AuthorDetailsResponse{
		ID:          d.Author.ID,
		Name:        d.Author.Name,
		About:       d.Author.About,
		SocialLinks: d.Author.SocialLinks,
		Books:       books,
	}
}

// NewAuthorBooksResponse 作者图书列表
func NewAuthorBooksResponse(list []*book.Book) AuthorBooksResponse {
	books := make([]AuthorBookStatus, 0, len(list))
	for _, b := range list {
		books = append(books, AuthorBookStatus{ID: b.ID, Title: b.Title, Slug: b.Slug, Status: string(b.Status)})
	}
	return AuthorBooksResponse{Books: books}
}
