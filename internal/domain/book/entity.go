package book

import (
	"time"

	"github.com/xiebiao/ebookstore/internal/domain/media"
	"github.com/xiebiao/ebookstore/pkg/slug"
)

// Status 上架状态
type Status string

const (
	StatusPublished   Status = "published"
	StatusUnpublished Status = "unpublished"
)

// IsValid 是否为合法状态
func (s Status) IsValid() bool {
	return s == StatusPublished || s == StatusUnpublished
}

// Price 价格(单位:分),MRP是标价,Sale是售价
type Price struct {
	MRP  int64
	Sale int64
}

// Validate 业务规则:标价>0,0<售价<=标价
func (p Price) Validate() error {
	if p.MRP <= 0 || p.Sale <= 0 || p.Sale > p.MRP {
		return ErrInvalidPrice
	}
	return nil
}

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 2. AverageRating只由评分聚合流程写入,没有评论时为nil
// 3. AuthorID关联发布图书的作者
type Book struct {
	ID            string
	AuthorID      string
	Title         string
	Slug          string
	Genre         string
	Description   string
	Price         Price
	Cover         *media.Asset
	Status        Status
	AverageRating *float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewBook 创建新图书(工厂方法)
// id需要预先生成,slug由书名和id组成
func NewBook(id, authorID, title, genre, description string, price Price, cover *media.Asset, status Status) *Book {
	now := time.Now()
	return &Book{
		ID:          id,
		AuthorID:    authorID,
		Title:       title,
		Slug:        slug.Generate(title, id),
		Genre:       genre,
		Description: description,
		Price:       price,
		Cover:       cover,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// CoverURL 封面地址,没有封面时为空字符串
func (b *Book) CoverURL() string {
	if b.Cover == nil {
		return ""
	}
	return b.Cover.URL
}

// IsOwnedBy 检查图书是否由指定作者发布
func (b *Book) IsOwnedBy(authorID string) bool {
	return b.AuthorID == authorID
}
