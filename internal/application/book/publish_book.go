package book

import (
	"context"

	"github.com/xiebiao/ebookstore/internal/domain/author"
	"github.com/xiebiao/ebookstore/internal/domain/book"
	"github.com/xiebiao/ebookstore/internal/domain/media"
	"github.com/xiebiao/ebookstore/internal/domain/user"
)

// PublishBookUseCase 图书上架用例
// 设计说明:
// 1. 应用层负责用例编排,价格和状态校验由领域服务负责
// 2. 封面先通过预签名地址上传,这里只校验key属于当前用户
// 3. 图书创建后把ID追加到作者的books
type PublishBookUseCase struct {
	bookService book.Service
	users       user.Repository
	authors     author.Repository
	store       media.Store
}

// NewPublishBookUseCase 创建上架用例
func NewPublishBookUseCase(bookService book.Service, users user.Repository, authors author.Repository, store media.Store) *PublishBookUseCase {
	return &PublishBookUseCase{
		bookService: bookService,
		users:       users,
		authors:     authors,
		store:       store,
	}
}

// PublishBookRequest 上架请求
type PublishBookRequest struct {
	UserID      string // 当前登录用户(从认证中间件获取)
	Title       string
	Genre       string
	Description string
	Price       book.Price // 单位:分
	CoverKey    string     // 封面对象key,可为空
	Status      book.Status
}

// Execute 执行上架用例
func (uc *PublishBookUseCase) Execute(ctx context.Context, req PublishBookRequest) (*book.Book, error) {
	u, err := uc.users.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !u.IsAuthor() {
		return nil, author.ErrNotAuthor
	}

	var cover *media.Asset
	if req.CoverKey != "" {
		if !media.OwnedBy(req.CoverKey, media.KindCover, u.ID) {
			return nil, media.ErrForeignKey
		}
		cover = &media.Asset{ID: req.CoverKey, URL: uc.store.PublicURL(req.CoverKey)}
	}

	b, err := uc.bookService.PublishBook(ctx, u.AuthorID, req.Title, req.Genre, req.Description, req.Price, cover, req.Status)
	if err != nil {
		return nil, err
	}

	if err := uc.authors.AddBook(ctx, u.AuthorID, b.ID); err != nil {
		return nil, err
	}
	return b, nil
}
