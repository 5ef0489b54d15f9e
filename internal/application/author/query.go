package author

import (
	"context"
	"errors"

	"github.com/xiebiao/ebookstore/internal/domain/author"
	"github.com/xiebiao/ebookstore/internal/domain/book"
	"github.com/xiebiao/ebookstore/pkg/objectid"
)

// QueryUseCase 作者详情和作者图书
type QueryUseCase struct {
	authors author.Repository
	books   book.Repository
}

// NewQueryUseCase 创建查询用例
func NewQueryUseCase(authors author.Repository, books book.Repository) *QueryUseCase {
	return &QueryUseCase{authors: authors, books: books}
}

// Details 作者及其图书
type Details struct {
	Author *author.Author
	Books  []*book.Book // 与Author.Books顺序一致，已删除的图书被跳过
}

// GetDetails 作者详情
func (uc *QueryUseCase) GetDetails(ctx context.Context, id string) (*Details, error) {
	if !objectid.IsValid(id) {
		return nil, author.ErrInvalidAuthorID
	}

	a, err := uc.authors.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	books, err := uc.booksOf(ctx, a)
	if err != nil {
		return nil, err
	}
	return &Details{Author: a, Books: books}, nil
}

// GetBooks 作者的图书列表
// 作者不存在时返回ErrNotAuthor(403 "Unauthorized request")
func (uc *QueryUseCase) GetBooks(ctx context.Context, authorID string) ([]*book.Book, error) {
	if !objectid.IsValid(authorID) {
		return nil, author.ErrNotAuthor
	}

	a, err := uc.authors.FindByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, author.ErrAuthorNotFound) {
			return nil, author.ErrNotAuthor
		}
		return nil, err
	}
	return uc.booksOf(ctx, a)
}

func (uc *QueryUseCase) booksOf(ctx context.Context, a *author.Author) ([]*book.Book, error) {
	found, err := uc.books.FindByIDs(ctx, a.Books)
	if err != nil {
		return nil, err
	}

	index := book.IndexByID(found)
	books := make([]*book.Book, 0, len(found))
	for _, id := range a.Books {
		if b, ok := index[id]; ok {
			books = append(books, b)
		}
	}
	return books, nil
}
