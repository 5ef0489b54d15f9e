// Package cart 购物车用例
package cart

import (
	"context"
	"errors"

	"github.com/xiebiao/ebookstore/internal/domain/book"
	"github.com/xiebiao/ebookstore/internal/domain/cart"
	"github.com/xiebiao/ebookstore/pkg/objectid"
)

// UseCase 购物车查询、更新、清空
type UseCase struct {
	carts cart.Repository
	books book.Repository
}

// NewUseCase 创建购物车用例
func NewUseCase(carts cart.Repository, books book.Repository) *UseCase {
	return &UseCase{carts: carts, books: books}
}

// Line 购物车条目及其商品
type Line struct {
	Quantity int
	Product  *book.Book
}

// View 购物车视图
type View struct {
	ID    string
	Lines []Line
}

// Get 查询当前用户的购物车
// 商品通过FindByIDs批量加载,已下架删除的商品被跳过
func (uc *UseCase) Get(ctx context.Context, userID string) (*View, error) {
	c, err := uc.carts.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	products, err := uc.books.FindByIDs(ctx, c.ProductIDs())
	if err != nil {
		return nil, err
	}
	index := book.IndexByID(products)

	view := &View{ID: c.ID, Lines: make([]Line, 0, len(c.Items))}
	for _, it := range c.Items {
		if p, ok := index[it.ProductID]; ok {
			view.Lines = append(view.Lines, Line{Quantity: it.Quantity, Product: p})
		}
	}
	return view, nil
}

// Update 合并客户端提交的条目,购物车不存在时创建
// 返回购物车ID
func (uc *UseCase) Update(ctx context.Context, userID string, items []cart.Item) (string, error) {
	for _, it := range items {
		if !objectid.IsValid(it.ProductID) {
			return "", cart.ErrInvalidProductID
		}
	}

	c, err := uc.carts.FindByUserID(ctx, userID)
	switch {
	case errors.Is(err, cart.ErrCartNotFound):
		c = cart.NewCart(userID, items)
	case err != nil:
		return "", err
	default:
		c.Merge(items)
	}

	if err := uc.carts.Save(ctx, c); err != nil {
		return "", err
	}
	return c.ID, nil
}

// Clear 清空购物车
func (uc *UseCase) Clear(ctx context.Context, userID string) error {
	return uc.carts.Clear(ctx, userID)
}
