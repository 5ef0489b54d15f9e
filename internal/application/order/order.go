// Package order 订单查询用例
// 订单由支付流程创建,本服务只负责查询和支付结果确认
package order

import (
	"context"

	"github.com/xiebiao/ebookstore/internal/domain/book"
	"github.com/xiebiao/ebookstore/internal/domain/order"
	"github.com/xiebiao/ebookstore/internal/domain/payment"
	"github.com/xiebiao/ebookstore/internal/domain/user"
	"github.com/xiebiao/ebookstore/pkg/objectid"
)

// UseCase 订单列表、购买状态、支付成功页
type UseCase struct {
	orders  order.Repository
	books   book.Repository
	users   user.Repository
	gateway payment.Gateway
}

// NewUseCase 创建订单用例
func NewUseCase(orders order.Repository, books book.Repository, users user.Repository, gateway payment.Gateway) *UseCase {
	return &UseCase{orders: orders, books: books, users: users, gateway: gateway}
}

// ItemView 订单明细及图书
// 图书已删除时Book为nil
type ItemView struct {
	order.Item
	Book *book.Book
}

// View 订单视图
type View struct {
	Order *order.Order
	Items []ItemView
}

// List 当前用户的订单,按创建时间倒序
func (uc *UseCase) List(ctx context.Context, userID string) ([]View, error) {
	orders, err := uc.orders.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	index, err := uc.loadBooks(ctx, order.BookIDsOf(orders))
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(orders))
	for _, o := range orders {
		views = append(views, viewOf(o, index))
	}
	return views, nil
}

// Status 用户是否已购买该图书
// bookID非法时直接返回false,不访问数据库
func (uc *UseCase) Status(ctx context.Context, userID, bookID string) (bool, error) {
	if !objectid.IsValid(bookID) {
		return false, nil
	}
	return uc.users.HasPurchased(ctx, userID, bookID)
}

// Success 支付成功后根据Stripe结账会话查出订单
// 流程: session -> customer -> metadata.orderId -> order
func (uc *UseCase) Success(ctx context.Context, userID, sessionID string) (*View, error) {
	if sessionID == "" {
		return nil, order.ErrInvalidSessionID
	}

	session, err := uc.gateway.CheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.CustomerID == "" {
		return nil, order.ErrOrderUnresolvable
	}

	customer, err := uc.gateway.Customer(ctx, session.CustomerID)
	if err != nil {
		return nil, err
	}
	orderID := customer.OrderID()
	if !objectid.IsValid(orderID) {
		return nil, order.ErrOrderUnresolvable
	}

	o, err := uc.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, order.ErrOrderNotFound
	}

	index, err := uc.loadBooks(ctx, o.BookIDs())
	if err != nil {
		return nil, err
	}
	view := viewOf(o, index)
	return &view, nil
}

func (uc *UseCase) loadBooks(ctx context.Context, ids []string) (map[string]*book.Book, error) {
	if len(ids) == 0 {
		return map[string]*book.Book{}, nil
	}
	books, err := uc.books.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return book.IndexByID(books), nil
}

func viewOf(o *order.Order, index map[string]*book.Book) View {
	items := make([]ItemView, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, ItemView{Item: it, Book: index[it.BookID]})
	}
	return View{Order: o, Items: items}
}
