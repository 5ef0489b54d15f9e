package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/ebookstore/internal/application/apptest"
	"github.com/xiebiao/ebookstore/internal/domain/book"
	"github.com/xiebiao/ebookstore/internal/domain/order"
	"github.com/xiebiao/ebookstore/internal/domain/payment"
	"github.com/xiebiao/ebookstore/internal/domain/user"
	"github.com/xiebiao/ebookstore/pkg/objectid"
)

type env struct {
	uc      *UseCase
	users   *apptest.Users
	orders  *apptest.Orders
	gateway *apptest.Gateway
	buyer   *user.User
	book    *book.Book
	older   *order.Order
	newer   *order.Order
}

func newEnv() *env {
	b := book.NewBook(objectid.New(), objectid.New(), "Bought", "fiction", "", book.Price{MRP: 1999, Sale: 1099}, nil, book.StatusPublished)

	buyer := user.NewUser("buyer@example.com", "hash")
	buyer.ID = objectid.New()
	buyer.Books = []string{b.ID}

	older := &order.Order{
		ID: objectid.New(), UserID: buyer.ID, TotalAmount: 1099, PaymentStatus: "paid",
		Items:     []order.Item{{BookID: b.ID, Price: 1099, Qty: 1, TotalPrice: 1099}},
		CreatedAt: apptest.Date(1),
	}
	newer := &order.Order{
		ID: objectid.New(), UserID: buyer.ID, StripeCustomerID: "cus_1", PaymentStatus: "paid",
		Items:     []order.Item{{BookID: objectid.New(), Price: 500, Qty: 2, TotalPrice: 1000}},
		CreatedAt: apptest.Date(2),
	}

	users := apptest.NewUsers(buyer)
	orders := apptest.NewOrders(older, newer)
	gateway := &apptest.Gateway{
		Sessions: map[string]*payment.CheckoutSession{
			"cs_ok":          {ID: "cs_ok", CustomerID: "cus_1"},
			"cs_no_customer": {ID: "cs_no_customer"},
			"cs_no_meta":     {ID: "cs_no_meta", CustomerID: "cus_2"},
			"cs_gone":        {ID: "cs_gone", CustomerID: "cus_3"},
		},
		Customers: map[string]*payment.Customer{
			"cus_1": {ID: "cus_1", Metadata: map[string]string{payment.MetadataOrderID: older.ID}},
			"cus_2": {ID: "cus_2"},
			"cus_3": {ID: "cus_3", Metadata: map[string]string{payment.MetadataOrderID: objectid.New()}},
		},
	}

	return &env{
		uc:      NewUseCase(orders, apptest.NewBooks(b), users, gateway),
		users:   users,
		orders:  orders,
		gateway: gateway,
		buyer:   buyer,
		book:    b,
		older:   older,
		newer:   newer,
	}
}

func TestList(t *testing.T) {
	e := newEnv()

	views, err := e.uc.List(context.Background(), e.buyer.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, e.newer.ID, views[0].Order.ID)
	assert.Nil(t, views[0].Items[0].Book, "deleted book")
	assert.Equal(t, "Bought", views[1].Items[0].Book.Title)

	views, err = e.uc.List(context.Background(), objectid.New())
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestStatus(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	ok, err := e.uc.Status(ctx, e.buyer.ID, e.book.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.uc.Status(ctx, e.buyer.ID, objectid.New())
	require.NoError(t, err)
	assert.False(t, ok)

	calls := e.users.Calls
	ok, err = e.uc.Status(ctx, e.buyer.ID, "not-an-id")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, calls, e.users.Calls, "invalid id must not reach the store")
}

func TestSuccess(t *testing.T) {
	e := newEnv()

	view, err := e.uc.Success(context.Background(), e.buyer.ID, "cs_ok")
	require.NoError(t, err)
	assert.Equal(t, e.older.ID, view.Order.ID)
	require.Len(t, view.Items, 1)
	assert.Equal(t, e.book.ID, view.Items[0].Book.ID)
}

func TestSuccess_Failures(t *testing.T) {
	e := newEnv()

	tests := []struct {
		name    string
		userID  string
		session string
		want    error
	}{
		{"empty session", e.buyer.ID, "", order.ErrInvalidSessionID},
		{"unknown session", e.buyer.ID, "cs_missing", payment.ErrSessionNotFound},
		{"session without customer", e.buyer.ID, "cs_no_customer", order.ErrOrderUnresolvable},
		{"customer without order id", e.buyer.ID, "cs_no_meta", order.ErrOrderUnresolvable},
		{"order missing", e.buyer.ID, "cs_gone", order.ErrOrderNotFound},
		{"someone else's order", objectid.New(), "cs_ok", order.ErrOrderNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.uc.Success(context.Background(), tt.userID, tt.session)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSuccess_GatewayUnavailable(t *testing.T) {
	e := newEnv()
	e.gateway.Err = payment.ErrGatewayUnavailable

	_, err := e.uc.Success(context.Background(), e.buyer.ID, "cs_ok")
	assert.ErrorIs(t, err, payment.ErrGatewayUnavailable)
	assert.Zero(t, e.orders.Calls)
}
