// Package apptest 应用层测试使用的内存仓储和外部依赖替身
// 不存在时返回与Mongo仓储相同的领域错误
package apptest

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/xiebiao/ebookstore/internal/domain/author"
	"github.com/xiebiao/ebookstore/internal/domain/book"
	"github.com/xiebiao/ebookstore/internal/domain/cart"
	"github.com/xiebiao/ebookstore/internal/domain/history"
	"github.com/xiebiao/ebookstore/internal/domain/order"
	"github.com/xiebiao/ebookstore/internal/domain/review"
	"github.com/xiebiao/ebookstore/internal/domain/user"
	apperrors "github.com/xiebiao/ebookstore/pkg/errors"
	"github.com/xiebiao/ebookstore/pkg/objectid"
)

var (
	_ user.Repository    = (*Users)(nil)
	_ author.Repository  = (*Authors)(nil)
	_ book.Repository    = (*Books)(nil)
	_ cart.Repository    = (*Carts)(nil)
	_ history.Repository = (*Histories)(nil)
	_ order.Repository   = (*Orders)(nil)
	_ review.Repository  = (*Reviews)(nil)
)

// =========================================
// 用户
// =========================================

type Users struct {
	mu    sync.Mutex
	Items map[string]*user.User
	Calls int

	// PromoteErr 非nil时PromoteToAuthor返回该错误（用于Saga补偿测试）
	PromoteErr error
}

func NewUsers(users ...*user.User) *Users {
	r := &Users{Items: map[string]*user.User{}}
	for _, u := range users {
		if u.ID == "" {
			u.ID = objectid.New()
		}
		r.Items[u.ID] = u
	}
	return r
}

func (r *Users) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.Items {
		if existing.Email == u.Email {
			return apperrors.ErrEmailDuplicate
		}
	}
	u.ID = objectid.New()
	cp := *u
	r.Items[u.ID] = &cp
	return nil
}

func (r *Users) FindByID(_ context.Context, id string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls++
	u, ok := r.Items[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *Users) FindByIDs(_ context.Context, ids []string) ([]*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls++
	out := []*user.User{}
	for _, id := range ids {
		if u, ok := r.Items[id]; ok {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *Users) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.Items {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *Users) UpdateProfile(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.Items[u.ID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	stored.Name = u.Name
	stored.SignedUp = u.SignedUp
	stored.Avatar = u.Avatar
	stored.UpdatedAt = u.UpdatedAt
	return nil
}

func (r *Users) PromoteToAuthor(_ context.Context, userID, authorID string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.PromoteErr != nil {
		return nil, r.PromoteErr
	}
	u, ok := r.Items[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	u.Role = user.RoleAuthor
	u.AuthorID = authorID
	cp := *u
	return &cp, nil
}

func (r *Users) HasPurchased(_ context.Context, userID, bookID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls++
	u, ok := r.Items[userID]
	return ok && slices.Contains(u.Books, bookID), nil
}

// =========================================
// 作者
// =========================================

type Authors struct {
	mu    sync.Mutex
	Items map[string]*author.Author
}

func NewAuthors(authors ...*author.Author) *Authors {
	r := &Authors{Items: map[string]*author.Author{}}
	for _, a := range authors {
		r.Items[a.ID] = a
	}
	return r
}

func (r *Authors) NextID() string { return objectid.New() }

func (r *Authors) Create(_ context.Context, a *author.Author) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.Items[a.ID] = &cp
	return nil
}

func (r *Authors) FindByID(_ context.Context, id string) (*author.Author, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.Items[id]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *Authors) Update(_ context.Context, a *author.Author) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.Items[a.ID]
	if !ok {
		return author.ErrAuthorNotFound
	}
	stored.Name, stored.About, stored.SocialLinks = a.Name, a.About, a.SocialLinks
	return nil
}

func (r *Authors) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Items, id)
	return nil
}

func (r *Authors) AddBook(_ context.Context, authorID, bookID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.Items[authorID]
	if !ok {
		return author.ErrAuthorNotFound
	}
	if !slices.Contains(a.Books, bookID) {
		a.Books = append(a.Books, bookID)
	}
	return nil
}

// =========================================
// 图书
// =========================================

type Books struct {
	mu    sync.Mutex
	Items map[string]*book.Book
}

func NewBooks(books ...*book.Book) *Books {
	r := &Books{Items: map[string]*book.Book{}}
	for _, b := range books {
		r.Items[b.ID] = b
	}
	return r
}

func (r *Books) NextID() string { return objectid.New() }

func (r *Books) Create(_ context.Context, b *book.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Items[b.ID] = b
	return nil
}

func (r *Books) FindByID(_ context.Context, id string) (*book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.Items[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}

func (r *Books) FindByIDs(_ context.Context, ids []string) ([]*book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*book.Book{}
	for _, id := range ids {
		if b, ok := r.Items[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *Books) UpdateAverageRating(_ context.Context, id string, average float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.Items[id]
	if !ok {
		return book.ErrBookNotFound
	}
	b.AverageRating = &average
	return nil
}

// =========================================
// 购物车
// =========================================

type Carts struct {
	mu    sync.Mutex
	Items map[string]*cart.Cart // key: user id
}

func NewCarts() *Carts { return &Carts{Items: map[string]*cart.Cart{}} }

func (r *Carts) FindByUserID(_ context.Context, userID string) (*cart.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.Items[userID]
	if !ok {
		return nil, cart.ErrCartNotFound
	}
	cp := *c
	cp.Items = slices.Clone(c.Items)
	return &cp, nil
}

func (r *Carts) Save(_ context.Context, c *cart.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.Items[c.UserID]; ok {
		c.ID = existing.ID
	} else if c.ID == "" {
		c.ID = objectid.New()
	}
	cp := *c
	cp.Items = slices.Clone(c.Items)
	r.Items[c.UserID] = &cp
	return nil
}

func (r *Carts) Clear(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.Items[userID]; ok {
		c.Items = []cart.Item{}
	}
	return nil
}

// =========================================
// 阅读记录
// =========================================

type Histories struct {
	mu    sync.Mutex
	Items map[[2]string]*history.History
}

func NewHistories() *Histories { return &Histories{Items: map[[2]string]*history.History{}} }

func (r *Histories) Find(_ context.Context, readerID, bookID string) (*history.History, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.Items[[2]string{readerID, bookID}]
	if !ok {
		return nil, history.ErrHistoryNotFound
	}
	cp := *h
	cp.Highlights = slices.Clone(h.Highlights)
	return &cp, nil
}

func (r *Histories) Save(_ context.Context, h *history.History) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h.ID == "" {
		h.ID = objectid.New()
	}
	cp := *h
	cp.Highlights = slices.Clone(h.Highlights)
	r.Items[[2]string{h.ReaderID, h.BookID}] = &cp
	return nil
}

// =========================================
// 订单
// =========================================

type Orders struct {
	Items map[string]*order.Order
	Calls int
}

func NewOrders(orders ...*order.Order) *Orders {
	r := &Orders{Items: map[string]*order.Order{}}
	for _, o := range orders {
		r.Items[o.ID] = o
	}
	return r
}

func (r *Orders) FindByID(_ context.Context, id string) (*order.Order, error) {
	r.Calls++
	o, ok := r.Items[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	return o, nil
}

func (r *Orders) ListByUserID(_ context.Context, userID string) ([]*order.Order, error) {
	r.Calls++
	out := []*order.Order{}
	for _, o := range r.Items {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// =========================================
// 评论
// =========================================

type Reviews struct {
	mu    sync.Mutex
	Items map[[2]string]*review.Review // key: (book, user)
}

func NewReviews() *Reviews { return &Reviews{Items: map[[2]string]*review.Review{}} }

func (r *Reviews) Upsert(_ context.Context, rv *review.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]string{rv.BookID, rv.UserID}
	if old, ok := r.Items[key]; ok {
		old.Content, old.Rating, old.UpdatedAt = rv.Content, rv.Rating, rv.UpdatedAt
		return nil
	}
	cp := *rv
	cp.ID = objectid.New()
	r.Items[key] = &cp
	return nil
}

func (r *Reviews) AverageRating(_ context.Context, bookID string) (review.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var s review.Summary
	var total float64
	for key, rv := range r.Items {
		if key[0] == bookID {
			total += rv.Rating
			s.Count++
		}
	}
	if s.Count > 0 {
		s.Average = total / float64(s.Count)
	}
	return s, nil
}

func (r *Reviews) FindByBookAndUser(_ context.Context, bookID, userID string) (*review.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv, ok := r.Items[[2]string{bookID, userID}]
	if !ok {
		return nil, review.ErrReviewNotFound
	}
	cp := *rv
	return &cp, nil
}

func (r *Reviews) ListByBook(_ context.Context, bookID string) ([]*review.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*review.Review{}
	for key, rv := range r.Items {
		if key[0] == bookID {
			cp := *rv
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Date 测试用的固定时间
func Date(day int) time.Time {
	return time.Date(2024, time.March, day, 10, 0, 0, 0, time.UTC)
}
