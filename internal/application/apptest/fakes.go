package apptest

import (
	"context"
	"sync"
	"time"

	"github.com/xiebiao/ebookstore/internal/domain/media"
	"github.com/xiebiao/ebookstore/internal/domain/payment"
	"github.com/xiebiao/ebookstore/internal/domain/review"
)

// Gateway 支付网关替身
type Gateway struct {
	Sessions  map[string]*payment.CheckoutSession
	Customers map[string]*payment.Customer
	Err       error
}

func (g *Gateway) CheckoutSession(_ context.Context, id string) (*payment.CheckoutSession, error) {
	if g.Err != nil {
		return nil, g.Err
	}
	s, ok := g.Sessions[id]
	if !ok {
		return nil, payment.ErrSessionNotFound
	}
	return s, nil
}

func (g *Gateway) Customer(_ context.Context, id string) (*payment.Customer, error) {
	if g.Err != nil {
		return nil, g.Err
	}
	c, ok := g.Customers[id]
	if !ok {
		return nil, payment.ErrSessionNotFound
	}
	return c, nil
}

// BlobStore 对象存储替身，记录删除的key
type BlobStore struct {
	mu        sync.Mutex
	Deleted   []string
	DeleteErr error
}

func (s *BlobStore) PresignUpload(_ context.Context, key, contentType string, ttl time.Duration) (string, error) {
	return "https://blob.test/" + key + "?X-Amz-Expires=" + ttl.String(), nil
}

func (s *BlobStore) PublicURL(key string) string {
	return "https://cdn.test/" + key
}

func (s *BlobStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	s.Deleted = append(s.Deleted, key)
	return nil
}

// Events 记录发布的领域事件
type Events struct {
	mu        sync.Mutex
	Published []review.RatingUpdated
	Err       error
}

func (e *Events) PublishRatingUpdated(_ context.Context, event review.RatingUpdated) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.Err != nil {
		return e.Err
	}
	e.Published = append(e.Published, event)
	return nil
}

var (
	_ payment.Gateway       = (*Gateway)(nil)
	_ media.Store           = (*BlobStore)(nil)
	_ review.EventPublisher = (*Events)(nil)
)
