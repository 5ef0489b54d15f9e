package book

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/ebookstore/internal/domain/media"
	apperrors "github.com/xiebiao/ebookstore/pkg/errors"
)

type memRepo struct {
	Repository
	books map[string]*Book
}

func (r *memRepo) NextID() string { return "6560f1c2a9b3e4d5f6a7b8c9" }

func (r *memRepo) Create(_ context.Context, b *Book) error {
	r.books[b.ID] = b
	return nil
}

func (r *memRepo) FindByID(_ context.Context, id string) (*Book, error) {
	if b, ok := r.books[id]; ok {
		return b, nil
	}
	return nil, ErrBookNotFound
}

func TestPublishBook(t *testing.T) {
	repo := &memRepo{books: map[string]*Book{}}
	svc := NewService(repo)

	cover := &media.Asset{ID: "covers/a1/x.png", URL: "https://cdn.example.com/covers/a1/x.png"}
	b, err := svc.PublishBook(context.Background(), "a1", " Clean Code ", "Programming", "", Price{MRP: 2999, Sale: 1999}, cover, "")
	require.NoError(t, err)

	assert.Equal(t, "Clean Code", b.Title)
	assert.Equal(t, "clean-code-6560f1c2a9b3e4d5f6a7b8c9", b.Slug)
	assert.Equal(t, StatusPublished, b.Status)
	assert.Nil(t, b.AverageRating)
	assert.Equal(t, cover.URL, b.CoverURL())
	assert.True(t, b.IsOwnedBy("a1"))

	got, err := svc.GetBookByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Same(t, b, got)
}

func TestPublishBook_Validation(t *testing.T) {
	svc := NewService(&memRepo{books: map[string]*Book{}})

	tests := []struct {
		name   string
		title  string
		price  Price
		status Status
		want   *apperrors.AppError
	}{
		{"zero mrp", "T", Price{MRP: 0, Sale: 0}, "", ErrInvalidPrice},
		{"sale above mrp", "T", Price{MRP: 100, Sale: 101}, "", ErrInvalidPrice},
		{"zero sale", "T", Price{MRP: 100, Sale: 0}, "", ErrInvalidPrice},
		{"bad status", "T", Price{MRP: 100, Sale: 100}, "draft", ErrInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.PublishBook(context.Background(), "a1", tt.title, "Fiction", "", tt.price, nil, tt.status)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := svc.PublishBook(context.Background(), "a1", "  ", "Fiction", "", Price{MRP: 1, Sale: 1}, nil, "")
	require.Error(t, err)
	assert.Equal(t, 422, apperrors.GetAppError(err).HTTPStatus())
}

func TestBook_CoverURLWithoutCover(t *testing.T) {
	b := &Book{}
	assert.Empty(t, b.CoverURL())
}
