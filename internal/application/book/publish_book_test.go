package book

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/ebookstore/internal/application/apptest"
	"github.com/xiebiao/ebookstore/internal/domain/author"
	"github.com/xiebiao/ebookstore/internal/domain/book"
	"github.com/xiebiao/ebookstore/internal/domain/media"
	"github.com/xiebiao/ebookstore/internal/domain/user"
	"github.com/xiebiao/ebookstore/pkg/objectid"
)

type env struct {
	uc      *PublishBookUseCase
	books   *apptest.Books
	authors *apptest.Authors
	writer  *user.User
	reader  *user.User
	author  *author.Author
}

func newEnv() *env {
	writer := user.NewUser("writer@example.com", "hash")
	writer.ID = objectid.New()
	a := author.NewAuthor(objectid.New(), writer.ID, "Jane", "About", nil)
	writer.Role, writer.AuthorID = user.RoleAuthor, a.ID

	reader := user.NewUser("reader@example.com", "hash")
	reader.ID = objectid.New()

	books := apptest.NewBooks()
	authors := apptest.NewAuthors(a)
	uc := NewPublishBookUseCase(book.NewService(books), apptest.NewUsers(writer, reader), authors, &apptest.BlobStore{})
	return &env{uc: uc, books: books, authors: authors, writer: writer, reader: reader, author: a}
}

func TestPublishBook(t *testing.T) {
	e := newEnv()
	cover := media.NewKey(media.KindCover, e.writer.ID, ".png")

	b, err := e.uc.Execute(context.Background(), PublishBookRequest{
		UserID:   e.writer.ID,
		Title:    "The Go Way",
		Genre:    "tech",
		Price:    book.Price{MRP: 1999, Sale: 1099},
		CoverKey: cover,
	})
	require.NoError(t, err)
	assert.Equal(t, e.author.ID, b.AuthorID)
	assert.Equal(t, book.StatusPublished, b.Status)
	assert.Equal(t, "https://cdn.test/"+cover, b.CoverURL())
	assert.Equal(t, "the-go-way-"+b.ID, b.Slug)
	assert.Contains(t, e.authors.Items[e.author.ID].Books, b.ID)
	assert.Contains(t, e.books.Items, b.ID)
}

func TestPublishBook_Rejections(t *testing.T) {
	e := newEnv()
	valid := book.Price{MRP: 1000, Sale: 500}

	tests := []struct {
		name string
		req  PublishBookRequest
		want error
	}{
		{"reader is not an author", PublishBookRequest{UserID: e.reader.ID, Title: "T", Genre: "g", Price: valid}, author.ErrNotAuthor},
		{"foreign cover", PublishBookRequest{UserID: e.writer.ID, Title: "T", Genre: "g", Price: valid,
			CoverKey: media.NewKey(media.KindCover, e.reader.ID, ".png")}, media.ErrForeignKey},
		{"avatar used as cover", PublishBookRequest{UserID: e.writer.ID, Title: "T", Genre: "g", Price: valid,
			CoverKey: media.NewKey(media.KindAvatar, e.writer.ID, ".png")}, media.ErrForeignKey},
		{"sale above mrp", PublishBookRequest{UserID: e.writer.ID, Title: "T", Genre: "g", Price: book.Price{MRP: 100, Sale: 200}}, book.ErrInvalidPrice},
		{"bad status", PublishBookRequest{UserID: e.writer.ID, Title: "T", Genre: "g", Price: valid, Status: "draft"}, book.ErrInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, e.books.Items)
	assert.Empty(t, e.authors.Items[e.author.ID].Books)
}
