package author

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/ebookstore/internal/application/apptest"
	"github.com/xiebiao/ebookstore/internal/domain/author"
	"github.com/xiebiao/ebookstore/internal/domain/book"
	"github.com/xiebiao/ebookstore/internal/domain/user"
	"github.com/xiebiao/ebookstore/pkg/objectid"
)

func signedUpUser() *user.User {
	u := user.NewUser("writer@example.com", "hash")
	u.CompleteProfile("Writer")
	return u
}

func TestRegisterAuthor(t *testing.T) {
	u := signedUpUser()
	users := apptest.NewUsers(u)
	authors := apptest.NewAuthors()
	uc := NewRegisterAuthorUseCase(users, authors, zap.NewNop())

	p, err := uc.Execute(context.Background(), AuthorRequest{
		UserID:      u.ID,
		Name:        "Jane Doe",
		About:       "Writes books",
		SocialLinks: []string{"https://example.com/jane"},
	})
	require.NoError(t, err)
	assert.Equal(t, "author", p.Role)
	require.NotEmpty(t, p.AuthorID)

	a, ok := authors.Items[p.AuthorID]
	require.True(t, ok)
	assert.Equal(t, u.ID, a.UserID)
	assert.Equal(t, "jane-doe-"+a.ID, a.Slug)
}

func TestRegisterAuthor_Rejections(t *testing.T) {
	notSignedUp := user.NewUser("new@example.com", "hash")
	already := signedUpUser()
	already.Role = user.RoleAuthor
	already.AuthorID = objectid.New()

	users := apptest.NewUsers(notSignedUp, already)
	uc := NewRegisterAuthorUseCase(users, apptest.NewAuthors(), zap.NewNop())

	tests := []struct {
		name   string
		userID string
		want   error
	}{
		{"not signed up", notSignedUp.ID, author.ErrNotSignedUp},
		{"already author", already.ID, author.ErrAlreadyAuthor},
		{"unknown user", objectid.New(), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), AuthorRequest{UserID: tt.userID, Name: "N", About: "A"})
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestRegisterAuthor_MissingFields(t *testing.T) {
	u := signedUpUser()
	uc := NewRegisterAuthorUseCase(apptest.NewUsers(u), apptest.NewAuthors(), zap.NewNop())

	_, err := uc.Execute(context.Background(), AuthorRequest{UserID: u.ID, Name: " ", About: "A"})
	require.Error(t, err)
}

func TestRegisterAuthor_CompensatesWhenPromotionFails(t *testing.T) {
	u := signedUpUser()
	users := apptest.NewUsers(u)
	users.PromoteErr = errors.New("write conflict")
	authors := apptest.NewAuthors()
	uc := NewRegisterAuthorUseCase(users, authors, zap.NewNop())

	_, err := uc.Execute(context.Background(), AuthorRequest{UserID: u.ID, Name: "Jane", About: "A"})
	require.Error(t, err)
	assert.Empty(t, authors.Items, "created author should be removed")
	assert.False(t, users.Items[u.ID].IsAuthor())
}

func TestUpdateAuthor(t *testing.T) {
	u := signedUpUser()
	users := apptest.NewUsers(u)
	a := author.NewAuthor(objectid.New(), u.ID, "Jane", "Old", nil)
	u.Role, u.AuthorID = user.RoleAuthor, a.ID
	authors := apptest.NewAuthors(a)
	uc := NewUpdateAuthorUseCase(users, authors)

	updated, err := uc.Execute(context.Background(), AuthorRequest{UserID: u.ID, Name: "Jane Roe", About: "New"})
	require.NoError(t, err)
	assert.Equal(t, "Jane Roe", updated.Name)
	assert.Equal(t, "New", authors.Items[a.ID].About)
	assert.Equal(t, a.Slug, updated.Slug)

	reader := user.NewUser("reader@example.com", "hash")
	reader.ID = objectid.New()
	users.Items[reader.ID] = reader
	_, err = uc.Execute(context.Background(), AuthorRequest{UserID: reader.ID, Name: "X", About: "Y"})
	assert.ErrorIs(t, err, author.ErrNotAuthor)
}

func newBook(authorID, title string) *book.Book {
	return book.NewBook(objectid.New(), authorID, title, "fiction", "", book.Price{MRP: 1000, Sale: 800}, nil, book.StatusPublished)
}

func TestQuery(t *testing.T) {
	a := author.NewAuthor(objectid.New(), objectid.New(), "Jane", "About", nil)
	first, second := newBook(a.ID, "First"), newBook(a.ID, "Second")
	a.Books = []string{second.ID, objectid.New(), first.ID}

	uc := NewQueryUseCase(apptest.NewAuthors(a), apptest.NewBooks(first, second))
	ctx := context.Background()

	t.Run("details keep author order", func(t *testing.T) {
		d, err := uc.GetDetails(ctx, a.ID)
		require.NoError(t, err)
		require.Len(t, d.Books, 2)
		assert.Equal(t, "Second", d.Books[0].Title)
		assert.Equal(t, "First", d.Books[1].Title)
	})

	t.Run("details invalid id", func(t *testing.T) {
		_, err := uc.GetDetails(ctx, "nope")
		assert.ErrorIs(t, err, author.ErrInvalidAuthorID)
	})

	t.Run("details missing author", func(t *testing.T) {
		_, err := uc.GetDetails(ctx, objectid.New())
		assert.ErrorIs(t, err, author.ErrAuthorNotFound)
	})

	t.Run("books", func(t *testing.T) {
		books, err := uc.GetBooks(ctx, a.ID)
		require.NoError(t, err)
		assert.Len(t, books, 2)
	})

	t.Run("books of unknown author", func(t *testing.T) {
		_, err := uc.GetBooks(ctx, objectid.New())
		assert.ErrorIs(t, err, author.ErrNotAuthor)
		_, err = uc.GetBooks(ctx, "bad")
		assert.ErrorIs(t, err, author.ErrNotAuthor)
	})
}
