package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/ebookstore/pkg/errors"
)

// memRepo 内存实现，仅实现Service用到的方法
type memRepo struct {
	Repository
	byEmail map[string]*User
}

func (r *memRepo) Create(_ context.Context, u *User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return apperrors.ErrEmailDuplicate
	}
	u.ID = "6560f1c2a9b3e4d5f6a7b8c9"
	r.byEmail[u.Email] = u
	return nil
}

func (r *memRepo) FindByEmail(_ context.Context, email string) (*User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func newTestService() *service {
	return &service{repo: &memRepo{byEmail: map[string]*User{}}, cost: bcrypt.MinCost}
}

func TestRegister(t *testing.T) {
	svc := newTestService()

	u, err := svc.Register(context.Background(), "  Reader@Example.com ", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", u.Email)
	assert.Equal(t, RoleUser, u.Role)
	assert.False(t, u.SignedUp)
	assert.NotEqual(t, "secret123", u.Password)
	assert.NoError(t, svc.ValidatePassword(u.Password, "secret123"))

	_, err = svc.Register(context.Background(), "reader@example.com", "secret123")
	assert.ErrorIs(t, err, apperrors.ErrEmailDuplicate)
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestService()

	tests := []struct {
		name     string
		email    string
		password string
		code     int
	}{
		{"bad email", "not-an-email", "secret123", apperrors.ErrCodeInvalidParams},
		{"too short", "a@b.io", "s3cret", apperrors.ErrCodeWeakPassword},
		{"no digit", "a@b.io", "secretpassword", apperrors.ErrCodeWeakPassword},
		{"no letter", "a@b.io", "1234567890", apperrors.ErrCodeWeakPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.email, tt.password)
			require.Error(t, err)
			assert.Equal(t, tt.code, apperrors.GetAppError(err).Code)
		})
	}
}

func TestLogin(t *testing.T) {
	svc := newTestService()
	_, err := svc.Register(context.Background(), "reader@example.com", "secret123")
	require.NoError(t, err)

	u, err := svc.Login(context.Background(), "READER@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", u.Email)

	_, err = svc.Login(context.Background(), "reader@example.com", "wrong1234")
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)

	_, err = svc.Login(context.Background(), "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
}

func TestUser_Behaviour(t *testing.T) {
	u := NewUser("reader@example.com", "hash")
	assert.False(t, u.IsAuthor())

	u.CompleteProfile("Jane Doe")
	assert.True(t, u.SignedUp)
	assert.Equal(t, "Jane Doe", u.Name)

	u.Books = []string{"b1", "b2"}
	assert.True(t, u.HasPurchased("b2"))
	assert.False(t, u.HasPurchased("b3"))

	u.Role, u.AuthorID = RoleAuthor, "a1"
	assert.True(t, u.IsAuthor())
}
