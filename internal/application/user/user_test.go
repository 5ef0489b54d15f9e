package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/xiebiao/ebookstore/internal/application/apptest"
	"github.com/xiebiao/ebookstore/internal/domain/media"
	"github.com/xiebiao/ebookstore/internal/domain/user"
	"github.com/xiebiao/ebookstore/internal/infrastructure/persistence/redis"
	apperrors "github.com/xiebiao/ebookstore/pkg/errors"
	"github.com/xiebiao/ebookstore/pkg/jwt"
)

type env struct {
	users    *apptest.Users
	sessions *redis.SessionStore
	mr       *miniredis.Miniredis
	jwt      *jwt.Manager
	reader   *user.User
}

func newEnv(t *testing.T) *env {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	reader := user.NewUser("reader@example.com", string(hash))
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return &env{
		users:    apptest.NewUsers(reader),
		sessions: redis.NewSessionStore(client),
		mr:       mr,
		jwt:      jwt.NewManager("test-secret", time.Hour, 24*time.Hour),
		reader:   reader,
	}
}

func TestRegister(t *testing.T) {
	e := newEnv(t)
	uc := NewRegisterUseCase(user.NewService(e.users))

	p, err := uc.Execute(context.Background(), RegisterRequest{Email: " New@Example.com ", Password: "abcd1234"})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", p.Email)
	assert.Equal(t, "user", p.Role)
	assert.False(t, p.SignedUp)
	assert.Equal(t, []string{}, p.Books)

	_, err = uc.Execute(context.Background(), RegisterRequest{Email: "reader@example.com", Password: "abcd1234"})
	assert.ErrorIs(t, err, apperrors.ErrEmailDuplicate)
}

func TestLoginLogoutRefresh(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	login := NewLoginUseCase(user.NewService(e.users), e.jwt, e.sessions, zap.NewNop())

	_, err := login.Execute(ctx, LoginRequest{Email: "reader@example.com", Password: "wrong-pass1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)

	resp, err := login.Execute(ctx, LoginRequest{Email: "reader@example.com", Password: "secret123", ClientIP: "10.0.0.1"})
	require.NoError(t, err)
	assert.Equal(t, e.reader.ID, resp.User.ID)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, 24*time.Hour, e.mr.TTL("session:"+e.reader.ID))

	// 注册为作者后刷新，新Token带上最新角色
	_, err = e.users.PromoteToAuthor(ctx, e.reader.ID, "6560f1c2a9b3e4d5f6a7b8c9")
	require.NoError(t, err)
	refresh := NewRefreshUseCase(e.users, e.jwt, e.sessions)
	refreshed, err := refresh.Execute(ctx, resp.RefreshToken)
	require.NoError(t, err)
	claims, err := e.jwt.ParseToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "author", claims.Role)

	logout := NewLogoutUseCase(e.sessions, e.jwt)
	require.NoError(t, logout.Execute(ctx, e.reader.ID, resp.AccessToken))

	listed, err := e.sessions.IsInBlacklist(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.True(t, listed)
	assert.Equal(t, time.Hour, e.mr.TTL("blacklist:"+resp.AccessToken))

	_, err = refresh.Execute(ctx, resp.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestLogin_SessionStoreDown(t *testing.T) {
	e := newEnv(t)
	e.mr.Close()
	login := NewLoginUseCase(user.NewService(e.users), e.jwt, e.sessions, zap.NewNop())

	resp, err := login.Execute(context.Background(), LoginRequest{Email: "reader@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestProfile_Update(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	store := &apptest.BlobStore{}
	uc := NewProfileUseCase(e.users, store, zap.NewNop())

	_, err := uc.Update(ctx, UpdateProfileRequest{UserID: e.reader.ID, Name: "  "})
	assert.Equal(t, 422, apperrors.GetAppError(err).HTTPStatus())

	first := media.NewKey(media.KindAvatar, e.reader.ID, ".png")
	p, err := uc.Update(ctx, UpdateProfileRequest{UserID: e.reader.ID, Name: "Ada", AvatarKey: first})
	require.NoError(t, err)
	assert.True(t, p.SignedUp)
	assert.Equal(t, "Ada", p.Name)
	assert.Equal(t, "https://cdn.test/"+first, p.Avatar)
	assert.Empty(t, store.Deleted)

	second := media.NewKey(media.KindAvatar, e.reader.ID, ".jpg")
	_, err = uc.Update(ctx, UpdateProfileRequest{UserID: e.reader.ID, Name: "Ada L.", AvatarKey: second})
	require.NoError(t, err)
	assert.Equal(t, []string{first}, store.Deleted)

	// 只改姓名不动头像
	p, err = uc.Update(ctx, UpdateProfileRequest{UserID: e.reader.ID, Name: "Ada Lovelace"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/"+second, p.Avatar)

	got, err := uc.Get(ctx, e.reader.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got.Name)
}

func TestProfile_RejectsForeignAvatar(t *testing.T) {
	e := newEnv(t)
	uc := NewProfileUseCase(e.users, &apptest.BlobStore{}, zap.NewNop())

	foreign := media.NewKey(media.KindAvatar, "someone-else", ".png")
	_, err := uc.Update(context.Background(), UpdateProfileRequest{UserID: e.reader.ID, Name: "Ada", AvatarKey: foreign})
	assert.ErrorIs(t, err, media.ErrForeignKey)

	cover := media.NewKey(media.KindCover, e.reader.ID, ".png")
	_, err = uc.Update(context.Background(), UpdateProfileRequest{UserID: e.reader.ID, Name: "Ada", AvatarKey: cover})
	assert.ErrorIs(t, err, media.ErrForeignKey)
}

func TestProfile_OldAvatarDeleteFailureIsIgnored(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	store := &apptest.BlobStore{DeleteErr: errors.New("access denied")}
	uc := NewProfileUseCase(e.users, store, zap.NewNop())

	_, err := uc.Update(ctx, UpdateProfileRequest{UserID: e.reader.ID, Name: "Ada", AvatarKey: media.NewKey(media.KindAvatar, e.reader.ID, ".png")})
	require.NoError(t, err)
	_, err = uc.Update(ctx, UpdateProfileRequest{UserID: e.reader.ID, Name: "Ada", AvatarKey: media.NewKey(media.KindAvatar, e.reader.ID, ".png")})
	assert.NoError(t, err)
}
