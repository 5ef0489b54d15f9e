package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/ebookstore/internal/application/apptest"
	appauthor "github.com/xiebiao/ebookstore/internal/application/author"
	appbook "github.com/xiebiao/ebookstore/internal/application/book"
	appcart "github.com/xiebiao/ebookstore/internal/application/cart"
	apphistory "github.com/xiebiao/ebookstore/internal/application/history"
	appmedia "github.com/xiebiao/ebookstore/internal/application/media"
	apporder "github.com/xiebiao/ebookstore/internal/application/order"
	appreview "github.com/xiebiao/ebookstore/internal/application/review"
	appuser "github.com/xiebiao/ebookstore/internal/application/user"
	"github.com/xiebiao/ebookstore/internal/domain/book"
	"github.com/xiebiao/ebookstore/internal/domain/review"
	"github.com/xiebiao/ebookstore/internal/domain/user"
	"github.com/xiebiao/ebookstore/internal/infrastructure/config"
	"github.com/xiebiao/ebookstore/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/ebookstore/internal/interface/http/handler"
	"github.com/xiebiao/ebookstore/internal/interface/http/middleware"
	"github.com/xiebiao/ebookstore/pkg/jwt"
	"github.com/xiebiao/ebookstore/pkg/objectid"
)

type server struct {
	engine *gin.Engine
	jwt    *jwt.Manager
	users  *apptest.Users
	books  *apptest.Books
	orders *apptest.Orders
	events *apptest.Events
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	log := zap.NewNop()
	cfg := &config.Config{Server: config.ServerConfig{Mode: "test"}}
	manager := jwt.NewManager("test-secret", time.Hour, 24*time.Hour)
	sessions := redis.NewSessionStore(client)

	users := apptest.NewUsers()
	authors := apptest.NewAuthors()
	books := apptest.NewBooks()
	orders := apptest.NewOrders()
	reviews := apptest.NewReviews()
	store := &apptest.BlobStore{}
	events := &apptest.Events{}

	userService := user.NewService(users)
	h := Handlers{
		User: handler.NewUserHandler(
			appuser.NewRegisterUseCase(userService),
			appuser.NewLoginUseCase(userService, manager, sessions, log),
			appuser.NewLogoutUseCase(sessions, manager),
			appuser.NewRefreshUseCase(users, manager, sessions),
			appuser.NewProfileUseCase(users, store, log),
		),
		Author: handler.NewAuthorHandler(
			appauthor.NewRegisterAuthorUseCase(users, authors, log),
			appauthor.NewUpdateAuthorUseCase(users, authors),
			appauthor.NewQueryUseCase(authors, books),
		),
		Book:    handler.NewBookHandler(appbook.NewPublishBookUseCase(book.NewService(books), users, authors, store)),
		Cart:    handler.NewCartHandler(appcart.NewUseCase(apptest.NewCarts(), books)),
		History: handler.NewHistoryHandler(apphistory.NewUseCase(apptest.NewHistories())),
		Order:   handler.NewOrderHandler(apporder.NewUseCase(orders, books, users, &apptest.Gateway{})),
		Review: handler.NewReviewHandler(
			appreview.NewAddReviewUseCase(review.NewService(reviews, books), events, log),
			appreview.NewQueryUseCase(review.NewService(reviews, books), users),
		),
		Media: handler.NewMediaHandler(appmedia.NewUploadURLUseCase(store, time.Minute)),
	}

	return &server{
		engine: New(cfg, log, h, middleware.NewAuthMiddleware(manager, sessions)),
		jwt:    manager,
		users:  users,
		books:  books,
		orders: orders,
		events: events,
	}
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (s *server) do(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

// signIn 直接创建已完成注册的用户并签发Token
func (s *server) signIn(t *testing.T, email, name string) (*user.User, string) {
	t.Helper()
	u := user.NewUser(email, "hash")
	u.CompleteProfile(name)
	u.ID = objectid.New()
	s.users.Items[u.ID] = u

	pair, err := s.jwt.GenerateToken(u.ID, u.Email, string(u.Role))
	require.NoError(t, err)
	return u, pair.AccessToken
}

func field[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestRegisterLoginLogout(t *testing.T) {
	s := newServer(t)

	status, env := s.do(t, http.MethodPost, "/api/v1/users/register", "", map[string]string{
		"email": "reader@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, status, env.Message)

	status, env = s.do(t, http.MethodPost, "/api/v1/users/register", "", map[string]string{
		"email": "reader@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, status)

	status, env = s.do(t, http.MethodPost, "/api/v1/users/login", "", map[string]string{
		"email": "reader@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, status)
	login := field[appuser.LoginResponse](t, env.Data)
	require.NotEmpty(t, login.AccessToken)

	status, _ = s.do(t, http.MethodGet, "/api/v1/profile", login.AccessToken, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = s.do(t, http.MethodPost, "/api/v1/users/logout", login.AccessToken, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = s.do(t, http.MethodGet, "/api/v1/profile", login.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, status, "blacklisted after logout")

	status, _ = s.do(t, http.MethodPost, "/api/v1/users/refresh", "", map[string]string{"refresh_token": login.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, status, "session deleted on logout")
}

func TestAuthorBookReviewFlow(t *testing.T) {
	s := newServer(t)
	_, writerToken := s.signIn(t, "writer@example.com", "Writer")
	_, readerA := s.signIn(t, "a@example.com", "Reader A")
	_, readerB := s.signIn(t, "b@example.com", "Reader B")

	status, env := s.do(t, http.MethodPost, "/api/v1/authors", writerToken, map[string]any{
		"name": "Jane Doe", "about": "Writes about Go",
	})
	require.Equal(t, http.StatusOK, status, env.Message)
	profile := field[struct {
		User appuser.Profile `json:"user"`
	}](t, env.Data).User
	assert.Equal(t, "author", profile.Role)

	status, _ = s.do(t, http.MethodPost, "/api/v1/authors", writerToken, map[string]any{"name": "Again", "about": "x"})
	assert.Equal(t, http.StatusConflict, status)

	status, env = s.do(t, http.MethodPost, "/api/v1/media/upload-url", writerToken, map[string]string{
		"kind": "covers", "content_type": "image/png",
	})
	require.Equal(t, http.StatusOK, status)
	upload := field[appmedia.Upload](t, env.Data)

	status, env = s.do(t, http.MethodPost, "/api/v1/books", writerToken, map[string]any{
		"title": "The Go Way", "genre": "tech",
		"price": map[string]int64{"mrp": 1999, "sale": 1099},
		"cover": upload.Key,
	})
	require.Equal(t, http.StatusCreated, status, env.Message)
	bookID := field[struct {
		ID string `json:"id"`
	}](t, env.Data).ID

	status, _ = s.do(t, http.MethodPost, "/api/v1/books", readerA, map[string]any{
		"title": "Nope", "genre": "tech", "price": map[string]int64{"mrp": 100, "sale": 100},
	})
	assert.Equal(t, http.StatusForbidden, status)

	for token, rating := range map[string]float64{readerA: 5, readerB: 3} {
		status, env = s.do(t, http.MethodPost, "/api/v1/reviews", token, map[string]any{
			"book_id": bookID, "rating": rating, "content": "ok",
		})
		require.Equal(t, http.StatusOK, status, env.Message)
		assert.Equal(t, "Review updated", field[map[string]string](t, env.Data)["message"])
	}
	require.Len(t, s.events.Published, 2)

	status, env = s.do(t, http.MethodGet, "/api/v1/authors/"+profile.AuthorID, "", nil)
	require.Equal(t, http.StatusOK, status, env.Message)
	details := field[struct {
		Books []struct {
			Rating string            `json:"rating"`
			Price  map[string]string `json:"price"`
			Cover  string            `json:"cover"`
		} `json:"books"`
	}](t, env.Data)
	require.Len(t, details.Books, 1)
	assert.Equal(t, "4.0", details.Books[0].Rating)
	assert.Equal(t, "10.99", details.Books[0].Price["sale"])
	assert.Equal(t, upload.URL, details.Books[0].Cover)

	status, env = s.do(t, http.MethodGet, "/api/v1/reviews/list/"+bookID, "", nil)
	require.Equal(t, http.StatusOK, status)
	list := field[struct {
		Reviews []struct {
			User struct {
				Name string `json:"name"`
			} `json:"user"`
		} `json:"reviews"`
	}](t, env.Data)
	assert.Len(t, list.Reviews, 2)

	status, env = s.do(t, http.MethodGet, "/api/v1/reviews/"+bookID, readerA, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 5.0, field[map[string]any](t, env.Data)["rating"])
}

func TestReviewErrors(t *testing.T) {
	s := newServer(t)
	_, token := s.signIn(t, "a@example.com", "Reader")

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"missing rating", http.MethodPost, "/api/v1/reviews", map[string]any{"book_id": objectid.New()}, http.StatusBadRequest},
		{"invalid book id", http.MethodPost, "/api/v1/reviews", map[string]any{"book_id": "x", "rating": 4}, http.StatusUnprocessableEntity},
		{"missing book", http.MethodPost, "/api/v1/reviews", map[string]any{"book_id": objectid.New(), "rating": 4}, http.StatusNotFound},
		{"no review yet", http.MethodGet, "/api/v1/reviews/" + objectid.New(), nil, http.StatusNotFound},
		{"list invalid id", http.MethodGet, "/api/v1/reviews/list/abc", nil, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := s.do(t, tt.method, tt.path, token, tt.body)
			assert.Equal(t, tt.status, status)
		})
	}
}

func TestOrdersCartHistory(t *testing.T) {
	s := newServer(t)
	_, token := s.signIn(t, "a@example.com", "Reader")

	status, env := s.do(t, http.MethodGet, "/api/v1/orders/check-status/not-an-id", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, field[map[string]bool](t, env.Data)["status"])
	assert.Zero(t, s.orders.Calls)

	status, env = s.do(t, http.MethodPost, "/api/v1/orders/success", token, map[string]any{"session_id": 42})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid sessionId", env.Message)

	status, env = s.do(t, http.MethodGet, "/api/v1/orders", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"orders":[]}`, string(env.Data))

	status, _ = s.do(t, http.MethodGet, "/api/v1/cart", token, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.do(t, http.MethodPost, "/api/v1/cart", token, map[string]any{
		"items": []map[string]any{{"product": objectid.New(), "quantity": 1}},
	})
	assert.Equal(t, http.StatusOK, status)

	status, env = s.do(t, http.MethodGet, "/api/v1/history/123", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "Invalid book id!", env.Message)

	status, _ = s.do(t, http.MethodGet, "/api/v1/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}
