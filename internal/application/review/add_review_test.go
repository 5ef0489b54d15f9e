package review

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"

	"github.com/xiebiao/ebookstore/internal/application/apptest"
	"github.com/xiebiao/ebookstore/internal/domain/book"
	"github.com/xiebiao/ebookstore/internal/domain/review"
	"github.com/xiebiao/ebookstore/internal/domain/user"
	"github.com/xiebiao/ebookstore/pkg/metrics"
	"github.com/xiebiao/ebookstore/pkg/objectid"
)

func TestMain(m *testing.M) {
	metrics.InitMetrics()
	m.Run()
}

func setupRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})
	return recorder
}

type fixture struct {
	books   *apptest.Books
	reviews *apptest.Reviews
	events  *apptest.Events
	uc      *AddReviewUseCase
	bookID  string
}

func newFixture() *fixture {
	b := &book.Book{ID: objectid.New(), Title: "Go"}
	f := &fixture{
		books:   apptest.NewBooks(b),
		reviews: apptest.NewReviews(),
		events:  &apptest.Events{},
		bookID:  b.ID,
	}
	f.uc = NewAddReviewUseCase(review.NewService(f.reviews, f.books), f.events, zap.NewNop())
	return f
}

func TestAddReview_RecomputesAverage(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	u1, u2 := objectid.New(), objectid.New()

	_, err := f.uc.Execute(ctx, AddReviewRequest{UserID: u1, BookID: f.bookID, Rating: 5})
	require.NoError(t, err)
	avg, err := f.uc.Execute(ctx, AddReviewRequest{UserID: u2, BookID: f.bookID, Rating: 3, Content: "fine"})
	require.NoError(t, err)

	assert.Equal(t, 4.0, avg)
	require.NotNil(t, f.books.Items[f.bookID].AverageRating)
	assert.Equal(t, 4.0, *f.books.Items[f.bookID].AverageRating)

	require.Len(t, f.events.Published, 2)
	last := f.events.Published[1]
	assert.Equal(t, f.bookID, last.BookID)
	assert.Equal(t, u2, last.UserID)
	assert.Equal(t, 4.0, last.AverageRating)
}

// 平均分等于每个用户最新评分的均值
func TestAddReview_LatestRatingPerUser(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	u1, u2 := objectid.New(), objectid.New()

	for _, r := range []AddReviewRequest{
		{UserID: u1, BookID: f.bookID, Rating: 1},
		{UserID: u2, BookID: f.bookID, Rating: 2},
		{UserID: u1, BookID: f.bookID, Rating: 5},
		{UserID: u2, BookID: f.bookID, Rating: 4},
	} {
		_, err := f.uc.Execute(ctx, r)
		require.NoError(t, err)
	}

	assert.Equal(t, 4.5, *f.books.Items[f.bookID].AverageRating)
	assert.Len(t, f.reviews.Items, 2)
}

func TestAddReview_InvalidBookID(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), AddReviewRequest{UserID: objectid.New(), BookID: "nope", Rating: 4})
	assert.ErrorIs(t, err, book.ErrInvalidBookID)
	assert.Empty(t, f.reviews.Items)
}

func TestAddReview_MissingBook(t *testing.T) {
	f := newFixture()
	recorder := setupRecorder(t)

	_, err := f.uc.Execute(context.Background(), AddReviewRequest{UserID: objectid.New(), BookID: objectid.New(), Rating: 4})
	assert.ErrorIs(t, err, book.ErrBookNotFound)
	assert.Empty(t, f.events.Published)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "review.AddReview", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestAddReview_PublishFailureDoesNotFailRequest(t *testing.T) {
	f := newFixture()
	f.events.Err = errors.New("channel closed")

	avg, err := f.uc.Execute(context.Background(), AddReviewRequest{UserID: objectid.New(), BookID: f.bookID, Rating: 3})
	require.NoError(t, err)
	assert.Equal(t, 3.0, avg)
}

func TestQuery(t *testing.T) {
	ctx := context.Background()
	reader := &user.User{ID: objectid.New(), Name: "Ada"}
	users := apptest.NewUsers(reader)
	f := newFixture()
	q := NewQueryUseCase(review.NewService(f.reviews, f.books), users)

	_, err := q.GetReview(ctx, reader.ID, "bad")
	assert.ErrorIs(t, err, book.ErrInvalidBookID)

	_, err = q.GetReview(ctx, reader.ID, f.bookID)
	assert.ErrorIs(t, err, review.ErrReviewNotFound)

	_, err = f.uc.Execute(ctx, AddReviewRequest{UserID: reader.ID, BookID: f.bookID, Rating: 4, Content: "good"})
	require.NoError(t, err)
	_, err = f.uc.Execute(ctx, AddReviewRequest{UserID: objectid.New(), BookID: f.bookID, Rating: 2})
	require.NoError(t, err)

	got, err := q.GetReview(ctx, reader.ID, f.bookID)
	require.NoError(t, err)
	assert.Equal(t, "good", got.Content)

	list, err := q.ListPublicReviews(ctx, f.bookID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	var withAuthor int
	for _, pr := range list {
		if pr.Author != nil {
			withAuthor++
			assert.Equal(t, "Ada", pr.Author.Name)
		}
	}
	assert.Equal(t, 1, withAuthor)
	assert.Equal(t, 1, users.Calls)

	_, err = q.ListPublicReviews(ctx, "bad")
	assert.ErrorIs(t, err, book.ErrInvalidBookID)
}
