package blob

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/ebookstore/internal/infrastructure/config"
	apperrors "github.com/xiebiao/ebookstore/pkg/errors"
)

func testConfig(endpoint string) config.BlobConfig {
	return config.BlobConfig{
		Bucket:          "ebookstore",
		Region:          "us-east-1",
		Endpoint:        endpoint,
		UsePathStyle:    true,
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "secret",
		PresignTTL:      15 * time.Minute,
	}
}

func TestPresignUpload(t *testing.T) {
	store, err := NewStore(context.Background(), testConfig("http://localhost:9000"), zap.NewNop())
	require.NoError(t, err)

	raw, err := store.PresignUpload(context.Background(), "covers/a1/x.png", "image/png", 15*time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/ebookstore/covers/a1/x.png", u.Path)
	assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.BlobConfig
		want string
	}{
		{"aws default", config.BlobConfig{Bucket: "b", Region: "eu-west-1"}, "https://b.s3.eu-west-1.amazonaws.com/covers/k.png"},
		{"path style", config.BlobConfig{Bucket: "b", Endpoint: "http://minio:9000/", UsePathStyle: true}, "http://minio:9000/b/covers/k.png"},
		{"virtual host", config.BlobConfig{Bucket: "b", Endpoint: "https://cdn.example.com"}, "https://b.cdn.example.com/covers/k.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Store{baseURL: publicBaseURL(tt.cfg)}
			assert.Equal(t, tt.want, s.PublicURL("covers/k.png"))
		})
	}
}

func TestDelete(t *testing.T) {
	var (
		mu     sync.Mutex
		method string
		path   string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		method, path = r.Method, r.URL.Path
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	store, err := NewStore(context.Background(), testConfig(srv.URL), zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), "avatars/u1/old.png"))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/ebookstore/avatars/u1/old.png", path)
}

func TestDelete_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	store, err := NewStore(context.Background(), testConfig(srv.URL), zap.NewNop())
	require.NoError(t, err)

	err = store.Delete(context.Background(), "avatars/u1/old.png")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeBlobError, apperrors.GetAppError(err).Code)
}
