// Package media 封面和头像的上传地址
package media

import (
	"context"
	"strings"
	"time"

	"github.com/xiebiao/ebookstore/internal/domain/media"
)

// 支持的图片类型及对象key的扩展名
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// UploadURLUseCase 生成预签名上传地址
// 客户端PUT上传完成后，把返回的key提交给PublishBook(封面)或UpdateProfile(头像)
type UploadURLUseCase struct {
	store media.Store
	ttl   time.Duration
}

// NewUploadURLUseCase 创建上传地址用例
func NewUploadURLUseCase(store media.Store, ttl time.Duration) *UploadURLUseCase {
	return &UploadURLUseCase{store: store, ttl: ttl}
}

// Upload 预签名结果
type Upload struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
	URL       string `json:"url"`
}

// Execute key按{kind}/{userID}/{uuid}{ext}生成
func (uc *UploadURLUseCase) Execute(ctx context.Context, userID string, kind media.Kind, contentType string) (*Upload, error) {
	if !kind.IsValid() {
		return nil, media.ErrInvalidKind
	}

	ext, ok := imageExtensions[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return nil, media.ErrInvalidContentType
	}

	key := media.NewKey(kind, userID, ext)
	uploadURL, err := uc.store.PresignUpload(ctx, key, contentType, uc.ttl)
	if err != nil {
		return nil, err
	}

	return &Upload{
		Key:       key,
		UploadURL: uploadURL,
		URL:       uc.store.PublicURL(key),
	}, nil
}
