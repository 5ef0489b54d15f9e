package media

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Asset 对象存储中的文件（图书封面、用户头像）
// ID是对象存储的key，URL是可公开访问的地址
type Asset struct {
	ID  string
	URL string
}

// Kind 上传类型，决定对象key的前缀
type Kind string

const (
	KindCover  Kind = "covers"
	KindAvatar Kind = "avatars"
)

// IsValid 是否为支持的上传类型
func (k Kind) IsValid() bool {
	return k == KindCover || k == KindAvatar
}

// Store 对象存储接口(由infrastructure/blob实现)
type Store interface {
	// PresignUpload 生成预签名的PUT地址，客户端直接上传到对象存储
	PresignUpload(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)

	// PublicURL 对象的公开访问地址
	PublicURL(key string) string

	// Delete 删除对象，对象不存在时不报错
	Delete(ctx context.Context, key string) error
}

// NewKey 生成对象key：{kind}/{ownerID}/{uuid}{ext}
func NewKey(kind Kind, ownerID, ext string) string {
	return string(kind) + "/" + ownerID + "/" + uuid.NewString() + ext
}

// OwnedBy key是否由NewKey为ownerID生成
func OwnedBy(key string, kind Kind, ownerID string) bool {
	prefix := string(kind) + "/" + ownerID + "/"
	return len(key) > len(prefix) && strings.HasPrefix(key, prefix)
}
