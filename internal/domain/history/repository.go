package history

import (
	"context"
)

// Repository 阅读记录仓储接口
type Repository interface {
	// Find 按(读者,图书)查找,不存在时返回ErrHistoryNotFound
	Find(ctx context.Context, readerID, bookID string) (*History, error)

	// Save 按(读者,图书)写入(不存在则创建)
	Save(ctx context.Context, history *History) error
}
