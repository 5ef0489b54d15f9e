// Package history 阅读记录用例
package history

import (
	"context"
	"errors"

	"github.com/xiebiao/ebookstore/internal/domain/history"
	"github.com/xiebiao/ebookstore/pkg/objectid"
)

// UseCase 阅读进度和高亮
type UseCase struct {
	histories history.Repository
}

// NewUseCase 创建阅读记录用例
func NewUseCase(histories history.Repository) *UseCase {
	return &UseCase{histories: histories}
}

// UpdateRequest 更新请求
type UpdateRequest struct {
	ReaderID     string
	BookID       string
	LastLocation string
	Highlights   []history.Highlight
	Remove       bool // true时移除selection相同的高亮
}

// Update 更新阅读记录,不存在时创建
func (uc *UseCase) Update(ctx context.Context, req UpdateRequest) error {
	if !objectid.IsValid(req.BookID) {
		return history.ErrInvalidBookID
	}

	h, err := uc.histories.Find(ctx, req.ReaderID, req.BookID)
	switch {
	case errors.Is(err, history.ErrHistoryNotFound):
		highlights := req.Highlights
		if req.Remove {
			highlights = nil
		}
		h = history.NewHistory(req.ReaderID, req.BookID, req.LastLocation, highlights)
	case err != nil:
		return err
	default:
		h.Apply(req.LastLocation, req.Highlights, req.Remove)
	}

	return uc.histories.Save(ctx, h)
}

// Get 查询阅读记录
func (uc *UseCase) Get(ctx context.Context, readerID, bookID string) (*history.History, error) {
	if !objectid.IsValid(bookID) {
		return nil, history.ErrInvalidBookID
	}
	return uc.histories.Find(ctx, readerID, bookID)
}
