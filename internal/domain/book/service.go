package book

import (
	"context"
	"strings"

	"github.com/xiebiao/ebookstore/internal/domain/media"
	apperrors "github.com/xiebiao/ebookstore/pkg/errors"
)

// Service 图书领域服务接口
type Service interface {
	// PublishBook 发布图书
	// 业务规则:
	// - 书名、类型不能为空
	// - 价格: mrp > 0 且 0 < sale <= mrp
	// - 状态为published或unpublished,为空时默认published
	PublishBook(ctx context.Context, authorID, title, genre, description string, price Price, cover *media.Asset, status Status) (*Book, error)

	// GetBookByID 根据ID获取图书详情
	GetBookByID(ctx context.Context, id string) (*Book, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// PublishBook 发布图书
func (s *service) PublishBook(ctx context.Context, authorID, title, genre, description string, price Price, cover *media.Asset, status Status) (*Book, error) {
	title = strings.TrimSpace(title)
	genre = strings.TrimSpace(genre)
	if title == "" || genre == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidArg, "Title and genre are required")
	}

	if err := price.Validate(); err != nil {
		return nil, err
	}

	if status == "" {
		status = StatusPublished
	}
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	book := NewBook(s.repo.NextID(), authorID, title, genre, description, price, cover, status)
	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}

	return book, nil
}

// GetBookByID 根据ID获取图书
func (s *service) GetBookByID(ctx context.Context, id string) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}
