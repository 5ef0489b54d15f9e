package author

import (
	"context"
	"strings"

	"github.com/xiebiao/ebookstore/internal/domain/author"
	"github.com/xiebiao/ebookstore/internal/domain/user"
)

// UpdateAuthorUseCase 更新当前用户的作者资料
type UpdateAuthorUseCase struct {
	users   user.Repository
	authors author.Repository
}

// NewUpdateAuthorUseCase 创建更新用例
func NewUpdateAuthorUseCase(users user.Repository, authors author.Repository) *UpdateAuthorUseCase {
	return &UpdateAuthorUseCase{users: users, authors: authors}
}

// Execute 没有作者资料的用户返回ErrNotAuthor(403)
func (uc *UpdateAuthorUseCase) Execute(ctx context.Context, req AuthorRequest) (*author.Author, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	u, err := uc.users.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !u.IsAuthor() {
		return nil, author.ErrNotAuthor
	}

	a, err := uc.authors.FindByID(ctx, u.AuthorID)
	if err != nil {
		return nil, err
	}

	a.UpdateDetails(strings.TrimSpace(req.Name), req.About, req.SocialLinks)
	if err := uc.authors.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
