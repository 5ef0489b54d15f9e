package author

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	appuser "github.com/xiebiao/ebookstore/internal/application/user"
	"github.com/xiebiao/ebookstore/internal/domain/author"
	"github.com/xiebiao/ebookstore/internal/domain/user"
	apperrors "github.com/xiebiao/ebookstore/pkg/errors"
	"github.com/xiebiao/ebookstore/pkg/saga"
)

const registerSagaTimeout = 10 * time.Second

// RegisterAuthorUseCase 注册为作者
// 设计说明：
// 1. 创建作者文档和升级用户角色是两个集合的写入，用Saga保证一致
// 2. 第二步失败时删除已创建的作者
type RegisterAuthorUseCase struct {
	users   user.Repository
	authors author.Repository
	logger  *zap.Logger
}

// NewRegisterAuthorUseCase 创建作者注册用例
func NewRegisterAuthorUseCase(users user.Repository, authors author.Repository, logger *zap.Logger) *RegisterAuthorUseCase {
	return &RegisterAuthorUseCase{users: users, authors: authors, logger: logger}
}

// AuthorRequest 作者资料
type AuthorRequest struct {
	UserID      string
	Name        string
	About       string
	SocialLinks []string
}

func (r AuthorRequest) validate() error {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.About) == "" {
		return apperrors.New(apperrors.ErrCodeInvalidArg, "Name and about are required")
	}
	return nil
}

// Execute 执行注册，返回更新后的用户资料
func (uc *RegisterAuthorUseCase) Execute(ctx context.Context, req AuthorRequest) (*appuser.Profile, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	u, err := uc.users.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !u.SignedUp {
		return nil, author.ErrNotSignedUp
	}
	if u.IsAuthor() {
		return nil, author.ErrAlreadyAuthor
	}

	a := author.NewAuthor(uc.authors.NextID(), u.ID, strings.TrimSpace(req.Name), req.About, req.SocialLinks)

	var promoted *user.User
	s := saga.NewSaga("register_author", registerSagaTimeout, uc.logger)
	s.AddStep("create_author",
		func(ctx context.Context) error { return uc.authors.Create(ctx, a) },
		func(ctx context.Context) error { return uc.authors.Delete(ctx, a.ID) },
	)
	s.AddStep("promote_user",
		func(ctx context.Context) error {
			var err error
			promoted, err = uc.users.PromoteToAuthor(ctx, u.ID, a.ID)
			return err
		},
		nil,
	)

	if err := s.Execute(ctx); err != nil {
		uc.logger.Warn("register author failed",
			zap.String("user_id", u.ID),
			zap.String("step", saga.FailedStep(err)),
			zap.Error(err),
		)
		return nil, err
	}

	profile := appuser.ProfileOf(promoted)
	return &profile, nil
}
