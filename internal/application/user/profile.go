package user

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/xiebiao/ebookstore/internal/domain/media"
	"github.com/xiebiao/ebookstore/internal/domain/user"
	apperrors "github.com/xiebiao/ebookstore/pkg/errors"
)

// ProfileUseCase 查看和更新个人资料
type ProfileUseCase struct {
	users  user.Repository
	store  media.Store
	logger *zap.Logger
}

// NewProfileUseCase 创建资料用例
func NewProfileUseCase(users user.Repository, store media.Store, logger *zap.Logger) *ProfileUseCase {
	return &ProfileUseCase{users: users, store: store, logger: logger}
}

// UpdateProfileRequest 更新资料请求
// AvatarKey是通过上传地址接口获得的对象key，为空表示不修改头像
type UpdateProfileRequest struct {
	UserID    string
	Name      string
	AvatarKey string
}

// Get 当前用户资料
func (uc *ProfileUseCase) Get(ctx context.Context, userID string) (*Profile, error) {
	u, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile := ProfileOf(u)
	return &profile, nil
}

// Update 填写姓名（完成注册）并可选地更换头像
// 旧头像在资料保存成功后删除，删除失败只记录日志
func (uc *ProfileUseCase) Update(ctx context.Context, req UpdateProfileRequest) (*Profile, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidArg, "Name is required")
	}

	u, err := uc.users.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	var replaced *media.Asset
	if req.AvatarKey != "" {
		if !media.OwnedBy(req.AvatarKey, media.KindAvatar, u.ID) {
			return nil, media.ErrForeignKey
		}
		replaced = u.ChangeAvatar(&media.Asset{ID: req.AvatarKey, URL: uc.store.PublicURL(req.AvatarKey)})
	}
	u.CompleteProfile(name)

	if err := uc.users.UpdateProfile(ctx, u); err != nil {
		return nil, err
	}

	if replaced != nil && replaced.ID != req.AvatarKey {
		if err := uc.store.Delete(ctx, replaced.ID); err != nil {
			uc.logger.Warn("delete old avatar failed", zap.String("key", replaced.ID), zap.Error(err))
		}
	}

	profile := ProfileOf(u)
	return &profile, nil
}
