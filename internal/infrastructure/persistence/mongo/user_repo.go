package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xiebiao/ebookstore/internal/domain/user"
	apperrors "github.com/xiebiao/ebookstore/pkg/errors"
)

// userModel users集合文档
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含bson tag
// 2. domain/user/entity.go是领域实体，不依赖mongo驱动
// 3. Repository负责两者之间的转换
type userModel struct {
	ID        bson.ObjectID   `bson:"_id"`
	Email     string          `bson:"email"`
	Password  string          `bson:"password"`
	Name      string          `bson:"name"`
	Role      string          `bson:"role"`
	SignedUp  bool            `bson:"signed_up"`
	AuthorID  *bson.ObjectID  `bson:"author_id,omitempty"`
	Avatar    *assetModel     `bson:"avatar,omitempty"`
	Books     []bson.ObjectID `bson:"books"`
	CreatedAt time.Time       `bson:"created_at"`
	UpdatedAt time.Time       `bson:"updated_at"`
}

// userRepository 用户仓储实现（MongoDB）
type userRepository struct {
	coll *mongo.Collection
}

// NewUserRepository 创建用户仓储
// 注意：返回的是domain层的接口类型，不是具体类型（依赖倒置）
func NewUserRepository(db *mongo.Database) user.Repository {
	return &userRepository{coll: db.Collection(collUsers)}
}

// Create 创建用户
// 邮箱唯一性由唯一索引保证，duplicate key转换为ErrEmailDuplicate
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	model := toUserModel(u)
	model.ID = newOrExisting(u.ID)

	if _, err := r.coll.InsertOne(ctx, model); err != nil {
		if isDuplicateError(err) {
			return apperrors.ErrEmailDuplicate
		}
		return apperrors.Wrap(err, "failed to create user")
	}

	u.ID = model.ID.Hex()
	return nil
}

// FindByID 根据ID查找用户
func (r *userRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	return r.findOne(ctx, bson.M{"_id": oid(id)})
}

// FindByEmail 根据邮箱查找用户
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// FindByIDs 批量查找用户
func (r *userRepository) FindByIDs(ctx context.Context, ids []string) ([]*user.User, error) {
	if len(ids) == 0 {
		return []*user.User{}, nil
	}

	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids(ids)}})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to query users")
	}

	var models []userModel
	if err := cursor.All(ctx, &models); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode users")
	}

	users := make([]*user.User, 0, len(models))
	for i := range models {
		users = append(users, models[i].toEntity())
	}
	return users, nil
}

// UpdateProfile 更新姓名、注册状态和头像
func (r *userRepository) UpdateProfile(ctx context.Context, u *user.User) error {
	update := bson.M{"$set": bson.M{
		"name":       u.Name,
		"signed_up":  u.SignedUp,
		"avatar":     toAssetModel(u.Avatar),
		"updated_at": u.UpdatedAt,
	}}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid(u.ID)}, update)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user")
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// PromoteToAuthor 将用户升级为作者，返回更新后的文档
func (r *userRepository) PromoteToAuthor(ctx context.Context, userID, authorID string) (*user.User, error) {
	aid := oid(authorID)
	update := bson.M{"$set": bson.M{
		"role":       string(user.RoleAuthor),
		"author_id":  aid,
		"updated_at": time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var model userModel
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid(userID)}, update, opts).Decode(&model)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to promote user")
	}
	return model.toEntity(), nil
}

// HasPurchased 用户的books数组是否包含该图书
func (r *userRepository) HasPurchased(ctx context.Context, userID, bookID string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": oid(userID), "books": oid(bookID)})
	if err != nil {
		return false, apperrors.Wrap(err, "failed to query purchases")
	}
	return n > 0, nil
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (*user.User, error) {
	var model userModel
	if err := r.coll.FindOne(ctx, filter).Decode(&model); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to query user")
	}
	return model.toEntity(), nil
}

// =========================================
// 模型转换
// =========================================

func toUserModel(u *user.User) *userModel {
	m := &userModel{
		Email:     u.Email,
		Password:  u.Password,
		Name:      u.Name,
		Role:      string(u.Role),
		SignedUp:  u.SignedUp,
		Avatar:    toAssetModel(u.Avatar),
		Books:     oids(u.Books),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.AuthorID != "" {
		aid := oid(u.AuthorID)
		m.AuthorID = &aid
	}
	return m
}

func (m *userModel) toEntity() *user.User {
	u := &user.User{
		ID:        m.ID.Hex(),
		Email:     m.Email,
		Password:  m.Password,
		Name:      m.Name,
		Role:      user.Role(m.Role),
		SignedUp:  m.SignedUp,
		Avatar:    m.Avatar.toEntity(),
		Books:     hexes(m.Books),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.AuthorID != nil {
		u.AuthorID = m.AuthorID.Hex()
	}
	return u
}
