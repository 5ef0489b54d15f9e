package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/xiebiao/ebookstore/internal/domain/author"
	apperrors "github.com/xiebiao/ebookstore/pkg/errors"
)

type authorModel struct {
	ID          bson.ObjectID   `bson:"_id"`
	UserID      bson.ObjectID   `bson:"user_id"`
	Name        string          `bson:"name"`
	About       string          `bson:"about"`
	Slug        string          `bson:"slug"`
	SocialLinks []string        `bson:"social_links"`
	Books       []bson.ObjectID `bson:"books"`
	CreatedAt   time.Time       `bson:"created_at"`
	UpdatedAt   time.Time       `bson:"updated_at"`
}

type authorRepository struct {
	coll *mongo.Collection
}

// NewAuthorRepository 创建作者仓储
func NewAuthorRepository(db *mongo.Database) author.Repository {
	return &authorRepository{coll: db.Collection(collAuthors)}
}

// NextID 作者ID在插入前生成，slug依赖它
func (r *authorRepository) NextID() string {
	return bson.NewObjectID().Hex()
}

func (r *authorRepository) Create(ctx context.Context, a *author.Author) error {
	model := &authorModel{
		ID:          newOrExisting(a.ID),
		UserID:      oid(a.UserID),
		Name:        a.Name,
		About:       a.About,
		Slug:        a.Slug,
		SocialLinks: a.SocialLinks,
		Books:       oids(a.Books),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, model); err != nil {
		if isDuplicateError(err) {
			return apperrors.New(apperrors.ErrCodeDuplicateEntry, "Author slug already exists")
		}
		return apperrors.Wrap(err, "failed to create author")
	}

	a.ID = model.ID.Hex()
	return nil
}

func (r *authorRepository) FindByID(ctx context.Context, id string) (*author.Author, error) {
	var model authorModel
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid(id)}).Decode(&model); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, apperrors.Wrap(err, "failed to query author")
	}
	return model.toEntity(), nil
}

// Update slug不随姓名变化
func (r *authorRepository) Update(ctx context.Context, a *author.Author) error {
	update := bson.M{"$set": bson.M{
		"name":         a.Name,
		"about":        a.About,
		"social_links": a.SocialLinks,
		"updated_at":   a.UpdatedAt,
	}}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid(a.ID)}, update)
	if err != nil {
		return apperrors.Wrap(err, "failed to update author")
	}
	if result.MatchedCount == 0 {
		return author.ErrAuthorNotFound
	}
	return nil
}

func (r *authorRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid(id)}); err != nil {
		return apperrors.Wrap(err, "failed to delete author")
	}
	return nil
}

func (r *authorRepository) AddBook(ctx context.Context, authorID, bookID string) error {
	update := bson.M{
		"$addToSet": bson.M{"books": oid(bookID)},
		"$set":      bson.M{"updated_at": time.Now()},
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid(authorID)}, update)
	if err != nil {
		return apperrors.Wrap(err, "failed to attach book to author")
	}
	if result.MatchedCount == 0 {
		return author.ErrAuthorNotFound
	}
	return nil
}

func (m *authorModel) toEntity() *author.Author {
	links := m.SocialLinks
	if links == nil {
		links = []string{}
	}
	return &author.Author{
		ID:          m.ID.Hex(),
		UserID:      m.UserID.Hex(),
		Name:        m.Name,
		About:       m.About,
		Slug:        m.Slug,
		SocialLinks: links,
		Books:       hexes(m.Books),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
