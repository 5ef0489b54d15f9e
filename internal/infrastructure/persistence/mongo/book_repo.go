package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/xiebiao/ebookstore/internal/domain/book"
	apperrors "github.com/xiebiao/ebookstore/pkg/errors"
)

// bookModel books集合文档
// 1. 价格使用int64存储"分"
// 2. average_rating只由评分聚合流程写入，没有评论时不存在
type bookModel struct {
	ID            bson.ObjectID `bson:"_id"`
	AuthorID      bson.ObjectID `bson:"author_id"`
	Title         string        `bson:"title"`
	Slug          string        `bson:"slug"`
	Genre         string        `bson:"genre"`
	Description   string        `bson:"description"`
	Price         priceModel    `bson:"price"`
	Cover         *assetModel   `bson:"cover,omitempty"`
	Status        string        `bson:"status"`
	AverageRating *float64      `bson:"average_rating,omitempty"`
	CreatedAt     time.Time     `bson:"created_at"`
	UpdatedAt     time.Time     `bson:"updated_at"`
}

type priceModel struct {
	MRP  int64 `bson:"mrp"`
	Sale int64 `bson:"sale"`
}

// bookRepository 图书仓储实现(MongoDB)
type bookRepository struct {
	coll *mongo.Collection
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *mongo.Database) book.Repository {
	return &bookRepository{coll: db.Collection(collBooks)}
}

func (r *bookRepository) NextID() string {
	return bson.NewObjectID().Hex()
}

// Create 创建图书,slug冲突返回ErrSlugDuplicate
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := &bookModel{
		ID:            newOrExisting(b.ID),
		AuthorID:      oid(b.AuthorID),
		Title:         b.Title,
		Slug:          b.Slug,
		Genre:         b.Genre,
		Description:   b.Description,
		Price:         priceModel{MRP: b.Price.MRP, Sale: b.Price.Sale},
		Cover:         toAssetModel(b.Cover),
		Status:        string(b.Status),
		AverageRating: b.AverageRating,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, model); err != nil {
		if isDuplicateError(err) {
			return book.ErrSlugDuplicate
		}
		return apperrors.Wrap(err, "failed to create book")
	}

	b.ID = model.ID.Hex()
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id string) (*book.Book, error) {
	var model bookModel
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid(id)}).Decode(&model); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "failed to query book")
	}
	return model.toEntity(), nil
}

// FindByIDs 批量查找图书($in)
func (r *bookRepository) FindByIDs(ctx context.Context, ids []string) ([]*book.Book, error) {
	if len(ids) == 0 {
		return []*book.Book{}, nil
	}

	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids(ids)}})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to query books")
	}

	var models []bookModel
	if err := cursor.All(ctx, &models); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode books")
	}

	books := make([]*book.Book, 0, len(models))
	for i := range models {
		books = append(books, models[i].toEntity())
	}
	return books, nil
}

// UpdateAverageRating 写入平均评分
func (r *bookRepository) UpdateAverageRating(ctx context.Context, id string, average float64) error {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid(id)},
		bson.M{"$set": bson.M{"average_rating": average}},
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update average rating")
	}
	if result.MatchedCount == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

func (m *bookModel) toEntity() *book.Book {
	return &book.Book{
		ID:            m.ID.Hex(),
		AuthorID:      m.AuthorID.Hex(),
		Title:         m.Title,
		Slug:          m.Slug,
		Genre:         m.Genre,
		Description:   m.Description,
		Price:         book.Price{MRP: m.Price.MRP, Sale: m.Price.Sale},
		Cover:         m.Cover.toEntity(),
		Status:        book.Status(m.Status),
		AverageRating: m.AverageRating,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
