package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xiebiao/ebookstore/internal/domain/review"
	apperrors "github.com/xiebiao/ebookstore/pkg/errors"
)

type reviewModel struct {
	ID        bson.ObjectID `bson:"_id"`
	Book      bson.ObjectID `bson:"book"`
	User      bson.ObjectID `bson:"user"`
	Content   string        `bson:"content"`
	Rating    float64       `bson:"rating"`
	CreatedAt time.Time     `bson:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at"`
}

// summaryModel $group阶段的输出
type summaryModel struct {
	Average float64 `bson:"average"`
	Count   int64   `bson:"count"`
}

type reviewRepository struct {
	coll *mongo.Collection
}

// NewReviewRepository 创建评论仓储
func NewReviewRepository(db *mongo.Database) review.Repository {
	return &reviewRepository{coll: db.Collection(collReviews)}
}

// Upsert 以(book, user)为键写入评论
// 学习要点：
// 1. 一次UpdateOne完成"存在则更新、不存在则插入"，不需要先查询
// 2. created_at放在$setOnInsert里，覆盖评论时保持首次评论时间
func (r *reviewRepository) Upsert(ctx context.Context, rv *review.Review) error {
	filter := bson.M{"book": oid(rv.BookID), "user": oid(rv.UserID)}
	update := bson.M{
		"$set": bson.M{
			"content":    rv.Content,
			"rating":     rv.Rating,
			"updated_at": rv.UpdatedAt,
		},
		"$setOnInsert": bson.M{"created_at": rv.CreatedAt},
	}

	result, err := r.coll.UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert review")
	}

	if id, ok := result.UpsertedID.(bson.ObjectID); ok {
		rv.ID = id.Hex()
	}
	return nil
}

// AverageRating 一次聚合得到平均分和评论数
func (r *reviewRepository) AverageRating(ctx context.Context, bookID string) (review.Summary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"book": oid(bookID)}}},
		{{Key: "$group", Value: bson.M{
			"_id":     "$book",
			"average": bson.M{"$avg": "$rating"},
			"count":   bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return review.Summary{}, apperrors.Wrap(err, "failed to aggregate reviews")
	}

	var rows []summaryModel
	if err := cursor.All(ctx, &rows); err != nil {
		return review.Summary{}, apperrors.Wrap(err, "failed to decode review summary")
	}
	if len(rows) == 0 {
		return review.Summary{}, nil
	}

	return review.Summary{Average: rows[0].Average, Count: rows[0].Count}, nil
}

func (r *reviewRepository) FindByBookAndUser(ctx context.Context, bookID, userID string) (*review.Review, error) {
	var model reviewModel
	err := r.coll.FindOne(ctx, bson.M{"book": oid(bookID), "user": oid(userID)}).Decode(&model)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, review.ErrReviewNotFound
		}
		return nil, apperrors.Wrap(err, "failed to query review")
	}
	return model.toEntity(), nil
}

// ListByBook 按创建时间倒序
func (r *reviewRepository) ListByBook(ctx context.Context, bookID string) ([]*review.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"book": oid(bookID)}, opts)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to query reviews")
	}

	var models []reviewModel
	if err := cursor.All(ctx, &models); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode reviews")
	}

	reviews := make([]*review.Review, 0, len(models))
	for i := range models {
		reviews = append(reviews, models[i].toEntity())
	}
	return reviews, nil
}

func (m *reviewModel) toEntity() *review.Review {
	return &review.Review{
		ID:        m.ID.Hex(),
		BookID:    m.Book.Hex(),
		UserID:    m.User.Hex(),
		Content:   m.Content,
		Rating:    m.Rating,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
