package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xiebiao/ebookstore/internal/domain/history"
	apperrors "github.com/xiebiao/ebookstore/pkg/errors"
)

type historyModel struct {
	ID           bson.ObjectID    `bson:"_id"`
	Reader       bson.ObjectID    `bson:"reader"`
	Book         bson.ObjectID    `bson:"book"`
	LastLocation string           `bson:"last_location"`
	Highlights   []highlightModel `bson:"highlights"`
	CreatedAt    time.Time        `bson:"created_at"`
	UpdatedAt    time.Time        `bson:"updated_at"`
}

type highlightModel struct {
	Selection string `bson:"selection"`
	Fill      string `bson:"fill"`
}

type historyRepository struct {
	coll *mongo.Collection
}

// NewHistoryRepository 创建阅读记录仓储
func NewHistoryRepository(db *mongo.Database) history.Repository {
	return &historyRepository{coll: db.Collection(collHistories)}
}

func (r *historyRepository) Find(ctx context.Context, readerID, bookID string) (*history.History, error) {
	var model historyModel
	err := r.coll.FindOne(ctx, bson.M{"reader": oid(readerID), "book": oid(bookID)}).Decode(&model)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, history.ErrHistoryNotFound
		}
		return nil, apperrors.Wrap(err, "failed to query history")
	}
	return model.toEntity(), nil
}

// Save 按(reader, book) upsert
func (r *historyRepository) Save(ctx context.Context, h *history.History) error {
	highlights := make([]highlightModel, 0, len(h.Highlights))
	for _, hl := range h.Highlights {
		highlights = append(highlights, highlightModel{Selection: hl.Selection, Fill: hl.Fill})
	}

	filter := bson.M{"reader": oid(h.ReaderID), "book": oid(h.BookID)}
	update := bson.M{
		"$set": bson.M{
			"last_location": h.LastLocation,
			"highlights":    highlights,
			"updated_at":    h.UpdatedAt,
		},
		"$setOnInsert": bson.M{"created_at": h.CreatedAt},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var model historyModel
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&model); err != nil {
		return apperrors.Wrap(err, "failed to save history")
	}

	h.ID = model.ID.Hex()
	return nil
}

func (m *historyModel) toEntity() *history.History {
	highlights := make([]history.Highlight, 0, len(m.Highlights))
	for _, hl := range m.Highlights {
		highlights = append(highlights, history.Highlight{Selection: hl.Selection, Fill: hl.Fill})
	}
	return &history.History{
		ID:           m.ID.Hex(),
		ReaderID:     m.Reader.Hex(),
		BookID:       m.Book.Hex(),
		LastLocation: m.LastLocation,
		Highlights:   highlights,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
