package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xiebiao/ebookstore/internal/domain/cart"
	apperrors "github.com/xiebiao/ebookstore/pkg/errors"
)

type cartModel struct {
	ID        bson.ObjectID   `bson:"_id"`
	UserID    bson.ObjectID   `bson:"user_id"`
	Items     []cartItemModel `bson:"items"`
	CreatedAt time.Time       `bson:"created_at"`
	UpdatedAt time.Time       `bson:"updated_at"`
}

type cartItemModel struct {
	Product  bson.ObjectID `bson:"product"`
	Quantity int           `bson:"quantity"`
}

type cartRepository struct {
	coll *mongo.Collection
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *mongo.Database) cart.Repository {
	return &cartRepository{coll: db.Collection(collCarts)}
}

func (r *cartRepository) FindByUserID(ctx context.Context, userID string) (*cart.Cart, error) {
	var model cartModel
	if err := r.coll.FindOne(ctx, bson.M{"user_id": oid(userID)}).Decode(&model); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cart.ErrCartNotFound
		}
		return nil, apperrors.Wrap(err, "failed to query cart")
	}
	return model.toEntity(), nil
}

// Save 按user_id upsert，created_at只在插入时写入
func (r *cartRepository) Save(ctx context.Context, c *cart.Cart) error {
	items := make([]cartItemModel, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, cartItemModel{Product: oid(it.ProductID), Quantity: it.Quantity})
	}

	update := bson.M{
		"$set":         bson.M{"items": items, "updated_at": c.UpdatedAt},
		"$setOnInsert": bson.M{"created_at": c.CreatedAt},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var model cartModel
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"user_id": oid(c.UserID)}, update, opts).Decode(&model); err != nil {
		return apperrors.Wrap(err, "failed to save cart")
	}

	c.ID = model.ID.Hex()
	c.CreatedAt = model.CreatedAt
	return nil
}

func (r *cartRepository) Clear(ctx context.Context, userID string) error {
	update := bson.M{"$set": bson.M{"items": []cartItemModel{}, "updated_at": time.Now()}}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"user_id": oid(userID)}, update); err != nil {
		return apperrors.Wrap(err, "failed to clear cart")
	}
	return nil
}

func (m *cartModel) toEntity() *cart.Cart {
	items := make([]cart.Item, 0, len(m.Items))
	for _, it := range m.Items {
		items = append(items, cart.Item{ProductID: it.Product.Hex(), Quantity: it.Quantity})
	}
	return &cart.Cart{
		ID:        m.ID.Hex(),
		UserID:    m.UserID.Hex(),
		Items:     items,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
