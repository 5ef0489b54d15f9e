package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xiebiao/ebookstore/internal/domain/order"
	apperrors "github.com/xiebiao/ebookstore/pkg/errors"
)

// orderModel orders集合文档
// 订单由支付回调写入，本服务只读
type orderModel struct {
	ID               bson.ObjectID    `bson:"_id"`
	UserID           bson.ObjectID    `bson:"user_id"`
	StripeCustomerID string           `bson:"stripe_customer_id"`
	PaymentID        string           `bson:"payment_id"`
	TotalAmount      int64            `bson:"total_amount"`
	PaymentStatus    string           `bson:"payment_status"`
	OrderItems       []orderItemModel `bson:"order_items"`
	CreatedAt        time.Time        `bson:"created_at"`
}

// orderItemModel 订单明细，Price是下单时的单价快照
type orderItemModel struct {
	ID         bson.ObjectID `bson:"id"`
	Price      int64         `bson:"price"`
	Qty        int           `bson:"qty"`
	TotalPrice int64         `bson:"total_price"`
}

type orderRepository struct {
	coll *mongo.Collection
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *mongo.Database) order.Repository {
	return &orderRepository{coll: db.Collection(collOrders)}
}

func (r *orderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	var model orderModel
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid(id)}).Decode(&model); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "failed to query order")
	}
	return model.toEntity(), nil
}

// ListByUserID 按创建时间倒序
func (r *orderRepository) ListByUserID(ctx context.Context, userID string) ([]*order.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": oid(userID)}, opts)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to query orders")
	}

	var models []orderModel
	if err := cursor.All(ctx, &models); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode orders")
	}

	orders := make([]*order.Order, 0, len(models))
	for i := range models {
		orders = append(orders, models[i].toEntity())
	}
	return orders, nil
}

func (m *orderModel) toEntity() *order.Order {
	items := make([]order.Item, 0, len(m.OrderItems))
	for _, it := range m.OrderItems {
		items = append(items, order.Item{
			BookID:     it.ID.Hex(),
			Price:      it.Price,
			Qty:        it.Qty,
			TotalPrice: it.TotalPrice,
		})
	}
	return &order.Order{
		ID:               m.ID.Hex(),
		UserID:           m.UserID.Hex(),
		StripeCustomerID: m.StripeCustomerID,
		PaymentID:        m.PaymentID,
		TotalAmount:      m.TotalAmount,
		PaymentStatus:    m.PaymentStatus,
		Items:            items,
		CreatedAt:        m.CreatedAt,
	}
}
