package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/zap"

	"github.com/xiebiao/ebookstore/internal/infrastructure/config"
)

// 集合名称
const (
	collUsers     = "users"
	collAuthors   = "authors"
	collBooks     = "books"
	collCarts     = "carts"
	collHistories = "histories"
	collOrders    = "orders"
	collReviews   = "reviews"
)

// DB MongoDB连接
// 设计说明：
// 1. 由cmd/api创建并注入各个仓储，不使用包级单例
// 2. 连接池参数（MaxPoolSize、ConnectTimeout）来自配置
// 3. 启动时创建唯一索引（邮箱、slug、购物车用户、阅读记录、评论）
type DB struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

// NewDB 连接MongoDB并测试可用性
func NewDB(ctx context.Context, cfg config.MongoConfig, logger *zap.Logger) (*DB, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout)
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo failed: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo failed: %w", err)
	}

	logger.Info("mongo connected", zap.String("database", cfg.Database))

	return &DB{
		client: client,
		db:     client.Database(cfg.Database),
		logger: logger,
	}, nil
}

// Database 返回业务数据库
func (d *DB) Database() *mongo.Database {
	return d.db
}

// Close 断开连接
func (d *DB) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// EnsureIndexes 创建索引（幂等）
// 学习要点：唯一性由索引保证，仓储只需要把duplicate key错误转换为业务错误
func (d *DB) EnsureIndexes(ctx context.Context) error {
	unique := func(keys bson.D) mongo.IndexModel {
		return mongo.IndexModel{Keys: keys, Options: options.Index().SetUnique(true)}
	}

	indexes := map[string][]mongo.IndexModel{
		collUsers:   {unique(bson.D{{Key: "email", Value: 1}})},
		collAuthors: {unique(bson.D{{Key: "slug", Value: 1}}), {Keys: bson.D{{Key: "user_id", Value: 1}}}},
		collBooks:   {unique(bson.D{{Key: "slug", Value: 1}}), {Keys: bson.D{{Key: "author_id", Value: 1}}}},
		collCarts:   {unique(bson.D{{Key: "user_id", Value: 1}})},
		collHistories: {
			unique(bson.D{{Key: "reader", Value: 1}, {Key: "book", Value: 1}}),
		},
		collOrders: {{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}}},
		collReviews: {
			unique(bson.D{{Key: "book", Value: 1}, {Key: "user", Value: 1}}),
		},
	}

	for coll, models := range indexes {
		if _, err := d.db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s failed: %w", coll, err)
		}
	}

	d.logger.Info("mongo indexes ensured")
	return nil
}
