package main

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"

	appmedia "github.com/xiebiao/ebookstore/internal/application/media"
	"github.com/xiebiao/ebookstore/internal/domain/book"
	"github.com/xiebiao/ebookstore/internal/domain/review"
	"github.com/xiebiao/ebookstore/internal/infrastructure/blob"
	"github.com/xiebiao/ebookstore/internal/infrastructure/config"
	"github.com/xiebiao/ebookstore/internal/infrastructure/messaging"
	"github.com/xiebiao/ebookstore/internal/infrastructure/payment"
	"github.com/xiebiao/ebookstore/internal/infrastructure/persistence/mongo"
	"github.com/xiebiao/ebookstore/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/ebookstore/pkg/jwt"
	"github.com/xiebiao/ebookstore/pkg/mq"
)

// 自定义Provider
// main.go手动组装和wire.go共用这里的函数，参数需要从Config中提取的依赖都在这里

const closeTimeout = 5 * time.Second

// provideMongo 连接MongoDB并创建索引
func provideMongo(ctx context.Context, cfg *config.Config, log *zap.Logger) (*mongo.DB, func(), error) {
	db, err := mongo.NewDB(ctx, cfg.Mongo, log)
	if err != nil {
		return nil, nil, err
	}
	if err := db.EnsureIndexes(ctx); err != nil {
		_ = db.Close(context.Background())
		return nil, nil, err
	}

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		if err := db.Close(ctx); err != nil {
			log.Warn("close mongo failed", zap.Error(err))
		}
	}
	return db, cleanup, nil
}

func provideDatabase(db *mongo.DB) *mongodriver.Database {
	return db.Database()
}

// provideRedis 连接Redis
func provideRedis(ctx context.Context, cfg *config.Config, log *zap.Logger) (*goredis.Client, func(), error) {
	client, err := redis.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := client.Close(); err != nil {
			log.Warn("close redis failed", zap.Error(err))
		}
	}
	return client, cleanup, nil
}

func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

func provideBlobStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (*blob.Store, error) {
	return blob.NewStore(ctx, cfg.Blob, log)
}

func providePaymentGateway(cfg *config.Config, log *zap.Logger) *payment.Gateway {
	return payment.NewGateway(cfg.Payment, log)
}

// provideEventPublisher 开启消息队列时发布到RabbitMQ，否则只记录日志
func provideEventPublisher(cfg *config.Config, log *zap.Logger) (review.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		return messaging.NewNoopPublisher(log), func() {}, nil
	}

	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := publisher.Close(); err != nil {
			log.Warn("close mq publisher failed", zap.Error(err))
		}
	}
	return messaging.NewEventPublisher(publisher), cleanup, nil
}

// provideRatingWriter 评分聚合结果写回图书集合
func provideRatingWriter(books book.Repository) review.RatingWriter {
	return books
}

func provideUploadURLUseCase(store *blob.Store, cfg *config.Config) *appmedia.UploadURLUseCase {
	return appmedia.NewUploadURLUseCase(store, cfg.Blob.PresignTTL)
}
