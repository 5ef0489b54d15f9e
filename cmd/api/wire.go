//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 运行 `wire gen ./cmd/api` 生成wire_gen.go。
// main.go的buildEngine是同一张依赖图的手写版本，两边的Provider都在providers.go。

package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"go.uber.org/zap"

	appauthor "github.com/xiebiao/ebookstore/internal/application/author"
	appbook "github.com/xiebiao/ebookstore/internal/application/book"
	appcart "github.com/xiebiao/ebookstore/internal/application/cart"
	apphistory "github.com/xiebiao/ebookstore/internal/application/history"
	apporder "github.com/xiebiao/ebookstore/internal/application/order"
	appreview "github.com/xiebiao/ebookstore/internal/application/review"
	appuser "github.com/xiebiao/ebookstore/internal/application/user"
	"github.com/xiebiao/ebookstore/internal/domain/book"
	"github.com/xiebiao/ebookstore/internal/domain/media"
	domainpayment "github.com/xiebiao/ebookstore/internal/domain/payment"
	"github.com/xiebiao/ebookstore/internal/domain/review"
	"github.com/xiebiao/ebookstore/internal/domain/user"
	"github.com/xiebiao/ebookstore/internal/infrastructure/blob"
	"github.com/xiebiao/ebookstore/internal/infrastructure/config"
	"github.com/xiebiao/ebookstore/internal/infrastructure/payment"
	"github.com/xiebiao/ebookstore/internal/infrastructure/persistence/mongo"
	"github.com/xiebiao/ebookstore/internal/interface/http/handler"
	"github.com/xiebiao/ebookstore/internal/interface/http/middleware"
	"github.com/xiebiao/ebookstore/internal/interface/http/router"
)

// infrastructureSet 连接、对象存储、支付网关、事件发布
var infrastructureSet = wire.NewSet(
	provideMongo,
	provideDatabase,
	provideRedis,
	provideSessionStore,
	provideJWTManager,
	provideBlobStore,
	wire.Bind(new(media.Store), new(*blob.Store)),
	providePaymentGateway,
	wire.Bind(new(domainpayment.Gateway), new(*payment.Gateway)),
	provideEventPublisher,
)

// repositorySet MongoDB仓储
var repositorySet = wire.NewSet(
	mongo.NewUserRepository,
	mongo.NewAuthorRepository,
	mongo.NewBookRepository,
	mongo.NewCartRepository,
	mongo.NewHistoryRepository,
	mongo.NewOrderRepository,
	mongo.NewReviewRepository,
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	user.NewService,
	book.NewService,
	review.NewService,
	provideRatingWriter,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewRefreshUseCase,
	appuser.NewProfileUseCase,
	appauthor.NewRegisterAuthorUseCase,
	appauthor.NewUpdateAuthorUseCase,
	appauthor.NewQueryUseCase,
	appbook.NewPublishBookUseCase,
	appcart.NewUseCase,
	apphistory.NewUseCase,
	apporder.NewUseCase,
	appreview.NewAddReviewUseCase,
	appreview.NewQueryUseCase,
	provideUploadURLUseCase,
)

// handlerSet HTTP处理器和中间件
var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewAuthorHandler,
	handler.NewBookHandler,
	handler.NewCartHandler,
	handler.NewHistoryHandler,
	handler.NewOrderHandler,
	handler.NewReviewHandler,
	handler.NewMediaHandler,
	middleware.NewAuthMiddleware,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)

// InitializeEngine 构造完整的Gin引擎
// cleanup按创建的逆序关闭事件发布、Redis和MongoDB
func InitializeEngine(ctx context.Context, cfg *config.Config, log *zap.Logger) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		handlerSet,
	)
	return nil, nil, nil
}
