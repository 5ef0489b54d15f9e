package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/xiebiao/ebookstore/docs"
	appauthor "github.com/xiebiao/ebookstore/internal/application/author"
	appbook "github.com/xiebiao/ebookstore/internal/application/book"
	appcart "github.com/xiebiao/ebookstore/internal/application/cart"
	apphistory "github.com/xiebiao/ebookstore/internal/application/history"
	apporder "github.com/xiebiao/ebookstore/internal/application/order"
	appreview "github.com/xiebiao/ebookstore/internal/application/review"
	appuser "github.com/xiebiao/ebookstore/internal/application/user"
	"github.com/xiebiao/ebookstore/internal/domain/book"
	"github.com/xiebiao/ebookstore/internal/domain/review"
	"github.com/xiebiao/ebookstore/internal/domain/user"
	"github.com/xiebiao/ebookstore/internal/infrastructure/config"
	"github.com/xiebiao/ebookstore/internal/infrastructure/logger"
	"github.com/xiebiao/ebookstore/internal/infrastructure/persistence/mongo"
	"github.com/xiebiao/ebookstore/internal/interface/http/handler"
	"github.com/xiebiao/ebookstore/internal/interface/http/middleware"
	"github.com/xiebiao/ebookstore/internal/interface/http/router"
	"github.com/xiebiao/ebookstore/pkg/metrics"
	"github.com/xiebiao/ebookstore/pkg/tracing"
)

// @title           eBookstore API
// @version         1.0
// @description     电子书商店后端：作者、图书、购物车、订单、阅读记录和评分聚合
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
// @description     Bearer {access_token}
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	// 2. 初始化日志
	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	zlog.Info("config loaded",
		zap.Int("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("mongo_database", cfg.Mongo.Database),
		zap.String("redis", cfg.Redis.Addr()),
		zap.Bool("mq_enabled", cfg.MQ.Enabled),
	)

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("server exited", zap.Error(err))
	}
}

// run 组装依赖并阻塞到收到退出信号
func run(cfg *config.Config, zlog *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.Enabled {
		metrics.InitMetrics()
	}

	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		if err != nil {
			return err
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
			defer cancel()
			if err := shutdown(sctx); err != nil {
				zlog.Warn("flush tracer failed", zap.Error(err))
			}
		}()
	}

	engine, cleanup, err := buildEngine(ctx, cfg, zlog)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	// 优雅关闭：停止接收新请求，等待处理中的请求完成
	zlog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildEngine 手动依赖注入
// 依赖链：Repository ← Service ← UseCase ← Handler
// wire.go里的InitializeEngine声明了同样的依赖图
func buildEngine(ctx context.Context, cfg *config.Config, zlog *zap.Logger) (*gin.Engine, func(), error) {
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}
	fail := func(err error) (*gin.Engine, func(), error) {
		cleanup()
		return nil, nil, err
	}

	// 基础设施层
	db, closeMongo, err := provideMongo(ctx, cfg, zlog)
	if err != nil {
		return fail(err)
	}
	cleanups = append(cleanups, closeMongo)

	redisClient, closeRedis, err := provideRedis(ctx, cfg, zlog)
	if err != nil {
		return fail(err)
	}
	cleanups = append(cleanups, closeRedis)

	store, err := provideBlobStore(ctx, cfg, zlog)
	if err != nil {
		return fail(err)
	}

	events, closeEvents, err := provideEventPublisher(cfg, zlog)
	if err != nil {
		return fail(err)
	}
	cleanups = append(cleanups, closeEvents)

	database := provideDatabase(db)
	userRepo := mongo.NewUserRepository(database)
	authorRepo := mongo.NewAuthorRepository(database)
	bookRepo := mongo.NewBookRepository(database)
	cartRepo := mongo.NewCartRepository(database)
	historyRepo := mongo.NewHistoryRepository(database)
	orderRepo := mongo.NewOrderRepository(database)
	reviewRepo := mongo.NewReviewRepository(database)
	sessionStore := provideSessionStore(redisClient)
	jwtManager := provideJWTManager(cfg)
	gateway := providePaymentGateway(cfg, zlog)

	// 领域层
	userService := user.NewService(userRepo)
	bookService := book.NewService(bookRepo)
	reviewService := review.NewService(reviewRepo, provideRatingWriter(bookRepo))

	// 接口层
	handlers := router.Handlers{
		User: handler.NewUserHandler(
			appuser.NewRegisterUseCase(userService),
			appuser.NewLoginUseCase(userService, jwtManager, sessionStore, zlog),
			appuser.NewLogoutUseCase(sessionStore, jwtManager),
			appuser.NewRefreshUseCase(userRepo, jwtManager, sessionStore),
			appuser.NewProfileUseCase(userRepo, store, zlog),
		),
		Author: handler.NewAuthorHandler(
			appauthor.NewRegisterAuthorUseCase(userRepo, authorRepo, zlog),
			appauthor.NewUpdateAuthorUseCase(userRepo, authorRepo),
			appauthor.NewQueryUseCase(authorRepo, bookRepo),
		),
		Book:    handler.NewBookHandler(appbook.NewPublishBookUseCase(bookService, userRepo, authorRepo, store)),
		Cart:    handler.NewCartHandler(appcart.NewUseCase(cartRepo, bookRepo)),
		History: handler.NewHistoryHandler(apphistory.NewUseCase(historyRepo)),
		Order:   handler.NewOrderHandler(apporder.NewUseCase(orderRepo, bookRepo, userRepo, gateway)),
		Review: handler.NewReviewHandler(
			appreview.NewAddReviewUseCase(reviewService, events, zlog),
			appreview.NewQueryUseCase(reviewService, userRepo),
		),
		Media: handler.NewMediaHandler(provideUploadURLUseCase(store, cfg)),
	}
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	return router.New(cfg, zlog, handlers, authMiddleware), cleanup, nil
}
