// Package router 注册HTTP路由和全局中间件
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/xiebiao/ebookstore/internal/infrastructure/config"
	"github.com/xiebiao/ebookstore/internal/interface/http/handler"
	"github.com/xiebiao/ebookstore/internal/interface/http/middleware"
	"github.com/xiebiao/ebookstore/pkg/response"
)

// Handlers 所有HTTP处理器
type Handlers struct {
	User    *handler.UserHandler
	Author  *handler.AuthorHandler
	Book    *handler.BookHandler
	Cart    *handler.CartHandler
	History *handler.HistoryHandler
	Order   *handler.OrderHandler
	Review  *handler.ReviewHandler
	Media   *handler.MediaHandler
}

// New 创建Gin引擎
// 中间件顺序：请求日志 → 指标 → Recovery → 错误渲染 → CORS → 认证 → Handler
// 日志和指标在最外层，记录的是错误渲染之后的最终状态码
func New(cfg *config.Config, log *zap.Logger, h Handlers, auth *middleware.AuthMiddleware) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(log, cfg.Log.SlowThreshold))
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics())
	}
	r.Use(
		middleware.Recovery(log),
		middleware.ErrorHandler(log),
	)
	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}
	r.Use(middleware.CORS(cfg.CORS))

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// 访问 /swagger/index.html 查看API文档，生产环境不开放
	if cfg.Server.Mode != "release" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAuth := auth.RequireAuth()

	v1 := r.Group("/api/v1")
	{
		users := v1.Group("/users")
		{
			users.POST("/register", h.User.Register)
			users.POST("/login", h.User.Login)
			users.POST("/refresh", h.User.Refresh)
			users.POST("/logout", requireAuth, h.User.Logout)
		}

		profile := v1.Group("/profile", requireAuth)
		{
			profile.GET("", h.User.GetProfile)
			profile.PUT("", h.User.UpdateProfile)
		}

		authors := v1.Group("/authors")
		{
			authors.POST("", requireAuth, h.Author.RegisterAuthor)
			authors.PATCH("", requireAuth, h.Author.UpdateAuthor)
			authors.GET("/:id", h.Author.GetAuthorDetails)
			authors.GET("/:id/books", requireAuth, h.Author.GetAuthorBooks)
		}

		v1.POST("/books", requireAuth, h.Book.PublishBook)
		v1.POST("/media/upload-url", requireAuth, h.Media.UploadURL)

		cart := v1.Group("/cart", requireAuth)
		{
			cart.GET("", h.Cart.GetCart)
			cart.POST("", h.Cart.UpdateCart)
			cart.POST("/clear", h.Cart.ClearCart)
		}

		history := v1.Group("/history", requireAuth)
		{
			history.GET("/:bookId", h.History.GetHistory)
			history.POST("", h.History.UpdateHistory)
		}

		orders := v1.Group("/orders", requireAuth)
		{
			orders.GET("", h.Order.ListOrders)
			orders.GET("/check-status/:bookId", h.Order.GetOrderStatus)
			orders.POST("/success", h.Order.GetOrderSuccess)
		}

		reviews := v1.Group("/reviews")
		{
			reviews.POST("", requireAuth, h.Review.AddReview)
			reviews.GET("/list/:bookId", h.Review.ListPublicReviews)
			reviews.GET("/:bookId", requireAuth, h.Review.GetReview)
		}
	}

	return r
}
