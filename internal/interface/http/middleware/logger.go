package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/xiebiao/ebookstore/internal/infrastructure/logger"
	"github.com/xiebiao/ebookstore/pkg/tracing"
)

const (
	headerRequestID = "X-Request-ID"
	ctxKeyRequestID = "request_id"
	tracerName      = "ebookstore/http"
)

// RequestLogger 请求日志中间件
// 1. 生成或沿用X-Request-ID
// 2. 为每个请求开启一个span，trace_id写入日志
// 3. 带request_id的子Logger放入请求Context，后续Handler和中间件共用
// 4. 超过slowThreshold的请求记录Warn
func RequestLogger(log *zap.Logger, slowThreshold time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(headerRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ctxKeyRequestID, requestID)
		c.Header(headerRequestID, requestID)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		ctx, span := tracing.StartSpan(c.Request.Context(), tracerName, c.Request.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		reqLogger := log.With(zap.String("request_id", requestID))
		if traceID := tracing.ExtractTraceID(ctx); traceID != "" {
			reqLogger = reqLogger.With(zap.String("trace_id", traceID))
		}
		c.Request = c.Request.WithContext(logger.WithContext(ctx, reqLogger))

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		status := c.Writer.Status()
		span.SetAttributes(
			attribute.String("http.route", route),
			attribute.Int("http.status_code", status),
		)

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case slowThreshold > 0 && latency > slowThreshold:
			reqLogger.Warn("slow request", fields...)
		case status >= 500:
			reqLogger.Error("request", fields...)
		default:
			reqLogger.Info("request", fields...)
		}
	}
}

// GetRequestID 当前请求ID
func GetRequestID(c *gin.Context) string {
	return c.GetString(ctxKeyRequestID)
}
