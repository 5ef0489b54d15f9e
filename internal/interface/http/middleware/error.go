package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xiebiao/ebookstore/internal/infrastructure/logger"
	apperrors "github.com/xiebiao/ebookstore/pkg/errors"
	"github.com/xiebiao/ebookstore/pkg/jwt"
	"github.com/xiebiao/ebookstore/pkg/response"
)

// ErrorHandler 统一渲染Handler通过c.Error上报的错误
// 1. Token校验错误 → 401
// 2. 其余错误 → 500，message为错误信息
// 客户端错误已经由response.Error直接写回，这里只处理尚未写响应的情况
func ErrorHandler(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		if jwt.IsTokenError(err) {
			appErr := apperrors.GetAppError(err)
			if appErr.Code != apperrors.ErrCodeTokenExpired {
				appErr = apperrors.ErrInvalidToken
			}
			c.JSON(http.StatusUnauthorized, response.Response{Code: appErr.Code, Message: appErr.Message})
			return
		}

		appErr := apperrors.GetAppError(err)
		logger.FromContext(c.Request.Context(), log).Error("request failed",
			zap.Int("code", appErr.Code),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, response.Response{Code: appErr.Code, Message: appErr.Message})
	}
}

// Recovery panic转为500，走ErrorHandler相同的响应格式
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.FromContext(c.Request.Context(), log).Error("panic recovered",
					zap.Any("panic", r),
					zap.Stack("stack"),
				)
				if c.Writer.Written() {
					c.Abort()
					return
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
					Code:    apperrors.ErrCodeInternal,
					Message: fmt.Sprint(r),
				})
			}
		}()
		c.Next()
	}
}
