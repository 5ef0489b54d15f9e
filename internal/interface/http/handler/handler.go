// Package handler HTTP处理器
// Handler只负责HTTP相关的事情：解析请求、调用应用层、返回响应
package handler

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/ebookstore/pkg/errors"
	"github.com/xiebiao/ebookstore/pkg/response"
)

// bindError 参数绑定或binding tag校验失败
func bindError(c *gin.Context, err error) {
	response.ErrorWithCode(c, apperrors.ErrCodeBindError, "Invalid request: "+err.Error())
}
