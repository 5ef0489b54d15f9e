package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/ebookstore/internal/application/book"
	"github.com/xiebiao/ebookstore/internal/domain/book"
	"github.com/xiebiao/ebookstore/internal/interface/http/dto"
	"github.com/xiebiao/ebookstore/internal/interface/http/middleware"
	"github.com/xiebiao/ebookstore/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	publishBookUseCase *appbook.PublishBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(publishBookUseCase *appbook.PublishBookUseCase) *BookHandler {
	return &BookHandler{
		publishBookUseCase: publishBookUseCase,
	}
}

// PublishBook 发布图书
// @Summary      发布图书
// @Description  作者发布图书，价格单位为分，cover为上传地址接口返回的key
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.PublishBookRequest true "图书信息"
// @Success      201 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      401 {object} response.Response "未登录"
// @Failure      403 {object} response.Response "不是作者或封面不属于当前用户"
// @Failure      422 {object} response.Response "价格不合法"
// @Router       /books [post]
func (h *BookHandler) PublishBook(c *gin.Context) {
	var req dto.PublishBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	b, err := h.publishBookUseCase.Execute(c.Request.Context(), appbook.PublishBookRequest{
		UserID:      middleware.MustGetUserID(c),
		Title:       req.Title,
		Genre:       req.Genre,
		Description: req.Description,
		Price:       book.Price{MRP: req.Price.MRP, Sale: req.Price.Sale},
		CoverKey:    req.Cover,
		Status:      book.Status(req.Status),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.NewBookResponse(b))
}
