package handler

import (
	"github.com/gin-gonic/gin"

	appreview "github.com/xiebiao/ebookstore/internal/application/review"
	"github.com/xiebiao/ebookstore/internal/interface/http/dto"
	"github.com/xiebiao/ebookstore/internal/interface/http/middleware"
	"github.com/xiebiao/ebookstore/pkg/response"
)

// ReviewHandler 评论HTTP处理器
type ReviewHandler struct {
	addReviewUseCase *appreview.AddReviewUseCase
	queryUseCase     *appreview.QueryUseCase
}

// NewReviewHandler 创建评论处理器
func NewReviewHandler(addReviewUseCase *appreview.AddReviewUseCase, queryUseCase *appreview.QueryUseCase) *ReviewHandler {
	return &ReviewHandler{
		addReviewUseCase: addReviewUseCase,
		queryUseCase:     queryUseCase,
	}
}

// AddReview 添加或更新评论
// @Summary      添加/更新评论
// @Description  每个用户对每本书只有一条评论；写入后同步重算图书平均评分
// @Tags         评论
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddReviewRequest true "评论"
// @Success      200 {object} response.Response{data=dto.MessageResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Failure      422 {object} response.Response "图书ID格式错误"
// @Failure      500 {object} response.Response "平均评分计算失败"
// @Router       /reviews [post]
func (h *ReviewHandler) AddReview(c *gin.Context) {
	var req dto.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	_, err := h.addReviewUseCase.Execute(c.Request.Context(), appreview.AddReviewRequest{
		UserID:  middleware.MustGetUserID(c),
		BookID:  req.BookID,
		Rating:  *req.Rating,
		Content: req.Content,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.MessageResponse{Message: "Review updated"})
}

// GetReview 当前用户对某本书的评论
// @Summary      我的评论
// @Tags         评论
// @Produce      json
// @Security     BearerAuth
// @Param        bookId path string true "图书ID"
// @Success      200 {object} response.Response{data=dto.ReviewResponse}
// @Failure      404 {object} response.Response "评论不存在"
// @Failure      422 {object} response.Response "图书ID格式错误"
// @Router       /reviews/{bookId} [get]
func (h *ReviewHandler) GetReview(c *gin.Context) {
	r, err := h.queryUseCase.GetReview(c.Request.Context(), middleware.MustGetUserID(c), c.Param("bookId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewReviewResponse(r))
}

// ListPublicReviews 公开评论列表
// @Summary      图书评论列表
// @Tags         评论
// @Produce      json
// @Param        bookId path string true "图书ID"
// @Success      200 {object} response.Response{data=dto.PublicReviewsResponse}
// @Failure      422 {object} response.Response "图书ID格式错误"
// @Router       /reviews/list/{bookId} [get]
func (h *ReviewHandler) ListPublicReviews(c *gin.Context) {
	list, err := h.queryUseCase.ListPublicReviews(c.Request.Context(), c.Param("bookId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewPublicReviewsResponse(list))
}
