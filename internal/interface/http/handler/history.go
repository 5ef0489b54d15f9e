package handler

import (
	"github.com/gin-gonic/gin"

	apphistory "github.com/xiebiao/ebookstore/internal/application/history"
	"github.com/xiebiao/ebookstore/internal/interface/http/dto"
	"github.com/xiebiao/ebookstore/internal/interface/http/middleware"
	"github.com/xiebiao/ebookstore/pkg/response"
)

// HistoryHandler 阅读记录HTTP处理器
type HistoryHandler struct {
	historyUseCase *apphistory.UseCase
}

// NewHistoryHandler 创建阅读记录处理器
func NewHistoryHandler(historyUseCase *apphistory.UseCase) *HistoryHandler {
	return &HistoryHandler{historyUseCase: historyUseCase}
}

// UpdateHistory 更新阅读进度和高亮
// @Summary      更新阅读记录
// @Description  remove=true时移除selection相同的高亮，否则追加
// @Tags         阅读记录
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.UpdateHistoryRequest true "阅读记录"
// @Success      200 {object} response.Response{data=dto.MessageResponse}
// @Failure      422 {object} response.Response "图书ID格式错误"
// @Router       /history [post]
func (h *HistoryHandler) UpdateHistory(c *gin.Context) {
	var req dto.UpdateHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	err := h.historyUseCase.Update(c.Request.Context(), apphistory.UpdateRequest{
		ReaderID:     middleware.MustGetUserID(c),
		BookID:       req.Book,
		LastLocation: req.LastLocation,
		Highlights:   req.ToHighlights(),
		Remove:       req.Remove,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.MessageResponse{Message: "History updated"})
}

// GetHistory 查询阅读记录
// @Summary      查询阅读记录
// @Tags         阅读记录
// @Produce      json
// @Security     BearerAuth
// @Param        bookId path string true "图书ID"
// @Success      200 {object} response.Response{data=dto.HistoryResponse}
// @Failure      404 {object} response.Response "阅读记录不存在"
// @Failure      422 {object} response.Response "图书ID格式错误"
// @Router       /history/{bookId} [get]
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	history, err := h.historyUseCase.Get(c.Request.Context(), middleware.MustGetUserID(c), c.Param("bookId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewHistoryResponse(history))
}
