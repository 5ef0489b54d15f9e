package handler

import (
	"github.com/gin-gonic/gin"

	appcart "github.com/xiebiao/ebookstore/internal/application/cart"
	"github.com/xiebiao/ebookstore/internal/interface/http/dto"
	"github.com/xiebiao/ebookstore/internal/interface/http/middleware"
	"github.com/xiebiao/ebookstore/pkg/response"
)

// CartHandler 购物车HTTP处理器
type CartHandler struct {
	cartUseCase *appcart.UseCase
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(cartUseCase *appcart.UseCase) *CartHandler {
	return &CartHandler{cartUseCase: cartUseCase}
}

// GetCart 查询购物车
// @Summary      查询购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.CartResponse}
// @Failure      404 {object} response.Response "购物车不存在"
// @Router       /cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	view, err := h.cartUseCase.Get(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewCartResponse(view))
}

// UpdateCart 更新购物车
// @Summary      更新购物车
// @Description  已有商品数量被替换，quantity<=0时移除
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.UpdateCartRequest true "条目"
// @Success      200 {object} response.Response{data=dto.UpdateCartResponse}
// @Failure      422 {object} response.Response "商品ID格式错误"
// @Router       /cart [post]
func (h *CartHandler) UpdateCart(c *gin.Context) {
	var req dto.UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	id, err := h.cartUseCase.Update(c.Request.Context(), middleware.MustGetUserID(c), req.ToItems())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.UpdateCartResponse{Cart: id})
}

// ClearCart 清空购物车
// @Summary      清空购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.MessageResponse}
// @Router       /cart/clear [post]
func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.cartUseCase.Clear(c.Request.Context(), middleware.MustGetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.MessageResponse{Message: "Cart cleared"})
}
