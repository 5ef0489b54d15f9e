package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/ebookstore/internal/application/order"
	"github.com/xiebiao/ebookstore/internal/domain/order"
	"github.com/xiebiao/ebookstore/internal/interface/http/dto"
	"github.com/xiebiao/ebookstore/internal/interface/http/middleware"
	"github.com/xiebiao/ebookstore/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	orderUseCase *apporder.UseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(orderUseCase *apporder.UseCase) *OrderHandler {
	return &OrderHandler{orderUseCase: orderUseCase}
}

// ListOrders 订单列表
// @Summary      订单列表
// @Description  按创建时间倒序
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.OrdersResponse}
// @Router       /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	views, err := h.orderUseCase.List(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewOrdersResponse(views))
}

// GetOrderStatus 是否已购买某本书
// @Summary      购买状态
// @Description  bookId格式错误时返回false
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        bookId path string true "图书ID"
// @Success      200 {object} response.Response{data=dto.OrderStatusResponse}
// @Router       /orders/check-status/{bookId} [get]
func (h *OrderHandler) GetOrderStatus(c *gin.Context) {
	status, err := h.orderUseCase.Status(c.Request.Context(), middleware.MustGetUserID(c), c.Param("bookId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.OrderStatusResponse{Status: status})
}

// GetOrderSuccess 支付成功页
// @Summary      支付成功
// @Description  根据Stripe结账会话查出订单
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.OrderSuccessRequest true "会话"
// @Success      200 {object} response.Response{data=dto.OrderSuccessResponse}
// @Failure      400 {object} response.Response "sessionId无效"
// @Failure      404 {object} response.Response "订单不存在"
// @Failure      500 {object} response.Response "会话无法关联订单"
// @Router       /orders/success [post]
func (h *OrderHandler) GetOrderSuccess(c *gin.Context) {
	var req dto.OrderSuccessRequest
	// session_id不是字符串时绑定失败，与缺失一样处理
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, order.ErrInvalidSessionID)
		return
	}

	view, err := h.orderUseCase.Success(c.Request.Context(), middleware.MustGetUserID(c), req.SessionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewOrderSuccessResponse(view))
}
