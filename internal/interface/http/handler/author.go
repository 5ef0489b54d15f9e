package handler

import (
	"github.com/gin-gonic/gin"

	appauthor "github.com/xiebiao/ebookstore/internal/application/author"
	"github.com/xiebiao/ebookstore/internal/interface/http/dto"
	"github.com/xiebiao/ebookstore/internal/interface/http/middleware"
	"github.com/xiebiao/ebookstore/pkg/response"
)

// AuthorHandler 作者HTTP处理器
type AuthorHandler struct {
	registerUseCase *appauthor.RegisterAuthorUseCase
	updateUseCase   *appauthor.UpdateAuthorUseCase
	queryUseCase    *appauthor.QueryUseCase
}

// NewAuthorHandler 创建作者处理器
func NewAuthorHandler(
	registerUseCase *appauthor.RegisterAuthorUseCase,
	updateUseCase *appauthor.UpdateAuthorUseCase,
	queryUseCase *appauthor.QueryUseCase,
) *AuthorHandler {
	return &AuthorHandler{
		registerUseCase: registerUseCase,
		updateUseCase:   updateUseCase,
		queryUseCase:    queryUseCase,
	}
}

func (h *AuthorHandler) request(c *gin.Context) (appauthor.AuthorRequest, bool) {
	var req dto.AuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return appauthor.AuthorRequest{}, false
	}
	return appauthor.AuthorRequest{
		UserID:      middleware.MustGetUserID(c),
		Name:        req.Name,
		About:       req.About,
		SocialLinks: req.SocialLinks,
	}, true
}

// RegisterAuthor 注册为作者
// @Summary      注册为作者
// @Description  用户必须已完成注册(signed_up)
// @Tags         作者
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AuthorRequest true "作者资料"
// @Success      200 {object} response.Response{data=dto.RegisterAuthorResponse}
// @Failure      404 {object} response.Response "用户未完成注册"
// @Failure      409 {object} response.Response "已经是作者"
// @Router       /authors [post]
func (h *AuthorHandler) RegisterAuthor(c *gin.Context) {
	req, ok := h.request(c)
	if !ok {
		return
	}

	profile, err := h.registerUseCase.Execute(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.RegisterAuthorResponse{
		Message: "Thanks for registering as an author.",
		User:    *profile,
	})
}

// UpdateAuthor 更新作者资料
// @Summary      更新作者资料
// @Tags         作者
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AuthorRequest true "作者资料"
// @Success      200 {object} response.Response{data=dto.AuthorResponse}
// @Failure      403 {object} response.Response "不是作者"
// @Router       /authors [patch]
func (h *AuthorHandler) UpdateAuthor(c *gin.Context) {
	req, ok := h.request(c)
	if !ok {
		return
	}

	a, err := h.updateUseCase.Execute(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewAuthorResponse(a))
}

// GetAuthorDetails 作者详情
// @Summary      作者详情
// @Tags         作者
// @Produce      json
// @Param        id path string true "作者ID"
// @Success      200 {object} response.Response{data=dto.AuthorDetailsResponse}
// @Failure      404 {object} response.Response "作者不存在"
// @Failure      422 {object} response.Response "ID格式错误"
// @Router       /authors/{id} [get]
func (h *AuthorHandler) GetAuthorDetails(c *gin.Context) {
	details, err := h.queryUseCase.GetDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewAuthorDetailsResponse(details))
}

// GetAuthorBooks 作者的图书列表
// @Summary      作者图书
// @Tags         作者
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "作者ID"
// @Success      200 {object} response.Response{data=dto.AuthorBooksResponse}
// @Failure      403 {object} response.Response "作者不存在"
// @Router       /authors/{id}/books [get]
func (h *AuthorHandler) GetAuthorBooks(c *gin.Context) {
	books, err := h.queryUseCase.GetBooks(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewAuthorBooksResponse(books))
}
