package handler

import (
	"github.com/gin-gonic/gin"

	appmedia "github.com/xiebiao/ebookstore/internal/application/media"
	"github.com/xiebiao/ebookstore/internal/domain/media"
	"github.com/xiebiao/ebookstore/internal/interface/http/dto"
	"github.com/xiebiao/ebookstore/internal/interface/http/middleware"
	"github.com/xiebiao/ebookstore/pkg/response"
)

// MediaHandler 上传地址HTTP处理器
type MediaHandler struct {
	uploadURLUseCase *appmedia.UploadURLUseCase
}

// NewMediaHandler 创建上传处理器
func NewMediaHandler(uploadURLUseCase *appmedia.UploadURLUseCase) *MediaHandler {
	return &MediaHandler{uploadURLUseCase: uploadURLUseCase}
}

// UploadURL 申请预签名上传地址
// @Summary      申请上传地址
// @Description  客户端用返回的upload_url直接PUT到对象存储，再把key提交给发布图书或更新资料接口
// @Tags         上传
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.UploadURLRequest true "上传类型"
// @Success      200 {object} response.Response{data=appmedia.Upload}
// @Failure      422 {object} response.Response "类型不支持"
// @Router       /media/upload-url [post]
func (h *MediaHandler) UploadURL(c *gin.Context) {
	var req dto.UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	upload, err := h.uploadURLUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c), media.Kind(req.Kind), req.ContentType)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, upload)
}
