package dto

// UploadURLRequest 申请上传地址
type UploadURLRequest struct {
	Kind        string `json:"kind" binding:"required,oneof=covers avatars" example:"covers"`
	ContentType string `json:"content_type" binding:"required" example:"image/png"`
}
