package dto

// RegisterRequest HTTP层注册请求
// 说明：HTTP层的DTO，包含参数验证tag
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"reader@example.com"`
	Password string `json:"password" binding:"required,min=8,max=20" example:"secret123"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"reader@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// RefreshRequest 刷新Access Token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest 更新资料
// avatar是上传地址接口返回的key
type UpdateProfileRequest struct {
	Name   string `json:"name" binding:"required,max=100" example:"Jane Reader"`
	Avatar string `json:"avatar" binding:"omitempty,max=300" example:"avatars/6560f1c2a9b3e4d5f6a7b8c9/1f0c.png"`
}
