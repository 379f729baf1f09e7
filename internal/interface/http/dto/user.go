package dto

// LoginRequest HTTP登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50" example:"admin"`
	Password string `json:"password" binding:"required,min=6,max=72" example:"secret123"`
}

// RegisterRequest HTTP创建后台账号请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50" example:"admin"`
	Password string `json:"password" binding:"required,min=6,max=72" example:"secret123"`
	Name     string `json:"name" binding:"required,max=100" example:"管理员"`
}
