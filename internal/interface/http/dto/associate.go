package dto

// SaveAssociateRequest HTTP录入/修改业务员请求
type SaveAssociateRequest struct {
	Name        string `json:"name" binding:"required,max=100" example:"Budi Santoso"`
	Address     string `json:"address" binding:"max=200" example:"Jl. Merdeka No. 5"`
	Phone       string `json:"phone" binding:"max=30" example:"081234567890"`
	CityID      uint   `json:"city_id" example:"1"`
	Discount    int    `json:"discount" binding:"min=0,max=100" example:"10"`
	PaymentType string `json:"payment_type" binding:"required,oneof=T K" example:"K"`
}

// ListAssociatesRequest HTTP业务员列表请求
type ListAssociatesRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
	Keyword  string `form:"keyword" binding:"omitempty,max=100" example:"Budi"`
	CityID   uint   `form:"city_id" example:"1"`
}
