package dto

// NameRequest 图书类型/学科领域通用请求(只有名称)
type NameRequest struct {
	Name string `json:"name" binding:"required,max=100" example:"LKS"`
}

// CityRequest HTTP城市请求
type CityRequest struct {
	Name     string `json:"name" binding:"required,max=100" example:"Klaten"`
	Province string `json:"province" binding:"max=100" example:"Jawa Tengah"`
}

// PublisherRequest HTTP出版社请求
type PublisherRequest struct {
	Name    string `json:"name" binding:"required,max=100" example:"Viva Pakarindo"`
	Address string `json:"address" binding:"max=200" example:"Jl. Pemuda No. 10"`
	Phone   string `json:"phone" binding:"max=30" example:"0272-123456"`
	CityID  uint   `json:"city_id" example:"1"`
}

// ExpeditionRequest HTTP快递公司请求
type ExpeditionRequest struct {
	Name  string `json:"name" binding:"required,max=100" example:"JNE"`
	Phone string `json:"phone" binding:"max=30" example:"021-29278888"`
}

// ListMasterRequest HTTP基础资料列表请求
type ListMasterRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
	Keyword  string `form:"keyword" binding:"omitempty,max=100" example:"Klaten"`
}
