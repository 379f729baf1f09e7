package dto

// SaveBookRequest HTTP录入/修改图书请求
// 库存字段只在录入时生效(初始库存);修改图书不改库存,
// 库存变更只发生在销售/采购流程里
type SaveBookRequest struct {
	Code            string `json:"code" binding:"required,max=50" example:"LKS-MAT-7A"`
	Title           string `json:"title" binding:"required,max=200" example:"LKS Matematika Kelas 7A"`
	CategoryCode    string `json:"category_code" binding:"required,max=20" example:"LKS"`
	TypeID          uint   `json:"type_id" binding:"required" example:"1"`
	FieldOfStudyID  uint   `json:"field_of_study_id" binding:"required" example:"2"`
	Level           string `json:"level" binding:"max=20" example:"7"`
	Curriculum      string `json:"curriculum" binding:"max=50" example:"Merdeka"`
	Brand           string `json:"brand" binding:"max=100" example:"Viva Pakarindo"`
	Price           int64  `json:"price" binding:"min=0" example:"15000"`
	PurchasingPrice int64  `json:"purchasing_price" binding:"min=0" example:"9000"`
	Stock           int    `json:"stock" binding:"min=0" example:"100"`
}

// BookResponse HTTP图书响应
type BookResponse struct {
	ID              uint   `json:"id" example:"1"`
	Code            string `json:"code" example:"LKS-MAT-7A"`
	Title           string `json:"title" example:"LKS Matematika Kelas 7A"`
	CategoryCode    string `json:"category_code" example:"LKS"`
	TypeID          uint   `json:"type_id" example:"1"`
	FieldOfStudyID  uint   `json:"field_of_study_id" example:"2"`
	Level           string `json:"level" example:"7"`
	Curriculum      string `json:"curriculum" example:"Merdeka"`
	Brand           string `json:"brand" example:"Viva Pakarindo"`
	Price           int64  `json:"price" example:"15000"`
	PurchasingPrice int64  `json:"purchasing_price" example:"9000"`
	Stock           int    `json:"stock" example:"100"`
	CreatedAt       string `json:"created_at" example:"2024-03-01 10:30:00"`
	UpdatedAt       string `json:"updated_at" example:"2024-03-01 10:30:00"`
}

// ListBooksRequest HTTP图书列表请求
type ListBooksRequest struct {
	Page         int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize     int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
	Keyword      string `form:"keyword" binding:"omitempty,max=100" example:"Matematika"`
	CategoryCode string `form:"category_code" binding:"omitempty,max=20" example:"LKS"`
	TypeID       uint   `form:"type_id" example:"1"`
	SortBy       string `form:"sort_by" binding:"omitempty,oneof=price_asc price_desc created_at_desc" example:"created_at_desc"`
}

// StockResponse HTTP库存查询响应
type StockResponse struct {
	BookID uint `json:"book_id" example:"1"`
	Stock  int  `json:"stock" example:"100"`
}
