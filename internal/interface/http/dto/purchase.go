package dto

// PurchaseItemRequest HTTP采购明细项
// unit_price缺省表示取图书的采购参考价;
// 无论来源,单价都不得高于图书当前售价
type PurchaseItemRequest struct {
	BookID    uint   `json:"book_id" binding:"required" example:"1"`
	Quantity  int    `json:"quantity" binding:"required,min=1" example:"50"`
	UnitPrice *int64 `json:"unit_price" binding:"omitempty,min=0" example:"9000"`
}

// UnitPriceOrDefault 单价,未填返回-1(应用层按采购参考价处理)
func (r PurchaseItemRequest) UnitPriceOrDefault() int64 {
	if r.UnitPrice == nil {
		return -1
	}
	return *r.UnitPrice
}

// CreatePurchaseRequest HTTP创建采购单请求
type CreatePurchaseRequest struct {
	SupplierID   uint                  `json:"supplier_id" binding:"required" example:"1"`
	PurchaseDate string                `json:"purchase_date" binding:"required" example:"2024-03-01"`
	Note         string                `json:"note" binding:"max=200" example:"补货"`
	Items        []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdatePurchaseRequest HTTP编辑采购单请求
type UpdatePurchaseRequest struct {
	SupplierID   uint                  `json:"supplier_id" example:"1"`
	PurchaseDate string                `json:"purchase_date" binding:"omitempty" example:"2024-03-01"`
	Note         string                `json:"note" binding:"max=200" example:"补货"`
	Items        []PurchaseItemRequest `json:"items" binding:"omitempty,dive"`
}

// ListPurchaseRequest HTTP采购单列表请求
type ListPurchaseRequest struct {
	Page       int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
	SupplierID uint   `form:"supplier_id" example:"1"`
	Status     *int   `form:"status" binding:"omitempty,min=0,max=2" example:"0"`
	DateFrom   string `form:"date_from" binding:"omitempty" example:"2024-03-01"`
	DateTo     string `form:"date_to" binding:"omitempty" example:"2024-03-31"`
	Keyword    string `form:"keyword" binding:"omitempty,max=50" example:"PBL"`
}
