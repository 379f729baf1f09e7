package dto

import "time"

// DateLayout 日期字段的统一格式
const DateLayout = "2006-01-02"

// SalesItemRequest HTTP销售明细项
// 数量超过库存不报错:提交时按现有库存收敛。
// discount不传时取业务员的默认折扣(显式传0表示不打折)
type SalesItemRequest struct {
	BookID    uint  `json:"book_id" binding:"required" example:"1"`
	Quantity  int   `json:"quantity" binding:"required,min=1" example:"3"`
	Promotion int64 `json:"promotion" binding:"min=0" example:"1000"`
	Discount  *int  `json:"discount" binding:"omitempty,min=0,max=100" example:"10"`
}

// DiscountOrDefault 折扣缺省标记:未传返回-1,由用例层回填业务员默认折扣
func (r SalesItemRequest) DiscountOrDefault() int {
	if r.Discount == nil {
		return -1
	}
	return *r.Discount
}

// CreateSalesRequest HTTP创建销售单请求
type CreateSalesRequest struct {
	AssociateID     uint               `json:"associate_id" binding:"required" example:"1"`
	PaymentType     string             `json:"payment_type" binding:"required,oneof=T K" example:"K"`
	TransactionDate string             `json:"transaction_date" binding:"required" example:"2024-03-01"`
	DueDate         string             `json:"due_date" binding:"omitempty" example:"2024-04-01"`
	Items           []SalesItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateSalesRequest HTTP编辑销售单请求
// items缺省表示不改明细;传了就是整体替换
type UpdateSalesRequest struct {
	AssociateID     uint               `json:"associate_id" example:"1"`
	PaymentType     string             `json:"payment_type" binding:"omitempty,oneof=T K" example:"K"`
	TransactionDate string             `json:"transaction_date" binding:"omitempty" example:"2024-03-01"`
	DueDate         string             `json:"due_date" binding:"omitempty" example:"2024-04-01"`
	Items           []SalesItemRequest `json:"items" binding:"omitempty,dive"`
}

// AddPaymentRequest HTTP记录收款请求
type AddPaymentRequest struct {
	PaymentDate string `json:"payment_date" binding:"omitempty" example:"2024-03-15"`
	Amount      int64  `json:"amount" binding:"required,min=1" example:"50000"`
	Note        string `json:"note" binding:"max=200" example:"转账"`
}

// SaveShippingRequest HTTP维护运单请求
type SaveShippingRequest struct {
	ShippingID   uint   `json:"shipping_id" example:"0"`
	ExpeditionID uint   `json:"expedition_id" binding:"required" example:"1"`
	NoResi       string `json:"no_resi" binding:"max=100" example:"JNE-00123"`
	TotalAmount  int64  `json:"total_amount" binding:"min=0" example:"15000"`
}

// ListSalesRequest HTTP销售单列表请求
type ListSalesRequest struct {
	Page        int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize    int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
	AssociateID uint   `form:"associate_id" example:"1"`
	Status      *int   `form:"status" binding:"omitempty,min=0,max=2" example:"0"`
	DateFrom    string `form:"date_from" binding:"omitempty" example:"2024-03-01"`
	DateTo      string `form:"date_to" binding:"omitempty" example:"2024-03-31"`
	Keyword     string `form:"keyword" binding:"omitempty,max=50" example:"TRX"`
}

// ParseDate 解析YYYY-MM-DD格式的日期字段,空串返回零值
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(DateLayout, s)
}

// ParseDatePtr 解析可选日期字段,空串返回nil
func ParseDatePtr(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
