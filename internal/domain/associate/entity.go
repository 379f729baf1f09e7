package associate

import (
	"time"
)

// SalesAssociate 业务员实体(聚合根)
// 设计说明:
// 1. Discount是该业务员的默认折扣百分比(0-100),
//    销售录单时用于给LKS类明细预填折扣,单据上仍可逐条调整
// 2. PaymentType是默认付款方式(T现金/K赊销),同样只做预填
type SalesAssociate struct {
	ID          uint
	Name        string
	Address     string
	Phone       string
	CityID      uint
	Discount    int    // 默认折扣百分比(0-100)
	PaymentType string // 默认付款方式 T/K
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewSalesAssociate 创建业务员(工厂方法)
func NewSalesAssociate(name, address, phone string, cityID uint, discount int, paymentType string) *SalesAssociate {
	now := time.Now()
	return &SalesAssociate{
		Name:        name,
		Address:     address,
		Phone:       phone,
		CityID:      cityID,
		Discount:    discount,
		PaymentType: paymentType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// UpdateInfo 更新业务员信息(领域行为)
func (a *SalesAssociate) UpdateInfo(name, address, phone string, cityID uint, discount int, paymentType string) {
	if name != "" {
		a.Name = name
	}
	a.Address = address
	a.Phone = phone
	if cityID != 0 {
		a.CityID = cityID
	}
	a.Discount = discount
	a.PaymentType = paymentType
	a.UpdatedAt = time.Now()
}
