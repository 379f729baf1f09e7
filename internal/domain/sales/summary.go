package sales

import (
	"time"
)

// 销售单汇总视图
// 设计说明:
// 1. Summarize是全系统唯一的计算路径:详情、列表、发票导出
//    都消费它的输出,杜绝各处各算一套的口径漂移
// 2. 纯函数:输入聚合,输出视图,无隐藏状态,天然可测

// ItemView 明细视图(附计算结果)
type ItemView struct {
	ItemID         uint   `json:"item_id"`
	BookID         uint   `json:"book_id"`
	Quantity       int    `json:"quantity"`
	BasePrice      int64  `json:"base_price"`
	CategoryCode   string `json:"category_code"`
	Promotion      int64  `json:"promotion"`
	Discount       int    `json:"discount"`
	EffectivePrice int64  `json:"effective_price"` // 折后单价
	Subtotal       int64  `json:"subtotal"`        // 折后单价 × 数量
}

// Summary 销售单汇总视图
type Summary struct {
	TransactionID   uint        `json:"transaction_id"`
	TransactionNo   string      `json:"transaction_no"`
	AssociateID     uint        `json:"associate_id"`
	PaymentType     PaymentType `json:"payment_type"`
	TransactionDate time.Time   `json:"transaction_date"`
	DueDate         *time.Time  `json:"due_date,omitempty"`
	Status          Status      `json:"status"`
	StatusLabel     string      `json:"status_label"`

	Items     []ItemView `json:"items"`
	Shippings []Shipping `json:"shippings"`
	Payments  []Payment  `json:"payments"`

	ItemsTotal       int64 `json:"items_total"`       // Σ明细小计
	ShippingTotal    int64 `json:"shipping_total"`    // Σ运费
	PaymentsTotal    int64 `json:"payments_total"`    // Σ收款
	GrandTotal       int64 `json:"grand_total"`       // 明细 + 运费
	RemainingBalance int64 `json:"remaining_balance"` // 总额 − 收款(新单为0)

	Permissions   Permissions `json:"permissions"`
	CanAddPayment bool        `json:"can_add_payment"`
}

// Summarize 汇总销售单(纯函数)
func Summarize(t *Transaction) *Summary {
	items := make([]ItemView, 0, len(t.Items))
	var itemsTotal int64
	for _, item := range t.Items {
		effective := item.EffectivePrice()
		subtotal := item.Subtotal()
		itemsTotal += subtotal
		items = append(items, ItemView{
			ItemID:         item.ID,
			BookID:         item.BookID,
			Quantity:       item.Quantity,
			BasePrice:      item.BasePrice,
			CategoryCode:   item.CategoryCode,
			Promotion:      item.Promotion,
			Discount:       item.Discount,
			EffectivePrice: effective,
			Subtotal:       subtotal,
		})
	}

	var shippingTotal int64
	for _, s := range t.Shippings {
		shippingTotal += s.TotalAmount
	}

	grandTotal := itemsTotal + shippingTotal
	paymentsTotal := t.PaymentsTotal()

	// 新单余额按0报告的约定只住在RemainingBalance一处
	remaining := t.RemainingBalance()

	return &Summary{
		TransactionID:    t.ID,
		TransactionNo:    t.TransactionNo,
		AssociateID:      t.AssociateID,
		PaymentType:      t.PaymentType,
		TransactionDate:  t.TransactionDate,
		DueDate:          t.DueDate,
		Status:           t.Status,
		StatusLabel:      t.Status.String(),
		Items:            items,
		Shippings:        t.Shippings,
		Payments:         t.Payments,
		ItemsTotal:       itemsTotal,
		ShippingTotal:    shippingTotal,
		PaymentsTotal:    paymentsTotal,
		GrandTotal:       grandTotal,
		RemainingBalance: remaining,
		Permissions:      t.Permissions(),
		CanAddPayment:    t.CanAddPayment(),
	}
}
