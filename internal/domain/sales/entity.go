package sales

import (
	"time"
)

// Status 销售单状态
// 设计说明:
// 1. 使用int类型而非string(节省存储空间,便于索引)
// 2. 状态值与前台约定:0=Pesanan(订单) 1=Lunas(已结清) 2=Angsuran(分期中)
type Status int

const (
	StatusPesanan  Status = 0 // 订单(未收款)
	StatusLunas    Status = 1 // 已结清(全额收款,整单锁定)
	StatusAngsuran Status = 2 // 分期中(部分收款)
)

// String 实现Stringer接口(方便日志输出)
func (s Status) String() string {
	switch s {
	case StatusPesanan:
		return "Pesanan"
	case StatusLunas:
		return "Lunas"
	case StatusAngsuran:
		return "Angsuran"
	default:
		return "Unknown"
	}
}

// PaymentType 付款方式
type PaymentType string

const (
	PaymentTypeCash   PaymentType = "T" // Tunai 现金
	PaymentTypeCredit PaymentType = "K" // Kredit 赊销(必须有到期日)
)

// Valid 付款方式是否合法
func (p PaymentType) Valid() bool {
	return p == PaymentTypeCash || p == PaymentTypeCredit
}

// Transaction 销售单实体(聚合根)
// 设计说明:
// 1. Transaction是聚合根,Item/Shipping/Payment是聚合内的子实体
// 2. TransactionNo为业务主键,全局唯一
// 3. 明细不冗余总金额:总额、余额一律由Summarize实时计算,
//    保证所有展示口径(列表、详情、发票)出自同一条计算路径
type Transaction struct {
	ID              uint
	TransactionNo   string      // 销售单号(业务主键)
	AssociateID     uint        // 业务员ID
	PaymentType     PaymentType // 付款方式 T/K
	TransactionDate time.Time   // 交易日期
	DueDate         *time.Time  // 到期日(仅赊销,必须晚于交易日期)
	Status          Status      // 状态
	Items           []Item      // 销售明细
	Shippings       []Shipping  // 运单列表
	Payments        []Payment   // 收款记录
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Item 销售明细项
// 设计说明:
// 1. 不是独立聚合根,必须通过Transaction访问
// 2. BasePrice/CategoryCode是提交时的快照:图书目录价或分类
//    之后变化不影响历史单据(删除单据的库存回补同理按快照数量)
type Item struct {
	ID            uint
	TransactionID uint
	BookID        uint   // 图书ID
	Quantity      int    // 数量(>=1)
	BasePrice     int64  // 提交时的图书售价快照(卢比)
	CategoryCode  string // 提交时的分类编码快照(LKS才参与促销/折扣)
	Promotion     int64  // 促销金额(卢比,先于折扣扣减,上限为BasePrice)
	Discount      int    // 折扣百分比(0-100)
}

// Shipping 运单
// 运费只做加项,从不参与折扣
type Shipping struct {
	ID            uint
	TransactionID uint
	ExpeditionID  uint   // 快递公司ID
	NoResi        string // 运单号
	TotalAmount   int64  // 运费(卢比,>=0)
}

// Payment 收款记录
type Payment struct {
	ID            uint
	TransactionID uint
	PaymentDate   time.Time
	Amount        int64 // 收款金额(卢比,>0)
	Note          string
}

// NewTransaction 创建销售单(工厂方法)
// 业务规则:
// 1. 明细不能为空
// 2. 付款方式必须为T或K
// 3. 赊销(K)必须携带严格晚于交易日期的到期日;现金(T)清空到期日
func NewTransaction(transactionNo string, associateID uint, paymentType PaymentType, transactionDate time.Time, dueDate *time.Time, items []Item) (*Transaction, error) {
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
	}

	tx := &Transaction{
		TransactionNo:   transactionNo,
		AssociateID:     associateID,
		PaymentType:     paymentType,
		TransactionDate: transactionDate,
		DueDate:         dueDate,
		Status:          StatusPesanan,
		Items:           items,
	}
	now := time.Now()
	tx.CreatedAt = now
	tx.UpdatedAt = now

	if err := tx.ValidateSchedule(); err != nil {
		return nil, err
	}

	return tx, nil
}

// ValidateSchedule 校验付款方式与到期日
// 业务规则:
// - K(赊销): 到期日必填且严格晚于交易日期
// - T(现金): 到期日无意义,直接清空
func (t *Transaction) ValidateSchedule() error {
	if !t.PaymentType.Valid() {
		return ErrInvalidPaymentType
	}

	if t.PaymentType == PaymentTypeCredit {
		if t.DueDate == nil || !t.DueDate.After(t.TransactionDate) {
			return ErrInvalidDueDate
		}
		return nil
	}

	// 现金单不保留到期日
	t.DueDate = nil
	return nil
}

// PaymentsTotal 已收款总额
func (t *Transaction) PaymentsTotal() int64 {
	var total int64
	for _, p := range t.Payments {
		total += p.Amount
	}
	return total
}

// RemainingBalance 剩余应收
// 约定:未持久化(ID==0)的新单没有任何收款入口,余额按0报告
func (t *Transaction) RemainingBalance() int64 {
	if t.ID == 0 {
		return 0
	}
	return RemainingBalance(t.Total(), t.Payments)
}

// AddPayment 记录一笔收款(领域行为)
// 业务规则:
// 1. Lunas状态整单锁定,拒绝新收款
// 2. 金额必须为正且不超过剩余应收(超付拒绝,收款列表保持不变)
// 3. 收款后刷新状态:结清→Lunas;赊销未结清→Angsuran
func (t *Transaction) AddPayment(p Payment) error {
	if !t.Permissions().CanEditPayments {
		return ErrTransactionLocked
	}

	if err := ValidatePayment(p.Amount, RemainingBalance(t.Total(), t.Payments)); err != nil {
		return err
	}

	t.Payments = append(t.Payments, p)
	t.RefreshStatus()
	t.UpdatedAt = time.Now()
	return nil
}

// RemovePayment 删除一笔收款(领域行为)
// Lunas锁定;删除后按剩余收款重算状态(全部删光则回到Pesanan)
func (t *Transaction) RemovePayment(paymentID uint) error {
	if !t.Permissions().CanEditPayments {
		return ErrTransactionLocked
	}

	idx := -1
	for i, p := range t.Payments {
		if p.ID == paymentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrPaymentNotFound
	}

	t.Payments = append(t.Payments[:idx], t.Payments[idx+1:]...)
	t.RefreshStatus()
	t.UpdatedAt = time.Now()
	return nil
}

// SaveShipping 新增或更新运单(领域行为)
// 业务规则:
// 1. Lunas锁定;运费不能为负数
// 2. 下调运费不能让总额低于已收款(Σ收款≤总额恒成立)
// 3. 运费变动后重算状态:恰好结清则转Lunas
func (t *Transaction) SaveShipping(s Shipping) error {
	if !t.Permissions().CanEditShipping {
		return ErrTransactionLocked
	}
	if s.TotalAmount < 0 {
		return ErrInvalidShippingAmount
	}

	if s.ID != 0 {
		for i := range t.Shippings {
			if t.Shippings[i].ID == s.ID {
				if t.Total()-t.Shippings[i].TotalAmount+s.TotalAmount < t.PaymentsTotal() {
					return ErrTotalBelowPayments
				}
				t.Shippings[i] = s
				t.RefreshStatus()
				t.UpdatedAt = time.Now()
				return nil
			}
		}
		return ErrShippingNotFound
	}

	// 新增只会增大总额,不会触碰收款上限
	t.Shippings = append(t.Shippings, s)
	t.RefreshStatus()
	t.UpdatedAt = time.Now()
	return nil
}

// RemoveShipping 删除运单(领域行为)
// 删除使总额变小,同样不能低于已收款;删除后重算状态
func (t *Transaction) RemoveShipping(shippingID uint) error {
	if !t.Permissions().CanEditShipping {
		return ErrTransactionLocked
	}

	for i, s := range t.Shippings {
		if s.ID == shippingID {
			if t.Total()-s.TotalAmount < t.PaymentsTotal() {
				return ErrTotalBelowPayments
			}
			t.Shippings = append(t.Shippings[:i], t.Shippings[i+1:]...)
			t.RefreshStatus()
			t.UpdatedAt = time.Now()
			return nil
		}
	}
	return ErrShippingNotFound
}

// ReplaceItems 整体替换明细(领域行为,仅Pesanan状态)
// 新明细的总额同样不能低于已收款(现金单部分收款后仍可改单)
// 库存的回退与重扣由应用层经StockGuard在同一数据库事务内完成
func (t *Transaction) ReplaceItems(items []Item) error {
	if !t.Permissions().CanEditItems {
		return ErrTransactionLocked
	}
	if len(items) == 0 {
		return ErrEmptyItems
	}
	for _, item := range items {
		if item.Quantity < 1 {
			return ErrInvalidQuantity
		}
	}
	if TransactionTotal(items, t.Shippings) < t.PaymentsTotal() {
		return ErrTotalBelowPayments
	}

	t.Items = items
	t.RefreshStatus()
	t.UpdatedAt = time.Now()
	return nil
}
