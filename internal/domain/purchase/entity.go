package purchase

import (
	"fmt"
	"math/rand"
	"time"
)

// Status 采购单状态
// 状态值与前台约定:0=Pending(待入库) 1=Completed(已入库) 2=Cancelled(已取消)
type Status int

const (
	StatusPending   Status = 0 // 待入库(唯一可编辑状态)
	StatusCompleted Status = 1 // 已入库(终态,库存已加)
	StatusCancelled Status = 2 // 已取消(终态,不碰库存)
)

// String 实现Stringer接口(方便日志输出)
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Transaction 采购单实体(聚合根)
// 设计说明:
// 1. Transaction是聚合根,Item是聚合内的子实体
// 2. Completed与Cancelled都是终态:字段与明细全部冻结,
//    任何编辑或再次流转都返回锁定错误
// 3. 入库的库存加成只发生在Pending→Completed这一次流转上,
//    取消是纯状态变更,不做任何库存运算
type Transaction struct {
	ID            uint
	TransactionNo string    // 采购单号(业务主键)
	SupplierID    uint      // 供应商(出版社)ID
	PurchaseDate  time.Time // 采购日期
	Note          string    // 备注
	Status        Status    // 状态
	Items         []Item    // 采购明细
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Item 采购明细项
// UnitPrice为买方录入的进货单价,上限为图书当前售价
// (防止进价高于转售价,提交时由应用层按目录价复核)
type Item struct {
	ID            uint
	TransactionID uint
	BookID        uint  // 图书ID
	Quantity      int   // 数量(>=1,采购不受现有库存上限约束)
	UnitPrice     int64 // 进货单价(卢比,>=0)
}

// Subtotal 明细小计 = 单价 × 数量(采购无折扣)
func (i Item) Subtotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

// NewTransaction 创建采购单(工厂方法)
// 业务规则:明细不能为空,数量>=1,单价>=0
func NewTransaction(transactionNo string, supplierID uint, purchaseDate time.Time, note string, items []Item) (*Transaction, error) {
	if err := validateItems(items); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Transaction{
		TransactionNo: transactionNo,
		SupplierID:    supplierID,
		PurchaseDate:  purchaseDate,
		Note:          note,
		Status:        StatusPending,
		Items:         items,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// CanTransitionTo 检查是否可以转换到目标状态
// 状态机:Pending→Completed,Pending→Cancelled;终态无出口
func (t *Transaction) CanTransitionTo(target Status) bool {
	transitions := map[Status][]Status{
		StatusPending:   {StatusCompleted, StatusCancelled},
		StatusCompleted: {}, // 终态
		StatusCancelled: {}, // 终态
	}

	allowed, exists := transitions[t.Status]
	if !exists {
		return false
	}
	for _, s := range allowed {
		if s == target {
			return true
		}
	}
	return false
}

// Complete 完成入库(领域行为)
// 只校验并推进状态;库存加成由应用层经StockGuard在同一事务内执行
// 对已入库/已取消的单再次调用返回锁定错误(库存保持不变)
func (t *Transaction) Complete() error {
	if !t.CanTransitionTo(StatusCompleted) {
		return ErrTransactionLocked
	}
	t.Status = StatusCompleted
	t.UpdatedAt = time.Now()
	return nil
}

// Cancel 取消采购(领域行为)
// 纯状态变更,不做库存运算
func (t *Transaction) Cancel() error {
	if !t.CanTransitionTo(StatusCancelled) {
		return ErrTransactionLocked
	}
	t.Status = StatusCancelled
	t.UpdatedAt = time.Now()
	return nil
}

// Editable 字段与明细是否可编辑(仅Pending)
func (t *Transaction) Editable() bool {
	return t.Status == StatusPending
}

// UpdateInfo 更新采购单头信息(领域行为)
// 业务规则:终态锁定
func (t *Transaction) UpdateInfo(supplierID uint, purchaseDate time.Time, note string) error {
	if !t.Editable() {
		return ErrTransactionLocked
	}
	if supplierID != 0 {
		t.SupplierID = supplierID
	}
	if !purchaseDate.IsZero() {
		t.PurchaseDate = purchaseDate
	}
	t.Note = note
	t.UpdatedAt = time.Now()
	return nil
}

// ReplaceItems 整体替换明细(领域行为)
// 业务规则:终态锁定;明细校验同创建
func (t *Transaction) ReplaceItems(items []Item) error {
	if !t.Editable() {
		return ErrTransactionLocked
	}
	if err := validateItems(items); err != nil {
		return err
	}
	t.Items = items
	t.UpdatedAt = time.Now()
	return nil
}

// Total 采购单总额 = Σ明细小计(采购无运费项)
func (t *Transaction) Total() int64 {
	var total int64
	for _, item := range t.Items {
		total += item.Subtotal()
	}
	return total
}

// validateItems 明细校验
func validateItems(items []Item) error {
	if len(items) == 0 {
		return ErrEmptyItems
	}
	for _, item := range items {
		if item.Quantity < 1 {
			return ErrInvalidQuantity
		}
		if item.UnitPrice < 0 {
			return ErrInvalidUnitPrice
		}
	}
	return nil
}

// GenerateTransactionNo 生成采购单号
// 格式: PUR + 时间戳(秒) + 6位随机数(与销售单号同一套设计)
func GenerateTransactionNo() string {
	timestamp := time.Now().Unix()
	random := rand.Intn(1000000)
	return fmt.Sprintf("PUR%d%06d", timestamp, random)
}
