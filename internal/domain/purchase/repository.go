package purchase

import (
	"context"
	"time"
)

// Repository 采购单仓储接口(依赖倒置原则)
// 聚合整存整取,与销售仓储同一套约定
type Repository interface {
	// Create 创建采购单(含明细)
	Create(ctx context.Context, tx *Transaction) error

	// FindByID 根据ID查找采购单(带明细)
	FindByID(ctx context.Context, id uint) (*Transaction, error)

	// FindByNo 根据单号查找采购单
	FindByNo(ctx context.Context, transactionNo string) (*Transaction, error)

	// Update 保存整个聚合(头、明细)
	Update(ctx context.Context, tx *Transaction) error

	// Delete 删除采购单及其明细
	Delete(ctx context.Context, id uint) error

	// List 分页查询采购单列表
	List(ctx context.Context, params ListParams) ([]*Transaction, int64, error)
}

// ListParams 列表查询参数
type ListParams struct {
	Page       int        // 页码(从1开始)
	PageSize   int        // 每页数量
	SupplierID uint       // 按供应商过滤(0表示不过滤)
	Status     *Status    // 按状态过滤(nil表示不过滤)
	DateFrom   *time.Time // 采购日期起
	DateTo     *time.Time // 采购日期止
	Keyword    string     // 搜索单号
}
