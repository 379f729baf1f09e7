package sales

import (
	"context"
	"time"
)

// Repository 销售单仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 聚合整存整取:FindByID返回带明细/运单/收款的完整聚合,
//    Update保存整个聚合(明细整体替换)
type Repository interface {
	// Create 创建销售单(含明细)
	Create(ctx context.Context, tx *Transaction) error

	// FindByID 根据ID查找销售单(带明细、运单、收款)
	FindByID(ctx context.Context, id uint) (*Transaction, error)

	// FindByNo 根据单号查找销售单
	FindByNo(ctx context.Context, transactionNo string) (*Transaction, error)

	// Update 保存整个聚合(头、明细、运单、收款)
	Update(ctx context.Context, tx *Transaction) error

	// Delete 删除销售单及其子实体
	Delete(ctx context.Context, id uint) error

	// List 分页查询销售单列表
	List(ctx context.Context, params ListParams) ([]*Transaction, int64, error)
}

// ListParams 列表查询参数
type ListParams struct {
	Page        int        // 页码(从1开始)
	PageSize    int        // 每页数量
	AssociateID uint       // 按业务员过滤(0表示不过滤)
	Status      *Status    // 按状态过滤(nil表示不过滤)
	DateFrom    *time.Time // 交易日期起
	DateTo      *time.Time // 交易日期止
	Keyword     string     // 搜索单号
}
