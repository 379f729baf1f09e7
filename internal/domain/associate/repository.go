package associate

import (
	"context"
)

// Repository 业务员仓储接口(依赖倒置原则)
type Repository interface {
	// Create 创建业务员
	Create(ctx context.Context, a *SalesAssociate) error

	// FindByID 根据ID查找业务员
	FindByID(ctx context.Context, id uint) (*SalesAssociate, error)

	// Update 更新业务员信息
	Update(ctx context.Context, a *SalesAssociate) error

	// Delete 删除业务员(软删除)
	Delete(ctx context.Context, id uint) error

	// List 分页查询业务员列表
	List(ctx context.Context, params ListParams) ([]*SalesAssociate, int64, error)
}

// ListParams 列表查询参数
type ListParams struct {
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
	Keyword  string // 搜索姓名、电话
	CityID   uint   // 按城市过滤(0表示不过滤)
}
