package master

import (
	"context"
)

// ListParams 列表查询参数(五类基础资料通用)
type ListParams struct {
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
	Keyword  string // 按名称搜索
}

// BookTypeRepository 图书类型仓储接口
type BookTypeRepository interface {
	Create(ctx context.Context, t *BookType) error
	FindByID(ctx context.Context, id uint) (*BookType, error)
	Update(ctx context.Context, t *BookType) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params ListParams) ([]*BookType, int64, error)
}

// FieldOfStudyRepository 学科领域仓储接口
type FieldOfStudyRepository interface {
	Create(ctx context.Context, f *FieldOfStudy) error
	FindByID(ctx context.Context, id uint) (*FieldOfStudy, error)
	Update(ctx context.Context, f *FieldOfStudy) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params ListParams) ([]*FieldOfStudy, int64, error)
}

// CityRepository 城市仓储接口
type CityRepository interface {
	Create(ctx context.Context, c *City) error
	FindByID(ctx context.Context, id uint) (*City, error)
	Update(ctx context.Context, c *City) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params ListParams) ([]*City, int64, error)
}

// PublisherRepository 出版社仓储接口
type PublisherRepository interface {
	Create(ctx context.Context, p *Publisher) error
	FindByID(ctx context.Context, id uint) (*Publisher, error)
	Update(ctx context.Context, p *Publisher) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params ListParams) ([]*Publisher, int64, error)
}

// ExpeditionRepository 快递公司仓储接口
type ExpeditionRepository interface {
	Create(ctx context.Context, e *Expedition) error
	FindByID(ctx context.Context, id uint) (*Expedition, error)
	Update(ctx context.Context, e *Expedition) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params ListParams) ([]*Expedition, int64, error)
}
