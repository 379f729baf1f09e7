package associate

import (
	"context"
	"strings"
)

// Service 业务员领域服务接口
type Service interface {
	// CreateAssociate 创建业务员
	// 业务规则:姓名必填;默认折扣0-100;默认付款方式T或K
	CreateAssociate(ctx context.Context, name, address, phone string, cityID uint, discount int, paymentType string) (*SalesAssociate, error)

	// GetAssociate 获取业务员详情
	GetAssociate(ctx context.Context, id uint) (*SalesAssociate, error)

	// UpdateAssociate 更新业务员信息
	UpdateAssociate(ctx context.Context, id uint, name, address, phone string, cityID uint, discount int, paymentType string) error

	// DeleteAssociate 删除业务员
	DeleteAssociate(ctx context.Context, id uint) error

	// ListAssociates 分页查询业务员列表
	ListAssociates(ctx context.Context, params ListParams) ([]*SalesAssociate, int64, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建业务员领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateAssociate 创建业务员
func (s *service) CreateAssociate(ctx context.Context, name, address, phone string, cityID uint, discount int, paymentType string) (*SalesAssociate, error) {
	name = strings.TrimSpace(name)
	if err := validate(name, discount, paymentType); err != nil {
		return nil, err
	}

	a := NewSalesAssociate(name, address, phone, cityID, discount, paymentType)
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// GetAssociate 获取业务员详情
func (s *service) GetAssociate(ctx context.Context, id uint) (*SalesAssociate, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateAssociate 更新业务员信息
func (s *service) UpdateAssociate(ctx context.Context, id uint, name, address, phone string, cityID uint, discount int, paymentType string) error {
	name = strings.TrimSpace(name)
	if err := validate(name, discount, paymentType); err != nil {
		return err
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	a.UpdateInfo(name, address, phone, cityID, discount, paymentType)
	return s.repo.Update(ctx, a)
}

// DeleteAssociate 删除业务员
func (s *service) DeleteAssociate(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ListAssociates 分页查询业务员列表
func (s *service) ListAssociates(ctx context.Context, params ListParams) ([]*SalesAssociate, int64, error) {
	return s.repo.List(ctx, params)
}

// validate 业务规则校验
func validate(name string, discount int, paymentType string) error {
	if name == "" {
		return ErrEmptyName
	}
	if discount < 0 || discount > 100 {
		return ErrInvalidDiscount
	}
	if paymentType != "T" && paymentType != "K" {
		return ErrInvalidPaymentType
	}
	return nil
}
