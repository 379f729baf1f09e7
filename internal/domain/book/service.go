package book

import (
	"context"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装跨实体的业务逻辑和业务规则校验
// 2. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// CreateBook 录入图书
	// 业务规则:
	// - 编码不能为空且不能重复
	// - 售价、采购价不能为负数
	// - 初始库存必须>=0
	CreateBook(ctx context.Context, code, title, categoryCode string, typeID, fieldOfStudyID uint, level, curriculum, brand string, price, purchasingPrice int64, stock int) (*Book, error)

	// GetBookByID 根据ID获取图书详情
	GetBookByID(ctx context.Context, id uint) (*Book, error)

	// GetBookByCode 根据编码获取图书
	GetBookByCode(ctx context.Context, code string) (*Book, error)

	// UpdateBook 更新图书信息与价格
	UpdateBook(ctx context.Context, id uint, title, categoryCode string, typeID, fieldOfStudyID uint, level, curriculum, brand string, price, purchasingPrice int64) error

	// DeleteBook 删除图书
	DeleteBook(ctx context.Context, id uint) error

	// ListBooks 分页查询图书列表
	ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateBook 录入图书
func (s *service) CreateBook(ctx context.Context, code, title, categoryCode string, typeID, fieldOfStudyID uint, level, curriculum, brand string, price, purchasingPrice int64, stock int) (*Book, error) {
	// 1. 编码校验
	if code == "" {
		return nil, ErrInvalidCode
	}

	// 2. 价格校验
	if price < 0 || purchasingPrice < 0 {
		return nil, ErrInvalidPrice
	}

	// 3. 库存校验
	if stock < 0 {
		return nil, ErrInvalidStock
	}

	// 4. 检查编码是否已存在
	existing, err := s.repo.FindByCode(ctx, code)
	if err == nil && existing != nil {
		return nil, ErrCodeDuplicate
	}
	if err != nil && err != ErrBookNotFound {
		return nil, err
	}

	// 5. 创建图书实体并持久化
	b := NewBook(code, title, categoryCode, typeID, fieldOfStudyID, level, curriculum, brand, price, purchasingPrice, stock)
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// GetBookByID 根据ID获取图书
func (s *service) GetBookByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// GetBookByCode 根据编码获取图书
func (s *service) GetBookByCode(ctx context.Context, code string) (*Book, error) {
	if code == "" {
		return nil, ErrInvalidCode
	}
	return s.repo.FindByCode(ctx, code)
}

// UpdateBook 更新图书信息与价格
func (s *service) UpdateBook(ctx context.Context, id uint, title, categoryCode string, typeID, fieldOfStudyID uint, level, curriculum, brand string, price, purchasingPrice int64) error {
	// 1. 查询图书
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	// 2. 更新基本信息
	b.UpdateInfo(title, categoryCode, typeID, fieldOfStudyID, level, curriculum, brand)

	// 3. 更新价格(负数校验在领域行为内)
	if err := b.UpdatePrice(price); err != nil {
		return err
	}
	if err := b.UpdatePurchasingPrice(purchasingPrice); err != nil {
		return err
	}

	// 4. 持久化
	return s.repo.Update(ctx, b)
}

// DeleteBook 删除图书
func (s *service) DeleteBook(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ListBooks 分页查询图书列表
func (s *service) ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error) {
	return s.repo.List(ctx, params)
}
