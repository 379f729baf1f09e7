package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-admin/internal/domain/associate"
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
)

// associateRepository 业务员仓储实现(MySQL)
type associateRepository struct {
	db *gorm.DB
}

// NewAssociateRepository 创建业务员仓储
func NewAssociateRepository(db *gorm.DB) associate.Repository {
	return &associateRepository{db: db}
}

// Create 创建业务员
func (r *associateRepository) Create(ctx context.Context, a *associate.SalesAssociate) error {
	model := toAssociateModel(a)
	model.ID = 0

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建业务员失败")
	}

	a.ID = model.ID
	a.CreatedAt = model.CreatedAt
	a.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找业务员
func (r *associateRepository) FindByID(ctx context.Context, id uint) (*associate.SalesAssociate, error) {
	var model AssociateModel
	err := r.db.WithContext(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, associate.ErrAssociateNotFound
		}
		return nil, apperrors.Wrap(err, "查询业务员失败")
	}

	return toAssociateEntity(&model), nil
}

// Update 更新业务员信息
func (r *associateRepository) Update(ctx context.Context, a *associate.SalesAssociate) error {
	result := r.db.WithContext(ctx).Model(&AssociateModel{}).
		Where("id = ?", a.ID).
		Updates(map[string]interface{}{
			"name":         a.Name,
			"address":      a.Address,
			"phone":        a.Phone,
			"city_id":      a.CityID,
			"discount":     a.Discount,
			"payment_type": a.PaymentType,
			"updated_at":   a.UpdatedAt,
		})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新业务员失败")
	}

	if result.RowsAffected == 0 {
		return associate.ErrAssociateNotFound
	}

	return nil
}

// Delete 删除业务员(软删除)
func (r *associateRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&AssociateModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除业务员失败")
	}

	if result.RowsAffected == 0 {
		return associate.ErrAssociateNotFound
	}

	return nil
}

// List 分页查询业务员列表
func (r *associateRepository) List(ctx context.Context, params associate.ListParams) ([]*associate.SalesAssociate, int64, error) {
	var models []AssociateModel
	var total int64

	query := r.db.WithContext(ctx).Model(&AssociateModel{})

	// 搜索姓名、电话
	if params.Keyword != "" {
		keyword := "%" + params.Keyword + "%"
		query = query.Where("name LIKE ? OR phone LIKE ?", keyword, keyword)
	}

	if params.CityID != 0 {
		query = query.Where("city_id = ?", params.CityID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询业务员总数失败")
	}

	offset := (params.Page - 1) * params.PageSize
	err := query.Order("name ASC").
		Limit(params.PageSize).
		Offset(offset).
		Find(&models).Error

	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询业务员列表失败")
	}

	associates := make([]*associate.SalesAssociate, len(models))
	for i, model := range models {
		associates[i] = toAssociateEntity(&model)
	}

	return associates, total, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toAssociateModel 领域实体 → GORM模型
func toAssociateModel(a *associate.SalesAssociate) *AssociateModel {
	return &AssociateModel{
		ID:          a.ID,
		Name:        a.Name,
		Address:     a.Address,
		Phone:       a.Phone,
		CityID:      a.CityID,
		Discount:    a.Discount,
		PaymentType: a.PaymentType,
	}
}

// toAssociateEntity GORM模型 → 领域实体
func toAssociateEntity(model *AssociateModel) *associate.SalesAssociate {
	return &associate.SalesAssociate{
		ID:          model.ID,
		Name:        model.Name,
		Address:     model.Address,
		Phone:       model.Phone,
		CityID:      model.CityID,
		Discount:    model.Discount,
		PaymentType: model.PaymentType,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
