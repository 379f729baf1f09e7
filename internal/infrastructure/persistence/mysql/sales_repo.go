package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-admin/internal/domain/sales"
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
)

// salesRepository 销售单仓储实现(MySQL)
// 设计说明:
// 1. Transaction与Item/Shipping/Payment是聚合关系,整存整取
// 2. 查询时使用Preload预加载子表,避免N+1问题
// 3. Update采用"先删子表再重建"的整体替换策略,
//    必须在TxManager事务内调用
type salesRepository struct {
	db *gorm.DB
}

// NewSalesRepository 创建销售单仓储
func NewSalesRepository(db *gorm.DB) sales.Repository {
	return &salesRepository{db: db}
}

// Create 创建销售单(含明细)
// GORM通过foreignKey自动保存关联的Items
func (r *salesRepository) Create(ctx context.Context, tx *sales.Transaction) error {
	model := toSalesModel(tx)

	db := getDB(ctx, r.db)
	if err := db.Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.New(apperrors.ErrCodeDuplicateEntry, "销售单号已存在")
		}
		return apperrors.Wrap(err, "创建销售单失败")
	}

	// 回填自增ID
	tx.ID = model.ID
	for i := range tx.Items {
		tx.Items[i].ID = model.Items[i].ID
		tx.Items[i].TransactionID = model.ID
	}

	return nil
}

// FindByID 根据ID查找销售单(带明细、运单、收款)
func (r *salesRepository) FindByID(ctx context.Context, id uint) (*sales.Transaction, error) {
	var model SalesModel
	db := getDB(ctx, r.db)

	err := db.Preload("Items").Preload("Shippings").Preload("Payments").
		First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, sales.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(err, "查询销售单失败")
	}

	return toSalesEntity(&model), nil
}

// FindByNo 根据单号查找销售单
func (r *salesRepository) FindByNo(ctx context.Context, transactionNo string) (*sales.Transaction, error) {
	var model SalesModel
	db := getDB(ctx, r.db)

	err := db.Preload("Items").Preload("Shippings").Preload("Payments").
		Where("transaction_no = ?", transactionNo).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, sales.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(err, "查询销售单失败")
	}

	return toSalesEntity(&model), nil
}

// Update 保存整个聚合(头、明细、运单、收款)
// 设计说明:子实体采用整体替换(先删后建),逻辑简单且与领域层的
// "聚合整存整取"约定一致;调用方必须包在TxManager事务内
func (r *salesRepository) Update(ctx context.Context, tx *sales.Transaction) error {
	db := getDB(ctx, r.db)

	// 1. 更新单头
	result := db.Model(&SalesModel{}).Where("id = ?", tx.ID).Updates(map[string]interface{}{
		"associate_id":     tx.AssociateID,
		"payment_type":     string(tx.PaymentType),
		"transaction_date": tx.TransactionDate,
		"due_date":         tx.DueDate,
		"status":           int(tx.Status),
		"updated_at":       tx.UpdatedAt,
	})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新销售单失败")
	}
	if result.RowsAffected == 0 {
		return sales.ErrTransactionNotFound
	}

	// 2. 整体替换子表
	if err := db.Where("transaction_id = ?", tx.ID).Delete(&SalesItemModel{}).Error; err != nil {
		return apperrors.Wrap(err, "清理销售明细失败")
	}
	if err := db.Where("transaction_id = ?", tx.ID).Delete(&ShippingModel{}).Error; err != nil {
		return apperrors.Wrap(err, "清理运单失败")
	}
	if err := db.Where("transaction_id = ?", tx.ID).Delete(&PaymentModel{}).Error; err != nil {
		return apperrors.Wrap(err, "清理收款记录失败")
	}

	model := toSalesModel(tx)
	if len(model.Items) > 0 {
		for i := range model.Items {
			model.Items[i].ID = 0
			model.Items[i].TransactionID = tx.ID
		}
		if err := db.Create(&model.Items).Error; err != nil {
			return apperrors.Wrap(err, "保存销售明细失败")
		}
	}
	if len(model.Shippings) > 0 {
		for i := range model.Shippings {
			model.Shippings[i].ID = 0
			model.Shippings[i].TransactionID = tx.ID
		}
		if err := db.Create(&model.Shippings).Error; err != nil {
			return apperrors.Wrap(err, "保存运单失败")
		}
	}
	if len(model.Payments) > 0 {
		for i := range model.Payments {
			model.Payments[i].ID = 0
			model.Payments[i].TransactionID = tx.ID
		}
		if err := db.Create(&model.Payments).Error; err != nil {
			return apperrors.Wrap(err, "保存收款记录失败")
		}
	}

	// 3. 回填子实体ID(整体替换后ID已变化)
	for i := range tx.Items {
		tx.Items[i].ID = model.Items[i].ID
		tx.Items[i].TransactionID = tx.ID
	}
	for i := range tx.Shippings {
		tx.Shippings[i].ID = model.Shippings[i].ID
		tx.Shippings[i].TransactionID = tx.ID
	}
	for i := range tx.Payments {
		tx.Payments[i].ID = model.Payments[i].ID
		tx.Payments[i].TransactionID = tx.ID
	}

	return nil
}

// Delete 删除销售单及其子实体
// 库存回补由应用层经StockGuard在同一事务内完成
func (r *salesRepository) Delete(ctx context.Context, id uint) error {
	db := getDB(ctx, r.db)

	result := db.Delete(&SalesModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除销售单失败")
	}
	if result.RowsAffected == 0 {
		return sales.ErrTransactionNotFound
	}

	if err := db.Where("transaction_id = ?", id).Delete(&SalesItemModel{}).Error; err != nil {
		return apperrors.Wrap(err, "删除销售明细失败")
	}
	if err := db.Where("transaction_id = ?", id).Delete(&ShippingModel{}).Error; err != nil {
		return apperrors.Wrap(err, "删除运单失败")
	}
	if err := db.Where("transaction_id = ?", id).Delete(&PaymentModel{}).Error; err != nil {
		return apperrors.Wrap(err, "删除收款记录失败")
	}

	return nil
}

// List 分页查询销售单列表
func (r *salesRepository) List(ctx context.Context, params sales.ListParams) ([]*sales.Transaction, int64, error) {
	var models []SalesModel
	var total int64

	query := r.db.WithContext(ctx).Model(&SalesModel{})

	if params.AssociateID != 0 {
		query = query.Where("associate_id = ?", params.AssociateID)
	}
	if params.Status != nil {
		query = query.Where("status = ?", int(*params.Status))
	}
	if params.DateFrom != nil {
		query = query.Where("transaction_date >= ?", *params.DateFrom)
	}
	if params.DateTo != nil {
		query = query.Where("transaction_date <= ?", *params.DateTo)
	}
	if params.Keyword != "" {
		query = query.Where("transaction_no LIKE ?", "%"+params.Keyword+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询销售单总数失败")
	}

	offset := (params.Page - 1) * params.PageSize
	err := query.Preload("Items").Preload("Shippings").Preload("Payments").
		Order("transaction_date DESC, id DESC").
		Limit(params.PageSize).
		Offset(offset).
		Find(&models).Error

	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询销售单列表失败")
	}

	transactions := make([]*sales.Transaction, len(models))
	for i, model := range models {
		transactions[i] = toSalesEntity(&model)
	}

	return transactions, total, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toSalesModel 领域实体 → GORM模型
func toSalesModel(tx *sales.Transaction) *SalesModel {
	items := make([]SalesItemModel, len(tx.Items))
	for i, item := range tx.Items {
		items[i] = SalesItemModel{
			ID:            item.ID,
			TransactionID: item.TransactionID,
			BookID:        item.BookID,
			Quantity:      item.Quantity,
			BasePrice:     item.BasePrice,
			CategoryCode:  item.CategoryCode,
			Promotion:     item.Promotion,
			Discount:      item.Discount,
		}
	}

	shippings := make([]ShippingModel, len(tx.Shippings))
	for i, s := range tx.Shippings {
		shippings[i] = ShippingModel{
			ID:            s.ID,
			TransactionID: s.TransactionID,
			ExpeditionID:  s.ExpeditionID,
			NoResi:        s.NoResi,
			TotalAmount:   s.TotalAmount,
		}
	}

	payments := make([]PaymentModel, len(tx.Payments))
	for i, p := range tx.Payments {
		payments[i] = PaymentModel{
			ID:            p.ID,
			TransactionID: p.TransactionID,
			PaymentDate:   p.PaymentDate,
			Amount:        p.Amount,
			Note:          p.Note,
		}
	}

	return &SalesModel{
		ID:              tx.ID,
		TransactionNo:   tx.TransactionNo,
		AssociateID:     tx.AssociateID,
		PaymentType:     string(tx.PaymentType),
		TransactionDate: tx.TransactionDate,
		DueDate:         tx.DueDate,
		Status:          int(tx.Status),
		Items:           items,
		Shippings:       shippings,
		Payments:        payments,
		CreatedAt:       tx.CreatedAt,
		UpdatedAt:       tx.UpdatedAt,
	}
}

// toSalesEntity GORM模型 → 领域实体
func toSalesEntity(model *SalesModel) *sales.Transaction {
	items := make([]sales.Item, len(model.Items))
	for i, item := range model.Items {
		items[i] = sales.Item{
			ID:            item.ID,
			TransactionID: item.TransactionID,
			BookID:        item.BookID,
			Quantity:      item.Quantity,
			BasePrice:     item.BasePrice,
			CategoryCode:  item.CategoryCode,
			Promotion:     item.Promotion,
			Discount:      item.Discount,
		}
	}

	shippings := make([]sales.Shipping, len(model.Shippings))
	for i, s := range model.Shippings {
		shippings[i] = sales.Shipping{
			ID:            s.ID,
			TransactionID: s.TransactionID,
			ExpeditionID:  s.ExpeditionID,
			NoResi:        s.NoResi,
			TotalAmount:   s.TotalAmount,
		}
	}

	payments := make([]sales.Payment, len(model.Payments))
	for i, p := range model.Payments {
		payments[i] = sales.Payment{
			ID:            p.ID,
			TransactionID: p.TransactionID,
			PaymentDate:   p.PaymentDate,
			Amount:        p.Amount,
			Note:          p.Note,
		}
	}

	return &sales.Transaction{
		ID:              model.ID,
		TransactionNo:   model.TransactionNo,
		AssociateID:     model.AssociateID,
		PaymentType:     sales.PaymentType(model.PaymentType),
		TransactionDate: model.TransactionDate,
		DueDate:         model.DueDate,
		Status:          sales.Status(model.Status),
		Items:           items,
		Shippings:       shippings,
		Payments:        payments,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}
