package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-admin/internal/domain/purchase"
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
)

// purchaseRepository 采购单仓储实现(MySQL)
// 与销售仓储同一套聚合整存整取约定
type purchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository 创建采购单仓储
func NewPurchaseRepository(db *gorm.DB) purchase.Repository {
	return &purchaseRepository{db: db}
}

// Create 创建采购单(含明细)
func (r *purchaseRepository) Create(ctx context.Context, tx *purchase.Transaction) error {
	model := toPurchaseModel(tx)

	db := getDB(ctx, r.db)
	if err := db.Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.New(apperrors.ErrCodeDuplicateEntry, "采购单号已存在")
		}
		return apperrors.Wrap(err, "创建采购单失败")
	}

	tx.ID = model.ID
	for i := range tx.Items {
		tx.Items[i].ID = model.Items[i].ID
		tx.Items[i].TransactionID = model.ID
	}

	return nil
}

// FindByID 根据ID查找采购单(带明细)
func (r *purchaseRepository) FindByID(ctx context.Context, id uint) (*purchase.Transaction, error) {
	var model PurchaseModel
	db := getDB(ctx, r.db)

	err := db.Preload("Items").First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, purchase.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(err, "查询采购单失败")
	}

	return toPurchaseEntity(&model), nil
}

// FindByNo 根据单号查找采购单
func (r *purchaseRepository) FindByNo(ctx context.Context, transactionNo string) (*purchase.Transaction, error) {
	var model PurchaseModel
	db := getDB(ctx, r.db)

	err := db.Preload("Items").Where("transaction_no = ?", transactionNo).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, purchase.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(err, "查询采购单失败")
	}

	return toPurchaseEntity(&model), nil
}

// Update 保存整个聚合(头、明细)
// 明细整体替换(先删后建),调用方必须包在TxManager事务内
func (r *purchaseRepository) Update(ctx context.Context, tx *purchase.Transaction) error {
	db := getDB(ctx, r.db)

	result := db.Model(&PurchaseModel{}).Where("id = ?", tx.ID).Updates(map[string]interface{}{
		"supplier_id":   tx.SupplierID,
		"purchase_date": tx.PurchaseDate,
		"note":          tx.Note,
		"status":        int(tx.Status),
		"updated_at":    tx.UpdatedAt,
	})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新采购单失败")
	}
	if result.RowsAffected == 0 {
		return purchase.ErrTransactionNotFound
	}

	if err := db.Where("transaction_id = ?", tx.ID).Delete(&PurchaseItemModel{}).Error; err != nil {
		return apperrors.Wrap(err, "清理采购明细失败")
	}

	model := toPurchaseModel(tx)
	if len(model.Items) > 0 {
		for i := range model.Items {
			model.Items[i].ID = 0
			model.Items[i].TransactionID = tx.ID
		}
		if err := db.Create(&model.Items).Error; err != nil {
			return apperrors.Wrap(err, "保存采购明细失败")
		}
	}

	for i := range tx.Items {
		tx.Items[i].ID = model.Items[i].ID
		tx.Items[i].TransactionID = tx.ID
	}

	return nil
}

// Delete 删除采购单及其明细
// 业务约定:只有Pending状态的采购单可删(应用层把关)
func (r *purchaseRepository) Delete(ctx context.Context, id uint) error {
	db := getDB(ctx, r.db)

	result := db.Delete(&PurchaseModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除采购单失败")
	}
	if result.RowsAffected == 0 {
		return purchase.ErrTransactionNotFound
	}

	if err := db.Where("transaction_id = ?", id).Delete(&PurchaseItemModel{}).Error; err != nil {
		return apperrors.Wrap(err, "删除采购明细失败")
	}

	return nil
}

// List 分页查询采购单列表
func (r *purchaseRepository) List(ctx context.Context, params purchase.ListParams) ([]*purchase.Transaction, int64, error) {
	var models []PurchaseModel
	var total int64

	query := r.db.WithContext(ctx).Model(&PurchaseModel{})

	if params.SupplierID != 0 {
		query = query.Where("supplier_id = ?", params.SupplierID)
	}
	if params.Status != nil {
		query = query.Where("status = ?", int(*params.Status))
	}
	if params.DateFrom != nil {
		query = query.Where("purchase_date >= ?", *params.DateFrom)
	}
	if params.DateTo != nil {
		query = query.Where("purchase_date <= ?", *params.DateTo)
	}
	if params.Keyword != "" {
		query = query.Where("transaction_no LIKE ?", "%"+params.Keyword+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询采购单总数失败")
	}

	offset := (params.Page - 1) * params.PageSize
	err := query.Preload("Items").
		Order("purchase_date DESC, id DESC").
		Limit(params.PageSize).
		Offset(offset).
		Find(&models).Error

	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询采购单列表失败")
	}

	transactions := make([]*purchase.Transaction, len(models))
	for i, model := range models {
		transactions[i] = toPurchaseEntity(&model)
	}

	return transactions, total, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toPurchaseModel 领域实体 → GORM模型
func toPurchaseModel(tx *purchase.Transaction) *PurchaseModel {
	items := make([]PurchaseItemModel, len(tx.Items))
	for i, item := range tx.Items {
		items[i] = PurchaseItemModel{
			ID:            item.ID,
			TransactionID: item.TransactionID,
			BookID:        item.BookID,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
		}
	}

	return &PurchaseModel{
		ID:            tx.ID,
		TransactionNo: tx.TransactionNo,
		SupplierID:    tx.SupplierID,
		PurchaseDate:  tx.PurchaseDate,
		Note:          tx.Note,
		Status:        int(tx.Status),
		Items:         items,
		CreatedAt:     tx.CreatedAt,
		UpdatedAt:     tx.UpdatedAt,
	}
}

// toPurchaseEntity GORM模型 → 领域实体
func toPurchaseEntity(model *PurchaseModel) *purchase.Transaction {
	items := make([]purchase.Item, len(model.Items))
	for i, item := range model.Items {
		items[i] = purchase.Item{
			ID:            item.ID,
			TransactionID: item.TransactionID,
			BookID:        item.BookID,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
		}
	}

	return &purchase.Transaction{
		ID:            model.ID,
		TransactionNo: model.TransactionNo,
		SupplierID:    model.SupplierID,
		PurchaseDate:  model.PurchaseDate,
		Note:          model.Note,
		Status:        purchase.Status(model.Status),
		Items:         items,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}
