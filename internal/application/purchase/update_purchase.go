package purchase

import (
	"context"
	"time"

	"github.com/xiebiao/bookstore-admin/internal/domain/book"
	"github.com/xiebiao/bookstore-admin/internal/domain/purchase"
)

// UpdatePurchaseUseCase 编辑采购单用例
// 业务规则:仅Pending可编辑(终态冻结);明细整体替换,
// 单价校验与创建时相同(不得高于图书当前售价)
type UpdatePurchaseUseCase struct {
	purchaseRepo purchase.Repository
	bookRepo     book.Repository
	txManager    TxManager
}

// NewUpdatePurchaseUseCase 创建编辑采购单用例
func NewUpdatePurchaseUseCase(
	purchaseRepo purchase.Repository,
	bookRepo book.Repository,
	txManager TxManager,
) *UpdatePurchaseUseCase {
	return &UpdatePurchaseUseCase{
		purchaseRepo: purchaseRepo,
		bookRepo:     bookRepo,
		txManager:    txManager,
	}
}

// UpdatePurchaseRequest 编辑采购单请求DTO
// Items为nil表示不改明细
type UpdatePurchaseRequest struct {
	TransactionID uint
	SupplierID    uint
	PurchaseDate  time.Time
	Note          string
	Items         []CreatePurchaseItem
}

// Execute 执行编辑采购单
func (uc *UpdatePurchaseUseCase) Execute(ctx context.Context, req UpdatePurchaseRequest) (*purchase.Transaction, error) {
	var result *purchase.Transaction

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		tx, err := uc.purchaseRepo.FindByID(txCtx, req.TransactionID)
		if err != nil {
			return err
		}

		if err := tx.UpdateInfo(req.SupplierID, req.PurchaseDate, req.Note); err != nil {
			return err
		}

		if req.Items != nil {
			items := make([]purchase.Item, len(req.Items))
			for i, item := range req.Items {
				b, err := uc.bookRepo.FindByID(txCtx, item.BookID)
				if err != nil {
					return err
				}

				unitPrice := item.UnitPrice
				if unitPrice < 0 {
					unitPrice = b.PurchasingPrice
				}
				if unitPrice > b.Price {
					return purchase.ErrPriceAboveCatalog
				}

				items[i] = purchase.Item{
					BookID:    item.BookID,
					Quantity:  item.Quantity,
					UnitPrice: unitPrice,
				}
			}

			if err := tx.ReplaceItems(items); err != nil {
				return err
			}
		}

		if err := uc.purchaseRepo.Update(txCtx, tx); err != nil {
			return err
		}

		result = tx
		return nil
	})

	if err != nil {
		return nil, err
	}

	return result, nil
}

// DeletePurchaseUseCase 删除采购单用例
// 业务规则:仅Pending可删(未入库,无库存影响);终态拒绝
type DeletePurchaseUseCase struct {
	purchaseRepo purchase.Repository
	txManager    TxManager
}

// NewDeletePurchaseUseCase 创建删除采购单用例
func NewDeletePurchaseUseCase(purchaseRepo purchase.Repository, txManager TxManager) *DeletePurchaseUseCase {
	return &DeletePurchaseUseCase{purchaseRepo: purchaseRepo, txManager: txManager}
}

// Execute 执行删除采购单
func (uc *DeletePurchaseUseCase) Execute(ctx context.Context, transactionID uint) error {
	return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		tx, err := uc.purchaseRepo.FindByID(txCtx, transactionID)
		if err != nil {
			return err
		}

		if !tx.Editable() {
			return purchase.ErrTransactionLocked
		}

		return uc.purchaseRepo.Delete(txCtx, transactionID)
	})
}
