package sales

import (
	"context"
	"time"

	"github.com/xiebiao/bookstore-admin/internal/domain/associate"
	"github.com/xiebiao/bookstore-admin/internal/domain/book"
	"github.com/xiebiao/bookstore-admin/internal/domain/sales"
	"github.com/xiebiao/bookstore-admin/internal/domain/stock"
	"github.com/xiebiao/bookstore-admin/internal/infrastructure/persistence/redis"
)

// UpdateSalesUseCase 编辑销售单用例
// 业务规则:
// 1. 单头(业务员、付款方式、日期)在Lunas之前可改
// 2. 明细只在Pesanan状态可改,整体替换:
//    旧明细按快照回补库存,新明细重新锁书、快照、扣减,
//    全程在同一事务内,失败整体回滚
type UpdateSalesUseCase struct {
	salesRepo     sales.Repository
	bookRepo      book.Repository
	associateRepo associate.Repository
	guard         *stock.Guard
	txManager     TxManager
	stockCache    *redis.StockCache
}

// NewUpdateSalesUseCase 创建编辑销售单用例
func NewUpdateSalesUseCase(
	salesRepo sales.Repository,
	bookRepo book.Repository,
	associateRepo associate.Repository,
	guard *stock.Guard,
	txManager TxManager,
	stockCache *redis.StockCache,
) *UpdateSalesUseCase {
	return &UpdateSalesUseCase{
		salesRepo:     salesRepo,
		bookRepo:      bookRepo,
		associateRepo: associateRepo,
		guard:         guard,
		txManager:     txManager,
		stockCache:    stockCache,
	}
}

// UpdateSalesRequest 编辑销售单请求DTO
// Items为nil表示不改明细;非nil表示整体替换
type UpdateSalesRequest struct {
	TransactionID   uint
	AssociateID     uint
	PaymentType     string
	TransactionDate time.Time
	DueDate         *time.Time
	Items           []CreateSalesItem
}

// Execute 执行编辑销售单
func (uc *UpdateSalesUseCase) Execute(ctx context.Context, req UpdateSalesRequest) (*sales.Summary, error) {
	var result *sales.Transaction
	var touchedBooks []uint

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		tx, err := uc.salesRepo.FindByID(txCtx, req.TransactionID)
		if err != nil {
			return err
		}

		// Lunas整单锁定(单头也不可改)
		if tx.Status == sales.StatusLunas {
			return sales.ErrTransactionLocked
		}

		// 1. 更新单头
		if req.AssociateID != 0 {
			tx.AssociateID = req.AssociateID
		}
		if req.PaymentType != "" {
			tx.PaymentType = sales.PaymentType(req.PaymentType)
		}
		if !req.TransactionDate.IsZero() {
			tx.TransactionDate = req.TransactionDate
		}
		if req.DueDate != nil {
			tx.DueDate = req.DueDate
		}
		if err := tx.ValidateSchedule(); err != nil {
			return err
		}

		// 2. 明细整体替换(仅Pesanan,领域层把关)
		if req.Items != nil {
			// 折扣缺省回填用的业务员默认折扣(以改单后的业务员为准)
			a, err := uc.associateRepo.FindByID(txCtx, tx.AssociateID)
			if err != nil {
				return err
			}

			// 旧明细按快照回补
			oldMovements := make([]stock.Movement, len(tx.Items))
			for i, item := range tx.Items {
				oldMovements[i] = stock.Movement{BookID: item.BookID, Quantity: item.Quantity}
				touchedBooks = append(touchedBooks, item.BookID)
			}

			// 新明细重新锁书、快照、收敛
			newItems := make([]sales.Item, len(req.Items))
			newMovements := make([]stock.Movement, len(req.Items))
			for i, item := range req.Items {
				b, err := uc.bookRepo.LockByID(txCtx, item.BookID)
				if err != nil {
					return err
				}
				// 回补后的可用库存 = 现有 + 本单旧明细中同一本书的数量
				available := b.Stock
				for _, old := range oldMovements {
					if old.BookID == item.BookID {
						available += old.Quantity
					}
				}
				quantity := stock.ClampQuantity(item.Quantity, available)

				discount := item.Discount
				if discount < 0 {
					discount = a.Discount
				}

				newItems[i] = sales.Item{
					BookID:       item.BookID,
					Quantity:     quantity,
					BasePrice:    b.Price,
					CategoryCode: b.CategoryCode,
					Promotion:    item.Promotion,
					Discount:     discount,
				}
				newMovements[i] = stock.Movement{BookID: item.BookID, Quantity: quantity}
				touchedBooks = append(touchedBooks, item.BookID)
			}

			if err := tx.ReplaceItems(newItems); err != nil {
				return err
			}

			// 先补旧、再扣新,同一事务内原子完成
			if err := uc.guard.ReverseSaleOnDelete(txCtx, oldMovements); err != nil {
				return err
			}
			if err := uc.guard.ApplySaleCreation(txCtx, newMovements); err != nil {
				return err
			}
		}

		tx.UpdatedAt = time.Now()
		if err := uc.salesRepo.Update(txCtx, tx); err != nil {
			return err
		}

		result = tx
		return nil
	})

	if err != nil {
		return nil, err
	}

	if uc.stockCache != nil && len(touchedBooks) > 0 {
		_ = uc.stockCache.Invalidate(ctx, touchedBooks...)
	}

	return sales.Summarize(result), nil
}
