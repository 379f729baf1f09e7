package sales

import (
	"context"

	"github.com/xiebiao/bookstore-admin/internal/domain/sales"
	"github.com/xiebiao/bookstore-admin/internal/domain/stock"
	"github.com/xiebiao/bookstore-admin/internal/infrastructure/event"
	"github.com/xiebiao/bookstore-admin/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookstore-admin/pkg/metrics"
)

// DeleteSalesUseCase 删除销售单用例
// 业务规则:
// 1. Lunas状态整单锁定,不可删除
// 2. 库存按创建时保存的明细快照回补(不按当前目录重算),
//    与创建时的扣减严格对称:先建后删,库存不变
// 3. 回补与删除在同一事务内完成
type DeleteSalesUseCase struct {
	salesRepo  sales.Repository
	guard      *stock.Guard
	txManager  TxManager
	publisher  event.Publisher
	stockCache *redis.StockCache
}

// NewDeleteSalesUseCase 创建删除销售单用例
func NewDeleteSalesUseCase(
	salesRepo sales.Repository,
	guard *stock.Guard,
	txManager TxManager,
	publisher event.Publisher,
	stockCache *redis.StockCache,
) *DeleteSalesUseCase {
	return &DeleteSalesUseCase{
		salesRepo:  salesRepo,
		guard:      guard,
		txManager:  txManager,
		publisher:  publisher,
		stockCache: stockCache,
	}
}

// Execute 执行删除销售单
func (uc *DeleteSalesUseCase) Execute(ctx context.Context, transactionID uint) error {
	var deleted *sales.Transaction

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		tx, err := uc.salesRepo.FindByID(txCtx, transactionID)
		if err != nil {
			return err
		}

		if tx.Status == sales.StatusLunas {
			return sales.ErrTransactionLocked
		}

		// 按快照回补库存
		movements := make([]stock.Movement, len(tx.Items))
		for i, item := range tx.Items {
			movements[i] = stock.Movement{BookID: item.BookID, Quantity: item.Quantity}
		}
		if err := uc.guard.ReverseSaleOnDelete(txCtx, movements); err != nil {
			return err
		}

		if err := uc.salesRepo.Delete(txCtx, transactionID); err != nil {
			return err
		}

		deleted = tx
		return nil
	})

	if err != nil {
		return err
	}

	if metrics.StockMovementsTotal != nil {
		for range deleted.Items {
			metrics.IncCounterVec(metrics.StockMovementsTotal, map[string]string{"reason": "sale_reversal"})
		}
	}

	if uc.stockCache != nil {
		ids := make([]uint, len(deleted.Items))
		for i, item := range deleted.Items {
			ids[i] = item.BookID
		}
		_ = uc.stockCache.Invalidate(ctx, ids...)
	}

	if uc.publisher != nil {
		uc.publisher.Publish(ctx, event.RoutingKeySalesDeleted, event.SalesDeletedEvent{
			TransactionID: deleted.ID,
			TransactionNo: deleted.TransactionNo,
		})
		for _, item := range deleted.Items {
			uc.publisher.Publish(ctx, event.RoutingKeyStockChanged, event.StockChangedEvent{
				BookID: item.BookID,
				Delta:  item.Quantity,
				Reason: "sale_reversal",
			})
		}
	}

	return nil
}
