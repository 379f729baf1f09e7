package purchase

import (
	"context"

	"github.com/xiebiao/bookstore-admin/internal/domain/purchase"
	"github.com/xiebiao/bookstore-admin/internal/domain/stock"
	"github.com/xiebiao/bookstore-admin/internal/infrastructure/event"
	"github.com/xiebiao/bookstore-admin/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookstore-admin/pkg/metrics"
)

// CompletePurchaseUseCase 采购入库用例
// 业务规则:
// 1. 只有Pending状态可入库(状态机把关),
//    对已入库/已取消的单再次操作返回锁定错误且库存不变
// 2. 状态流转与库存加成在同一事务内:要么都生效,要么都不生效
type CompletePurchaseUseCase struct {
	purchaseRepo purchase.Repository
	guard        *stock.Guard
	txManager    TxManager
	publisher    event.Publisher
	stockCache   *redis.StockCache
}

// NewCompletePurchaseUseCase 创建采购入库用例
func NewCompletePurchaseUseCase(
	purchaseRepo purchase.Repository,
	guard *stock.Guard,
	txManager TxManager,
	publisher event.Publisher,
	stockCache *redis.StockCache,
) *CompletePurchaseUseCase {
	return &CompletePurchaseUseCase{
		purchaseRepo: purchaseRepo,
		guard:        guard,
		txManager:    txManager,
		publisher:    publisher,
		stockCache:   stockCache,
	}
}

// Execute 执行采购入库
func (uc *CompletePurchaseUseCase) Execute(ctx context.Context, transactionID uint) (*purchase.Transaction, error) {
	var result *purchase.Transaction

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		tx, err := uc.purchaseRepo.FindByID(txCtx, transactionID)
		if err != nil {
			return err
		}

		// 状态机闸口:终态直接拒绝,不做任何库存运算
		if err := tx.Complete(); err != nil {
			return err
		}

		// 按明细逐本加库存
		movements := make([]stock.Movement, len(tx.Items))
		for i, item := range tx.Items {
			movements[i] = stock.Movement{BookID: item.BookID, Quantity: item.Quantity}
		}
		if err := uc.guard.ApplyPurchaseCompletion(txCtx, movements); err != nil {
			return err
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

	if metrics.PurchasesCompletedTotal != nil {
		metrics.IncCounter(metrics.PurchasesCompletedTotal)
		for range result.Items {
			metrics.IncCounterVec(metrics.StockMovementsTotal, map[string]string{"reason": "purchase_completion"})
		}
	}

	if uc.stockCache != nil {
		ids := make([]uint, len(result.Items))
		for i, item := range result.Items {
			ids[i] = item.BookID
		}
		_ = uc.stockCache.Invalidate(ctx, ids...)
	}

	if uc.publisher != nil {
		uc.publisher.Publish(ctx, event.RoutingKeyPurchaseCompleted, event.PurchaseCompletedEvent{
			TransactionID: result.ID,
			TransactionNo: result.TransactionNo,
			SupplierID:    result.SupplierID,
			Total:         result.Total(),
		})
		for _, item := range result.Items {
			uc.publisher.Publish(ctx, event.RoutingKeyStockChanged, event.StockChangedEvent{
				BookID: item.BookID,
				Delta:  item.Quantity,
				Reason: "purchase_completion",
			})
		}
	}

	return result, nil
}

// CancelPurchaseUseCase 取消采购用例
// 纯状态变更:不碰库存;终态拒绝
type CancelPurchaseUseCase struct {
	purchaseRepo purchase.Repository
	txManager    TxManager
}

// NewCancelPurchaseUseCase 创建取消采购用例
func NewCancelPurchaseUseCase(purchaseRepo purchase.Repository, txManager TxManager) *CancelPurchaseUseCase {
	return &CancelPurchaseUseCase{purchaseRepo: purchaseRepo, txManager: txManager}
}

// Execute 执行取消采购
func (uc *CancelPurchaseUseCase) Execute(ctx context.Context, transactionID uint) (*purchase.Transaction, error) {
	var result *purchase.Transaction

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		tx, err := uc.purchaseRepo.FindByID(txCtx, transactionID)
		if err != nil {
			return err
		}

		if err := tx.Cancel(); err != nil {
			return err
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
