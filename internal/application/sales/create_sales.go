package sales

import (
	"context"
	"time"

	"github.com/xiebiao/bookstore-admin/internal/domain/associate"
	"github.com/xiebiao/bookstore-admin/internal/domain/book"
	"github.com/xiebiao/bookstore-admin/internal/domain/sales"
	"github.com/xiebiao/bookstore-admin/internal/domain/stock"
	"github.com/xiebiao/bookstore-admin/internal/infrastructure/event"
	"github.com/xiebiao/bookstore-admin/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookstore-admin/pkg/errors"
	"github.com/xiebiao/bookstore-admin/pkg/metrics"
)

// CreateSalesUseCase 创建销售单用例
// 这是整个后台最核心的用例:涉及事务处理、悲观锁、
// 价格快照、数量收敛与库存扣减的原子提交
type CreateSalesUseCase struct {
	salesRepo     sales.Repository
	bookRepo      book.Repository
	associateRepo associate.Repository
	guard         *stock.Guard
	txManager     TxManager
	publisher     event.Publisher
	stockCache    *redis.StockCache
}

// NewCreateSalesUseCase 创建销售单用例
func NewCreateSalesUseCase(
	salesRepo sales.Repository,
	bookRepo book.Repository,
	associateRepo associate.Repository,
	guard *stock.Guard,
	txManager TxManager,
	publisher event.Publisher,
	stockCache *redis.StockCache,
) *CreateSalesUseCase {
	return &CreateSalesUseCase{
		salesRepo:     salesRepo,
		bookRepo:      bookRepo,
		associateRepo: associateRepo,
		guard:         guard,
		txManager:     txManager,
		publisher:     publisher,
		stockCache:    stockCache,
	}
}

// CreateSalesRequest 创建销售单请求DTO
type CreateSalesRequest struct {
	AssociateID     uint
	PaymentType     string // T现金 / K赊销
	TransactionDate time.Time
	DueDate         *time.Time // 仅赊销,必须晚于交易日期
	Items           []CreateSalesItem
}

// CreateSalesItem 销售明细项
type CreateSalesItem struct {
	BookID    uint
	Quantity  int   // 提交前按库存收敛:max(1, min(请求, 现有库存))
	Promotion int64 // 促销金额(仅LKS类生效)
	Discount  int   // 折扣百分比(仅LKS类生效);-1表示未填,回填业务员默认折扣
}

// Execute 执行创建销售单
//
// 防止超卖的完整流程(悲观锁):
// 1. SELECT FOR UPDATE逐本锁定图书行
// 2. 快照目录价与分类、收敛数量
// 3. 创建销售单(含明细)
// 4. 经StockGuard原子扣减库存
// 5. COMMIT释放锁;任一步失败整体回滚
func (uc *CreateSalesUseCase) Execute(ctx context.Context, req CreateSalesRequest) (*sales.Summary, error) {
	start := time.Now()

	if len(req.Items) == 0 {
		return nil, sales.ErrEmptyItems
	}

	// 业务员必须存在(默认折扣从这里取)
	a, err := uc.associateRepo.FindByID(ctx, req.AssociateID)
	if err != nil {
		return nil, err
	}

	var result *sales.Transaction
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 锁定图书行并构建明细(快照+收敛)
		items := make([]sales.Item, len(req.Items))
		movements := make([]stock.Movement, len(req.Items))
		for i, item := range req.Items {
			b, err := uc.bookRepo.LockByID(txCtx, item.BookID)
			if err != nil {
				return err
			}

			// 数量收敛:超过库存按库存封顶,下限为1
			quantity := stock.ClampQuantity(item.Quantity, b.Stock)

			// 折扣未填时回填业务员默认折扣(非LKS类计价时自然忽略)
			discount := item.Discount
			if discount < 0 {
				discount = a.Discount
			}

			// 价格与分类快照:目录价之后变化不影响本单
			// 非LKS类图书不参与促销/折扣(计价路径静默忽略)
			items[i] = sales.Item{
				BookID:       item.BookID,
				Quantity:     quantity,
				BasePrice:    b.Price,
				CategoryCode: b.CategoryCode,
				Promotion:    item.Promotion,
				Discount:     discount,
			}
			movements[i] = stock.Movement{BookID: item.BookID, Quantity: quantity}
		}

		// 2. 创建销售单聚合(校验付款方式与到期日)
		tx, err := sales.NewTransaction(
			sales.GenerateTransactionNo(),
			req.AssociateID,
			sales.PaymentType(req.PaymentType),
			req.TransactionDate,
			req.DueDate,
			items,
		)
		if err != nil {
			return err
		}

		// 3. 持久化销售单(包含明细)
		if err := uc.salesRepo.Create(txCtx, tx); err != nil {
			return err
		}

		// 4. 扣减库存(任一明细不足则整体回滚)
		if err := uc.guard.ApplySaleCreation(txCtx, movements); err != nil {
			return err
		}

		result = tx
		return nil
	})

	if err != nil {
		if metrics.SalesFailedTotal != nil {
			metrics.IncCounter(metrics.SalesFailedTotal)
		}
		if errors.IsCode(err, errors.ErrCodeInsufficientStock) && metrics.StockRejectionsTotal != nil {
			metrics.IncCounter(metrics.StockRejectionsTotal)
		}
		return nil, err
	}

	summary := sales.Summarize(result)

	// 指标与事件(事务已提交,失败只影响可观测性)
	if metrics.SalesCreatedTotal != nil {
		metrics.IncCounter(metrics.SalesCreatedTotal)
		metrics.ObserveHistogram(metrics.SalesCreationDuration, time.Since(start).Seconds())
		for range result.Items {
			metrics.IncCounterVec(metrics.StockMovementsTotal, map[string]string{"reason": "sale"})
		}
	}

	uc.invalidateStock(ctx, result.Items)

	if uc.publisher != nil {
		uc.publisher.Publish(ctx, event.RoutingKeySalesCreated, event.SalesCreatedEvent{
			TransactionID:   result.ID,
			TransactionNo:   result.TransactionNo,
			AssociateID:     result.AssociateID,
			PaymentType:     string(result.PaymentType),
			GrandTotal:      summary.GrandTotal,
			TransactionDate: result.TransactionDate.Format("2006-01-02"),
		})
		for _, item := range result.Items {
			uc.publisher.Publish(ctx, event.RoutingKeyStockChanged, event.StockChangedEvent{
				BookID: item.BookID,
				Delta:  -item.Quantity,
				Reason: "sale",
			})
		}
	}

	return summary, nil
}

// invalidateStock 交易提交后失效库存缓存
func (uc *CreateSalesUseCase) invalidateStock(ctx context.Context, items []sales.Item) {
	if uc.stockCache == nil {
		return
	}
	ids := make([]uint, len(items))
	for i, item := range items {
		ids[i] = item.BookID
	}
	// 失效失败不影响业务,短TTL兜底
	_ = uc.stockCache.Invalidate(ctx, ids...)
}
