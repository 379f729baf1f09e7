package purchase

import (
	"context"
	"time"

	"github.com/xiebiao/bookstore-admin/internal/domain/book"
	"github.com/xiebiao/bookstore-admin/internal/domain/master"
	"github.com/xiebiao/bookstore-admin/internal/domain/purchase"
	"github.com/xiebiao/bookstore-admin/pkg/metrics"
)

// CreatePurchaseUseCase 创建采购单用例
// 业务规则:
// 1. 供应商(出版社)必须存在
// 2. 进货单价默认取图书的采购参考价,上限为图书当前售价
//    (防止进价高于转售价)
// 3. 采购数量不受现有库存上限约束
// 4. 创建后为Pending状态,不碰库存
type CreatePurchaseUseCase struct {
	purchaseRepo  purchase.Repository
	bookRepo      book.Repository
	publisherRepo master.PublisherRepository
}

// NewCreatePurchaseUseCase 创建采购单用例
func NewCreatePurchaseUseCase(
	purchaseRepo purchase.Repository,
	bookRepo book.Repository,
	publisherRepo master.PublisherRepository,
) *CreatePurchaseUseCase {
	return &CreatePurchaseUseCase{
		purchaseRepo:  purchaseRepo,
		bookRepo:      bookRepo,
		publisherRepo: publisherRepo,
	}
}

// CreatePurchaseRequest 创建采购单请求DTO
type CreatePurchaseRequest struct {
	SupplierID   uint
	PurchaseDate time.Time
	Note         string
	Items        []CreatePurchaseItem
}

// CreatePurchaseItem 采购明细项
// UnitPrice为负表示未填,取图书的采购参考价
type CreatePurchaseItem struct {
	BookID    uint
	Quantity  int
	UnitPrice int64
}

// Execute 执行创建采购单
func (uc *CreatePurchaseUseCase) Execute(ctx context.Context, req CreatePurchaseRequest) (*purchase.Transaction, error) {
	if len(req.Items) == 0 {
		return nil, purchase.ErrEmptyItems
	}

	// 供应商必须存在
	if _, err := uc.publisherRepo.FindByID(ctx, req.SupplierID); err != nil {
		return nil, err
	}

	// 逐本校验图书并确定单价
	items := make([]purchase.Item, len(req.Items))
	for i, item := range req.Items {
		b, err := uc.bookRepo.FindByID(ctx, item.BookID)
		if err != nil {
			return nil, err
		}

		unitPrice := item.UnitPrice
		if unitPrice < 0 {
			unitPrice = b.PurchasingPrice
		}

		// 进价不得高于当前售价
		if unitPrice > b.Price {
			return nil, purchase.ErrPriceAboveCatalog
		}

		items[i] = purchase.Item{
			BookID:    item.BookID,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
		}
	}

	tx, err := purchase.NewTransaction(
		purchase.GenerateTransactionNo(),
		req.SupplierID,
		req.PurchaseDate,
		req.Note,
		items,
	)
	if err != nil {
		return nil, err
	}

	if err := uc.purchaseRepo.Create(ctx, tx); err != nil {
		return nil, err
	}

	if metrics.PurchasesCreatedTotal != nil {
		metrics.IncCounter(metrics.PurchasesCreatedTotal)
	}

	return tx, nil
}
