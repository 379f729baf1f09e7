package purchase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookstore-admin/internal/domain/book"
	"github.com/xiebiao/bookstore-admin/internal/domain/master"
	"github.com/xiebiao/bookstore-admin/internal/domain/purchase"
	"github.com/xiebiao/bookstore-admin/internal/domain/stock"
)

type purchaseFixture struct {
	purchaseRepo *fakePurchaseRepo
	bookRepo     *fakeBookRepo
	create       *CreatePurchaseUseCase
	complete     *CompletePurchaseUseCase
	cancel       *CancelPurchaseUseCase
	remove       *DeletePurchaseUseCase
}

func newPurchaseFixture(books ...*book.Book) *purchaseFixture {
	purchaseRepo := newFakePurchaseRepo()
	bookRepo := newFakeBookRepo(books...)
	publisherRepo := newFakePublisherRepo(&master.Publisher{ID: 1, Name: "Erlangga"})
	guard := stock.NewGuard(bookRepo)
	tm := &fakeTxManager{}

	return &purchaseFixture{
		purchaseRepo: purchaseRepo,
		bookRepo:     bookRepo,
		create:       NewCreatePurchaseUseCase(purchaseRepo, bookRepo, publisherRepo),
		complete:     NewCompletePurchaseUseCase(purchaseRepo, guard, tm, nil, nil),
		cancel:       NewCancelPurchaseUseCase(purchaseRepo, tm),
		remove:       NewDeletePurchaseUseCase(purchaseRepo, tm),
	}
}

func (f *purchaseFixture) seed(t *testing.T, items ...CreatePurchaseItem) *purchase.Transaction {
	t.Helper()

	tx, err := f.create.Execute(context.Background(), CreatePurchaseRequest{
		SupplierID:   1,
		PurchaseDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Items:        items,
	})
	require.NoError(t, err)
	return tx
}

func TestCreatePurchase(t *testing.T) {
	t.Run("创建后为Pending且不碰库存", func(t *testing.T) {
		f := newPurchaseFixture(
			&book.Book{ID: 1, Code: "BK-001", Price: 10000, PurchasingPrice: 7000, Stock: 10},
		)

		tx := f.seed(t, CreatePurchaseItem{BookID: 1, Quantity: 5, UnitPrice: 8000})

		assert.Equal(t, purchase.StatusPending, tx.Status)
		assert.Equal(t, int64(8000), tx.Items[0].UnitPrice)
		assert.Equal(t, 10, f.bookRepo.stockOf(1))
	})

	t.Run("单价未填取采购参考价", func(t *testing.T) {
		f := newPurchaseFixture(
			&book.Book{ID: 1, Code: "BK-001", Price: 10000, PurchasingPrice: 7000, Stock: 10},
		)

		tx := f.seed(t, CreatePurchaseItem{BookID: 1, Quantity: 5, UnitPrice: -1})
		assert.Equal(t, int64(7000), tx.Items[0].UnitPrice)
	})

	t.Run("进价高于售价拒绝", func(t *testing.T) {
		f := newPurchaseFixture(
			&book.Book{ID: 1, Code: "BK-001", Price: 10000, PurchasingPrice: 7000, Stock: 10},
		)

		_, err := f.create.Execute(context.Background(), CreatePurchaseRequest{
			SupplierID:   1,
			PurchaseDate: time.Now(),
			Items:        []CreatePurchaseItem{{BookID: 1, Quantity: 5, UnitPrice: 12000}},
		})
		assert.ErrorIs(t, err, purchase.ErrPriceAboveCatalog)
	})

	t.Run("采购数量不受现有库存上限约束", func(t *testing.T) {
		f := newPurchaseFixture(
			&book.Book{ID: 1, Code: "BK-001", Price: 10000, PurchasingPrice: 7000, Stock: 2},
		)

		tx := f.seed(t, CreatePurchaseItem{BookID: 1, Quantity: 500, UnitPrice: 7000})
		assert.Equal(t, 500, tx.Items[0].Quantity)
	})

	t.Run("供应商不存在拒绝", func(t *testing.T) {
		f := newPurchaseFixture(
			&book.Book{ID: 1, Code: "BK-001", Price: 10000, Stock: 10},
		)

		_, err := f.create.Execute(context.Background(), CreatePurchaseRequest{
			SupplierID:   99,
			PurchaseDate: time.Now(),
			Items:        []CreatePurchaseItem{{BookID: 1, Quantity: 5, UnitPrice: 7000}},
		})
		assert.ErrorIs(t, err, master.ErrNotFound)
	})
}

func TestCompletePurchase(t *testing.T) {
	t.Run("入库加库存并冻结单据", func(t *testing.T) {
		f := newPurchaseFixture(
			&book.Book{ID: 1, Code: "BK-001", Price: 10000, PurchasingPrice: 7000, Stock: 10},
		)
		tx := f.seed(t, CreatePurchaseItem{BookID: 1, Quantity: 5, UnitPrice: 7000})

		completed, err := f.complete.Execute(context.Background(), tx.ID)
		require.NoError(t, err)

		assert.Equal(t, purchase.StatusCompleted, completed.Status)
		assert.Equal(t, 15, f.bookRepo.stockOf(1))
	})

	t.Run("重复入库拒绝且库存只加一次", func(t *testing.T) {
		f := newPurchaseFixture(
			&book.Book{ID: 1, Code: "BK-001", Price: 10000, PurchasingPrice: 7000, Stock: 10},
		)
		tx := f.seed(t, CreatePurchaseItem{BookID: 1, Quantity: 5, UnitPrice: 7000})

		_, err := f.complete.Execute(context.Background(), tx.ID)
		require.NoError(t, err)

		_, err = f.complete.Execute(context.Background(), tx.ID)
		assert.ErrorIs(t, err, purchase.ErrTransactionLocked)
		assert.Equal(t, 15, f.bookRepo.stockOf(1))
	})

	t.Run("已取消的单拒绝入库", func(t *testing.T) {
		f := newPurchaseFixture(
			&book.Book{ID: 1, Code: "BK-001", Price: 10000, PurchasingPrice: 7000, Stock: 10},
		)
		tx := f.seed(t, CreatePurchaseItem{BookID: 1, Quantity: 5, UnitPrice: 7000})

		_, err := f.cancel.Execute(context.Background(), tx.ID)
		require.NoError(t, err)

		_, err = f.complete.Execute(context.Background(), tx.ID)
		assert.ErrorIs(t, err, purchase.ErrTransactionLocked)
		assert.Equal(t, 10, f.bookRepo.stockOf(1))
	})
}

func TestCancelPurchase(t *testing.T) {
	t.Run("取消是纯状态变更", func(t *testing.T) {
		f := newPurchaseFixture(
			&book.Book{ID: 1, Code: "BK-001", Price: 10000, PurchasingPrice: 7000, Stock: 10},
		)
		tx := f.seed(t, CreatePurchaseItem{BookID: 1, Quantity: 5, UnitPrice: 7000})

		cancelled, err := f.cancel.Execute(context.Background(), tx.ID)
		require.NoError(t, err)

		assert.Equal(t, purchase.StatusCancelled, cancelled.Status)
		assert.Equal(t, 10, f.bookRepo.stockOf(1))
	})

	t.Run("已入库的单拒绝取消", func(t *testing.T) {
		f := newPurchaseFixture(
			&book.Book{ID: 1, Code: "BK-001", Price: 10000, PurchasingPrice: 7000, Stock: 10},
		)
		tx := f.seed(t, CreatePurchaseItem{BookID: 1, Quantity: 5, UnitPrice: 7000})

		_, err := f.complete.Execute(context.Background(), tx.ID)
		require.NoError(t, err)

		_, err = f.cancel.Execute(context.Background(), tx.ID)
		assert.ErrorIs(t, err, purchase.ErrTransactionLocked)
	})
}

func TestDeletePurchase(t *testing.T) {
	t.Run("Pending可删", func(t *testing.T) {
		f := newPurchaseFixture(
			&book.Book{ID: 1, Code: "BK-001", Price: 10000, PurchasingPrice: 7000, Stock: 10},
		)
		tx := f.seed(t, CreatePurchaseItem{BookID: 1, Quantity: 5, UnitPrice: 7000})

		require.NoError(t, f.remove.Execute(context.Background(), tx.ID))

		_, err := f.purchaseRepo.FindByID(context.Background(), tx.ID)
		assert.ErrorIs(t, err, purchase.ErrTransactionNotFound)
	})

	t.Run("终态拒绝删除", func(t *testing.T) {
		f := newPurchaseFixture(
			&book.Book{ID: 1, Code: "BK-001", Price: 10000, PurchasingPrice: 7000, Stock: 10},
		)
		tx := f.seed(t, CreatePurchaseItem{BookID: 1, Quantity: 5, UnitPrice: 7000})

		_, err := f.complete.Execute(context.Background(), tx.ID)
		require.NoError(t, err)

		err = f.remove.Execute(context.Background(), tx.ID)
		assert.ErrorIs(t, err, purchase.ErrTransactionLocked)
	})
}
