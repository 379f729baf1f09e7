package sales

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookstore-admin/internal/domain/associate"
	"github.com/xiebiao/bookstore-admin/internal/domain/book"
	"github.com/xiebiao/bookstore-admin/internal/domain/sales"
	"github.com/xiebiao/bookstore-admin/internal/domain/stock"
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
)

func newCreateSalesFixture(books ...*book.Book) (*CreateSalesUseCase, *fakeSalesRepo, *fakeBookRepo) {
	salesRepo := newFakeSalesRepo()
	bookRepo := newFakeBookRepo(books...)
	associateRepo := newFakeAssociateRepo(&associate.SalesAssociate{ID: 1, Name: "Budi"})
	uc := NewCreateSalesUseCase(
		salesRepo, bookRepo, associateRepo,
		stock.NewGuard(bookRepo), &fakeTxManager{},
		nil, nil,
	)
	return uc, salesRepo, bookRepo
}

func TestCreateSales(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("正常创建并扣减库存", func(t *testing.T) {
		uc, salesRepo, bookRepo := newCreateSalesFixture(
			&book.Book{ID: 1, Code: "LKS-001", CategoryCode: "LKS", Price: 10000, Stock: 10},
		)

		summary, err := uc.Execute(context.Background(), CreateSalesRequest{
			AssociateID:     1,
			PaymentType:     "T",
			TransactionDate: date,
			Items:           []CreateSalesItem{{BookID: 1, Quantity: 3}},
		})
		require.NoError(t, err)

		assert.Equal(t, sales.StatusPesanan, summary.Status)
		assert.Equal(t, int64(30000), summary.GrandTotal)
		assert.Equal(t, 7, bookRepo.stockOf(1))

		saved, err := salesRepo.FindByID(context.Background(), summary.TransactionID)
		require.NoError(t, err)
		assert.Len(t, saved.Items, 1)
	})

	t.Run("快照目录价与分类", func(t *testing.T) {
		uc, salesRepo, bookRepo := newCreateSalesFixture(
			&book.Book{ID: 1, Code: "LKS-001", CategoryCode: "LKS", Price: 10000, Stock: 10},
		)

		summary, err := uc.Execute(context.Background(), CreateSalesRequest{
			AssociateID:     1,
			PaymentType:     "T",
			TransactionDate: date,
			Items:           []CreateSalesItem{{BookID: 1, Quantity: 2}},
		})
		require.NoError(t, err)

		// 提交后涨价,历史单据不受影响
		bookRepo.books[1].Price = 99999

		saved, err := salesRepo.FindByID(context.Background(), summary.TransactionID)
		require.NoError(t, err)
		assert.Equal(t, int64(10000), saved.Items[0].BasePrice)
		assert.Equal(t, "LKS", saved.Items[0].CategoryCode)
	})

	t.Run("数量超过库存按库存收敛", func(t *testing.T) {
		uc, _, bookRepo := newCreateSalesFixture(
			&book.Book{ID: 1, Code: "BK-001", CategoryCode: "BUKU", Price: 5000, Stock: 4},
		)

		summary, err := uc.Execute(context.Background(), CreateSalesRequest{
			AssociateID:     1,
			PaymentType:     "T",
			TransactionDate: date,
			Items:           []CreateSalesItem{{BookID: 1, Quantity: 100}},
		})
		require.NoError(t, err)

		assert.Equal(t, 4, summary.Items[0].Quantity)
		assert.Equal(t, 0, bookRepo.stockOf(1))
	})

	t.Run("零库存拒绝并返回库存不足", func(t *testing.T) {
		uc, _, bookRepo := newCreateSalesFixture(
			&book.Book{ID: 1, Code: "BK-001", CategoryCode: "BUKU", Price: 5000, Stock: 0},
		)

		// 收敛下限为1,扣减时被原子检查拦下
		_, err := uc.Execute(context.Background(), CreateSalesRequest{
			AssociateID:     1,
			PaymentType:     "T",
			TransactionDate: date,
			Items:           []CreateSalesItem{{BookID: 1, Quantity: 5}},
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInsufficientStock))
		assert.Equal(t, 0, bookRepo.stockOf(1))
	})

	t.Run("折扣未填回填业务员默认折扣", func(t *testing.T) {
		salesRepo := newFakeSalesRepo()
		bookRepo := newFakeBookRepo(
			&book.Book{ID: 1, Code: "LKS-001", CategoryCode: "LKS", Price: 10000, Stock: 10},
		)
		associateRepo := newFakeAssociateRepo(&associate.SalesAssociate{ID: 1, Name: "Budi", Discount: 10})
		uc := NewCreateSalesUseCase(
			salesRepo, bookRepo, associateRepo,
			stock.NewGuard(bookRepo), &fakeTxManager{},
			nil, nil,
		)

		// 第一条未填(-1)取默认10%,第二条显式0%不回填
		summary, err := uc.Execute(context.Background(), CreateSalesRequest{
			AssociateID:     1,
			PaymentType:     "T",
			TransactionDate: date,
			Items: []CreateSalesItem{
				{BookID: 1, Quantity: 2, Discount: -1},
				{BookID: 1, Quantity: 1, Discount: 0},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, 10, summary.Items[0].Discount)
		assert.Equal(t, int64(9000), summary.Items[0].EffectivePrice)
		assert.Equal(t, 0, summary.Items[1].Discount)
		assert.Equal(t, int64(10000), summary.Items[1].EffectivePrice)
	})

	t.Run("明细为空拒绝", func(t *testing.T) {
		uc, _, _ := newCreateSalesFixture()

		_, err := uc.Execute(context.Background(), CreateSalesRequest{
			AssociateID:     1,
			PaymentType:     "T",
			TransactionDate: date,
		})
		assert.ErrorIs(t, err, sales.ErrEmptyItems)
	})

	t.Run("业务员不存在拒绝", func(t *testing.T) {
		uc, _, _ := newCreateSalesFixture(
			&book.Book{ID: 1, Code: "BK-001", Price: 5000, Stock: 10},
		)

		_, err := uc.Execute(context.Background(), CreateSalesRequest{
			AssociateID:     999,
			PaymentType:     "T",
			TransactionDate: date,
			Items:           []CreateSalesItem{{BookID: 1, Quantity: 1}},
		})
		assert.ErrorIs(t, err, associate.ErrAssociateNotFound)
	})

	t.Run("赊销缺到期日拒绝且不扣库存", func(t *testing.T) {
		uc, _, bookRepo := newCreateSalesFixture(
			&book.Book{ID: 1, Code: "BK-001", Price: 5000, Stock: 10},
		)

		_, err := uc.Execute(context.Background(), CreateSalesRequest{
			AssociateID:     1,
			PaymentType:     "K",
			TransactionDate: date,
			Items:           []CreateSalesItem{{BookID: 1, Quantity: 2}},
		})
		assert.ErrorIs(t, err, sales.ErrInvalidDueDate)
		assert.Equal(t, 10, bookRepo.stockOf(1))
	})
}
