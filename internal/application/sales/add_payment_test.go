package sales

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookstore-admin/internal/domain/sales"
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
)

// seedTransaction 预置一张已持久化的销售单(总额50000)
func seedTransaction(t *testing.T, repo *fakeSalesRepo) *sales.Transaction {
	t.Helper()

	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	due := date.AddDate(0, 1, 0)
	tx, err := sales.NewTransaction("TRX-TEST-001", 1, sales.PaymentTypeCredit, date, &due, []sales.Item{
		{BookID: 1, Quantity: 5, BasePrice: 10000, CategoryCode: "BUKU"},
	})
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), tx))
	return tx
}

func TestAddPayment(t *testing.T) {
	t.Run("部分收款转入分期", func(t *testing.T) {
		repo := newFakeSalesRepo()
		tx := seedTransaction(t, repo)
		uc := NewAddPaymentUseCase(repo, &fakeTxManager{})

		summary, err := uc.Execute(context.Background(), AddPaymentRequest{
			TransactionID: tx.ID,
			Amount:        20000,
		})
		require.NoError(t, err)

		assert.Equal(t, sales.StatusAngsuran, summary.Status)
		assert.Equal(t, int64(30000), summary.RemainingBalance)
	})

	t.Run("结清转入Lunas并锁定后续收款", func(t *testing.T) {
		repo := newFakeSalesRepo()
		tx := seedTransaction(t, repo)
		uc := NewAddPaymentUseCase(repo, &fakeTxManager{})

		summary, err := uc.Execute(context.Background(), AddPaymentRequest{
			TransactionID: tx.ID,
			Amount:        50000,
		})
		require.NoError(t, err)
		assert.Equal(t, sales.StatusLunas, summary.Status)
		assert.Equal(t, int64(0), summary.RemainingBalance)

		_, err = uc.Execute(context.Background(), AddPaymentRequest{
			TransactionID: tx.ID,
			Amount:        1000,
		})
		assert.ErrorIs(t, err, sales.ErrTransactionLocked)
	})

	t.Run("超付整笔拒绝", func(t *testing.T) {
		repo := newFakeSalesRepo()
		tx := seedTransaction(t, repo)
		uc := NewAddPaymentUseCase(repo, &fakeTxManager{})

		_, err := uc.Execute(context.Background(), AddPaymentRequest{
			TransactionID: tx.ID,
			Amount:        60000,
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeOverpayment))

		// 拒绝后收款列表保持不变
		saved, err := repo.FindByID(context.Background(), tx.ID)
		require.NoError(t, err)
		assert.Empty(t, saved.Payments)
		assert.Equal(t, sales.StatusPesanan, saved.Status)
	})

	t.Run("金额为零拒绝", func(t *testing.T) {
		repo := newFakeSalesRepo()
		tx := seedTransaction(t, repo)
		uc := NewAddPaymentUseCase(repo, &fakeTxManager{})

		_, err := uc.Execute(context.Background(), AddPaymentRequest{
			TransactionID: tx.ID,
			Amount:        0,
		})
		assert.ErrorIs(t, err, sales.ErrInvalidPaymentAmount)
	})
}

func TestRemovePayment(t *testing.T) {
	t.Run("删除收款后状态回退", func(t *testing.T) {
		repo := newFakeSalesRepo()
		tx := seedTransaction(t, repo)
		addUC := NewAddPaymentUseCase(repo, &fakeTxManager{})
		removeUC := NewRemovePaymentUseCase(repo, &fakeTxManager{})

		_, err := addUC.Execute(context.Background(), AddPaymentRequest{
			TransactionID: tx.ID,
			Amount:        20000,
		})
		require.NoError(t, err)

		saved, err := repo.FindByID(context.Background(), tx.ID)
		require.NoError(t, err)
		require.Len(t, saved.Payments, 1)

		summary, err := removeUC.Execute(context.Background(), tx.ID, saved.Payments[0].ID)
		require.NoError(t, err)
		assert.Equal(t, sales.StatusPesanan, summary.Status)
		assert.Empty(t, summary.Payments)
	})

	t.Run("Lunas锁定删除入口", func(t *testing.T) {
		repo := newFakeSalesRepo()
		tx := seedTransaction(t, repo)
		addUC := NewAddPaymentUseCase(repo, &fakeTxManager{})
		removeUC := NewRemovePaymentUseCase(repo, &fakeTxManager{})

		_, err := addUC.Execute(context.Background(), AddPaymentRequest{
			TransactionID: tx.ID,
			Amount:        50000,
		})
		require.NoError(t, err)

		saved, err := repo.FindByID(context.Background(), tx.ID)
		require.NoError(t, err)

		_, err = removeUC.Execute(context.Background(), tx.ID, saved.Payments[0].ID)
		assert.ErrorIs(t, err, sales.ErrTransactionLocked)
	})
}
