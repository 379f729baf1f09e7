package sales

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookstore-admin/internal/domain/master"
	"github.com/xiebiao/bookstore-admin/internal/domain/sales"
)

func TestSaveShipping(t *testing.T) {
	expeditionRepo := newFakeExpeditionRepo(&master.Expedition{ID: 1, Name: "JNE"})

	t.Run("运费计入总额不参与折扣", func(t *testing.T) {
		repo := newFakeSalesRepo()
		tx := seedTransaction(t, repo)
		uc := NewSaveShippingUseCase(repo, expeditionRepo, &fakeTxManager{})

		summary, err := uc.Execute(context.Background(), SaveShippingRequest{
			TransactionID: tx.ID,
			ExpeditionID:  1,
			NoResi:        "JNE-123",
			TotalAmount:   15000,
		})
		require.NoError(t, err)

		assert.Equal(t, int64(15000), summary.ShippingTotal)
		assert.Equal(t, int64(65000), summary.GrandTotal)
	})

	t.Run("快递公司不存在拒绝", func(t *testing.T) {
		repo := newFakeSalesRepo()
		tx := seedTransaction(t, repo)
		uc := NewSaveShippingUseCase(repo, expeditionRepo, &fakeTxManager{})

		_, err := uc.Execute(context.Background(), SaveShippingRequest{
			TransactionID: tx.ID,
			ExpeditionID:  99,
			TotalAmount:   15000,
		})
		assert.ErrorIs(t, err, master.ErrNotFound)
	})

	t.Run("负运费拒绝", func(t *testing.T) {
		repo := newFakeSalesRepo()
		tx := seedTransaction(t, repo)
		uc := NewSaveShippingUseCase(repo, expeditionRepo, &fakeTxManager{})

		_, err := uc.Execute(context.Background(), SaveShippingRequest{
			TransactionID: tx.ID,
			ExpeditionID:  1,
			TotalAmount:   -1,
		})
		assert.ErrorIs(t, err, sales.ErrInvalidShippingAmount)
	})

	t.Run("分期中删除运单不能让收款超过总额", func(t *testing.T) {
		repo := newFakeSalesRepo()
		tx := seedTransaction(t, repo) // 明细总额50000
		saveUC := NewSaveShippingUseCase(repo, expeditionRepo, &fakeTxManager{})
		withShipping, err := saveUC.Execute(context.Background(), SaveShippingRequest{
			TransactionID: tx.ID,
			ExpeditionID:  1,
			NoResi:        "JNE-456",
			TotalAmount:   20000,
		})
		require.NoError(t, err)
		require.Equal(t, int64(70000), withShipping.GrandTotal)

		payUC := NewAddPaymentUseCase(repo, &fakeTxManager{})
		paid, err := payUC.Execute(context.Background(), AddPaymentRequest{
			TransactionID: tx.ID,
			PaymentDate:   time.Now(),
			Amount:        60000,
		})
		require.NoError(t, err)
		require.Equal(t, sales.StatusAngsuran, paid.Status)

		// 删掉运单总额只剩50000,低于已收60000,必须整笔拒绝
		removeUC := NewRemoveShippingUseCase(repo, &fakeTxManager{})
		_, err = removeUC.Execute(context.Background(), tx.ID, withShipping.Shippings[0].ID)
		assert.ErrorIs(t, err, sales.ErrTotalBelowPayments)

		saved, err := repo.FindByID(context.Background(), tx.ID)
		require.NoError(t, err)
		assert.Len(t, saved.Shippings, 1)
		assert.Equal(t, int64(10000), sales.Summarize(saved).RemainingBalance)
	})

	t.Run("Lunas锁定运单维护", func(t *testing.T) {
		repo := newFakeSalesRepo()
		tx := seedTransaction(t, repo)
		payUC := NewAddPaymentUseCase(repo, &fakeTxManager{})
		_, err := payUC.Execute(context.Background(), AddPaymentRequest{
			TransactionID: tx.ID,
			PaymentDate:   time.Now(),
			Amount:        50000,
		})
		require.NoError(t, err)

		uc := NewSaveShippingUseCase(repo, expeditionRepo, &fakeTxManager{})
		_, err = uc.Execute(context.Background(), SaveShippingRequest{
			TransactionID: tx.ID,
			ExpeditionID:  1,
			TotalAmount:   5000,
		})
		assert.ErrorIs(t, err, sales.ErrTransactionLocked)
	})
}
