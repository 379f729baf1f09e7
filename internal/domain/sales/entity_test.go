package sales

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems() []Item {
	return []Item{{BookID: 1, Quantity: 2, BasePrice: 100000, CategoryCode: "LKS", Promotion: 10000, Discount: 5}}
}

// TestNewTransaction 创建销售单
func TestNewTransaction(t *testing.T) {
	txDate := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	t.Run("现金单清空到期日", func(t *testing.T) {
		due := txDate.AddDate(0, 1, 0)
		tx, err := NewTransaction("TRX001", 1, PaymentTypeCash, txDate, &due, testItems())
		require.NoError(t, err)
		assert.Nil(t, tx.DueDate)
		assert.Equal(t, StatusPesanan, tx.Status)
	})

	t.Run("赊销单到期日必须晚于交易日期", func(t *testing.T) {
		// due_date=2024-01-05 早于 transaction_date=2024-01-10 → 拒绝
		due := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
		_, err := NewTransaction("TRX002", 1, PaymentTypeCredit, txDate, &due, testItems())
		assert.ErrorIs(t, err, ErrInvalidDueDate)
	})

	t.Run("赊销单到期日等于交易日期也拒绝", func(t *testing.T) {
		due := txDate
		_, err := NewTransaction("TRX003", 1, PaymentTypeCredit, txDate, &due, testItems())
		assert.ErrorIs(t, err, ErrInvalidDueDate)
	})

	t.Run("赊销单缺少到期日拒绝", func(t *testing.T) {
		_, err := NewTransaction("TRX004", 1, PaymentTypeCredit, txDate, nil, testItems())
		assert.ErrorIs(t, err, ErrInvalidDueDate)
	})

	t.Run("明细不能为空", func(t *testing.T) {
		_, err := NewTransaction("TRX005", 1, PaymentTypeCash, txDate, nil, nil)
		assert.ErrorIs(t, err, ErrEmptyItems)
	})

	t.Run("付款方式必须为T或K", func(t *testing.T) {
		_, err := NewTransaction("TRX006", 1, PaymentType("X"), txDate, nil, testItems())
		assert.ErrorIs(t, err, ErrInvalidPaymentType)
	})
}

// TestAddPayment 收款领域行为
func TestAddPayment(t *testing.T) {
	newTx := func(paymentType PaymentType) *Transaction {
		return &Transaction{
			ID:          1,
			PaymentType: paymentType,
			Status:      StatusPesanan,
			// 总额171000
			Items: testItems(),
		}
	}

	t.Run("部分收款后转Angsuran", func(t *testing.T) {
		tx := newTx(PaymentTypeCredit)
		err := tx.AddPayment(Payment{ID: 1, Amount: 71000, PaymentDate: time.Now()})
		require.NoError(t, err)
		assert.Equal(t, StatusAngsuran, tx.Status)
		assert.Equal(t, int64(100000), tx.RemainingBalance())
	})

	t.Run("结清后转Lunas并锁单", func(t *testing.T) {
		tx := newTx(PaymentTypeCash)
		require.NoError(t, tx.AddPayment(Payment{ID: 1, Amount: 171000, PaymentDate: time.Now()}))
		assert.Equal(t, StatusLunas, tx.Status)

		// Lunas之后拒绝新收款
		err := tx.AddPayment(Payment{ID: 2, Amount: 1000, PaymentDate: time.Now()})
		assert.ErrorIs(t, err, ErrTransactionLocked)
		assert.Len(t, tx.Payments, 1)
	})

	t.Run("现金单部分收款仍为Pesanan", func(t *testing.T) {
		// 分期只属于赊销;现金单收了一部分仍是订单,明细可改
		tx := newTx(PaymentTypeCash)
		require.NoError(t, tx.AddPayment(Payment{ID: 1, Amount: 71000, PaymentDate: time.Now()}))
		assert.Equal(t, StatusPesanan, tx.Status)
		assert.True(t, tx.Permissions().CanEditItems)
		assert.Equal(t, int64(100000), tx.RemainingBalance())
	})

	t.Run("超付拒绝且收款列表不变", func(t *testing.T) {
		tx := newTx(PaymentTypeCredit)
		require.NoError(t, tx.AddPayment(Payment{ID: 1, Amount: 150000, PaymentDate: time.Now()}))

		err := tx.AddPayment(Payment{ID: 2, Amount: 30000, PaymentDate: time.Now()})
		assert.ErrorIs(t, err, ErrOverpayment)
		assert.Len(t, tx.Payments, 1)
		assert.Equal(t, StatusAngsuran, tx.Status)
	})
}

// TestRemovePayment 删除收款后按余额重算状态
func TestRemovePayment(t *testing.T) {
	tx := &Transaction{
		ID:          1,
		PaymentType: PaymentTypeCredit,
		Status:      StatusPesanan,
		Items:       testItems(), // 总额171000
	}
	require.NoError(t, tx.AddPayment(Payment{ID: 1, Amount: 100000, PaymentDate: time.Now()}))
	require.NoError(t, tx.AddPayment(Payment{ID: 2, Amount: 71000, PaymentDate: time.Now()}))
	require.Equal(t, StatusLunas, tx.Status)

	t.Run("Lunas锁定删除入口", func(t *testing.T) {
		err := tx.RemovePayment(2)
		assert.ErrorIs(t, err, ErrTransactionLocked)
	})

	t.Run("未结清时可删并重算状态", func(t *testing.T) {
		tx.Status = StatusAngsuran // 模拟管理员冲正前的状态调整
		require.NoError(t, tx.RemovePayment(2))
		assert.Equal(t, StatusAngsuran, tx.Status)

		require.NoError(t, tx.RemovePayment(1))
		assert.Equal(t, StatusPesanan, tx.Status)
		assert.Empty(t, tx.Payments)
	})

	t.Run("收款记录不存在", func(t *testing.T) {
		err := tx.RemovePayment(99)
		assert.ErrorIs(t, err, ErrPaymentNotFound)
	})
}

// TestSaveShipping 运单维护
func TestSaveShipping(t *testing.T) {
	tx := &Transaction{ID: 1, Status: StatusPesanan, Items: testItems()}

	t.Run("新增运单", func(t *testing.T) {
		require.NoError(t, tx.SaveShipping(Shipping{ExpeditionID: 1, NoResi: "JNE001", TotalAmount: 15000}))
		assert.Len(t, tx.Shippings, 1)
		assert.Equal(t, int64(186000), tx.Total())
	})

	t.Run("更新已有运单", func(t *testing.T) {
		tx.Shippings[0].ID = 10
		require.NoError(t, tx.SaveShipping(Shipping{ID: 10, ExpeditionID: 2, NoResi: "POS002", TotalAmount: 20000}))
		assert.Len(t, tx.Shippings, 1)
		assert.Equal(t, int64(20000), tx.Shippings[0].TotalAmount)
	})

	t.Run("运费不能为负", func(t *testing.T) {
		err := tx.SaveShipping(Shipping{ExpeditionID: 1, TotalAmount: -1})
		assert.ErrorIs(t, err, ErrInvalidShippingAmount)
	})

	t.Run("Lunas锁定运单", func(t *testing.T) {
		tx.Status = StatusLunas
		err := tx.SaveShipping(Shipping{ExpeditionID: 1, TotalAmount: 5000})
		assert.ErrorIs(t, err, ErrTransactionLocked)

		err = tx.RemoveShipping(10)
		assert.ErrorIs(t, err, ErrTransactionLocked)
	})
}

// TestShippingBalanceGuard 运费调整不能让总额低于已收款
// 明细100000 + 运费20000 = 120000,已收110000(赊销分期中)
func TestShippingBalanceGuard(t *testing.T) {
	newTx := func(t *testing.T) *Transaction {
		t.Helper()
		tx := &Transaction{
			ID:          1,
			PaymentType: PaymentTypeCredit,
			Status:      StatusPesanan,
			Items:       []Item{{BookID: 1, Quantity: 1, BasePrice: 100000, CategoryCode: "PAKET"}},
			Shippings:   []Shipping{{ID: 7, ExpeditionID: 1, NoResi: "JNE001", TotalAmount: 20000}},
		}
		require.NoError(t, tx.AddPayment(Payment{ID: 1, Amount: 110000, PaymentDate: time.Now()}))
		require.Equal(t, StatusAngsuran, tx.Status)
		return tx
	}

	t.Run("删除运单使收款超过总额时拒绝", func(t *testing.T) {
		tx := newTx(t)
		err := tx.RemoveShipping(7)
		assert.ErrorIs(t, err, ErrTotalBelowPayments)
		assert.Len(t, tx.Shippings, 1)
		assert.Equal(t, int64(10000), tx.RemainingBalance())
	})

	t.Run("下调运费同理拒绝", func(t *testing.T) {
		tx := newTx(t)
		err := tx.SaveShipping(Shipping{ID: 7, ExpeditionID: 1, NoResi: "JNE001", TotalAmount: 5000})
		assert.ErrorIs(t, err, ErrTotalBelowPayments)
		assert.Equal(t, int64(20000), tx.Shippings[0].TotalAmount)
		assert.Equal(t, StatusAngsuran, tx.Status)
	})

	t.Run("下调后恰好结清则转Lunas", func(t *testing.T) {
		tx := newTx(t)
		require.NoError(t, tx.SaveShipping(Shipping{ID: 7, ExpeditionID: 1, NoResi: "JNE001", TotalAmount: 10000}))
		assert.Equal(t, StatusLunas, tx.Status)
		assert.Equal(t, int64(0), tx.RemainingBalance())
	})

	t.Run("上调运费正常放行", func(t *testing.T) {
		tx := newTx(t)
		require.NoError(t, tx.SaveShipping(Shipping{ID: 7, ExpeditionID: 1, NoResi: "JNE001", TotalAmount: 30000}))
		assert.Equal(t, int64(20000), tx.RemainingBalance())
		assert.Equal(t, StatusAngsuran, tx.Status)
	})
}

// TestReplaceItems 明细只在Pesanan可改
func TestReplaceItems(t *testing.T) {
	tx := &Transaction{ID: 1, Status: StatusPesanan, Items: testItems()}

	newItems := []Item{{BookID: 2, Quantity: 1, BasePrice: 50000, CategoryCode: "PAKET"}}
	require.NoError(t, tx.ReplaceItems(newItems))
	assert.Equal(t, int64(50000), tx.Total())

	t.Run("替换后总额不能低于已收款", func(t *testing.T) {
		// 现金单部分收款后仍是Pesanan,改单把总额压到收款之下要拒绝
		tx := &Transaction{
			ID:          2,
			PaymentType: PaymentTypeCash,
			Status:      StatusPesanan,
			Items:       testItems(), // 总额171000
		}
		require.NoError(t, tx.AddPayment(Payment{ID: 1, Amount: 60000, PaymentDate: time.Now()}))
		require.Equal(t, StatusPesanan, tx.Status)

		err := tx.ReplaceItems([]Item{{BookID: 3, Quantity: 1, BasePrice: 50000, CategoryCode: "PAKET"}})
		assert.ErrorIs(t, err, ErrTotalBelowPayments)
		assert.Equal(t, int64(171000), tx.Total())

		// 压到恰好等于收款则结清
		require.NoError(t, tx.ReplaceItems([]Item{{BookID: 3, Quantity: 1, BasePrice: 60000, CategoryCode: "PAKET"}}))
		assert.Equal(t, StatusLunas, tx.Status)
	})

	t.Run("Angsuran明细锁定", func(t *testing.T) {
		tx.Status = StatusAngsuran
		err := tx.ReplaceItems(testItems())
		assert.ErrorIs(t, err, ErrTransactionLocked)
	})

	t.Run("Lunas明细锁定", func(t *testing.T) {
		tx.Status = StatusLunas
		err := tx.ReplaceItems(testItems())
		assert.ErrorIs(t, err, ErrTransactionLocked)
	})
}
