package sales

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestSummarize 现金销售完整场景
// 书价100000,促销10000,折扣5%,数量2:
// 折后单价 = (100000-10000)*95/100 = 85500,小计171000
func TestSummarize(t *testing.T) {
	items := []Item{
		{ID: 1, BookID: 1, Quantity: 2, BasePrice: 100000, CategoryCode: "LKS", Promotion: 10000, Discount: 5},
	}

	t.Run("未持久化新单余额为0", func(t *testing.T) {
		tx := &Transaction{
			TransactionNo:   "TRX001",
			PaymentType:     PaymentTypeCash,
			TransactionDate: time.Now(),
			Status:          StatusPesanan,
			Items:           items,
		}

		s := Summarize(tx)
		assert.Equal(t, int64(85500), s.Items[0].EffectivePrice)
		assert.Equal(t, int64(171000), s.Items[0].Subtotal)
		assert.Equal(t, int64(171000), s.GrandTotal)
		assert.Equal(t, int64(0), s.RemainingBalance, "新单没有收款入口,余额按0报告")
	})

	t.Run("已持久化无收款时余额等于总额", func(t *testing.T) {
		tx := &Transaction{
			ID:              1,
			TransactionNo:   "TRX001",
			PaymentType:     PaymentTypeCash,
			TransactionDate: time.Now(),
			Status:          StatusPesanan,
			Items:           items,
		}

		s := Summarize(tx)
		assert.Equal(t, int64(171000), s.GrandTotal)
		assert.Equal(t, int64(171000), s.RemainingBalance)
		assert.True(t, s.CanAddPayment)
	})

	t.Run("运费与收款都进汇总", func(t *testing.T) {
		tx := &Transaction{
			ID:              2,
			TransactionNo:   "TRX002",
			PaymentType:     PaymentTypeCredit,
			TransactionDate: time.Now(),
			Status:          StatusAngsuran,
			Items:           items,
			Shippings:       []Shipping{{ID: 1, ExpeditionID: 1, NoResi: "JNE001", TotalAmount: 15000}},
			Payments:        []Payment{{ID: 1, Amount: 86000, PaymentDate: time.Now()}},
		}

		s := Summarize(tx)
		assert.Equal(t, int64(171000), s.ItemsTotal)
		assert.Equal(t, int64(15000), s.ShippingTotal)
		assert.Equal(t, int64(186000), s.GrandTotal)
		assert.Equal(t, int64(86000), s.PaymentsTotal)
		assert.Equal(t, int64(100000), s.RemainingBalance)

		// 能力集随状态输出
		assert.False(t, s.Permissions.CanEditItems)
		assert.True(t, s.Permissions.CanEditShipping)
		assert.True(t, s.CanAddPayment)
	})

	t.Run("汇总是纯函数_重复调用结果一致", func(t *testing.T) {
		tx := &Transaction{ID: 3, Status: StatusPesanan, Items: items}
		s1 := Summarize(tx)
		s2 := Summarize(tx)
		assert.Equal(t, s1.GrandTotal, s2.GrandTotal)
		assert.Equal(t, s1.RemainingBalance, s2.RemainingBalance)
	})
}
