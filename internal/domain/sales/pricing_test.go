package sales

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestEffectivePrice 折后单价计算
func TestEffectivePrice(t *testing.T) {
	t.Run("先减促销再打折扣", func(t *testing.T) {
		// (100000 - 10000) * 95 / 100 = 85500
		assert.Equal(t, int64(85500), EffectivePrice(100000, 10000, 5))
	})

	t.Run("顺序是规范性的_先折扣再促销结果不同", func(t *testing.T) {
		base, promo := int64(100000), int64(10000)
		disc := 5

		correct := EffectivePrice(base, promo, disc)
		// 错误顺序:先打折再减促销
		wrongOrder := base*int64(100-disc)/100 - promo

		assert.Equal(t, int64(85500), correct)
		assert.Equal(t, int64(85000), wrongOrder)
		assert.NotEqual(t, correct, wrongOrder, "促销与折扣都非零时两种顺序必须可区分")
	})

	t.Run("促销金额收敛到基价上限", func(t *testing.T) {
		// 促销超过基价按基价封顶 → 0
		assert.Equal(t, int64(0), EffectivePrice(50000, 80000, 0))
	})

	t.Run("折扣收敛到0-100", func(t *testing.T) {
		assert.Equal(t, int64(0), EffectivePrice(100000, 0, 150))
		assert.Equal(t, int64(100000), EffectivePrice(100000, 0, -5))
	})

	t.Run("永不为负", func(t *testing.T) {
		cases := []struct {
			base  int64
			promo int64
			disc  int
		}{
			{0, 0, 0},
			{100000, 100000, 0},   // 促销=基价
			{100000, 0, 100},      // 折扣100%
			{100000, 100000, 100}, // 两者同时封顶
			{1, 1, 100},
		}
		for _, c := range cases {
			assert.GreaterOrEqual(t, EffectivePrice(c.base, c.promo, c.disc), int64(0))
		}
	})

	t.Run("整数截断", func(t *testing.T) {
		// (101 - 0) * 97 / 100 = 97.97 → 97
		assert.Equal(t, int64(97), EffectivePrice(101, 0, 3))
	})
}

// TestItemEffectivePrice LKS资格规则
func TestItemEffectivePrice(t *testing.T) {
	t.Run("LKS分类参与促销与折扣", func(t *testing.T) {
		item := Item{BookID: 1, Quantity: 2, BasePrice: 100000, CategoryCode: "LKS", Promotion: 10000, Discount: 5}
		assert.Equal(t, int64(85500), item.EffectivePrice())
		assert.Equal(t, int64(171000), item.Subtotal())
	})

	t.Run("非LKS分类静默忽略促销与折扣", func(t *testing.T) {
		// 批量套折扣的入口只作用于LKS,非LKS不报错、按基价全额计价
		item := Item{BookID: 2, Quantity: 3, BasePrice: 80000, CategoryCode: "PAKET", Promotion: 10000, Discount: 50}
		assert.Equal(t, int64(80000), item.EffectivePrice())
		assert.Equal(t, int64(240000), item.Subtotal())
	})
}

// TestTransactionTotal 总额 = Σ明细小计 + Σ运费
func TestTransactionTotal(t *testing.T) {
	items := []Item{
		{BookID: 1, Quantity: 2, BasePrice: 100000, CategoryCode: "LKS", Promotion: 10000, Discount: 5}, // 171000
		{BookID: 2, Quantity: 1, BasePrice: 50000, CategoryCode: "PAKET"},                               // 50000
	}
	shippings := []Shipping{
		{ExpeditionID: 1, NoResi: "JNE001", TotalAmount: 15000},
	}

	assert.Equal(t, int64(236000), TransactionTotal(items, shippings))

	t.Run("运费只做加项从不折扣", func(t *testing.T) {
		assert.Equal(t, int64(221000), TransactionTotal(items, nil))
	})
}
