package sales

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestRemainingBalance 余额恒等式
func TestRemainingBalance(t *testing.T) {
	payments := []Payment{
		{Amount: 200000, PaymentDate: time.Now()},
		{Amount: 250000, PaymentDate: time.Now()},
	}

	// remaining = total − Σ payments
	assert.Equal(t, int64(50000), RemainingBalance(500000, payments))
	assert.Equal(t, int64(500000), RemainingBalance(500000, nil))
}

// TestValidatePayment 收款校验
func TestValidatePayment(t *testing.T) {
	t.Run("正常收款", func(t *testing.T) {
		assert.NoError(t, ValidatePayment(50000, 50000))
		assert.NoError(t, ValidatePayment(10000, 50000))
	})

	t.Run("超付拒绝", func(t *testing.T) {
		// 总额500000,已收450000,剩余50000;再收60000必须被拒
		payments := []Payment{{Amount: 450000}}
		remaining := RemainingBalance(500000, payments)
		assert.Equal(t, int64(50000), remaining)

		err := ValidatePayment(60000, remaining)
		assert.ErrorIs(t, err, ErrOverpayment)
	})

	t.Run("金额必须为正", func(t *testing.T) {
		assert.ErrorIs(t, ValidatePayment(0, 50000), ErrInvalidPaymentAmount)
		assert.ErrorIs(t, ValidatePayment(-100, 50000), ErrInvalidPaymentAmount)
	})
}

// TestBalanceNeverNegative 只要每笔收款都过校验,余额永不为负
func TestBalanceNeverNegative(t *testing.T) {
	total := int64(300000)
	var payments []Payment

	amounts := []int64{100000, 150000, 60000, 50000}
	for _, amount := range amounts {
		remaining := RemainingBalance(total, payments)
		if err := ValidatePayment(amount, remaining); err != nil {
			// 超付的那笔被拒,收款列表保持不变
			continue
		}
		payments = append(payments, Payment{Amount: amount})
	}

	assert.GreaterOrEqual(t, RemainingBalance(total, payments), int64(0))
	assert.Equal(t, int64(0), RemainingBalance(total, payments))
	// 60000那笔因剩余50000被拒,最终只入账三笔
	assert.Len(t, payments, 3)
}
