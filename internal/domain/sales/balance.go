package sales

// 应收余额计算
// 设计说明:收款校验是唯一会拒绝收款的规则——超付即拒,
// 金额本身必须为正;余额恒等于 总额 − Σ收款

// RemainingBalance 剩余应收 = 总额 − Σ收款金额
// 只要每笔收款都经过ValidatePayment,余额永不为负
func RemainingBalance(total int64, payments []Payment) int64 {
	var paid int64
	for _, p := range payments {
		paid += p.Amount
	}
	return total - paid
}

// ValidatePayment 校验一笔新收款
// 业务规则:
// 1. 金额必须>0
// 2. 金额不得超过剩余应收(超付错误)
func ValidatePayment(amount, remaining int64) error {
	if amount <= 0 {
		return ErrInvalidPaymentAmount
	}
	if amount > remaining {
		return ErrOverpayment
	}
	return nil
}
