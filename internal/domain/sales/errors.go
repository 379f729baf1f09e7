package sales

import (
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
)

// 销售领域错误定义
var (
	// ErrTransactionNotFound 销售单不存在
	ErrTransactionNotFound = apperrors.New(apperrors.ErrCodeTransactionNotFound, "销售单不存在")

	// ErrTransactionLocked 状态锁定,拒绝修改
	ErrTransactionLocked = apperrors.ErrTransactionLocked

	// ErrOverpayment 收款超过剩余应收
	ErrOverpayment = apperrors.ErrOverpayment

	// ErrInsufficientStock 库存不足
	ErrInsufficientStock = apperrors.ErrInsufficientStock

	// ErrEmptyItems 明细不能为空
	ErrEmptyItems = apperrors.New(apperrors.ErrCodeInvalidParams, "销售明细不能为空")

	// ErrInvalidQuantity 数量不合法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须大于0")

	// ErrInvalidPaymentType 付款方式不合法
	ErrInvalidPaymentType = apperrors.New(apperrors.ErrCodeInvalidParams, "付款方式必须为T(现金)或K(赊销)")

	// ErrInvalidDueDate 赊销到期日不合法
	ErrInvalidDueDate = apperrors.New(apperrors.ErrCodeInvalidParams, "赊销单的到期日必须晚于交易日期")

	// ErrInvalidPaymentAmount 收款金额不合法
	ErrInvalidPaymentAmount = apperrors.New(apperrors.ErrCodeInvalidParams, "收款金额必须大于0")

	// ErrInvalidShippingAmount 运费不合法
	ErrInvalidShippingAmount = apperrors.New(apperrors.ErrCodeInvalidParams, "运费不能为负数")

	// ErrTotalBelowPayments 调整后总额低于已收款
	ErrTotalBelowPayments = apperrors.New(apperrors.ErrCodeInvalidParams, "调整后总额不能低于已收款")

	// ErrPaymentNotFound 收款记录不存在
	ErrPaymentNotFound = apperrors.New(apperrors.ErrCodeNotFound, "收款记录不存在")

	// ErrShippingNotFound 运单不存在
	ErrShippingNotFound = apperrors.New(apperrors.ErrCodeNotFound, "运单不存在")
)
