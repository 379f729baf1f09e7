package associate

import (
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
)

// 业务员领域错误定义
var (
	// ErrAssociateNotFound 业务员不存在
	ErrAssociateNotFound = apperrors.New(apperrors.ErrCodeAssociateNotFound, "业务员不存在")

	// ErrEmptyName 姓名不能为空
	ErrEmptyName = apperrors.New(apperrors.ErrCodeInvalidParams, "业务员姓名不能为空")

	// ErrInvalidDiscount 默认折扣不合法
	ErrInvalidDiscount = apperrors.New(apperrors.ErrCodeInvalidParams, "默认折扣必须在0-100之间")

	// ErrInvalidPaymentType 默认付款方式不合法
	ErrInvalidPaymentType = apperrors.New(apperrors.ErrCodeInvalidParams, "默认付款方式必须为T或K")
)
