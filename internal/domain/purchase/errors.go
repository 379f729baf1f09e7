package purchase

import (
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
)

// 采购领域错误定义
var (
	// ErrTransactionNotFound 采购单不存在
	ErrTransactionNotFound = apperrors.New(apperrors.ErrCodeTransactionNotFound, "采购单不存在")

	// ErrTransactionLocked 终态锁定,拒绝修改或再次流转
	ErrTransactionLocked = apperrors.ErrTransactionLocked

	// ErrEmptyItems 明细不能为空
	ErrEmptyItems = apperrors.New(apperrors.ErrCodeInvalidParams, "采购明细不能为空")

	// ErrInvalidQuantity 数量不合法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须大于0")

	// ErrInvalidUnitPrice 进货单价不合法
	ErrInvalidUnitPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "进货单价不能为负数")

	// ErrPriceAboveCatalog 进货单价超过图书售价
	ErrPriceAboveCatalog = apperrors.New(apperrors.ErrCodePriceAboveCatalog, "进货单价不能超过图书售价")
)
