package book

import (
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrCodeDuplicate 图书编码已存在
	ErrCodeDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "图书编码已存在")

	// ErrInvalidPrice 无效的价格
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "价格不能为负数")

	// ErrInvalidStock 无效的库存
	ErrInvalidStock = apperrors.New(apperrors.ErrCodeInvalidParams, "库存不能为负数")

	// ErrInvalidQuantity 无效的数量
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须大于0")

	// ErrInsufficientStock 库存不足
	ErrInsufficientStock = apperrors.ErrInsufficientStock

	// ErrInvalidCode 图书编码不能为空
	ErrInvalidCode = apperrors.New(apperrors.ErrCodeInvalidParams, "图书编码不能为空")
)
