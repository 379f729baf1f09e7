package master

import (
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
)

// 基础资料领域错误定义
var (
	// ErrNotFound 基础资料不存在
	ErrNotFound = apperrors.New(apperrors.ErrCodeMasterNotFound, "基础资料不存在")

	// ErrEmptyName 名称不能为空
	ErrEmptyName = apperrors.New(apperrors.ErrCodeInvalidParams, "名称不能为空")

	// ErrNameDuplicate 名称已存在
	ErrNameDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "名称已存在")
)
