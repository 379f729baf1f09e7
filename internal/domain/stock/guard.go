// Package stock 库存守卫
//
// 所有权纪律:Book.Stock只允许经本包的四个操作变更
// (销售提交/销售删除回补/采购入库,以及选书时的数量收敛),
// 其他代码路径只读不写。库存算术最终落在
// book.Repository.UpdateStock的原子SQL上(stock = stock + delta
// 且校验不为负),并发超卖由持久层的检查兜底。
//
// 原子性约定:守卫自身不开事务;调用方(应用层用例)负责把
// 守卫操作与单据写入放进同一个TxManager事务,任一明细库存
// 不足则整体回滚,不允许部分提交。
package stock

import (
	"context"

	"github.com/xiebiao/bookstore-admin/internal/domain/book"
)

// Movement 一次库存变动(按提交时快照的 图书ID+数量 记账)
// 删除销售单时按创建时保存的快照回补,不按当前目录状态重算
type Movement struct {
	BookID   uint
	Quantity int
}

// Guard 库存守卫
type Guard struct {
	books book.Repository
}

// NewGuard 创建库存守卫
func NewGuard(books book.Repository) *Guard {
	return &Guard{books: books}
}

// ClampQuantity 销售选书时的数量收敛
// 返回 max(1, min(requested, available));收敛而非报错
// (采购选书没有上限收敛:可以订超过现有库存的量)
func ClampQuantity(requested, available int) int {
	if requested > available {
		requested = available
	}
	if requested < 1 {
		requested = 1
	}
	return requested
}

// ApplySaleCreation 销售提交:逐明细扣减库存
// 任一明细扣减后为负即返回ErrInsufficientStock,
// 由外层事务回滚已扣部分(整单原子)
func (g *Guard) ApplySaleCreation(ctx context.Context, movements []Movement) error {
	for _, m := range movements {
		if m.Quantity < 1 {
			return book.ErrInvalidQuantity
		}
		if err := g.books.UpdateStock(ctx, m.BookID, -m.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// ReverseSaleOnDelete 删除销售单:按创建时快照逐明细回补库存
// 与ApplySaleCreation严格对称:同一组(BookID, Quantity)先扣后补,
// 库存恢复到创建前的值
func (g *Guard) ReverseSaleOnDelete(ctx context.Context, movements []Movement) error {
	for _, m := range movements {
		if m.Quantity < 1 {
			return book.ErrInvalidQuantity
		}
		if err := g.books.UpdateStock(ctx, m.BookID, m.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// ApplyPurchaseCompletion 采购入库:逐明细增加库存
// 只允许经Pending→Completed的生命周期闸口到达这里;
// 二次入库由状态机拒绝,不靠幂等算术兜底
func (g *Guard) ApplyPurchaseCompletion(ctx context.Context, movements []Movement) error {
	for _, m := range movements {
		if m.Quantity < 1 {
			return book.ErrInvalidQuantity
		}
		if err := g.books.UpdateStock(ctx, m.BookID, m.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// 采购取消是纯状态变更,本包不提供对应操作(没有库存运算)
