package book

import (
	"context"

	"github.com/xiebiao/bookstore-admin/internal/domain/book"
	"github.com/xiebiao/bookstore-admin/internal/infrastructure/persistence/redis"
)

// GetBookUseCase 图书详情用例
// 设计说明:库存走Redis缓存加速(列表页频繁轮询库存),
// 未命中回源数据库并回填;数据库始终是事实来源
type GetBookUseCase struct {
	bookService book.Service
	stockCache  *redis.StockCache
}

// NewGetBookUseCase 创建图书详情用例
func NewGetBookUseCase(bookService book.Service, stockCache *redis.StockCache) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService, stockCache: stockCache}
}

// Execute 按ID查询图书
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (*book.Book, error) {
	b, err := uc.bookService.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 数据库取到的就是权威库存,顺手回填缓存
	if uc.stockCache != nil {
		_ = uc.stockCache.Set(ctx, b.ID, b.Stock)
	}

	return b, nil
}

// GetStockUseCase 图书库存快查用例(录单选书时轮询)
type GetStockUseCase struct {
	bookService book.Service
	stockCache  *redis.StockCache
}

// NewGetStockUseCase 创建库存快查用例
func NewGetStockUseCase(bookService book.Service, stockCache *redis.StockCache) *GetStockUseCase {
	return &GetStockUseCase{bookService: bookService, stockCache: stockCache}
}

// Execute 查询图书现有库存
func (uc *GetStockUseCase) Execute(ctx context.Context, bookID uint) (int, error) {
	// 1. 先查缓存
	if uc.stockCache != nil {
		if stock, err := uc.stockCache.Get(ctx, bookID); err == nil {
			return stock, nil
		}
	}

	// 2. 未命中回源数据库
	b, err := uc.bookService.GetBookByID(ctx, bookID)
	if err != nil {
		return 0, err
	}

	// 3. 回填缓存
	if uc.stockCache != nil {
		_ = uc.stockCache.Set(ctx, bookID, b.Stock)
	}

	return b.Stock, nil
}
