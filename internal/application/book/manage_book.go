package book

import (
	"context"

	"github.com/xiebiao/bookstore-admin/internal/domain/book"
	"github.com/xiebiao/bookstore-admin/internal/infrastructure/persistence/redis"
)

// ManageBookUseCase 图书目录维护用例
// 录入/修改/删除/列表;库存数量不走这里
// (库存只经销售/采购的StockGuard路径变更)
type ManageBookUseCase struct {
	bookService book.Service
	stockCache  *redis.StockCache
}

// NewManageBookUseCase 创建图书维护用例
func NewManageBookUseCase(bookService book.Service, stockCache *redis.StockCache) *ManageBookUseCase {
	return &ManageBookUseCase{bookService: bookService, stockCache: stockCache}
}

// SaveBookRequest 录入/修改图书请求DTO
type SaveBookRequest struct {
	Code            string
	Title           string
	CategoryCode    string
	TypeID          uint
	FieldOfStudyID  uint
	Level           string
	Curriculum      string
	Brand           string
	Price           int64
	PurchasingPrice int64
	Stock           int // 仅录入时生效(初始库存)
}

// Create 录入图书
func (uc *ManageBookUseCase) Create(ctx context.Context, req SaveBookRequest) (*book.Book, error) {
	return uc.bookService.CreateBook(ctx,
		req.Code, req.Title, req.CategoryCode,
		req.TypeID, req.FieldOfStudyID,
		req.Level, req.Curriculum, req.Brand,
		req.Price, req.PurchasingPrice, req.Stock,
	)
}

// Update 修改图书信息与价格(不含库存)
func (uc *ManageBookUseCase) Update(ctx context.Context, id uint, req SaveBookRequest) (*book.Book, error) {
	err := uc.bookService.UpdateBook(ctx, id,
		req.Title, req.CategoryCode,
		req.TypeID, req.FieldOfStudyID,
		req.Level, req.Curriculum, req.Brand,
		req.Price, req.PurchasingPrice,
	)
	if err != nil {
		return nil, err
	}
	return uc.bookService.GetBookByID(ctx, id)
}

// Delete 删除图书
func (uc *ManageBookUseCase) Delete(ctx context.Context, id uint) error {
	if err := uc.bookService.DeleteBook(ctx, id); err != nil {
		return err
	}
	if uc.stockCache != nil {
		_ = uc.stockCache.Invalidate(ctx, id)
	}
	return nil
}

// List 分页查询图书列表
func (uc *ManageBookUseCase) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = 20
	}
	if params.PageSize > 100 {
		params.PageSize = 100
	}
	return uc.bookService.ListBooks(ctx, params)
}
