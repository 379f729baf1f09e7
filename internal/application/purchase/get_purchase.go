package purchase

import (
	"context"
	"time"

	"github.com/xiebiao/bookstore-admin/internal/domain/purchase"
)

// GetPurchaseUseCase 采购单详情用例
type GetPurchaseUseCase struct {
	purchaseRepo purchase.Repository
}

// NewGetPurchaseUseCase 创建采购单详情用例
func NewGetPurchaseUseCase(purchaseRepo purchase.Repository) *GetPurchaseUseCase {
	return &GetPurchaseUseCase{purchaseRepo: purchaseRepo}
}

// Execute 按ID查询采购单
func (uc *GetPurchaseUseCase) Execute(ctx context.Context, transactionID uint) (*purchase.Transaction, error) {
	return uc.purchaseRepo.FindByID(ctx, transactionID)
}

// ListPurchaseUseCase 采购单列表用例
type ListPurchaseUseCase struct {
	purchaseRepo purchase.Repository
}

// NewListPurchaseUseCase 创建采购单列表用例
func NewListPurchaseUseCase(purchaseRepo purchase.Repository) *ListPurchaseUseCase {
	return &ListPurchaseUseCase{purchaseRepo: purchaseRepo}
}

// ListPurchaseRequest 列表请求DTO
type ListPurchaseRequest struct {
	Page       int
	PageSize   int
	SupplierID uint
	Status     *int // nil表示不过滤
	DateFrom   *time.Time
	DateTo     *time.Time
	Keyword    string // 搜索单号
}

// ListPurchaseResponse 列表响应DTO
type ListPurchaseResponse struct {
	Items    []*purchase.Transaction `json:"items"`
	Total    int64                   `json:"total"`
	Page     int                     `json:"page"`
	PageSize int                     `json:"page_size"`
}

// Execute 分页查询采购单列表
func (uc *ListPurchaseUseCase) Execute(ctx context.Context, req ListPurchaseRequest) (*ListPurchaseResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	params := purchase.ListParams{
		Page:       req.Page,
		PageSize:   req.PageSize,
		SupplierID: req.SupplierID,
		DateFrom:   req.DateFrom,
		DateTo:     req.DateTo,
		Keyword:    req.Keyword,
	}
	if req.Status != nil {
		status := purchase.Status(*req.Status)
		params.Status = &status
	}

	transactions, total, err := uc.purchaseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return &ListPurchaseResponse{
		Items:    transactions,
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}
