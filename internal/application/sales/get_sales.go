package sales

import (
	"context"
	"time"

	"github.com/xiebiao/bookstore-admin/internal/domain/sales"
)

// GetSalesUseCase 销售单详情用例
// 详情、列表、发票共用Summarize这一条计算路径
type GetSalesUseCase struct {
	salesRepo sales.Repository
}

// NewGetSalesUseCase 创建销售单详情用例
func NewGetSalesUseCase(salesRepo sales.Repository) *GetSalesUseCase {
	return &GetSalesUseCase{salesRepo: salesRepo}
}

// Execute 按ID查询销售单汇总视图
func (uc *GetSalesUseCase) Execute(ctx context.Context, transactionID uint) (*sales.Summary, error) {
	tx, err := uc.salesRepo.FindByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	return sales.Summarize(tx), nil
}

// ListSalesUseCase 销售单列表用例
type ListSalesUseCase struct {
	salesRepo sales.Repository
}

// NewListSalesUseCase 创建销售单列表用例
func NewListSalesUseCase(salesRepo sales.Repository) *ListSalesUseCase {
	return &ListSalesUseCase{salesRepo: salesRepo}
}

// ListSalesRequest 列表请求DTO
type ListSalesRequest struct {
	Page        int
	PageSize    int
	AssociateID uint
	Status      *int // nil表示不过滤
	DateFrom    *time.Time
	DateTo      *time.Time
	Keyword     string // 搜索单号
}

// ListSalesResponse 列表响应DTO
type ListSalesResponse struct {
	Items    []*sales.Summary `json:"items"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// Execute 分页查询销售单列表
func (uc *ListSalesUseCase) Execute(ctx context.Context, req ListSalesRequest) (*ListSalesResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	params := sales.ListParams{
		Page:        req.Page,
		PageSize:    req.PageSize,
		AssociateID: req.AssociateID,
		DateFrom:    req.DateFrom,
		DateTo:      req.DateTo,
		Keyword:     req.Keyword,
	}
	if req.Status != nil {
		status := sales.Status(*req.Status)
		params.Status = &status
	}

	transactions, total, err := uc.salesRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	summaries := make([]*sales.Summary, len(transactions))
	for i, tx := range transactions {
		summaries[i] = sales.Summarize(tx)
	}

	return &ListSalesResponse{
		Items:    summaries,
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}
