package sales

import (
	"context"

	"github.com/xiebiao/bookstore-admin/internal/domain/associate"
	"github.com/xiebiao/bookstore-admin/internal/domain/book"
	"github.com/xiebiao/bookstore-admin/internal/domain/master"
	"github.com/xiebiao/bookstore-admin/internal/domain/sales"
)

// ExportInvoiceUseCase 导出发票用例
// 发票视图 = Summarize的汇总结果 + 参照资料的名称展开
// (业务员、书名、快递公司),金额口径与详情页完全一致
type ExportInvoiceUseCase struct {
	salesRepo      sales.Repository
	associateRepo  associate.Repository
	bookRepo       book.Repository
	expeditionRepo master.ExpeditionRepository
}

// NewExportInvoiceUseCase 创建导出发票用例
func NewExportInvoiceUseCase(
	salesRepo sales.Repository,
	associateRepo associate.Repository,
	bookRepo book.Repository,
	expeditionRepo master.ExpeditionRepository,
) *ExportInvoiceUseCase {
	return &ExportInvoiceUseCase{
		salesRepo:      salesRepo,
		associateRepo:  associateRepo,
		bookRepo:       bookRepo,
		expeditionRepo: expeditionRepo,
	}
}

// InvoiceLine 发票行
type InvoiceLine struct {
	BookCode       string `json:"book_code"`
	BookTitle      string `json:"book_title"`
	Quantity       int    `json:"quantity"`
	BasePrice      int64  `json:"base_price"`
	Promotion      int64  `json:"promotion"`
	Discount       int    `json:"discount"`
	EffectivePrice int64  `json:"effective_price"`
	Subtotal       int64  `json:"subtotal"`
}

// InvoiceShipping 发票运费行
type InvoiceShipping struct {
	ExpeditionName string `json:"expedition_name"`
	NoResi         string `json:"no_resi"`
	Amount         int64  `json:"amount"`
}

// Invoice 发票视图
type Invoice struct {
	TransactionNo   string            `json:"transaction_no"`
	TransactionDate string            `json:"transaction_date"`
	DueDate         string            `json:"due_date,omitempty"`
	PaymentType     string            `json:"payment_type"`
	Status          string            `json:"status"`
	AssociateName   string            `json:"associate_name"`
	Lines           []InvoiceLine     `json:"lines"`
	Shippings       []InvoiceShipping `json:"shippings"`

	ItemsTotal       int64 `json:"items_total"`
	ShippingTotal    int64 `json:"shipping_total"`
	GrandTotal       int64 `json:"grand_total"`
	PaymentsTotal    int64 `json:"payments_total"`
	RemainingBalance int64 `json:"remaining_balance"`
}

// Execute 生成销售单发票
func (uc *ExportInvoiceUseCase) Execute(ctx context.Context, transactionID uint) (*Invoice, error) {
	tx, err := uc.salesRepo.FindByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	summary := sales.Summarize(tx)

	// 业务员名称(业务员被删后发票仍可导出,名称留空)
	associateName := ""
	if a, err := uc.associateRepo.FindByID(ctx, tx.AssociateID); err == nil {
		associateName = a.Name
	}

	lines := make([]InvoiceLine, len(summary.Items))
	for i, item := range summary.Items {
		line := InvoiceLine{
			Quantity:       item.Quantity,
			BasePrice:      item.BasePrice,
			Promotion:      item.Promotion,
			Discount:       item.Discount,
			EffectivePrice: item.EffectivePrice,
			Subtotal:       item.Subtotal,
		}
		if b, err := uc.bookRepo.FindByID(ctx, item.BookID); err == nil {
			line.BookCode = b.Code
			line.BookTitle = b.Title
		}
		lines[i] = line
	}

	shippings := make([]InvoiceShipping, len(summary.Shippings))
	for i, s := range summary.Shippings {
		row := InvoiceShipping{NoResi: s.NoResi, Amount: s.TotalAmount}
		if e, err := uc.expeditionRepo.FindByID(ctx, s.ExpeditionID); err == nil {
			row.ExpeditionName = e.Name
		}
		shippings[i] = row
	}

	invoice := &Invoice{
		TransactionNo:    summary.TransactionNo,
		TransactionDate:  summary.TransactionDate.Format("2006-01-02"),
		PaymentType:      string(summary.PaymentType),
		Status:           summary.StatusLabel,
		AssociateName:    associateName,
		Lines:            lines,
		Shippings:        shippings,
		ItemsTotal:       summary.ItemsTotal,
		ShippingTotal:    summary.ShippingTotal,
		GrandTotal:       summary.GrandTotal,
		PaymentsTotal:    summary.PaymentsTotal,
		RemainingBalance: summary.RemainingBalance,
	}
	if summary.DueDate != nil {
		invoice.DueDate = summary.DueDate.Format("2006-01-02")
	}

	return invoice, nil
}
