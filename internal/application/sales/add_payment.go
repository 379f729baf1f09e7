package sales

import (
	"context"
	"time"

	"github.com/xiebiao/bookstore-admin/internal/domain/sales"
	"github.com/xiebiao/bookstore-admin/pkg/errors"
	"github.com/xiebiao/bookstore-admin/pkg/metrics"
)

// AddPaymentUseCase 记录收款用例
// 业务规则(领域层把关):
// 1. Lunas锁定收款入口
// 2. 金额必须为正且不超过剩余应收(超付整笔拒绝)
// 3. 收款后状态自动流转:结清→Lunas;赊销未结清→Angsuran
type AddPaymentUseCase struct {
	salesRepo sales.Repository
	txManager TxManager
}

// NewAddPaymentUseCase 创建记录收款用例
func NewAddPaymentUseCase(salesRepo sales.Repository, txManager TxManager) *AddPaymentUseCase {
	return &AddPaymentUseCase{salesRepo: salesRepo, txManager: txManager}
}

// AddPaymentRequest 记录收款请求DTO
type AddPaymentRequest struct {
	TransactionID uint
	PaymentDate   time.Time
	Amount        int64
	Note          string
}

// Execute 执行记录收款
func (uc *AddPaymentUseCase) Execute(ctx context.Context, req AddPaymentRequest) (*sales.Summary, error) {
	var result *sales.Transaction

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		tx, err := uc.salesRepo.FindByID(txCtx, req.TransactionID)
		if err != nil {
			return err
		}

		paymentDate := req.PaymentDate
		if paymentDate.IsZero() {
			paymentDate = time.Now()
		}

		if err := tx.AddPayment(sales.Payment{
			PaymentDate: paymentDate,
			Amount:      req.Amount,
			Note:        req.Note,
		}); err != nil {
			return err
		}

		if err := uc.salesRepo.Update(txCtx, tx); err != nil {
			return err
		}

		result = tx
		return nil
	})

	if err != nil {
		if errors.IsCode(err, errors.ErrCodeOverpayment) && metrics.OverpaymentRejectedTotal != nil {
			metrics.IncCounter(metrics.OverpaymentRejectedTotal)
		}
		return nil, err
	}

	if metrics.PaymentsRecordedTotal != nil {
		metrics.IncCounter(metrics.PaymentsRecordedTotal)
	}

	return sales.Summarize(result), nil
}

// RemovePaymentUseCase 删除收款用例(管理员冲正)
// Lunas锁定;删除后按剩余收款重算状态
type RemovePaymentUseCase struct {
	salesRepo sales.Repository
	txManager TxManager
}

// NewRemovePaymentUseCase 创建删除收款用例
func NewRemovePaymentUseCase(salesRepo sales.Repository, txManager TxManager) *RemovePaymentUseCase {
	return &RemovePaymentUseCase{salesRepo: salesRepo, txManager: txManager}
}

// Execute 执行删除收款
func (uc *RemovePaymentUseCase) Execute(ctx context.Context, transactionID, paymentID uint) (*sales.Summary, error) {
	var result *sales.Transaction

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		tx, err := uc.salesRepo.FindByID(txCtx, transactionID)
		if err != nil {
			return err
		}

		if err := tx.RemovePayment(paymentID); err != nil {
			return err
		}

		if err := uc.salesRepo.Update(txCtx, tx); err != nil {
			return err
		}

		result = tx
		return nil
	})

	if err != nil {
		return nil, err
	}

	return sales.Summarize(result), nil
}
