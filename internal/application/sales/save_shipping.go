package sales

import (
	"context"

	"github.com/xiebiao/bookstore-admin/internal/domain/master"
	"github.com/xiebiao/bookstore-admin/internal/domain/sales"
)

// SaveShippingUseCase 维护运单用例(新增或更新)
// 业务规则:Lunas锁定;运费>=0只做加项,从不参与折扣
type SaveShippingUseCase struct {
	salesRepo      sales.Repository
	expeditionRepo master.ExpeditionRepository
	txManager      TxManager
}

// NewSaveShippingUseCase 创建维护运单用例
func NewSaveShippingUseCase(
	salesRepo sales.Repository,
	expeditionRepo master.ExpeditionRepository,
	txManager TxManager,
) *SaveShippingUseCase {
	return &SaveShippingUseCase{
		salesRepo:      salesRepo,
		expeditionRepo: expeditionRepo,
		txManager:      txManager,
	}
}

// SaveShippingRequest 维护运单请求DTO
// ShippingID为0表示新增,非0表示更新
type SaveShippingRequest struct {
	TransactionID uint
	ShippingID    uint
	ExpeditionID  uint
	NoResi        string
	TotalAmount   int64
}

// Execute 执行维护运单
func (uc *SaveShippingUseCase) Execute(ctx context.Context, req SaveShippingRequest) (*sales.Summary, error) {
	// 快递公司必须存在
	if _, err := uc.expeditionRepo.FindByID(ctx, req.ExpeditionID); err != nil {
		return nil, err
	}

	var result *sales.Transaction
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		tx, err := uc.salesRepo.FindByID(txCtx, req.TransactionID)
		if err != nil {
			return err
		}

		if err := tx.SaveShipping(sales.Shipping{
			ID:           req.ShippingID,
			ExpeditionID: req.ExpeditionID,
			NoResi:       req.NoResi,
			TotalAmount:  req.TotalAmount,
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
		return nil, err
	}

	return sales.Summarize(result), nil
}

// RemoveShippingUseCase 删除运单用例
type RemoveShippingUseCase struct {
	salesRepo sales.Repository
	txManager TxManager
}

// NewRemoveShippingUseCase 创建删除运单用例
func NewRemoveShippingUseCase(salesRepo sales.Repository, txManager TxManager) *RemoveShippingUseCase {
	return &RemoveShippingUseCase{salesRepo: salesRepo, txManager: txManager}
}

// Execute 执行删除运单
func (uc *RemoveShippingUseCase) Execute(ctx context.Context, transactionID, shippingID uint) (*sales.Summary, error) {
	var result *sales.Transaction

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		tx, err := uc.salesRepo.FindByID(txCtx, transactionID)
		if err != nil {
			return err
		}

		if err := tx.RemoveShipping(shippingID); err != nil {
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
