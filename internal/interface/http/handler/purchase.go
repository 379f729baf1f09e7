package handler

import (
	"github.com/gin-gonic/gin"

	apppurchase "github.com/xiebiao/bookstore-admin/internal/application/purchase"
	"github.com/xiebiao/bookstore-admin/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-admin/pkg/errors"
	"github.com/xiebiao/bookstore-admin/pkg/response"
)

// PurchaseHandler 采购单HTTP处理器
type PurchaseHandler struct {
	createUseCase   *apppurchase.CreatePurchaseUseCase
	updateUseCase   *apppurchase.UpdatePurchaseUseCase
	deleteUseCase   *apppurchase.DeletePurchaseUseCase
	completeUseCase *apppurchase.CompletePurchaseUseCase
	cancelUseCase   *apppurchase.CancelPurchaseUseCase
	getUseCase      *apppurchase.GetPurchaseUseCase
	listUseCase     *apppurchase.ListPurchaseUseCase
}

// NewPurchaseHandler 创建采购单处理器
func NewPurchaseHandler(
	createUseCase *apppurchase.CreatePurchaseUseCase,
	updateUseCase *apppurchase.UpdatePurchaseUseCase,
	deleteUseCase *apppurchase.DeletePurchaseUseCase,
	completeUseCase *apppurchase.CompletePurchaseUseCase,
	cancelUseCase *apppurchase.CancelPurchaseUseCase,
	getUseCase *apppurchase.GetPurchaseUseCase,
	listUseCase *apppurchase.ListPurchaseUseCase,
) *PurchaseHandler {
	return &PurchaseHandler{
		createUseCase:   createUseCase,
		updateUseCase:   updateUseCase,
		deleteUseCase:   deleteUseCase,
		completeUseCase: completeUseCase,
		cancelUseCase:   cancelUseCase,
		getUseCase:      getUseCase,
		listUseCase:     listUseCase,
	}
}

func toPurchaseItems(items []dto.PurchaseItemRequest) []apppurchase.CreatePurchaseItem {
	result := make([]apppurchase.CreatePurchaseItem, len(items))
	for i, item := range items {
		result[i] = apppurchase.CreatePurchaseItem{
			BookID:    item.BookID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPriceOrDefault(),
		}
	}
	return result
}

// CreatePurchase 创建采购单
// @Summary      创建采购单
// @Description  创建后为Pending状态,不碰库存;单价不得高于图书售价
// @Tags         采购
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreatePurchaseRequest true "采购单信息"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "单价超过售价"
// @Router       /api/v1/purchases [post]
func (h *PurchaseHandler) CreatePurchase(c *gin.Context) {
	var req dto.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, errors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	purchaseDate, err := dto.ParseDate(req.PurchaseDate)
	if err != nil {
		response.ErrorWithCode(c, errors.ErrCodeInvalidParams, "采购日期格式错误(YYYY-MM-DD)")
		return
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), apppurchase.CreatePurchaseRequest{
		SupplierID:   req.SupplierID,
		PurchaseDate: purchaseDate,
		Note:         req.Note,
		Items:        toPurchaseItems(req.Items),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdatePurchase 编辑采购单
// @Summary      编辑采购单
// @Description  仅Pending状态可编辑;明细整体替换
// @Tags         采购
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "采购单ID"
// @Param        request body dto.UpdatePurchaseRequest true "编辑内容"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "状态锁定"
// @Router       /api/v1/purchases/{id} [put]
func (h *PurchaseHandler) UpdatePurchase(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, errors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	purchaseDate, err := dto.ParseDate(req.PurchaseDate)
	if err != nil {
		response.ErrorWithCode(c, errors.ErrCodeInvalidParams, "采购日期格式错误(YYYY-MM-DD)")
		return
	}

	updateReq := apppurchase.UpdatePurchaseRequest{
		TransactionID: id,
		SupplierID:    req.SupplierID,
		PurchaseDate:  purchaseDate,
		Note:          req.Note,
	}
	if req.Items != nil {
		updateReq.Items = toPurchaseItems(req.Items)
	}

	result, err := h.updateUseCase.Execute(c.Request.Context(), updateReq)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeletePurchase 删除采购单
// @Summary      删除采购单
// @Description  仅Pending状态可删;未入库,无库存影响
// @Tags         采购
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "采购单ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/purchases/{id} [delete]
func (h *PurchaseHandler) DeletePurchase(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.deleteUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// CompletePurchase 采购入库
// @Summary      采购入库
// @Description  Pending→Completed;按明细加库存,状态流转与库存同事务
// @Tags         采购
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "采购单ID"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "终态拒绝"
// @Router       /api/v1/purchases/{id}/complete [post]
func (h *PurchaseHandler) CompletePurchase(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.completeUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CancelPurchase 取消采购
// @Summary      取消采购
// @Description  Pending→Cancelled;纯状态变更,不碰库存
// @Tags         采购
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "采购单ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/purchases/{id}/cancel [post]
func (h *PurchaseHandler) CancelPurchase(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.cancelUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetPurchase 采购单详情
// @Summary      采购单详情
// @Tags         采购
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "采购单ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "采购单不存在"
// @Router       /api/v1/purchases/{id} [get]
func (h *PurchaseHandler) GetPurchase(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.getUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListPurchases 采购单列表
// @Summary      采购单列表
// @Tags         采购
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Param        supplier_id query int false "供应商ID"
// @Param        status query int false "状态(0=Pending 1=Completed 2=Cancelled)"
// @Param        date_from query string false "采购日期起(YYYY-MM-DD)"
// @Param        date_to query string false "采购日期止(YYYY-MM-DD)"
// @Param        keyword query string false "搜索单号"
// @Success      200 {object} response.Response
// @Router       /api/v1/purchases [get]
func (h *PurchaseHandler) ListPurchases(c *gin.Context) {
	var req dto.ListPurchaseRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, errors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	dateFrom, err := dto.ParseDatePtr(req.DateFrom)
	if err != nil {
		response.ErrorWithCode(c, errors.ErrCodeInvalidParams, "日期格式错误(YYYY-MM-DD)")
		return
	}
	dateTo, err := dto.ParseDatePtr(req.DateTo)
	if err != nil {
		response.ErrorWithCode(c, errors.ErrCodeInvalidParams, "日期格式错误(YYYY-MM-DD)")
		return
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), apppurchase.ListPurchaseRequest{
		Page:       req.Page,
		PageSize:   req.PageSize,
		SupplierID: req.SupplierID,
		Status:     req.Status,
		DateFrom:   dateFrom,
		DateTo:     dateTo,
		Keyword:    req.Keyword,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, result.Items, result.Total, result.Page, result.PageSize)
}
