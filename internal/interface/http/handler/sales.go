package handler

import (
	"github.com/gin-gonic/gin"

	appsales "github.com/xiebiao/bookstore-admin/internal/application/sales"
	"github.com/xiebiao/bookstore-admin/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-admin/pkg/errors"
	"github.com/xiebiao/bookstore-admin/pkg/response"
)

// SalesHandler 销售单HTTP处理器
type SalesHandler struct {
	createUseCase         *appsales.CreateSalesUseCase
	updateUseCase         *appsales.UpdateSalesUseCase
	deleteUseCase         *appsales.DeleteSalesUseCase
	getUseCase            *appsales.GetSalesUseCase
	listUseCase           *appsales.ListSalesUseCase
	addPaymentUseCase     *appsales.AddPaymentUseCase
	removePaymentUseCase  *appsales.RemovePaymentUseCase
	saveShippingUseCase   *appsales.SaveShippingUseCase
	removeShippingUseCase *appsales.RemoveShippingUseCase
	exportInvoiceUseCase  *appsales.ExportInvoiceUseCase
}

// NewSalesHandler 创建销售单处理器
func NewSalesHandler(
	createUseCase *appsales.CreateSalesUseCase,
	updateUseCase *appsales.UpdateSalesUseCase,
	deleteUseCase *appsales.DeleteSalesUseCase,
	getUseCase *appsales.GetSalesUseCase,
	listUseCase *appsales.ListSalesUseCase,
	addPaymentUseCase *appsales.AddPaymentUseCase,
	removePaymentUseCase *appsales.RemovePaymentUseCase,
	saveShippingUseCase *appsales.SaveShippingUseCase,
	removeShippingUseCase *appsales.RemoveShippingUseCase,
	exportInvoiceUseCase *appsales.ExportInvoiceUseCase,
) *SalesHandler {
	return &SalesHandler{
		createUseCase:         createUseCase,
		updateUseCase:         updateUseCase,
		deleteUseCase:         deleteUseCase,
		getUseCase:            getUseCase,
		listUseCase:           listUseCase,
		addPaymentUseCase:     addPaymentUseCase,
		removePaymentUseCase:  removePaymentUseCase,
		saveShippingUseCase:   saveShippingUseCase,
		removeShippingUseCase: removeShippingUseCase,
		exportInvoiceUseCase:  exportInvoiceUseCase,
	}
}

func toSalesItems(items []dto.SalesItemRequest) []appsales.CreateSalesItem {
	result := make([]appsales.CreateSalesItem, len(items))
	for i, item := range items {
		result[i] = appsales.CreateSalesItem{
			BookID:    item.BookID,
			Quantity:  item.Quantity,
			Promotion: item.Promotion,
			Discount:  item.DiscountOrDefault(),
		}
	}
	return result
}

// CreateSales 创建销售单
// @Summary      创建销售单
// @Description  锁书、快照目录价、按库存收敛数量、扣减库存,整单原子提交
// @Tags         销售
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateSalesRequest true "销售单信息"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "库存不足/参数错误"
// @Router       /api/v1/sales [post]
func (h *SalesHandler) CreateSales(c *gin.Context) {
	var req dto.CreateSalesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, errors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	transactionDate, err := dto.ParseDate(req.TransactionDate)
	if err != nil {
		response.ErrorWithCode(c, errors.ErrCodeInvalidParams, "交易日期格式错误(YYYY-MM-DD)")
		return
	}
	dueDate, err := dto.ParseDatePtr(req.DueDate)
	if err != nil {
		response.ErrorWithCode(c, errors.ErrCodeInvalidParams, "到期日格式错误(YYYY-MM-DD)")
		return
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), appsales.CreateSalesRequest{
		AssociateID:     req.AssociateID,
		PaymentType:     req.PaymentType,
		TransactionDate: transactionDate,
		DueDate:         dueDate,
		Items:           toSalesItems(req.Items),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateSales 编辑销售单
// @Summary      编辑销售单
// @Description  单头在Lunas前可改;明细整体替换仅Pesanan状态
// @Tags         销售
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "销售单ID"
// @Param        request body dto.UpdateSalesRequest true "编辑内容"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "状态锁定"
// @Router       /api/v1/sales/{id} [put]
func (h *SalesHandler) UpdateSales(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateSalesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, errors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	transactionDate, err := dto.ParseDate(req.TransactionDate)
	if err != nil {
		response.ErrorWithCode(c, errors.ErrCodeInvalidParams, "交易日期格式错误(YYYY-MM-DD)")
		return
	}
	dueDate, err := dto.ParseDatePtr(req.DueDate)
	if err != nil {
		response.ErrorWithCode(c, errors.ErrCodeInvalidParams, "到期日格式错误(YYYY-MM-DD)")
		return
	}

	updateReq := appsales.UpdateSalesRequest{
		TransactionID:   id,
		AssociateID:     req.AssociateID,
		PaymentType:     req.PaymentType,
		TransactionDate: transactionDate,
		DueDate:         dueDate,
	}
	if req.Items != nil {
		updateReq.Items = toSalesItems(req.Items)
	}

	result, err := h.updateUseCase.Execute(c.Request.Context(), updateReq)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteSales 删除销售单
// @Summary      删除销售单
// @Description  按创建时的明细快照回补库存;Lunas锁定
// @Tags         销售
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "销售单ID"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "状态锁定"
// @Router       /api/v1/sales/{id} [delete]
func (h *SalesHandler) DeleteSales(c *gin.Context) {
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

// GetSales 销售单详情
// @Summary      销售单详情
// @Description  返回含实时计算金额与操作权限的汇总视图
// @Tags         销售
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "销售单ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "销售单不存在"
// @Router       /api/v1/sales/{id} [get]
func (h *SalesHandler) GetSales(c *gin.Context) {
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

// ListSales 销售单列表
// @Summary      销售单列表
// @Tags         销售
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Param        associate_id query int false "业务员ID"
// @Param        status query int false "状态(0=Pesanan 1=Lunas 2=Angsuran)"
// @Param        date_from query string false "交易日期起(YYYY-MM-DD)"
// @Param        date_to query string false "交易日期止(YYYY-MM-DD)"
// @Param        keyword query string false "搜索单号"
// @Success      200 {object} response.Response
// @Router       /api/v1/sales [get]
func (h *SalesHandler) ListSales(c *gin.Context) {
	var req dto.ListSalesRequest
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

	result, err := h.listUseCase.Execute(c.Request.Context(), appsales.ListSalesRequest{
		Page:        req.Page,
		PageSize:    req.PageSize,
		AssociateID: req.AssociateID,
		Status:      req.Status,
		DateFrom:    dateFrom,
		DateTo:      dateTo,
		Keyword:     req.Keyword,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, result.Items, result.Total, result.Page, result.PageSize)
}

// AddPayment 记录收款
// @Summary      记录收款
// @Description  超付整笔拒绝;结清自动转Lunas,部分收款转Angsuran
// @Tags         销售
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "销售单ID"
// @Param        request body dto.AddPaymentRequest true "收款信息"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "超付/状态锁定"
// @Router       /api/v1/sales/{id}/payments [post]
func (h *SalesHandler) AddPayment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.AddPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, errors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	paymentDate, err := dto.ParseDate(req.PaymentDate)
	if err != nil {
		response.ErrorWithCode(c, errors.ErrCodeInvalidParams, "收款日期格式错误(YYYY-MM-DD)")
		return
	}

	result, err := h.addPaymentUseCase.Execute(c.Request.Context(), appsales.AddPaymentRequest{
		TransactionID: id,
		PaymentDate:   paymentDate,
		Amount:        req.Amount,
		Note:          req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// RemovePayment 删除收款
// @Summary      删除收款
// @Tags         销售
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "销售单ID"
// @Param        payment_id path int true "收款ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/sales/{id}/payments/{payment_id} [delete]
func (h *SalesHandler) RemovePayment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	paymentID, ok := parseUintParam(c, "payment_id")
	if !ok {
		return
	}

	result, err := h.removePaymentUseCase.Execute(c.Request.Context(), id, paymentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// SaveShipping 维护运单
// @Summary      维护运单
// @Description  shipping_id为0新增,非0更新;运费只做加项
// @Tags         销售
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "销售单ID"
// @Param        request body dto.SaveShippingRequest true "运单信息"
// @Success      200 {object} response.Response
// @Router       /api/v1/sales/{id}/shippings [post]
func (h *SalesHandler) SaveShipping(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.SaveShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, errors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.saveShippingUseCase.Execute(c.Request.Context(), appsales.SaveShippingRequest{
		TransactionID: id,
		ShippingID:    req.ShippingID,
		ExpeditionID:  req.ExpeditionID,
		NoResi:        req.NoResi,
		TotalAmount:   req.TotalAmount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// RemoveShipping 删除运单
// @Summary      删除运单
// @Tags         销售
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "销售单ID"
// @Param        shipping_id path int true "运单ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/sales/{id}/shippings/{shipping_id} [delete]
func (h *SalesHandler) RemoveShipping(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	shippingID, ok := parseUintParam(c, "shipping_id")
	if !ok {
		return
	}

	result, err := h.removeShippingUseCase.Execute(c.Request.Context(), id, shippingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ExportInvoice 导出发票视图
// @Summary      导出发票视图
// @Description  名称解析后的发票数据(业务员、书名、快递公司),金额与详情同一计算路径
// @Tags         销售
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "销售单ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/sales/{id}/invoice [get]
func (h *SalesHandler) ExportInvoice(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.exportInvoiceUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
