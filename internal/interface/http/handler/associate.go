package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookstore-admin/internal/domain/associate"
	"github.com/xiebiao/bookstore-admin/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-admin/pkg/errors"
	"github.com/xiebiao/bookstore-admin/pkg/response"
)

// AssociateHandler 业务员HTTP处理器
type AssociateHandler struct {
	service associate.Service
}

// NewAssociateHandler 创建业务员处理器
func NewAssociateHandler(service associate.Service) *AssociateHandler {
	return &AssociateHandler{service: service}
}

// CreateAssociate 录入业务员
// @Summary      录入业务员
// @Tags         业务员
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.SaveAssociateRequest true "业务员信息"
// @Success      200 {object} response.Response
// @Router       /api/v1/associates [post]
func (h *AssociateHandler) CreateAssociate(c *gin.Context) {
	var req dto.SaveAssociateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, errors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.service.CreateAssociate(c.Request.Context(),
		req.Name, req.Address, req.Phone, req.CityID, req.Discount, req.PaymentType)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateAssociate 修改业务员
// @Summary      修改业务员
// @Tags         业务员
// @Security     BearerAuth
// @Param        id path int true "业务员ID"
// @Param        request body dto.SaveAssociateRequest true "业务员信息"
// @Success      200 {object} response.Response
// @Router       /api/v1/associates/{id} [put]
func (h *AssociateHandler) UpdateAssociate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.SaveAssociateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, errors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	if err := h.service.UpdateAssociate(c.Request.Context(), id,
		req.Name, req.Address, req.Phone, req.CityID, req.Discount, req.PaymentType); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// DeleteAssociate 删除业务员
// @Summary      删除业务员
// @Tags         业务员
// @Security     BearerAuth
// @Param        id path int true "业务员ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/associates/{id} [delete]
func (h *AssociateHandler) DeleteAssociate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteAssociate(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// GetAssociate 业务员详情
// @Summary      业务员详情
// @Tags         业务员
// @Security     BearerAuth
// @Param        id path int true "业务员ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "业务员不存在"
// @Router       /api/v1/associates/{id} [get]
func (h *AssociateHandler) GetAssociate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.service.GetAssociate(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListAssociates 业务员列表
// @Summary      业务员列表
// @Tags         业务员
// @Security     BearerAuth
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Param        keyword query string false "搜索姓名、电话"
// @Param        city_id query int false "城市ID"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/associates [get]
func (h *AssociateHandler) ListAssociates(c *gin.Context) {
	var req dto.ListAssociatesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, errors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}

	items, total, err := h.service.ListAssociates(c.Request.Context(), associate.ListParams{
		Page:     req.Page,
		PageSize: req.PageSize,
		Keyword:  req.Keyword,
		CityID:   req.CityID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, items, total, req.Page, req.PageSize)
}
