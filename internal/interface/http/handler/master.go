package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookstore-admin/internal/domain/master"
	"github.com/xiebiao/bookstore-admin/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-admin/pkg/errors"
	"github.com/xiebiao/bookstore-admin/pkg/response"
)

// MasterHandler 基础资料HTTP处理器
// 五类参照实体(图书类型/学科领域/城市/出版社/快递公司)
// 都是纯CRUD,领域服务即应用面,不再包一层用例
type MasterHandler struct {
	service *master.Service
}

// NewMasterHandler 创建基础资料处理器
func NewMasterHandler(service *master.Service) *MasterHandler {
	return &MasterHandler{service: service}
}

func bindListParams(c *gin.Context) (master.ListParams, bool) {
	var req dto.ListMasterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, errors.ErrCodeBindError, "参数错误: "+err.Error())
		return master.ListParams{}, false
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}
	return master.ListParams{Page: req.Page, PageSize: req.PageSize, Keyword: req.Keyword}, true
}

// ========== 图书类型 ==========

// CreateBookType 创建图书类型
// @Summary      创建图书类型
// @Tags         基础资料
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.NameRequest true "类型信息"
// @Success      200 {object} response.Response
// @Router       /api/v1/book-types [post]
func (h *MasterHandler) CreateBookType(c *gin.Context) {
	var req dto.NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, errors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.service.CreateBookType(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateBookType 修改图书类型
// @Summary      修改图书类型
// @Tags         基础资料
// @Security     BearerAuth
// @Param        id path int true "类型ID"
// @Param        request body dto.NameRequest true "类型信息"
// @Success      200 {object} response.Response
// @Router       /api/v1/book-types/{id} [put]
func (h *MasterHandler) UpdateBookType(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, errors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	if err := h.service.UpdateBookType(c.Request.Context(), id, req.Name); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// DeleteBookType 删除图书类型
// @Summary      删除图书类型
// @Tags         基础资料
// @Security     BearerAuth
// @Param        id path int true "类型ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/book-types/{id} [delete]
func (h *MasterHandler) DeleteBookType(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.service.DeleteBookType(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ListBookTypes 图书类型列表
// @Summary      图书类型列表
// @Tags         基础资料
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/book-types [get]
func (h *MasterHandler) ListBookTypes(c *gin.Context) {
	params, ok := bindListParams(c)
	if !ok {
		return
	}
	items, total, err := h.service.ListBookTypes(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, items, total, params.Page, params.PageSize)
}

// ========== 学科领域 ==========

// CreateFieldOfStudy 创建学科领域
// @Summary      创建学科领域
// @Tags         基础资料
// @Security     BearerAuth
// @Param        request body dto.NameRequest true "学科信息"
// @Success      200 {object} response.Response
// @Router       /api/v1/fields-of-study [post]
func (h *MasterHandler) CreateFieldOfStudy(c *gin.Context) {
	var req dto.NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, errors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.service.CreateFieldOfStudy(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateFieldOfStudy 修改学科领域
// @Summary      修改学科领域
// @Tags         基础资料
// @Security     BearerAuth
// @Param        id path int true "学科ID"
// @Param        request body dto.NameRequest true "学科信息"
// @Success      200 {object} response.Response
// @Router       /api/v1/fields-of-study/{id} [put]
func (h *MasterHandler) UpdateFieldOfStudy(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, errors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	if err := h.service.UpdateFieldOfStudy(c.Request.Context(), id, req.Name); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// DeleteFieldOfStudy 删除学科领域
// @Summary      删除学科领域
// @Tags         基础资料
// @Security     BearerAuth
// @Param        id path int true "学科ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/fields-of-study/{id} [delete]
func (h *MasterHandler) DeleteFieldOfStudy(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.service.DeleteFieldOfStudy(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ListFieldsOfStudy 学科领域列表
// @Summary      学科领域列表
// @Tags         基础资料
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/fields-of-study [get]
func (h *MasterHandler) ListFieldsOfStudy(c *gin.Context) {
	params, ok := bindListParams(c)
	if !ok {
		return
	}
	items, total, err := h.service.ListFieldsOfStudy(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, items, total, params.Page, params.PageSize)
}

// ========== 城市 ==========

// CreateCity 创建城市
// @Summary      创建城市
// @Tags         基础资料
// @Security     BearerAuth
// @Param        request body dto.CityRequest true "城市信息"
// @Success      200 {object} response.Response
// @Router       /api/v1/cities [post]
func (h *MasterHandler) CreateCity(c *gin.Context) {
	var req dto.CityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, errors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.service.CreateCity(c.Request.Context(), req.Name, req.Province)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateCity 修改城市
// @Summary      修改城市
// @Tags         基础资料
// @Security     BearerAuth
// @Param        id path int true "城市ID"
// @Param        request body dto.CityRequest true "城市信息"
// @Success      200 {object} response.Response
// @Router       /api/v1/cities/{id} [put]
func (h *MasterHandler) UpdateCity(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.CityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, errors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	if err := h.service.UpdateCity(c.Request.Context(), id, req.Name, req.Province); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// DeleteCity 删除城市
// @Summary      删除城市
// @Tags         基础资料
// @Security     BearerAuth
// @Param        id path int true "城市ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/cities/{id} [delete]
func (h *MasterHandler) DeleteCity(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.service.DeleteCity(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ListCities 城市列表
// @Summary      城市列表
// @Tags         基础资料
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/cities [get]
func (h *MasterHandler) ListCities(c *gin.Context) {
	params, ok := bindListParams(c)
	if !ok {
		return
	}
	items, total, err := h.service.ListCities(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, items, total, params.Page, params.PageSize)
}

// ========== 出版社 ==========

// CreatePublisher 创建出版社
// @Summary      创建出版社
// @Tags         基础资料
// @Security     BearerAuth
// @Param        request body dto.PublisherRequest true "出版社信息"
// @Success      200 {object} response.Response
// @Router       /api/v1/publishers [post]
func (h *MasterHandler) CreatePublisher(c *gin.Context) {
	var req dto.PublisherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, errors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.service.CreatePublisher(c.Request.Context(), req.Name, req.Address, req.Phone, req.CityID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdatePublisher 修改出版社
// @Summary      修改出版社
// @Tags         基础资料
// @Security     BearerAuth
// @Param        id path int true "出版社ID"
// @Param        request body dto.PublisherRequest true "出版社信息"
// @Success      200 {object} response.Response
// @Router       /api/v1/publishers/{id} [put]
func (h *MasterHandler) UpdatePublisher(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.PublisherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, errors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	if err := h.service.UpdatePublisher(c.Request.Context(), id, req.Name, req.Address, req.Phone, req.CityID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// DeletePublisher 删除出版社
// @Summary      删除出版社
// @Tags         基础资料
// @Security     BearerAuth
// @Param        id path int true "出版社ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/publishers/{id} [delete]
func (h *MasterHandler) DeletePublisher(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.service.DeletePublisher(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ListPublishers 出版社列表
// @Summary      出版社列表
// @Tags         基础资料
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/publishers [get]
func (h *MasterHandler) ListPublishers(c *gin.Context) {
	params, ok := bindListParams(c)
	if !ok {
		return
	}
	items, total, err := h.service.ListPublishers(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, items, total, params.Page, params.PageSize)
}

// ========== 快递公司 ==========

// CreateExpedition 创建快递公司
// @Summary      创建快递公司
// @Tags         基础资料
// @Security     BearerAuth
// @Param        request body dto.ExpeditionRequest true "快递公司信息"
// @Success      200 {object} response.Response
// @Router       /api/v1/expeditions [post]
func (h *MasterHandler) CreateExpedition(c *gin.Context) {
	var req dto.ExpeditionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, errors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.service.CreateExpedition(c.Request.Context(), req.Name, req.Phone)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateExpedition 修改快递公司
// @Summary      修改快递公司
// @Tags         基础资料
// @Security     BearerAuth
// @Param        id path int true "快递公司ID"
// @Param        request body dto.ExpeditionRequest true "快递公司信息"
// @Success      200 {object} response.Response
// @Router       /api/v1/expeditions/{id} [put]
func (h *MasterHandler) UpdateExpedition(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.ExpeditionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, errors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	if err := h.service.UpdateExpedition(c.Request.Context(), id, req.Name, req.Phone); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// DeleteExpedition 删除快递公司
// @Summary      删除快递公司
// @Tags         基础资料
// @Security     BearerAuth
// @Param        id path int true "快递公司ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/expeditions/{id} [delete]
func (h *MasterHandler) DeleteExpedition(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.service.DeleteExpedition(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ListExpeditions 快递公司列表
// @Summary      快递公司列表
// @Tags         基础资料
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/expeditions [get]
func (h *MasterHandler) ListExpeditions(c *gin.Context) {
	params, ok := bindListParams(c)
	if !ok {
		return
	}
	items, total, err := h.service.ListExpeditions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, items, total, params.Page, params.PageSize)
}
