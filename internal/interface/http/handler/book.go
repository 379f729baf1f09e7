package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookstore-admin/internal/application/book"
	"github.com/xiebiao/bookstore-admin/internal/domain/book"
	"github.com/xiebiao/bookstore-admin/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-admin/pkg/errors"
	"github.com/xiebiao/bookstore-admin/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	manageUseCase   *appbook.ManageBookUseCase
	getUseCase      *appbook.GetBookUseCase
	getStockUseCase *appbook.GetStockUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	manageUseCase *appbook.ManageBookUseCase,
	getUseCase *appbook.GetBookUseCase,
	getStockUseCase *appbook.GetStockUseCase,
) *BookHandler {
	return &BookHandler{
		manageUseCase:   manageUseCase,
		getUseCase:      getUseCase,
		getStockUseCase: getStockUseCase,
	}
}

// parseIDParam 解析路径里的:id参数
func parseIDParam(c *gin.Context) (uint, bool) {
	return parseUintParam(c, "id")
}

// parseUintParam 解析路径里的无符号整数参数
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || v == 0 {
		response.ErrorWithCode(c, errors.ErrCodeInvalidParams, name+"参数错误")
		return 0, false
	}
	return uint(v), true
}

func toBookResponse(b *book.Book) *dto.BookResponse {
	const layout = "2006-01-02 15:04:05"
	return &dto.BookResponse{
		ID:              b.ID,
		Code:            b.Code,
		Title:           b.Title,
		CategoryCode:    b.CategoryCode,
		TypeID:          b.TypeID,
		FieldOfStudyID:  b.FieldOfStudyID,
		Level:           b.Level,
		Curriculum:      b.Curriculum,
		Brand:           b.Brand,
		Price:           b.Price,
		PurchasingPrice: b.PurchasingPrice,
		Stock:           b.Stock,
		CreatedAt:       b.CreatedAt.Format(layout),
		UpdatedAt:       b.UpdatedAt.Format(layout),
	}
}

// CreateBook 录入图书
// @Summary      录入图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.SaveBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      409 {object} response.Response "编码已存在"
// @Router       /api/v1/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req dto.SaveBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, errors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.manageUseCase.Create(c.Request.Context(), appbook.SaveBookRequest{
		Code:            req.Code,
		Title:           req.Title,
		CategoryCode:    req.CategoryCode,
		TypeID:          req.TypeID,
		FieldOfStudyID:  req.FieldOfStudyID,
		Level:           req.Level,
		Curriculum:      req.Curriculum,
		Brand:           req.Brand,
		Price:           req.Price,
		PurchasingPrice: req.PurchasingPrice,
		Stock:           req.Stock,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookResponse(result))
}

// UpdateBook 修改图书
// @Summary      修改图书
// @Description  修改图书信息与价格;库存不在此接口变更
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.SaveBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.SaveBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, errors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.manageUseCase.Update(c.Request.Context(), id, appbook.SaveBookRequest{
		Title:           req.Title,
		CategoryCode:    req.CategoryCode,
		TypeID:          req.TypeID,
		FieldOfStudyID:  req.FieldOfStudyID,
		Level:           req.Level,
		Curriculum:      req.Curriculum,
		Brand:           req.Brand,
		Price:           req.Price,
		PurchasingPrice: req.PurchasingPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookResponse(result))
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.manageUseCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.getUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookResponse(result))
}

// GetStock 库存查询
// @Summary      库存查询
// @Description  优先读Redis缓存,未命中回源数据库
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.StockResponse}
// @Router       /api/v1/books/{id}/stock [get]
func (h *BookHandler) GetStock(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	stock, err := h.getStockUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.StockResponse{BookID: id, Stock: stock})
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  支持编码/书名/品牌搜索,分类与类型过滤,价格排序
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Param        keyword query string false "搜索关键词"
// @Param        category_code query string false "分类编码"
// @Param        type_id query int false "图书类型ID"
// @Param        sort_by query string false "排序(price_asc/price_desc/created_at_desc)"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var req dto.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, errors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	books, total, err := h.manageUseCase.List(c.Request.Context(), book.ListParams{
		Page:         req.Page,
		PageSize:     req.PageSize,
		Keyword:      req.Keyword,
		CategoryCode: req.CategoryCode,
		TypeID:       req.TypeID,
		SortBy:       req.SortBy,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]*dto.BookResponse, len(books))
	for i, b := range books {
		items[i] = toBookResponse(b)
	}

	page, pageSize := req.Page, req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	response.SuccessWithPage(c, items, total, page, pageSize)
}
