package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-admin/internal/domain/master"
	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
)

// 基础资料仓储实现(MySQL)
// 设计说明:
// 1. 五类参照实体(类型/学科/城市/出版社/快递)只有普通CRUD,
//    各自实现domain/master定义的小接口
// 2. 名称唯一性由数据库UNIQUE索引保证,冲突转换为业务错误
// 3. listMaster封装共享的分页+名称搜索逻辑

// listMaster 通用列表查询:按名称搜索+分页
func listMaster(query *gorm.DB, params master.ListParams, dest interface{}) (int64, error) {
	var total int64

	if params.Keyword != "" {
		query = query.Where("name LIKE ?", "%"+params.Keyword+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return 0, apperrors.Wrap(err, "查询基础资料总数失败")
	}

	offset := (params.Page - 1) * params.PageSize
	err := query.Order("name ASC").
		Limit(params.PageSize).
		Offset(offset).
		Find(dest).Error

	if err != nil {
		return 0, apperrors.Wrap(err, "查询基础资料列表失败")
	}

	return total, nil
}

// =========================================
// 图书类型
// =========================================

type bookTypeRepository struct {
	db *gorm.DB
}

// NewBookTypeRepository 创建图书类型仓储
func NewBookTypeRepository(db *gorm.DB) master.BookTypeRepository {
	return &bookTypeRepository{db: db}
}

func (r *bookTypeRepository) Create(ctx context.Context, t *master.BookType) error {
	model := &BookTypeModel{Name: t.Name}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return master.ErrNameDuplicate
		}
		return apperrors.Wrap(err, "创建图书类型失败")
	}
	t.ID = model.ID
	t.CreatedAt = model.CreatedAt
	t.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *bookTypeRepository) FindByID(ctx context.Context, id uint) (*master.BookType, error) {
	var model BookTypeModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, master.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书类型失败")
	}
	return &master.BookType{ID: model.ID, Name: model.Name, CreatedAt: model.CreatedAt, UpdatedAt: model.UpdatedAt}, nil
}

func (r *bookTypeRepository) Update(ctx context.Context, t *master.BookType) error {
	result := r.db.WithContext(ctx).Model(&BookTypeModel{}).
		Where("id = ?", t.ID).
		Updates(map[string]interface{}{"name": t.Name, "updated_at": t.UpdatedAt})
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return master.ErrNameDuplicate
		}
		return apperrors.Wrap(result.Error, "更新图书类型失败")
	}
	if result.RowsAffected == 0 {
		return master.ErrNotFound
	}
	return nil
}

func (r *bookTypeRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&BookTypeModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书类型失败")
	}
	if result.RowsAffected == 0 {
		return master.ErrNotFound
	}
	return nil
}

func (r *bookTypeRepository) List(ctx context.Context, params master.ListParams) ([]*master.BookType, int64, error) {
	var models []BookTypeModel
	total, err := listMaster(r.db.WithContext(ctx).Model(&BookTypeModel{}), params, &models)
	if err != nil {
		return nil, 0, err
	}

	types := make([]*master.BookType, len(models))
	for i, m := range models {
		types[i] = &master.BookType{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
	}
	return types, total, nil
}

// =========================================
// 学科领域
// =========================================

type fieldOfStudyRepository struct {
	db *gorm.DB
}

// NewFieldOfStudyRepository 创建学科领域仓储
func NewFieldOfStudyRepository(db *gorm.DB) master.FieldOfStudyRepository {
	return &fieldOfStudyRepository{db: db}
}

func (r *fieldOfStudyRepository) Create(ctx context.Context, f *master.FieldOfStudy) error {
	model := &FieldOfStudyModel{Name: f.Name}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return master.ErrNameDuplicate
		}
		return apperrors.Wrap(err, "创建学科领域失败")
	}
	f.ID = model.ID
	f.CreatedAt = model.CreatedAt
	f.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *fieldOfStudyRepository) FindByID(ctx context.Context, id uint) (*master.FieldOfStudy, error) {
	var model FieldOfStudyModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, master.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "查询学科领域失败")
	}
	return &master.FieldOfStudy{ID: model.ID, Name: model.Name, CreatedAt: model.CreatedAt, UpdatedAt: model.UpdatedAt}, nil
}

func (r *fieldOfStudyRepository) Update(ctx context.Context, f *master.FieldOfStudy) error {
	result := r.db.WithContext(ctx).Model(&FieldOfStudyModel{}).
		Where("id = ?", f.ID).
		Updates(map[string]interface{}{"name": f.Name, "updated_at": f.UpdatedAt})
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return master.ErrNameDuplicate
		}
		return apperrors.Wrap(result.Error, "更新学科领域失败")
	}
	if result.RowsAffected == 0 {
		return master.ErrNotFound
	}
	return nil
}

func (r *fieldOfStudyRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&FieldOfStudyModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除学科领域失败")
	}
	if result.RowsAffected == 0 {
		return master.ErrNotFound
	}
	return nil
}

func (r *fieldOfStudyRepository) List(ctx context.Context, params master.ListParams) ([]*master.FieldOfStudy, int64, error) {
	var models []FieldOfStudyModel
	total, err := listMaster(r.db.WithContext(ctx).Model(&FieldOfStudyModel{}), params, &models)
	if err != nil {
		return nil, 0, err
	}

	fields := make([]*master.FieldOfStudy, len(models))
	for i, m := range models {
		fields[i] = &master.FieldOfStudy{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
	}
	return fields, total, nil
}

// =========================================
// 城市
// =========================================

type cityRepository struct {
	db *gorm.DB
}

// NewCityRepository 创建城市仓储
func NewCityRepository(db *gorm.DB) master.CityRepository {
	return &cityRepository{db: db}
}

func (r *cityRepository) Create(ctx context.Context, c *master.City) error {
	model := &CityModel{Name: c.Name, Province: c.Province}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建城市失败")
	}
	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *cityRepository) FindByID(ctx context.Context, id uint) (*master.City, error) {
	var model CityModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, master.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "查询城市失败")
	}
	return toCityEntity(&model), nil
}

func (r *cityRepository) Update(ctx context.Context, c *master.City) error {
	result := r.db.WithContext(ctx).Model(&CityModel{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{"name": c.Name, "province": c.Province, "updated_at": c.UpdatedAt})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新城市失败")
	}
	if result.RowsAffected == 0 {
		return master.ErrNotFound
	}
	return nil
}

func (r *cityRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&CityModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除城市失败")
	}
	if result.RowsAffected == 0 {
		return master.ErrNotFound
	}
	return nil
}

func (r *cityRepository) List(ctx context.Context, params master.ListParams) ([]*master.City, int64, error) {
	var models []CityModel
	total, err := listMaster(r.db.WithContext(ctx).Model(&CityModel{}), params, &models)
	if err != nil {
		return nil, 0, err
	}

	cities := make([]*master.City, len(models))
	for i := range models {
		cities[i] = toCityEntity(&models[i])
	}
	return cities, total, nil
}

func toCityEntity(model *CityModel) *master.City {
	return &master.City{
		ID:        model.ID,
		Name:      model.Name,
		Province:  model.Province,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// =========================================
// 出版社
// =========================================

type publisherRepository struct {
	db *gorm.DB
}

// NewPublisherRepository 创建出版社仓储
func NewPublisherRepository(db *gorm.DB) master.PublisherRepository {
	return &publisherRepository{db: db}
}

func (r *publisherRepository) Create(ctx context.Context, p *master.Publisher) error {
	model := &PublisherModel{Name: p.Name, Address: p.Address, Phone: p.Phone, CityID: p.CityID}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return master.ErrNameDuplicate
		}
		return apperrors.Wrap(err, "创建出版社失败")
	}
	p.ID = model.ID
	p.CreatedAt = model.CreatedAt
	p.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *publisherRepository) FindByID(ctx context.Context, id uint) (*master.Publisher, error) {
	var model PublisherModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, master.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "查询出版社失败")
	}
	return toPublisherEntity(&model), nil
}

func (r *publisherRepository) Update(ctx context.Context, p *master.Publisher) error {
	result := r.db.WithContext(ctx).Model(&PublisherModel{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"name":       p.Name,
			"address":    p.Address,
			"phone":      p.Phone,
			"city_id":    p.CityID,
			"updated_at": p.UpdatedAt,
		})
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return master.ErrNameDuplicate
		}
		return apperrors.Wrap(result.Error, "更新出版社失败")
	}
	if result.RowsAffected == 0 {
		return master.ErrNotFound
	}
	return nil
}

func (r *publisherRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&PublisherModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除出版社失败")
	}
	if result.RowsAffected == 0 {
		return master.ErrNotFound
	}
	return nil
}

func (r *publisherRepository) List(ctx context.Context, params master.ListParams) ([]*master.Publisher, int64, error) {
	var models []PublisherModel
	total, err := listMaster(r.db.WithContext(ctx).Model(&PublisherModel{}), params, &models)
	if err != nil {
		return nil, 0, err
	}

	publishers := make([]*master.Publisher, len(models))
	for i := range models {
		publishers[i] = toPublisherEntity(&models[i])
	}
	return publishers, total, nil
}

func toPublisherEntity(model *PublisherModel) *master.Publisher {
	return &master.Publisher{
		ID:        model.ID,
		Name:      model.Name,
		Address:   model.Address,
		Phone:     model.Phone,
		CityID:    model.CityID,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// =========================================
// 快递公司
// =========================================

type expeditionRepository struct {
	db *gorm.DB
}

// NewExpeditionRepository 创建快递公司仓储
func NewExpeditionRepository(db *gorm.DB) master.ExpeditionRepository {
	return &expeditionRepository{db: db}
}

func (r *expeditionRepository) Create(ctx context.Context, e *master.Expedition) error {
	model := &ExpeditionModel{Name: e.Name, Phone: e.Phone}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return master.ErrNameDuplicate
		}
		return apperrors.Wrap(err, "创建快递公司失败")
	}
	e.ID = model.ID
	e.CreatedAt = model.CreatedAt
	e.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *expeditionRepository) FindByID(ctx context.Context, id uint) (*master.Expedition, error) {
	var model ExpeditionModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, master.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "查询快递公司失败")
	}
	return &master.Expedition{ID: model.ID, Name: model.Name, Phone: model.Phone, CreatedAt: model.CreatedAt, UpdatedAt: model.UpdatedAt}, nil
}

func (r *expeditionRepository) Update(ctx context.Context, e *master.Expedition) error {
	result := r.db.WithContext(ctx).Model(&ExpeditionModel{}).
		Where("id = ?", e.ID).
		Updates(map[string]interface{}{"name": e.Name, "phone": e.Phone, "updated_at": e.UpdatedAt})
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return master.ErrNameDuplicate
		}
		return apperrors.Wrap(result.Error, "更新快递公司失败")
	}
	if result.RowsAffected == 0 {
		return master.ErrNotFound
	}
	return nil
}

func (r *expeditionRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&ExpeditionModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除快递公司失败")
	}
	if result.RowsAffected == 0 {
		return master.ErrNotFound
	}
	return nil
}

func (r *expeditionRepository) List(ctx context.Context, params master.ListParams) ([]*master.Expedition, int64, error) {
	var models []ExpeditionModel
	total, err := listMaster(r.db.WithContext(ctx).Model(&ExpeditionModel{}), params, &models)
	if err != nil {
		return nil, 0, err
	}

	expeditions := make([]*master.Expedition, len(models))
	for i, m := range models {
		expeditions[i] = &master.Expedition{ID: m.ID, Name: m.Name, Phone: m.Phone, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
	}
	return expeditions, total, nil
}
