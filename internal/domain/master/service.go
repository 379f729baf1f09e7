package master

import (
	"context"
	"strings"
	"time"
)

// Service 基础资料领域服务
// 五类参照实体的规则一致:名称必填、去首尾空白;
// 其余就是普通CRUD,不再逐一展开接口,直接给出实现
type Service struct {
	bookTypes     BookTypeRepository
	fieldsOfStudy FieldOfStudyRepository
	cities        CityRepository
	publishers    PublisherRepository
	expeditions   ExpeditionRepository
}

// NewService 创建基础资料领域服务
func NewService(
	bookTypes BookTypeRepository,
	fieldsOfStudy FieldOfStudyRepository,
	cities CityRepository,
	publishers PublisherRepository,
	expeditions ExpeditionRepository,
) *Service {
	return &Service{
		bookTypes:     bookTypes,
		fieldsOfStudy: fieldsOfStudy,
		cities:        cities,
		publishers:    publishers,
		expeditions:   expeditions,
	}
}

// normalizeName 名称必填校验
func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	return name, nil
}

// ========== 图书类型 ==========

func (s *Service) CreateBookType(ctx context.Context, name string) (*BookType, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	t := &BookType{Name: name, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	if err := s.bookTypes.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) UpdateBookType(ctx context.Context, id uint, name string) error {
	name, err := normalizeName(name)
	if err != nil {
		return err
	}
	t, err := s.bookTypes.FindByID(ctx, id)
	if err != nil {
		return err
	}
	t.Name = name
	t.UpdatedAt = time.Now()
	return s.bookTypes.Update(ctx, t)
}

func (s *Service) DeleteBookType(ctx context.Context, id uint) error {
	if _, err := s.bookTypes.FindByID(ctx, id); err != nil {
		return err
	}
	return s.bookTypes.Delete(ctx, id)
}

func (s *Service) ListBookTypes(ctx context.Context, params ListParams) ([]*BookType, int64, error) {
	return s.bookTypes.List(ctx, params)
}

// ========== 学科领域 ==========

func (s *Service) CreateFieldOfStudy(ctx context.Context, name string) (*FieldOfStudy, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	f := &FieldOfStudy{Name: name, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	if err := s.fieldsOfStudy.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Service) UpdateFieldOfStudy(ctx context.Context, id uint, name string) error {
	name, err := normalizeName(name)
	if err != nil {
		return err
	}
	f, err := s.fieldsOfStudy.FindByID(ctx, id)
	if err != nil {
		return err
	}
	f.Name = name
	f.UpdatedAt = time.Now()
	return s.fieldsOfStudy.Update(ctx, f)
}

func (s *Service) DeleteFieldOfStudy(ctx context.Context, id uint) error {
	if _, err := s.fieldsOfStudy.FindByID(ctx, id); err != nil {
		return err
	}
	return s.fieldsOfStudy.Delete(ctx, id)
}

func (s *Service) ListFieldsOfStudy(ctx context.Context, params ListParams) ([]*FieldOfStudy, int64, error) {
	return s.fieldsOfStudy.List(ctx, params)
}

// ========== 城市 ==========

func (s *Service) CreateCity(ctx context.Context, name, province string) (*City, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	c := &City{Name: name, Province: strings.TrimSpace(province), CreatedAt: time.Now(), UpdatedAt: time.Now()}
	if err := s.cities.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) UpdateCity(ctx context.Context, id uint, name, province string) error {
	name, err := normalizeName(name)
	if err != nil {
		return err
	}
	c, err := s.cities.FindByID(ctx, id)
	if err != nil {
		return err
	}
	c.Name = name
	c.Province = strings.TrimSpace(province)
	c.UpdatedAt = time.Now()
	return s.cities.Update(ctx, c)
}

func (s *Service) DeleteCity(ctx context.Context, id uint) error {
	if _, err := s.cities.FindByID(ctx, id); err != nil {
		return err
	}
	return s.cities.Delete(ctx, id)
}

func (s *Service) ListCities(ctx context.Context, params ListParams) ([]*City, int64, error) {
	return s.cities.List(ctx, params)
}

// ========== 出版社 ==========

func (s *Service) CreatePublisher(ctx context.Context, name, address, phone string, cityID uint) (*Publisher, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	p := &Publisher{
		Name:      name,
		Address:   strings.TrimSpace(address),
		Phone:     strings.TrimSpace(phone),
		CityID:    cityID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.publishers.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) UpdatePublisher(ctx context.Context, id uint, name, address, phone string, cityID uint) error {
	name, err := normalizeName(name)
	if err != nil {
		return err
	}
	p, err := s.publishers.FindByID(ctx, id)
	if err != nil {
		return err
	}
	p.Name = name
	p.Address = strings.TrimSpace(address)
	p.Phone = strings.TrimSpace(phone)
	p.CityID = cityID
	p.UpdatedAt = time.Now()
	return s.publishers.Update(ctx, p)
}

func (s *Service) DeletePublisher(ctx context.Context, id uint) error {
	if _, err := s.publishers.FindByID(ctx, id); err != nil {
		return err
	}
	return s.publishers.Delete(ctx, id)
}

func (s *Service) GetPublisher(ctx context.Context, id uint) (*Publisher, error) {
	return s.publishers.FindByID(ctx, id)
}

func (s *Service) ListPublishers(ctx context.Context, params ListParams) ([]*Publisher, int64, error) {
	return s.publishers.List(ctx, params)
}

// ========== 快递公司 ==========

func (s *Service) CreateExpedition(ctx context.Context, name, phone string) (*Expedition, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	e := &Expedition{Name: name, Phone: strings.TrimSpace(phone), CreatedAt: time.Now(), UpdatedAt: time.Now()}
	if err := s.expeditions.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) UpdateExpedition(ctx context.Context, id uint, name, phone string) error {
	name, err := normalizeName(name)
	if err != nil {
		return err
	}
	e, err := s.expeditions.FindByID(ctx, id)
	if err != nil {
		return err
	}
	e.Name = name
	e.Phone = strings.TrimSpace(phone)
	e.UpdatedAt = time.Now()
	return s.expeditions.Update(ctx, e)
}

func (s *Service) DeleteExpedition(ctx context.Context, id uint) error {
	if _, err := s.expeditions.FindByID(ctx, id); err != nil {
		return err
	}
	return s.expeditions.Delete(ctx, id)
}

func (s *Service) GetExpedition(ctx context.Context, id uint) (*Expedition, error) {
	return s.expeditions.FindByID(ctx, id)
}

func (s *Service) ListExpeditions(ctx context.Context, params ListParams) ([]*Expedition, int64, error) {
	return s.expeditions.List(ctx, params)
}
