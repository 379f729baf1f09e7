package book

import (
	"time"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. Book是图书聚合的根实体,包含图书目录的核心属性
// 2. 价格使用int64存储卢比(印尼盾无小数,整数即可)
// 3. Code作为业务唯一标识(数据库层保证唯一性)
// 4. Stock只能通过StockGuard经由Repository.UpdateStock变更,
//    其他代码路径只读不写(保证交易生命周期与库存的一致性)
type Book struct {
	ID              uint
	Code            string // 图书编码(业务主键,全局唯一)
	Title           string // 书名
	CategoryCode    string // 分类编码(LKS类图书可享促销/折扣)
	TypeID          uint   // 图书类型ID(关联BookType)
	FieldOfStudyID  uint   // 学科领域ID(关联FieldOfStudy)
	Level           string // 适用年级
	Curriculum      string // 课程体系(如K13、Merdeka)
	Brand           string // 品牌
	Price           int64  // 售价(卢比)
	PurchasingPrice int64  // 采购参考价(卢比),采购明细的默认单价
	Stock           int    // 库存数量
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CategoryLKS 可享促销/折扣的分类编码
// 业务规则:只有LKS类图书接受促销金额与百分比折扣,
// 其他分类一律按售价全额计价
const CategoryLKS = "LKS"

// NewBook 创建新图书(工厂方法)
func NewBook(code, title, categoryCode string, typeID, fieldOfStudyID uint, level, curriculum, brand string, price, purchasingPrice int64, stock int) *Book {
	now := time.Now()
	return &Book{
		Code:            code,
		Title:           title,
		CategoryCode:    categoryCode,
		TypeID:          typeID,
		FieldOfStudyID:  fieldOfStudyID,
		Level:           level,
		Curriculum:      curriculum,
		Brand:           brand,
		Price:           price,
		PurchasingPrice: purchasingPrice,
		Stock:           stock,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// IsDiscountEligible 是否可享促销/折扣
func (b *Book) IsDiscountEligible() bool {
	return b.CategoryCode == CategoryLKS
}

// UpdatePrice 更新售价(领域行为)
// 业务规则:售价不能为负数
func (b *Book) UpdatePrice(newPrice int64) error {
	if newPrice < 0 {
		return ErrInvalidPrice
	}
	b.Price = newPrice
	b.UpdatedAt = time.Now()
	return nil
}

// UpdatePurchasingPrice 更新采购参考价
func (b *Book) UpdatePurchasingPrice(newPrice int64) error {
	if newPrice < 0 {
		return ErrInvalidPrice
	}
	b.PurchasingPrice = newPrice
	b.UpdatedAt = time.Now()
	return nil
}

// UpdateInfo 更新图书基本信息
func (b *Book) UpdateInfo(title, categoryCode string, typeID, fieldOfStudyID uint, level, curriculum, brand string) {
	if title != "" {
		b.Title = title
	}
	if categoryCode != "" {
		b.CategoryCode = categoryCode
	}
	if typeID != 0 {
		b.TypeID = typeID
	}
	if fieldOfStudyID != 0 {
		b.FieldOfStudyID = fieldOfStudyID
	}
	if level != "" {
		b.Level = level
	}
	if curriculum != "" {
		b.Curriculum = curriculum
	}
	if brand != "" {
		b.Brand = brand
	}
	b.UpdatedAt = time.Now()
}
