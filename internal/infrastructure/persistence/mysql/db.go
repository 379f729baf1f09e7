package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookstore-admin/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// AutoMigrate只会创建表、添加字段,不会删除或修改现有字段
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&BookModel{},
		&BookTypeModel{},
		&FieldOfStudyModel{},
		&CityModel{},
		&PublisherModel{},
		&ExpeditionModel{},
		&AssociateModel{},
		&SalesModel{},
		&SalesItemModel{},
		&ShippingModel{},
		&PaymentModel{},
		&PurchaseModel{},
		&PurchaseItemModel{},
	)
}

// =========================================
// GORM数据模型
// 设计说明:
// 1. 这是infrastructure层的数据模型,包含GORM tag
// 2. domain层的实体不依赖GORM,Repository负责两者之间的转换
// 3. 金额字段一律int64卢比(印尼盾无小数,整数即可)
// =========================================

// UserModel 后台账号模型
type UserModel struct {
	ID        uint           `gorm:"primaryKey"`
	Username  string         `gorm:"uniqueIndex;size:30;not null;comment:登录名"`
	Password  string         `gorm:"size:255;not null;comment:密码(bcrypt加密)"`
	Name      string         `gorm:"size:50;not null;comment:显示名"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

func (UserModel) TableName() string {
	return "users"
}

// BookModel 图书模型
// 设计说明:
// 1. Code有唯一索引(业务主键),防止重复
// 2. 价格使用int64存储卢比,避免浮点数精度问题
// 3. 复合索引优化列表查询
type BookModel struct {
	ID              uint           `gorm:"primaryKey"`
	Code            string         `gorm:"uniqueIndex;size:30;not null;comment:图书编码"`
	Title           string         `gorm:"index:idx_search;size:200;not null;comment:书名"`
	CategoryCode    string         `gorm:"index;size:20;not null;comment:分类编码"`
	TypeID          uint           `gorm:"index;comment:图书类型ID"`
	FieldOfStudyID  uint           `gorm:"index;comment:学科领域ID"`
	Level           string         `gorm:"size:20;comment:适用年级"`
	Curriculum      string         `gorm:"size:30;comment:课程体系"`
	Brand           string         `gorm:"index:idx_search;size:50;comment:品牌"`
	Price           int64          `gorm:"index:idx_list;not null;comment:售价(卢比)"`
	PurchasingPrice int64          `gorm:"not null;default:0;comment:采购参考价(卢比)"`
	Stock           int            `gorm:"default:0;comment:库存数量"`
	CreatedAt       time.Time      `gorm:"index:idx_list;comment:创建时间"`
	UpdatedAt       time.Time      `gorm:"comment:更新时间"`
	DeletedAt       gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

func (BookModel) TableName() string {
	return "books"
}

// BookTypeModel 图书类型模型
type BookTypeModel struct {
	ID        uint           `gorm:"primaryKey"`
	Name      string         `gorm:"uniqueIndex;size:50;not null;comment:类型名称"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

func (BookTypeModel) TableName() string {
	return "book_types"
}

// FieldOfStudyModel 学科领域模型
type FieldOfStudyModel struct {
	ID        uint           `gorm:"primaryKey"`
	Name      string         `gorm:"uniqueIndex;size:50;not null;comment:学科名称"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

func (FieldOfStudyModel) TableName() string {
	return "fields_of_study"
}

// CityModel 城市模型
type CityModel struct {
	ID        uint           `gorm:"primaryKey"`
	Name      string         `gorm:"index;size:50;not null;comment:城市名称"`
	Province  string         `gorm:"size:50;comment:省份"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

func (CityModel) TableName() string {
	return "cities"
}

// PublisherModel 出版社模型(采购单的供应商)
type PublisherModel struct {
	ID        uint           `gorm:"primaryKey"`
	Name      string         `gorm:"uniqueIndex;size:100;not null;comment:出版社名称"`
	Address   string         `gorm:"size:200;comment:地址"`
	Phone     string         `gorm:"size:20;comment:电话"`
	CityID    uint           `gorm:"index;comment:城市ID"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

func (PublisherModel) TableName() string {
	return "publishers"
}

// ExpeditionModel 快递公司模型(销售运单的承运方)
type ExpeditionModel struct {
	ID        uint           `gorm:"primaryKey"`
	Name      string         `gorm:"uniqueIndex;size:50;not null;comment:快递公司名称"`
	Phone     string         `gorm:"size:20;comment:电话"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

func (ExpeditionModel) TableName() string {
	return "expeditions"
}

// AssociateModel 业务员模型
type AssociateModel struct {
	ID          uint           `gorm:"primaryKey"`
	Name        string         `gorm:"index;size:50;not null;comment:姓名"`
	Address     string         `gorm:"size:200;comment:地址"`
	Phone       string         `gorm:"index;size:20;comment:电话"`
	CityID      uint           `gorm:"index;comment:城市ID"`
	Discount    int            `gorm:"default:0;comment:默认折扣百分比(0-100)"`
	PaymentType string         `gorm:"size:1;default:T;comment:默认付款方式(T现金K赊销)"`
	CreatedAt   time.Time      `gorm:"comment:创建时间"`
	UpdatedAt   time.Time      `gorm:"comment:更新时间"`
	DeletedAt   gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

func (AssociateModel) TableName() string {
	return "sales_associates"
}

// SalesModel 销售单模型
// 设计说明:
// 1. 与SalesItemModel/ShippingModel/PaymentModel是一对多关系
// 2. TransactionNo有唯一索引(业务主键)
// 3. 不冗余总金额:总额、余额一律由领域层实时计算
type SalesModel struct {
	ID              uint            `gorm:"primaryKey"`
	TransactionNo   string          `gorm:"uniqueIndex;size:32;not null;comment:销售单号"`
	AssociateID     uint            `gorm:"index;not null;comment:业务员ID"`
	PaymentType     string          `gorm:"size:1;not null;comment:付款方式(T现金K赊销)"`
	TransactionDate time.Time       `gorm:"index;not null;comment:交易日期"`
	DueDate         *time.Time      `gorm:"comment:到期日(仅赊销)"`
	Status          int             `gorm:"index;type:tinyint;default:0;comment:状态(0订单1已结清2分期中)"`
	Items           []SalesItemModel `gorm:"foreignKey:TransactionID"`
	Shippings       []ShippingModel  `gorm:"foreignKey:TransactionID"`
	Payments        []PaymentModel   `gorm:"foreignKey:TransactionID"`
	CreatedAt       time.Time       `gorm:"index;comment:创建时间"`
	UpdatedAt       time.Time       `gorm:"comment:更新时间"`
}

func (SalesModel) TableName() string {
	return "sales_transactions"
}

// SalesItemModel 销售明细模型
// BasePrice/CategoryCode是提交时的快照,目录价之后变化不影响历史单据
type SalesItemModel struct {
	ID            uint   `gorm:"primaryKey"`
	TransactionID uint   `gorm:"index;not null;comment:销售单ID"`
	BookID        uint   `gorm:"index;not null;comment:图书ID"`
	Quantity      int    `gorm:"not null;comment:数量"`
	BasePrice     int64  `gorm:"not null;comment:提交时售价快照(卢比)"`
	CategoryCode  string `gorm:"size:20;not null;comment:提交时分类快照"`
	Promotion     int64  `gorm:"default:0;comment:促销金额(卢比)"`
	Discount      int    `gorm:"default:0;comment:折扣百分比(0-100)"`
}

func (SalesItemModel) TableName() string {
	return "sales_items"
}

// ShippingModel 运单模型
type ShippingModel struct {
	ID            uint   `gorm:"primaryKey"`
	TransactionID uint   `gorm:"index;not null;comment:销售单ID"`
	ExpeditionID  uint   `gorm:"index;not null;comment:快递公司ID"`
	NoResi        string `gorm:"size:50;comment:运单号"`
	TotalAmount   int64  `gorm:"not null;comment:运费(卢比)"`
}

func (ShippingModel) TableName() string {
	return "sales_shippings"
}

// PaymentModel 收款记录模型
type PaymentModel struct {
	ID            uint      `gorm:"primaryKey"`
	TransactionID uint      `gorm:"index;not null;comment:销售单ID"`
	PaymentDate   time.Time `gorm:"index;not null;comment:收款日期"`
	Amount        int64     `gorm:"not null;comment:收款金额(卢比)"`
	Note          string    `gorm:"size:200;comment:备注"`
}

func (PaymentModel) TableName() string {
	return "sales_payments"
}

// PurchaseModel 采购单模型
type PurchaseModel struct {
	ID            uint                `gorm:"primaryKey"`
	TransactionNo string              `gorm:"uniqueIndex;size:32;not null;comment:采购单号"`
	SupplierID    uint                `gorm:"index;not null;comment:供应商(出版社)ID"`
	PurchaseDate  time.Time           `gorm:"index;not null;comment:采购日期"`
	Note          string              `gorm:"size:200;comment:备注"`
	Status        int                 `gorm:"index;type:tinyint;default:0;comment:状态(0待入库1已入库2已取消)"`
	Items         []PurchaseItemModel `gorm:"foreignKey:TransactionID"`
	CreatedAt     time.Time           `gorm:"index;comment:创建时间"`
	UpdatedAt     time.Time           `gorm:"comment:更新时间"`
}

func (PurchaseModel) TableName() string {
	return "purchase_transactions"
}

// PurchaseItemModel 采购明细模型
type PurchaseItemModel struct {
	ID            uint  `gorm:"primaryKey"`
	TransactionID uint  `gorm:"index;not null;comment:采购单ID"`
	BookID        uint  `gorm:"index;not null;comment:图书ID"`
	Quantity      int   `gorm:"not null;comment:数量"`
	UnitPrice     int64 `gorm:"not null;comment:进货单价(卢比)"`
}

func (PurchaseItemModel) TableName() string {
	return "purchase_items"
}
