// Package master 基础资料(参照数据)
//
// 图书类型、学科领域、城市、出版社、快递公司都是以名称为主的
// 参照实体,只有普通CRUD,没有状态机;交易侧通过ID引用它们。
package master

import (
	"time"
)

// BookType 图书类型
type BookType struct {
	ID        uint
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FieldOfStudy 学科领域
type FieldOfStudy struct {
	ID        uint
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// City 城市
type City struct {
	ID        uint
	Name      string
	Province  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Publisher 出版社(采购单的供应商)
type Publisher struct {
	ID        uint
	Name      string
	Address   string
	Phone     string
	CityID    uint
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Expedition 快递公司(销售运单的承运方)
type Expedition struct {
	ID        uint
	Name      string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
