package user

import (
	"time"
)

// User 后台账号实体（聚合根）
// DDD设计说明：
// 1. User是账号聚合的根实体
// 2. 密码已加密存储（bcrypt），不提供任何暴露明文的方法
// 3. 领域实体不依赖GORM tag（infrastructure层的Repository实现时会处理映射）
type User struct {
	ID        uint
	Username  string // 登录名（全局唯一）
	Password  string // bcrypt哈希值
	Name      string // 显示名
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建新账号（工厂方法）
// hashedPassword必须是bcrypt加密后的密码
func NewUser(username, hashedPassword, name string) *User {
	now := time.Now()
	return &User{
		Username:  username,
		Password:  hashedPassword,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateName 更新显示名（领域行为）
func (u *User) UpdateName(name string) {
	u.Name = name
	u.UpdatedAt = time.Now()
}
