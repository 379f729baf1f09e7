package user

import (
	"context"
)

// Repository 账号仓储接口（依赖倒置原则）
type Repository interface {
	// Create 创建账号
	Create(ctx context.Context, user *User) error

	// FindByID 根据ID查找账号
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByUsername 根据登录名查找账号
	FindByUsername(ctx context.Context, username string) (*User, error)

	// Update 更新账号信息
	Update(ctx context.Context, user *User) error
}
