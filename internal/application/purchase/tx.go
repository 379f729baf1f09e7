package purchase

import (
	"context"
)

// TxManager 事务边界(由infrastructure/persistence/mysql.TxManager实现)
// 在消费方定义小接口,便于用例测试时用假实现替换
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
