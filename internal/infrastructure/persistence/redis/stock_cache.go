package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/bookstore-admin/pkg/errors"
)

// StockCache 库存缓存
// 设计说明:
// 1. 只做读加速,数据库是库存的唯一事实来源:
//    交易提交后由应用层调用Invalidate,下次读取时回填
// 2. Key设计:stock:{book_id},短TTL兜底(防止失效通知丢失后长期脏读)
// 3. 缓存未命中返回ErrCacheMiss,由调用方回源数据库
type StockCache struct {
	client *redis.Client
	ttl    time.Duration
}

// ErrCacheMiss 缓存未命中
var ErrCacheMiss = apperrors.New(apperrors.ErrCodeRedisError, "库存缓存未命中")

// NewStockCache 创建库存缓存
func NewStockCache(client *redis.Client) *StockCache {
	return &StockCache{
		client: client,
		ttl:    5 * time.Minute,
	}
}

// Get 读取图书库存
func (c *StockCache) Get(ctx context.Context, bookID uint) (int, error) {
	key := fmt.Sprintf("stock:%d", bookID)

	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, ErrCacheMiss
		}
		return 0, apperrors.Wrap(err, "读取库存缓存失败")
	}

	stock, err := strconv.Atoi(val)
	if err != nil {
		// 脏数据按未命中处理,让调用方回源覆盖
		return 0, ErrCacheMiss
	}

	return stock, nil
}

// Set 回填图书库存
func (c *StockCache) Set(ctx context.Context, bookID uint, stock int) error {
	key := fmt.Sprintf("stock:%d", bookID)

	if err := c.client.Set(ctx, key, stock, c.ttl).Err(); err != nil {
		return apperrors.Wrap(err, "写入库存缓存失败")
	}

	return nil
}

// Invalidate 库存变更后失效缓存
// 交易提交(销售扣减、采购入库、销售删除回补)后调用
func (c *StockCache) Invalidate(ctx context.Context, bookIDs ...uint) error {
	if len(bookIDs) == 0 {
		return nil
	}

	keys := make([]string, len(bookIDs))
	for i, id := range bookIDs {
		keys[i] = fmt.Sprintf("stock:%d", id)
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return apperrors.Wrap(err, "失效库存缓存失败")
	}

	return nil
}
