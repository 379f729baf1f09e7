// Package event 领域事件发布
//
// 交易提交成功后对外广播领域事件,下游(报表、库存同步、通知)
// 按路由键订阅。事件发布失败不回滚业务事务:数据库是事实来源,
// 事件只是通知,丢失时下游可通过对账补偿。
package event

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/bookstore-admin/pkg/circuitbreaker"
	"github.com/xiebiao/bookstore-admin/pkg/metrics"
	"github.com/xiebiao/bookstore-admin/pkg/mq"
)

// 路由键定义(Topic Exchange,按"领域.动作"命名)
const (
	RoutingKeySalesCreated      = "sales.created"
	RoutingKeySalesDeleted      = "sales.deleted"
	RoutingKeyPurchaseCompleted = "purchase.completed"
	RoutingKeyStockChanged      = "stock.changed"
)

// SalesCreatedEvent 销售单创建事件
type SalesCreatedEvent struct {
	TransactionID   uint   `json:"transaction_id"`
	TransactionNo   string `json:"transaction_no"`
	AssociateID     uint   `json:"associate_id"`
	PaymentType     string `json:"payment_type"`
	GrandTotal      int64  `json:"grand_total"`
	TransactionDate string `json:"transaction_date"`
}

// SalesDeletedEvent 销售单删除事件(库存已回补)
type SalesDeletedEvent struct {
	TransactionID uint   `json:"transaction_id"`
	TransactionNo string `json:"transaction_no"`
}

// PurchaseCompletedEvent 采购单入库事件
type PurchaseCompletedEvent struct {
	TransactionID uint   `json:"transaction_id"`
	TransactionNo string `json:"transaction_no"`
	SupplierID    uint   `json:"supplier_id"`
	Total         int64  `json:"total"`
}

// StockChangedEvent 库存变动事件
type StockChangedEvent struct {
	BookID uint   `json:"book_id"`
	Delta  int    `json:"delta"`
	Reason string `json:"reason"` // sale / sale_reversal / purchase_completion
}

// Publisher 事件发布接口
// 应用层只依赖此接口;MQ未启用时注入Nop实现
type Publisher interface {
	Publish(ctx context.Context, routingKey string, event interface{})
	Close() error
}

// amqpPublisher 基于RabbitMQ的事件发布器
// 设计说明:
// 1. 包装pkg/mq的Publisher,外层套熔断器:
//    Broker持续不可用时快速失败,不拖慢交易主流程
// 2. Publish不返回错误:发布失败只记日志和指标
type amqpPublisher struct {
	publisher *mq.Publisher
	breaker   *circuitbreaker.CircuitBreaker
	exchange  string
}

// NewAMQPPublisher 创建RabbitMQ事件发布器
func NewAMQPPublisher(url, exchange string) (Publisher, error) {
	pub, err := mq.NewPublisher(url, exchange, "topic")
	if err != nil {
		return nil, err
	}

	breaker := circuitbreaker.NewCircuitBreaker("event-publisher", circuitbreaker.Config{
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	breaker.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		log.Printf("熔断器状态变化: %s %s -> %s", name, from, to)
		if metrics.CircuitBreakerState != nil {
			metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, float64(to))
		}
	})

	return &amqpPublisher{
		publisher: pub,
		breaker:   breaker,
		exchange:  exchange,
	}, nil
}

// Publish 发布事件(尽力而为)
func (p *amqpPublisher) Publish(ctx context.Context, routingKey string, event interface{}) {
	err := p.breaker.Execute(func() error {
		return p.publisher.Publish(routingKey, event)
	})

	if err != nil {
		log.Printf("事件发布失败: routing_key=%s, err=%v", routingKey, err)
		if metrics.MessagePublishFailuresTotal != nil {
			metrics.IncCounterVec(metrics.MessagePublishFailuresTotal, map[string]string{
				"exchange":    p.exchange,
				"routing_key": routingKey,
			})
		}
		return
	}

	if metrics.MessagesPublishedTotal != nil {
		metrics.IncCounterVec(metrics.MessagesPublishedTotal, map[string]string{
			"exchange":    p.exchange,
			"routing_key": routingKey,
		})
	}
}

// Close 关闭发布器
func (p *amqpPublisher) Close() error {
	return p.publisher.Close()
}

// nopPublisher 空实现(本地开发、MQ未启用时使用)
type nopPublisher struct{}

// NewNopPublisher 创建空事件发布器
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(ctx context.Context, routingKey string, event interface{}) {}

func (nopPublisher) Close() error { return nil }
