// Package metrics 提供基于Prometheus的指标收集框架
//
// 可观测性三支柱之一（Tracing、Metrics、Logging）：
// - Tracing（追踪）: 回答"为什么慢？"（见pkg/tracing）
// - Metrics（指标）: 回答"有多少？多快？"（本模块）
// - Logging（日志）: 回答"发生了什么？"
//
// 指标类型速查：
// - Counter（计数器）：只增不减（请求总数、销售单总数、错误总数）
// - Gauge（仪表盘）：可增可减的瞬时值（处理中请求数）
// - Histogram（直方图）：观测值分布，自动计算分位数（耗时、金额）
//
// 使用示例：
//
//	// 1. 启动时初始化
//	metrics.InitMetrics()
//
//	// 2. 暴露/metrics端点（由Gin路由注册promhttp.Handler()）
//
//	// 3. 业务代码中记录
//	metrics.IncCounter(metrics.SalesCreatedTotal)
//	metrics.ObserveHistogram(metrics.SalesCreationDuration, time.Since(start).Seconds())
//
// 命名规范：Counter以_total结尾；Histogram以单位结尾（_seconds）；
// 标签只用低基数维度（method/path/status、routing_key），禁止用ID做标签。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册）
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 销售业务指标

	// SalesCreatedTotal 销售单创建总数（Counter）
	SalesCreatedTotal prometheus.Counter

	// SalesFailedTotal 销售单创建失败总数（Counter）
	SalesFailedTotal prometheus.Counter

	// SalesCreationDuration 销售单创建耗时（Histogram）
	SalesCreationDuration prometheus.Histogram

	// PaymentsRecordedTotal 收款记录总数（Counter）
	PaymentsRecordedTotal prometheus.Counter

	// OverpaymentRejectedTotal 超额付款被拒总数（Counter）
	OverpaymentRejectedTotal prometheus.Counter

	// 采购业务指标

	// PurchasesCreatedTotal 采购单创建总数（Counter）
	PurchasesCreatedTotal prometheus.Counter

	// PurchasesCompletedTotal 采购单完成（入库）总数（Counter）
	PurchasesCompletedTotal prometheus.Counter

	// 库存指标

	// StockRejectionsTotal 因库存不足被拒的销售提交总数（Counter）
	StockRejectionsTotal prometheus.Counter

	// StockMovementsTotal 库存变动总数（Counter）
	// 标签：reason（sale/sale_reversal/purchase_completion）
	StockMovementsTotal *prometheus.CounterVec

	// 熔断器指标

	// CircuitBreakerState 熔断器状态（Gauge）
	// 0=CLOSED, 1=OPEN, 2=HALF_OPEN
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求总数（Counter）
	// 标签：name（熔断器名称）、result（success/failure/rejected）
	CircuitBreakerRequests *prometheus.CounterVec

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数（Counter）
	// 标签：exchange（交换机）、routing_key（路由键）
	MessagesPublishedTotal *prometheus.CounterVec

	// MessagePublishFailuresTotal 消息发布失败总数（Counter）
	MessagePublishFailuresTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
//
// 必须在程序启动时调用一次，用于注册所有指标到全局Registry
//
// 设计要点：
// 1. 使用promauto.New*自动注册到默认Registry
// 2. Counter使用*Vec支持标签（多维度统计）
// 3. Histogram的Buckets根据业务场景定制
func InitMetrics() {
	// 防止重复初始化
	if initialized {
		return
	}
	initialized = true

	// HTTP请求指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP请求耗时（秒）",
			// 桶设置：1ms、10ms、100ms、500ms、1s、5s、10s
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	// 销售业务指标
	SalesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sales_created_total",
			Help: "销售单创建总数",
		},
	)

	SalesFailedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sales_failed_total",
			Help: "销售单创建失败总数",
		},
	)

	SalesCreationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "sales_creation_duration_seconds",
			Help: "销售单创建耗时（秒）",
			// 创建涉及锁库存+写多张表，桶适当放宽
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
	)

	PaymentsRecordedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "payments_recorded_total",
			Help: "收款记录总数",
		},
	)

	OverpaymentRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "overpayment_rejected_total",
			Help: "超额付款被拒总数",
		},
	)

	// 采购业务指标
	PurchasesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "purchases_created_total",
			Help: "采购单创建总数",
		},
	)

	PurchasesCompletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "purchases_completed_total",
			Help: "采购单完成入库总数",
		},
	)

	// 库存指标
	StockRejectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stock_rejections_total",
			Help: "因库存不足被拒的销售提交总数",
		},
	)

	StockMovementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_movements_total",
			Help: "库存变动总数",
		},
		[]string{"reason"}, // sale / sale_reversal / purchase_completion
	)

	// 熔断器指标
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "熔断器请求总数",
		},
		[]string{"name", "result"},
	)

	// 消息队列指标
	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"exchange", "routing_key"},
	)

	MessagePublishFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "message_publish_failures_total",
			Help: "消息发布失败总数",
		},
		[]string{"exchange", "routing_key"},
	)
}

// IncCounter 递增Counter（便捷函数）
func IncCounter(counter prometheus.Counter) {
	counter.Inc()
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// SetGauge 设置Gauge值
func SetGauge(gauge prometheus.Gauge, value float64) {
	gauge.Set(value)
}

// SetGaugeVec 设置GaugeVec值（带标签）
func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	gauge.With(labels).Set(value)
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	histogram.Observe(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}
