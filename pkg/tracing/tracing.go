// Package tracing 提供基于OpenTelemetry的分布式追踪框架
//
// 核心概念：
// 1. Trace（追踪）：一个完整的请求链路，包含多个Span
// 2. Span（跨度）：一个操作单元（如"创建销售单"、"锁定库存"）
// 3. SpanContext（上下文）：TraceID/SpanID，跨组件传递，构建调用树
//
// 使用示例：
//
//	// 1. 启动时初始化全局Tracer Provider
//	shutdown, err := tracing.InitTracer("bookstore-admin", "localhost:4317")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer shutdown(context.Background())
//
//	// 2. 业务代码中创建Span
//	ctx, span := tracing.StartSpan(ctx, "bookstore-admin", "CreateSales")
//	defer span.End()
//
//	// 3. 日志中关联TraceID
//	log.Printf("TraceID=%s, 销售单创建成功", tracing.ExtractTraceID(ctx))
package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// InitTracer 初始化全局Tracer Provider
//
// 参数：
//   - serviceName: 服务名称（在Jaeger UI中显示）
//   - collectorURL: Collector的OTLP gRPC端点（如 localhost:4317）
//
// 返回：
//   - shutdown: 关闭函数（程序退出时调用，确保数据刷新）
//
// 设计要点：
// 1. 使用OTLP协议而非Jaeger原生协议（厂商中立，可切换Zipkin、Datadog）
// 2. 采样策略：AlwaysSample（100%采样）适合开发环境；
//    生产环境建议TraceIDRatioBased（如1%采样）
// 3. 资源属性：service.name用于在Jaeger UI中分组
func InitTracer(serviceName, collectorURL string) (func(context.Context) error, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 1. 创建OTLP gRPC Exporter（默认端口4317）
	exporter, err := otlptracegrpc.New(
		ctx,
		otlptracegrpc.WithEndpoint(collectorURL),
		otlptracegrpc.WithInsecure(), // 禁用TLS（生产环境应启用）
	)
	if err != nil {
		return nil, fmt.Errorf("创建OTLP exporter失败: %w", err)
	}

	// 2. 创建Resource（资源属性）
	// 这些属性会附加到所有Span上，便于在Jaeger UI中筛选和分组
	res, err := resource.New(
		ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("创建资源属性失败: %w", err)
	}

	// 3. 创建Tracer Provider
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		// BatchSpanProcessor批量发送Span（性能优于SimpleSpanProcessor）
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	// 4. 设置全局TracerProvider
	// 业务代码无需传递TracerProvider，直接使用otel.Tracer()获取
	otel.SetTracerProvider(tp)

	// 5. 设置全局TextMapPropagator（上下文传播器）
	// - W3C Trace Context：标准的HTTP Header格式（traceparent）
	// - Baggage：传递自定义键值对
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)

	// 6. 返回关闭函数
	// shutdown确保所有Span被发送到Collector，必须在程序退出前调用
	shutdown := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}

	return shutdown, nil
}

// StartSpan 创建一个新的Span（便捷函数）
//
// 参数：
//   - ctx: 父Context（包含父Span信息时，新Span自动成为子Span）
//   - tracerName: Tracer名称（通常是服务名或模块名）
//   - spanName: Span名称（操作名称，如"CreateSales"；避免动态值入名，
//     动态值应使用span.SetAttributes附加）
//
// 返回的ctx必须传递给下游调用，否则无法构建调用树。
func StartSpan(ctx context.Context, tracerName, spanName string) (context.Context, trace.Span) {
	tracer := otel.Tracer(tracerName)
	return tracer.Start(ctx, spanName)
}

// ExtractTraceID 从Context提取TraceID（用于关联日志）
//
// 在日志中记录TraceID，便于从日志快速定位到Jaeger追踪。
func ExtractTraceID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().TraceID().String()
}

// ExtractSpanID 从Context提取SpanID
func ExtractSpanID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().SpanID().String()
}
