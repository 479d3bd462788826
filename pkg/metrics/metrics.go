// Package metrics 提供基于Prometheus的指标收集
//
// 指标分三类：
//   - HTTP请求：总数、耗时、处理中数量（由middleware.Metrics记录）
//   - 存储操作：按后端（file/blob/sql）和操作（load/save）统计结果与耗时，以及加载时跳过的坏记录
//   - 认证与熔断：登录/注册结果、Blob熔断器状态
//
// 使用方式：
//
//	metrics.InitMetrics()
//	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
// 命名规范沿用Prometheus约定：Counter以_total结尾，Histogram以单位结尾
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	initOnce sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数
	// 标签：method、path（路由模板，不是原始URL）、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// 存储指标

	// StorageOperationsTotal 存储操作总数
	// 标签：backend（file/blob/sql）、operation（load/save）、result（success/failure）
	StorageOperationsTotal *prometheus.CounterVec

	// StorageOperationDuration 存储操作耗时
	StorageOperationDuration *prometheus.HistogramVec

	// RecordsSkippedTotal 加载时跳过的坏记录数
	RecordsSkippedTotal *prometheus.CounterVec

	// 认证指标

	// AuthAttemptsTotal 认证尝试次数
	// 标签：action（login/register/logout）、result（success/failure）
	AuthAttemptsTotal *prometheus.CounterVec

	// 熔断器指标

	// CircuitBreakerState 熔断器状态
	// 0=CLOSED, 1=OPEN, 2=HALF_OPEN
	CircuitBreakerState *prometheus.GaugeVec
)

// 标签取值
const (
	ResultSuccess = "success"
	ResultFailure = "failure"

	OperationLoad = "load"
	OperationSave = "save"
)

// InitMetrics 初始化所有Prometheus指标
// 可重复调用（测试中每个用例都会调用），只注册一次
func InitMetrics() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP请求耗时（秒）",
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

		StorageOperationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storage_operations_total",
				Help: "库存存储操作总数",
			},
			[]string{"backend", "operation", "result"},
		)

		// Blob后端经过网络，桶上限放宽到10秒
		StorageOperationDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "storage_operation_duration_seconds",
				Help:    "库存存储操作耗时（秒）",
				Buckets: []float64{0.0005, 0.005, 0.05, 0.25, 1, 5, 10},
			},
			[]string{"backend", "operation"},
		)

		RecordsSkippedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_records_skipped_total",
				Help: "加载时跳过的无效库存记录数",
			},
			[]string{"backend"},
		)

		AuthAttemptsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_attempts_total",
				Help: "认证尝试次数",
			},
			[]string{"action", "result"},
		)

		CircuitBreakerState = promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "circuit_breaker_state",
				Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
			},
			[]string{"name"},
		)
	})
}

// Result err为nil时返回success
func Result(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}

// ObserveStorage 记录一次存储操作
//
//	start := time.Now()
//	err := doLoad()
//	metrics.ObserveStorage("file", metrics.OperationLoad, start, err)
func ObserveStorage(backend, operation string, start time.Time, err error) {
	if StorageOperationsTotal == nil {
		return
	}
	StorageOperationsTotal.WithLabelValues(backend, operation, Result(err)).Inc()
	StorageOperationDuration.WithLabelValues(backend, operation).Observe(time.Since(start).Seconds())
}

// AddSkipped 累加跳过的记录数
func AddSkipped(backend string, n int) {
	if RecordsSkippedTotal == nil || n == 0 {
		return
	}
	RecordsSkippedTotal.WithLabelValues(backend).Add(float64(n))
}

// ObserveAuth 记录一次认证尝试
func ObserveAuth(action string, err error) {
	if AuthAttemptsTotal == nil {
		return
	}
	AuthAttemptsTotal.WithLabelValues(action, Result(err)).Inc()
}

// SetBreakerState 更新熔断器状态
func SetBreakerState(name string, state int) {
	if CircuitBreakerState == nil {
		return
	}
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
