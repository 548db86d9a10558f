// Package monitoring 提供基于 Prometheus 的导入指标收集
package monitoring

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"

	"github.com/rushairer/xlsql"
)

// PrometheusMetrics Prometheus指标收集器，实现MetricsReporter接口
type PrometheusMetrics struct {
	// 批量下刷指标
	flushDuration *prometheus.HistogramVec
	flushTotal    *prometheus.CounterVec
	batchSize     *prometheus.HistogramVec
	rowsInserted  *prometheus.CounterVec

	// 工作表指标
	sheetsImported prometheus.Counter
	sheetRows      *prometheus.GaugeVec

	// 错误指标
	errorTotal *prometheus.CounterVec

	registry *prometheus.Registry
	server   *http.Server
	mu       sync.Mutex
}

var _ xlsql.MetricsReporter = (*PrometheusMetrics)(nil)

// NewPrometheusMetrics 创建Prometheus指标收集器
func NewPrometheusMetrics() *PrometheusMetrics {
	registry := prometheus.NewRegistry()

	pm := &PrometheusMetrics{
		flushDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "xlsql_flush_duration_seconds",
				Help:    "Duration of batch flush execution in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms to ~32s
			},
			[]string{"database", "table", "status"},
		),

		flushTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xlsql_flush_total",
				Help: "Total number of batch flushes",
			},
			[]string{"database", "table", "status"},
		),

		batchSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "xlsql_batch_size",
				Help:    "Size of batches flushed",
				Buckets: prometheus.ExponentialBuckets(1, 2, 15), // 1 to ~32k
			},
			[]string{"database", "table"},
		),

		rowsInserted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xlsql_rows_inserted_total",
				Help: "Total number of rows inserted",
			},
			[]string{"database", "table"},
		),

		sheetsImported: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "xlsql_sheets_imported_total",
				Help: "Total number of sheets imported",
			},
		),

		sheetRows: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "xlsql_sheet_rows",
				Help: "Rows inserted for the last import of each table",
			},
			[]string{"table"},
		),

		errorTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xlsql_errors_total",
				Help: "Total number of flush errors",
			},
			[]string{"database", "table"},
		),

		registry: registry,
	}

	// 注册所有指标
	registry.MustRegister(
		pm.flushDuration,
		pm.flushTotal,
		pm.batchSize,
		pm.rowsInserted,
		pm.sheetsImported,
		pm.sheetRows,
		pm.errorTotal,
	)

	return pm
}

// ReportFlush 实现MetricsReporter接口
func (pm *PrometheusMetrics) ReportFlush(ctx context.Context, metrics xlsql.FlushMetrics) {
	status := "success"
	if metrics.Error != nil {
		status = "fail"
		pm.errorTotal.WithLabelValues(metrics.Driver, metrics.Table).Inc()
	}

	pm.flushDuration.WithLabelValues(metrics.Driver, metrics.Table, status).
		Observe(metrics.Duration.Seconds())
	pm.flushTotal.WithLabelValues(metrics.Driver, metrics.Table, status).Inc()
	pm.batchSize.WithLabelValues(metrics.Driver, metrics.Table).Observe(float64(metrics.BatchSize))

	if metrics.Error == nil {
		pm.rowsInserted.WithLabelValues(metrics.Driver, metrics.Table).Add(float64(metrics.BatchSize))
	}
}

// ReportSheetDone 实现MetricsReporter接口
func (pm *PrometheusMetrics) ReportSheetDone(ctx context.Context, table string, rows int64) {
	pm.sheetsImported.Inc()
	pm.sheetRows.WithLabelValues(table).Set(float64(rows))
}

// StartServer 启动Prometheus HTTP服务器
func (pm *PrometheusMetrics) StartServer(addr string) error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.server != nil {
		return fmt.Errorf("server already running")
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(pm.registry, promhttp.HandlerOpts{}))

	// 健康检查端点
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	pm.server = &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		if err := pm.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("Prometheus server error: %v\n", err)
		}
	}()

	return nil
}

// StopServer 停止Prometheus HTTP服务器
func (pm *PrometheusMetrics) StopServer() error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.server == nil {
		return nil
	}

	err := pm.server.Close()
	pm.server = nil
	return err
}

// Gather 返回当前注册表的全部指标族（测试用）
func (pm *PrometheusMetrics) Gather() ([]*dto.MetricFamily, error) {
	return pm.registry.Gather()
}
