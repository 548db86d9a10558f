package xlsql

import (
	"context"
	"time"
)

// FlushMetrics 一次批量下刷的指标
type FlushMetrics struct {
	Driver    string        // 目标库方言名称
	Table     string        // 表名
	BatchSize int           // 本次下刷的行数
	Duration  time.Duration // 执行时长
	Error     error         // 错误信息（如果有）
	StartTime time.Time     // 开始时间
}

// MetricsReporter 监控报告接口
type MetricsReporter interface {
	// ReportFlush 报告一次批量下刷
	ReportFlush(ctx context.Context, metrics FlushMetrics)

	// ReportSheetDone 报告一张工作表导入完成
	ReportSheetDone(ctx context.Context, table string, rows int64)
}

// NopMetricsReporter 丢弃全部指标
type NopMetricsReporter struct{}

func (NopMetricsReporter) ReportFlush(context.Context, FlushMetrics)      {}
func (NopMetricsReporter) ReportSheetDone(context.Context, string, int64) {}
