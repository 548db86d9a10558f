package xlsql

import (
	"context"
	"time"
)

// BatchLoader 面向单张目标表的流式批量装载器。
// Push 缓冲一行投影后的值，缓冲达到批量大小时自动下刷（不提交事务，
// 批量只为限制内存）；Flush 显式下刷并提交（空行信号与流结束时的
// 持久化检查点）；Total 返回累计插入行数。
type BatchLoader struct {
	processor BatchProcessor
	schema    *Schema
	batchSize int
	buffer    [][]any
	total     int64
	metrics   MetricsReporter
}

// NewBatchLoader 创建批量装载器；batchSize 非正数时回落到默认值
func NewBatchLoader(processor BatchProcessor, schema *Schema, batchSize int) *BatchLoader {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &BatchLoader{
		processor: processor,
		schema:    schema,
		batchSize: batchSize,
		buffer:    make([][]any, 0, batchSize),
		metrics:   NopMetricsReporter{},
	}
}

// WithMetricsReporter 设置监控报告器（链式调用）
func (l *BatchLoader) WithMetricsReporter(reporter MetricsReporter) *BatchLoader {
	if reporter != nil {
		l.metrics = reporter
	}
	return l
}

// Push 缓冲一行；缓冲达到批量大小时执行一次插入
func (l *BatchLoader) Push(ctx context.Context, values []any) error {
	l.buffer = append(l.buffer, values)
	if len(l.buffer) >= l.batchSize {
		return l.flush(ctx)
	}
	return nil
}

// Flush 下刷缓冲并提交事务
func (l *BatchLoader) Flush(ctx context.Context) error {
	if err := l.flush(ctx); err != nil {
		return err
	}
	return l.processor.Commit(ctx)
}

// Total 已插入的总行数
func (l *BatchLoader) Total() int64 {
	return l.total
}

// Pending 当前缓冲中尚未下刷的行数
func (l *BatchLoader) Pending() int {
	return len(l.buffer)
}

func (l *BatchLoader) flush(ctx context.Context) error {
	if len(l.buffer) == 0 {
		return nil
	}

	startTime := time.Now()
	err := l.processor.ExecuteBatch(ctx, l.schema, l.buffer)
	l.metrics.ReportFlush(ctx, FlushMetrics{
		Driver:    l.processor.DriverName(),
		Table:     l.schema.Name(),
		BatchSize: len(l.buffer),
		Duration:  time.Since(startTime),
		Error:     err,
		StartTime: startTime,
	})
	if err != nil {
		return err
	}

	l.total += int64(len(l.buffer))
	l.buffer = l.buffer[:0]
	return nil
}
