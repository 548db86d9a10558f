package xlsql_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rushairer/xlsql"
)

func TestBatchLoader_FlushAtBatchSize(t *testing.T) {
	ctx := context.Background()
	mock := xlsql.NewMockBatchProcessor()
	schema := xlsql.NewSchema("t", "a")

	loader := xlsql.NewBatchLoader(mock, schema, 3)

	// 批量大小触发的下刷不提交事务
	for i := 0; i < 3; i++ {
		if err := loader.Push(ctx, []any{int64(i)}); err != nil {
			t.Fatalf("Should push row %d: %v", i, err)
		}
	}

	if got := len(mock.Batches()); got != 1 {
		t.Errorf("Should execute one batch at batch size, got %d", got)
	}
	if got := mock.Commits(); got != 0 {
		t.Errorf("Should not commit on size-triggered flush, got %d commits", got)
	}
	if got := loader.Pending(); got != 0 {
		t.Errorf("Buffer should be empty after flush, got %d pending", got)
	}
}

func TestBatchLoader_FlushCommitsRemainder(t *testing.T) {
	ctx := context.Background()
	mock := xlsql.NewMockBatchProcessor()
	schema := xlsql.NewSchema("t", "a")

	loader := xlsql.NewBatchLoader(mock, schema, 3)

	// batchSize+1 行：一次自动下刷加一次收尾下刷
	for i := 0; i < 4; i++ {
		if err := loader.Push(ctx, []any{int64(i)}); err != nil {
			t.Fatalf("Should push row %d: %v", i, err)
		}
	}
	if err := loader.Flush(ctx); err != nil {
		t.Fatalf("Should flush: %v", err)
	}

	batches := mock.Batches()
	if len(batches) != 2 {
		t.Fatalf("Should execute two batches, got %d", len(batches))
	}
	if len(batches[0]) != 3 || len(batches[1]) != 1 {
		t.Errorf("Batch sizes should be 3 and 1, got %d and %d", len(batches[0]), len(batches[1]))
	}
	if got := mock.Commits(); got != 1 {
		t.Errorf("Flush should commit exactly once, got %d", got)
	}
	if got := loader.Total(); got != 4 {
		t.Errorf("Total = %d, want 4", got)
	}
}

func TestBatchLoader_EmptyFlushStillCommits(t *testing.T) {
	ctx := context.Background()
	mock := xlsql.NewMockBatchProcessor()
	schema := xlsql.NewSchema("t", "a")

	loader := xlsql.NewBatchLoader(mock, schema, 3)

	// 空缓冲下 Flush 不产生批次，但提交仍然发生
	if err := loader.Flush(ctx); err != nil {
		t.Fatalf("Should flush empty buffer: %v", err)
	}

	if got := len(mock.Batches()); got != 0 {
		t.Errorf("Should not execute empty batch, got %d", got)
	}
	if got := mock.Commits(); got != 1 {
		t.Errorf("Should commit once, got %d", got)
	}
}

func TestBatchLoader_RepeatedFlushSignals(t *testing.T) {
	ctx := context.Background()
	mock := xlsql.NewMockBatchProcessor()
	schema := xlsql.NewSchema("t", "a")

	loader := xlsql.NewBatchLoader(mock, schema, 10)

	// 模拟空行信号：每个信号一次提交
	_ = loader.Push(ctx, []any{int64(1)})
	if err := loader.Flush(ctx); err != nil {
		t.Fatalf("Should flush: %v", err)
	}
	_ = loader.Push(ctx, []any{int64(2)})
	_ = loader.Push(ctx, []any{int64(3)})
	if err := loader.Flush(ctx); err != nil {
		t.Fatalf("Should flush: %v", err)
	}

	if got := mock.Commits(); got != 2 {
		t.Errorf("Should commit once per flush signal, got %d", got)
	}
	if got := loader.Total(); got != 3 {
		t.Errorf("Total = %d, want 3", got)
	}
}

func TestBatchLoader_ExecuteErrorPropagates(t *testing.T) {
	ctx := context.Background()
	mock := xlsql.NewMockBatchProcessor()
	mock.ExecuteBatchErr = errors.New("disk full")
	schema := xlsql.NewSchema("t", "a")

	loader := xlsql.NewBatchLoader(mock, schema, 1)

	err := loader.Push(ctx, []any{int64(1)})
	if err == nil {
		t.Fatal("Should propagate execute error")
	}
	if got := loader.Total(); got != 0 {
		t.Errorf("Failed batch should not count toward total, got %d", got)
	}
}

func TestBatchLoader_DefaultBatchSize(t *testing.T) {
	mock := xlsql.NewMockBatchProcessor()
	schema := xlsql.NewSchema("t", "a")

	ctx := context.Background()
	loader := xlsql.NewBatchLoader(mock, schema, 0)

	// 非正数批量回落到默认值，不会每行下刷
	_ = loader.Push(ctx, []any{int64(1)})
	_ = loader.Push(ctx, []any{int64(2)})

	if got := len(mock.Batches()); got != 0 {
		t.Errorf("Should buffer rows under default batch size, got %d batches", got)
	}
	if got := loader.Pending(); got != 2 {
		t.Errorf("Pending = %d, want 2", got)
	}
}

func TestBatchLoader_ReportsFlushMetrics(t *testing.T) {
	ctx := context.Background()
	mock := xlsql.NewMockBatchProcessor()
	schema := xlsql.NewSchema("t", "a")

	reporter := &recordingReporter{}
	loader := xlsql.NewBatchLoader(mock, schema, 2).WithMetricsReporter(reporter)

	_ = loader.Push(ctx, []any{int64(1)})
	_ = loader.Push(ctx, []any{int64(2)})

	if len(reporter.flushes) != 1 {
		t.Fatalf("Should report one flush, got %d", len(reporter.flushes))
	}
	m := reporter.flushes[0]
	if m.Table != "t" || m.BatchSize != 2 || m.Error != nil {
		t.Errorf("Unexpected flush metrics: %+v", m)
	}
}

// recordingReporter 记录全部指标上报
type recordingReporter struct {
	flushes []xlsql.FlushMetrics
	sheets  map[string]int64
}

func (r *recordingReporter) ReportFlush(_ context.Context, m xlsql.FlushMetrics) {
	r.flushes = append(r.flushes, m)
}

func (r *recordingReporter) ReportSheetDone(_ context.Context, table string, rows int64) {
	if r.sheets == nil {
		r.sheets = make(map[string]int64)
	}
	r.sheets[table] = rows
}
