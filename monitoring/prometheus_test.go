package monitoring_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rushairer/xlsql"
	"github.com/rushairer/xlsql/monitoring"
)

func gatherNames(t *testing.T, pm *monitoring.PrometheusMetrics) map[string]bool {
	t.Helper()

	families, err := pm.Gather()
	if err != nil {
		t.Fatalf("Should gather metrics: %v", err)
	}
	names := make(map[string]bool, len(families))
	for _, family := range families {
		names[family.GetName()] = true
	}
	return names
}

func TestPrometheusMetrics_ReportFlush(t *testing.T) {
	ctx := context.Background()
	pm := monitoring.NewPrometheusMetrics()

	pm.ReportFlush(ctx, xlsql.FlushMetrics{
		Driver:    "sqlite",
		Table:     "people",
		BatchSize: 100,
		Duration:  5 * time.Millisecond,
		StartTime: time.Now(),
	})

	names := gatherNames(t, pm)
	for _, want := range []string{
		"xlsql_flush_duration_seconds",
		"xlsql_flush_total",
		"xlsql_batch_size",
		"xlsql_rows_inserted_total",
	} {
		if !names[want] {
			t.Errorf("Should expose metric %s after flush, got %v", want, names)
		}
	}
}

func TestPrometheusMetrics_FlushErrorCountsNoRows(t *testing.T) {
	ctx := context.Background()
	pm := monitoring.NewPrometheusMetrics()

	pm.ReportFlush(ctx, xlsql.FlushMetrics{
		Driver:    "sqlite",
		Table:     "people",
		BatchSize: 100,
		Error:     errors.New("boom"),
	})

	names := gatherNames(t, pm)
	if !names["xlsql_errors_total"] {
		t.Error("Failed flush should increment error counter")
	}
	// 失败批次不计入已插入行数
	if names["xlsql_rows_inserted_total"] {
		t.Error("Failed flush should not count inserted rows")
	}
}

func TestPrometheusMetrics_ReportSheetDone(t *testing.T) {
	ctx := context.Background()
	pm := monitoring.NewPrometheusMetrics()

	pm.ReportSheetDone(ctx, "people", 42)

	names := gatherNames(t, pm)
	if !names["xlsql_sheets_imported_total"] || !names["xlsql_sheet_rows"] {
		t.Errorf("Should expose sheet metrics, got %v", names)
	}
}

func TestPrometheusMetrics_ServerLifecycle(t *testing.T) {
	pm := monitoring.NewPrometheusMetrics()

	if err := pm.StartServer("127.0.0.1:0"); err != nil {
		t.Fatalf("Should start server: %v", err)
	}
	if err := pm.StartServer("127.0.0.1:0"); err == nil {
		t.Error("Should refuse to start twice")
	}
	if err := pm.StopServer(); err != nil {
		t.Errorf("Should stop server: %v", err)
	}
	// 重复停止是幂等的
	if err := pm.StopServer(); err != nil {
		t.Errorf("Repeated stop should be a no-op: %v", err)
	}
}
