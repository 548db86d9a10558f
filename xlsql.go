// Package xlsql converts spreadsheet workbooks into relational databases:
// one table per selected sheet, one column per selected heading, rows
// inserted in original order through a transactional batch loader.
package xlsql

import (
	"context"
	"fmt"
	"io"
)

// Importer 工作簿导入器：按工作簿顺序逐张处理在范围内的工作表
type Importer struct {
	processor BatchProcessor
	config    Config
	logger    Logger
	metrics   MetricsReporter
}

// SheetResult 单张工作表的导入结果
type SheetResult struct {
	Sheet   string   `json:"sheet"`
	Table   string   `json:"table"`
	Columns []string `json:"columns"`
	Rows    int64    `json:"rows"`
}

// NewImporter 创建导入器
func NewImporter(processor BatchProcessor, config Config) (*Importer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Importer{
		processor: processor,
		config:    config,
		logger:    NopLogger{},
		metrics:   NopMetricsReporter{},
	}, nil
}

// WithLogger 设置日志接收器（链式调用）
func (im *Importer) WithLogger(logger Logger) *Importer {
	if logger != nil {
		im.logger = logger
	}
	return im
}

// WithMetricsReporter 设置监控报告器（链式调用）
func (im *Importer) WithMetricsReporter(reporter MetricsReporter) *Importer {
	if reporter != nil {
		im.metrics = reporter
	}
	return im
}

// ImportWorkbook 顺序导入全部在范围内的工作表。
// 任何致命错误（缺表头、建表冲突、来源读取失败、写入失败）立即中止整个运行，
// 当前未提交的事务回滚，已返回的结果对应已完整提交的表。
func (im *Importer) ImportWorkbook(ctx context.Context, source WorkbookSource) ([]SheetResult, error) {
	names := source.SheetNames()
	if len(names) == 0 {
		return nil, ErrNoSheets
	}

	results := make([]SheetResult, 0, len(names))
	for _, name := range names {
		if !SheetInScope(name, im.config.SheetFilters) {
			im.logger.Debugf("skipping sheet %q: not selected", name)
			continue
		}

		result, skipped, err := im.importSheet(ctx, source, name)
		if err != nil {
			// 中止整个运行；未提交的批次随回滚丢弃
			_ = im.processor.Rollback()
			return results, err
		}
		if skipped {
			continue
		}
		results = append(results, result)
	}

	return results, nil
}

// importSheet 导入单张工作表；skipped 为真表示零选中列的跳过路径
func (im *Importer) importSheet(ctx context.Context, source WorkbookSource, name string) (result SheetResult, skipped bool, err error) {
	reader, err := source.OpenSheet(name)
	if err != nil {
		return SheetResult{}, false, fmt.Errorf("failed to open sheet %q: %w", name, err)
	}
	defer func() {
		if closeErr := reader.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close sheet %q: %w", name, closeErr)
		}
	}()

	header, err := reader.Next()
	if err == io.EOF {
		return SheetResult{}, false, fmt.Errorf("sheet %q: %w", name, ErrNoHeader)
	}
	if err != nil {
		return SheetResult{}, false, fmt.Errorf("sheet %q: failed to read header row: %w", name, err)
	}

	headings := make([]string, len(header))
	for i, cell := range header {
		headings[i] = cell.String()
	}

	resolved := ResolveColumnNames(name, headings, im.logger)
	selected := SelectColumns(headings, resolved, im.config.ColumnFilters)
	if len(selected) == 0 {
		im.logger.Debugf("skipping sheet %q: no columns selected", name)
		return SheetResult{}, true, nil
	}

	tableName := Normalize(name)
	columns := make([]string, len(selected))
	for i, idx := range selected {
		columns[i] = resolved[idx]
	}

	schema := NewSchema(tableName, columns...)
	if err := schema.Validate(); err != nil {
		return SheetResult{}, false, fmt.Errorf("sheet %q: %w", name, err)
	}

	if err := im.processor.CreateTable(ctx, schema); err != nil {
		return SheetResult{}, false, err
	}

	loader := NewBatchLoader(im.processor, schema, im.config.BatchSize).
		WithMetricsReporter(im.metrics)

	for {
		row, rowErr := reader.Next()
		if rowErr == io.EOF {
			break
		}
		if rowErr != nil {
			return SheetResult{}, false, fmt.Errorf("sheet %q: failed to read row: %w", name, rowErr)
		}

		// 空行只是下刷信号，不代表流结束
		if row.IsBlank() {
			if err := loader.Flush(ctx); err != nil {
				return SheetResult{}, false, err
			}
			continue
		}

		if err := loader.Push(ctx, projectRow(row, selected)); err != nil {
			return SheetResult{}, false, err
		}
	}

	// 流结束后无条件收尾：下刷残余缓冲并提交事务
	if err := loader.Flush(ctx); err != nil {
		return SheetResult{}, false, err
	}

	total := loader.Total()
	im.metrics.ReportSheetDone(ctx, tableName, total)
	im.logger.Debugf("imported %d rows into table %q from sheet %q", total, tableName, name)

	return SheetResult{
		Sheet:   name,
		Table:   tableName,
		Columns: columns,
		Rows:    total,
	}, false, nil
}

// projectRow 按选中的列下标提取绑定参数；表头右侧缺失的单元格按 NULL 处理
func projectRow(row Row, selected []int) []any {
	values := make([]any, len(selected))
	for i, idx := range selected {
		if idx < len(row) {
			values[i] = row[idx].Arg()
		}
	}
	return values
}
