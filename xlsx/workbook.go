// Package xlsx 基于 excelize 提供 xlsql 的工作簿来源实现，
// 行序列按流式迭代读取，不整表加载。
package xlsx

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/rushairer/xlsql"
)

// Workbook 一个打开的 .xlsx 工作簿
type Workbook struct {
	file *excelize.File
}

var _ xlsql.WorkbookSource = (*Workbook)(nil)

// Open 打开指定路径的工作簿
func Open(path string) (*Workbook, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	return &Workbook{file: file}, nil
}

// OpenReader 从 io.Reader 打开工作簿
func OpenReader(reader io.Reader) (*Workbook, error) {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	return &Workbook{file: file}, nil
}

// SheetNames 按工作簿顺序返回全部工作表名
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// OpenSheet 返回指定工作表的流式行读取器
func (w *Workbook) OpenSheet(name string) (xlsql.SheetReader, error) {
	iter, err := w.file.Rows(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open rows iterator for sheet %s: %w", name, err)
	}
	return &sheetReader{name: name, iter: iter}, nil
}

// Close 关闭工作簿
func (w *Workbook) Close() error {
	return w.file.Close()
}

type sheetReader struct {
	name string
	iter *excelize.Rows
}

func (r *sheetReader) Next() (xlsql.Row, error) {
	if !r.iter.Next() {
		return nil, io.EOF
	}
	cols, err := r.iter.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read row in sheet %s: %w", r.name, err)
	}
	row := make(xlsql.Row, len(cols))
	for i, raw := range cols {
		row[i] = parseCell(raw)
	}
	return row, nil
}

func (r *sheetReader) Close() error {
	return r.iter.Close()
}

// parseCell 将 excelize 返回的格式化字符串还原为标量单元格值。
// excelize 将布尔单元格渲染为 TRUE/FALSE。
func parseCell(raw string) xlsql.Cell {
	if raw == "" {
		return xlsql.NullCell()
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return xlsql.NumberCell(float64(i))
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return xlsql.NumberCell(f)
	}
	switch raw {
	case "TRUE":
		return xlsql.BoolCell(true)
	case "FALSE":
		return xlsql.BoolCell(false)
	}
	return xlsql.TextCell(raw)
}
