package xlsql

import (
	"fmt"
	"io"
)

// WorkbookSource 工作簿来源。句柄的打开与关闭由外部调用方负责，
// 导入器只在一次调用期间借用它。
type WorkbookSource interface {
	// SheetNames 按工作簿顺序返回全部工作表名
	SheetNames() []string

	// OpenSheet 返回指定工作表的行读取器，首行为表头行
	OpenSheet(name string) (SheetReader, error)
}

// SheetReader 单遍、只进的行序列；读尽时 Next 返回 io.EOF。
// 必须支持在任意时刻放弃迭代（直接 Close），用于零选中列的跳过路径。
type SheetReader interface {
	Next() (Row, error)
	Close() error
}

// MemorySource 内存工作簿来源（用于测试与嵌入场景）
type MemorySource struct {
	Names  []string
	Sheets map[string][]Row
}

var _ WorkbookSource = (*MemorySource)(nil)

// NewMemorySource 按给定顺序创建内存工作簿
func NewMemorySource(names []string, sheets map[string][]Row) *MemorySource {
	return &MemorySource{Names: names, Sheets: sheets}
}

// SheetNames 返回全部工作表名
func (s *MemorySource) SheetNames() []string {
	return s.Names
}

// OpenSheet 返回指定工作表的行读取器
func (s *MemorySource) OpenSheet(name string) (SheetReader, error) {
	rows, ok := s.Sheets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSheet, name)
	}
	return &memoryReader{rows: rows}, nil
}

type memoryReader struct {
	rows []Row
	pos  int
}

func (r *memoryReader) Next() (Row, error) {
	if r.pos >= len(r.rows) {
		return nil, io.EOF
	}
	row := r.rows[r.pos]
	r.pos++
	return row, nil
}

func (r *memoryReader) Close() error { return nil }
