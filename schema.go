package xlsql

import "fmt"

// Schema 目标表结构定义：表名与有序列名。
// 列不声明类型，由目标库的方言驱动决定统一的兜底类型。
type Schema struct {
	name    string
	columns []string
}

// NewSchema 创建 Schema
func NewSchema(name string, columns ...string) *Schema {
	return &Schema{
		name:    name,
		columns: columns,
	}
}

// Name 获取表名
func (s *Schema) Name() string {
	return s.name
}

// Columns 获取列名
func (s *Schema) Columns() []string {
	return s.columns
}

// Validate 验证 Schema
func (s *Schema) Validate() error {
	if s.name == "" {
		return fmt.Errorf("%w: table name cannot be empty", ErrInvalidSchema)
	}
	if len(s.columns) == 0 {
		return fmt.Errorf("%w: columns cannot be empty", ErrInvalidSchema)
	}

	// 列名必须互不重复
	seen := make(map[string]bool, len(s.columns))
	for _, column := range s.columns {
		if column == "" {
			return fmt.Errorf("%w: column name cannot be empty", ErrInvalidSchema)
		}
		if seen[column] {
			return fmt.Errorf("%w: duplicate column %q", ErrInvalidSchema, column)
		}
		seen[column] = true
	}
	return nil
}

// String 字符串表示
func (s *Schema) String() string {
	return fmt.Sprintf("Schema{name=%s, columns=%v}", s.name, s.columns)
}
