package xlsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// SQLDriver 数据库特定的SQL生成器接口
type SQLDriver interface {
	// Name 方言名称（用于日志与指标标签）
	Name() string

	// GenerateCreateTableSQL 生成建表语句
	GenerateCreateTableSQL(schema *Schema) (string, error)

	// GenerateInsertSQL 生成批量插入SQL与绑定参数
	GenerateInsertSQL(ctx context.Context, schema *Schema, batch [][]any) (sql string, args []any, err error)
}

// flattenArgs 按列顺序展开批次为绑定参数数组
func flattenArgs(ctx context.Context, schema *Schema, batch [][]any) ([]any, error) {
	columnCount := len(schema.Columns())
	args := make([]any, 0, len(batch)*columnCount)
	for _, row := range batch {
		// 忽略超时或取消的请求
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if len(row) != columnCount {
			return nil, fmt.Errorf("row has %d values, schema %s has %d columns", len(row), schema.Name(), columnCount)
		}
		args = append(args, row...)
	}
	return args, nil
}

var DefaultSQLiteDriver = NewSQLiteDriver()

// SQLiteDriver SQLite 方言驱动。建表语句不声明列类型，
// 交给 SQLite 的动态类型亲和性处理。
type SQLiteDriver struct {
	placeholders sync.Map // key: (colCount<<32)|batchSize  value: string
}

func NewSQLiteDriver() *SQLiteDriver {
	return &SQLiteDriver{}
}

func (d *SQLiteDriver) Name() string { return "sqlite" }

// GenerateCreateTableSQL 生成SQLite建表语句
func (d *SQLiteDriver) GenerateCreateTableSQL(schema *Schema) (string, error) {
	if len(schema.Columns()) == 0 {
		return "", errors.New("no columns defined in schema")
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", schema.Name(), strings.Join(schema.Columns(), ", ")), nil
}

// GenerateInsertSQL 生成SQLite批量插入SQL
func (d *SQLiteDriver) GenerateInsertSQL(ctx context.Context, schema *Schema, batch [][]any) (string, []any, error) {
	if len(batch) == 0 {
		return "", nil, nil
	}

	columns := schema.Columns()
	if len(columns) == 0 {
		return "", nil, errors.New("no columns defined in schema")
	}

	args, err := flattenArgs(ctx, schema, batch)
	if err != nil {
		return "", nil, err
	}

	placeholders := d.generatePlaceholders(len(columns), len(batch))
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", schema.Name(), strings.Join(columns, ", "), placeholders)
	return sql, args, nil
}

func (d *SQLiteDriver) generatePlaceholders(columnCount, batchSize int) string {
	if columnCount <= 0 || batchSize <= 0 {
		return ""
	}
	key := (uint64(columnCount) << 32) | uint64(batchSize)
	if v, ok := d.placeholders.Load(key); ok {
		return v.(string)
	}
	singleRow := "(" + strings.Repeat("?, ", columnCount-1) + "?)"
	rows := make([]string, batchSize)
	for i := range rows {
		rows[i] = singleRow
	}
	out := strings.Join(rows, ", ")
	d.placeholders.Store(key, out)
	return out
}

var DefaultMySQLDriver = NewMySQLDriver()

// MySQLDriver MySQL 方言驱动。列统一声明为 TEXT（表头不携带类型信息）。
type MySQLDriver struct {
	placeholders sync.Map // key: (colCount<<32)|batchSize  value: string
}

func NewMySQLDriver() *MySQLDriver {
	return &MySQLDriver{}
}

func (d *MySQLDriver) Name() string { return "mysql" }

// GenerateCreateTableSQL 生成MySQL建表语句
func (d *MySQLDriver) GenerateCreateTableSQL(schema *Schema) (string, error) {
	return generateTypedCreateTableSQL(schema)
}

// GenerateInsertSQL 生成MySQL批量插入SQL
func (d *MySQLDriver) GenerateInsertSQL(ctx context.Context, schema *Schema, batch [][]any) (string, []any, error) {
	if len(batch) == 0 {
		return "", nil, nil
	}

	columns := schema.Columns()
	if len(columns) == 0 {
		return "", nil, errors.New("no columns defined in schema")
	}

	args, err := flattenArgs(ctx, schema, batch)
	if err != nil {
		return "", nil, err
	}

	placeholders := d.generatePlaceholders(len(columns), len(batch))
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", schema.Name(), strings.Join(columns, ", "), placeholders)
	return sql, args, nil
}

func (d *MySQLDriver) generatePlaceholders(columnCount, batchSize int) string {
	if columnCount <= 0 || batchSize <= 0 {
		return ""
	}
	key := (uint64(columnCount) << 32) | uint64(batchSize)
	if v, ok := d.placeholders.Load(key); ok {
		return v.(string)
	}
	singleRow := "(" + strings.Repeat("?, ", columnCount-1) + "?)"
	rows := make([]string, batchSize)
	for i := range rows {
		rows[i] = singleRow
	}
	out := strings.Join(rows, ", ")
	d.placeholders.Store(key, out)
	return out
}

var DefaultPostgreSQLDriver = NewPostgreSQLDriver()

// PostgreSQLDriver PostgreSQL 方言驱动。列统一声明为 TEXT，占位符使用 $n。
type PostgreSQLDriver struct {
	placeholders sync.Map // key: (colCount<<32)|batchSize  value: string
}

func NewPostgreSQLDriver() *PostgreSQLDriver {
	return &PostgreSQLDriver{}
}

func (d *PostgreSQLDriver) Name() string { return "postgresql" }

// GenerateCreateTableSQL 生成PostgreSQL建表语句
func (d *PostgreSQLDriver) GenerateCreateTableSQL(schema *Schema) (string, error) {
	return generateTypedCreateTableSQL(schema)
}

// GenerateInsertSQL 生成PostgreSQL批量插入SQL
func (d *PostgreSQLDriver) GenerateInsertSQL(ctx context.Context, schema *Schema, batch [][]any) (string, []any, error) {
	if len(batch) == 0 {
		return "", nil, nil
	}

	columns := schema.Columns()
	if len(columns) == 0 {
		return "", nil, errors.New("no columns defined in schema")
	}

	args, err := flattenArgs(ctx, schema, batch)
	if err != nil {
		return "", nil, err
	}

	placeholders := d.generatePlaceholders(len(columns), len(batch))
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", schema.Name(), strings.Join(columns, ", "), placeholders)
	return sql, args, nil
}

func (d *PostgreSQLDriver) generatePlaceholders(columnCount, batchSize int) string {
	if columnCount <= 0 || batchSize <= 0 {
		return ""
	}
	key := (uint64(columnCount) << 32) | uint64(batchSize)
	if v, ok := d.placeholders.Load(key); ok {
		return v.(string)
	}
	rows := make([]string, batchSize)
	for i := 0; i < batchSize; i++ {
		ph := make([]string, columnCount)
		for j := 0; j < columnCount; j++ {
			ph[j] = fmt.Sprintf("$%d", i*columnCount+j+1)
		}
		rows[i] = "(" + strings.Join(ph, ", ") + ")"
	}
	out := strings.Join(rows, ", ")
	d.placeholders.Store(key, out)
	return out
}

// generateTypedCreateTableSQL 强类型目标库的建表语句：列统一兜底为 TEXT
func generateTypedCreateTableSQL(schema *Schema) (string, error) {
	columns := schema.Columns()
	if len(columns) == 0 {
		return "", errors.New("no columns defined in schema")
	}
	defs := make([]string, len(columns))
	for i, column := range columns {
		defs[i] = column + " TEXT"
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", schema.Name(), strings.Join(defs, ", ")), nil
}
