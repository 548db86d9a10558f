package xlsql

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// BatchProcessor 目标库批量处理器接口：建表、批量写入与事务收尾
type BatchProcessor interface {
	// DriverName 目标库方言名称（用于日志与指标标签）
	DriverName() string

	// CreateTable 在当前事务内创建目标表
	CreateTable(ctx context.Context, schema *Schema) error

	// ExecuteBatch 在当前事务内执行一次参数化批量插入
	ExecuteBatch(ctx context.Context, schema *Schema, batch [][]any) error

	// Commit 提交当前事务（持久化检查点）；没有打开的事务时为空操作
	Commit(ctx context.Context) error

	// Rollback 回滚当前事务；没有打开的事务时为空操作
	Rollback() error
}

var _ BatchProcessor = (*SQLBatchProcessor)(nil)

// SQLBatchProcessor 基于 database/sql 的批量处理器。
// 事务按需开启：首次写入打开事务，Commit 之后的下一次写入再开新事务，
// 保证返回调用方之前事务要么完整提交、要么完整回滚。
type SQLBatchProcessor struct {
	db     *sql.DB
	driver SQLDriver
	tx     *sql.Tx
}

// NewSQLBatchProcessor 创建SQL批量处理器
// 参数：
// - db: 数据库连接（连接池由调用方管理）
// - driver: 数据库特定的SQL生成器
func NewSQLBatchProcessor(db *sql.DB, driver SQLDriver) *SQLBatchProcessor {
	return &SQLBatchProcessor{
		db:     db,
		driver: driver,
	}
}

// DriverName 目标库方言名称
func (bp *SQLBatchProcessor) DriverName() string {
	return bp.driver.Name()
}

func (bp *SQLBatchProcessor) begin(ctx context.Context) (*sql.Tx, error) {
	if bp.tx != nil {
		return bp.tx, nil
	}
	tx, err := bp.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	bp.tx = tx
	return tx, nil
}

// CreateTable 在当前事务内创建目标表。
// 重名表由目标库拒绝并原样上抛（调用方视为致命错误）。
func (bp *SQLBatchProcessor) CreateTable(ctx context.Context, schema *Schema) error {
	ddl, err := bp.driver.GenerateCreateTableSQL(schema)
	if err != nil {
		return err
	}
	tx, err := bp.begin(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create table %s: %w", schema.Name(), err)
	}
	return nil
}

// ExecuteBatch 在当前事务内执行一次批量插入
func (bp *SQLBatchProcessor) ExecuteBatch(ctx context.Context, schema *Schema, batch [][]any) error {
	if len(batch) == 0 {
		return nil
	}
	query, args, err := bp.driver.GenerateInsertSQL(ctx, schema, batch)
	if err != nil {
		return err
	}
	tx, err := bp.begin(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to execute batch insert for table %s: %w", schema.Name(), err)
	}
	return nil
}

// Commit 提交当前事务
func (bp *SQLBatchProcessor) Commit(ctx context.Context) error {
	if bp.tx == nil {
		return nil
	}
	err := bp.tx.Commit()
	bp.tx = nil
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback 回滚当前事务
func (bp *SQLBatchProcessor) Rollback() error {
	if bp.tx == nil {
		return nil
	}
	err := bp.tx.Rollback()
	bp.tx = nil
	if err != nil {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

var _ BatchProcessor = (*MockBatchProcessor)(nil)

// MockBatchProcessor 模拟批量处理器（用于测试）
type MockBatchProcessor struct {
	mu            sync.Mutex
	createdTables []*Schema
	batches       [][][]any
	commits       int
	rollbacks     int

	// 注入错误（可选）
	CreateTableErr  error
	ExecuteBatchErr error
}

// NewMockBatchProcessor 创建模拟批量处理器
func NewMockBatchProcessor() *MockBatchProcessor {
	return &MockBatchProcessor{}
}

// DriverName 目标库方言名称
func (m *MockBatchProcessor) DriverName() string { return "mock" }

// CreateTable 记录一次建表
func (m *MockBatchProcessor) CreateTable(ctx context.Context, schema *Schema) error {
	if m.CreateTableErr != nil {
		return m.CreateTableErr
	}
	m.mu.Lock()
	m.createdTables = append(m.createdTables, schema)
	m.mu.Unlock()
	return nil
}

// ExecuteBatch 记录一次批量插入；批次内容做拷贝快照，
// 因为装载器会复用缓冲的底层数组。
func (m *MockBatchProcessor) ExecuteBatch(ctx context.Context, schema *Schema, batch [][]any) error {
	if m.ExecuteBatchErr != nil {
		return m.ExecuteBatchErr
	}
	snapshot := make([][]any, len(batch))
	for i, row := range batch {
		snapshot[i] = append([]any(nil), row...)
	}
	m.mu.Lock()
	m.batches = append(m.batches, snapshot)
	m.mu.Unlock()
	return nil
}

// Commit 记录一次提交
func (m *MockBatchProcessor) Commit(ctx context.Context) error {
	m.mu.Lock()
	m.commits++
	m.mu.Unlock()
	return nil
}

// Rollback 记录一次回滚
func (m *MockBatchProcessor) Rollback() error {
	m.mu.Lock()
	m.rollbacks++
	m.mu.Unlock()
	return nil
}

// CreatedTables 返回已建表的快照
func (m *MockBatchProcessor) CreatedTables() []*Schema {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*Schema(nil), m.createdTables...)
}

// Batches 返回已执行批次的快照
func (m *MockBatchProcessor) Batches() [][][]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][][]any(nil), m.batches...)
}

// Commits 返回提交次数
func (m *MockBatchProcessor) Commits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.commits
}

// Rollbacks 返回回滚次数
func (m *MockBatchProcessor) Rollbacks() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rollbacks
}
