package xlsql

import "log"

// DefaultBatchSize is the buffered row count used when the caller does not
// configure one.
const DefaultBatchSize = 1000

// Config holds the options for one import run. It is supplied once before
// processing begins and never mutated during a run.
type Config struct {
	// ColumnFilters selects columns by raw heading or normalized name.
	// Empty means all columns.
	ColumnFilters []string `json:"column_filters"`

	// SheetFilters selects sheets by raw name or normalized name.
	// Empty means all sheets.
	SheetFilters []string `json:"sheet_filters"`

	// BatchSize is the number of rows buffered between bulk inserts.
	BatchSize int `json:"batch_size"`
}

// DefaultConfig 默认配置
func DefaultConfig() Config {
	return Config{
		BatchSize: DefaultBatchSize,
	}
}

// Validate 验证配置
func (c Config) Validate() error {
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	return nil
}

// Logger is the diagnostic sink consumed by the import pipeline. A no-op
// implementation is valid (verbosity off).
type Logger interface {
	// Warnf records a recoverable condition, such as a duplicate heading.
	Warnf(format string, args ...any)
	// Debugf records verbose-level diagnostics, such as skipped sheets.
	Debugf(format string, args ...any)
}

// NopLogger 丢弃全部日志
type NopLogger struct{}

func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Debugf(string, ...any) {}

// StdLogger 基于标准库 log 的日志接收器；Verbose 控制 Debugf 是否输出
type StdLogger struct {
	logger  *log.Logger
	Verbose bool
}

// NewStdLogger 创建标准库日志接收器
func NewStdLogger(logger *log.Logger, verbose bool) *StdLogger {
	if logger == nil {
		logger = log.Default()
	}
	return &StdLogger{logger: logger, Verbose: verbose}
}

func (s *StdLogger) Warnf(format string, args ...any) {
	s.logger.Printf("warning: "+format, args...)
}

func (s *StdLogger) Debugf(format string, args ...any) {
	if s.Verbose {
		s.logger.Printf(format, args...)
	}
}
