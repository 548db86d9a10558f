package xlsql

import "errors"

var (
	// ErrNoSheets 工作簿中没有任何工作表
	ErrNoSheets = errors.New("workbook contains no sheets")

	// ErrNoHeader 工作表没有表头行
	ErrNoHeader = errors.New("sheet has no header row")

	// ErrInvalidBatchSize 批量大小必须为正数
	ErrInvalidBatchSize = errors.New("batch size must be positive")

	// ErrInvalidSchema 无效的 schema 错误
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrUnknownSheet 请求了来源中不存在的工作表
	ErrUnknownSheet = errors.New("unknown sheet")
)
