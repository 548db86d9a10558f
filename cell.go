package xlsql

import (
	"math"
	"strconv"
	"time"
)

// CellKind 单元格标量值的封闭类型集合
type CellKind int

const (
	// CellNull 空单元格
	CellNull CellKind = iota
	// CellText 文本
	CellText
	// CellNumber 数值
	CellNumber
	// CellBool 布尔
	CellBool
	// CellTime 日期时间
	CellTime
)

// Cell 一个单元格的标量值；Kind 决定哪个字段有效
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
	Bool   bool
	Time   time.Time
}

// Row 一行单元格，顺序与来源一致
type Row []Cell

// NullCell 创建空单元格
func NullCell() Cell { return Cell{Kind: CellNull} }

// TextCell 创建文本单元格
func TextCell(text string) Cell { return Cell{Kind: CellText, Text: text} }

// NumberCell 创建数值单元格
func NumberCell(number float64) Cell { return Cell{Kind: CellNumber, Number: number} }

// BoolCell 创建布尔单元格
func BoolCell(value bool) Cell { return Cell{Kind: CellBool, Bool: value} }

// TimeCell 创建日期时间单元格
func TimeCell(value time.Time) Cell { return Cell{Kind: CellTime, Time: value} }

// IsNull 是否为空单元格
func (c Cell) IsNull() bool { return c.Kind == CellNull }

// Arg 转换为 database/sql 的绑定参数
func (c Cell) Arg() any {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		// 整数值绑定为 int64，与电子表格整数单元格落库为 INTEGER 保持一致
		if c.Number == math.Trunc(c.Number) && math.Abs(c.Number) < 1<<53 {
			return int64(c.Number)
		}
		return c.Number
	case CellBool:
		return c.Bool
	case CellTime:
		return c.Time
	default:
		return nil
	}
}

// String 单元格的文本形式，用于表头与日志
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellBool:
		return strconv.FormatBool(c.Bool)
	case CellTime:
		return c.Time.Format(time.RFC3339)
	default:
		return ""
	}
}

// IsBlank 整行是否全部为空。空行只是常规意义上的占位行，
// 绝不能当作流结束信号处理。
func (r Row) IsBlank() bool {
	for _, c := range r {
		if c.Kind != CellNull {
			return false
		}
	}
	return true
}
